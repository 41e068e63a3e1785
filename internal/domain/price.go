package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Price is stored as text. Clients may send either "1200" or 1200; both
// persist as the string "1200". Numeric ordering happens in the store.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*p = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price: want string or number, got %s", b)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(p))
}

// UnmarshalBSONValue also accepts numeric prices written by older clients.
func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		*p = Price(rv.StringValue())
	case bson.TypeDouble:
		*p = Price(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bson.TypeInt32:
		*p = Price(strconv.FormatInt(int64(rv.Int32()), 10))
	case bson.TypeInt64:
		*p = Price(strconv.FormatInt(rv.Int64(), 10))
	case bson.TypeNull, bson.TypeUndefined:
		*p = ""
	default:
		return fmt.Errorf("price: unsupported bson type %s", t)
	}
	return nil
}
