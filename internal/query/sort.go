package query

import "go.mongodb.org/mongo-driver/bson"

// Sort tokens accepted on the sort query parameter.
const (
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
	SortDateNew   = "dateNew"
	SortDateOld   = "dateOld"
)

// Direction represents sort direction in MongoDB terms.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// Derived, non-persisted fields used only while sorting by price.
const (
	numericPriceField  = "numericPrice"
	unparsedPriceField = "unparsedPrice"
)

// Ordering is a field plus direction. The zero value means "no ordering":
// results come back in the store's natural order.
type Ordering struct {
	Field string
	Dir   Direction
	// Numeric marks a text field that must be converted to a number before
	// comparison.
	Numeric bool
}

// ResolveSort maps a sort token to an Ordering. Unknown or empty tokens
// resolve to the zero Ordering instead of an error.
func ResolveSort(token string) Ordering {
	switch token {
	case SortPriceLow:
		return Ordering{Field: FieldPrice, Dir: Asc, Numeric: true}
	case SortPriceHigh:
		return Ordering{Field: FieldPrice, Dir: Desc, Numeric: true}
	case SortDateNew:
		return Ordering{Field: FieldPostedDate, Dir: Desc}
	case SortDateOld:
		return Ordering{Field: FieldPostedDate, Dir: Asc}
	}
	return Ordering{}
}

func (o Ordering) IsZero() bool { return o.Field == "" }

// Doc renders the $sort document. Numeric orderings sort on the derived
// field, with unparsable values after every parsable one in either
// direction. _id breaks ties so that pages do not overlap.
func (o Ordering) Doc() bson.D {
	if o.IsZero() {
		return bson.D{}
	}
	if o.Numeric {
		return bson.D{
			{Key: unparsedPriceField, Value: 1},
			{Key: numericPriceField, Value: int(o.Dir)},
			{Key: FieldID, Value: 1},
		}
	}
	return bson.D{
		{Key: o.Field, Value: int(o.Dir)},
		{Key: FieldID, Value: 1},
	}
}
