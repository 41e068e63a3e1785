package domain

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Documents carry no schema: keys a struct does not model are kept in its
// inline Extra map so they survive insert, patch and fetch.

var knownKeys sync.Map // reflect.Type -> map[string]bool

// jsonKeys lists the JSON names of t's fields, excluding "-".
func jsonKeys(t reflect.Type) map[string]bool {
	if v, ok := knownKeys.Load(t); ok {
		return v.(map[string]bool)
	}
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = true
	}
	knownKeys.Store(t, keys)
	return keys
}

// decodeWithExtra decodes data into dst, a pointer to a struct without
// custom JSON methods, and returns every key dst does not model. Numbers
// keep their integer or decimal form.
func decodeWithExtra(data []byte, dst any) (bson.M, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := jsonKeys(reflect.TypeOf(dst).Elem())

	var extra bson.M
	for k, v := range raw {
		if known[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = bson.M{}
		}
		extra[k] = val
	}
	return extra, nil
}

// encodeWithExtra marshals v and adds the extra keys. Modelled fields win
// on a name clash.
func encodeWithExtra(v any, extra bson.M) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; ok {
			continue
		}
		if merged[k], err = json.Marshal(val); err != nil {
			return nil, err
		}
	}
	return json.Marshal(merged)
}
