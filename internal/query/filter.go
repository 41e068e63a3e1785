// Package query builds the MongoDB predicates and aggregation pipelines
// behind the listing and dashboard endpoints. It never touches the store.
package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names as stored in the properties collection.
const (
	FieldID         = "_id"
	FieldName       = "propertyName"
	FieldCategory   = "category"
	FieldCity       = "city"
	FieldArea       = "area"
	FieldPrice      = "price"
	FieldPostedDate = "postedDate"
	FieldOwner      = "userEmail"
)

// FilterParams are the exact-match listing filters. Empty means absent.
type FilterParams struct {
	Category string
	City     string
	Area     string
}

// Filter keeps only the supplied keys. Values are not coerced or checked
// against any list of known categories.
func Filter(p FilterParams) bson.M {
	f := bson.M{}
	if p.Category != "" {
		f[FieldCategory] = p.Category
	}
	if p.City != "" {
		f[FieldCity] = p.City
	}
	if p.Area != "" {
		f[FieldArea] = p.Area
	}
	return f
}

// Search matches text as a literal, case-insensitive substring of the
// property name. Blank text yields the empty predicate, i.e. everything.
func Search(text string) bson.M {
	if strings.TrimSpace(text) == "" {
		return bson.M{}
	}
	return bson.M{FieldName: primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}
}

// Owner selects the properties posted by one contact address.
func Owner(email string) bson.M {
	if email == "" {
		return bson.M{}
	}
	return bson.M{FieldOwner: email}
}

// And combines predicates. Disjoint keys are merged into one document;
// a key collision falls back to an explicit $and.
func And(preds ...bson.M) bson.M {
	parts := make([]bson.M, 0, len(preds))
	for _, p := range preds {
		if len(p) > 0 {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return bson.M{}
	case 1:
		return clone(parts[0])
	}

	merged := bson.M{}
	for _, p := range parts {
		for k, v := range p {
			if _, dup := merged[k]; dup {
				and := make(bson.A, 0, len(parts))
				for _, q := range parts {
					and = append(and, clone(q))
				}
				return bson.M{"$and": and}
			}
			merged[k] = v
		}
	}
	return merged
}

func clone(m bson.M) bson.M {
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
