package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestResolveSort(t *testing.T) {
	tests := []struct {
		token string
		want  Ordering
	}{
		{"priceLow", Ordering{Field: "price", Dir: Asc, Numeric: true}},
		{"priceHigh", Ordering{Field: "price", Dir: Desc, Numeric: true}},
		{"dateNew", Ordering{Field: "postedDate", Dir: Desc}},
		{"dateOld", Ordering{Field: "postedDate", Dir: Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSort(tt.token))
		})
	}
}

func TestResolveSort_UnknownIsNoop(t *testing.T) {
	for _, token := range []string{"", "PRICELOW", "price", "random", "dateNew "} {
		o := ResolveSort(token)
		assert.True(t, o.IsZero(), "token %q", token)
		assert.Equal(t, bson.D{}, o.Doc())
	}
}

func TestOrdering_Doc(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "unparsedPrice", Value: 1},
		{Key: "numericPrice", Value: -1},
		{Key: "_id", Value: 1},
	}, ResolveSort(SortPriceHigh).Doc())

	assert.Equal(t, bson.D{
		{Key: "postedDate", Value: 1},
		{Key: "_id", Value: 1},
	}, ResolveSort(SortDateOld).Doc())
}
