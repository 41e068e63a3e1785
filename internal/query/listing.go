package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Listing builds the aggregation pipeline for a property listing: match,
// optional ordering and an optional page window. Every method returns a
// new Listing; the receiver is never modified.
type Listing struct {
	match  bson.M
	order  Ordering
	window Window
	paged  bool
}

func NewListing() *Listing {
	return &Listing{match: bson.M{}}
}

// Where ANDs predicates onto the match stage. Empty predicates are ignored.
func (l *Listing) Where(preds ...bson.M) *Listing {
	n := l.clone()
	n.match = And(append([]bson.M{l.match}, preds...)...)
	return n
}

func (l *Listing) SortBy(o Ordering) *Listing {
	n := l.clone()
	n.order = o
	return n
}

// Page restricts the pipeline to one window.
func (l *Listing) Page(w Window) *Listing {
	n := l.clone()
	n.window = NewWindow(w.Page, w.Limit)
	n.paged = true
	return n
}

// Match returns the predicate, for the count round trip.
func (l *Listing) Match() bson.M { return clone(l.match) }

func (l *Listing) Ordering() Ordering { return l.order }

// Window returns the page window and whether one was set.
func (l *Listing) Window() (Window, bool) { return l.window, l.paged }

// Pipeline renders the stages in execution order.
func (l *Listing) Pipeline() mongo.Pipeline {
	p := mongo.Pipeline{}
	if len(l.match) > 0 {
		p = append(p, bson.D{{Key: "$match", Value: clone(l.match)}})
	}
	if l.order.Numeric {
		p = append(p,
			bson.D{{Key: "$addFields", Value: bson.D{
				{Key: numericPriceField, Value: toDouble("$"+l.order.Field, nil)},
			}}},
			bson.D{{Key: "$addFields", Value: bson.D{
				{Key: unparsedPriceField, Value: bson.D{{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$" + numericPriceField, nil}}}, 1, 0,
				}}}},
			}}},
		)
	}
	if !l.order.IsZero() {
		p = append(p, bson.D{{Key: "$sort", Value: l.order.Doc()}})
	}
	if l.paged {
		if off := l.window.Offset(); off > 0 {
			p = append(p, bson.D{{Key: "$skip", Value: off}})
		}
		p = append(p, bson.D{{Key: "$limit", Value: l.window.Limit}})
	}
	if l.order.Numeric {
		p = append(p, bson.D{{Key: "$project", Value: bson.D{
			{Key: numericPriceField, Value: 0},
			{Key: unparsedPriceField, Value: 0},
		}}})
	}
	return p
}

func (l *Listing) clone() *Listing {
	return &Listing{
		match:  clone(l.match),
		order:  l.order,
		window: l.window,
		paged:  l.paged,
	}
}

// toDouble converts a text or numeric expression to a double. Conversion
// failures and missing values become fallback instead of failing the
// whole aggregation.
func toDouble(expr any, fallback any) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: expr},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: fallback},
		{Key: "onNull", Value: fallback},
	}}}
}
