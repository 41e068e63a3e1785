package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review has its own lifecycle; deleting a property leaves its reviews.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ReviewerEmail string             `bson:"reviewerEmail,omitempty" json:"reviewerEmail,omitempty"`
	ReviewerName  string             `bson:"reviewerName,omitempty" json:"reviewerName,omitempty"`
	PropertyID    string             `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	PropertyName  string             `bson:"propertyName,omitempty" json:"propertyName,omitempty"`
	Rating        *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Review        string             `bson:"review,omitempty" json:"review,omitempty"`
	PostedDate    time.Time          `bson:"postedDate" json:"postedDate"`
	Extra         bson.M             `bson:",inline" json:"-"`
}

type review Review

func (r *Review) UnmarshalJSON(b []byte) error {
	var v review
	extra, err := decodeWithExtra(b, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*r = Review(v)
	return nil
}

func (r Review) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(review(r), r.Extra)
}
