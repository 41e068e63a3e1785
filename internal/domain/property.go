package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is one real-estate listing in the properties collection. Keys
// that are not modelled here travel in Extra.
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyName string             `bson:"propertyName,omitempty" json:"propertyName,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Area         string             `bson:"area,omitempty" json:"area,omitempty"`
	Price        Price              `bson:"price,omitempty" json:"price,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	PostedDate   time.Time          `bson:"postedDate" json:"postedDate"`
	UserEmail    string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserName     string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Extra        bson.M             `bson:",inline" json:"-"`
}

type property Property

func (p *Property) UnmarshalJSON(b []byte) error {
	var v property
	extra, err := decodeWithExtra(b, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*p = Property(v)
	return nil
}

func (p Property) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(property(p), p.Extra)
}

// PropertyPatch carries a partial update. Nil fields are left untouched;
// unmodelled keys in Extra are set as given.
type PropertyPatch struct {
	PropertyName *string    `bson:"propertyName,omitempty" json:"propertyName,omitempty"`
	Category     *string    `bson:"category,omitempty" json:"category,omitempty"`
	City         *string    `bson:"city,omitempty" json:"city,omitempty"`
	Area         *string    `bson:"area,omitempty" json:"area,omitempty"`
	Price        *Price     `bson:"price,omitempty" json:"price,omitempty"`
	Description  *string    `bson:"description,omitempty" json:"description,omitempty"`
	Image        *string    `bson:"image,omitempty" json:"image,omitempty"`
	PostedDate   *time.Time `bson:"postedDate,omitempty" json:"postedDate,omitempty"`
	UserEmail    *string    `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserName     *string    `bson:"userName,omitempty" json:"userName,omitempty"`
	Extra        bson.M     `bson:",inline" json:"-"`
}

type propertyPatch PropertyPatch

// UnmarshalJSON keeps unmodelled keys except _id, which is immutable.
func (p *PropertyPatch) UnmarshalJSON(b []byte) error {
	var v propertyPatch
	extra, err := decodeWithExtra(b, &v)
	if err != nil {
		return err
	}
	delete(extra, "_id")
	if len(extra) > 0 {
		v.Extra = extra
	}
	*p = PropertyPatch(v)
	return nil
}

func (p PropertyPatch) IsEmpty() bool {
	return p.PropertyName == nil && p.Category == nil && p.City == nil && p.Area == nil &&
		p.Price == nil && p.Description == nil && p.Image == nil && p.PostedDate == nil &&
		p.UserEmail == nil && p.UserName == nil && len(p.Extra) == 0
}

// PropertyPage is the single response shape of every property listing.
type PropertyPage struct {
	Total      int64      `json:"total"`
	Page       int64      `json:"page"`
	TotalPages int64      `json:"totalPages"`
	Properties []Property `json:"properties"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
