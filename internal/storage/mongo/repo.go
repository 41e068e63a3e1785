package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homenest/internal/adapters/observability"
	"homenest/internal/domain"
	"homenest/internal/query"
)

// Repo implements the property, review and stats ports on one database.
type Repo struct {
	db         *mongo.Database
	properties *mongo.Collection
	reviews    *mongo.Collection
}

func New(db *mongo.Database) *Repo {
	return &Repo{
		db:         db,
		properties: db.Collection(domain.CollProperties),
		reviews:    db.Collection(domain.CollReviews),
	}
}

func track(collection, op string, start time.Time, err *error) {
	observability.ObserveStore(collection, op, *err, time.Since(start))
}

/********** properties **********/

func (r *Repo) InsertProperty(ctx context.Context, p domain.Property) (id primitive.ObjectID, err error) {
	defer track(domain.CollProperties, "insert", time.Now(), &err)
	return insertOne(ctx, r.properties, p)
}

func (r *Repo) GetProperty(ctx context.Context, id primitive.ObjectID) (p domain.Property, err error) {
	defer track(domain.CollProperties, "find_one", time.Now(), &err)
	err = r.properties.FindOne(ctx, bson.M{query.FieldID: id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Property{}, fmt.Errorf("property %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return p, err
}

func (r *Repo) ListProperties(ctx context.Context, l *query.Listing) (items []domain.Property, total int64, err error) {
	defer track(domain.CollProperties, "list", time.Now(), &err)

	total, err = r.properties.CountDocuments(ctx, l.Match())
	if err != nil {
		return nil, 0, err
	}
	items, err = aggregate[domain.Property](ctx, r.properties, l.Pipeline())
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repo) UpdateProperty(ctx context.Context, id primitive.ObjectID, patch domain.PropertyPatch) (res domain.UpdateResult, err error) {
	defer track(domain.CollProperties, "update", time.Now(), &err)

	out, err := r.properties.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if out.MatchedCount == 0 {
		return domain.UpdateResult{}, fmt.Errorf("property %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return domain.UpdateResult{MatchedCount: out.MatchedCount, ModifiedCount: out.ModifiedCount}, nil
}

func (r *Repo) DeleteProperty(ctx context.Context, id primitive.ObjectID) (n int64, err error) {
	defer track(domain.CollProperties, "delete", time.Now(), &err)
	return deleteOne(ctx, r.properties, id)
}

/********** reviews **********/

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (id primitive.ObjectID, err error) {
	defer track(domain.CollReviews, "insert", time.Now(), &err)
	return insertOne(ctx, r.reviews, rv)
}

func (r *Repo) ListReviewsByReviewer(ctx context.Context, email string) (out []domain.Review, err error) {
	defer track(domain.CollReviews, "find", time.Now(), &err)
	return r.findReviews(ctx, bson.M{"reviewerEmail": email})
}

func (r *Repo) ListReviewsByProperty(ctx context.Context, propertyID string) (out []domain.Review, err error) {
	defer track(domain.CollReviews, "find", time.Now(), &err)
	return r.findReviews(ctx, bson.M{"propertyId": propertyID})
}

func (r *Repo) DeleteReview(ctx context.Context, id primitive.ObjectID) (n int64, err error) {
	defer track(domain.CollReviews, "delete", time.Now(), &err)
	return deleteOne(ctx, r.reviews, id)
}

// findReviews returns matches newest first.
func (r *Repo) findReviews(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(query.ResolveSort(query.SortDateNew).Doc())
	cur, err := r.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

/********** dashboard **********/

func (r *Repo) Count(ctx context.Context, collection string) (n int64, err error) {
	defer track(collection, "count", time.Now(), &err)
	return r.db.Collection(collection).CountDocuments(ctx, bson.D{})
}

func (r *Repo) TotalRevenue(ctx context.Context) (total float64, err error) {
	defer track(domain.CollOrders, "aggregate", time.Now(), &err)

	rows, err := aggregate[struct {
		Total float64 `bson:"total"`
	}](ctx, r.db.Collection(domain.CollOrders), query.TotalRevenuePipeline())
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *Repo) PropertiesByCategory(ctx context.Context) (out []domain.CategoryCount, err error) {
	defer track(domain.CollProperties, "aggregate", time.Now(), &err)
	return aggregate[domain.CategoryCount](ctx, r.properties, query.CountByCategoryPipeline())
}

func (r *Repo) RevenueByMonth(ctx context.Context) (out []domain.MonthRevenue, err error) {
	defer track(domain.CollOrders, "aggregate", time.Now(), &err)
	return aggregate[domain.MonthRevenue](ctx, r.db.Collection(domain.CollOrders), query.RevenueByMonthPipeline())
}

func (r *Repo) UsersByStatus(ctx context.Context) (out []domain.StatusCount, err error) {
	defer track(domain.CollUsers, "aggregate", time.Now(), &err)
	return aggregate[domain.StatusCount](ctx, r.db.Collection(domain.CollUsers), query.UsersByStatusPipeline())
}

/********** helpers **********/

// aggregate runs a pipeline and decodes every row. The result is never nil.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, p mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (int64, error) {
	res, err := coll.DeleteOne(ctx, bson.M{query.FieldID: id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, fmt.Errorf("%s %s: %w", coll.Name(), id.Hex(), domain.ErrNotFound)
	}
	return res.DeletedCount, nil
}
