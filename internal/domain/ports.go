package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest/internal/query"
)

type PropertyRepository interface {
	InsertProperty(ctx context.Context, p Property) (primitive.ObjectID, error)
	GetProperty(ctx context.Context, id primitive.ObjectID) (Property, error)
	// ListProperties returns one window of the listing plus the total match
	// count. The two are separate reads and may disagree under writes.
	ListProperties(ctx context.Context, l *query.Listing) ([]Property, int64, error)
	UpdateProperty(ctx context.Context, id primitive.ObjectID, patch PropertyPatch) (UpdateResult, error)
	DeleteProperty(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, r Review) (primitive.ObjectID, error)
	ListReviewsByReviewer(ctx context.Context, email string) ([]Review, error)
	ListReviewsByProperty(ctx context.Context, propertyID string) ([]Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type StatsRepository interface {
	Count(ctx context.Context, collection string) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	PropertiesByCategory(ctx context.Context) ([]CategoryCount, error)
	RevenueByMonth(ctx context.Context) ([]MonthRevenue, error)
	UsersByStatus(ctx context.Context) ([]StatusCount, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
