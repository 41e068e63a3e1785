package app_test

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest/internal/domain"
	"homenest/internal/query"
)

// ---- fakes ----

type fakePropertyRepo struct {
	mu       sync.Mutex
	inserted []domain.Property
	byID     map[primitive.ObjectID]domain.Property
	listed   []*query.Listing
	items    []domain.Property
	total    int64
	err      error
}

func (f *fakePropertyRepo) InsertProperty(ctx context.Context, p domain.Property) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	p.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, p)
	if f.byID == nil {
		f.byID = map[primitive.ObjectID]domain.Property{}
	}
	f.byID[p.ID] = p
	return p.ID, nil
}

func (f *fakePropertyRepo) GetProperty(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePropertyRepo) ListProperties(ctx context.Context, l *query.Listing) ([]domain.Property, int64, error) {
	f.listed = append(f.listed, l)
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.items, f.total, nil
}

func (f *fakePropertyRepo) UpdateProperty(ctx context.Context, id primitive.ObjectID, patch domain.PropertyPatch) (domain.UpdateResult, error) {
	if _, ok := f.byID[id]; !ok {
		return domain.UpdateResult{}, domain.ErrNotFound
	}
	return domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakePropertyRepo) DeleteProperty(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, domain.ErrNotFound
	}
	delete(f.byID, id)
	return 1, nil
}

type fakeReviewRepo struct {
	inserted []domain.Review
	byEmail  map[string][]domain.Review
	err      error
}

func (f *fakeReviewRepo) InsertReview(ctx context.Context, r domain.Review) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	r.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, r)
	return r.ID, nil
}

func (f *fakeReviewRepo) ListReviewsByReviewer(ctx context.Context, email string) ([]domain.Review, error) {
	return f.byEmail[email], f.err
}

func (f *fakeReviewRepo) ListReviewsByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	return nil, f.err
}

func (f *fakeReviewRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, domain.ErrNotFound
}

type fakeStatsRepo struct {
	mu       sync.Mutex
	counts   map[string]int64
	revenue  float64
	cats     []domain.CategoryCount
	months   []domain.MonthRevenue
	statuses []domain.StatusCount
	failOn   string
	calls    int
}

var errStore = errors.New("store unreachable")

func (f *fakeStatsRepo) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failOn == name {
		return errStore
	}
	return nil
}

func (f *fakeStatsRepo) Count(ctx context.Context, coll string) (int64, error) {
	if err := f.hit("count:" + coll); err != nil {
		return 0, err
	}
	return f.counts[coll], nil
}

func (f *fakeStatsRepo) TotalRevenue(ctx context.Context) (float64, error) {
	return f.revenue, f.hit("revenue")
}

func (f *fakeStatsRepo) PropertiesByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return f.cats, f.hit("categories")
}

func (f *fakeStatsRepo) RevenueByMonth(ctx context.Context) ([]domain.MonthRevenue, error) {
	return f.months, f.hit("months")
}

func (f *fakeStatsRepo) UsersByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return f.statuses, f.hit("statuses")
}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string]any
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Stats:
		*d = v.(domain.Stats)
	case *domain.Charts:
		*d = v.(domain.Charts)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.deleted = append(c.deleted, key)
	return nil
}
