package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest/internal/app"
	"homenest/internal/domain"
	"homenest/internal/pkg/clock"
	"homenest/internal/query"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestPropertyService_CreateStampsPostedDateAndInvalidates(t *testing.T) {
	repo := &fakePropertyRepo{}
	cache := &fakeCache{}
	svc := app.NewPropertyService(repo, cache, clock.Fixed{T: fixedNow})

	id, err := svc.Create(context.Background(), domain.Property{
		ID:           primitive.NewObjectID(), // client ids are ignored
		PropertyName: "Lake View Villa",
		Price:        "1200",
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, id, repo.inserted[0].ID)
	assert.Equal(t, fixedNow, repo.inserted[0].PostedDate)
	assert.ElementsMatch(t, []string{"dashboard:stats", "dashboard:charts"}, cache.deleted)
}

func TestPropertyService_CreateKeepsSuppliedDate(t *testing.T) {
	repo := &fakePropertyRepo{}
	svc := app.NewPropertyService(repo, nil, clock.Fixed{T: fixedNow})

	posted := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), domain.Property{PostedDate: posted})
	require.NoError(t, err)
	assert.Equal(t, posted, repo.inserted[0].PostedDate)
}

func TestPropertyService_GetRejectsMalformedID(t *testing.T) {
	svc := app.NewPropertyService(&fakePropertyRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyService_ListBuildsListingAndPage(t *testing.T) {
	repo := &fakePropertyRepo{
		items: []domain.Property{{PropertyName: "a"}, {PropertyName: "b"}},
		total: 17,
	}
	svc := app.NewPropertyService(repo, nil, nil)

	page, err := svc.List(context.Background(), app.ListRequest{
		Filter: query.FilterParams{City: "Dhaka"},
		Search: "villa",
		Sort:   query.SortPriceLow,
		Window: query.Window{Page: 2, Limit: 8},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17), page.Total)
	assert.Equal(t, int64(2), page.Page)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Len(t, page.Properties, 2)

	require.Len(t, repo.listed, 1)
	l := repo.listed[0]
	assert.Equal(t, bson.M{
		"city":         "Dhaka",
		"propertyName": primitive.Regex{Pattern: "villa", Options: "i"},
	}, l.Match())
	assert.Equal(t, query.ResolveSort(query.SortPriceLow), l.Ordering())
	w, paged := l.Window()
	assert.True(t, paged)
	assert.Equal(t, int64(8), w.Offset())
}

func TestPropertyService_ListEmptyInputs(t *testing.T) {
	repo := &fakePropertyRepo{}
	svc := app.NewPropertyService(repo, nil, nil)

	page, err := svc.List(context.Background(), app.ListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, page.Properties)
	assert.Empty(t, page.Properties)
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(0), page.TotalPages)

	assert.Equal(t, bson.M{}, repo.listed[0].Match())
	assert.True(t, repo.listed[0].Ordering().IsZero())
}

func TestPropertyService_ListWrapsStoreError(t *testing.T) {
	repo := &fakePropertyRepo{err: errors.New("connection reset")}
	svc := app.NewPropertyService(repo, nil, nil)

	_, err := svc.List(context.Background(), app.ListRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list properties")
}

func TestPropertyService_UpdateAndDelete(t *testing.T) {
	repo := &fakePropertyRepo{}
	cache := &fakeCache{}
	svc := app.NewPropertyService(repo, cache, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.Property{PropertyName: "x"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, id.Hex(), domain.PropertyPatch{})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)

	city := "Sylhet"
	res, err := svc.Update(ctx, id.Hex(), domain.PropertyPatch{City: &city})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	_, err = svc.Update(ctx, "zz", domain.PropertyPatch{City: &city})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	n, err := svc.Delete(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Delete(ctx, id.Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
