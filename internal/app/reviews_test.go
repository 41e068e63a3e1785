package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homenest/internal/app"
	"homenest/internal/domain"
	"homenest/internal/pkg/clock"
)

func TestReviewService_Create(t *testing.T) {
	repo := &fakeReviewRepo{}
	cache := &fakeCache{}
	svc := app.NewReviewService(repo, cache, clock.Fixed{T: fixedNow})

	_, err := svc.Create(context.Background(), domain.Review{
		ReviewerEmail: "r@example.com",
		PropertyID:    "65f0c0ffee0000000000abcd",
		Review:        "Quiet street, good light.",
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, fixedNow, repo.inserted[0].PostedDate)
	assert.Contains(t, cache.deleted, "dashboard:stats")
}

func TestReviewService_ListsAreNeverNil(t *testing.T) {
	svc := app.NewReviewService(&fakeReviewRepo{}, nil, nil)

	byEmail, err := svc.ByReviewer(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, byEmail)

	forProp, err := svc.ForProperty(context.Background(), "whatever")
	require.NoError(t, err)
	assert.NotNil(t, forProp)
}

func TestReviewService_Delete(t *testing.T) {
	svc := app.NewReviewService(&fakeReviewRepo{}, nil, nil)

	_, err := svc.Delete(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Delete(context.Background(), "65f0c0ffee0000000000abcd")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
