package app

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest/internal/domain"
	"homenest/internal/pkg/clock"
)

type ReviewService struct {
	repo  domain.ReviewRepository
	cache domain.Cache
	clock clock.Clock
}

func NewReviewService(r domain.ReviewRepository, c domain.Cache, clk clock.Clock) *ReviewService {
	if clk == nil {
		clk = clock.Real()
	}
	return &ReviewService{repo: r, cache: c, clock: clk}
}

func (s *ReviewService) Create(ctx context.Context, rv domain.Review) (primitive.ObjectID, error) {
	rv.ID = primitive.NilObjectID
	if rv.PostedDate.IsZero() {
		rv.PostedDate = s.clock.Now().UTC()
	}
	id, err := s.repo.InsertReview(ctx, rv)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert review: %w", err)
	}
	invalidateDashboard(ctx, s.cache)
	return id, nil
}

func (s *ReviewService) ByReviewer(ctx context.Context, email string) ([]domain.Review, error) {
	out, err := s.repo.ListReviewsByReviewer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("reviews by reviewer: %w", err)
	}
	return nonNil(out), nil
}

// ForProperty lists a property's reviews newest first. The property id is
// matched as stored text; it is not parsed.
func (s *ReviewService) ForProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	out, err := s.repo.ListReviewsByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("reviews for property: %w", err)
	}
	return nonNil(out), nil
}

func (s *ReviewService) Delete(ctx context.Context, rawID string) (int64, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteReview(ctx, id)
	if err != nil {
		return 0, err
	}
	invalidateDashboard(ctx, s.cache)
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
