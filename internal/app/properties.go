package app

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest/internal/domain"
	"homenest/internal/pkg/clock"
	"homenest/internal/query"
)

type PropertyService struct {
	repo  domain.PropertyRepository
	cache domain.Cache
	clock clock.Clock
}

func NewPropertyService(r domain.PropertyRepository, c domain.Cache, clk clock.Clock) *PropertyService {
	if clk == nil {
		clk = clock.Real()
	}
	return &PropertyService{repo: r, cache: c, clock: clk}
}

// ListRequest describes every property listing variant: plain, filtered,
// searched, sorted and owner-scoped. Zero fields mean "not supplied".
type ListRequest struct {
	Filter query.FilterParams
	Search string
	Owner  string
	Sort   string
	Window query.Window
}

func (s *PropertyService) Create(ctx context.Context, p domain.Property) (primitive.ObjectID, error) {
	p.ID = primitive.NilObjectID
	if p.PostedDate.IsZero() {
		p.PostedDate = s.clock.Now().UTC()
	}
	id, err := s.repo.InsertProperty(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert property: %w", err)
	}
	invalidateDashboard(ctx, s.cache)
	return id, nil
}

func (s *PropertyService) Get(ctx context.Context, rawID string) (domain.Property, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.Property{}, err
	}
	return s.repo.GetProperty(ctx, id)
}

func (s *PropertyService) List(ctx context.Context, req ListRequest) (domain.PropertyPage, error) {
	w := query.NewWindow(req.Window.Page, req.Window.Limit)
	l := query.NewListing().
		Where(query.Filter(req.Filter), query.Search(req.Search), query.Owner(req.Owner)).
		SortBy(query.ResolveSort(req.Sort)).
		Page(w)

	items, total, err := s.repo.ListProperties(ctx, l)
	if err != nil {
		return domain.PropertyPage{}, fmt.Errorf("list properties: %w", err)
	}
	if items == nil {
		items = []domain.Property{}
	}
	return domain.PropertyPage{
		Total:      total,
		Page:       w.Page,
		TotalPages: query.TotalPages(total, w.Limit),
		Properties: items,
	}, nil
}

func (s *PropertyService) Update(ctx context.Context, rawID string, patch domain.PropertyPatch) (domain.UpdateResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if patch.IsEmpty() {
		return domain.UpdateResult{}, domain.ErrEmptyPatch
	}
	res, err := s.repo.UpdateProperty(ctx, id, patch)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	// category may have changed
	invalidateDashboard(ctx, s.cache)
	return res, nil
}

func (s *PropertyService) Delete(ctx context.Context, rawID string) (int64, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteProperty(ctx, id)
	if err != nil {
		return 0, err
	}
	invalidateDashboard(ctx, s.cache)
	return n, nil
}
