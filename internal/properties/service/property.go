package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smarthost/internal/properties/cache"
	propertieserrors "smarthost/internal/properties/errors"
	"smarthost/internal/properties/repository"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/model"
	"smarthost/pkg/presenter"
	"smarthost/pkg/search"
)

// SearchRequest is a search as submitted from the landing page form.
type SearchRequest struct {
	Query     search.Query
	Guests    int
	MinPrice  float64
	MaxPrice  float64
	Amenities []string
}

type SearchResult struct {
	Query      search.Query            `json:"query"`
	Properties []presenter.PropertyCard `json:"properties"`
	Stats      search.Stats            `json:"stats"`
}

type PropertyService interface {
	List(ctx context.Context, limit int, offset int64) ([]presenter.PropertyCard, int64, error)
	Featured(ctx context.Context, limit int) ([]presenter.PropertyCard, error)
	GetDetail(ctx context.Context, id string) (*presenter.PropertyDetail, error)
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	cache     cache.Cache
	presenter *presenter.Presenter
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	cache cache.Cache,
	presenter *presenter.Presenter,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		cache:     cache,
		presenter: presenter,
		cfg:       cfg,
	}
}

// List returns a page of active listings. A store failure is logged and
// served as an empty page.
func (s *propertyService) List(ctx context.Context, limit int, offset int64) ([]presenter.PropertyCard, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	key := fmt.Sprintf("properties:list:%d:%d", limit, offset)

	if entry, ok := s.cache.Get(key); ok {
		return s.presenter.Cards(entry.Properties), entry.Total, nil
	}

	properties, err := s.repo.FindActive(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch properties", "limit", limit, "offset", offset, "error", err)
		return []presenter.PropertyCard{}, 0, nil
	}
	total, err := s.repo.CountActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count properties", "error", err)
		total = offset + int64(len(properties))
	} else {
		s.cache.Set(key, &cache.Entry{Properties: properties, Total: total})
	}

	return s.presenter.Cards(properties), total, nil
}

// Featured returns the featured carousel listings; failures degrade to an
// empty list.
func (s *propertyService) Featured(ctx context.Context, limit int) ([]presenter.PropertyCard, error) {
	if limit <= 0 {
		limit = config.DefaultFeaturedLimit
	}
	limit = config.NormalizePaginationLimit(limit)
	key := fmt.Sprintf("properties:featured:%d", limit)

	if entry, ok := s.cache.Get(key); ok {
		return s.presenter.Cards(entry.Properties), nil
	}

	properties, err := s.repo.FindFeatured(ctx, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch featured properties", "error", err)
		return []presenter.PropertyCard{}, nil
	}

	s.cache.Set(key, &cache.Entry{Properties: properties, Total: int64(len(properties))})
	return s.presenter.Cards(properties), nil
}

func (s *propertyService) GetDetail(ctx context.Context, id string) (*presenter.PropertyDetail, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}
	key := "properties:detail:" + id

	if entry, ok := s.cache.Get(key); ok && len(entry.Properties) == 1 {
		detail := s.presenter.Detail(entry.Properties[0])
		return &detail, nil
	}

	property, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) || errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to get property detail", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	s.cache.Set(key, &cache.Entry{Properties: []*model.Property{property}, Total: 1})
	detail := s.presenter.Detail(property)
	return &detail, nil
}

// Search runs the location, capacity and price filters in Mongo and the
// amenity filter in memory. Stats describe the final result set.
func (s *propertyService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Query.Validate(); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if req.Guests < 0 {
		return nil, apperrors.InvalidInput("guests cannot be negative")
	}
	if req.MinPrice < 0 || req.MaxPrice < 0 {
		return nil, apperrors.InvalidInput("price filters cannot be negative")
	}
	if req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		return nil, apperrors.InvalidInput("min_price cannot exceed max_price")
	}

	result := &SearchResult{
		Query:      req.Query,
		Properties: []presenter.PropertyCard{},
	}

	properties, err := s.repo.Search(ctx, repository.Criteria{
		Location: strings.TrimSpace(req.Query.Location),
		Guests:   req.Guests,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Limit:    config.DefaultPaginationLimit,
	})
	if err != nil {
		s.cfg.Log.Error("Property search failed", "location", req.Query.Location, "error", err)
		return result, nil
	}

	matched := search.Filters{Amenities: req.Amenities}.Apply(properties)
	result.Properties = s.presenter.Cards(matched)
	result.Stats = search.ComputeStats(matched)

	s.cfg.Log.Info("Property search completed",
		"location", req.Query.Location,
		"guests", req.Guests,
		"results", len(matched),
	)
	return result, nil
}
