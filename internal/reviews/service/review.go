package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "smarthost/internal/bookings/errors"
	"smarthost/internal/properties/cache"
	reviewserrors "smarthost/internal/reviews/errors"
	"smarthost/internal/reviews/repository"
	"smarthost/internal/reviews/validator"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/model"
)

// BookingReader loads the booking a review is written against.
type BookingReader interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
}

// AuthorReader resolves review authors to their public summary.
type AuthorReader interface {
	FindSummaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error)
}

type ReviewService interface {
	Create(ctx context.Context, req *model.ReviewRequest) (*model.Review, error)
	ListByProperty(ctx context.Context, propertyID string, limit int, offset int64) ([]*model.Review, int64, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	bookings  BookingReader
	authors   AuthorReader
	cache     cache.Cache
	validator *validator.ReviewValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewReviewService(
	repo repository.ReviewRepository,
	bookings BookingReader,
	authors AuthorReader,
	cache cache.Cache,
	validator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		bookings:  bookings,
		authors:   authors,
		cache:     cache,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create records a guest's review of a finished stay. The booking must
// belong to the reviewer and be COMPLETED, or CONFIRMED with its checkout
// already past. A booking can be reviewed once.
func (s *reviewService) Create(ctx context.Context, req *model.ReviewRequest) (*model.Review, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
	}

	booking, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", req.BookingID)
		}
		s.cfg.Log.Error("Failed to load booking for review", "booking_id", req.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if err := s.checkEligible(booking, req.UserID); err != nil {
		return nil, err
	}

	review := &model.Review{
		Rating:     req.Rating,
		Comment:    req.Comment,
		UserID:     req.UserID,
		PropertyID: booking.PropertyID,
		BookingID:  booking.ID,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, reviewserrors.ErrDuplicate) {
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, "This booking has already been reviewed", 409)
		}
		s.cfg.Log.Error("Failed to create review", "booking_id", booking.ID, "error", err)
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.cache.Delete("properties:detail:" + review.PropertyID)

	s.cfg.Log.Info("Review created",
		"review_id", review.ID,
		"property_id", review.PropertyID,
		"rating", review.Rating,
	)
	return review, nil
}

func (s *reviewService) checkEligible(booking *model.Booking, userID string) error {
	if booking.UserID != userID {
		return apperrors.Wrap(reviewserrors.ErrNotEligible, apperrors.CodeValidation,
			"Only the guest who made the booking can review it", 422)
	}

	switch booking.Status {
	case config.BookingCompleted:
		return nil
	case config.BookingConfirmed:
		if !booking.EndDate.After(s.now().UTC()) {
			return nil
		}
		return apperrors.Wrap(reviewserrors.ErrNotEligible, apperrors.CodeValidation,
			"Reviews can be written once the stay has ended", 422)
	default:
		return apperrors.Wrap(reviewserrors.ErrNotEligible, apperrors.CodeValidation,
			"Only completed stays can be reviewed", 422)
	}
}

// ListByProperty returns a page of reviews, newest first, with author names.
// Authors that cannot be resolved are left blank.
func (s *reviewService) ListByProperty(ctx context.Context, propertyID string, limit int, offset int64) ([]*model.Review, int64, error) {
	if propertyID == "" {
		return nil, 0, apperrors.InvalidInput("Property ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	reviews, err := s.repo.FindByProperty(ctx, propertyID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "property_id", propertyID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve reviews", err)
	}
	total, err := s.repo.CountByProperty(ctx, propertyID)
	if err != nil {
		s.cfg.Log.Error("Failed to count reviews", "property_id", propertyID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count reviews", err)
	}

	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}
	authors, err := s.authors.FindSummaries(ctx, ids)
	if err != nil {
		s.cfg.Log.Warn("Failed to resolve review authors", "property_id", propertyID, "error", err)
	}
	for _, r := range reviews {
		r.Author = authors[r.UserID]
	}

	return reviews, total, nil
}
