package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "smarthost/internal/bookings/errors"
	"smarthost/internal/bookings/repository"
	"smarthost/internal/bookings/validator"
	propertieserrors "smarthost/internal/properties/errors"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/model"
	"smarthost/pkg/presenter"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const lockTTL = 10 * time.Second

// PropertyReader is the slice of the property store bookings depend on.
type PropertyReader interface {
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error)
}

// ConfirmHook runs inside the confirmation transaction after the status
// change. Returning an error rolls the confirmation back.
type ConfirmHook func(ctx mongo.SessionContext, booking *model.Booking) error

// BookingView is a booking as listed on a guest's trips page.
type BookingView struct {
	*model.Booking
	Nights   int                     `json:"nights"`
	Property *presenter.PropertyCard `json:"property,omitempty"`
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*BookingView, int64, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	Confirm(ctx context.Context, id string, hook ConfirmHook) (*model.Booking, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	lockRepo   repository.BookingLockRepository
	properties PropertyReader
	validator  *validator.BookingValidator
	presenter  *presenter.Presenter
	cfg        *config.Config
	now        func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	properties PropertyReader,
	validator *validator.BookingValidator,
	presenter *presenter.Presenter,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		properties: properties,
		validator:  validator,
		presenter:  presenter,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	checkIn, checkOut, err := s.validator.ValidateRequest(req, s.now().UTC())
	if err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) || errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Property", req.PropertyID)
		}
		return nil, apperrors.Internal("Failed to load property", err)
	}
	if !property.IsActive {
		return nil, apperrors.NotFoundWithID("Property", req.PropertyID)
	}
	if err := s.validator.ValidateCapacity(req.GuestCount, property); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "property_id", property.ID, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	booking := &model.Booking{
		StartDate:  checkIn,
		EndDate:    checkOut,
		GuestCount: req.GuestCount,
		Status:     config.BookingPending,
		UserID:     req.UserID,
		PropertyID: property.ID,
	}
	booking.TotalPrice = presenter.TotalPrice(property.Price.Float64(), booking.Nights())

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	release, err := s.acquirePropertyLock(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "property_id", property.ID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"property_id", booking.PropertyID,
		"user_id", booking.UserID,
		"start_date", booking.StartDate,
		"nights", booking.Nights(),
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

// ListByUser returns the guest's bookings with a card for each property.
// Properties that cannot be loaded leave the card empty.
func (s *bookingService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*BookingView, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	cards := s.propertyCards(ctx, bookings)
	views := make([]*BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := &BookingView{Booking: b, Nights: b.Nights()}
		if card, ok := cards[b.PropertyID]; ok {
			view.Property = &card
		}
		views = append(views, view)
	}

	return views, count, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.UpdateStatus(ctx, id,
		[]config.BookingStatus{config.BookingPending, config.BookingConfirmed},
		config.BookingCancelled,
	)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidTransition) {
			return nil, apperrors.Conflict("Only pending or confirmed bookings can be cancelled")
		}
		return nil, mapRepoError(err, id, "Failed to cancel booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id, "Failed to retrieve booking")
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "property_id", booking.PropertyID)
	return booking, nil
}

// Confirm moves a PENDING booking to CONFIRMED under the property lock. An
// already confirmed booking is left as is and hook still runs, so replays of
// the same payment are harmless.
func (s *bookingService) Confirm(ctx context.Context, id string, hook ConfirmHook) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id, "Failed to retrieve booking")
	}

	release, err := s.acquirePropertyLock(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return mapRepoError(err, id, "Failed to retrieve booking")
		}

		switch current.Status {
		case config.BookingConfirmed:
		case config.BookingPending:
			if err := s.verifyAvailability(sessCtx, current); err != nil {
				return err
			}
			err := s.repo.UpdateStatus(sessCtx, id, []config.BookingStatus{config.BookingPending}, config.BookingConfirmed)
			if err != nil {
				if errors.Is(err, bookingserrors.ErrInvalidTransition) {
					return apperrors.Conflict("Booking changed while being confirmed")
				}
				return mapRepoError(err, id, "Failed to confirm booking")
			}
			current.Status = config.BookingConfirmed
		default:
			return apperrors.Conflict(fmt.Sprintf("A %s booking cannot be confirmed", current.Status))
		}

		if hook != nil {
			if err := hook(sessCtx, current); err != nil {
				return err
			}
		}
		booking = current
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to confirm booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking confirmed", "id", id, "property_id", booking.PropertyID)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) verifyAvailability(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.PropertyID, booking.StartDate, booking.EndDate, config.BookingConfirmed, booking.ID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.Overlaps(booking.StartDate, booking.EndDate) {
			return apperrors.Wrap(bookingserrors.ErrDateConflict, apperrors.CodeConflict, fmt.Sprintf(
				"Property is already booked from %s to %s",
				b.StartDate.Format(time.DateOnly),
				b.EndDate.Format(time.DateOnly),
			), 409)
		}
	}
	return nil
}

func (s *bookingService) propertyCards(ctx context.Context, bookings []*model.Booking) map[string]presenter.PropertyCard {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.PropertyID]; !ok {
			seen[b.PropertyID] = struct{}{}
			ids = append(ids, b.PropertyID)
		}
	}

	cards := make(map[string]presenter.PropertyCard, len(ids))
	if len(ids) == 0 {
		return cards
	}

	properties, err := s.properties.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Warn("Failed to load properties for bookings", "error", err)
		return cards
	}
	for _, p := range properties {
		cards[p.ID] = s.presenter.Card(p)
	}
	return cards
}

// acquirePropertyLock serializes booking writes per property. The returned
// release func never fails the caller; an unreleased lock expires via TTL.
func (s *bookingService) acquirePropertyLock(ctx context.Context, propertyID string) (func(), error) {
	lock := &model.BookingLock{
		ID:        "booking_lock_" + propertyID,
		Owner:     uuid.NewString(),
		ExpiresAt: s.now().UTC().Add(lockTTL),
	}

	if err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Wrap(bookingserrors.ErrLocked, apperrors.CodeConflict,
				"This property is currently being booked by another request. Please try again.", 409)
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return func() {
		if err := s.lockRepo.Delete(context.WithoutCancel(ctx), lock.ID, lock.Owner); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lock.ID, "error", err)
		}
	}, nil
}

func mapRepoError(err error, id, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal(message, err)
}
