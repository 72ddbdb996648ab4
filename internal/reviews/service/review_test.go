package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	bookingserrors "smarthost/internal/bookings/errors"
	"smarthost/internal/properties/cache"
	reviewserrors "smarthost/internal/reviews/errors"
	"smarthost/internal/reviews/validator"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
)

const (
	guestID    = "507f1f77bcf86cd799439011"
	otherID    = "507f1f77bcf86cd799439012"
	bookingID  = "507f1f77bcf86cd799439013"
	propertyID = "507f1f77bcf86cd799439014"
)

var testNow = time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockReviewRepository struct {
	createFunc          func(ctx context.Context, review *model.Review) error
	findByPropertyFunc  func(ctx context.Context, propertyID string, limit int, offset int64) ([]*model.Review, error)
	countByPropertyFunc func(ctx context.Context, propertyID string) (int64, error)
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	review.ID = "r1"
	return nil
}

func (m *mockReviewRepository) FindByProperty(ctx context.Context, propertyID string, limit int, offset int64) ([]*model.Review, error) {
	if m.findByPropertyFunc != nil {
		return m.findByPropertyFunc(ctx, propertyID, limit, offset)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepository) CountByProperty(ctx context.Context, propertyID string) (int64, error) {
	if m.countByPropertyFunc != nil {
		return m.countByPropertyFunc(ctx, propertyID)
	}
	return 0, nil
}

type mockBookingReader struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Booking, error)
}

func (m *mockBookingReader) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

type mockAuthorReader struct {
	findSummariesFunc func(ctx context.Context, ids []string) (map[string]*model.UserSummary, error)
}

func (m *mockAuthorReader) FindSummaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error) {
	if m.findSummariesFunc != nil {
		return m.findSummariesFunc(ctx, ids)
	}
	return map[string]*model.UserSummary{}, nil
}

type mockCache struct {
	deleted []string
}

func (m *mockCache) Get(string) (*cache.Entry, bool) { return nil, false }
func (m *mockCache) Set(string, *cache.Entry)        {}
func (m *mockCache) Delete(key string)               { m.deleted = append(m.deleted, key) }
func (m *mockCache) Stop()                           {}

func newTestService(repo *mockReviewRepository, bookings *mockBookingReader, authors *mockAuthorReader, c *mockCache) *reviewService {
	log := logger.Discard()
	svc := NewReviewService(repo, bookings, authors, c, validator.NewReviewValidator(log), &config.Config{Log: log}).(*reviewService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func stay(status config.BookingStatus, end time.Time) *model.Booking {
	return &model.Booking{
		ID:         bookingID,
		UserID:     guestID,
		PropertyID: propertyID,
		Status:     status,
		StartDate:  end.AddDate(0, 0, -3),
		EndDate:    end,
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	var stored *model.Review
	repo := &mockReviewRepository{
		createFunc: func(_ context.Context, review *model.Review) error {
			stored = review
			review.ID = "r1"
			return nil
		},
	}
	bookings := &mockBookingReader{
		findByIDFunc: func(context.Context, string) (*model.Booking, error) {
			return stay(config.BookingCompleted, testNow.AddDate(0, 0, -10)), nil
		},
	}
	c := &mockCache{}

	review, err := newTestService(repo, bookings, &mockAuthorReader{}, c).Create(context.Background(), &model.ReviewRequest{
		BookingID: bookingID,
		UserID:    guestID,
		Rating:    5,
		Comment:   " Spotless ",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if review.ID != "r1" || stored.PropertyID != propertyID || stored.BookingID != bookingID || stored.Comment != "Spotless" {
		t.Errorf("stored = %+v", stored)
	}
	if len(c.deleted) != 1 || c.deleted[0] != "properties:detail:"+propertyID {
		t.Errorf("cache invalidations = %v", c.deleted)
	}
}

func TestCreate_Eligibility(t *testing.T) {
	tests := []struct {
		name       string
		booking    *model.Booking
		findErr    error
		userID     string
		wantStatus int
	}{
		{name: "completed stay", booking: stay(config.BookingCompleted, testNow.AddDate(0, 0, -1)), userID: guestID},
		{name: "confirmed stay already ended", booking: stay(config.BookingConfirmed, testNow.Add(-time.Hour)), userID: guestID},
		{name: "confirmed stay ending now", booking: stay(config.BookingConfirmed, testNow), userID: guestID},
		{name: "confirmed stay still running", booking: stay(config.BookingConfirmed, testNow.AddDate(0, 0, 2)), userID: guestID, wantStatus: http.StatusUnprocessableEntity},
		{name: "pending booking", booking: stay(config.BookingPending, testNow.AddDate(0, 0, -5)), userID: guestID, wantStatus: http.StatusUnprocessableEntity},
		{name: "cancelled booking", booking: stay(config.BookingCancelled, testNow.AddDate(0, 0, -5)), userID: guestID, wantStatus: http.StatusUnprocessableEntity},
		{name: "someone else's booking", booking: stay(config.BookingCompleted, testNow.AddDate(0, 0, -5)), userID: otherID, wantStatus: http.StatusUnprocessableEntity},
		{name: "booking not found", findErr: bookingserrors.ErrNotFound, userID: guestID, wantStatus: http.StatusNotFound},
		{name: "booking store down", findErr: errors.New("down"), userID: guestID, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockReviewRepository{
				createFunc: func(context.Context, *model.Review) error {
					created = true
					return nil
				},
			}
			bookings := &mockBookingReader{
				findByIDFunc: func(context.Context, string) (*model.Booking, error) { return tt.booking, tt.findErr },
			}

			_, err := newTestService(repo, bookings, &mockAuthorReader{}, &mockCache{}).Create(context.Background(), &model.ReviewRequest{
				BookingID: bookingID,
				UserID:    tt.userID,
				Rating:    4,
			})

			if tt.wantStatus == 0 {
				if err != nil || !created {
					t.Fatalf("Create() error = %v, created = %v", err, created)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
			if created {
				t.Error("review should not be stored")
			}
		})
	}
}

func TestCreate_Errors(t *testing.T) {
	completed := &mockBookingReader{
		findByIDFunc: func(context.Context, string) (*model.Booking, error) {
			return stay(config.BookingCompleted, testNow.AddDate(0, 0, -1)), nil
		},
	}

	tests := []struct {
		name       string
		req        model.ReviewRequest
		createErr  error
		wantStatus int
	}{
		{name: "rating out of range", req: model.ReviewRequest{BookingID: bookingID, UserID: guestID, Rating: 9}, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad booking id", req: model.ReviewRequest{BookingID: "b1", UserID: guestID, Rating: 3}, wantStatus: http.StatusUnprocessableEntity},
		{
			name:       "already reviewed",
			req:        model.ReviewRequest{BookingID: bookingID, UserID: guestID, Rating: 3},
			createErr:  fmt.Errorf("%w: %s", reviewserrors.ErrDuplicate, bookingID),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "store failure",
			req:        model.ReviewRequest{BookingID: bookingID, UserID: guestID, Rating: 3},
			createErr:  errors.New("write concern"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &mockCache{}
			repo := &mockReviewRepository{
				createFunc: func(context.Context, *model.Review) error { return tt.createErr },
			}

			_, err := newTestService(repo, completed, &mockAuthorReader{}, c).Create(context.Background(), &tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
			if len(c.deleted) != 0 {
				t.Error("cache must not be invalidated on failure")
			}
		})
	}
}

// ────────────────────────────────────────────────
// ListByProperty
// ────────────────────────────────────────────────

func TestListByProperty(t *testing.T) {
	repo := &mockReviewRepository{
		findByPropertyFunc: func(_ context.Context, id string, limit int, offset int64) ([]*model.Review, error) {
			if id != propertyID || limit != config.DefaultPageSize || offset != 0 {
				t.Errorf("FindByProperty(%s, %d, %d)", id, limit, offset)
			}
			return []*model.Review{
				{ID: "r1", UserID: guestID, Rating: 5},
				{ID: "r2", UserID: otherID, Rating: 3},
			}, nil
		},
		countByPropertyFunc: func(context.Context, string) (int64, error) { return 7, nil },
	}
	authors := &mockAuthorReader{
		findSummariesFunc: func(_ context.Context, ids []string) (map[string]*model.UserSummary, error) {
			if len(ids) != 2 {
				t.Errorf("ids = %v", ids)
			}
			return map[string]*model.UserSummary{guestID: {ID: guestID, Name: "Ana"}}, nil
		},
	}

	reviews, total, err := newTestService(repo, &mockBookingReader{}, authors, &mockCache{}).ListByProperty(context.Background(), propertyID, 0, -3)
	if err != nil {
		t.Fatalf("ListByProperty() unexpected error: %v", err)
	}
	if total != 7 || len(reviews) != 2 {
		t.Fatalf("got %d reviews, total %d", len(reviews), total)
	}
	if reviews[0].Author == nil || reviews[0].Author.Name != "Ana" {
		t.Errorf("first author = %+v", reviews[0].Author)
	}
	if reviews[1].Author != nil {
		t.Errorf("unresolved author should stay nil, got %+v", reviews[1].Author)
	}
}

func TestListByProperty_Errors(t *testing.T) {
	svc := newTestService(&mockReviewRepository{
		findByPropertyFunc: func(context.Context, string, int, int64) ([]*model.Review, error) {
			return nil, errors.New("down")
		},
	}, &mockBookingReader{}, &mockAuthorReader{}, &mockCache{})

	if _, _, err := svc.ListByProperty(context.Background(), "", 0, 0); apperrors.AsAppError(err).StatusCode() != http.StatusBadRequest {
		t.Errorf("empty id error = %v, want 400", err)
	}
	if _, _, err := svc.ListByProperty(context.Background(), propertyID, 0, 0); apperrors.AsAppError(err).StatusCode() != http.StatusInternalServerError {
		t.Errorf("store failure error = %v, want 500", err)
	}
}

func TestListByProperty_AuthorLookupFailureIsTolerated(t *testing.T) {
	repo := &mockReviewRepository{
		findByPropertyFunc: func(context.Context, string, int, int64) ([]*model.Review, error) {
			return []*model.Review{{ID: "r1", UserID: guestID, Rating: 4}}, nil
		},
		countByPropertyFunc: func(context.Context, string) (int64, error) { return 1, nil },
	}
	authors := &mockAuthorReader{
		findSummariesFunc: func(context.Context, []string) (map[string]*model.UserSummary, error) {
			return nil, errors.New("users collection unavailable")
		},
	}

	reviews, _, err := newTestService(repo, &mockBookingReader{}, authors, &mockCache{}).ListByProperty(context.Background(), propertyID, 10, 0)
	if err != nil || len(reviews) != 1 || reviews[0].Author != nil {
		t.Errorf("ListByProperty() = %+v, %v", reviews, err)
	}
}
