package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	bookingserrors "smarthost/internal/bookings/errors"
	"smarthost/internal/bookings/validator"
	propertieserrors "smarthost/internal/properties/errors"
	"smarthost/pkg/config"
	mongotx "smarthost/pkg/db/mongo"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
	"smarthost/pkg/presenter"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	propertyID = "507f1f77bcf86cd799439012"
	userID     = "507f1f77bcf86cd799439011"
	bookingID  = "507f1f77bcf86cd799439013"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc          func(ctx context.Context, b *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	findByUserFunc      func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	countByUserFunc     func(ctx context.Context, userID string) (int64, error)
	findOverlappingFunc func(ctx context.Context, propertyID string, start, end time.Time, status config.BookingStatus, excludeID string) ([]*model.Booking, error)
	updateStatusFunc    func(ctx context.Context, id string, from []config.BookingStatus, to config.BookingStatus) error
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	b.ID = bookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countByUserFunc != nil {
		return m.countByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, propertyID string, start, end time.Time, status config.BookingStatus, excludeID string) ([]*model.Booking, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, propertyID, start, end, status, excludeID)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, from []config.BookingStatus, to config.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	mu      sync.Mutex
	held    map[string]string
	created []*model.BookingLock
	deleted []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held == nil {
		m.held = map[string]string{}
	}
	if _, ok := m.held[lock.ID]; ok {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
	}
	m.held[lock.ID] = lock.Owner
	m.created = append(m.created, lock)
	return nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[lockID] == owner {
		delete(m.held, lockID)
	}
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockPropertyReader struct {
	findByIDFunc  func(ctx context.Context, id string) (*model.Property, error)
	findByIDsFunc func(ctx context.Context, ids []string) ([]*model.Property, error)
}

func (m *mockPropertyReader) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, propertieserrors.ErrNotFound
}

func (m *mockPropertyReader) FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return nil, nil
}

// ────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────

var testNow = time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

func beachHouse() *model.Property {
	return &model.Property{
		ID:          propertyID,
		Title:       "Beach House",
		Description: "Steps from the sand",
		Price:       180,
		City:        "Malibu",
		Country:     "USA",
		MaxGuests:   4,
		IsActive:    true,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockLockRepository, props *mockPropertyReader) *bookingService {
	log := logger.Discard()
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	svc := NewBookingService(repo, locks, props, validator.NewBookingValidator(log), presenter.New([]string{"example.com"}), cfg).(*bookingService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		PropertyID: propertyID,
		UserID:     userID,
		CheckIn:    "2030-05-10",
		CheckOut:   "2030-05-13",
		GuestCount: 2,
	}
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != want {
		t.Errorf("status = %d, want %d (err %v)", got, want, err)
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	var overlapStatus config.BookingStatus
	repo := &mockBookingRepository{
		findOverlappingFunc: func(_ context.Context, pid string, start, end time.Time, status config.BookingStatus, _ string) ([]*model.Booking, error) {
			overlapStatus = status
			return nil, nil
		},
	}
	locks := &mockLockRepository{}
	props := &mockPropertyReader{
		findByIDFunc: func(context.Context, string) (*model.Property, error) { return beachHouse(), nil },
	}

	booking, err := newTestService(repo, locks, props).Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if booking.ID != bookingID {
		t.Errorf("ID = %q, want %q", booking.ID, bookingID)
	}
	if booking.Status != config.BookingPending {
		t.Errorf("Status = %s, want PENDING", booking.Status)
	}
	if booking.TotalPrice != 540 {
		t.Errorf("TotalPrice = %v, want 540", booking.TotalPrice)
	}
	if overlapStatus != config.BookingConfirmed {
		t.Errorf("overlap check status = %s, want CONFIRMED", overlapStatus)
	}

	if len(locks.created) != 1 || locks.created[0].ID != "booking_lock_"+propertyID {
		t.Fatalf("expected one property lock, got %+v", locks.created)
	}
	if !locks.created[0].ExpiresAt.Equal(testNow.Add(lockTTL)) {
		t.Errorf("lock expiry = %v, want %v", locks.created[0].ExpiresAt, testNow.Add(lockTTL))
	}
	if len(locks.held) != 0 {
		t.Error("lock should be released after Create")
	}
}

func TestCreate_RoundsTotalToCents(t *testing.T) {
	props := &mockPropertyReader{
		findByIDFunc: func(context.Context, string) (*model.Property, error) {
			p := beachHouse()
			p.Price = 99.999
			return p, nil
		},
	}

	booking, err := newTestService(&mockBookingRepository{}, &mockLockRepository{}, props).Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if booking.TotalPrice != 300 {
		t.Errorf("TotalPrice = %v, want 300", booking.TotalPrice)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        func() *model.BookingRequest
		property   func() (*model.Property, error)
		overlaps   []*model.Booking
		wantStatus int
		wantErr    error
	}{
		{
			name: "invalid request",
			req: func() *model.BookingRequest {
				r := validRequest()
				r.GuestCount = 0
				return r
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "property not found",
			property:   func() (*model.Property, error) { return nil, propertieserrors.ErrNotFound },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "inactive property",
			property: func() (*model.Property, error) {
				p := beachHouse()
				p.IsActive = false
				return p, nil
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "too many guests",
			req: func() *model.BookingRequest {
				r := validRequest()
				r.GuestCount = 5
				return r
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "property store failure",
			property:   func() (*model.Property, error) { return nil, errors.New("connection reset") },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "overlaps a confirmed booking",
			overlaps: []*model.Booking{{
				ID:        "507f1f77bcf86cd799439099",
				StartDate: day("2030-05-12"),
				EndDate:   day("2030-05-15"),
				Status:    config.BookingConfirmed,
			}},
			wantStatus: http.StatusConflict,
			wantErr:    bookingserrors.ErrDateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockBookingRepository{
				createFunc: func(context.Context, *model.Booking) error {
					created = true
					return nil
				},
				findOverlappingFunc: func(context.Context, string, time.Time, time.Time, config.BookingStatus, string) ([]*model.Booking, error) {
					return tt.overlaps, nil
				},
			}
			props := &mockPropertyReader{
				findByIDFunc: func(context.Context, string) (*model.Property, error) {
					if tt.property != nil {
						return tt.property()
					}
					return beachHouse(), nil
				},
			}
			req := validRequest()
			if tt.req != nil {
				req = tt.req()
			}

			_, err := newTestService(repo, &mockLockRepository{}, props).Create(context.Background(), req)
			assertStatus(t, err, tt.wantStatus)
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if created {
				t.Error("booking should not be stored")
			}
		})
	}
}

func TestCreate_LockHeld(t *testing.T) {
	locks := &mockLockRepository{held: map[string]string{"booking_lock_" + propertyID: "someone-else"}}
	props := &mockPropertyReader{
		findByIDFunc: func(context.Context, string) (*model.Property, error) { return beachHouse(), nil },
	}

	_, err := newTestService(&mockBookingRepository{}, locks, props).Create(context.Background(), validRequest())
	assertStatus(t, err, http.StatusConflict)
	if !errors.Is(err, bookingserrors.ErrLocked) {
		t.Errorf("error = %v, want ErrLocked", err)
	}
	if locks.held["booking_lock_"+propertyID] != "someone-else" {
		t.Error("a foreign lock must not be released")
	}
}

// ────────────────────────────────────────────────
// GetByID / Cancel
// ────────────────────────────────────────────────

func TestGetByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		repoErr    error
		wantStatus int
	}{
		{name: "found", id: bookingID},
		{name: "empty id", id: "", wantStatus: http.StatusBadRequest},
		{name: "invalid id", id: "abc", repoErr: bookingserrors.ErrInvalidID, wantStatus: http.StatusBadRequest},
		{name: "missing", id: bookingID, repoErr: bookingserrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store failure", id: bookingID, repoErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.Booking{ID: id}, nil
				},
			}

			b, err := newTestService(repo, &mockLockRepository{}, &mockPropertyReader{}).GetByID(context.Background(), tt.id)
			if tt.wantStatus == 0 {
				if err != nil || b.ID != tt.id {
					t.Fatalf("GetByID() = %v, %v", b, err)
				}
				return
			}
			assertStatus(t, err, tt.wantStatus)
		})
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name       string
		updateErr  error
		wantStatus int
	}{
		{name: "pending or confirmed"},
		{name: "already cancelled", updateErr: bookingserrors.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "missing", updateErr: bookingserrors.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var from []config.BookingStatus
			var to config.BookingStatus
			repo := &mockBookingRepository{
				updateStatusFunc: func(_ context.Context, _ string, f []config.BookingStatus, s config.BookingStatus) error {
					from, to = f, s
					return tt.updateErr
				},
				findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, Status: config.BookingCancelled}, nil
				},
			}

			b, err := newTestService(repo, &mockLockRepository{}, &mockPropertyReader{}).Cancel(context.Background(), bookingID)
			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
				return
			}
			if err != nil {
				t.Fatalf("Cancel() unexpected error: %v", err)
			}
			if b.Status != config.BookingCancelled || to != config.BookingCancelled {
				t.Errorf("status = %s, transition to %s", b.Status, to)
			}
			if len(from) != 2 || from[0] != config.BookingPending || from[1] != config.BookingConfirmed {
				t.Errorf("allowed source states = %v", from)
			}
		})
	}
}

// ────────────────────────────────────────────────
// Confirm
// ────────────────────────────────────────────────

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		status      config.BookingStatus
		overlaps    []*model.Booking
		hookErr     error
		wantStatus  int
		wantUpdate  bool
		wantHookRan bool
	}{
		{name: "pending is confirmed", status: config.BookingPending, wantUpdate: true, wantHookRan: true},
		{name: "already confirmed is a no-op", status: config.BookingConfirmed, wantHookRan: true},
		{name: "cancelled cannot be confirmed", status: config.BookingCancelled, wantStatus: http.StatusConflict},
		{name: "completed cannot be confirmed", status: config.BookingCompleted, wantStatus: http.StatusConflict},
		{
			name:   "dates taken meanwhile",
			status: config.BookingPending,
			overlaps: []*model.Booking{{
				StartDate: day("2030-05-11"),
				EndDate:   day("2030-05-12"),
				Status:    config.BookingConfirmed,
			}},
			wantStatus: http.StatusConflict,
		},
		{
			name:        "hook failure rolls back",
			status:      config.BookingPending,
			hookErr:     apperrors.Conflict("duplicate payment"),
			wantStatus:  http.StatusConflict,
			wantUpdate:  true,
			wantHookRan: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			var excluded string
			repo := &mockBookingRepository{
				findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
					return &model.Booking{
						ID:         id,
						PropertyID: propertyID,
						StartDate:  day("2030-05-10"),
						EndDate:    day("2030-05-13"),
						Status:     tt.status,
					}, nil
				},
				findOverlappingFunc: func(_ context.Context, _ string, _, _ time.Time, _ config.BookingStatus, exclude string) ([]*model.Booking, error) {
					excluded = exclude
					return tt.overlaps, nil
				},
				updateStatusFunc: func(context.Context, string, []config.BookingStatus, config.BookingStatus) error {
					updated = true
					return nil
				},
			}
			locks := &mockLockRepository{}

			hookRan := false
			hook := func(_ mongo.SessionContext, b *model.Booking) error {
				hookRan = true
				if b.Status != config.BookingConfirmed {
					t.Errorf("hook saw status %s, want CONFIRMED", b.Status)
				}
				return tt.hookErr
			}

			b, err := newTestService(repo, locks, &mockPropertyReader{}).Confirm(context.Background(), bookingID, hook)

			if updated != tt.wantUpdate {
				t.Errorf("status updated = %v, want %v", updated, tt.wantUpdate)
			}
			if hookRan != tt.wantHookRan {
				t.Errorf("hook ran = %v, want %v", hookRan, tt.wantHookRan)
			}
			if len(locks.held) != 0 {
				t.Error("lock should be released")
			}

			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
				return
			}
			if err != nil {
				t.Fatalf("Confirm() unexpected error: %v", err)
			}
			if b.Status != config.BookingConfirmed {
				t.Errorf("Status = %s, want CONFIRMED", b.Status)
			}
			if tt.status == config.BookingPending && excluded != bookingID {
				t.Errorf("overlap check excluded %q, want the booking itself", excluded)
			}
		})
	}
}

// ────────────────────────────────────────────────
// ListByUser
// ────────────────────────────────────────────────

func TestListByUser(t *testing.T) {
	otherProperty := "507f1f77bcf86cd799439020"
	repo := &mockBookingRepository{
		countByUserFunc: func(context.Context, string) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 7, nil
		},
		findByUserFunc: func(_ context.Context, _ string, limit int, offset int64) ([]*model.Booking, error) {
			if limit != config.DefaultPageSize || offset != 0 {
				t.Errorf("limit/offset = %d/%d, want normalized defaults", limit, offset)
			}
			return []*model.Booking{
				{ID: "b1", PropertyID: propertyID, StartDate: day("2030-05-10"), EndDate: day("2030-05-13")},
				{ID: "b2", PropertyID: otherProperty, StartDate: day("2030-06-01"), EndDate: day("2030-06-02")},
				{ID: "b3", PropertyID: propertyID, StartDate: day("2030-07-01"), EndDate: day("2030-07-05")},
			}, nil
		},
	}
	var requested []string
	props := &mockPropertyReader{
		findByIDsFunc: func(_ context.Context, ids []string) ([]*model.Property, error) {
			requested = ids
			return []*model.Property{beachHouse()}, nil
		},
	}

	views, total, err := newTestService(repo, &mockLockRepository{}, props).ListByUser(context.Background(), userID, 0, -3)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if total != 7 || len(views) != 3 {
		t.Fatalf("got %d views, total %d", len(views), total)
	}
	if len(requested) != 2 {
		t.Errorf("property ids requested = %v, want 2 distinct ids", requested)
	}

	if views[0].Nights != 3 || views[2].Nights != 4 {
		t.Errorf("nights = %d, %d", views[0].Nights, views[2].Nights)
	}
	if views[0].Property == nil || views[0].Property.FormattedPrice != "$180.00" {
		t.Errorf("first view card = %+v", views[0].Property)
	}
	if views[1].Property != nil {
		t.Error("a booking whose property is gone should have no card")
	}
}

func TestListByUser_Errors(t *testing.T) {
	svc := newTestService(&mockBookingRepository{
		countByUserFunc: func(context.Context, string) (int64, error) { return 0, errors.New("down") },
	}, &mockLockRepository{}, &mockPropertyReader{})

	_, _, err := svc.ListByUser(context.Background(), userID, 10, 0)
	assertStatus(t, err, http.StatusInternalServerError)

	_, _, err = svc.ListByUser(context.Background(), "", 10, 0)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestListByUser_PropertyLookupFailureKeepsBookings(t *testing.T) {
	repo := &mockBookingRepository{
		findByUserFunc: func(context.Context, string, int, int64) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "b1", PropertyID: propertyID}}, nil
		},
	}
	props := &mockPropertyReader{
		findByIDsFunc: func(context.Context, []string) ([]*model.Property, error) { return nil, errors.New("timeout") },
	}

	views, _, err := newTestService(repo, &mockLockRepository{}, props).ListByUser(context.Background(), userID, 10, 0)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Property != nil {
		t.Errorf("views = %+v", views)
	}
}
