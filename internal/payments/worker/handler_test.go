package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bookingserrors "smarthost/internal/bookings/errors"
	bookingsservice "smarthost/internal/bookings/service"
	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/internal/payments/types"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/kafka"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
)

const bookingID = "507f1f77bcf86cd799439013"

type mockBookings struct {
	booking     *model.Booking
	getErr      error
	confirmErr  error
	confirmed   bool
	hookRanWith *model.Booking
}

func (m *mockBookings) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *mockBookings) Confirm(ctx context.Context, id string, hook bookingsservice.ConfirmHook) (*model.Booking, error) {
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	b := *m.booking
	b.Status = config.BookingConfirmed
	if err := hook(nil, &b); err != nil {
		return nil, err
	}
	m.confirmed = true
	m.hookRanWith = &b
	return &b, nil
}

type mockPayments struct {
	existing  map[string]*model.Payment
	findErr   error
	createErr error
	created   []*model.Payment
}

func (m *mockPayments) Create(ctx context.Context, p *model.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, p)
	return nil
}

func (m *mockPayments) FindByIntentID(ctx context.Context, id string) (*model.Payment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.existing[id]; ok {
		return p, nil
	}
	return nil, paymentserrors.ErrPaymentNotFound
}

func eventMessage(event types.Event) kafka.Message {
	return kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type()).
		Build()
}

func cardEvent() types.Event {
	return types.Event{
		TransactionID: "cc_1700000000123",
		Method:        types.MethodCreditCard,
		Amount:        540,
		Currency:      "USD",
		Status:        types.StatusCompleted,
		BookingID:     bookingID,
		UserID:        "507f1f77bcf86cd799439011",
		OccurredAt:    time.UnixMilli(1700000000123),
	}
}

func pendingBooking() *model.Booking {
	return &model.Booking{ID: bookingID, TotalPrice: 540, Status: config.BookingPending}
}

func TestHandle_CompletedPaymentConfirmsBooking(t *testing.T) {
	bookings := &mockBookings{booking: pendingBooking()}
	payments := &mockPayments{}
	h := NewPaymentHandler(bookings, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(cardEvent())); err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}

	if !bookings.confirmed {
		t.Fatal("booking should be confirmed")
	}
	if len(payments.created) != 1 {
		t.Fatalf("expected one payment, got %d", len(payments.created))
	}
	p := payments.created[0]
	if p.Status != config.PaymentCompleted || p.PaymentIntentID != "cc_1700000000123" || p.PaymentMethod != "credit-card" {
		t.Errorf("payment = %+v", p)
	}
	if p.BookingID != bookingID || p.Amount != 540 || p.Currency != "USD" {
		t.Errorf("payment = %+v", p)
	}
}

func TestHandle_NormalizesStoredCurrency(t *testing.T) {
	event := cardEvent()
	event.Currency = " usd "

	payments := &mockPayments{}
	h := NewPaymentHandler(&mockBookings{booking: pendingBooking()}, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(event)); err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if len(payments.created) != 1 || payments.created[0].Currency != "USD" {
		t.Errorf("payments = %+v", payments.created)
	}
}

func TestHandle_PendingPaymentIsRecordedOnly(t *testing.T) {
	event := cardEvent()
	event.Method = types.MethodPayPal
	event.TransactionID = "pp_1"
	event.Status = types.StatusPending

	bookings := &mockBookings{booking: pendingBooking()}
	payments := &mockPayments{}
	h := NewPaymentHandler(bookings, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(event)); err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if bookings.confirmed {
		t.Error("pending payment must not confirm the booking")
	}
	if len(payments.created) != 1 || payments.created[0].Status != config.PaymentPending {
		t.Errorf("payments = %+v", payments.created)
	}
}

func TestHandle_DuplicateDeliveryIsIgnored(t *testing.T) {
	bookings := &mockBookings{booking: pendingBooking()}
	payments := &mockPayments{existing: map[string]*model.Payment{
		"cc_1700000000123": {PaymentIntentID: "cc_1700000000123"},
	}}
	h := NewPaymentHandler(bookings, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(cardEvent())); err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if bookings.confirmed || len(payments.created) != 0 {
		t.Error("a replayed event must not write anything")
	}
}

func TestHandle_ConcurrentDuplicateIsIgnored(t *testing.T) {
	bookings := &mockBookings{booking: pendingBooking()}
	payments := &mockPayments{createErr: fmt.Errorf("%w: cc_1", paymentserrors.ErrDuplicatePayment)}
	h := NewPaymentHandler(bookings, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(cardEvent())); err != nil {
		t.Fatalf("Handle() error = %v, want nil", err)
	}
}

func TestHandle_ConflictRecordsRefund(t *testing.T) {
	bookings := &mockBookings{
		booking:    pendingBooking(),
		confirmErr: apperrors.Conflict("A CANCELLED booking cannot be confirmed"),
	}
	payments := &mockPayments{}
	h := NewPaymentHandler(bookings, payments, logger.Discard())

	if err := h.Handle(context.Background(), eventMessage(cardEvent())); err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if len(payments.created) != 1 || payments.created[0].Status != config.PaymentRefunded {
		t.Errorf("payments = %+v, want one REFUNDED", payments.created)
	}
}

func TestHandle_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		msg      func() kafka.Message
		bookings *mockBookings
		payments *mockPayments
		want     kafka.ErrorType
		wantErr  error
	}{
		{
			name: "undecodable payload",
			msg: func() kafka.Message {
				m := eventMessage(cardEvent())
				m.Value = []byte(`{"amount":`)
				return m
			},
			want: kafka.ErrorTypePermanent,
		},
		{
			name: "missing booking id",
			msg: func() kafka.Message {
				e := cardEvent()
				e.BookingID = ""
				return eventMessage(e)
			},
			want: kafka.ErrorTypePermanent,
		},
		{
			name: "unknown method",
			msg: func() kafka.Message {
				e := cardEvent()
				e.Method = "cash"
				return eventMessage(e)
			},
			want: kafka.ErrorTypePermanent,
		},
		{
			name:     "booking not found",
			bookings: &mockBookings{getErr: apperrors.NotFoundWithID("Booking", bookingID)},
			want:     kafka.ErrorTypeBusiness,
			wantErr:  paymentserrors.ErrBookingNotFound,
		},
		{
			name: "amount mismatch",
			bookings: &mockBookings{booking: &model.Booking{
				ID: bookingID, TotalPrice: 600, Status: config.BookingPending,
			}},
			want:    kafka.ErrorTypeBusiness,
			wantErr: paymentserrors.ErrAmountMismatch,
		},
		{
			name:     "payment lookup failure",
			payments: &mockPayments{findErr: errors.New("server selection error")},
			want:     kafka.ErrorTypeTransient,
		},
		{
			name:     "booking store failure",
			bookings: &mockBookings{getErr: apperrors.Internal("Failed to retrieve booking", errors.New("down"))},
			want:     kafka.ErrorTypeTransient,
		},
		{
			name: "lock held",
			bookings: &mockBookings{
				booking:    pendingBooking(),
				confirmErr: apperrors.Wrap(bookingserrors.ErrLocked, apperrors.CodeConflict, "locked", 409),
			},
			want:    kafka.ErrorTypeTransient,
			wantErr: bookingserrors.ErrLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := tt.bookings
			if bookings == nil {
				bookings = &mockBookings{booking: pendingBooking()}
			}
			payments := tt.payments
			if payments == nil {
				payments = &mockPayments{}
			}
			msg := eventMessage(cardEvent())
			if tt.msg != nil {
				msg = tt.msg()
			}

			err := NewPaymentHandler(bookings, payments, logger.Discard()).Handle(context.Background(), msg)
			if err == nil {
				t.Fatal("Handle() expected error")
			}
			if got := kafka.ClassifyError(err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v (err %v)", got, tt.want, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(payments.created) != 0 {
				t.Error("no payment should be written")
			}
		})
	}
}
