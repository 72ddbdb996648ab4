package worker

import (
	"context"
	"errors"
	"fmt"
	"math"

	bookingserrors "smarthost/internal/bookings/errors"
	bookingsservice "smarthost/internal/bookings/service"
	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/internal/payments/repository"
	"smarthost/internal/payments/types"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/kafka"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
	"smarthost/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const amountTolerance = 0.005

// BookingConfirmer is the part of the booking service the worker drives.
type BookingConfirmer interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Confirm(ctx context.Context, id string, hook bookingsservice.ConfirmHook) (*model.Booking, error)
}

// PaymentHandler links payment events to bookings. Every event is recorded
// once, keyed by its transaction id.
type PaymentHandler struct {
	bookings BookingConfirmer
	payments repository.PaymentRepository
	log      *logger.Logger
}

func NewPaymentHandler(bookings BookingConfirmer, payments repository.PaymentRepository, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		bookings: bookings,
		payments: payments,
		log:      log,
	}
}

// Handle satisfies kafka.MessageHandler. Returned errors are classified for
// the consumer: transient ones are retried, the rest are dead-lettered.
func (h *PaymentHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event types.Event
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("deserialization failed", err)
	}
	if err := validateEvent(event); err != nil {
		return kafka.NewPermanentError("invalid message", err).
			WithDetail("event_type", msg.GetEventType())
	}

	log := h.log.With("transaction_id", event.TransactionID, "booking_id", event.BookingID)

	if _, err := h.payments.FindByIntentID(ctx, event.TransactionID); err == nil {
		log.Info("payment already recorded, skipping")
		return nil
	} else if !errors.Is(err, paymentserrors.ErrPaymentNotFound) {
		return kafka.NewTransientError("failed to look up payment", err)
	}

	booking, err := h.bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) || apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			return kafka.NewBusinessError("booking not found", paymentserrors.ErrBookingNotFound).
				WithDetail("booking_id", event.BookingID)
		}
		return kafka.NewTransientError("failed to load booking", err)
	}

	if math.Abs(event.Amount-booking.TotalPrice) > amountTolerance {
		return kafka.NewBusinessError("payment amount mismatch", paymentserrors.ErrAmountMismatch).
			WithDetail("amount", event.Amount).
			WithDetail("total_price", booking.TotalPrice)
	}

	payment := newPayment(event)

	if event.Status != types.StatusCompleted {
		return h.record(ctx, log, payment)
	}

	_, err = h.bookings.Confirm(ctx, booking.ID, func(sessCtx mongo.SessionContext, _ *model.Booking) error {
		return h.payments.Create(sessCtx, payment)
	})
	switch {
	case err == nil:
		log.Info("booking confirmed by payment", "amount", event.Amount, "method", event.Method)
		return nil
	case errors.Is(err, paymentserrors.ErrDuplicatePayment):
		log.Info("payment recorded by a concurrent delivery")
		return nil
	case errors.Is(err, bookingserrors.ErrLocked):
		return kafka.NewTransientError("booking lock is held, temporary failure", err)
	case apperrors.HasCode(err, apperrors.CodeConflict):
		log.Warn("booking cannot be confirmed, recording payment for refund", "reason", err)
		payment.Status = config.PaymentRefunded
		return h.record(ctx, log, payment)
	default:
		return kafka.NewTransientError("failed to confirm booking", err)
	}
}

func (h *PaymentHandler) record(ctx context.Context, log *logger.Logger, payment *model.Payment) error {
	if err := h.payments.Create(ctx, payment); err != nil {
		if errors.Is(err, paymentserrors.ErrDuplicatePayment) {
			return nil
		}
		return kafka.NewTransientError("failed to record payment", err)
	}
	log.Info("payment recorded", "status", payment.Status)
	return nil
}

func newPayment(event types.Event) *model.Payment {
	return &model.Payment{
		Amount:          event.Amount,
		Currency:        sanitizer.SanitizeCurrency(event.Currency),
		Status:          event.Status.PaymentStatus(),
		PaymentMethod:   string(event.Method),
		PaymentIntentID: event.TransactionID,
		UserID:          event.UserID,
		BookingID:       event.BookingID,
	}
}

func validateEvent(event types.Event) error {
	switch {
	case event.TransactionID == "":
		return errors.New("event has no transaction id")
	case event.BookingID == "":
		return errors.New("event has no booking id")
	case !event.Method.Valid():
		return fmt.Errorf("unknown payment method %q", event.Method)
	case event.Amount <= 0:
		return fmt.Errorf("amount must be positive, got %v", event.Amount)
	}
	return nil
}
