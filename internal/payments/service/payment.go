package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/internal/payments/events"
	"smarthost/internal/payments/types"
	"smarthost/internal/payments/validator"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
)

const publishTimeout = 5 * time.Second

type PaymentService interface {
	Process(ctx context.Context, body []byte) (*types.Result, error)
}

type paymentService struct {
	validator  *validator.PaymentValidator
	processors map[types.Method]Processor
	publisher  events.Publisher
	now        func() time.Time
	cfg        *config.Config
}

type Option func(*paymentService)

func WithSleeper(s Sleeper) Option {
	return func(ps *paymentService) {
		for _, p := range ps.processors {
			switch proc := p.(type) {
			case *creditCardProcessor:
				proc.sleeper = s
			case *pixProcessor:
				proc.sleeper = s
			}
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(ps *paymentService) {
		ps.now = now
		for _, p := range ps.processors {
			switch proc := p.(type) {
			case *creditCardProcessor:
				proc.now = now
			case *pixProcessor:
				proc.now = now
			case *payPalProcessor:
				proc.now = now
			}
		}
	}
}

// WithProcessor replaces the processor for one method.
func WithProcessor(method types.Method, p Processor) Option {
	return func(ps *paymentService) {
		ps.processors[method] = p
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(ps *paymentService) {
		ps.publisher = p
	}
}

func NewPaymentService(cfg *config.Config, opts ...Option) (PaymentService, error) {
	checkout, err := url.Parse(cfg.PayPalCheckoutURL)
	if err != nil {
		return nil, fmt.Errorf("invalid paypal checkout url: %w", err)
	}

	sleeper := timerSleeper{}
	ps := &paymentService{
		validator: validator.NewPaymentValidator(cfg.Log, cfg.DefaultCurrency),
		processors: map[types.Method]Processor{
			types.MethodCreditCard: &creditCardProcessor{delay: cfg.CardProcessingDelay, sleeper: sleeper, now: time.Now},
			types.MethodPix:        &pixProcessor{delay: cfg.PixProcessingDelay, sleeper: sleeper, now: time.Now},
			types.MethodPayPal:     &payPalProcessor{checkoutURL: checkout, returnURL: cfg.PayPalReturnURL, now: time.Now},
		},
		publisher: events.NopPublisher{},
		now:       time.Now,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(ps)
	}

	return ps, nil
}

func (s *paymentService) Process(ctx context.Context, body []byte) (*types.Result, error) {
	req, err := s.validator.Decode(body)
	if err != nil {
		s.cfg.Log.Warn("payment request rejected", "error", err)
		return nil, err
	}

	result, err := s.dispatch(ctx, req)
	if err != nil {
		s.cfg.Log.Error("payment processing failed",
			"method", req.Method,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal(paymentserrors.MsgInternal, err)
	}

	s.cfg.Log.Info("payment processed",
		"transaction_id", result.TransactionID,
		"method", result.Method,
		"status", result.Status,
		"amount", result.Amount,
		"currency", result.Currency,
	)

	if req.BookingID != "" {
		s.publish(ctx, req, result)
	}

	return result, nil
}

// dispatch runs exactly one processor. A panicking processor is reported as
// an error so the caller can answer with a generic 500.
func (s *paymentService) dispatch(ctx context.Context, req *types.Request) (result *types.Result, err error) {
	if types.MethodOf(req.Details) != req.Method {
		return nil, fmt.Errorf("payload %T does not belong to method %q", req.Details, req.Method)
	}

	p, ok := s.processors[req.Method]
	if !ok {
		return nil, fmt.Errorf("no processor registered for %q", req.Method)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %v", paymentserrors.ErrProcessorPanic, rec)
		}
	}()

	result, err = p.Process(ctx, req)
	if err == nil && result == nil {
		err = fmt.Errorf("processor for %q returned no result", req.Method)
	}
	return result, err
}

func (s *paymentService) publish(ctx context.Context, req *types.Request, result *types.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := types.Event{
		TransactionID: result.TransactionID,
		Method:        result.Method,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Status:        result.Status,
		BookingID:     req.BookingID,
		UserID:        req.UserID,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("failed to publish payment event",
			"transaction_id", result.TransactionID,
			"booking_id", req.BookingID,
			"error", err,
		)
	}
}
