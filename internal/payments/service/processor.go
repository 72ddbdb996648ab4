package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"smarthost/internal/payments/types"
)

// Processor simulates one payment method.
type Processor interface {
	Process(ctx context.Context, req *types.Request) (*types.Result, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

type timerSleeper struct{}

// Sleep always waits the full delay. A simulated payment runs to completion
// even when the caller goes away.
func (timerSleeper) Sleep(_ context.Context, d time.Duration) error {
	if d > 0 {
		time.Sleep(d)
	}
	return nil
}

func transactionID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}

type creditCardProcessor struct {
	delay   time.Duration
	sleeper Sleeper
	now     func() time.Time
}

func (p *creditCardProcessor) Process(ctx context.Context, req *types.Request) (*types.Result, error) {
	if _, ok := req.Details.(types.CreditCard); !ok {
		return nil, fmt.Errorf("credit card processor got %T payload", req.Details)
	}
	if err := p.sleeper.Sleep(ctx, p.delay); err != nil {
		return nil, fmt.Errorf("credit card processing interrupted: %w", err)
	}

	return &types.Result{
		Success:       true,
		TransactionID: transactionID("cc", p.now()),
		Method:        types.MethodCreditCard,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        types.StatusCompleted,
	}, nil
}

type pixProcessor struct {
	delay   time.Duration
	sleeper Sleeper
	now     func() time.Time
}

func (p *pixProcessor) Process(ctx context.Context, req *types.Request) (*types.Result, error) {
	pix, ok := req.Details.(types.Pix)
	if !ok {
		return nil, fmt.Errorf("pix processor got %T payload", req.Details)
	}
	if err := p.sleeper.Sleep(ctx, p.delay); err != nil {
		return nil, fmt.Errorf("pix processing interrupted: %w", err)
	}

	return &types.Result{
		Success:       true,
		TransactionID: transactionID("pix", p.now()),
		Method:        types.MethodPix,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        types.StatusCompleted,
		QRCode:        pix.QRCode,
	}, nil
}

type payPalProcessor struct {
	checkoutURL *url.URL
	returnURL   string
	now         func() time.Time
}

func (p *payPalProcessor) Process(_ context.Context, req *types.Request) (*types.Result, error) {
	if _, ok := req.Details.(types.PayPal); !ok {
		return nil, fmt.Errorf("paypal processor got %T payload", req.Details)
	}

	return &types.Result{
		Success:       true,
		TransactionID: transactionID("pp", p.now()),
		Method:        types.MethodPayPal,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        types.StatusPending,
		RedirectURL:   p.redirectURL(req.Amount, req.Currency),
	}, nil
}

// redirectURL yields <checkout>?amount=<a>&currency=<c>&return_url=<escaped>.
func (p *payPalProcessor) redirectURL(amount float64, currency string) string {
	u := *p.checkoutURL
	q := u.Query()
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("currency", currency)
	q.Set("return_url", p.returnURL)
	u.RawQuery = q.Encode()
	return u.String()
}
