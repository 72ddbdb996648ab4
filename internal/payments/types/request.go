package types

import (
	"time"

	"smarthost/pkg/config"
)

type Method string

const (
	MethodCreditCard Method = "credit-card"
	MethodPix        Method = "pix"
	MethodPayPal     Method = "paypal"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCreditCard, MethodPix, MethodPayPal:
		return true
	}
	return false
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// PaymentStatus maps a processor status onto the persisted payment status.
func (s Status) PaymentStatus() config.PaymentStatus {
	if s == StatusCompleted {
		return config.PaymentCompleted
	}
	return config.PaymentPending
}

// Request is a decoded payment request. Exactly one variant is carried in
// Details and its concrete type always agrees with Method.
type Request struct {
	Method    Method
	Amount    float64
	Currency  string
	BookingID string
	UserID    string
	Details   Details
}

// Details is implemented by the method-specific payloads only.
type Details interface {
	method() Method
}

type CreditCard struct {
	CardNumber     string `json:"cardNumber" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	CardholderName string `json:"cardholderName" validate:"required"`
}

func (CreditCard) method() Method { return MethodCreditCard }

type Pix struct {
	PixKey string `json:"pixKey"`
	QRCode string `json:"qrCode"`
}

func (Pix) method() Method { return MethodPix }

type PayPal struct{}

func (PayPal) method() Method { return MethodPayPal }

// MethodOf reports the method a variant belongs to.
func MethodOf(d Details) Method {
	if d == nil {
		return ""
	}
	return d.method()
}

type Result struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transactionId"`
	Method        Method  `json:"method"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        Status  `json:"status"`
	QRCode        string  `json:"qrCode,omitempty"`
	RedirectURL   string  `json:"redirectUrl,omitempty"`
}

// Event is published after a successful branch when the request is tied to
// a booking.
type Event struct {
	TransactionID string    `json:"transactionId"`
	Method        Method    `json:"method"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        Status    `json:"status"`
	BookingID     string    `json:"bookingId"`
	UserID        string    `json:"userId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

const (
	EventPaymentCompleted = "payment.completed"
	EventPaymentPending   = "payment.pending"
)

func (e Event) Type() string {
	if e.Status == StatusCompleted {
		return EventPaymentCompleted
	}
	return EventPaymentPending
}
