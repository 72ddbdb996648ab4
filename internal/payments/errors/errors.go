package errors

import "errors"

// Client-facing messages. These are part of the public contract of
// POST /api/payments and must not change wording.
const (
	MsgMissingFields     = "Missing required fields: method, amount"
	MsgInvalidAmount     = "Amount must be a positive number"
	MsgUnsupportedMethod = "Unsupported payment method. Valid methods: credit-card, pix, paypal"
	MsgMissingCardFields = "Missing required credit card fields"
	MsgInvalidJSON       = "Invalid JSON in request body"
	MsgInternal          = "Internal server error"
)

var (
	ErrMissingFields = errors.New("missing method or amount")

	ErrInvalidAmount = errors.New("amount is not a positive number")

	ErrUnsupportedMethod = errors.New("unsupported payment method")

	ErrMissingCardFields = errors.New("missing credit card fields")

	ErrMalformedBody = errors.New("request body is not valid JSON")

	ErrProcessorPanic = errors.New("payment processor panicked")

	ErrPaymentNotFound = errors.New("payment not found")

	ErrDuplicatePayment = errors.New("payment already recorded")

	ErrAmountMismatch = errors.New("payment amount does not match booking total")

	ErrBookingNotFound = errors.New("booking referenced by payment not found")
)
