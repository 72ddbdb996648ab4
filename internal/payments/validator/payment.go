package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/internal/payments/types"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// PaymentValidator turns a raw request body into a types.Request. Checks run
// in a fixed order: presence of method and amount, then the amount value,
// then the method, then the method-specific payload.
type PaymentValidator struct {
	validate        *validator.Validate
	logger          *logger.Logger
	defaultCurrency string
}

func NewPaymentValidator(log *logger.Logger, defaultCurrency string) *PaymentValidator {
	return &PaymentValidator{
		validate:        validator.New(),
		logger:          log,
		defaultCurrency: defaultCurrency,
	}
}

// Decode parses body. Unknown keys are ignored; known keys must carry the
// expected JSON type.
func (v *PaymentValidator) Decode(body []byte) (*types.Request, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.MalformedBody(paymentserrors.MsgInvalidJSON, err)
	}
	if dec.More() {
		return nil, apperrors.MalformedBody(paymentserrors.MsgInvalidJSON, errors.New("trailing data after JSON value"))
	}

	fields, _ := raw.(map[string]any)

	method, amount := fields["method"], fields["amount"]
	if isFalsy(method) || isFalsy(amount) {
		return nil, invalid(paymentserrors.ErrMissingFields, paymentserrors.MsgMissingFields)
	}

	value, ok := positiveNumber(amount)
	if !ok {
		return nil, invalid(paymentserrors.ErrInvalidAmount, paymentserrors.MsgInvalidAmount)
	}

	name, _ := method.(string)
	m := types.Method(name)
	if !m.Valid() {
		return nil, invalid(paymentserrors.ErrUnsupportedMethod, paymentserrors.MsgUnsupportedMethod)
	}

	req := &types.Request{
		Method: m,
		Amount: value,
	}

	var err error
	if req.Currency, err = optionalString(fields, "currency", v.defaultCurrency); err != nil {
		return nil, err
	}
	if req.BookingID, err = optionalString(fields, "bookingId", ""); err != nil {
		return nil, err
	}
	if req.UserID, err = optionalString(fields, "userId", ""); err != nil {
		return nil, err
	}
	if err := v.validateReferences(req); err != nil {
		return nil, err
	}

	switch m {
	case types.MethodCreditCard:
		card, err := v.decodeCreditCard(fields)
		if err != nil {
			return nil, err
		}
		req.Details = card
	case types.MethodPix:
		var pix types.Pix
		if pix.PixKey, err = optionalString(fields, "pixKey", ""); err != nil {
			return nil, err
		}
		if pix.QRCode, err = optionalString(fields, "qrCode", ""); err != nil {
			return nil, err
		}
		req.Details = pix
	case types.MethodPayPal:
		req.Details = types.PayPal{}
	}

	return req, nil
}

func (v *PaymentValidator) decodeCreditCard(fields map[string]any) (types.CreditCard, error) {
	var card types.CreditCard
	var err error
	if card.CardNumber, err = optionalString(fields, "cardNumber", ""); err != nil {
		return card, err
	}
	if card.ExpiryDate, err = optionalString(fields, "expiryDate", ""); err != nil {
		return card, err
	}
	if card.CVV, err = optionalString(fields, "cvv", ""); err != nil {
		return card, err
	}
	if card.CardholderName, err = optionalString(fields, "cardholderName", ""); err != nil {
		return card, err
	}

	if err := v.validate.Struct(card); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			missing := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				missing = append(missing, fe.Field())
			}
			v.logger.Warn("credit card payment rejected", "missing_fields", missing)
			return card, invalid(paymentserrors.ErrMissingCardFields, paymentserrors.MsgMissingCardFields)
		}
		return card, err
	}

	return card, nil
}

func (v *PaymentValidator) validateReferences(req *types.Request) error {
	refs := []struct {
		field string
		value string
	}{
		{"bookingId", req.BookingID},
		{"userId", req.UserID},
	}
	for _, ref := range refs {
		if ref.value == "" {
			continue
		}
		if err := v.validate.Var(ref.value, "mongodb"); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("%s must be a valid MongoDB ObjectID", ref.field))
		}
	}
	return nil
}

func invalid(sentinel error, message string) *apperrors.AppError {
	return apperrors.Wrap(sentinel, apperrors.CodeInvalidInput, message, http.StatusBadRequest)
}

// isFalsy reports whether a decoded JSON value counts as absent: missing,
// null, false, zero or the empty string.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	}
	return false
}

func positiveNumber(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// optionalString reads a string field. Absent, null and empty values yield
// fallback; any other non-string value is rejected.
func optionalString(fields map[string]any, key, fallback string) (string, error) {
	switch val := fields[key].(type) {
	case nil:
		return fallback, nil
	case string:
		if val == "" {
			return fallback, nil
		}
		return val, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("%s must be a string", key))
	}
}
