package model

import (
	"time"

	"smarthost/pkg/config"
)

type Payment struct {
	ID              string               `json:"id,omitempty" bson:"_id,omitempty"`
	Amount          float64              `json:"amount" bson:"amount" validate:"gt=0"`
	Currency        string               `json:"currency" bson:"currency" validate:"required,len=3"`
	Status          config.PaymentStatus `json:"status" bson:"status" validate:"required,oneof=PENDING COMPLETED FAILED REFUNDED"`
	PaymentMethod   string               `json:"paymentMethod" bson:"payment_method" validate:"required,oneof=credit-card pix paypal"`
	PaymentIntentID string               `json:"paymentIntentId" bson:"payment_intent_id" validate:"required"`
	UserID          string               `json:"userId,omitempty" bson:"user_id,omitempty" validate:"omitempty,mongodb"`
	BookingID       string               `json:"bookingId" bson:"booking_id" validate:"required,mongodb"`
	CreatedAt       time.Time            `json:"createdAt" bson:"created_at"`
}
