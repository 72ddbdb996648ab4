package model

import "time"

type Review struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Rating     int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty" validate:"omitempty,max=2000"`
	UserID     string    `json:"userId" bson:"user_id" validate:"required,mongodb"`
	PropertyID string    `json:"propertyId" bson:"property_id" validate:"required,mongodb"`
	BookingID  string    `json:"bookingId" bson:"booking_id" validate:"required,mongodb"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`

	Author *UserSummary `json:"user,omitempty" bson:"-"`
}

// ReviewRequest is the client payload for reviewing a finished stay. The
// property is taken from the booking.
type ReviewRequest struct {
	BookingID string `json:"bookingId" validate:"required,mongodb"`
	UserID    string `json:"userId" validate:"required,mongodb"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
