package model

import (
	"time"

	"smarthost/pkg/config"
)

type Booking struct {
	ID         string               `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StartDate  time.Time            `json:"startDate" bson:"start_date" validate:"required"`
	EndDate    time.Time            `json:"endDate" bson:"end_date" validate:"required,gtfield=StartDate"`
	TotalPrice float64              `json:"totalPrice" bson:"total_price" validate:"gte=0"`
	GuestCount int                  `json:"guestCount" bson:"guest_count" validate:"required,min=1"`
	Status     config.BookingStatus `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	UserID     string               `json:"userId" bson:"user_id" validate:"required,mongodb"`
	PropertyID string               `json:"propertyId" bson:"property_id" validate:"required,mongodb"`
	CreatedAt  time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updated_at"`
}

// Nights is the number of whole nights between check-in and check-out.
func (b *Booking) Nights() int {
	return NightsBetween(b.StartDate, b.EndDate)
}

// Overlaps reports whether the half-open stays [start, end) intersect.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// BookingRequest is the client payload for reserving a stay. Dates are
// calendar days in YYYY-MM-DD form.
type BookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required,mongodb"`
	UserID     string `json:"userId" validate:"required,mongodb"`
	CheckIn    string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	GuestCount int    `json:"guestCount" validate:"required,min=1"`
}
