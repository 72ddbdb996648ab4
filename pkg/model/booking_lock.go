package model

import "time"

// BookingLock is an advisory lock document. Its _id encodes the property and
// check-in day being booked; a TTL index on expires_at reaps abandoned locks.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
