package mongo

const (
	CollectionUsers         = "users"
	CollectionAmenities     = "amenities"
	CollectionProperties    = "properties"
	CollectionBookings      = "bookings"
	CollectionBookingLocks  = "booking_locks"
	CollectionReviews       = "reviews"
	CollectionPayments      = "payments"
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
	CollectionNotifications = "notifications"
)
