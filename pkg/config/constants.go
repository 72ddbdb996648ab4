package config

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleHost  Role = "HOST"
	RoleUser  Role = "USER"
)

type PropertyType string

const (
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeHouse     PropertyType = "HOUSE"
	PropertyTypeVilla     PropertyType = "VILLA"
	PropertyTypeCabin     PropertyType = "CABIN"
	PropertyTypeOther     PropertyType = "OTHER"
)

type AmenityCategory string

const (
	AmenityEssential AmenityCategory = "ESSENTIAL"
	AmenityFeature   AmenityCategory = "FEATURE"
	AmenityLocation  AmenityCategory = "LOCATION"
	AmenitySafety    AmenityCategory = "SAFETY"
	AmenityOther     AmenityCategory = "OTHER"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)
