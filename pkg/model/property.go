package model

import (
	"time"

	"smarthost/pkg/config"
)

// Property is a rental listing. Images are embedded because they live and die
// with the property; amenities are shared and referenced by id.
type Property struct {
	ID           string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title        string              `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description  string              `json:"description" bson:"description" validate:"required"`
	Price        Price               `json:"price" bson:"price" validate:"gt=0"`
	Address      string              `json:"address" bson:"address" validate:"required"`
	City         string              `json:"city" bson:"city" validate:"required"`
	State        string              `json:"state,omitempty" bson:"state,omitempty"`
	Country      string              `json:"country" bson:"country" validate:"required"`
	ZipCode      string              `json:"zipCode,omitempty" bson:"zip_code,omitempty"`
	Bedrooms     int                 `json:"bedrooms" bson:"bedrooms" validate:"min=0"`
	Bathrooms    int                 `json:"bathrooms" bson:"bathrooms" validate:"min=0"`
	MaxGuests    int                 `json:"maxGuests" bson:"max_guests" validate:"min=1"`
	PropertyType config.PropertyType `json:"propertyType" bson:"property_type" validate:"required,oneof=APARTMENT HOUSE VILLA CABIN OTHER"`
	OwnerID      string              `json:"ownerId" bson:"owner_id" validate:"required,mongodb"`
	IsFeatured   bool                `json:"isFeatured" bson:"is_featured"`
	IsActive     bool                `json:"isActive" bson:"is_active"`
	Images       []PropertyImage     `json:"images" bson:"images" validate:"omitempty,dive"`
	AmenityIDs   []string            `json:"amenityIds,omitempty" bson:"amenity_ids" validate:"omitempty,dive,mongodb"`
	CreatedAt    time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updated_at"`

	Amenities []Amenity    `json:"amenities,omitempty" bson:"-"`
	Owner     *UserSummary `json:"owner,omitempty" bson:"-"`
	Reviews   []Review     `json:"reviews,omitempty" bson:"-"`
}

type PropertyImage struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	URL       string    `json:"url" bson:"url" validate:"required,url"`
	Caption   string    `json:"caption,omitempty" bson:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
