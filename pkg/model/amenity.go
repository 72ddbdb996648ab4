package model

import "smarthost/pkg/config"

type Amenity struct {
	ID       string                 `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name     string                 `json:"name" bson:"name" validate:"required,min=1,max=50"`
	Icon     string                 `json:"icon,omitempty" bson:"icon,omitempty"`
	Category config.AmenityCategory `json:"category" bson:"category" validate:"required,oneof=ESSENTIAL FEATURE LOCATION SAFETY OTHER"`
}
