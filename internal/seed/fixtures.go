package seed

import (
	"smarthost/pkg/config"
	"smarthost/pkg/model"
)

type imageFixture struct {
	URL     string
	Caption string
}

// propertyFixture references amenities by their position in amenityFixtures.
type propertyFixture struct {
	Property  model.Property
	Images    []imageFixture
	Amenities []int
}

var userFixtures = []model.User{
	{Email: "admin@smarthost.com", Name: "Admin User", Role: config.RoleAdmin},
	{Email: "host@smarthost.com", Name: "Host User", Role: config.RoleHost},
	{Email: "user@smarthost.com", Name: "Regular User", Role: config.RoleUser},
}

// hostFixture is the index of the user who owns every seeded listing.
const hostFixture = 1

const (
	amenityWiFi = iota
	amenityPool
	amenityKitchen
	amenityParking
	amenityAirConditioning
	amenityPetFriendly
	amenityGym
	amenityBeachAccess
	amenityHotTub
	amenityFireplace
)

var amenityFixtures = []model.Amenity{
	amenityWiFi:            {Name: "WiFi", Icon: "📶", Category: config.AmenityEssential},
	amenityPool:            {Name: "Pool", Icon: "🏊", Category: config.AmenityFeature},
	amenityKitchen:         {Name: "Kitchen", Icon: "🍳", Category: config.AmenityEssential},
	amenityParking:         {Name: "Parking", Icon: "🚗", Category: config.AmenityEssential},
	amenityAirConditioning: {Name: "Air Conditioning", Icon: "❄️", Category: config.AmenityEssential},
	amenityPetFriendly:     {Name: "Pet Friendly", Icon: "🐕", Category: config.AmenityOther},
	amenityGym:             {Name: "Gym", Icon: "💪", Category: config.AmenityFeature},
	amenityBeachAccess:     {Name: "Beach Access", Icon: "🏖️", Category: config.AmenityLocation},
	amenityHotTub:          {Name: "Hot Tub", Icon: "🛁", Category: config.AmenityFeature},
	amenityFireplace:       {Name: "Fireplace", Icon: "🔥", Category: config.AmenityFeature},
}

var propertyFixtures = []propertyFixture{
	{
		Property: model.Property{
			Title:        "Luxury Beach Villa",
			Description:  "A stunning beachfront villa with panoramic ocean views, private pool, and direct beach access.",
			Price:        450,
			Address:      "123 Ocean Drive",
			City:         "Malibu",
			State:        "California",
			Country:      "United States",
			ZipCode:      "90265",
			Bedrooms:     4,
			Bathrooms:    3,
			MaxGuests:    8,
			PropertyType: config.PropertyTypeVilla,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800", Caption: "Ocean view"},
			{URL: "https://images.unsplash.com/photo-1582268611958-ebfd161ef9cf?w=800", Caption: "Living room"},
		},
		Amenities: []int{amenityWiFi, amenityPool, amenityKitchen, amenityAirConditioning, amenityBeachAccess},
	},
	{
		Property: model.Property{
			Title:        "Modern Downtown Apartment",
			Description:  "Sleek apartment in the heart of the city with skyline views and premium amenities.",
			Price:        180,
			Address:      "456 Broadway",
			City:         "New York",
			State:        "New York",
			Country:      "United States",
			ZipCode:      "10013",
			Bedrooms:     2,
			Bathrooms:    2,
			MaxGuests:    4,
			PropertyType: config.PropertyTypeApartment,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800", Caption: "City view"},
			{URL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800", Caption: "Modern interior"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityAirConditioning, amenityGym},
	},
	{
		Property: model.Property{
			Title:        "Cozy Mountain Cabin",
			Description:  "Rustic cabin nestled in the mountains, perfect for a peaceful retreat with hiking trails nearby.",
			Price:        120,
			Address:      "789 Mountain Trail",
			City:         "Aspen",
			State:        "Colorado",
			Country:      "United States",
			ZipCode:      "81611",
			Bedrooms:     3,
			Bathrooms:    2,
			MaxGuests:    6,
			PropertyType: config.PropertyTypeCabin,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800", Caption: "Mountain cabin"},
			{URL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800", Caption: "Forest view"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityFireplace, amenityPetFriendly},
	},
	{
		Property: model.Property{
			Title:        "Elegant Parisian Loft",
			Description:  "Charming loft in Montmartre with exposed beams, artistic decor, and rooftop terrace.",
			Price:        220,
			Address:      "12 Rue de Montmartre",
			City:         "Paris",
			Country:      "France",
			ZipCode:      "75018",
			Bedrooms:     2,
			Bathrooms:    1,
			MaxGuests:    4,
			PropertyType: config.PropertyTypeApartment,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800", Caption: "Parisian loft"},
			{URL: "https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800", Caption: "Artistic interior"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityAirConditioning},
	},
	{
		Property: model.Property{
			Title:        "Tropical Island Bungalow",
			Description:  "Overwater bungalow with crystal clear lagoon views, snorkeling gear, and private deck.",
			Price:        380,
			Address:      "Matira Point",
			City:         "Bora Bora",
			Country:      "French Polynesia",
			Bedrooms:     1,
			Bathrooms:    1,
			MaxGuests:    2,
			PropertyType: config.PropertyTypeOther,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1540541338287-41700207dee6?w=800", Caption: "Overwater bungalow"},
			{URL: "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=800", Caption: "Lagoon view"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityBeachAccess, amenityHotTub},
	},
	{
		Property: model.Property{
			Title:        "Historic Tuscan Villa",
			Description:  "Restored 16th-century villa surrounded by vineyards, olive groves, and rolling hills.",
			Price:        320,
			Address:      "Via del Chianti 45",
			City:         "Florence",
			Country:      "Italy",
			ZipCode:      "50125",
			Bedrooms:     5,
			Bathrooms:    4,
			MaxGuests:    10,
			PropertyType: config.PropertyTypeVilla,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800", Caption: "Tuscan villa"},
			{URL: "https://images.unsplash.com/photo-1523906834658-6e24ef2386f9?w=800", Caption: "Vineyard view"},
		},
		Amenities: []int{amenityWiFi, amenityPool, amenityKitchen, amenityParking, amenityFireplace},
	},
	{
		Property: model.Property{
			Title:        "Modern Tokyo Penthouse",
			Description:  "Ultra-modern penthouse with panoramic city views, smart home technology, and rooftop garden.",
			Price:        280,
			Address:      "1-1-1 Shibuya",
			City:         "Tokyo",
			Country:      "Japan",
			ZipCode:      "150-0002",
			Bedrooms:     3,
			Bathrooms:    2,
			MaxGuests:    6,
			PropertyType: config.PropertyTypeApartment,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1542051841857-5f90071e7989?w=800", Caption: "Tokyo skyline"},
			{URL: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800", Caption: "Modern interior"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityAirConditioning, amenityGym},
	},
	{
		Property: model.Property{
			Title:        "Scandinavian Lake House",
			Description:  "Minimalist lakeside retreat with sauna, kayaks, and stunning aurora viewing opportunities.",
			Price:        200,
			Address:      "Lakeside Road 15",
			City:         "Stockholm",
			Country:      "Sweden",
			ZipCode:      "11122",
			Bedrooms:     4,
			Bathrooms:    2,
			MaxGuests:    8,
			PropertyType: config.PropertyTypeHouse,
		},
		Images: []imageFixture{
			{URL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800", Caption: "Lake house"},
			{URL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800", Caption: "Lake view"},
		},
		Amenities: []int{amenityWiFi, amenityKitchen, amenityHotTub, amenityFireplace},
	},
}
