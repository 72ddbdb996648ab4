package presenter

import (
	"time"

	"smarthost/pkg/config"
	"smarthost/pkg/model"
)

type ImageView struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Alt     string `json:"alt"`
}

type PropertyCard struct {
	ID                   string        `json:"id"`
	Title                string        `json:"title"`
	Price                float64       `json:"price"`
	FormattedPrice       string        `json:"formattedPrice"`
	LocationText         string        `json:"locationText"`
	TruncatedDescription string        `json:"truncatedDescription"`
	PrimaryImage         *ImageView    `json:"primaryImage"`
	ImagePlaceholder     string        `json:"imagePlaceholder,omitempty"`
	Amenities            AmenitySubset `json:"amenities"`
	PropertyURL          string        `json:"propertyUrl"`
	IsFeatured           bool          `json:"isFeatured"`
}

type ReviewView struct {
	ID          string    `json:"id"`
	AuthorName  string    `json:"authorName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	DisplayDate string    `json:"displayDate"`
}

type PropertyDetail struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Price            float64             `json:"price"`
	FormattedPrice   string              `json:"formattedPrice"`
	LocationText     string              `json:"locationText"`
	Address          string              `json:"address"`
	Bedrooms         int                 `json:"bedrooms"`
	Bathrooms        int                 `json:"bathrooms"`
	MaxGuests        int                 `json:"maxGuests"`
	PropertyType     config.PropertyType `json:"propertyType"`
	PrimaryImage     *ImageView          `json:"primaryImage"`
	Gallery          []ImageView         `json:"gallery"`
	ImagePlaceholder string              `json:"imagePlaceholder,omitempty"`
	Amenities        []model.Amenity     `json:"amenities"`
	Owner            *model.UserSummary  `json:"owner,omitempty"`
	Reviews          []ReviewView        `json:"reviews"`
	ReviewCount      int                 `json:"reviewCount"`
	AverageRating    float64             `json:"averageRating"`
	GuestOptions     []int               `json:"guestOptions"`
}

// Card derives the listing card for a property.
func (p *Presenter) Card(property *model.Property) PropertyCard {
	card := PropertyCard{
		ID:                   property.ID,
		Title:                property.Title,
		Price:                property.Price.Float64(),
		FormattedPrice:       FormatPrice(property.Price.Float64()),
		LocationText:         LocationText(property.City, property.Country),
		TruncatedDescription: TruncateDescription(property.Description),
		Amenities:            SubsetAmenities(property.Amenities),
		PropertyURL:          PropertyURL(property.ID),
		IsFeatured:           property.IsFeatured,
	}

	if images := p.images(property); len(images) > 0 {
		card.PrimaryImage = &images[0]
	} else {
		card.ImagePlaceholder = ImagePlaceholder
	}

	return card
}

func (p *Presenter) Cards(properties []*model.Property) []PropertyCard {
	cards := make([]PropertyCard, 0, len(properties))
	for _, property := range properties {
		cards = append(cards, p.Card(property))
	}
	return cards
}

// Detail derives the full property page view.
func (p *Presenter) Detail(property *model.Property) PropertyDetail {
	detail := PropertyDetail{
		ID:             property.ID,
		Title:          property.Title,
		Description:    property.Description,
		Price:          property.Price.Float64(),
		FormattedPrice: FormatPrice(property.Price.Float64()),
		LocationText:   LocationText(property.City, property.Country),
		Address:        property.Address,
		Bedrooms:       property.Bedrooms,
		Bathrooms:      property.Bathrooms,
		MaxGuests:      property.MaxGuests,
		PropertyType:   property.PropertyType,
		Gallery:        []ImageView{},
		Amenities:      property.Amenities,
		Owner:          property.Owner,
		Reviews:        make([]ReviewView, 0, len(property.Reviews)),
		ReviewCount:    len(property.Reviews),
		AverageRating:  AverageRating(property.Reviews),
	}
	if detail.Amenities == nil {
		detail.Amenities = []model.Amenity{}
	}

	images := p.images(property)
	if len(images) == 0 {
		detail.ImagePlaceholder = ImagePlaceholder
	} else {
		detail.PrimaryImage = &images[0]
		rest := images[1:]
		detail.Gallery = rest[:min(len(rest), GalleryLimit)]
	}

	for _, r := range property.Reviews {
		view := ReviewView{
			ID:          r.ID,
			Rating:      r.Rating,
			Comment:     r.Comment,
			CreatedAt:   r.CreatedAt,
			DisplayDate: r.CreatedAt.Format(reviewDateLayout),
		}
		if r.Author != nil {
			view.AuthorName = r.Author.Name
		}
		detail.Reviews = append(detail.Reviews, view)
	}

	for n := 1; n <= max(property.MaxGuests, 1); n++ {
		detail.GuestOptions = append(detail.GuestOptions, n)
	}

	return detail
}
