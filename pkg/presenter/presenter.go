// Package presenter derives display-ready views from property entities.
// Every function here is pure: same input, same output, no I/O.
package presenter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"smarthost/pkg/model"
	"smarthost/pkg/sanitizer"
)

const (
	DescriptionLimit  = 120
	VisibleAmenities  = 3
	GalleryLimit      = 4
	ImagePlaceholder  = "No image available"
	ellipsis          = "..."
	propertyURLPrefix = "/properties/"
	reviewDateLayout  = "2006-01-02"
)

// FormatPrice renders a price as "$" followed by two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatPriceText formats a price that arrived as text. Numeric text is
// normalized to two decimals; anything else is shown verbatim after "$".
func FormatPriceText(raw string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "$" + raw
	}
	return FormatPrice(f)
}

// TruncateDescription cuts descriptions longer than DescriptionLimit
// characters and appends an ellipsis.
func TruncateDescription(description string) string {
	if utf8.RuneCountInString(description) <= DescriptionLimit {
		return description
	}
	runes := []rune(description)
	return string(runes[:DescriptionLimit]) + ellipsis
}

func LocationText(city, country string) string {
	return city + ", " + country
}

func PropertyURL(id string) string {
	return propertyURLPrefix + id
}

type AmenitySubset struct {
	Visible   []model.Amenity `json:"visible"`
	Remaining int             `json:"remaining"`
	HasMore   bool            `json:"hasMore"`
}

// SubsetAmenities keeps the first VisibleAmenities entries and counts the rest.
func SubsetAmenities(amenities []model.Amenity) AmenitySubset {
	n := min(len(amenities), VisibleAmenities)
	visible := make([]model.Amenity, n)
	copy(visible, amenities[:n])

	remaining := len(amenities) - n
	return AmenitySubset{
		Visible:   visible,
		Remaining: remaining,
		HasMore:   remaining > 0,
	}
}

// AverageRating is the mean review rating rounded to one decimal, 0 when there are no reviews.
func AverageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return math.Round(float64(total)/float64(len(reviews))*10) / 10
}

// TotalPrice is the nightly price multiplied by the number of nights.
func TotalPrice(nightly float64, nights int) float64 {
	if nights <= 0 {
		return 0
	}
	return math.Round(nightly*float64(nights)*100) / 100
}

// Presenter builds property views, dropping images hosted outside the allowlist.
type Presenter struct {
	allowedHosts map[string]struct{}
}

func New(imageDomains []string) *Presenter {
	hosts := make(map[string]struct{}, len(imageDomains))
	for _, d := range imageDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			hosts[d] = struct{}{}
		}
	}
	return &Presenter{allowedHosts: hosts}
}

// ImageAllowed reports whether the image URL points at an allowlisted host.
func (p *Presenter) ImageAllowed(rawURL string) bool {
	host := sanitizer.ImageHost(rawURL)
	if host == "" {
		return false
	}
	_, ok := p.allowedHosts[host]
	return ok
}

func (p *Presenter) images(property *model.Property) []ImageView {
	var out []ImageView
	for _, img := range property.Images {
		url := sanitizer.SanitizeImageURL(img.URL)
		if url == "" || !p.ImageAllowed(url) {
			continue
		}
		alt := img.Caption
		if alt == "" {
			alt = property.Title
		}
		out = append(out, ImageView{ID: img.ID, URL: url, Caption: img.Caption, Alt: alt})
	}
	return out
}
