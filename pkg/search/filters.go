package search

import (
	"strings"

	"smarthost/pkg/model"
)

// Filters narrows a property list in memory. Zero values mean "no filter".
type Filters struct {
	Search    string   `json:"search,omitempty"`
	MinPrice  float64  `json:"minPrice,omitempty"`
	MaxPrice  float64  `json:"maxPrice,omitempty"`
	City      string   `json:"city,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type Stats struct {
	Total    int     `json:"total"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	AvgPrice float64 `json:"avgPrice"`
}

func (f Filters) Match(p *model.Property) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !containsFold(p.Title, term) &&
			!containsFold(p.Description, term) &&
			!containsFold(p.City, term) &&
			!containsFold(p.Country, term) {
			return false
		}
	}

	price := p.Price.Float64()
	if f.MinPrice > 0 && price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}

	if f.City != "" && !strings.EqualFold(p.City, f.City) {
		return false
	}

	if len(f.Amenities) > 0 {
		have := make(map[string]struct{}, len(p.Amenities))
		for _, a := range p.Amenities {
			have[strings.ToLower(a.Name)] = struct{}{}
		}
		for _, want := range f.Amenities {
			if _, ok := have[strings.ToLower(want)]; !ok {
				return false
			}
		}
	}

	return true
}

// Apply returns the properties that match every filter, preserving order.
func (f Filters) Apply(properties []*model.Property) []*model.Property {
	out := make([]*model.Property, 0, len(properties))
	for _, p := range properties {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// ComputeStats summarizes prices. An empty list yields all zeros.
func ComputeStats(properties []*model.Property) Stats {
	stats := Stats{Total: len(properties)}
	if len(properties) == 0 {
		return stats
	}

	var sum float64
	for i, p := range properties {
		price := p.Price.Float64()
		if i == 0 || price < stats.MinPrice {
			stats.MinPrice = price
		}
		if i == 0 || price > stats.MaxPrice {
			stats.MaxPrice = price
		}
		sum += price
	}
	stats.AvgPrice = sum / float64(len(properties))
	return stats
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
