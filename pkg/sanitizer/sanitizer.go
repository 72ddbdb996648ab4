package sanitizer

import (
	"net/url"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func SanitizeEmail(input string) string {
	return Pipeline{strings.TrimSpace, strings.ToLower}.Apply(input)
}

func SanitizeCurrency(input string) string {
	return Pipeline{strings.TrimSpace, strings.ToUpper}.Apply(input)
}

// SanitizeText collapses runs of whitespace into single spaces.
func SanitizeText(input string) string {
	return TrimAndNormalize(input)
}

// SanitizeImageURL keeps path and query untouched because CDN image URLs are
// case sensitive; only the scheme and host are normalized.
func SanitizeImageURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	return u.String()
}

// ImageHost returns the lowercase hostname of an image URL, without port.
func ImageHost(input string) string {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	return out
}

func SanitizeAmenityNames(names []string) []string {
	return SanitizeSlice(names, TrimAndNormalize)
}
