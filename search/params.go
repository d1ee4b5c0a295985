package search

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize    = 20
	MaxPageSize        = 100
	DefaultSuggestions = 10
	MaxSuggestions     = 50
)

// SearchParams enumerates every recognized search option with its type and
// default. Absent or unparseable values mean "no filter"; unrecognized query
// keys are ignored outright.
type SearchParams struct {
	Query        string
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
	Bedrooms     *int
	MaxGuests    *int
	Amenities    []string
	CheckIn      *time.Time
	CheckOut     *time.Time
	Latitude     *float64
	Longitude    *float64
	RadiusKm     *float64
	SortBy       string
	Page         int
	Limit        int

	// MergeQueryAndLocation keeps the legacy behavior where a request
	// carrying both query and location unions their text clauses into one
	// disjunction, broadening results instead of narrowing them. When false,
	// location becomes an independent conjunct.
	MergeQueryAndLocation bool
}

type SuggestParams struct {
	Query string
	Type  string
	Limit int
}

// ParseSearchParams reads search options from raw query values. Numeric
// parsing is permissive: a value that does not parse is treated as absent,
// never as a request error.
func ParseSearchParams(values url.Values) SearchParams {
	p := SearchParams{
		Query:                 strings.TrimSpace(values.Get("query")),
		Location:              strings.TrimSpace(values.Get("location")),
		PropertyType:          strings.ToLower(strings.TrimSpace(values.Get("propertyType"))),
		SortBy:                values.Get("sortBy"),
		Page:                  1,
		Limit:                 DefaultPageSize,
		MergeQueryAndLocation: true,
	}

	p.MinPrice = parseFloat(values.Get("minPrice"))
	p.MaxPrice = parseFloat(values.Get("maxPrice"))
	p.Bedrooms = parseInt(values.Get("bedrooms"))
	p.MaxGuests = parseInt(values.Get("maxGuests"))
	p.Latitude = parseFloat(values.Get("latitude"))
	p.Longitude = parseFloat(values.Get("longitude"))
	p.RadiusKm = parseFloat(values.Get("radius"))
	p.CheckIn = parseDate(values.Get("checkIn"))
	p.CheckOut = parseDate(values.Get("checkOut"))

	if raw := values.Get("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" {
				p.Amenities = append(p.Amenities, a)
			}
		}
	}

	if n := parseInt(values.Get("page")); n != nil && *n > 0 {
		p.Page = *n
	}
	if n := parseInt(values.Get("limit")); n != nil && *n > 0 {
		p.Limit = *n
		if p.Limit > MaxPageSize {
			p.Limit = MaxPageSize
		}
	}
	return p
}

// ParseSuggestParams reads autocomplete options. The type parameter is kept
// for API compatibility; every suggestion category is already address-derived,
// so "location" filters nothing.
func ParseSuggestParams(values url.Values) SuggestParams {
	p := SuggestParams{
		Query: strings.TrimSpace(values.Get("q")),
		Type:  values.Get("type"),
		Limit: DefaultSuggestions,
	}
	if n := parseInt(values.Get("limit")); n != nil && *n > 0 {
		p.Limit = *n
		if p.Limit > MaxSuggestions {
			p.Limit = MaxSuggestions
		}
	}
	return p
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
