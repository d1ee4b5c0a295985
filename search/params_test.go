package search

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseSearchParamsDefaults(t *testing.T) {
	p := ParseSearchParams(url.Values{})
	if p.Page != 1 {
		t.Fatalf("default page = %d, want 1", p.Page)
	}
	if p.Limit != DefaultPageSize {
		t.Fatalf("default limit = %d, want %d", p.Limit, DefaultPageSize)
	}
	if !p.MergeQueryAndLocation {
		t.Fatal("MergeQueryAndLocation should default to true")
	}
	if p.MinPrice != nil || p.MaxPrice != nil || p.Bedrooms != nil {
		t.Fatal("absent numeric params should be nil")
	}
}

func TestParseSearchParamsPermissiveNumerics(t *testing.T) {
	// Unparseable input means absent filter, never an error.
	v := url.Values{}
	v.Set("minPrice", "cheap")
	v.Set("maxPrice", "3000")
	v.Set("bedrooms", "two")
	v.Set("page", "zero")
	v.Set("limit", "-5")
	p := ParseSearchParams(v)

	if p.MinPrice != nil {
		t.Fatal("unparseable minPrice should be nil")
	}
	if p.MaxPrice == nil || *p.MaxPrice != 3000 {
		t.Fatalf("maxPrice = %v, want 3000", p.MaxPrice)
	}
	if p.Bedrooms != nil {
		t.Fatal("unparseable bedrooms should be nil")
	}
	if p.Page != 1 {
		t.Fatalf("page = %d, want 1", p.Page)
	}
	if p.Limit != DefaultPageSize {
		t.Fatalf("non-positive limit should fall back to default, got %d", p.Limit)
	}
}

func TestParseSearchParamsLimitClamp(t *testing.T) {
	v := url.Values{}
	v.Set("limit", "5000")
	p := ParseSearchParams(v)
	if p.Limit != MaxPageSize {
		t.Fatalf("limit = %d, want clamped %d", p.Limit, MaxPageSize)
	}
}

func TestParseSearchParamsAmenities(t *testing.T) {
	v := url.Values{}
	v.Set("amenities", "WiFi, ac ,,tv")
	p := ParseSearchParams(v)
	want := []string{"wifi", "ac", "tv"}
	if !reflect.DeepEqual(p.Amenities, want) {
		t.Fatalf("amenities = %v, want %v", p.Amenities, want)
	}
}

func TestParseSearchParamsPropertyTypeLowercased(t *testing.T) {
	v := url.Values{}
	v.Set("propertyType", "Apartment")
	p := ParseSearchParams(v)
	if p.PropertyType != "apartment" {
		t.Fatalf("propertyType = %q, want %q", p.PropertyType, "apartment")
	}
}

func TestParseSearchParamsDates(t *testing.T) {
	v := url.Values{}
	v.Set("checkIn", "2026-09-01")
	v.Set("checkOut", "not-a-date")
	p := ParseSearchParams(v)
	if p.CheckIn == nil {
		t.Fatal("valid checkIn should parse")
	}
	if p.CheckOut != nil {
		t.Fatal("invalid checkOut should be nil")
	}
}

func TestParseSuggestParams(t *testing.T) {
	v := url.Values{}
	v.Set("q", "  Pune ")
	v.Set("limit", "500")
	p := ParseSuggestParams(v)
	if p.Query != "Pune" {
		t.Fatalf("query = %q, want %q", p.Query, "Pune")
	}
	if p.Limit != MaxSuggestions {
		t.Fatalf("limit = %d, want clamped %d", p.Limit, MaxSuggestions)
	}

	p = ParseSuggestParams(url.Values{})
	if p.Limit != DefaultSuggestions {
		t.Fatalf("default suggestion limit = %d, want %d", p.Limit, DefaultSuggestions)
	}
}
