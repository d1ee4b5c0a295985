package search

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestBuildQueryAlwaysConstrainsActive(t *testing.T) {
	cases := []SearchParams{
		{Page: 1, Limit: 20},
		{Query: "Kota", Page: 1, Limit: 20},
		{PropertyType: "apartment", MinPrice: floatPtr(1000), Page: 1, Limit: 20},
	}
	for _, p := range cases {
		built := BuildQuery(p)
		if built.Filter["isActive"] != true {
			t.Fatalf("filter %v must constrain isActive", built.Filter)
		}
		if built.CountFilter["isActive"] != true {
			t.Fatalf("count filter %v must constrain isActive", built.CountFilter)
		}
	}
}

func TestBuildQueryInclusivePriceRange(t *testing.T) {
	built := BuildQuery(SearchParams{MinPrice: floatPtr(2000), MaxPrice: floatPtr(5000), Page: 1, Limit: 20})
	price, ok := built.Filter["price"].(bson.M)
	if !ok {
		t.Fatalf("price filter missing: %v", built.Filter)
	}
	if price["$gte"] != 2000.0 || price["$lte"] != 5000.0 {
		t.Fatalf("price bounds = %v, want inclusive 2000..5000", price)
	}
}

func TestBuildQueryPriceBoundsIndependent(t *testing.T) {
	built := BuildQuery(SearchParams{MinPrice: floatPtr(3000), Page: 1, Limit: 20})
	price := built.Filter["price"].(bson.M)
	if price["$gte"] != 3000.0 {
		t.Fatalf("min-only bound = %v", price)
	}
	if _, ok := price["$lte"]; ok {
		t.Fatal("absent maxPrice must not produce an upper bound")
	}
}

func TestBuildQueryMinimumSemantics(t *testing.T) {
	built := BuildQuery(SearchParams{Bedrooms: intPtr(2), MaxGuests: intPtr(4), Page: 1, Limit: 20})
	if got := built.Filter["bedrooms"].(bson.M)["$gte"]; got != 2 {
		t.Fatalf("bedrooms = %v, want $gte 2", got)
	}
	if got := built.Filter["maxGuests"].(bson.M)["$gte"]; got != 4 {
		t.Fatalf("maxGuests = %v, want $gte 4", got)
	}
}

func TestBuildQueryAmenitiesAllSemantics(t *testing.T) {
	built := BuildQuery(SearchParams{Amenities: []string{"wifi", "tv"}, Page: 1, Limit: 20})
	all, ok := built.Filter["amenities"].(bson.M)
	if !ok {
		t.Fatalf("amenities filter missing: %v", built.Filter)
	}
	if !reflect.DeepEqual(all["$all"], []string{"wifi", "tv"}) {
		t.Fatalf("amenities = %v, want $all [wifi tv]", all)
	}
}

func TestBuildQueryPropertyTypeLowercased(t *testing.T) {
	built := BuildQuery(SearchParams{PropertyType: "Villa", Page: 1, Limit: 20})
	if built.Filter["propertyType"] != "villa" {
		t.Fatalf("propertyType = %v, want villa", built.Filter["propertyType"])
	}
}

func TestBuildQueryTextDisjunction(t *testing.T) {
	built := BuildQuery(SearchParams{Query: "Kota", Page: 1, Limit: 20})
	or, ok := built.Filter["$or"].([]bson.M)
	if !ok || len(or) == 0 {
		t.Fatalf("free text must build an $or disjunction: %v", built.Filter)
	}
	// 6 address fields x (prefix + substring) + title + description.
	if len(or) != 14 {
		t.Fatalf("expected 14 disjuncts, got %d", len(or))
	}

	prefix, ok := or[0]["address.city"].(primitive.Regex)
	if !ok {
		t.Fatalf("first clause should be a city prefix regex: %v", or[0])
	}
	if prefix.Pattern != "^Kota" || prefix.Options != "i" {
		t.Fatalf("city prefix regex = %+v", prefix)
	}
}

func TestBuildQueryPinCodeExactMatch(t *testing.T) {
	built := BuildQuery(SearchParams{Query: "324005", Page: 1, Limit: 20})
	or := built.Filter["$or"].([]bson.M)
	if or[0]["address.pinCode"] != "324005" {
		t.Fatalf("6-digit query must add an exact PIN clause, got %v", or[0])
	}
}

func TestBuildQueryEscapesRegexInput(t *testing.T) {
	built := BuildQuery(SearchParams{Query: "a.b*", Page: 1, Limit: 20})
	or := built.Filter["$or"].([]bson.M)
	re := or[0]["address.city"].(primitive.Regex)
	if re.Pattern != `^a\.b\*` {
		t.Fatalf("regex metacharacters must be escaped, got %q", re.Pattern)
	}
}

func TestBuildQueryMergesQueryAndLocation(t *testing.T) {
	merged := BuildQuery(SearchParams{
		Query:                 "Kota",
		Location:              "Pune",
		MergeQueryAndLocation: true,
		Page:                  1,
		Limit:                 20,
	})
	or := merged.Filter["$or"].([]bson.M)
	// Query contributes 14 clauses, location 12 more into the same union.
	if len(or) != 26 {
		t.Fatalf("merged disjunction has %d clauses, want 26", len(or))
	}
	if _, hasAnd := merged.Filter["$and"]; hasAnd {
		t.Fatal("merged mode must not produce an independent location conjunct")
	}
}

func TestBuildQuerySeparateLocationConjunct(t *testing.T) {
	built := BuildQuery(SearchParams{
		Query:                 "Kota",
		Location:              "Pune",
		MergeQueryAndLocation: false,
		Page:                  1,
		Limit:                 20,
	})
	or := built.Filter["$or"].([]bson.M)
	if len(or) != 14 {
		t.Fatalf("query disjunction has %d clauses, want 14", len(or))
	}
	and, ok := built.Filter["$and"].([]bson.M)
	if !ok || len(and) != 1 {
		t.Fatalf("location must be an independent conjunct: %v", built.Filter)
	}
	if _, ok := and[0]["$or"]; !ok {
		t.Fatalf("location conjunct should be its own disjunction: %v", and[0])
	}
}

func TestBuildQueryLocationOnly(t *testing.T) {
	built := BuildQuery(SearchParams{Location: "Pune", Page: 1, Limit: 20})
	or, ok := built.Filter["$or"].([]bson.M)
	if !ok || len(or) != 12 {
		t.Fatalf("location-only should build a 12-clause disjunction: %v", built.Filter)
	}
}

func TestBuildQueryAvailabilityCoverage(t *testing.T) {
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	built := BuildQuery(SearchParams{CheckIn: &in, CheckOut: &out, Page: 1, Limit: 20})
	or, ok := built.Filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("availability should be a 3-way $or: %v", built.Filter)
	}
	covered := or[2]
	if covered["availability.startDate"].(bson.M)["$lte"] != in {
		t.Fatalf("window start must cover checkIn: %v", covered)
	}
	if covered["availability.endDate"].(bson.M)["$gte"] != out {
		t.Fatalf("window end must cover checkOut: %v", covered)
	}
}

func TestBuildQueryAvailabilityWithTextQuery(t *testing.T) {
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	// The text disjunction owns $or, so availability must move under $and.
	built := BuildQuery(SearchParams{Query: "Kota", CheckIn: &in, CheckOut: &out, Page: 1, Limit: 20})
	and, ok := built.Filter["$and"].([]bson.M)
	if !ok || len(and) != 1 {
		t.Fatalf("availability should join via $and: %v", built.Filter)
	}
	if inner, ok := and[0]["$or"].([]bson.M); !ok || len(inner) != 3 {
		t.Fatalf("availability conjunct should be a 3-way $or: %v", and[0])
	}
}

func TestBuildQueryAvailabilityRequiresBothDates(t *testing.T) {
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	built := BuildQuery(SearchParams{CheckIn: &in, Page: 1, Limit: 20})
	if _, ok := built.Filter["$or"]; ok {
		t.Fatal("checkIn alone must not build an availability clause")
	}
}

func TestBuildQueryGeoFilter(t *testing.T) {
	built := BuildQuery(SearchParams{
		Latitude:  floatPtr(25.18),
		Longitude: floatPtr(75.83),
		RadiusKm:  floatPtr(5),
		Page:      1,
		Limit:     20,
	})

	near, ok := built.Filter["address.coordinates"].(bson.M)["$nearSphere"].(bson.M)
	if !ok {
		t.Fatalf("find filter must use $nearSphere: %v", built.Filter)
	}
	if near["$maxDistance"] != 5000.0 {
		t.Fatalf("maxDistance = %v, want radius km converted to meters", near["$maxDistance"])
	}
	geom := near["$geometry"].(bson.M)
	coords := geom["coordinates"].([]float64)
	if coords[0] != 75.83 || coords[1] != 25.18 {
		t.Fatalf("GeoJSON order must be longitude, latitude: %v", coords)
	}

	// countDocuments rejects $nearSphere, so the count predicate uses
	// $geoWithin over the same circle.
	within, ok := built.CountFilter["address.coordinates"].(bson.M)["$geoWithin"].(bson.M)
	if !ok {
		t.Fatalf("count filter must use $geoWithin: %v", built.CountFilter)
	}
	if _, ok := within["$centerSphere"]; !ok {
		t.Fatalf("count geo clause should be a $centerSphere: %v", within)
	}
}

func TestBuildQueryGeoRequiresAllThree(t *testing.T) {
	built := BuildQuery(SearchParams{Latitude: floatPtr(25.18), Longitude: floatPtr(75.83), Page: 1, Limit: 20})
	if _, ok := built.Filter["address.coordinates"]; ok {
		t.Fatal("geo filter needs latitude, longitude and radius")
	}
}

func TestResolveSort(t *testing.T) {
	cases := []struct {
		sortBy string
		geo    bool
		want   bson.D
	}{
		{"price_low", false, bson.D{{Key: "price", Value: 1}}},
		{"price_high", false, bson.D{{Key: "price", Value: -1}}},
		{"newest", false, bson.D{{Key: "createdAt", Value: -1}}},
		{"oldest", false, bson.D{{Key: "createdAt", Value: 1}}},
		{"", false, bson.D{{Key: "createdAt", Value: -1}}},
		// rating has no backing field and falls through to the default.
		{"rating", false, bson.D{{Key: "createdAt", Value: -1}}},
		// A geo query without explicit sort keeps $nearSphere ordering.
		{"", true, nil},
		{"price_low", true, bson.D{{Key: "price", Value: 1}}},
	}
	for _, tc := range cases {
		got := resolveSort(tc.sortBy, tc.geo)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("resolveSort(%q, geo=%v) = %v, want %v", tc.sortBy, tc.geo, got, tc.want)
		}
	}
}

func TestBuildQueryDeterministic(t *testing.T) {
	p := SearchParams{
		Query:                 "Kota",
		MinPrice:              floatPtr(1000),
		Amenities:             []string{"wifi"},
		SortBy:                "price_low",
		Page:                  2,
		Limit:                 10,
		MergeQueryAndLocation: true,
	}
	first := BuildQuery(p)
	second := BuildQuery(p)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("BuildQuery must be deterministic for identical parameters")
	}
}
