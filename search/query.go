package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address fields a free-text query matches against, in relevance order.
var textAddressFields = []string{
	"address.city",
	"address.state",
	"address.areaOrLocality",
	"address.street",
	"address.landmark",
	"address.buildingName",
}

var pinCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

const earthRadiusKm = 6378.1

// BuiltQuery is the storage-agnostic output of the query builder. Filter is
// what Find executes; CountFilter is the same predicate with the geo clause
// rewritten, because countDocuments rejects $nearSphere.
type BuiltQuery struct {
	Filter      bson.M
	CountFilter bson.M
	Sort        bson.D
}

// BuildQuery translates parsed search parameters into a Mongo predicate and
// sort specification. It is a pure function: no storage access, no state.
func BuildQuery(p SearchParams) BuiltQuery {
	filter := bson.M{"isActive": true}

	var textClauses []bson.M
	if p.Query != "" {
		textClauses = append(textClauses, queryClauses(p.Query)...)
	}
	if p.Location != "" {
		if p.Query != "" && p.MergeQueryAndLocation {
			// Legacy union: location broadens the same disjunction the free-
			// text query built instead of narrowing it.
			textClauses = append(textClauses, locationClauses(p.Location)...)
		} else if p.Query == "" {
			textClauses = append(textClauses, locationClauses(p.Location)...)
		} else {
			filter["$and"] = []bson.M{{"$or": locationClauses(p.Location)}}
		}
	}
	if len(textClauses) > 0 {
		filter["$or"] = textClauses
	}

	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		filter["price"] = price
	}

	if p.PropertyType != "" {
		filter["propertyType"] = strings.ToLower(p.PropertyType)
	}
	if p.Bedrooms != nil {
		filter["bedrooms"] = bson.M{"$gte": *p.Bedrooms}
	}
	if p.MaxGuests != nil {
		filter["maxGuests"] = bson.M{"$gte": *p.MaxGuests}
	}
	if len(p.Amenities) > 0 {
		filter["amenities"] = bson.M{"$all": p.Amenities}
	}

	if p.CheckIn != nil && p.CheckOut != nil {
		// Coarse availability: no recorded window, or the window fully covers
		// the requested range. Existing bookings are not consulted.
		availability := []bson.M{
			{"availability": bson.M{"$exists": false}},
			{"availability": nil},
			{
				"availability.startDate": bson.M{"$lte": *p.CheckIn},
				"availability.endDate":   bson.M{"$gte": *p.CheckOut},
			},
		}
		if existing, ok := filter["$and"].([]bson.M); ok {
			filter["$and"] = append(existing, bson.M{"$or": availability})
		} else if _, ok := filter["$or"]; ok {
			filter["$and"] = []bson.M{{"$or": availability}}
		} else {
			filter["$or"] = availability
		}
	}

	countFilter := filter
	geo := p.Latitude != nil && p.Longitude != nil && p.RadiusKm != nil
	if geo {
		point := []float64{*p.Longitude, *p.Latitude}
		filter = withGeo(filter, bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": point,
				},
				"$maxDistance": *p.RadiusKm * 1000,
			},
		})
		countFilter = withGeo(countFilter, bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []interface{}{point, *p.RadiusKm / earthRadiusKm},
			},
		})
	}

	return BuiltQuery{
		Filter:      filter,
		CountFilter: countFilter,
		Sort:        resolveSort(p.SortBy, geo),
	}
}

func withGeo(base bson.M, clause bson.M) bson.M {
	out := bson.M{}
	for k, v := range base {
		out[k] = v
	}
	out["address.coordinates"] = clause
	return out
}

// queryClauses expands free text into the disjunction the search runs: exact
// PIN code, prefix and substring matches over address fields, substring over
// title and description.
func queryClauses(q string) []bson.M {
	var clauses []bson.M
	if pinCodePattern.MatchString(q) {
		clauses = append(clauses, bson.M{"address.pinCode": q})
	}
	escaped := regexp.QuoteMeta(q)
	for _, field := range textAddressFields {
		clauses = append(clauses,
			bson.M{field: primitive.Regex{Pattern: "^" + escaped, Options: "i"}},
			bson.M{field: primitive.Regex{Pattern: escaped, Options: "i"}},
		)
	}
	clauses = append(clauses,
		bson.M{"title": primitive.Regex{Pattern: escaped, Options: "i"}},
		bson.M{"description": primitive.Regex{Pattern: escaped, Options: "i"}},
	)
	return clauses
}

// locationClauses matches place text against address fields only.
func locationClauses(loc string) []bson.M {
	escaped := regexp.QuoteMeta(loc)
	var clauses []bson.M
	for _, field := range textAddressFields {
		clauses = append(clauses,
			bson.M{field: primitive.Regex{Pattern: "^" + escaped, Options: "i"}},
			bson.M{field: primitive.Regex{Pattern: escaped, Options: "i"}},
		)
	}
	if pinCodePattern.MatchString(loc) {
		clauses = append(clauses, bson.M{"address.pinCode": loc})
	}
	return clauses
}

// resolveSort maps the public sortBy values to a Mongo sort. A geo query with
// no explicit sort returns nil so $nearSphere's nearest-first order survives.
// "rating" is still accepted on the wire but has no backing field, so it falls
// through to the default.
func resolveSort(sortBy string, geo bool) bson.D {
	switch sortBy {
	case "price_low":
		return bson.D{{Key: "price", Value: 1}}
	case "price_high":
		return bson.D{{Key: "price", Value: -1}}
	case "newest":
		return bson.D{{Key: "createdAt", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	}
	if geo {
		return nil
	}
	return bson.D{{Key: "createdAt", Value: -1}}
}
