package search

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SuggestionCity     = "city"
	SuggestionArea     = "area"
	SuggestionStreet   = "street"
	SuggestionLandmark = "landmark"
	SuggestionPinCode  = "pinCode"
)

// Suggestion is one autocomplete candidate; derived fresh per query, never
// stored.
type Suggestion struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Display string `json:"display"`
	Count   int    `json:"count"`
}

type suggestionCategory struct {
	suggestionType string
	field          string
	// matcher returns the field predicate for the query, or nil when the
	// category does not apply to this query at all.
	matcher func(q string) interface{}
}

var pinPrefixPattern = regexp.MustCompile(`^[0-9]{1,6}$`)

func prefixMatcher(q string) interface{} {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q), Options: "i"}
}

func substringMatcher(q string) interface{} {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

func pinMatcher(q string) interface{} {
	if !pinPrefixPattern.MatchString(q) {
		return nil
	}
	return primitive.Regex{Pattern: "^" + q}
}

var suggestionCategories = []suggestionCategory{
	{SuggestionCity, "address.city", prefixMatcher},
	{SuggestionArea, "address.areaOrLocality", prefixMatcher},
	{SuggestionStreet, "address.street", prefixMatcher},
	{SuggestionLandmark, "address.landmark", substringMatcher},
	{SuggestionPinCode, "address.pinCode", pinMatcher},
}

// Suggest returns up to p.Limit ranked suggestions for a partial query.
// Suggestions are a non-critical enhancement: any storage error is logged and
// the engine degrades to an empty list. A query shorter than two characters
// returns empty without touching storage.
func (s *Service) Suggest(ctx context.Context, p SuggestParams) []Suggestion {
	if len(p.Query) < 2 {
		return []Suggestion{}
	}

	grouped := make([][]Suggestion, len(suggestionCategories))
	var wg sync.WaitGroup
	for i, cat := range suggestionCategories {
		match := cat.matcher(p.Query)
		if match == nil {
			continue
		}
		wg.Add(1)
		go func(i int, cat suggestionCategory, match interface{}) {
			defer wg.Done()
			groups, err := s.groupFieldValues(ctx, cat.field, match, p.Limit)
			if err != nil {
				log.Printf("suggestion query for %s failed: %v", cat.suggestionType, err)
				return
			}
			for _, g := range groups {
				grouped[i] = append(grouped[i], Suggestion{
					Type:    cat.suggestionType,
					Value:   g.Value,
					Display: fmt.Sprintf("%s (%d properties)", g.Value, g.Count),
					Count:   g.Count,
				})
			}
		}(i, cat, match)
	}
	wg.Wait()

	return rankSuggestions(p.Query, grouped, p.Limit)
}

type fieldGroup struct {
	Value string `bson:"_id"`
	Count int    `bson:"count"`
}

// groupFieldValues counts active properties per distinct field value matching
// the predicate.
func (s *Service) groupFieldValues(ctx context.Context, field string, match interface{}, limit int) ([]fieldGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true, field: match}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := s.properties.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []fieldGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	out := groups[:0]
	for _, g := range groups {
		if g.Value != "" {
			out = append(out, g)
		}
	}
	return out, nil
}

// rankSuggestions merges the per-category groups in a fixed category order,
// de-duplicates by value (first occurrence wins), sorts prefix matches before
// substring matches with count as tie-break, and truncates.
func rankSuggestions(query string, grouped [][]Suggestion, limit int) []Suggestion {
	merged := make([]Suggestion, 0)
	seen := make(map[string]bool)
	for _, group := range grouped {
		for _, sug := range group {
			if seen[sug.Value] {
				continue
			}
			seen[sug.Value] = true
			merged = append(merged, sug)
		}
	}

	lower := strings.ToLower(query)
	sort.SliceStable(merged, func(i, j int) bool {
		iPrefix := strings.HasPrefix(strings.ToLower(merged[i].Value), lower)
		jPrefix := strings.HasPrefix(strings.ToLower(merged[j].Value), lower)
		if iPrefix != jPrefix {
			return iPrefix
		}
		return merged[i].Count > merged[j].Count
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
