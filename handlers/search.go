package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SaurabhPasi28/ToLetRooms-sub000/config"
	"github.com/SaurabhPasi28/ToLetRooms-sub000/search"
	"github.com/SaurabhPasi28/ToLetRooms-sub000/utils"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	searchTimeout  = 10 * time.Second
	searchCacheTTL = 30 * time.Second
)

type SearchController struct {
	service *search.Service
	cache   *utils.Cache
}

func NewSearchController(db *mongo.Database, cache *utils.Cache) *SearchController {
	properties := db.Collection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties"))
	users := db.Collection(config.CollectionName("MONGODB_COLLECTION_USER", "users"))
	return &SearchController{
		service: search.NewService(properties, users),
		cache:   cache,
	}
}

// Search handles GET /api/search. Public; storage failures surface as 500
// with the underlying message for diagnostics.
func (sc *SearchController) Search(c echo.Context) error {
	params := search.ParseSearchParams(c.QueryParams())

	ctx, cancel := context.WithTimeout(c.Request().Context(), searchTimeout)
	defer cancel()

	cacheKey := utils.QueryCacheKey("search", flattenQueryParams(c))
	var cached search.Response
	if hit, err := sc.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	resp, err := sc.service.Search(ctx, params)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Search failed",
			"details": err.Error(),
		})
	}

	// Cache failures never fail the request.
	_ = sc.cache.Set(ctx, cacheKey, resp, searchCacheTTL)

	return c.JSON(http.StatusOK, resp)
}

// Suggestions handles GET /api/search/suggestions. The engine fails soft:
// storage errors yield an empty list, so this endpoint only 500s on panics
// caught upstream. The type parameter is accepted for compatibility; every
// category is already location data.
func (sc *SearchController) Suggestions(c echo.Context) error {
	params := search.ParseSuggestParams(c.QueryParams())

	ctx, cancel := context.WithTimeout(c.Request().Context(), searchTimeout)
	defer cancel()

	suggestions := sc.service.Suggest(ctx, params)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

func flattenQueryParams(c echo.Context) map[string]string {
	flat := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	return flat
}
