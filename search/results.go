package search

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SaurabhPasi28/ToLetRooms-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service runs search and suggestion queries against the property store.
type Service struct {
	properties *mongo.Collection
	users      *mongo.Collection
}

func NewService(properties, users *mongo.Collection) *Service {
	return &Service{properties: properties, users: users}
}

// PropertyView is the client-facing shape of one search hit.
type PropertyView struct {
	ID           primitive.ObjectID `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        int64              `json:"price"`
	PropertyType string             `json:"propertyType"`
	FullAddress  string             `json:"fullAddress"`
	Address      models.Address     `json:"address"`
	Media        []models.MediaItem `json:"media"`
	Amenities    []string           `json:"amenities"`
	MaxGuests    int                `json:"maxGuests"`
	Bedrooms     int                `json:"bedrooms"`
	Bathrooms    int                `json:"bathrooms"`
	Host         *models.HostInfo   `json:"host,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	Limit        int   `json:"limit"`
}

type SearchInfo struct {
	Query    string            `json:"query"`
	Location string            `json:"location"`
	Filters  map[string]string `json:"filters"`
}

type Response struct {
	Properties []PropertyView `json:"properties"`
	Pagination Pagination     `json:"pagination"`
	SearchInfo SearchInfo     `json:"searchInfo"`
}

// Search builds the query, runs the page fetch and the total count
// concurrently, and shapes the results.
func (s *Service) Search(ctx context.Context, p SearchParams) (*Response, error) {
	built := BuildQuery(p)
	skip := (p.Page - 1) * p.Limit

	findOpts := options.Find().SetSkip(int64(skip)).SetLimit(int64(p.Limit))
	if built.Sort != nil {
		findOpts.SetSort(built.Sort)
	}

	var (
		wg         sync.WaitGroup
		properties []models.Property
		findErr    error
		total      int64
		countErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cursor, err := s.properties.Find(ctx, built.Filter, findOpts)
		if err != nil {
			findErr = err
			return
		}
		defer cursor.Close(ctx)
		findErr = cursor.All(ctx, &properties)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.properties.CountDocuments(ctx, built.CountFilter)
	}()
	wg.Wait()
	if findErr != nil {
		return nil, findErr
	}
	if countErr != nil {
		return nil, countErr
	}

	hosts, err := s.lookupHosts(ctx, properties)
	if err != nil {
		return nil, err
	}

	views := make([]PropertyView, 0, len(properties))
	for _, prop := range properties {
		views = append(views, viewFromProperty(prop, hosts[prop.Host]))
	}

	return &Response{
		Properties: views,
		Pagination: buildPagination(p.Page, p.Limit, total),
		SearchInfo: buildSearchInfo(p),
	}, nil
}

// lookupHosts fetches name/email for every distinct host in one query.
func (s *Service) lookupHosts(ctx context.Context, properties []models.Property) (map[primitive.ObjectID]*models.HostInfo, error) {
	ids := make([]primitive.ObjectID, 0, len(properties))
	seen := make(map[primitive.ObjectID]bool)
	for _, prop := range properties {
		if prop.Host.IsZero() || seen[prop.Host] {
			continue
		}
		seen[prop.Host] = true
		ids = append(ids, prop.Host)
	}
	hosts := make(map[primitive.ObjectID]*models.HostInfo, len(ids))
	if len(ids) == 0 {
		return hosts, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var host models.HostInfo
		if err := cursor.Decode(&host); err != nil {
			continue
		}
		hosts[host.ID] = &host
	}
	return hosts, cursor.Err()
}

func viewFromProperty(p models.Property, host *models.HostInfo) PropertyView {
	return PropertyView{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		PropertyType: p.PropertyType,
		FullAddress:  p.Address.FullAddress(),
		Address:      p.Address,
		Media:        models.NormalizeMedia(p.Media),
		Amenities:    p.Amenities,
		MaxGuests:    p.MaxGuests,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Host:         host,
		CreatedAt:    p.CreatedAt,
	}
}

func buildPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: total,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
		Limit:        limit,
	}
}

func buildSearchInfo(p SearchParams) SearchInfo {
	filters := map[string]string{}
	if p.MinPrice != nil {
		filters["minPrice"] = strconv.FormatFloat(*p.MinPrice, 'f', -1, 64)
	}
	if p.MaxPrice != nil {
		filters["maxPrice"] = strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64)
	}
	if p.PropertyType != "" {
		filters["propertyType"] = p.PropertyType
	}
	if p.Bedrooms != nil {
		filters["bedrooms"] = strconv.Itoa(*p.Bedrooms)
	}
	if p.MaxGuests != nil {
		filters["maxGuests"] = strconv.Itoa(*p.MaxGuests)
	}
	if len(p.Amenities) > 0 {
		filters["amenities"] = strings.Join(p.Amenities, ",")
	}
	if p.SortBy != "" {
		filters["sortBy"] = p.SortBy
	}
	return SearchInfo{Query: p.Query, Location: p.Location, Filters: filters}
}
