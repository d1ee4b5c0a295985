package models

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
	".flv":  true,
	".wmv":  true,
}

// MediaTypeForURL derives the media type from the URL's file extension.
// The type is never trusted from storage; it is always recomputed here.
func MediaTypeForURL(url string) string {
	ext := strings.ToLower(path.Ext(url))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if videoExtensions[ext] {
		return MediaTypeVideo
	}
	return MediaTypeImage
}

// MediaItem is the normalized form of one media entry. Stored documents may
// hold either a bare URL string or a {url, type} subdocument; both shapes are
// resolved here so nothing downstream re-inspects raw values.
type MediaItem struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
}

func NewMediaItem(url string) MediaItem {
	return MediaItem{URL: url, Type: MediaTypeForURL(url)}
}

func (m *MediaItem) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*m = NewMediaItem(rv.StringValue())
		return nil
	case bsontype.EmbeddedDocument:
		var doc struct {
			URL string `bson:"url"`
		}
		if err := rv.Unmarshal(&doc); err != nil {
			return err
		}
		*m = NewMediaItem(doc.URL)
		return nil
	case bsontype.Null:
		*m = MediaItem{}
		return nil
	}
	return fmt.Errorf("media entry has unsupported BSON type %s", t)
}

func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*m = NewMediaItem(url)
		return nil
	}
	var doc struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*m = NewMediaItem(doc.URL)
	return nil
}

// NormalizeMedia recomputes every entry's type and drops entries whose URL is
// empty.
func NormalizeMedia(items []MediaItem) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.URL) == "" {
			continue
		}
		out = append(out, NewMediaItem(it.URL))
	}
	return out
}

// GeoPoint is a GeoJSON point, coordinates ordered longitude then latitude.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Address struct {
	HouseNumber    string    `bson:"houseNumber,omitempty" json:"houseNumber,omitempty"`
	BuildingName   string    `bson:"buildingName,omitempty" json:"buildingName,omitempty"`
	Street         string    `bson:"street" json:"street" validate:"required"`
	Landmark       string    `bson:"landmark,omitempty" json:"landmark,omitempty"`
	AreaOrLocality string    `bson:"areaOrLocality,omitempty" json:"areaOrLocality,omitempty"`
	City           string    `bson:"city" json:"city" validate:"required"`
	State          string    `bson:"state" json:"state" validate:"required"`
	PinCode        string    `bson:"pinCode" json:"pinCode" validate:"required,len=6,numeric"`
	Country        string    `bson:"country,omitempty" json:"country,omitempty"`
	Coordinates    *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// FullAddress joins the populated address parts into one display string.
func (a Address) FullAddress() string {
	parts := []string{
		a.HouseNumber,
		a.BuildingName,
		a.Street,
		a.Landmark,
		a.AreaOrLocality,
		a.City,
		a.State,
		a.PinCode,
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// Availability is the single bookable window a host publishes for a property.
type Availability struct {
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description" json:"description"`
	Price        int64              `bson:"price" json:"price" validate:"required,gt=0"`
	PropertyType string             `bson:"propertyType" json:"propertyType" validate:"required,oneof=apartment house villa pg hostel"`
	Address      Address            `bson:"address" json:"address"`
	Media        []MediaItem        `bson:"media,omitempty" json:"media"`
	Amenities    []string           `bson:"amenities,omitempty" json:"amenities" validate:"omitempty,dive,oneof=wifi ac kitchen parking tv"`
	MaxGuests    int                `bson:"maxGuests" json:"maxGuests" validate:"required,gt=0"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms" validate:"required,gt=0"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms" validate:"required,gt=0"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Host         primitive.ObjectID `bson:"host" json:"host"`
	Availability *Availability      `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
