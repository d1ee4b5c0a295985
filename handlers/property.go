package handlers

import (
	"net/http"
	"time"

	"github.com/SaurabhPasi28/ToLetRooms-sub000/config"
	"github.com/SaurabhPasi28/ToLetRooms-sub000/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PropertyController struct {
	collection *mongo.Collection
}

func NewPropertyController(db *mongo.Database) *PropertyController {
	return &PropertyController{
		collection: db.Collection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&property); err != nil {
		return err
	}

	property.ID = primitive.NewObjectID()
	property.Host = userID
	property.IsActive = true
	property.Media = models.NormalizeMedia(property.Media)
	if property.Address.Country == "" {
		property.Address.Country = "India"
	}
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	_, err := pc.collection.InsertOne(c.Request().Context(), property)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}
	return c.JSON(http.StatusCreated, property)
}

// GetProperty is public and only serves active listings; hosts see their
// inactive listings through ListMyProperties.
func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	var property models.Property
	err = pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id, "isActive": true}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) ListMyProperties(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	cursor, err := pc.collection.Find(c.Request().Context(), bson.M{"host": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(c.Request().Context())

	properties := []models.Property{}
	if err := cursor.All(c.Request().Context(), &properties); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err = pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.Host != userID && userRole != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var update models.Property
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&update); err != nil {
		return err
	}

	updateDoc := bson.M{
		"title":        update.Title,
		"description":  update.Description,
		"price":        update.Price,
		"propertyType": update.PropertyType,
		"address":      update.Address,
		"media":        models.NormalizeMedia(update.Media),
		"amenities":    update.Amenities,
		"maxGuests":    update.MaxGuests,
		"bedrooms":     update.Bedrooms,
		"bathrooms":    update.Bathrooms,
		"isActive":     update.IsActive,
		"availability": update.Availability,
		"updatedAt":    time.Now(),
	}
	_, err = pc.collection.UpdateOne(c.Request().Context(), bson.M{"_id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	err = pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err = pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.Host != userID && userRole != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	_, err = pc.collection.DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}
