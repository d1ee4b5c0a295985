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

type WishlistController struct {
	collection *mongo.Collection
	properties *mongo.Collection
}

func NewWishlistController(db *mongo.Database) *WishlistController {
	return &WishlistController{
		collection: db.Collection(config.CollectionName("MONGODB_COLLECTION_WISHLIST", "wishlist")),
		properties: db.Collection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

func (wc *WishlistController) AddToWishlist(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var req struct {
		PropertyID string `json:"propertyId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	count, err := wc.properties.CountDocuments(c.Request().Context(), bson.M{"_id": propertyID, "isActive": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property"})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	count, err = wc.collection.CountDocuments(c.Request().Context(), bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check wishlist"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Property already in wishlist"})
	}

	item := models.WishlistItem{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	_, err = wc.collection.InsertOne(c.Request().Context(), item)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add to wishlist"})
	}
	return c.JSON(http.StatusCreated, item)
}

func (wc *WishlistController) GetWishlist(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	cursor, err := wc.collection.Find(c.Request().Context(), bson.M{"userId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	defer cursor.Close(c.Request().Context())

	items := []models.WishlistItem{}
	if err := cursor.All(c.Request().Context(), &items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	return c.JSON(http.StatusOK, items)
}

func (wc *WishlistController) RemoveFromWishlist(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	_, err = wc.collection.DeleteOne(c.Request().Context(), bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove from wishlist"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}
