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

type BookingController struct {
	collection *mongo.Collection
	properties *mongo.Collection
}

func NewBookingController(db *mongo.Database) *BookingController {
	return &BookingController{
		collection: db.Collection(config.CollectionName("MONGODB_COLLECTION_BOOKINGS", "bookings")),
		properties: db.Collection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

func (bc *BookingController) CreateBooking(c echo.Context) error {
	guestID := c.Get("user_id").(primitive.ObjectID)

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid checkIn date, expected YYYY-MM-DD"})
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid checkOut date, expected YYYY-MM-DD"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "checkOut must be after checkIn"})
	}

	var property models.Property
	err = bc.properties.FindOne(c.Request().Context(), bson.M{"_id": propertyID, "isActive": true}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if req.Guests > property.MaxGuests {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Guest count exceeds property capacity"})
	}
	if property.Availability != nil {
		if checkIn.Before(property.Availability.StartDate) || checkOut.After(property.Availability.EndDate) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requested dates fall outside the property's availability window"})
		}
	}

	nights := int64(checkOut.Sub(checkIn).Hours() / 24)
	booking := models.Booking{
		ID:         primitive.NewObjectID(),
		PropertyID: propertyID,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		TotalPrice: nights * property.Price,
		Status:     models.BookingPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	_, err = bc.collection.InsertOne(c.Request().Context(), booking)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create booking"})
	}
	return c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) GetMyBookings(c echo.Context) error {
	guestID := c.Get("user_id").(primitive.ObjectID)

	cursor, err := bc.collection.Find(c.Request().Context(), bson.M{"guestId": guestID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bookings"})
	}
	defer cursor.Close(c.Request().Context())

	bookings := []models.Booking{}
	if err := cursor.All(c.Request().Context(), &bookings); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// CancelBooking moves a pending or confirmed booking to cancelled. Only the
// guest who made it may cancel.
func (bc *BookingController) CancelBooking(c echo.Context) error {
	guestID := c.Get("user_id").(primitive.ObjectID)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid booking ID"})
	}

	var booking models.Booking
	err = bc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch booking"})
	}
	if booking.GuestID != guestID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to cancel this booking"})
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Booking cannot be cancelled in its current state"})
	}

	_, err = bc.collection.UpdateOne(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.BookingCancelled, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to cancel booking"})
	}

	booking.Status = models.BookingCancelled
	return c.JSON(http.StatusOK, booking)
}
