package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	GuestID    primitive.ObjectID `bson:"guestId" json:"guestId"`
	CheckIn    time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut   time.Time          `bson:"checkOut" json:"checkOut"`
	Guests     int                `bson:"guests" json:"guests"`
	TotalPrice int64              `bson:"totalPrice" json:"totalPrice"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	Guests     int    `json:"guests" validate:"required,gt=0"`
}
