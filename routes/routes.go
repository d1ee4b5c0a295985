package routes

import (
	"net/http"

	"github.com/SaurabhPasi28/ToLetRooms-sub000/handlers"
	"github.com/SaurabhPasi28/ToLetRooms-sub000/middleware"
	"github.com/SaurabhPasi28/ToLetRooms-sub000/utils"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(e *echo.Echo, db *mongo.Database, cache *utils.Cache) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	searchController := handlers.NewSearchController(db, cache)
	userController := handlers.NewUserController(db)
	propertyController := handlers.NewPropertyController(db)
	wishlistController := handlers.NewWishlistController(db)
	bookingController := handlers.NewBookingController(db)

	api := e.Group("/api")

	// Public search endpoints.
	api.GET("/search", searchController.Search)
	api.GET("/search/suggestions", searchController.Suggestions)

	api.POST("/auth/register", userController.Register)
	api.POST("/auth/login", userController.Login)
	api.GET("/properties/:id", propertyController.GetProperty)

	auth := api.Group("", middleware.JWTMiddleware())
	auth.GET("/users/me", userController.GetProfile)
	auth.PUT("/users/me", userController.UpdateProfile)
	auth.DELETE("/users/me", userController.DeleteAccount)
	auth.GET("/users/me/properties", propertyController.ListMyProperties)

	auth.POST("/properties", propertyController.CreateProperty)
	auth.PUT("/properties/:id", propertyController.UpdateProperty)
	auth.DELETE("/properties/:id", propertyController.DeleteProperty)

	auth.POST("/wishlist", wishlistController.AddToWishlist)
	auth.GET("/wishlist", wishlistController.GetWishlist)
	auth.DELETE("/wishlist/:propertyId", wishlistController.RemoveFromWishlist)

	auth.POST("/bookings", bookingController.CreateBooking)
	auth.GET("/bookings", bookingController.GetMyBookings)
	auth.PUT("/bookings/:id/cancel", bookingController.CancelBooking)
}
