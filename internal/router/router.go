// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/aakankshas938-hue/hotel-booking/internal/config"
	"github.com/aakankshas938-hue/hotel-booking/internal/handler"
	"github.com/aakankshas938-hue/hotel-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// dependencies, currently just the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity endpoints. Register, login,
// refresh and logout are open; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout_all", a.LogoutAll)
}

// RegisterCatalog registers the public browse and search endpoints.
// Responses are cached in Redis when a client is available; the
// catalog is reference data and tolerates the short TTL.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/hotels", h.GetHotels, cache)
	e.GET("/v1/hotels/:id", h.GetHotel, cache)
	e.GET("/v1/hotels/:id/rooms", h.GetHotelRooms, cache)
	e.GET("/v1/room-types", h.GetRoomTypes, cache)
	e.GET("/v1/search/hotels", h.SearchHotels, cache)
	e.GET("/v1/rooms/:id", h.GetRoom, cache)
	// availability reflects live booking state and must not be cached
	e.GET("/v1/rooms/:id/availability", h.GetRoomAvailability)
}

// RegisterBooking registers the reservation endpoints. All of them
// require authentication and sit behind the rate limiter.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))
	g.POST("/rooms/:id/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
}
