package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/aakankshas938-hue/hotel-booking/internal/config"
	"github.com/aakankshas938-hue/hotel-booking/internal/database"
	"github.com/aakankshas938-hue/hotel-booking/internal/handler"
	"github.com/aakankshas938-hue/hotel-booking/internal/queue"
	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
	"github.com/aakankshas938-hue/hotel-booking/internal/router"
	"github.com/aakankshas938-hue/hotel-booking/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	roomTypeRepo := repository.NewRoomTypeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, service.NewRabbitPublisher())

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	catalogHandler := handler.NewCatalogHandler(hotelRepo, roomRepo, roomTypeRepo, bookingSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)

	// Drain booking events into logs/booking.log; the consumer retries
	// forever and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogHandler, config.LoadCacheConfig(), rdb)
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
