package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ivaldez/meeting-room-reservation/internal/booking"
	"github.com/ivaldez/meeting-room-reservation/internal/config"
	"github.com/ivaldez/meeting-room-reservation/internal/database"
	"github.com/ivaldez/meeting-room-reservation/internal/handler"
	"github.com/ivaldez/meeting-room-reservation/internal/middleware"
	"github.com/ivaldez/meeting-room-reservation/internal/queue"
	"github.com/ivaldez/meeting-room-reservation/internal/repository"
	"github.com/ivaldez/meeting-room-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unreachable, caching and rate limiting
	// degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limit disabled")
	}

	bookings := repository.NewBookingRepo(db)
	rooms := repository.NewRoomRepo(db)
	areas := repository.NewAreaRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	svc := booking.NewService(bookings)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, areas, tokens),
		Booking:   handler.NewBookingHandler(svc, bookings, rooms),
		Room:      handler.NewRoomHandler(rooms),
		Area:      handler.NewAreaHandler(areas),
		Dashboard: handler.NewDashboardHandler(bookings),
		Report:    handler.NewReportHandler(bookings, users),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, cacheMW)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterBooking(e, h, cfg.JWTSecret)
	router.RegisterAdmin(e, h, cfg.JWTSecret)

	// Background consumer appends committed decisions to logs/decisions.log.
	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Printf("decision consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
