package main

import (
	"context"
	"log"

	"github.com/bookeasy/ticketing/config"
	"github.com/bookeasy/ticketing/internal/handler"
	"github.com/bookeasy/ticketing/internal/middleware"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/bookeasy/ticketing/internal/service"
	"github.com/bookeasy/ticketing/pkg/database"
	"github.com/bookeasy/ticketing/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: an empty URL disables publishing.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	eventSvc := service.NewEventService(eventRepo, publisher)
	reservationSvc := service.NewReservationService(reservationRepo, bookingRepo, eventRepo, publisher, cfg.HoldDuration)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo)

	// Expiry reaper: releases lapsed holds back to inventory.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.NewReaper(reservationRepo, eventRepo, publisher, cfg.ReaperInterval).Start(ctx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing"})
	})

	auth := middleware.RequireAuth(authSvc)
	handler.NewAuthHandler(authSvc).RegisterRoutes(e, auth)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e, auth)
	handler.NewBookingHandler(reservationSvc, bookingSvc).RegisterRoutes(e, auth)

	log.Printf("Ticketing Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
