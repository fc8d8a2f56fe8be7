package main

import (
	"context"
	"log"
	"time"

	"github.com/onedayclass/booking-service/config"
	"github.com/onedayclass/booking-service/internal/consumer"
	"github.com/onedayclass/booking-service/internal/handler"
	"github.com/onedayclass/booking-service/internal/middleware"
	"github.com/onedayclass/booking-service/internal/repository"
	"github.com/onedayclass/booking-service/internal/service"
	"github.com/onedayclass/booking-service/pkg/database"
	"github.com/onedayclass/booking-service/pkg/kakaopay"
	"github.com/onedayclass/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync session and student mirrors from the catalog
	// and identity services
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	catalogConsumer := consumer.NewCatalogConsumer(db)
	catalogConsumer.Start(msgs)

	// RabbitMQ publisher: booking lifecycle events for downstream consumers
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to create RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Repositories
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// External payment provider
	payProvider := kakaopay.NewClient(cfg.KakaoBaseURL, cfg.KakaoAdminKey, cfg.KakaoCID)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, sessionRepo, publisher)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, sessionRepo, payProvider, publisher, cfg.FrontendBaseURL)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo)
	querySvc := service.NewQueryService(bookingRepo)

	// Sweeper for payments whose finalize step never arrived
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			n, err := paymentSvc.ExpireStalePayments(context.Background(), cfg.PaymentExpiry)
			if err != nil {
				log.Printf("[Sweeper] failed to expire stale payments: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[Sweeper] expired %d stale payments", n)
			}
		}
	}()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-service"})
	})

	handler.NewBookingHandler(bookingSvc, querySvc).RegisterRoutes(e, cfg.JWTSecret)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(e, cfg.JWTSecret)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e, cfg.JWTSecret)

	log.Printf("Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
