package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"tickethub/config"
	"tickethub/internal/cache"
	"tickethub/internal/handler"
	"tickethub/internal/middleware"
	"tickethub/internal/payment"
	"tickethub/internal/repository"
	"tickethub/internal/service"
	"tickethub/pkg/database"
	"tickethub/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ and Redis are optional: leaving their addresses unset runs
	// the service without event publishing or the status cache.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
	}
	availability := cache.NewAvailability(rdb, cfg.StatusCacheTTL)

	// Repositories
	txm := repository.NewTxManager(db)
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	// Services
	gateway := payment.NewGateway()
	eventSvc := service.NewEventService(txm, eventRepo, publisher, availability)
	ticketSvc := service.NewTicketService(txm, eventRepo, ticketRepo, gateway, publisher, availability, cfg.EditCutoff)
	refundSvc := service.NewRefundService(txm, eventRepo, ticketRepo, refundRepo, gateway, publisher, availability)

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "tickethub"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewEventHandler(eventSvc).RegisterRoutes(e)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(e)
	handler.NewRefundHandler(refundSvc).RegisterRoutes(e)

	log.Printf("TicketHub starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
