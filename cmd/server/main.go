package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/cofy_shop/internal/config"
	"github.com/Skotchmaster/cofy_shop/internal/db"
	"github.com/Skotchmaster/cofy_shop/internal/es"
	"github.com/Skotchmaster/cofy_shop/internal/httpserver"
	"github.com/Skotchmaster/cofy_shop/internal/logging"
	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/cofy_shop/internal/middleware/logging"
	"github.com/Skotchmaster/cofy_shop/internal/mykafka"
	"github.com/Skotchmaster/cofy_shop/internal/repo"
	"github.com/Skotchmaster/cofy_shop/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		topics := []string{
			service.TopicUserEvents,
			service.TopicCartEvents,
			service.TopicBookingEvents,
			service.TopicProductEvents,
		}
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, topics)
		if err != nil {
			log.Fatalf("kafka error: %v", err)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var searchH *httpserver.SearchHTTP
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		searchH = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	r := &repo.GormRepo{DB: gdb}

	var events service.EventPublisher
	if producer != nil {
		events = producer
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:    authmw.New(gdb, cfg.JWTSecret),
		AuthH:   &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, Events: events}},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: events}},
		Catalog: &httpserver.CatalogHTTP{Repo: r},
		Booking: &httpserver.BookingHTTP{Svc: &service.BookingService{Repo: r, Events: events}},
		Admin:   &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: r, Events: events}},
		Search:  searchH,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
