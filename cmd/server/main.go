package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/craftedcommune/cafe/internal/config"
	"github.com/craftedcommune/cafe/internal/db"
	"github.com/craftedcommune/cafe/internal/es"
	"github.com/craftedcommune/cafe/internal/events"
	"github.com/craftedcommune/cafe/internal/handlers"
	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/middleware/loggingmw"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/service"
	httpserver "github.com/craftedcommune/cafe/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	r := repo.New(gdb)
	orderSvc := service.NewOrderService(gdb)
	catalogSvc := service.NewCatalogService(gdb)

	deps := httpserver.Deps{
		JWTSecret:        []byte(cfg.JWT_SECRET),
		OrderHandler:     &handlers.OrderHandler{Svc: orderSvc, Producer: producer},
		MenuHandler:      &handlers.MenuHandler{Catalog: catalogSvc, Repo: r},
		SearchHandler:    &handlers.SearchHandler{Repo: r},
		AuthHandler:      &handlers.AuthHandler{Repo: r, JWTSecret: []byte(cfg.JWT_SECRET)},
		CatalogHandler:   &handlers.AdminCatalogHandler{Svc: catalogSvc, Producer: producer},
		OrdersHandler:    &handlers.AdminOrderHandler{Svc: orderSvc},
		SettingsHandler:  &handlers.AdminSettingsHandler{Repo: r},
		AnalyticsHandler: &handlers.AdminAnalyticsHandler{Repo: r},
	}

	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch unavailable, search falls back to catalog", "error", err)
		} else {
			deps.SearchHandler.ES = client
			deps.CatalogHandler.ES = client
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
