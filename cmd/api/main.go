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

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/config"
	"github.com/cimillas/ticketcore/internal/storage/postgres"
	transporthttp "github.com/cimillas/ticketcore/internal/transport/http"
	"github.com/cimillas/ticketcore/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	store := postgres.NewStore(pool)
	clk := clock.NewSystem()

	saleSvc := app.NewSaleService(store, store, clk)

	mux := transporthttp.NewRouter(transporthttp.Services{
		Organizers: app.NewOrganizerService(store, clk),
		Catalog:    app.NewCatalogService(store, clk),
		Classes:    app.NewClassService(store, clk),
		Sales:      saleSvc,
		Tickets:    saleSvc,
		Market:     app.NewMarketService(store, store, clk),
		Refunds:    app.NewRefundService(store, store, clk),
		Identity:   app.NewIdentityService(store, clk),
		Checkin:    app.NewCheckinService(store, clk, app.WithMargin(cfg.CheckinMargin)),
	})

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
