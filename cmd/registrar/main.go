package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/dotgov/registrar/internal/adapter/fsm"
	otelsetup "github.com/dotgov/registrar/internal/adapter/otel"
	riversetup "github.com/dotgov/registrar/internal/adapter/river"
	"github.com/dotgov/registrar/internal/adapter/sqlite"
	"github.com/dotgov/registrar/internal/app"
	"github.com/dotgov/registrar/internal/config"

	handler "github.com/dotgov/registrar/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("registrar: %v", err)
	}
}

func run() error {
	cfg := config.Load()
	ctx := context.Background()

	// --- Telemetry ---
	providers, err := otelsetup.Setup(ctx, otelsetup.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otelsetup.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	queue, err := riversetup.Setup(ctx, db, nil, cfg.WorkerCount)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}

	publisher := otelsetup.NewTracingPublisher(riversetup.NewPublisher(queue))
	requestsRepo := otelsetup.NewTracingRequestRepository(store.Requests())

	// --- Application ---
	requests := app.NewRequestService(requestsRepo, publisher, fsm.New())
	domains := app.NewDomainService(store.Domains())
	members := app.NewMemberService(store.Members())

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("registrar", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("registrar", "0.1.0"))
	handler.Register(api, handler.Services{Requests: requests, Domains: domains, Members: members})

	csrf := handler.NewCSRF(cfg.CSRFSecret, cfg.CSRFTokenTTL)
	handler.NewDeleteHandler(requests, members, csrf, slog.Default()).Mount(router)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("registrar listening on :%s", cfg.Port)
		log.Printf("API docs: http://localhost:%s/docs", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if err := queue.Stop(shutdownCtx); err != nil {
		log.Printf("river stop: %v", err)
	}

	log.Println("stopped")
	return nil
}
