package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"wavelink"
	"wavelink/internal/config"
	"wavelink/internal/game"
	"wavelink/internal/handlers"
	"wavelink/internal/middleware"
	"wavelink/internal/session"
	"wavelink/internal/store"
)

// buildRouter wires the full HTTP surface. Split out from run so tests can
// exercise the routing without binding a socket.
func buildRouter(cfg *config.ServerConfig, s *store.MemoryStore, co *session.Coordinator) http.Handler {
	h := handlers.New(s, co, cfg)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(middleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	// Game traffic
	r.Get("/ws", h.ServeWS)
	r.Post("/room/new", h.NewRoomCode)
	r.Get("/room/{code}/qr", h.RoomQR)
	r.Get("/sse/room/{code}", h.StreamRoom)

	// Health check endpoints
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)

	return r
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Printf("Loaded configuration: listening on %s:%s, room timeout %s",
		cfg.Server.Host, cfg.Server.Port, cfg.Server.RoomTimeout)

	// Fail fast if the embedded spectrum catalog is unusable.
	catalog, err := game.LoadCatalog(wavelink.SpectrumsYAML)
	if err != nil {
		return fmt.Errorf("failed to load spectrum catalog: %w", err)
	}
	log.Printf("Loaded %d spectrums", len(catalog))

	s := store.NewMemoryStore()
	gen := game.NewGenerator(catalog, rand.NewSource(time.Now().UnixNano()))
	co := session.NewCoordinator(s, gen, cfg.Server.RoomCodeLength)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Server.RoomTimeout > 0 {
		go co.ReapLoop(ctx, cfg.Server.RoomTimeout)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      buildRouter(cfg, s, co),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout, // 0 keeps websocket and SSE connections alive
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down...", sig)
	}

	cancel() // stop the reaper

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("Server gracefully stopped")
	return nil
}
