package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - read-only statistics API.
func NewRouter(handlers Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", handlers.PingHandler)
	r.Get("/players", handlers.ListPlayers)
	r.Route("/players/{name}", func(r chi.Router) {
		r.Get("/stats", handlers.PlayerStats)
		r.Get("/games", handlers.PlayerGames)
	})

	return r
}

// Start - serves handlers on port until ctx is canceled.
func Start(ctx context.Context, port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
