package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/contentkit/config"
	"github.com/adrianliechti/contentkit/pkg/auth"
	"github.com/adrianliechti/contentkit/server/api"
	"github.com/adrianliechti/contentkit/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	apiHandler, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mcpHandler, err := mcp.New(cfg)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Authorizers...))

		if cfg.Policy != nil {
			r.Use(cfg.Policy.Middleware)
		}

		r.Route("/api", func(r chi.Router) {
			mcpHandler.Attach(r)
		})

		r.Route("/v1", func(r chi.Router) {
			apiHandler.Attach(r)
		})
	})

	s := &Server{
		Config:  cfg,
		Handler: otelhttp.NewHandler(r, "contentkit"),
	}

	return s, nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server listening", "address", s.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
