package mcp

import (
	"net/http"
	"sync"

	"github.com/adrianliechti/contentkit/config"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	mu      sync.Mutex
	handler http.Handler
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.HandleFunc("/mcp", h.handleMCP)
}

func (h *Handler) handleMCP(w http.ResponseWriter, r *http.Request) {
	handler, err := h.getHandler(r)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}

func (h *Handler) getHandler(r *http.Request) (http.Handler, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.handler != nil {
		return h.handler, nil
	}

	if h.MCP == nil {
		return http.NotFoundHandler(), nil
	}

	handler, err := h.MCP.Handler(r.Context())

	if err != nil {
		return nil, err
	}

	h.handler = handler

	return handler, nil
}
