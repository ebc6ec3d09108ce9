package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fortnight-ads/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the delivery usecase to execute business logic and a
// logger for structured logging. Routes are registered on a chi.Router
// for convenient method handling.
type Handler struct {
	svc    port.DeliveryUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// delivery usecase implementation and a logger. The returned Handler
// registers handlers for each endpoint on a new chi.Router.
func NewHandler(svc port.DeliveryUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Get("/placement/{pid}.html", h.handleServeAd)
	r.Get("/e/{token}/{event}.gif", h.handlePixel)
	r.Get("/redir/{token}", h.handleRedirect)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
