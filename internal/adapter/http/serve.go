package httpadapter

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fortnight-ads/internal/core/port"
)

// handleServeAd delivers one ad's HTML for a placement. The `n` query
// parameter requests the ad count and the `opts` parameter carries a
// JSON object of custom and fallback variables. Lookup misses produce
// HTTP 404, malformed requests 400 and the multi-ad placeholder 501.
func (h *Handler) handleServeAd(w http.ResponseWriter, r *http.Request) {
	num, _ := strconv.Atoi(r.URL.Query().Get("n"))
	opts := parseOptions(r.URL.Query().Get("opts"))

	ads, err := h.svc.FindFor(r.Context(), port.AdRequest{
		PlacementID: chi.URLParam(r, "pid"),
		UserAgent:   r.UserAgent(),
		IP:          remoteIP(r),
		RequestURL:  requestOrigin(r),
		Num:         num,
		Vars:        opts,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(ads) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(ads[0].HTML)); err != nil {
		h.logger.Error("write response error", slog.Any("error", err))
	}
}

// writeError maps the delivery error taxonomy onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, port.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrNotImplemented):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	case errors.Is(err, port.ErrInvalidToken):
		http.Error(w, "invalid token", http.StatusForbidden)
	default:
		h.logger.Error("delivery error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// requestOrigin rebuilds the scheme and host the request arrived on.
// Tracking URLs are built against this origin.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// remoteIP strips the port from the remote address when present.
func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
