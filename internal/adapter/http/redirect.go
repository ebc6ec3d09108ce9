package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleRedirect handles click redirects and records click events. It
// expects a {token} path parameter bound by the router. On success it
// redirects the user to the destination carried by the token. Invalid
// tokens result in HTTP 403; tokens without a destination in HTTP 400.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}
	destination, err := h.svc.Redirect(r.Context(), token, r.UserAgent(), remoteIP(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	http.Redirect(w, r, destination, http.StatusFound)
}
