package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// transparentGIF is the 1x1 pixel served for beacon hits.
var transparentGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// handlePixel records a load or view beacon hit and answers with a 1x1
// transparent GIF. Invalid tokens produce HTTP 403 and unknown event
// types HTTP 400; the pixel is only served on success so a consumer can
// tell a dropped beacon apart from a recorded one.
func (h *Handler) handlePixel(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	eventType := chi.URLParam(r, "event")

	err := h.svc.TrackEvent(r.Context(), eventType, token, r.UserAgent(), remoteIP(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	if _, err = w.Write(transparentGIF); err != nil {
		h.logger.Error("write pixel error", slog.Any("error", err))
	}
}
