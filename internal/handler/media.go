package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/repository/layout"
	"github.com/msomdec/carousel-admin/internal/service"
)

// MediaHandler serves the blobs of carousel items by reference so both
// storage backends can be viewed the same way.
type MediaHandler struct {
	carousel *service.CarouselService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(carousel *service.CarouselService) *MediaHandler {
	return &MediaHandler{carousel: carousel}
}

// HandleServe writes the blob bytes.
// GET /uploads/{name}
func (h *MediaHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	data, contentType, err := h.carousel.Media(r.Context(), layout.Reference(name))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve media", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Served with the validated upload type, never the client-chosen name.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
