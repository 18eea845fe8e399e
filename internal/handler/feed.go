package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/carousel-admin/internal/service"
)

// FeedHandler exposes the carousel to the public front end.
type FeedHandler struct {
	carousel *service.CarouselService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(carousel *service.CarouselService) *FeedHandler {
	return &FeedHandler{carousel: carousel}
}

// HandleList returns the carousel items in display order.
// GET /api/carousel
// Response: {"items": [{"url","type","kind","caption"}, ...]}
func (h *FeedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.carousel.ListItems(r.Context())
	if err != nil {
		slog.Error("list carousel for feed", "error", err)
		writeError(w, http.StatusInternalServerError, "The carousel is unavailable.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": toCarouselItemDTOs(items),
	})
}
