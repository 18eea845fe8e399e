package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/service"
	"github.com/msomdec/carousel-admin/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// multipartOverhead is the slack allowed on top of the media limit for the
// caption field and multipart framing.
const multipartOverhead = 1 << 20

// AdminHandler serves the carousel admin page and its mutations.
type AdminHandler struct {
	carousel *service.CarouselService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(carousel *service.CarouselService) *AdminHandler {
	return &AdminHandler{carousel: carousel}
}

// HandleAdmin renders the upload form and the current carousel.
// GET /admin
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, http.StatusOK, "")
}

// HandleUpload stores an uploaded media file and appends it to the carousel.
// POST /admin/upload  (multipart fields: media, caption)
func (h *AdminHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.carousel.MaxUploadBytes()
	if r.ContentLength > maxBytes+multipartOverhead {
		h.renderAdmin(w, r, http.StatusRequestEntityTooLarge, "Arquivo muito grande.")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderAdmin(w, r, http.StatusRequestEntityTooLarge, "Arquivo muito grande.")
			return
		}
		h.renderAdmin(w, r, http.StatusBadRequest, "Envio inválido.")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		h.renderAdmin(w, r, http.StatusBadRequest, "Nenhum arquivo enviado.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		h.renderAdmin(w, r, http.StatusInternalServerError, "Falha ao ler o arquivo.")
		return
	}

	// The declared type is trusted; it is what the validator checks.
	_, err = h.carousel.AddItem(r.Context(), domain.Upload{
		Payload:      data,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Caption:      r.FormValue("caption"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedMediaType):
			h.renderAdmin(w, r, http.StatusUnsupportedMediaType, "Tipo de arquivo não permitido.")
		case errors.Is(err, domain.ErrPayloadTooLarge):
			h.renderAdmin(w, r, http.StatusRequestEntityTooLarge, "Arquivo muito grande.")
		case errors.Is(err, domain.ErrCorruptDocument):
			slog.Error("upload media", "error", err)
			h.renderCorrupt(w, r)
		default:
			slog.Error("upload media", "error", err)
			h.renderAdmin(w, r, http.StatusInternalServerError, "Falha ao salvar o arquivo.")
		}
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleRemove removes the item at form field i and returns to the admin
// page. Missing, malformed and out-of-range positions do nothing.
// POST /admin/remove  (form field: i)
func (h *AdminHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.PostFormValue("i"))
	if err == nil {
		if err := h.carousel.RemoveItem(r.Context(), position); err != nil {
			h.failRemove(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleRemoveSSE removes an item and patches the rendered list over SSE.
// Positions of later items shift, so the whole list is re-rendered.
// POST /admin/items/{position}/delete
func (h *AdminHandler) HandleRemoveSSE(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.carousel.RemoveItem(r.Context(), position); err != nil {
		h.failRemove(w, r, err)
		return
	}

	items, err := h.carousel.ListItems(r.Context())
	if err != nil {
		slog.Error("list items after remove", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.ItemList(items),
		datastar.WithSelectorID(view.ItemListID),
		datastar.WithModeInner(),
	); err != nil {
		slog.Error("patch item list", "error", err)
	}
}

func (h *AdminHandler) failRemove(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("remove item", "error", err)
	if errors.Is(err, domain.ErrCorruptDocument) {
		h.renderCorrupt(w, r)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// renderAdmin renders the admin page with an optional message. A carousel
// that cannot be read blocks the page instead of showing an empty list.
func (h *AdminHandler) renderAdmin(w http.ResponseWriter, r *http.Request, status int, msg string) {
	items, err := h.carousel.ListItems(r.Context())
	if err != nil {
		slog.Error("list carousel items", "error", err)
		if errors.Is(err, domain.ErrCorruptDocument) {
			h.renderCorrupt(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	view.AdminPage(items, msg).Render(r.Context(), w)
}

func (h *AdminHandler) renderCorrupt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	view.ErrorPage("Os dados do carrossel estão corrompidos. Corrija o arquivo antes de continuar.").Render(r.Context(), w)
}
