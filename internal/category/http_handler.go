package category

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"bookpulse/internal/httpx"
	"bookpulse/internal/upstream"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles GET /category/{category}
// @Summary Books by category
// @Description Up to twenty Google Books volumes under a subject keyword
// @Tags category
// @Produce json
// @Param category path string true "Subject keyword"
// @Success 200 {object} httpx.Envelope
// @Failure 400 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope
// @Failure 500 {object} httpx.Envelope
// @Router /category/{category} [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")
	if name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Category is required")
		return
	}

	books, err := h.svc.Search(r.Context(), name)
	if err != nil {
		if errors.Is(err, upstream.ErrNoResults) {
			httpx.JSONError(w, http.StatusNotFound, fmt.Sprintf("No books found for category %s", name))
			return
		}
		log.Printf("category: search %s: %v", name, err)
		httpx.JSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch books for category %s", name))
		return
	}
	httpx.JSONSuccess(w, books, fmt.Sprintf("Books for category: %s", name))
}
