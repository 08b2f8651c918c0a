package details

import (
	"fmt"
	"log"
	"net/http"

	"bookpulse/internal/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get handles GET /details/{id}
// @Summary Book details
// @Description Volume metadata by Google Books ID, with up to five recommendations
// @Tags details
// @Produce json
// @Param id path string true "Google Books volume ID"
// @Success 200 {object} httpx.Envelope
// @Failure 400 {object} httpx.Envelope
// @Failure 500 {object} httpx.Envelope
// @Router /details/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Book ID is required")
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		log.Printf("details: get %s: %v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch details for book ID %s", id))
		return
	}
	httpx.JSONSuccess(w, detail, "Book details fetched successfully")
}
