package topbooks

import (
	"errors"
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

// Weekly handles GET /top-books/week
// @Summary Current weekly bestsellers
// @Description Current NYT hardcover fiction list enriched with Google Books metadata
// @Tags top-books
// @Produce json
// @Success 200 {object} httpx.Envelope
// @Failure 500 {object} httpx.Envelope
// @Router /top-books/week [get]
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Weekly(r.Context())
	if err != nil {
		log.Printf("topbooks: weekly: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, upstreamMessage(err, "Failed to fetch top books"))
		return
	}
	httpx.JSONSuccess(w, list, "Top books fetched successfully")
}

// Monthly handles GET /top-books/month
// @Summary Monthly aggregated bestsellers
// @Description Top ten books across the last four weekly lists, ranked by appearances
// @Tags top-books
// @Produce json
// @Success 200 {object} httpx.Envelope
// @Failure 500 {object} httpx.Envelope
// @Router /top-books/month [get]
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Monthly(r.Context())
	if err != nil {
		log.Printf("topbooks: monthly: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, upstreamMessage(err, "Failed to fetch monthly top books"))
		return
	}
	httpx.JSONSuccess(w, list, "Top books for the month fetched successfully")
}

// Random handles GET /top-books/random
// @Summary Random subject page
// @Description One page of Google Books volumes under a random subject keyword
// @Tags top-books
// @Produce json
// @Success 200 {object} httpx.Envelope
// @Failure 500 {object} httpx.Envelope
// @Router /top-books/random [get]
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Random(r.Context())
	if err != nil {
		log.Printf("topbooks: random: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to fetch random books")
		return
	}
	httpx.JSONSuccess(w, list, "Random books fetched successfully")
}

func upstreamMessage(err error, fallback string) string {
	if errors.Is(err, upstream.ErrNotConfigured) {
		return "NYT API key not configured"
	}
	return fallback
}
