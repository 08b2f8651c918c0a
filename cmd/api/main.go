package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"bookpulse/internal/category"
	"bookpulse/internal/config"
	"bookpulse/internal/details"
	"bookpulse/internal/httpx"
	"bookpulse/internal/platform/googlebooks"
	"bookpulse/internal/platform/nyt"
	"bookpulse/internal/topbooks"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	nytClient := nyt.NewClient(cfg.NYTAPIKey, cfg.UpstreamRPS)
	booksClient := googlebooks.NewClient(cfg.GoogleBooksAPIKey, cfg.UpstreamRPS)

	topBooksHandler := topbooks.NewHandler(topbooks.NewService(nytClient, booksClient))
	detailsHandler := details.NewHandler(details.NewService(booksClient))
	categoryHandler := category.NewHandler(category.NewService(booksClient))

	router := newRouter(topBooksHandler, detailsHandler, categoryHandler)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimit.Handler,
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(topBooks *topbooks.Handler, bookDetails *details.Handler, categories *category.Handler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", rootHandler)

	router.HandleFunc("GET /api/health", healthHandler)
	router.HandleFunc("GET /api/version", versionHandler)

	router.HandleFunc("GET /top-books/week", topBooks.Weekly)
	router.HandleFunc("GET /top-books/month", topBooks.Monthly)
	router.HandleFunc("GET /top-books/random", topBooks.Random)

	router.HandleFunc("GET /details/{id}", bookDetails.Get)
	router.HandleFunc("GET /category/{category}", categories.Search)

	// Everything else gets an enveloped 404 instead of the mux default.
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "Endpoint not found")
	})

	return router
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, map[string]any{
		"message": "BookPulse API",
		"version": version,
		"endpoints": map[string]any{
			"health":      "/api/health",
			"version":     "/api/version",
			"topBooks":    []string{"/top-books/week", "/top-books/month", "/top-books/random"},
			"bookDetails": "/details/:id",
			"category":    "/category/:category",
		},
	}, "")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "")
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, map[string]string{"version": version}, "")
}
