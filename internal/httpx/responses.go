// Package httpx carries the response envelope and the HTTP middleware
// shared by every handler.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape: exactly one of Data/Error is set
// depending on Success.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSONSuccess(w http.ResponseWriter, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func JSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Error:   message,
	})
}
