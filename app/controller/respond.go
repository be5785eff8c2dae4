package controller

import (
	"encoding/json"
	"net/http"

	"blorkfield-site/logger"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, log logger.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Error encoding JSON response", logger.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, log logger.Logger, status int, message string) {
	respondJSON(w, log, status, map[string]string{"error": message})
}

// respondHTML writes an HTML response
func respondHTML(w http.ResponseWriter, log logger.Logger, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error("Error writing HTML response", logger.Error(err))
	}
}
