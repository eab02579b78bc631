package server

import (
	"net/http"
	"time"

	"github.com/jonathan/briefly/internal/catalog"
)

// handleRoot identifies the service
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":   "Briefly backend is running",
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCatalog lists the templates for every project type
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	templates := make(map[string]catalog.Template, len(catalog.All()))
	for _, pt := range catalog.All() {
		templates[string(pt)] = s.catalog.Get(pt)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"project_types": catalog.All(),
		"default_type":  catalog.DefaultType,
		"templates":     templates,
	})
}
