package routes

import (
	"net/http"

	"tasksense/assistant/handlers"
)

// RegisterAssistRoutes registers the reasoning pipeline routes
func RegisterAssistRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /assist/run", handlers.RunAssistHandler)
	mux.HandleFunc("GET /assist/now", handlers.NowHandler)
	mux.HandleFunc("GET /assist/insight", handlers.InsightHandler)
	mux.HandleFunc("GET /healthz", handlers.HealthzHandler)
}
