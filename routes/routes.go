package routes

import "net/http"

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux) {
	RegisterAssistRoutes(mux)
	RegisterTaskRoutes(mux)
	RegisterIntentRoutes(mux)
}
