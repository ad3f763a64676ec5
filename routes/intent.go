package routes

import (
	"net/http"

	"tasksense/assistant/handlers"
)

// RegisterIntentRoutes registers intent capture routes
func RegisterIntentRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /intent/execute", handlers.ExecuteIntentHandler)
}
