package routes

import (
	"net/http"

	"tasksense/assistant/handlers"
)

// RegisterTaskRoutes registers all task-related routes
func RegisterTaskRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /tasks/classify", handlers.ClassifyTasksHandler)
}
