package main

import (
	"log"
	"net/http"

	"tasksense/assistant/config"
	"tasksense/assistant/middleware"
	"tasksense/assistant/routes"
	"tasksense/assistant/supabase"

	"github.com/rs/cors"
)

func main() {

	config.LoadEnv()
	config.InitLogger()
	supabase.Init()

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux)

	handler := middleware.Chain(middleware.RequestLogger)(mux)
	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         86400,
	}).Handler(handler)

	log.Println("Server is running on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
