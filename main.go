package main

import (
	"net/http"
	"os"

	"famnotes/config"
	"famnotes/db"
	"famnotes/handlers"
	appmw "famnotes/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Post("/auth/signup", handlers.Signup)
	r.Post("/auth/login", handlers.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth)

		r.Get("/users/me", handlers.Me)
		r.Get("/users/", handlers.ListUsers)

		r.Post("/folders/", handlers.CreateFolder)
		r.Get("/folders/", handlers.ListFolders)
		r.Put("/folders/{id}", handlers.UpdateFolder)
		r.Delete("/folders/{id}", handlers.DeleteFolder)

		r.Post("/notes/", handlers.CreateNote)
		r.Get("/notes/", handlers.ListNotes)
		r.Put("/notes/{id}", handlers.UpdateNote)
		r.Patch("/notes/{id}/checklist", handlers.UpdateChecklist)
		r.Delete("/notes/{id}", handlers.DeleteNote)
	})

	return r
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on environment")
	}

	cfg := config.Load()
	if len(cfg.JWTSecret) == 0 {
		log.Fatal().Msg("JWT_SECRET not set")
	}

	if err := db.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(newRouter())

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
