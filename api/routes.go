package api

import (
	"net/http"

	"github.com/casenote/casenote/api/assignments"
	"github.com/casenote/casenote/api/auth"
	"github.com/casenote/casenote/api/clients"
	"github.com/casenote/casenote/api/jsonutil"
	"github.com/casenote/casenote/api/surveys"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func Routes(queries *database.Queries, queue queue.Queue, transactor database.Transactor, cipher *database.ValueCipher) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {

		jsonutil.WriteJSONResponse(w, "hello from casenote", http.StatusOK)
	})

	auth.SetupRoutes(r, queue, queries)
	clients.SetupRoutes(r, queries)
	surveys.SetupRoutes(r, queries)
	assignments.SetupRoutes(r, queue, transactor, queries, cipher)

	return r
}
