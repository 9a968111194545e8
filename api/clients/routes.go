package clients

import (
	"github.com/casenote/casenote/api/middlewares"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, queries *database.Queries) {

	clientsRouter := chi.NewRouter()

	store := NewClientStore(queries)
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store: store,
	}

	clientsRouter.Use(middlewares.AuthMiddleware(tokenService))

	clientsRouter.Post("/", handler.CreateClientHandler)
	clientsRouter.Get("/", handler.ListClientsHandler)
	clientsRouter.Get("/{clientID}", handler.GetClientHandler)
	clientsRouter.Patch("/{clientID}", handler.UpdateClientHandler)

	r.Mount("/clients", clientsRouter)

	return
}
