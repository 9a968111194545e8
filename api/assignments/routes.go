package assignments

import (
	"github.com/casenote/casenote/api/middlewares"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, transactor database.Transactor, queries *database.Queries, cipher *database.ValueCipher) {

	assignmentsRouter := chi.NewRouter()

	store := NewAssignmentStore(queries, transactor, cipher)
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store: store,
		Queue: queue,
	}

	// Staff routes
	assignmentsRouter.Group(func(staffRouter chi.Router) {
		staffRouter.Use(middlewares.AuthMiddleware(tokenService))

		staffRouter.Post("/", handler.CreateAssignmentHandler)
		staffRouter.Get("/{assignmentID}", handler.GetAssignmentHandler)
		staffRouter.Get("/survey/{surveyID}", handler.ListAssignmentsBySurveyHandler)
		staffRouter.Get("/client/{clientID}", handler.ListAssignmentsByClientHandler)
	})

	// Participant routes, authenticated by the assignment access token
	assignmentsRouter.Route("/fill/{accessToken}", func(fillRouter chi.Router) {
		fillRouter.Get("/", handler.GetFormHandler)
		fillRouter.Get("/progress", handler.GetProgressHandler)
		fillRouter.Post("/answers", handler.SaveAnswerHandler)
		fillRouter.Post("/pages", handler.SubmitPageHandler)
		fillRouter.Post("/submit", handler.SubmitHandler)
	})

	r.Mount("/assignments", assignmentsRouter)

	return
}
