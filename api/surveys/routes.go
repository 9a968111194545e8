package surveys

import (
	"github.com/casenote/casenote/api/middlewares"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, queries *database.Queries) {

	surveysRouter := chi.NewRouter()

	store := NewSurveyStore(queries)
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store: store,
	}

	surveysRouter.Use(middlewares.AuthMiddleware(tokenService))

	// Survey management
	surveysRouter.Post("/", handler.CreateSurveyHandler)
	surveysRouter.Get("/", handler.ListSurveysHandler)
	surveysRouter.Get("/{surveyID}", handler.GetSurveyHandler)
	surveysRouter.Get("/{surveyID}/details", handler.GetSurveyWithDetailsHandler)
	surveysRouter.Patch("/{surveyID}", handler.UpdateSurveyHandler)
	surveysRouter.Delete("/{surveyID}", handler.DeleteSurveyHandler)

	// Lifecycle
	surveysRouter.Post("/{surveyID}/activate", handler.ActivateSurveyHandler)
	surveysRouter.Post("/{surveyID}/close", handler.CloseSurveyHandler)

	// Section management
	surveysRouter.Post("/{surveyID}/sections", handler.CreateSectionHandler)
	surveysRouter.Patch("/sections/{sectionID}", handler.UpdateSectionHandler)
	surveysRouter.Delete("/sections/{sectionID}", handler.DeleteSectionHandler)

	// Question management
	surveysRouter.Post("/sections/{sectionID}/questions", handler.CreateQuestionHandler)
	surveysRouter.Patch("/questions/{questionID}", handler.UpdateQuestionHandler)
	surveysRouter.Delete("/questions/{questionID}", handler.DeleteQuestionHandler)

	// Question options management
	surveysRouter.Post("/questions/{questionID}/options", handler.CreateQuestionOptionHandler)
	surveysRouter.Get("/questions/{questionID}/options", handler.GetOptionsByQuestionHandler)
	surveysRouter.Patch("/options/{optionID}", handler.UpdateQuestionOptionHandler)
	surveysRouter.Delete("/options/{optionID}", handler.DeleteQuestionOptionHandler)

	r.Mount("/surveys", surveysRouter)

	return
}
