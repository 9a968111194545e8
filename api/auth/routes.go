package auth

import (
	"github.com/casenote/casenote/api/middlewares"
	"github.com/casenote/casenote/api/otp"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, queries *database.Queries) {

	authRouter := chi.NewRouter()

	store := NewUserStore(queries)
	tokenService := tokens.NewTokenService()
	otpStore := otp.NewOTPStore(queries)

	handler := Handler{
		Store:    store,
		Queue:    queue,
		OTPStore: otpStore,
		Token:    tokenService,
	}

	authRouter.Route("/auth", func(authRouter chi.Router) {
		authRouter.Post("/register", handler.CreateUserHandler)
		authRouter.Post("/login", handler.LoginUserHandler)
		authRouter.Post("/logout", handler.LogoutUserHandler)
		authRouter.Get("/refresh-token", handler.RefreshTokenHandler)
		authRouter.Post("/forgot-password-request", handler.ForgotPasswordRequestHandler)
		authRouter.Post("/forgot-password", handler.ForgotPasswordHandler)
		authRouter.With(middlewares.AuthMiddleware(tokenService)).Post("/reset-password", handler.ResetPasswordHandler)
	})

	r.Mount("/users", authRouter)

	return
}
