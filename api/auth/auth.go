package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/jsonutil"
	"github.com/casenote/casenote/api/otp"
	"github.com/casenote/casenote/api/tokens"
	"github.com/casenote/casenote/database"
	"github.com/casenote/casenote/queue"
	"golang.org/x/crypto/bcrypt"
)

var allowedRoles = map[string]bool{
	"staff": true,
	"admin": true,
}

const TokenExpiration = 30

const OtpExpiration = 30

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type Handler struct {
	Store    Store
	Queue    queue.Queue
	OTPStore otp.Store
	Token    tokens.TokenService
}

func userResponse(user database.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName.String,
		LastName:  user.LastName.String,
		Role:      user.Role,
	}
}

func (h *Handler) CreateUserHandler(responseWriter http.ResponseWriter, request *http.Request) {

	ctx := context.Background()

	data, err := jsonutil.UnmarshalJsonResponse[CreateUserBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.Password), 10)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	data.Password = string(hashedPassword)

	q := request.URL.Query()

	role := q.Get("role")

	if role == "" {
		role = "staff"
	}

	if !allowedRoles[role] {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid role",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data.Role = role

	user, err := h.Store.CreateUser(ctx, &data)

	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a user with this email already exists",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}

		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Queue.Enqueue(&queue.EmailDeliveryPayload{
		Name:     "email",
		Template: "welcome_mail",
		Subject:  "Welcome to CaseNote",
		Email:    data.Email,
		Data: struct {
			FirstName string
		}{
			FirstName: data.FirstName,
		},
	})

	if err != nil {
		log.Printf("error enqueuing email task: %s", err)
	}

	response := Response{
		Status:  "Success",
		Message: "User created successfully",
		Data:    userResponse(user),
	}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
	return
}

func (h *Handler) LoginUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	data, err := jsonutil.UnmarshalJsonResponse[LoginUserBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByEmail(ctx, data.Email)

	if err != nil {
		response := jsonutil.Response{Status: "error", Message: "invalid credentials"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	match := h.Token.ComparePasswords(user.Password.String, data.Password)

	if !match {
		response := jsonutil.Response{Status: "error", Message: "invalid credentials"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	token, refreshToken := h.Token.GenerateToken(int(user.ID), data.Email, user.Role)

	if err = h.Store.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	expires := time.Now().AddDate(0, 0, 7)

	cookie := &http.Cookie{Name: "refresh_token", Value: refreshToken, Path: "/", Expires: expires, Secure: true, HttpOnly: true, MaxAge: 86400}
	http.SetCookie(responseWriter, cookie)

	response := Response{Status: "Success", Message: "User logged in", Data: map[string]interface{}{"token": token, "expiration": TokenExpiration}}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}

func (h *Handler) LogoutUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	refreshToken, err := request.Cookie("refresh_token")

	response := Response{
		Status:  "Success",
		Message: "User logged out successfully",
	}

	if err != nil {
		response := jsonutil.Response{
			Status:  "success",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
		return
	}

	cookie := http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		MaxAge:   -1,
	}

	http.SetCookie(responseWriter, &cookie)

	err = h.Store.DeleteRefreshToken(ctx, refreshToken.Value)

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}

func (h *Handler) RefreshTokenHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	refreshToken, err := request.Cookie("refresh_token")
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "no refresh token",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	user, err := h.Store.FindUserWithRefreshToken(ctx, refreshToken.Value)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid refresh token",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	token, newRefreshToken := h.Token.GenerateToken(int(user.ID), user.Email, user.Role)

	if err = h.Store.UpdateRefreshToken(ctx, user.ID, newRefreshToken); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	expires := time.Now().AddDate(0, 0, 7)

	cookie := &http.Cookie{Name: "refresh_token", Value: newRefreshToken, Path: "/", Expires: expires, Secure: true, HttpOnly: true, MaxAge: 86400}
	http.SetCookie(responseWriter, cookie)

	response := Response{Status: "Success", Message: "Token refreshed", Data: map[string]interface{}{"token": token, "expiration": TokenExpiration}}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}

func (h *Handler) ForgotPasswordRequestHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	data, err := jsonutil.UnmarshalJsonResponse[RequestOTPBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByEmail(ctx, data.Email)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	err = h.OTPStore.DeleteOTP(ctx, user.ID, "forgot-password")

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	code, err := h.Token.GenerateSecureOTP(6)

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	hashedCode, err := bcrypt.GenerateFromPassword([]byte(code), 10)

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.OTPStore.CreateOTP(ctx, user.ID, string(hashedCode), time.Now().Add(OtpExpiration*time.Minute), "forgot-password")

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Queue.Enqueue(&queue.EmailDeliveryPayload{
		Name:     "email",
		Template: "forgot_password_mail",
		Subject:  "Forgot Password",
		Email:    data.Email,
		Data: struct {
			Code       string
			Expiration int
		}{
			Code:       code,
			Expiration: OtpExpiration,
		},
	})

	if err != nil {
		log.Printf("error enqueuing email task: %s", err)
	}

	response := Response{
		Status:  "Success",
		Message: "Code has been sent successfully",
	}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}

func (h *Handler) ForgotPasswordHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	data, err := jsonutil.UnmarshalJsonResponse[ForgotPasswordBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByEmail(ctx, data.Email)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	code, err := h.OTPStore.GetOTP(ctx, user.ID, "forgot-password")

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrInvalidOTP.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	isValid := h.Token.ComparePasswords(code, data.Code)
	if !isValid {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrInvalidOTP.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	err = h.OTPStore.DeleteOTP(ctx, user.ID, "forgot-password")

	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), 10)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Store.UpdatePassword(ctx, user.ID, string(hashedPassword))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := Response{
		Status:  "Success",
		Message: "Password has been reset successfully",
	}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}

func (h *Handler) ResetPasswordHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	claims, ok := request.Context().Value("claims").(*tokens.Claims)
	if !ok || claims.UserID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[ResetPasswordBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByID(ctx, int64(claims.UserID))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	match := h.Token.ComparePasswords(user.Password.String, data.OldPassword)
	if !match {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid credentials",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), 10)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Store.UpdatePassword(ctx, user.ID, string(hashedPassword))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := Response{
		Status:  "Success",
		Message: "Password has been reset successfully",
	}

	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
	return
}
