package clients

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/api/jsonutil"
	"github.com/casenote/casenote/api/tokens"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Store Store
}

func claimsUserID(request *http.Request) int64 {
	claims, ok := request.Context().Value("claims").(*tokens.Claims)
	if !ok {
		return 0
	}
	return int64(claims.UserID)
}

func (h *Handler) CreateClientHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	userID := claimsUserID(request)
	if userID == 0 {
		response := jsonutil.Response{
			Status:  "error",
			Message: "unauthorized",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateClientBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	client, err := h.Store.CreateClient(ctx, data, userID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a client with this file number already exists",
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

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Client created successfully",
		Data:    client,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetClientHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	clientID, err := strconv.ParseInt(chi.URLParam(request, "clientID"), 10, 64)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid client id",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	client, err := h.Store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "client not found",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
			return
		}

		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Client retrieved successfully",
		Data:    client,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListClientsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	q := request.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	clients, err := h.Store.ListClients(ctx, q.Get("status"), limit, offset)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Clients retrieved successfully",
		Data:    clients,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateClientHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()

	clientID, err := strconv.ParseInt(chi.URLParam(request, "clientID"), 10, 64)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid client id",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateClientBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	client, err := h.Store.UpdateClient(ctx, clientID, data)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "client not found",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
			return
		}
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: "a client with this file number already exists",
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

	response := jsonutil.Response{
		Status:  "Success",
		Message: "Client updated successfully",
		Data:    client,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
