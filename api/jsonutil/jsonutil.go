package jsonutil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// UnmarshalJsonResponse decodes the request body into T and runs the
// validate struct tags over it.
func UnmarshalJsonResponse[T any](request *http.Request) (T, error) {
	var data T

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(&data); err != nil {
		return data, fmt.Errorf("error decoding request body: %v", err)
	}

	if err := validate.Struct(data); err != nil {
		if errors, ok := err.(validator.ValidationErrors); ok && len(errors) > 0 {
			field := errors[0]
			return data, fmt.Errorf("invalid value for field %s (%s)", field.Field(), field.Tag())
		}
		return data, err
	}

	return data, nil
}

func WriteJSONResponse(responseWriter http.ResponseWriter, response any, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)

	if err := json.NewEncoder(responseWriter).Encode(response); err != nil {
		http.Error(responseWriter, "error encoding response", http.StatusInternalServerError)
	}
}
