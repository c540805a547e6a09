package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"photofeed/internal/codestore"
	"photofeed/internal/logging"
	"photofeed/internal/ranking"
	"photofeed/internal/repository"
	"photofeed/internal/service"
	"photofeed/internal/storage"
)

// ErrorResponse is the fixed body of every non-2xx response.
type ErrorResponse struct {
	Message     string   `json:"message"`
	UserMessage string   `json:"userMessage"`
	Errors      []string `json:"errors"`
}

var defaultResponses = map[int]ErrorResponse{
	http.StatusBadRequest: {
		Message:     "One or more required fields are missing.",
		UserMessage: "We were unable to process your request due to an error. Please check all fields and try again.",
	},
	http.StatusUnauthorized: {
		Message:     "Unauthorized request",
		UserMessage: "Sorry, you are not authorized to perform this action.",
	},
	http.StatusForbidden: {
		Message:     "Forbidden to perform action",
		UserMessage: "You are not allowed to perform the requested action.",
	},
	http.StatusNotFound: {
		Message:     "Resource does not exist.",
		UserMessage: "The resource you requested was not found.",
	},
	http.StatusMethodNotAllowed: {
		Message:     "Method not allowed",
		UserMessage: "Your request is not allowed at the moment.",
	},
	http.StatusConflict: {
		Message:     "Resource already exists.",
		UserMessage: "We were unable to save your data since it already exists.",
	},
	http.StatusInternalServerError: {
		Message:     "Internal server error",
		UserMessage: "The server was unable to process your request due to an internal error. Please try again.",
	},
	http.StatusNotImplemented: {
		Message:     "Feature not yet implemented.",
		UserMessage: "Your request is not allowed at the moment.",
	},
}

// WriteError sends the envelope for statusCode. An empty message keeps the
// default one.
func WriteError(w http.ResponseWriter, message string, statusCode int, errs ...string) {
	body, ok := defaultResponses[statusCode]
	if !ok {
		body = defaultResponses[http.StatusInternalServerError]
	}
	if message != "" {
		body.Message = message
	}
	body.Errors = errs
	if body.Errors == nil {
		body.Errors = []string{}
	}

	writeSuccess(w, body, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a service or repository error to its envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *service.InputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &inputErr):
		WriteError(w, inputErr.Msg, http.StatusBadRequest)
	case errors.As(err, &validationErrs):
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field()+": "+fe.Tag())
		}
		WriteError(w, "", http.StatusBadRequest, fields...)
	case errors.Is(err, ranking.ErrUnknownPage), errors.Is(err, storage.ErrUnsupportedType):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrInvalidReference):
		WriteError(w, "One or more referenced ids do not exist.", http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, repository.ErrInvalidPassword):
		WriteError(w, "", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "", http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, codestore.ErrCodeNotFound):
		WriteError(w, "", http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		WriteError(w, "", http.StatusConflict)
	case errors.Is(err, codestore.ErrDisabled):
		WriteError(w, "", http.StatusNotImplemented)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteError(w, "", http.StatusInternalServerError)
	}
}
