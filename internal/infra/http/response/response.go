package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

func JSON(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, Envelope{StatusCode: status, Success: true, Message: message, Data: data})
}

// Fail writes the error envelope; details falls back to message when empty.
func Fail(w http.ResponseWriter, status int, code, message, details string) {
	if details == "" {
		details = message
	}
	write(w, Envelope{
		StatusCode: status,
		Message:    message,
		Error:      &ErrorBody{Code: code, Details: details},
	})
}

// Error translates use case errors into the failure envelope. Technical
// errors are logged and hidden from the client.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		Fail(w, StatusFor(de.Kind), de.Code, de.Message, de.DetailString())
		return
	}

	code := usecase.CodeInternal
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		code = te.Code
	}
	if log != nil {
		log.Error("request failed", map[string]interface{}{"code": code, "error": err})
	}
	Fail(w, http.StatusInternalServerError, code, "internal server error", "")
}

func StatusFor(kind usecase.ErrorKind) int {
	switch kind {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindConflict:
		return http.StatusConflict
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
