package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "fantasy-coach"
)

// responseEnvelope follows the Google JSON style guide: exactly one of
// data or error is set.
type responseEnvelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	httpStatus int
	status     string
	reason     string
}

var internalErrorClass = errorClass{http.StatusInternalServerError, "INTERNAL", "internalError"}

// errorClasses is checked in order; the first match wins.
var errorClasses = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, errorClass{http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"}},
	{usecase.ErrNotFound, errorClass{http.StatusNotFound, "NOT_FOUND", "notFound"}},
	{usecase.ErrConflict, errorClass{http.StatusConflict, "ALREADY_EXISTS", "conflict"}},
	{usecase.ErrDependencyUnavailable, errorClass{http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"}},
	{context.DeadlineExceeded, errorClass{http.StatusGatewayTimeout, "DEADLINE_EXCEEDED", "deadlineExceeded"}},
}

func classifyError(ctx context.Context, err error) errorClass {
	_, span := startSpan(ctx, "httpapi.classifyError")
	defer span.End()

	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.class
		}
	}
	return internalErrorClass
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, responseEnvelope{APIVersion: apiVersion, Data: data})
}

// writeError never exposes the message of an unclassified error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classifyError(ctx, err)
	if class.httpStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeErrorBody(ctx, w, class, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalErrorClass, "internal server error")
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, class errorClass, msg string) {
	writeJSON(ctx, w, class.httpStatus, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.httpStatus,
			Message: msg,
			Status:  class.status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: class.reason, Message: msg}},
		},
	})
}
