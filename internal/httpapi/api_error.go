package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/John-Robertt/policygen-go/internal/geodata"
	"github.com/John-Robertt/policygen-go/internal/model"
	"github.com/John-Robertt/policygen-go/internal/static"
	"github.com/John-Robertt/policygen-go/internal/sub"
)

// APIError is used by the HTTP layer for request validation and a few
// HTTP-specific errors.
type APIError struct {
	Status   int
	AppError model.AppError
	Cause    error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *APIError) Unwrap() error { return e.Cause }

func apiError(status int, app model.AppError, cause error) error {
	return &APIError{Status: status, AppError: app, Cause: cause}
}

func requestError(code, message, hint string) error {
	return apiError(http.StatusBadRequest, model.AppError{
		Code:    code,
		Message: message,
		Stage:   "validate_request",
		Hint:    hint,
	}, nil)
}

func writeErrorFromErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var ae *APIError
	if errors.As(err, &ae) {
		WriteError(w, ae.Status, ae.AppError)
		return
	}

	// Payload problems are user content errors => 422.
	var se *sub.ParseError
	if errors.As(err, &se) {
		WriteError(w, http.StatusUnprocessableEntity, se.AppError)
		return
	}

	// Table/static defects are ours, not the caller's.
	var te *geodata.TableError
	if errors.As(err, &te) {
		WriteError(w, http.StatusInternalServerError, te.AppError)
		return
	}
	var ve *static.ValidateError
	if errors.As(err, &ve) {
		WriteError(w, http.StatusInternalServerError, ve.AppError)
		return
	}

	// Fallback: internal bug.
	WriteError(w, http.StatusInternalServerError, model.AppError{
		Code:    "INTERNAL_ERROR",
		Message: "服务端内部错误",
		Stage:   "internal",
		Hint:    err.Error(),
	})
}
