package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/round"
)

// APIError is the standard error response for RGS APIs.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, code int, errMsg, codeStr string) {
	render.Status(r, code)
	render.JSON(w, r, APIError{
		Error:   errMsg,
		Code:    codeStr,
		Message: errMsg,
	})
}

// writeServiceError maps round and engine errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, round.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "round not found", "ROUND_NOT_FOUND")
	case errors.Is(err, round.ErrInvalidInput), errors.Is(err, plinko.ErrInvalidDropColumn):
		writeError(w, r, http.StatusBadRequest, inputMessage(err), "INVALID_INPUT")
	case errors.Is(err, round.ErrAlreadyStarted):
		writeError(w, r, http.StatusConflict, "round already started", "ROUND_ALREADY_STARTED")
	case errors.Is(err, round.ErrNotStarted):
		writeError(w, r, http.StatusConflict, "round not started", "ROUND_NOT_STARTED")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error", "INTERNAL")
	}
}

// inputMessage drops the op prefixes from a wrapped validation error.
func inputMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, round.ErrInvalidInput.Error()+": "); i >= 0 {
		return msg[i+len(round.ErrInvalidInput.Error())+2:]
	}
	return plinko.ErrInvalidDropColumn.Error()
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		writeError(w, r, http.StatusBadRequest, "invalid request", "INVALID_INPUT")
		return
	}
	writeError(w, r, http.StatusBadRequest, validationMessage(errs), "INVALID_INPUT")
}

func validationMessage(errs validator.ValidationErrors) string {
	var msgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", err.Field()))
		case "min", "max", "gt":
			msgs = append(msgs, fmt.Sprintf("field %s is out of range", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
