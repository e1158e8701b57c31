package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"plateshare/middleware"
	"plateshare/models"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each request's store work when none is configured.
const DefaultTimeout = 5 * time.Second

// Base carries what every controller needs: a logger and the per-request
// timeout.
type Base struct {
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewBase builds a Base, substituting DefaultTimeout for a zero timeout.
func NewBase(logger *zap.Logger, timeout time.Duration) Base {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Base{Logger: logger, Timeout: timeout}
}

func (b Base) context(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), b.Timeout)
}

type messageResponse struct {
	Message string `json:"message"`
}

type insertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type deleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// badInput answers a body that could not be decoded.
func (b Base) badInput(w http.ResponseWriter, err error) {
	msg := "Invalid input"
	if errors.Is(err, models.ErrInvalidArgument) {
		msg = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, messageResponse{Message: msg})
}

// fail maps a domain error to a status code. Anything unrecognized is logged
// and answered with a generic 500.
func (b Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, messageResponse{Message: err.Error()})
	default:
		b.Logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server Error"})
	}
}
