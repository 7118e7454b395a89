package handler

// Every error response has the same shape:
//
//	{"error": "validation_error", "message": "...", "errors": ["...", "..."]}
//
// "errors" is only present for validation failures. Authentication failures
// are the exception: they always answer {"message": "Access Denied"} so a
// client cannot tell which check failed.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error    string   `json:"error"`              // Machine-readable error type (e.g., "not_found")
	Message  string   `json:"message"`            // Human-readable description
	Errors   []string `json:"errors,omitempty"`   // Every validation message, in order
	Incident string   `json:"incident,omitempty"` // Reference for unexpected failures, also logged
}

// MessageResponse is the body for plain informational replies.
type MessageResponse struct {
	Message string `json:"message"`
}

const accessDenied = "Access Denied"

// writeJSON sends a JSON response with the given status code.
// Headers must be set before WriteHeader; anything after it is ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already gone, all we can do is log
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends it.
//
// This is the only place apperror kinds become status codes. Services and
// repositories never see HTTP. Anything that is not an *apperror.AppError is
// treated as a server fault: the details are logged under a fresh incident
// ID and the client gets a generic message plus that ID.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: appErr.Message,
				Errors:  appErr.Messages,
			})
			return
		case errors.Is(err, apperror.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: accessDenied})
			return
		case errors.Is(err, apperror.ErrForbidden):
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden", Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrTooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request_too_large", Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrConflict):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "conflict", Message: appErr.Message})
			return
		}
	}

	// Never expose the raw error: it may carry SQL or file paths.
	incident := xid.New().String()
	logger.Error("unhandled error",
		slog.String("incident", incident),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:    "internal_error",
		Message:  "An internal error occurred",
		Incident: incident,
	})
}
