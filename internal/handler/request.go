package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/auth"
	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

// maxBodyBytes caps request bodies; user and course payloads are tiny.
const maxBodyBytes = 1 << 20

// decodePayload reads the request body as a JSON object. A body over
// maxBodyBytes surfaces as 413; anything else that is not exactly one JSON
// object is a validation error (400).
func decodePayload(w http.ResponseWriter, r *http.Request) (validate.Payload, error) {
	p, err := validate.DecodePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.TooLarge(fmt.Sprintf("Request body must be %d bytes or fewer", tooLarge.Limit))
		}
		return nil, apperror.ValidationFailed("Request body must be a JSON object")
	}
	return p, nil
}

// courseID reads the {id} URL parameter. Anything that is not a positive
// integer cannot name a course, so it is reported as not found.
func courseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("course", raw)
	}
	return id, nil
}

// currentUser returns the user stored by auth.RequireUser. A route that
// reaches here without one was mounted outside the middleware; treat the
// caller as unauthenticated rather than panicking.
func currentUser(r *http.Request) (*model.User, error) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthenticated(accessDenied)
	}
	return user, nil
}
