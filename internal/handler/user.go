package handler

import (
	"log/slog"
	"net/http"

	"github.com/vmccready/techdegree-project-9/internal/service"
)

// UserHandler serves /api/users.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// currentUserResponse is deliberately minimal: only the display name.
type currentUserResponse struct {
	Name string `json:"name"`
}

// HandleCurrent returns the authenticated user's full name.
//
// HTTP: GET /api/users (auth required)
func (h *UserHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, currentUserResponse{Name: user.FullName()})
}

// HandleRegister creates a user.
//
// HTTP: POST /api/users
// REQUEST BODY: {"firstName","lastName","emailAddress","password"}
// RESPONSE: 201, Location: /, no body
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.users.Register(r.Context(), p); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
