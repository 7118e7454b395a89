package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/service"
)

// CourseHandler serves /api/courses.
type CourseHandler struct {
	courses *service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(courses *service.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

// ownerResponse is the public view of a course owner. It must never grow a
// password or timestamp field.
type ownerResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type courseResponse struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	EstimatedTime   *string        `json:"estimatedTime"`
	MaterialsNeeded *string        `json:"materialsNeeded"`
	User            *ownerResponse `json:"User"`
}

func newCourseResponse(c *model.Course) courseResponse {
	resp := courseResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
	}
	if c.Owner != nil {
		resp.User = &ownerResponse{
			ID:           c.Owner.ID,
			FirstName:    c.Owner.FirstName,
			LastName:     c.Owner.LastName,
			EmailAddress: c.Owner.EmailAddress,
		}
	}
	return resp
}

// HandleList returns every course with its owner.
//
// HTTP: GET /api/courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := make([]courseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, newCourseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet returns one course with its owner.
//
// HTTP: GET /api/courses/{id}
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newCourseResponse(course))
}

// HandleCreate adds a course owned by the caller.
//
// HTTP: POST /api/courses (auth required)
// RESPONSE: 201, Location: /api/courses/{id}, no body
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	course, err := h.courses.Create(r.Context(), user, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/courses/%d", course.ID))
	w.WriteHeader(http.StatusCreated)
}

// HandleUpdate replaces a course the caller owns.
//
// HTTP: PUT /api/courses/{id} (auth required)
// RESPONSE: 204
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := courseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.courses.Update(r.Context(), user, id, p); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a course the caller owns.
//
// HTTP: DELETE /api/courses/{id} (auth required)
// RESPONSE: 204
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := courseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.courses.Delete(r.Context(), user, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
