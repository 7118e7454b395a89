package handler

import (
	"net/http"
)

// HandleWelcome answers GET / so a bare deployment can be smoke-tested.
func HandleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Welcome to the REST API project!"})
}

// HandleNotFound is the router's fallback for unknown paths.
func HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Route Not Found"})
}

// HandleMethodNotAllowed answers a known path hit with the wrong verb.
// chi has already set the Allow header by the time this runs.
func HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "method_not_allowed",
		Message: r.Method + " is not supported on " + r.URL.Path,
	})
}
