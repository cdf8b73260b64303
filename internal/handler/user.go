package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/notasapp/notas/internal/service"
)

// UserHandler exposes user login (get-or-create) and status vocabulary
// management over HTTP. There is no authentication — the username in the
// URL is the identity, exactly like the console app it replaces.
type UserHandler struct {
	users  *service.UserService
	guard  *service.Guard
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, guard *service.Guard, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		guard:  guard,
		logger: logger,
	}
}

// HandleLogin gets or creates a user by username.
//
// HTTP: POST /api/users
// BODY: {"username": "ana"}
//
// Usernames are taken exactly as sent, minus surrounding whitespace — the
// lookup itself is case-sensitive.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "username is required",
			Field:   "username",
		})
		return
	}

	user, err := h.users.GetOrCreate(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleListStatuses returns the user's status vocabulary in insertion
// order.
//
// HTTP: GET /api/users/{username}/statuses
func (h *UserHandler) HandleListStatuses(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	statuses, err := h.users.ListStatuses(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"statuses": statuses})
}

// HandleAddStatus adds a status name to the user's vocabulary.
//
// HTTP: POST /api/users/{username}/statuses
// BODY: {"name": "Urgente"}
//
// A duplicate add is a no-op reported as 200 {"added": false}; a real add
// returns 201. The name is stored exactly as sent — only fully blank names
// are rejected here.
func (h *UserHandler) HandleAddStatus(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid status JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "status name is required",
			Field:   "name",
		})
		return
	}

	added, err := h.guard.AddStatus(r.Context(), username, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	statuses, err := h.users.ListStatuses(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"added":    added,
		"statuses": statuses,
	})
}

// HandleRemoveStatus removes a status name from the user's vocabulary.
//
// HTTP: DELETE /api/users/{username}/statuses/{status}
//
// Fails with 409 when notes still reference the status or when it is the
// sole remaining entry, and 404 when the name isn't in the vocabulary.
func (h *UserHandler) HandleRemoveStatus(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	status := r.PathValue("status")

	if err := h.guard.RemoveStatus(r.Context(), username, status); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
