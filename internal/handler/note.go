package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/notasapp/notas/internal/service"
)

// NoteHandler exposes note CRUD over HTTP. Writes that touch the status
// field (create, retag, delete) go through the Guard so the vocabulary
// invariants hold; reads and title/content edits talk to the services.
type NoteHandler struct {
	notes  *service.NoteService
	users  *service.UserService
	guard  *service.Guard
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService, users *service.UserService, guard *service.Guard, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		users:  users,
		guard:  guard,
		logger: logger,
	}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// HandleCreate creates a note for the user in the URL.
//
// HTTP: POST /api/users/{username}/notes
// BODY: {"title": "Buy milk", "content": "two liters", "status": "Hecho"}
//
// Blank title or content is rejected here — the service layer accepts any
// string, per the contract that presentation-level validation lives at the
// transport. The status is passed through untouched (exact match).
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if msg, field := validateNoteFields(req.Title, req.Content); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: msg,
			Field:   field,
		})
		return
	}

	note, err := h.guard.CreateNote(r.Context(), username, req.Title, req.Content, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// HandleList returns the user's notes, newest first, optionally filtered by
// exact status match.
//
// HTTP: GET /api/users/{username}/notes[?status=Hecho]
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, err := h.users.GetOrCreate(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	var notes any
	if status := r.URL.Query().Get("status"); status != "" {
		notes, err = h.notes.ListByOwnerAndStatus(r.Context(), user.ID, status)
	} else {
		notes, err = h.notes.ListByOwner(r.Context(), user.ID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// HandleGet returns a single note.
//
// HTTP: GET /api/users/{username}/notes/{id}
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	noteID := r.PathValue("id")

	user, err := h.users.GetOrCreate(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.GetByID(r.Context(), noteID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleUpdate edits a note's title and content. The status is not touched
// here — retagging is a separate endpoint with its own validation.
//
// HTTP: PUT /api/users/{username}/notes/{id}
// BODY: {"title": "...", "content": "..."}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	noteID := r.PathValue("id")

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if msg, field := validateNoteFields(req.Title, req.Content); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: msg,
			Field:   field,
		})
		return
	}

	user, err := h.users.GetOrCreate(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.UpdateFields(r.Context(), noteID, user.ID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleRetag moves a note to a new status, re-validated against the
// owner's current vocabulary.
//
// HTTP: PUT /api/users/{username}/notes/{id}/status
// BODY: {"status": "No hecho"}
func (h *NoteHandler) HandleRetag(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	noteID := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid status JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	note, err := h.guard.RetagNote(r.Context(), username, noteID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleDelete removes a note.
//
// HTTP: DELETE /api/users/{username}/notes/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	noteID := r.PathValue("id")

	if err := h.guard.DeleteNote(r.Context(), username, noteID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateNoteFields rejects blank title or content. Returns a message and
// the offending field, or ("", "") when both are fine.
func validateNoteFields(title, content string) (msg, field string) {
	if strings.TrimSpace(title) == "" {
		return "note title is required", "title"
	}
	if strings.TrimSpace(content) == "" {
		return "note content is required", "content"
	}
	return "", ""
}
