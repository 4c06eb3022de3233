package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.ListByOwner(r.Context(), UserID(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDtos(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := s.notes.Create(r.Context(), UserID(r.Context()), req.Title, req.Content, req.IsPublic)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteDto(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.notes.Update(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.notes.Delete(r.Context(), chi.URLParam(r, "id"), UserID(r.Context())); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	var req setVisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.setVisibility(w, r, req.IsPublic)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.setVisibility(w, r, true)
}

func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	s.setVisibility(w, r, false)
}

func (s *Server) setVisibility(w http.ResponseWriter, r *http.Request, isPublic bool) {
	err := s.notes.SetVisibility(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), isPublic)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublicByUsername(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.ListPublicByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDtos(notes))
}

func (s *Server) handlePublicPaged(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNumber := intQueryParam(q.Get("pageNumber"), 1)
	pageSize := intQueryParam(q.Get("pageSize"), 10)
	sortBy := q.Get("sortBy")

	page, err := s.notes.ListPublicPaged(r.Context(), pageNumber, pageSize, sortBy)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:         toNoteDtos(page.Notes),
		PageNumber:   page.PageNumber,
		PageSize:     page.PageSize,
		TotalRecords: page.TotalRecords,
	})
}

// intQueryParam parses a numeric query parameter, falling back to def on
// absent or unparsable input.
func intQueryParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
