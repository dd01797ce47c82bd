package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/drafts"
	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/models"
)

// Draft handlers

type openDraftRequest struct {
	Section models.Section `json:"section"`
}

func (s *Server) handleOpenDraft(w http.ResponseWriter, r *http.Request) {
	var req openDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !req.Section.Valid() {
		s.respondError(w, http.StatusBadRequest, "validation_error", "unknown section")
		return
	}

	d, err := s.drafts.Open(req.Section)
	if err != nil {
		s.logger.Error("failed to open draft", zap.Error(err), zap.String("section", string(req.Section)))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to open draft")
		return
	}

	s.respondJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var payload forms.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	d, err := s.drafts.Update(chi.URLParam(r, "id"), payload)
	if err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.drafts.Discard(chi.URLParam(r, "id")); err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "draft discarded",
	})
}

func (s *Server) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	d, err := s.drafts.Append(chi.URLParam(r, "id"))
	if err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "validation_error", "invalid entry index")
		return
	}

	d, err := s.drafts.RemoveAt(chi.URLParam(r, "id"), index)
	if err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

type stillHereRequest struct {
	Value bool `json:"value"`
}

func (s *Server) handleSetStillHere(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "validation_error", "invalid entry index")
		return
	}

	var req stillHereRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	d, err := s.drafts.SetStillHere(chi.URLParam(r, "id"), index, req.Value)
	if err != nil {
		s.respondDraftError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	errs, err := s.drafts.Submit(id)
	if err != nil {
		s.respondDraftError(w, err)
		return
	}

	if !errs.OK() {
		// The draft stays open unless it was a personal draft, which
		// commits best-effort and is spent either way.
		if _, err := s.drafts.Get(id); errors.Is(err, drafts.ErrDraftNotFound) {
			s.respondJSON(w, http.StatusOK, map[string]interface{}{
				"document":    s.store.Document(),
				"fieldErrors": errs,
			})
			return
		}
		s.respondErrorFields(w, http.StatusUnprocessableEntity, "validation_error", "draft has invalid fields", errs)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"document": s.store.Document(),
	})
}

func indexParam(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	return index, err == nil
}

// respondDraftError maps manager and payload errors onto HTTP statuses.
func (s *Server) respondDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drafts.ErrDraftNotFound):
		s.respondError(w, http.StatusNotFound, "not_found", "draft not found")
	case errors.Is(err, drafts.ErrDraftExpired):
		s.respondError(w, http.StatusGone, "draft_expired", "draft has expired")
	case errors.Is(err, drafts.ErrSectionMismatch):
		s.respondError(w, http.StatusConflict, "section_mismatch", "payload section does not match draft")
	case errors.Is(err, forms.ErrIndexOutOfRange):
		s.respondError(w, http.StatusBadRequest, "validation_error", "entry index out of range")
	case errors.Is(err, forms.ErrNotAList), errors.Is(err, forms.ErrNoStillHereFlag), errors.Is(err, forms.ErrEmptyPayload):
		s.respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.logger.Error("draft operation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "draft operation failed")
	}
}
