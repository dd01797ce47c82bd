package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/preview"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  forms.Errors `json:"fields,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondErrorFields(w, status, code, message, nil)
}

func (s *Server) respondErrorFields(w http.ResponseWriter, status int, code, message string, fields forms.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", zap.Error(err))
	}
}

// Health handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Document handlers

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"document":        s.store.Document(),
		"visibleSections": s.store.VisibleSections(),
	})
}

// handlePatchPersonal merge-patches the personal block: supplied keys
// overwrite, omitted keys retain their stored value. The commit is
// best-effort: invalid drafts are still stored trimmed so typed progress
// survives, with the field errors reported alongside.
func (s *Server) handlePatchPersonal(w http.ResponseWriter, r *http.Request) {
	var patch models.PersonalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	form := s.controllers.Personal.Load()
	form.ApplyPatch(patch)
	errs := s.controllers.Personal.Submit(form)

	if patch.ProfileImageURL != nil {
		s.store.MergePersonal(models.PersonalPatch{ProfileImageURL: patch.ProfileImageURL})
	}

	data := map[string]interface{}{
		"personalData": s.store.Document().PersonalData,
	}
	if !errs.OK() {
		data["fieldErrors"] = errs
	}
	s.respondJSON(w, http.StatusOK, data)
}

var dataURLPattern = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)

type photoRequest struct {
	Image string `json:"image"`
}

// handlePutPhoto stores a profile image as a data URL, or removes it when
// the image is empty.
func (s *Server) handlePutPhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Image != "" && !dataURLPattern.MatchString(req.Image) {
		s.respondError(w, http.StatusBadRequest, "validation_error", "image must be a base64 image data URL")
		return
	}

	s.store.MergePersonal(models.PersonalPatch{ProfileImageURL: &req.Image})
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "photo updated",
	})
}

// Section handlers

func sectionParam(r *http.Request) (models.Section, bool) {
	section := models.Section(chi.URLParam(r, "section"))
	return section, section.Valid()
}

// handlePutSection replaces one section wholesale through its controller.
// Validation failure leaves the document unchanged and reports the field
// errors; the personal section keeps its best-effort commit behavior.
func (s *Server) handlePutSection(w http.ResponseWriter, r *http.Request) {
	section, ok := sectionParam(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown_section", "unknown section")
		return
	}

	payload, err := decodeSectionPayload(section, r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	errs, err := s.controllers.Submit(payload)
	if err != nil {
		s.logger.Error("section submit failed", zap.Error(err), zap.String("section", string(section)))
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to update section")
		return
	}

	if !errs.OK() && section != models.SectionPersonal {
		s.respondErrorFields(w, http.StatusUnprocessableEntity, "validation_error", "section has invalid fields", errs)
		return
	}

	data := map[string]interface{}{
		"document": s.store.Document(),
	}
	if !errs.OK() {
		data["fieldErrors"] = errs
	}
	s.respondJSON(w, http.StatusOK, data)
}

// decodeSectionPayload decodes a request body into the form shape of the
// named section.
func decodeSectionPayload(section models.Section, r *http.Request) (forms.Payload, error) {
	dec := json.NewDecoder(r.Body)

	var p forms.Payload
	var err error
	switch section {
	case models.SectionPersonal:
		var f forms.PersonalForm
		err = dec.Decode(&f)
		p.Personal = &f
	case models.SectionExperience:
		var f forms.ExperienceForm
		err = dec.Decode(&f)
		p.Experience = &f
	case models.SectionSkills:
		var f forms.SkillsForm
		err = dec.Decode(&f)
		p.Skills = &f
	case models.SectionLanguages:
		var f forms.LanguagesForm
		err = dec.Decode(&f)
		p.Languages = &f
	case models.SectionEducation:
		var f forms.EducationForm
		err = dec.Decode(&f)
		p.Education = &f
	default:
		return forms.Payload{}, forms.ErrUnknownSection
	}
	if err != nil {
		return forms.Payload{}, err
	}
	return p, nil
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

func (s *Server) handlePutVisibility(w http.ResponseWriter, r *http.Request) {
	section, ok := sectionParam(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown_section", "unknown section")
		return
	}

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s.store.SetSectionVisible(section, req.Visible)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"visibleSections": s.store.VisibleSections(),
	})
}

// Preview handler

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	def := s.registry.Get(r.URL.Query().Get("layout"))
	tree := preview.Project(s.store.Document(), s.store.VisibleSections(), def)
	s.respondJSON(w, http.StatusOK, tree)
}

// Layout handlers

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	defs := s.registry.List()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"layouts": defs,
		"total":   len(defs),
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def := s.registry.Lookup(name)
	if def == nil {
		s.respondError(w, http.StatusNotFound, "not_found", "layout not found")
		return
	}
	s.respondJSON(w, http.StatusOK, def)
}
