// Package store owns the canonical CV document and the visible-section
// flags. All mutation funnels through the replace operations here; reads
// hand out deep copies so callers can never alias the canonical state.
package store

import (
	"sync"

	"github.com/hero4job/cv-engine/internal/models"
)

// Store is the single mutable resource of the engine. Writes are atomic
// and observed by the next read.
type Store struct {
	mu       sync.RWMutex
	document models.Document
	visible  models.VisibleSections
}

// New creates a store holding an empty document with all sections visible.
func New() *Store {
	return &Store{
		document: models.NewDocument(),
		visible:  models.DefaultVisibleSections(),
	}
}

// Document returns a deep copy of the current document.
func (s *Store) Document() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document.Clone()
}

// VisibleSections returns a copy of the section flags.
func (s *Store) VisibleSections() models.VisibleSections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible.Clone()
}

// MergePersonal applies a merge-patch to the personal block: supplied
// fields overwrite, omitted fields keep their value.
func (s *Store) MergePersonal(patch models.PersonalPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.Apply(&s.document.PersonalData)
}

// ReplaceExperience replaces the experience list wholesale.
func (s *Store) ReplaceExperience(entries []models.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document.Experience = entries
	if s.document.Experience == nil {
		s.document.Experience = []models.Experience{}
	}
}

// ReplaceSkills replaces the skills list wholesale.
func (s *Store) ReplaceSkills(entries []models.Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document.Skills = entries
	if s.document.Skills == nil {
		s.document.Skills = []models.Skill{}
	}
}

// ReplaceLanguages replaces the languages list wholesale.
func (s *Store) ReplaceLanguages(entries []models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document.Languages = entries
	if s.document.Languages == nil {
		s.document.Languages = []models.Language{}
	}
}

// ReplaceEducation replaces the education list wholesale.
func (s *Store) ReplaceEducation(entries []models.Education) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document.Education = entries
	if s.document.Education == nil {
		s.document.Education = []models.Education{}
	}
}

// SetSectionVisible flips one section flag.
func (s *Store) SetSectionVisible(section models.Section, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[section] = visible
}

// SetDocument replaces the whole document, used for seeding.
func (s *Store) SetDocument(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = doc.Clone()
}

// Reset restores the empty document and default flags.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = models.NewDocument()
	s.visible = models.DefaultVisibleSections()
}
