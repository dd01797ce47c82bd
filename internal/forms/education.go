package forms

import (
	"fmt"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

// EducationEntryForm is one editable education row.
type EducationEntryForm struct {
	InstitutionName string `json:"institutionName"`
	DegreeType      string `json:"degreeType"`
	FieldOfStudy    string `json:"fieldOfStudy"`
	Location        string `json:"location"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	StillStudying   bool   `json:"stillStudying"`
	Description     string `json:"description"`
}

func (e EducationEntryForm) blank() bool {
	return trimmed(e.InstitutionName) == "" && trimmed(e.DegreeType) == "" &&
		trimmed(e.FieldOfStudy) == "" && trimmed(e.Location) == "" &&
		trimmed(e.StartDate) == "" && trimmed(e.EndDate) == "" &&
		trimmed(e.Description) == "" && !e.StillStudying
}

// EducationForm is the editable draft of the education section.
type EducationForm struct {
	Entries []EducationEntryForm `json:"entries"`
}

// Append adds one empty row at the end of the draft.
func (f *EducationForm) Append() {
	f.Entries = append(f.Entries, EducationEntryForm{})
}

// RemoveAt deletes the row at index.
func (f *EducationForm) RemoveAt(index int) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries = append(f.Entries[:index], f.Entries[index+1:]...)
	return nil
}

// SetStillStudying flips the flag on a row, clearing the end-date text
// immediately when set true.
func (f *EducationForm) SetStillStudying(index int, value bool) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries[index].StillStudying = value
	if value {
		f.Entries[index].EndDate = ""
	}
	return nil
}

// EducationController edits the education section of the document.
type EducationController struct {
	store *store.Store
}

// NewEducationController creates a controller bound to the store.
func NewEducationController(st *store.Store) EducationController {
	return EducationController{store: st}
}

// Load builds a draft from the stored entries, dates in canonical text,
// one blank row when empty.
func (c EducationController) Load() EducationForm {
	stored := c.store.Document().Education
	if len(stored) == 0 {
		return EducationForm{Entries: []EducationEntryForm{{}}}
	}

	entries := make([]EducationEntryForm, len(stored))
	for i, e := range stored {
		entries[i] = EducationEntryForm{
			InstitutionName: e.InstitutionName,
			DegreeType:      e.DegreeType,
			FieldOfStudy:    e.FieldOfStudy,
			Location:        e.Location,
			StartDate:       dates.Format(e.StartDate),
			EndDate:         dates.FormatPtr(e.EndDate),
			StillStudying:   e.StillStudying,
			Description:     e.Description,
		}
	}
	return EducationForm{Entries: entries}
}

// Validate checks every non-blank row.
func (c EducationController) Validate(f EducationForm) Errors {
	errs := Errors{}
	for i, entry := range f.Entries {
		if entry.blank() {
			continue
		}
		path := func(field string) string { return fmt.Sprintf("entries.%d.%s", i, field) }

		if trimmed(entry.InstitutionName) == "" {
			errs.Add(path("institutionName"), "Institution is required")
		}

		start := trimmed(entry.StartDate)
		if start == "" {
			errs.Add(path("startDate"), "Start date is required")
		} else if _, ok := dates.Parse(start); !ok {
			errs.Add(path("startDate"), "Use MM/YYYY or DD/MM/YYYY")
		}

		if !entry.StillStudying {
			end := trimmed(entry.EndDate)
			if end == "" {
				errs.Add(path("endDate"), "End date is required")
			} else if _, ok := dates.Parse(end); !ok {
				errs.Add(path("endDate"), "Use MM/YYYY or DD/MM/YYYY")
			}
		}
	}
	return errs
}

// Submit validates and, when clean, replaces the education section
// wholesale, dropping rows whose institution is empty after trim. A
// still-studying row persists with no end date.
func (c EducationController) Submit(f EducationForm) Errors {
	errs := c.Validate(f)
	if !errs.OK() {
		return errs
	}

	entries := make([]models.Education, 0, len(f.Entries))
	for _, entry := range f.Entries {
		institution := trimmed(entry.InstitutionName)
		if institution == "" {
			continue
		}

		start, _ := dates.Parse(entry.StartDate)

		var end *dates.Parts
		if !entry.StillStudying {
			if parsed, ok := dates.Parse(entry.EndDate); ok {
				end = &parsed
			}
		}

		entries = append(entries, models.Education{
			InstitutionName: institution,
			StartDate:       start,
			EndDate:         end,
			Location:        trimmed(entry.Location),
			DegreeType:      trimmed(entry.DegreeType),
			FieldOfStudy:    trimmed(entry.FieldOfStudy),
			Description:     trimmed(entry.Description),
			StillStudying:   entry.StillStudying,
		})
	}

	c.store.ReplaceEducation(entries)
	return errs
}
