package forms

import (
	"fmt"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

// ExperienceEntryForm is one editable work-history row. Dates are text in
// the canonical MM/YYYY or DD/MM/YYYY shapes.
type ExperienceEntryForm struct {
	Role             string `json:"role"`
	CompanyName      string `json:"companyName"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Location         string `json:"location"`
	StillWorkingHere bool   `json:"stillWorkingHere"`
	Description      string `json:"description"`
}

func (e ExperienceEntryForm) blank() bool {
	return trimmed(e.Role) == "" && trimmed(e.CompanyName) == "" &&
		trimmed(e.StartDate) == "" && trimmed(e.EndDate) == "" &&
		trimmed(e.Location) == "" && trimmed(e.Description) == "" &&
		!e.StillWorkingHere
}

// ExperienceForm is the editable draft of the experience section.
type ExperienceForm struct {
	Entries []ExperienceEntryForm `json:"entries"`
}

// Append adds one empty row at the end of the draft.
func (f *ExperienceForm) Append() {
	f.Entries = append(f.Entries, ExperienceEntryForm{})
}

// RemoveAt deletes the row at index, renumbering the rest.
func (f *ExperienceForm) RemoveAt(index int) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries = append(f.Entries[:index], f.Entries[index+1:]...)
	return nil
}

// SetStillWorkingHere flips the flag on a row. Setting it true clears the
// end-date text immediately, before any submit.
func (f *ExperienceForm) SetStillWorkingHere(index int, value bool) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries[index].StillWorkingHere = value
	if value {
		f.Entries[index].EndDate = ""
	}
	return nil
}

// ExperienceController edits the experience section of the document.
type ExperienceController struct {
	store *store.Store
}

// NewExperienceController creates a controller bound to the store.
func NewExperienceController(st *store.Store) ExperienceController {
	return ExperienceController{store: st}
}

// Load builds a draft from the stored entries, rendering dates in
// canonical text. An empty section yields one blank row to edit.
func (c ExperienceController) Load() ExperienceForm {
	stored := c.store.Document().Experience
	if len(stored) == 0 {
		return ExperienceForm{Entries: []ExperienceEntryForm{{}}}
	}

	entries := make([]ExperienceEntryForm, len(stored))
	for i, e := range stored {
		entries[i] = ExperienceEntryForm{
			Role:             e.Role,
			CompanyName:      e.CompanyName,
			StartDate:        dates.Format(e.StartDate),
			EndDate:          dates.FormatPtr(e.EndDate),
			Location:         e.Location,
			StillWorkingHere: e.StillWorkingHere,
			Description:      e.Description,
		}
	}
	return ExperienceForm{Entries: entries}
}

// Validate checks every non-blank row. Blank rows are dropped at submit
// and are not validated.
func (c ExperienceController) Validate(f ExperienceForm) Errors {
	errs := Errors{}
	for i, entry := range f.Entries {
		if entry.blank() {
			continue
		}
		path := func(field string) string { return fmt.Sprintf("entries.%d.%s", i, field) }

		if trimmed(entry.Role) == "" {
			errs.Add(path("role"), "Role is required")
		}
		if trimmed(entry.CompanyName) == "" {
			errs.Add(path("companyName"), "Company is required")
		}

		start := trimmed(entry.StartDate)
		if start == "" {
			errs.Add(path("startDate"), "Start date is required")
		} else if _, ok := dates.Parse(start); !ok {
			errs.Add(path("startDate"), "Use MM/YYYY or DD/MM/YYYY")
		}

		if !entry.StillWorkingHere {
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

// Submit validates the draft and, when clean, replaces the experience
// section wholesale. A still-working row persists with no end date no
// matter what text is in the field.
func (c ExperienceController) Submit(f ExperienceForm) Errors {
	errs := c.Validate(f)
	if !errs.OK() {
		return errs
	}

	entries := make([]models.Experience, 0, len(f.Entries))
	for _, entry := range f.Entries {
		company := trimmed(entry.CompanyName)
		if company == "" {
			continue
		}

		start, _ := dates.Parse(entry.StartDate)

		var end *dates.Parts
		if !entry.StillWorkingHere {
			if parsed, ok := dates.Parse(entry.EndDate); ok {
				end = &parsed
			}
		}

		entries = append(entries, models.Experience{
			Role:             trimmed(entry.Role),
			CompanyName:      company,
			StartDate:        start,
			EndDate:          end,
			Location:         trimmed(entry.Location),
			StillWorkingHere: entry.StillWorkingHere,
			Description:      trimmed(entry.Description),
		})
	}

	c.store.ReplaceExperience(entries)
	return errs
}
