package forms

import (
	"fmt"

	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

// SkillEntryForm is one editable skill row.
type SkillEntryForm struct {
	Name             string `json:"name"`
	ProficiencyLevel string `json:"proficiencyLevel"`
}

func (e SkillEntryForm) blank() bool {
	return trimmed(e.Name) == "" && trimmed(e.ProficiencyLevel) == ""
}

// SkillsForm is the editable draft of the skills section.
type SkillsForm struct {
	Entries []SkillEntryForm `json:"entries"`
}

// Append adds one empty row at the end of the draft.
func (f *SkillsForm) Append() {
	f.Entries = append(f.Entries, SkillEntryForm{})
}

// RemoveAt deletes the row at index.
func (f *SkillsForm) RemoveAt(index int) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries = append(f.Entries[:index], f.Entries[index+1:]...)
	return nil
}

// SkillsController edits the skills section of the document.
type SkillsController struct {
	store *store.Store
}

// NewSkillsController creates a controller bound to the store.
func NewSkillsController(st *store.Store) SkillsController {
	return SkillsController{store: st}
}

// Load builds a draft from the stored entries, one blank row when empty.
func (c SkillsController) Load() SkillsForm {
	stored := c.store.Document().Skills
	if len(stored) == 0 {
		return SkillsForm{Entries: []SkillEntryForm{{}}}
	}

	entries := make([]SkillEntryForm, len(stored))
	for i, s := range stored {
		entries[i] = SkillEntryForm{
			Name:             s.Name,
			ProficiencyLevel: string(s.ProficiencyLevel),
		}
	}
	return SkillsForm{Entries: entries}
}

// Validate checks every non-blank row.
func (c SkillsController) Validate(f SkillsForm) Errors {
	errs := Errors{}
	for i, entry := range f.Entries {
		if entry.blank() {
			continue
		}
		if trimmed(entry.Name) == "" {
			errs.Add(fmt.Sprintf("entries.%d.name", i), "Skill name is required")
		}
		if !models.SkillLevel(trimmed(entry.ProficiencyLevel)).Valid() {
			errs.Add(fmt.Sprintf("entries.%d.proficiencyLevel", i), "Unknown proficiency level")
		}
	}
	return errs
}

// Submit validates and, when clean, replaces the skills section wholesale,
// dropping rows whose name is empty after trim.
func (c SkillsController) Submit(f SkillsForm) Errors {
	errs := c.Validate(f)
	if !errs.OK() {
		return errs
	}

	entries := make([]models.Skill, 0, len(f.Entries))
	for _, entry := range f.Entries {
		name := trimmed(entry.Name)
		if name == "" {
			continue
		}
		entries = append(entries, models.Skill{
			Name:             name,
			ProficiencyLevel: models.SkillLevel(trimmed(entry.ProficiencyLevel)),
		})
	}

	c.store.ReplaceSkills(entries)
	return errs
}
