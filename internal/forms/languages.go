package forms

import (
	"fmt"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

// LanguageEntryForm is one editable language row. The certificate fields
// are flattened into the row; the certificate only persists when its name
// is non-empty after trim.
type LanguageEntryForm struct {
	Language           string `json:"language"`
	ProficiencyLevel   string `json:"proficiencyLevel"`
	CEFRLevel          string `json:"cefrLevel"`
	CertificateName    string `json:"certificateName"`
	CertificateDate    string `json:"certificateDate"`
	CertificateExpires string `json:"certificateExpires"`
}

func (e LanguageEntryForm) blank() bool {
	return trimmed(e.Language) == "" && trimmed(e.ProficiencyLevel) == "" &&
		trimmed(e.CEFRLevel) == "" && trimmed(e.CertificateName) == "" &&
		trimmed(e.CertificateDate) == "" && trimmed(e.CertificateExpires) == ""
}

// LanguagesForm is the editable draft of the languages section.
type LanguagesForm struct {
	Entries []LanguageEntryForm `json:"entries"`
}

// Append adds one empty row at the end of the draft.
func (f *LanguagesForm) Append() {
	f.Entries = append(f.Entries, LanguageEntryForm{})
}

// RemoveAt deletes the row at index.
func (f *LanguagesForm) RemoveAt(index int) error {
	if index < 0 || index >= len(f.Entries) {
		return ErrIndexOutOfRange
	}
	f.Entries = append(f.Entries[:index], f.Entries[index+1:]...)
	return nil
}

// LanguagesController edits the languages section of the document.
type LanguagesController struct {
	store *store.Store
}

// NewLanguagesController creates a controller bound to the store.
func NewLanguagesController(st *store.Store) LanguagesController {
	return LanguagesController{store: st}
}

// Load builds a draft from the stored entries. An empty section yields two
// blank rows, matching the form's starting state.
func (c LanguagesController) Load() LanguagesForm {
	stored := c.store.Document().Languages
	if len(stored) == 0 {
		return LanguagesForm{Entries: []LanguageEntryForm{{}, {}}}
	}

	entries := make([]LanguageEntryForm, len(stored))
	for i, l := range stored {
		entry := LanguageEntryForm{
			Language:         l.Language,
			ProficiencyLevel: string(l.ProficiencyLevel),
			CEFRLevel:        string(l.CEFRLevel),
		}
		if l.Certificate != nil {
			entry.CertificateName = l.Certificate.Name
			entry.CertificateDate = dates.FormatPtr(l.Certificate.Date)
			entry.CertificateExpires = dates.FormatPtr(l.Certificate.Expires)
		}
		entries[i] = entry
	}
	return LanguagesForm{Entries: entries}
}

// Validate checks every non-blank row.
func (c LanguagesController) Validate(f LanguagesForm) Errors {
	errs := Errors{}
	for i, entry := range f.Entries {
		if entry.blank() {
			continue
		}
		path := func(field string) string { return fmt.Sprintf("entries.%d.%s", i, field) }

		language := trimmed(entry.Language)
		if language == "" {
			errs.Add(path("language"), "Language is required")
		} else if !languagePattern.MatchString(language) {
			errs.Add(path("language"), "Letters only")
		}

		if !models.LanguageLevel(trimmed(entry.ProficiencyLevel)).Valid() {
			errs.Add(path("proficiencyLevel"), "Unknown proficiency level")
		}
		if !models.CEFRLevel(trimmed(entry.CEFRLevel)).Valid() {
			errs.Add(path("cefrLevel"), "Unknown CEFR level")
		}

		if !dates.Valid(entry.CertificateDate) {
			errs.Add(path("certificateDate"), "Use MM/YYYY or DD/MM/YYYY")
		}
		if !dates.Valid(entry.CertificateExpires) {
			errs.Add(path("certificateExpires"), "Use MM/YYYY or DD/MM/YYYY")
		}
	}
	return errs
}

// Submit validates and, when clean, replaces the languages section
// wholesale. Certificate dates without a certificate name are discarded
// along with the rest of the sub-record.
func (c LanguagesController) Submit(f LanguagesForm) Errors {
	errs := c.Validate(f)
	if !errs.OK() {
		return errs
	}

	entries := make([]models.Language, 0, len(f.Entries))
	for _, entry := range f.Entries {
		language := trimmed(entry.Language)
		if language == "" {
			continue
		}

		var cert *models.Certificate
		if name := trimmed(entry.CertificateName); name != "" {
			cert = &models.Certificate{
				Name:    name,
				Date:    parseOptionalDate(entry.CertificateDate),
				Expires: parseOptionalDate(entry.CertificateExpires),
			}
		}

		entries = append(entries, models.Language{
			Language:         language,
			ProficiencyLevel: models.LanguageLevel(trimmed(entry.ProficiencyLevel)),
			CEFRLevel:        models.CEFRLevel(trimmed(entry.CEFRLevel)),
			Certificate:      cert,
		})
	}

	c.store.ReplaceLanguages(entries)
	return errs
}

func parseOptionalDate(text string) *dates.Parts {
	if p, ok := dates.Parse(text); ok {
		return &p
	}
	return nil
}
