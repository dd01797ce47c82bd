package forms

import (
	"errors"

	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

var (
	// ErrUnknownSection is returned for a section name outside the five
	// CV sections.
	ErrUnknownSection = errors.New("unknown section")
	// ErrEmptyPayload is returned when a payload carries no form.
	ErrEmptyPayload = errors.New("payload carries no form")
	// ErrNotAList is returned for row operations on the personal form.
	ErrNotAList = errors.New("section has no entry list")
	// ErrNoStillHereFlag is returned for still-here operations on sections
	// without that flag.
	ErrNoStillHereFlag = errors.New("section has no still-here flag")
)

// Payload is a one-of wrapper holding the draft form of a single section.
// Exactly one field is non-nil.
type Payload struct {
	Personal   *PersonalForm   `json:"personal,omitempty"`
	Experience *ExperienceForm `json:"experience,omitempty"`
	Skills     *SkillsForm     `json:"skills,omitempty"`
	Languages  *LanguagesForm  `json:"languages,omitempty"`
	Education  *EducationForm  `json:"education,omitempty"`
}

// Clone returns a deep copy of the payload. Entry rows are plain string
// structs, so copying the slice is enough.
func (p Payload) Clone() Payload {
	var out Payload
	switch {
	case p.Personal != nil:
		f := *p.Personal
		out.Personal = &f
	case p.Experience != nil:
		f := ExperienceForm{Entries: append([]ExperienceEntryForm(nil), p.Experience.Entries...)}
		out.Experience = &f
	case p.Skills != nil:
		f := SkillsForm{Entries: append([]SkillEntryForm(nil), p.Skills.Entries...)}
		out.Skills = &f
	case p.Languages != nil:
		f := LanguagesForm{Entries: append([]LanguageEntryForm(nil), p.Languages.Entries...)}
		out.Languages = &f
	case p.Education != nil:
		f := EducationForm{Entries: append([]EducationEntryForm(nil), p.Education.Entries...)}
		out.Education = &f
	}
	return out
}

// Section reports which section the payload carries.
func (p Payload) Section() (models.Section, error) {
	switch {
	case p.Personal != nil:
		return models.SectionPersonal, nil
	case p.Experience != nil:
		return models.SectionExperience, nil
	case p.Skills != nil:
		return models.SectionSkills, nil
	case p.Languages != nil:
		return models.SectionLanguages, nil
	case p.Education != nil:
		return models.SectionEducation, nil
	}
	return "", ErrEmptyPayload
}

// Append adds an empty row to a list-bearing payload.
func (p *Payload) Append() error {
	switch {
	case p.Experience != nil:
		p.Experience.Append()
	case p.Skills != nil:
		p.Skills.Append()
	case p.Languages != nil:
		p.Languages.Append()
	case p.Education != nil:
		p.Education.Append()
	case p.Personal != nil:
		return ErrNotAList
	default:
		return ErrEmptyPayload
	}
	return nil
}

// RemoveAt removes the row at index from a list-bearing payload.
func (p *Payload) RemoveAt(index int) error {
	switch {
	case p.Experience != nil:
		return p.Experience.RemoveAt(index)
	case p.Skills != nil:
		return p.Skills.RemoveAt(index)
	case p.Languages != nil:
		return p.Languages.RemoveAt(index)
	case p.Education != nil:
		return p.Education.RemoveAt(index)
	case p.Personal != nil:
		return ErrNotAList
	}
	return ErrEmptyPayload
}

// SetStillHere flips the still-working / still-studying flag on a row.
func (p *Payload) SetStillHere(index int, value bool) error {
	switch {
	case p.Experience != nil:
		return p.Experience.SetStillWorkingHere(index, value)
	case p.Education != nil:
		return p.Education.SetStillStudying(index, value)
	case p.Personal != nil, p.Skills != nil, p.Languages != nil:
		return ErrNoStillHereFlag
	}
	return ErrEmptyPayload
}

// Controllers bundles the five section controllers over one store.
type Controllers struct {
	Personal   PersonalController
	Experience ExperienceController
	Skills     SkillsController
	Languages  LanguagesController
	Education  EducationController
}

// NewControllers builds the controller set for a store.
func NewControllers(st *store.Store) *Controllers {
	return &Controllers{
		Personal:   NewPersonalController(st),
		Experience: NewExperienceController(st),
		Skills:     NewSkillsController(st),
		Languages:  NewLanguagesController(st),
		Education:  NewEducationController(st),
	}
}

// Load creates a fresh draft payload for a section from the store.
func (c *Controllers) Load(section models.Section) (Payload, error) {
	switch section {
	case models.SectionPersonal:
		f := c.Personal.Load()
		return Payload{Personal: &f}, nil
	case models.SectionExperience:
		f := c.Experience.Load()
		return Payload{Experience: &f}, nil
	case models.SectionSkills:
		f := c.Skills.Load()
		return Payload{Skills: &f}, nil
	case models.SectionLanguages:
		f := c.Languages.Load()
		return Payload{Languages: &f}, nil
	case models.SectionEducation:
		f := c.Education.Load()
		return Payload{Education: &f}, nil
	}
	return Payload{}, ErrUnknownSection
}

// Submit routes the payload to its section controller.
func (c *Controllers) Submit(p Payload) (Errors, error) {
	switch {
	case p.Personal != nil:
		return c.Personal.Submit(*p.Personal), nil
	case p.Experience != nil:
		return c.Experience.Submit(*p.Experience), nil
	case p.Skills != nil:
		return c.Skills.Submit(*p.Skills), nil
	case p.Languages != nil:
		return c.Languages.Submit(*p.Languages), nil
	case p.Education != nil:
		return c.Education.Submit(*p.Education), nil
	}
	return nil, ErrEmptyPayload
}
