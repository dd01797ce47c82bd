package models

import (
	"github.com/hero4job/cv-engine/internal/dates"
)

// Section identifies one of the five CV content categories.
type Section string

const (
	SectionPersonal   Section = "personal"
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
	SectionLanguages  Section = "languages"
	SectionEducation  Section = "education"
)

// Sections lists all sections in display order.
var Sections = []Section{
	SectionPersonal,
	SectionExperience,
	SectionSkills,
	SectionLanguages,
	SectionEducation,
}

// Valid reports whether s is a known section name.
func (s Section) Valid() bool {
	switch s {
	case SectionPersonal, SectionExperience, SectionSkills, SectionLanguages, SectionEducation:
		return true
	}
	return false
}

// SkillLevel is the closed proficiency scale for skills.
type SkillLevel string

const (
	SkillNA           SkillLevel = "N/A"
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Valid reports whether l is empty or a member of the scale. Empty means
// the user never picked a level.
func (l SkillLevel) Valid() bool {
	switch l {
	case "", SkillNA, SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// LanguageLevel is the closed proficiency scale for spoken languages.
type LanguageLevel string

const (
	LanguageBeginner     LanguageLevel = "Beginner"
	LanguageIntermediate LanguageLevel = "Intermediate"
	LanguageAdvanced     LanguageLevel = "Advanced"
	LanguageFluent       LanguageLevel = "Fluent"
	LanguageNative       LanguageLevel = "Native"
)

// Valid reports whether l is empty or a member of the scale.
func (l LanguageLevel) Valid() bool {
	switch l {
	case "", LanguageBeginner, LanguageIntermediate, LanguageAdvanced, LanguageFluent, LanguageNative:
		return true
	}
	return false
}

// CEFRLevel is a Common European Framework language grade.
type CEFRLevel string

const (
	CEFRA1 CEFRLevel = "A1"
	CEFRA2 CEFRLevel = "A2"
	CEFRB1 CEFRLevel = "B1"
	CEFRB2 CEFRLevel = "B2"
	CEFRC1 CEFRLevel = "C1"
	CEFRC2 CEFRLevel = "C2"
)

// Valid reports whether l is empty or a member of the grid.
func (l CEFRLevel) Valid() bool {
	switch l {
	case "", CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2:
		return true
	}
	return false
}

// PersonalData is the identity block of a CV. One instance per document.
type PersonalData struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Country               string `json:"country"`
	City                  string `json:"city"`
	LinkedInURL           string `json:"linkedInUrl,omitempty"`
	PersonalWebsite       string `json:"personalWebsite,omitempty"`
	ProfileImageURL       string `json:"profileImageUrl,omitempty"`
	DriverLicenseCategory string `json:"driverLicenseCategory,omitempty"`
	DesiredJobTitle       string `json:"desiredJobTitle,omitempty"`
	Summary               string `json:"summary,omitempty"`
}

// PersonalPatch is a merge-patch over PersonalData: nil fields keep the
// prior value, non-nil fields overwrite.
type PersonalPatch struct {
	FirstName             *string `json:"firstName,omitempty"`
	LastName              *string `json:"lastName,omitempty"`
	Email                 *string `json:"email,omitempty"`
	Phone                 *string `json:"phone,omitempty"`
	Country               *string `json:"country,omitempty"`
	City                  *string `json:"city,omitempty"`
	LinkedInURL           *string `json:"linkedInUrl,omitempty"`
	PersonalWebsite       *string `json:"personalWebsite,omitempty"`
	ProfileImageURL       *string `json:"profileImageUrl,omitempty"`
	DriverLicenseCategory *string `json:"driverLicenseCategory,omitempty"`
	DesiredJobTitle       *string `json:"desiredJobTitle,omitempty"`
	Summary               *string `json:"summary,omitempty"`
}

// Apply merges the patch into p.
func (patch PersonalPatch) Apply(p *PersonalData) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, patch.FirstName)
	set(&p.LastName, patch.LastName)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Country, patch.Country)
	set(&p.City, patch.City)
	set(&p.LinkedInURL, patch.LinkedInURL)
	set(&p.PersonalWebsite, patch.PersonalWebsite)
	set(&p.ProfileImageURL, patch.ProfileImageURL)
	set(&p.DriverLicenseCategory, patch.DriverLicenseCategory)
	set(&p.DesiredJobTitle, patch.DesiredJobTitle)
	set(&p.Summary, patch.Summary)
}

// PatchFrom builds a full patch from a PersonalData value, preserving the
// stored profile image when keepImage is set.
func PatchFrom(p PersonalData, keepImage bool) PersonalPatch {
	patch := PersonalPatch{
		FirstName:             &p.FirstName,
		LastName:              &p.LastName,
		Email:                 &p.Email,
		Phone:                 &p.Phone,
		Country:               &p.Country,
		City:                  &p.City,
		LinkedInURL:           &p.LinkedInURL,
		PersonalWebsite:       &p.PersonalWebsite,
		DriverLicenseCategory: &p.DriverLicenseCategory,
		DesiredJobTitle:       &p.DesiredJobTitle,
		Summary:               &p.Summary,
	}
	if !keepImage {
		patch.ProfileImageURL = &p.ProfileImageURL
	}
	return patch
}

// Experience is one work-history entry. Invariant: StillWorkingHere implies
// EndDate is nil.
type Experience struct {
	Role             string       `json:"role"`
	CompanyName      string       `json:"companyName"`
	StartDate        dates.Parts  `json:"startDate"`
	EndDate          *dates.Parts `json:"endDate,omitempty"`
	Location         string       `json:"location,omitempty"`
	StillWorkingHere bool         `json:"stillWorkingHere,omitempty"`
	Description      string       `json:"description,omitempty"`
}

// Skill is one skill entry.
type Skill struct {
	Name             string     `json:"name"`
	ProficiencyLevel SkillLevel `json:"proficiencyLevel,omitempty"`
}

// Certificate is the optional language certificate sub-record. It only
// exists with a non-empty Name.
type Certificate struct {
	Name    string       `json:"name"`
	Date    *dates.Parts `json:"date,omitempty"`
	Expires *dates.Parts `json:"expires,omitempty"`
}

// Language is one spoken-language entry.
type Language struct {
	Language         string        `json:"language"`
	ProficiencyLevel LanguageLevel `json:"proficiencyLevel,omitempty"`
	CEFRLevel        CEFRLevel     `json:"cefrLevel,omitempty"`
	Certificate      *Certificate  `json:"certificate,omitempty"`
}

// Education is one education entry. Invariant: StillStudying implies
// EndDate is nil.
type Education struct {
	InstitutionName string       `json:"institutionName"`
	StartDate       dates.Parts  `json:"startDate"`
	EndDate         *dates.Parts `json:"endDate,omitempty"`
	Location        string       `json:"location,omitempty"`
	DegreeType      string       `json:"degreeType,omitempty"`
	FieldOfStudy    string       `json:"fieldOfStudy,omitempty"`
	Description     string       `json:"description,omitempty"`
	StillStudying   bool         `json:"stillStudying,omitempty"`
}

// Document is a full CV. List order is display order.
type Document struct {
	PersonalData PersonalData `json:"personalData"`
	Experience   []Experience `json:"experienceData"`
	Skills       []Skill      `json:"skillsData"`
	Languages    []Language   `json:"languagesData"`
	Education    []Education  `json:"educationData"`
}

// NewDocument returns an empty document: empty strings, empty lists.
func NewDocument() Document {
	return Document{
		Experience: []Experience{},
		Skills:     []Skill{},
		Languages:  []Language{},
		Education:  []Education{},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Experience = make([]Experience, len(d.Experience))
	for i, e := range d.Experience {
		e.StartDate = e.StartDate.Clone()
		e.EndDate = cloneDate(e.EndDate)
		out.Experience[i] = e
	}
	out.Skills = append([]Skill(nil), d.Skills...)
	if out.Skills == nil {
		out.Skills = []Skill{}
	}
	out.Languages = make([]Language, len(d.Languages))
	for i, l := range d.Languages {
		if l.Certificate != nil {
			cert := *l.Certificate
			cert.Date = cloneDate(cert.Date)
			cert.Expires = cloneDate(cert.Expires)
			l.Certificate = &cert
		}
		out.Languages[i] = l
	}
	out.Education = make([]Education, len(d.Education))
	for i, e := range d.Education {
		e.StartDate = e.StartDate.Clone()
		e.EndDate = cloneDate(e.EndDate)
		out.Education[i] = e
	}
	return out
}

func cloneDate(p *dates.Parts) *dates.Parts {
	if p == nil {
		return nil
	}
	c := p.Clone()
	return &c
}

// VisibleSections controls which sections the preview renders.
type VisibleSections map[Section]bool

// DefaultVisibleSections returns the default flags: everything visible.
func DefaultVisibleSections() VisibleSections {
	vs := make(VisibleSections, len(Sections))
	for _, s := range Sections {
		vs[s] = true
	}
	return vs
}

// Clone returns a copy of the flag map.
func (vs VisibleSections) Clone() VisibleSections {
	out := make(VisibleSections, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}
