package forms

import (
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

// PersonalForm is the editable draft of the personal block. The profile
// image is not part of the form; it is merged into the store directly by
// the photo intake.
type PersonalForm struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Country               string `json:"country"`
	City                  string `json:"city"`
	LinkedInURL           string `json:"linkedInUrl"`
	PersonalWebsite       string `json:"personalWebsite"`
	DriverLicenseCategory string `json:"driverLicenseCategory"`
	DesiredJobTitle       string `json:"desiredJobTitle"`
	Summary               string `json:"summary"`
}

// ApplyPatch overlays a merge patch onto the form. Nil patch fields keep
// the form's value, so omitted keys retain what was stored. The profile
// image is not a form field and is ignored here.
func (f *PersonalForm) ApplyPatch(p models.PersonalPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.FirstName, p.FirstName)
	set(&f.LastName, p.LastName)
	set(&f.Email, p.Email)
	set(&f.Phone, p.Phone)
	set(&f.Country, p.Country)
	set(&f.City, p.City)
	set(&f.LinkedInURL, p.LinkedInURL)
	set(&f.PersonalWebsite, p.PersonalWebsite)
	set(&f.DriverLicenseCategory, p.DriverLicenseCategory)
	set(&f.DesiredJobTitle, p.DesiredJobTitle)
	set(&f.Summary, p.Summary)
}

// PersonalController edits the personal block of the document.
type PersonalController struct {
	store *store.Store
}

// NewPersonalController creates a controller bound to the store.
func NewPersonalController(st *store.Store) PersonalController {
	return PersonalController{store: st}
}

// Load builds a draft from the current personal data.
func (c PersonalController) Load() PersonalForm {
	p := c.store.Document().PersonalData
	return PersonalForm{
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		Email:                 p.Email,
		Phone:                 p.Phone,
		Country:               p.Country,
		City:                  p.City,
		LinkedInURL:           p.LinkedInURL,
		PersonalWebsite:       p.PersonalWebsite,
		DriverLicenseCategory: p.DriverLicenseCategory,
		DesiredJobTitle:       p.DesiredJobTitle,
		Summary:               p.Summary,
	}
}

// Validate checks the draft field by field.
func (c PersonalController) Validate(f PersonalForm) Errors {
	errs := Errors{}

	firstName := trimmed(f.FirstName)
	if firstName == "" {
		errs.Add("firstName", "First name is required")
	} else if !validName(firstName) {
		errs.Add("firstName", "Letters only")
	}

	lastName := trimmed(f.LastName)
	if lastName == "" {
		errs.Add("lastName", "Last name is required")
	} else if !validName(lastName) {
		errs.Add("lastName", "Letters only")
	}

	email := trimmed(f.Email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !validEmail(email) {
		errs.Add("email", "Enter a valid email")
	}

	if !validPhone(trimmed(f.Phone)) {
		errs.Add("phone", "Numbers only")
	}

	if trimmed(f.Country) == "" {
		errs.Add("country", "Country is required")
	}
	if trimmed(f.City) == "" {
		errs.Add("city", "City is required")
	}

	if !validURL(trimmed(f.LinkedInURL)) {
		errs.Add("linkedInUrl", "Must start with https:// or www.")
	}
	if !validURL(trimmed(f.PersonalWebsite)) {
		errs.Add("personalWebsite", "Must start with https:// or www.")
	}

	return errs
}

// Submit merges the trimmed draft into the store. Unlike the list sections
// this commits even when validation fails, so user-entered progress is
// never lost; the field errors are still returned for display.
func (c PersonalController) Submit(f PersonalForm) Errors {
	errs := c.Validate(f)

	data := models.PersonalData{
		FirstName:             trimmed(f.FirstName),
		LastName:              trimmed(f.LastName),
		Email:                 trimmed(f.Email),
		Phone:                 trimmed(f.Phone),
		Country:               trimmed(f.Country),
		City:                  trimmed(f.City),
		LinkedInURL:           trimmed(f.LinkedInURL),
		PersonalWebsite:       trimmed(f.PersonalWebsite),
		DriverLicenseCategory: trimmed(f.DriverLicenseCategory),
		DesiredJobTitle:       trimmed(f.DesiredJobTitle),
		Summary:               trimmed(f.Summary),
	}
	c.store.MergePersonal(models.PatchFrom(data, true))

	return errs
}
