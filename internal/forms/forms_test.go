package forms

import (
	"testing"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

func TestPersonalValidate(t *testing.T) {
	c := NewPersonalController(store.New())

	tests := []struct {
		name      string
		form      PersonalForm
		wantField string
	}{
		{
			name:      "missing first name",
			form:      PersonalForm{LastName: "Specter", Email: "h@s.com", Country: "USA", City: "NY"},
			wantField: "firstName",
		},
		{
			name:      "digits in name",
			form:      PersonalForm{FirstName: "Harvey2", LastName: "Specter", Email: "h@s.com", Country: "USA", City: "NY"},
			wantField: "firstName",
		},
		{
			name:      "email without dot",
			form:      PersonalForm{FirstName: "Harvey", LastName: "Specter", Email: "h@s", Country: "USA", City: "NY"},
			wantField: "email",
		},
		{
			name:      "phone with letters",
			form:      PersonalForm{FirstName: "Harvey", LastName: "Specter", Email: "h@s.com", Phone: "555-CALL", Country: "USA", City: "NY"},
			wantField: "phone",
		},
		{
			name:      "bad linkedin scheme",
			form:      PersonalForm{FirstName: "Harvey", LastName: "Specter", Email: "h@s.com", Country: "USA", City: "NY", LinkedInURL: "linkedin.com/in/harvey"},
			wantField: "linkedInUrl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := c.Validate(tt.form)
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, errs)
			}
		})
	}

	valid := PersonalForm{
		FirstName: "Harvey", LastName: "O'Neil-Specter Jr.",
		Email: "harvey@specterlegal.com", Phone: "15551234567",
		Country: "USA", City: "New York", LinkedInURL: "www.linkedin.com/in/harvey",
	}
	if errs := c.Validate(valid); !errs.OK() {
		t.Errorf("valid form rejected: %v", errs)
	}
}

func TestPersonalSubmitCommitsEvenWhenInvalid(t *testing.T) {
	st := store.New()
	c := NewPersonalController(st)

	errs := c.Submit(PersonalForm{FirstName: "  Harvey ", Email: "not-an-email"})
	if errs.OK() {
		t.Fatal("expected validation errors")
	}

	p := st.Document().PersonalData
	if p.FirstName != "Harvey" {
		t.Errorf("FirstName = %q, best-effort commit should persist trimmed progress", p.FirstName)
	}
	if p.Email != "not-an-email" {
		t.Errorf("Email = %q, progress should persist as entered", p.Email)
	}
}

func TestPersonalSubmitKeepsStoredImage(t *testing.T) {
	st := store.New()
	img := "data:image/png;base64,abc"
	st.MergePersonal(models.PersonalPatch{ProfileImageURL: &img})

	c := NewPersonalController(st)
	c.Submit(PersonalForm{FirstName: "Harvey", LastName: "Specter", Email: "h@s.com", Country: "USA", City: "NY"})

	if got := st.Document().PersonalData.ProfileImageURL; got != img {
		t.Errorf("profile image = %q, form submit must not clear it", got)
	}
}

func TestExperienceStillWorkingClearsEndDate(t *testing.T) {
	st := store.New()
	c := NewExperienceController(st)

	form := ExperienceForm{Entries: []ExperienceEntryForm{{
		Role:             "Senior Partner",
		CompanyName:      "Pearson Specter Litt",
		StartDate:        "01/2023",
		EndDate:          "06/2024",
		StillWorkingHere: true,
	}}}

	if errs := c.Submit(form); !errs.OK() {
		t.Fatalf("submit failed: %v", errs)
	}

	got := st.Document().Experience
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].EndDate != nil {
		t.Errorf("end date = %v, still-working entry must persist without one", got[0].EndDate)
	}
	if !got[0].StillWorkingHere {
		t.Error("flag lost on submit")
	}
}

func TestExperienceToggleClearsDraftField(t *testing.T) {
	form := ExperienceForm{Entries: []ExperienceEntryForm{{EndDate: "06/2024"}}}

	if err := form.SetStillWorkingHere(0, true); err != nil {
		t.Fatal(err)
	}
	if form.Entries[0].EndDate != "" {
		t.Error("setting still-working must clear the end-date text immediately")
	}

	if err := form.SetStillWorkingHere(3, true); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestExperienceValidation(t *testing.T) {
	c := NewExperienceController(store.New())

	form := ExperienceForm{Entries: []ExperienceEntryForm{
		{Role: "Associate", CompanyName: "Gordon Schmidt", StartDate: "1998", EndDate: "01/2003"},
		{}, // blank rows are skipped
	}}
	errs := c.Validate(form)
	if _, ok := errs["entries.0.startDate"]; !ok {
		t.Errorf("expected start date shape error, got %v", errs)
	}
	if len(errs) != 1 {
		t.Errorf("blank row should not validate, got %v", errs)
	}

	// End date required unless still working.
	form = ExperienceForm{Entries: []ExperienceEntryForm{
		{Role: "Associate", CompanyName: "Gordon Schmidt", StartDate: "01/1998"},
	}}
	if _, ok := c.Validate(form)["entries.0.endDate"]; !ok {
		t.Error("expected end date required error")
	}
}

func TestExperienceSubmitBlockedLeavesStore(t *testing.T) {
	st := store.New()
	st.ReplaceExperience([]models.Experience{{
		Role: "Auror", CompanyName: "Ministry of Magic", StartDate: dates.NewMonthYear(5, 1998), StillWorkingHere: true,
	}})

	c := NewExperienceController(st)
	errs := c.Submit(ExperienceForm{Entries: []ExperienceEntryForm{{Role: "X", CompanyName: "Y", StartDate: "bad"}}})
	if errs.OK() {
		t.Fatal("expected validation failure")
	}

	if got := st.Document().Experience; len(got) != 1 || got[0].Role != "Auror" {
		t.Errorf("store changed on failed submit: %+v", got)
	}
}

func TestLanguagesCertificateGatedOnName(t *testing.T) {
	st := store.New()
	c := NewLanguagesController(st)

	form := LanguagesForm{Entries: []LanguageEntryForm{{
		Language:        "English",
		CertificateDate: "06/1997",
		// certificate name left empty
	}}}

	if errs := c.Submit(form); !errs.OK() {
		t.Fatalf("submit failed: %v", errs)
	}

	got := st.Document().Languages
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Certificate != nil {
		t.Errorf("certificate = %+v, unnamed certificate must not persist", got[0].Certificate)
	}
}

func TestLanguagesCertificateDatesIndependent(t *testing.T) {
	st := store.New()
	c := NewLanguagesController(st)

	form := LanguagesForm{Entries: []LanguageEntryForm{{
		Language:           "English",
		ProficiencyLevel:   "Native",
		CEFRLevel:          "C2",
		CertificateName:    " IELTS ",
		CertificateExpires: "06/2007",
	}}}

	if errs := c.Submit(form); !errs.OK() {
		t.Fatalf("submit failed: %v", errs)
	}

	cert := st.Document().Languages[0].Certificate
	if cert == nil || cert.Name != "IELTS" {
		t.Fatalf("certificate = %+v", cert)
	}
	if cert.Date != nil {
		t.Error("issue date should be absent")
	}
	if cert.Expires == nil || dates.Format(*cert.Expires) != "06/2007" {
		t.Errorf("expiry = %v", cert.Expires)
	}
}

func TestLanguagesValidation(t *testing.T) {
	c := NewLanguagesController(store.New())

	form := LanguagesForm{Entries: []LanguageEntryForm{
		{Language: "English", ProficiencyLevel: "Expert"},  // not on the language scale
		{Language: "Fran3ais"},                             // digits rejected
		{Language: "German", CertificateName: "Goethe", CertificateDate: "13/2024"},
	}}
	errs := c.Validate(form)

	for _, path := range []string{
		"entries.0.proficiencyLevel",
		"entries.1.language",
		"entries.2.certificateDate",
	} {
		if _, ok := errs[path]; !ok {
			t.Errorf("expected error on %s, got %v", path, errs)
		}
	}
}

func TestEducationStillStudying(t *testing.T) {
	st := store.New()
	c := NewEducationController(st)

	form := EducationForm{Entries: []EducationEntryForm{{
		InstitutionName: "Hogwarts",
		StartDate:       "09/1991",
		EndDate:         "06/1998",
		StillStudying:   true,
	}}}

	if errs := c.Submit(form); !errs.OK() {
		t.Fatalf("submit failed: %v", errs)
	}

	got := st.Document().Education[0]
	if got.EndDate != nil {
		t.Error("still-studying entry must persist without an end date")
	}
}

func TestEducationDropsRowsWithoutInstitution(t *testing.T) {
	st := store.New()
	c := NewEducationController(st)

	form := EducationForm{Entries: []EducationEntryForm{
		{InstitutionName: "Harvard Law School", StartDate: "09/1994", EndDate: "06/1997", DegreeType: " Juris Doctor "},
		{}, // appended and never filled
	}}

	if errs := c.Submit(form); !errs.OK() {
		t.Fatalf("submit failed: %v", errs)
	}

	got := st.Document().Education
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].DegreeType != "Juris Doctor" {
		t.Errorf("degree = %q, fields must be trimmed", got[0].DegreeType)
	}
}

func TestEducationLoadRendersCanonicalDates(t *testing.T) {
	st := store.New()
	day := 5
	st.ReplaceEducation([]models.Education{{
		InstitutionName: "Hogwarts",
		StartDate:       dates.Parts{Day: &day, Month: 6, Year: 2021},
		EndDate:         nil,
		StillStudying:   true,
	}})

	form := NewEducationController(st).Load()
	if form.Entries[0].StartDate != "05/06/2021" {
		t.Errorf("start date text = %q, want 05/06/2021", form.Entries[0].StartDate)
	}
	if form.Entries[0].EndDate != "" {
		t.Errorf("end date text = %q, want empty", form.Entries[0].EndDate)
	}
}

func TestListOps(t *testing.T) {
	form := SkillsForm{Entries: []SkillEntryForm{{Name: "A"}, {Name: "B"}, {Name: "C"}}}

	form.Append()
	if len(form.Entries) != 4 || !form.Entries[3].blank() {
		t.Fatalf("append failed: %+v", form.Entries)
	}

	if err := form.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if form.Entries[0].Name != "A" || form.Entries[1].Name != "C" {
		t.Errorf("remove did not renumber: %+v", form.Entries)
	}

	if err := form.RemoveAt(10); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestControllersDispatch(t *testing.T) {
	st := store.New()
	c := NewControllers(st)

	payload, err := c.Load(models.SectionLanguages)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Languages == nil || len(payload.Languages.Entries) != 2 {
		t.Fatalf("fresh languages draft should have two blank rows: %+v", payload)
	}

	if _, err := c.Load(models.Section("unknown")); err != ErrUnknownSection {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}

	payload.Languages.Entries[0].Language = "English"
	errs, err := c.Submit(payload)
	if err != nil || !errs.OK() {
		t.Fatalf("submit: errs=%v err=%v", errs, err)
	}
	if len(st.Document().Languages) != 1 {
		t.Error("dispatch did not commit")
	}

	if _, err := c.Submit(Payload{}); err != ErrEmptyPayload {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestPayloadRowOps(t *testing.T) {
	p := Payload{Personal: &PersonalForm{}}
	if err := p.Append(); err != ErrNotAList {
		t.Errorf("append on personal: %v", err)
	}
	if err := p.SetStillHere(0, true); err != ErrNoStillHereFlag {
		t.Errorf("still-here on personal: %v", err)
	}

	p = Payload{Education: &EducationForm{Entries: []EducationEntryForm{{EndDate: "06/1998"}}}}
	if err := p.SetStillHere(0, true); err != nil {
		t.Fatal(err)
	}
	if p.Education.Entries[0].EndDate != "" {
		t.Error("still-here dispatch did not clear end date")
	}
}
