package preview

import (
	"strings"
	"testing"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/layouts"
	"github.com/hero4job/cv-engine/internal/models"
)

func testRegistry(t *testing.T) *layouts.Registry {
	t.Helper()
	return layouts.NewRegistry(layouts.Classic, nil)
}

func findBlock(t *testing.T, tree *Tree, block layouts.Block) *BlockView {
	t.Helper()
	for ri := range tree.Regions {
		for bi := range tree.Regions[ri].Blocks {
			if tree.Regions[ri].Blocks[bi].Block == block {
				return &tree.Regions[ri].Blocks[bi]
			}
		}
	}
	return nil
}

func TestProjectEmptyDocument(t *testing.T) {
	reg := testRegistry(t)
	tree := Project(models.NewDocument(), models.DefaultVisibleSections(), reg.Get(string(layouts.Classic)))

	identity := findBlock(t, tree, layouts.BlockIdentity)
	if identity == nil || identity.Identity == nil {
		t.Fatal("identity block missing")
	}
	if identity.Identity.Name != "Your Name" {
		t.Errorf("empty name should fall back to placeholder, got %q", identity.Identity.Name)
	}

	if sb := findBlock(t, tree, layouts.BlockSummary); sb != nil {
		t.Error("empty summary must not produce a block")
	}

	for _, block := range []layouts.Block{
		layouts.BlockExperience, layouts.BlockSkills,
		layouts.BlockLanguages, layouts.BlockEducation,
	} {
		view := findBlock(t, tree, block)
		if view == nil {
			t.Fatalf("%s block missing", block)
		}
		if view.Empty == "" {
			t.Errorf("%s: empty list must carry placeholder text", block)
		}
		if len(view.Entries) != 0 || len(view.Tags) != 0 || len(view.Lines) != 0 {
			t.Errorf("%s: empty list must have no content", block)
		}
	}
}

func TestProjectHiddenSectionsOmitted(t *testing.T) {
	reg := testRegistry(t)
	doc := models.SeedDocument(string(layouts.Classic))
	visible := models.DefaultVisibleSections()
	visible[models.SectionSkills] = false
	visible[models.SectionLanguages] = false

	tree := Project(doc, visible, reg.Get(string(layouts.Classic)))

	if findBlock(t, tree, layouts.BlockSkills) != nil {
		t.Error("hidden skills section must be omitted entirely")
	}
	if findBlock(t, tree, layouts.BlockLanguages) != nil {
		t.Error("hidden languages section must be omitted entirely")
	}
	if findBlock(t, tree, layouts.BlockExperience) == nil {
		t.Error("visible experience section must survive")
	}
}

func TestProjectDateRanges(t *testing.T) {
	end := dates.NewMonthYear(3, 2020)
	doc := models.NewDocument()
	doc.Experience = []models.Experience{
		{Role: "Associate", CompanyName: "Pearson Hardman", StartDate: dates.NewMonthYear(1, 2011), StillWorkingHere: true},
		{Role: "Paralegal", CompanyName: "Rand Kaldor", StartDate: dates.NewMonthYear(7, 2018), EndDate: &end},
		{Role: "Clerk", CompanyName: "District Court", StartDate: dates.NewMonthYear(2, 2017)},
	}

	reg := testRegistry(t)
	tree := Project(doc, models.DefaultVisibleSections(), reg.Get(string(layouts.Classic)))
	view := findBlock(t, tree, layouts.BlockExperience)
	if view == nil || len(view.Entries) != 3 {
		t.Fatalf("expected three entries: %+v", view)
	}

	want := []string{"01/2011 - Present", "07/2018 - 03/2020", "02/2017"}
	for i, w := range want {
		if got := view.Entries[i].DateRange; got != w {
			t.Errorf("entry %d range = %q, want %q", i, got, w)
		}
	}
}

func TestProjectSkillTags(t *testing.T) {
	doc := models.NewDocument()
	doc.Skills = []models.Skill{
		{Name: "Negotiation", ProficiencyLevel: models.SkillExpert},
		{Name: "Poker", ProficiencyLevel: models.SkillNA},
		{Name: "Chess"},
	}

	reg := testRegistry(t)
	tree := Project(doc, models.DefaultVisibleSections(), reg.Get(string(layouts.Classic)))
	view := findBlock(t, tree, layouts.BlockSkills)
	if view == nil {
		t.Fatal("skills block missing")
	}

	want := []string{"Negotiation - Expert", "Poker", "Chess"}
	for i, w := range want {
		if view.Tags[i] != w {
			t.Errorf("tag %d = %q, want %q", i, view.Tags[i], w)
		}
	}
}

func TestProjectLanguageLines(t *testing.T) {
	issued := dates.NewMonthYear(6, 1997)
	expires := dates.NewMonthYear(6, 2007)

	cases := []struct {
		name string
		in   models.Language
		want string
	}{
		{
			name: "full detail",
			in: models.Language{
				Language:         "English",
				ProficiencyLevel: models.LanguageNative,
				CEFRLevel:        models.CEFRC2,
				Certificate:      &models.Certificate{Name: "IELTS", Date: &issued, Expires: &expires},
			},
			want: "English - Native / C2 (IELTS, 06/1997 - 06/2007)",
		},
		{
			name: "issue date only",
			in: models.Language{
				Language:    "French",
				Certificate: &models.Certificate{Name: "DELF", Date: &issued},
			},
			want: "French - (DELF, 06/1997)",
		},
		{
			name: "expiry only",
			in: models.Language{
				Language:    "German",
				Certificate: &models.Certificate{Name: "Goethe", Expires: &expires},
			},
			want: "German - (Goethe, expires 06/2007)",
		},
		{
			name: "certificate without dates",
			in: models.Language{
				Language:    "Spanish",
				Certificate: &models.Certificate{Name: "DELE"},
			},
			want: "Spanish - (DELE)",
		},
		{
			name: "bare language",
			in:   models.Language{Language: "Parseltongue"},
			want: "Parseltongue",
		},
	}

	reg := testRegistry(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := models.NewDocument()
			doc.Languages = []models.Language{tc.in}
			tree := Project(doc, models.DefaultVisibleSections(), reg.Get(string(layouts.Classic)))
			view := findBlock(t, tree, layouts.BlockLanguages)
			if view == nil || len(view.Lines) != 1 {
				t.Fatalf("languages block = %+v", view)
			}
			if view.Lines[0] != tc.want {
				t.Errorf("line = %q, want %q", view.Lines[0], tc.want)
			}
		})
	}
}

func TestProjectContactRows(t *testing.T) {
	doc := models.NewDocument()
	doc.PersonalData = models.PersonalData{
		FirstName: "Harvey",
		LastName:  "Specter",
		Email:     "harvey@pearson.com",
		City:      "New York",
		Country:   "USA",
	}

	reg := testRegistry(t)
	tree := Project(doc, models.DefaultVisibleSections(), reg.Get(string(layouts.Compact)))
	view := findBlock(t, tree, layouts.BlockContact)
	if view == nil {
		t.Fatal("contact block missing")
	}

	labels := make([]string, 0, len(view.Contact))
	for _, row := range view.Contact {
		labels = append(labels, row.Label)
		if row.Value == "" {
			t.Errorf("row %q has empty value", row.Label)
		}
	}
	if got := strings.Join(labels, ","); got != "Email,Location" {
		t.Errorf("labels = %q, want Email,Location", got)
	}

	loc := view.Contact[1].Value
	if loc != "New York, USA" {
		t.Errorf("location = %q", loc)
	}
}

func TestProjectCompactRegions(t *testing.T) {
	reg := testRegistry(t)
	doc := models.SeedDocument(string(layouts.Compact))
	tree := Project(doc, models.DefaultVisibleSections(), reg.Get(string(layouts.Compact)))

	if tree.Layout != string(layouts.Compact) {
		t.Errorf("layout = %q", tree.Layout)
	}
	if len(tree.Regions) != 2 {
		t.Fatalf("compact must project two regions, got %d", len(tree.Regions))
	}
	if tree.Regions[0].Name != "main" || tree.Regions[1].Name != "side" {
		t.Errorf("regions = %q/%q", tree.Regions[0].Name, tree.Regions[1].Name)
	}
	if findBlock(t, tree, layouts.BlockExperience) == nil {
		t.Error("seeded experience should be present")
	}
}
