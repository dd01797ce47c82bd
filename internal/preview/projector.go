// Package preview projects a CV document into a display tree for one of
// the layout arrangements. Projection is pure; it never touches the store
// and mutates nothing it is given.
package preview

import (
	"strings"

	"github.com/hero4job/cv-engine/internal/dates"
	"github.com/hero4job/cv-engine/internal/layouts"
	"github.com/hero4job/cv-engine/internal/models"
)

// Tree is the projected preview, one region per layout region.
type Tree struct {
	Layout  string   `json:"layout"`
	Regions []Region `json:"regions"`
}

// Region is a named group of projected blocks.
type Region struct {
	Name   string      `json:"name"`
	Blocks []BlockView `json:"blocks"`
}

// BlockView is one projected block. Exactly one of the content fields is
// populated, matching the block kind; Empty carries the placeholder when a
// visible list section has no entries.
type BlockView struct {
	Block    layouts.Block `json:"block"`
	Heading  string        `json:"heading,omitempty"`
	Empty    string        `json:"empty,omitempty"`
	Identity *IdentityView `json:"identity,omitempty"`
	Summary  string        `json:"summary,omitempty"`
	Contact  []ContactRow  `json:"contact,omitempty"`
	Entries  []EntryView   `json:"entries,omitempty"`
	Tags     []string      `json:"tags,omitempty"`
	Lines    []string      `json:"lines,omitempty"`
}

// IdentityView is the name header of the CV.
type IdentityView struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ContactRow is one labelled line of contact details.
type ContactRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EntryView is one dated entry of the experience or education lists.
type EntryView struct {
	Title       string `json:"title"`
	DateRange   string `json:"dateRange"`
	Subtitle    string `json:"subtitle,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Project renders the document into the given arrangement. Blocks whose
// section flag is false are omitted entirely; empty visible lists render
// the definition's placeholder text.
func Project(doc models.Document, visible models.VisibleSections, def *layouts.Definition) *Tree {
	tree := &Tree{Layout: def.Name}

	for _, region := range def.Regions {
		out := Region{Name: region.Name}
		for _, block := range region.Blocks {
			if !visible[block.SectionOf()] {
				continue
			}
			if view, ok := projectBlock(doc, def, block); ok {
				out.Blocks = append(out.Blocks, view)
			}
		}
		tree.Regions = append(tree.Regions, out)
	}

	return tree
}

func projectBlock(doc models.Document, def *layouts.Definition, block layouts.Block) (BlockView, bool) {
	view := BlockView{Block: block, Heading: def.Heading(block)}

	switch block {
	case layouts.BlockIdentity:
		view.Identity = &IdentityView{
			Name:     fullName(doc.PersonalData, def.NamePlaceholder),
			Title:    doc.PersonalData.DesiredJobTitle,
			ImageURL: doc.PersonalData.ProfileImageURL,
		}

	case layouts.BlockSummary:
		if doc.PersonalData.Summary == "" {
			return BlockView{}, false
		}
		view.Summary = doc.PersonalData.Summary

	case layouts.BlockContact:
		view.Contact = contactRows(doc.PersonalData)

	case layouts.BlockExperience:
		if len(doc.Experience) == 0 {
			view.Empty = def.EmptyText(block)
			break
		}
		for _, e := range doc.Experience {
			view.Entries = append(view.Entries, EntryView{
				Title:       e.Role,
				DateRange:   dateRange(e.StartDate, e.EndDate, e.StillWorkingHere),
				Subtitle:    e.CompanyName,
				Location:    e.Location,
				Description: e.Description,
			})
		}

	case layouts.BlockSkills:
		if len(doc.Skills) == 0 {
			view.Empty = def.EmptyText(block)
			break
		}
		for _, s := range doc.Skills {
			view.Tags = append(view.Tags, skillTag(s))
		}

	case layouts.BlockLanguages:
		if len(doc.Languages) == 0 {
			view.Empty = def.EmptyText(block)
			break
		}
		for _, l := range doc.Languages {
			view.Lines = append(view.Lines, languageLine(l))
		}

	case layouts.BlockEducation:
		if len(doc.Education) == 0 {
			view.Empty = def.EmptyText(block)
			break
		}
		for _, e := range doc.Education {
			view.Entries = append(view.Entries, EntryView{
				Title:       e.InstitutionName,
				DateRange:   dateRange(e.StartDate, e.EndDate, e.StillStudying),
				Subtitle:    joinNonEmpty(" - ", e.DegreeType, e.FieldOfStudy),
				Location:    e.Location,
				Description: e.Description,
			})
		}
	}

	return view, true
}

func fullName(p models.PersonalData, placeholder string) string {
	name := joinNonEmpty(" ", p.FirstName, p.LastName)
	if name == "" {
		return placeholder
	}
	return name
}

func contactRows(p models.PersonalData) []ContactRow {
	var rows []ContactRow
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, ContactRow{Label: label, Value: value})
		}
	}
	add("Email", p.Email)
	add("Phone", p.Phone)
	add("Location", joinNonEmpty(", ", p.City, p.Country))
	add("LinkedIn", p.LinkedInURL)
	add("Website", p.PersonalWebsite)
	add("License", p.DriverLicenseCategory)
	return rows
}

// dateRange renders "start - end", "start - Present" for still-here
// entries, or just the start when no end exists.
func dateRange(start dates.Parts, end *dates.Parts, stillHere bool) string {
	from := dates.Format(start)
	if stillHere {
		return from + " - Present"
	}
	if end != nil {
		return from + " - " + dates.Format(*end)
	}
	return from
}

// skillTag renders "Name - Level", hiding the level when it is unset or
// the explicit N/A marker.
func skillTag(s models.Skill) string {
	if s.ProficiencyLevel == "" || s.ProficiencyLevel == models.SkillNA {
		return s.Name
	}
	return s.Name + " - " + string(s.ProficiencyLevel)
}

// languageLine renders "Language - Level / CEFR (Cert, dates)" with every
// piece optional.
func languageLine(l models.Language) string {
	levels := joinNonEmpty(" / ", string(l.ProficiencyLevel), string(l.CEFRLevel))

	details := joinNonEmpty(" ", levels, certificateText(l.Certificate))
	if details == "" {
		return l.Language
	}
	return l.Language + " - " + details
}

func certificateText(c *models.Certificate) string {
	if c == nil || c.Name == "" {
		return ""
	}

	issued := dates.FormatPtr(c.Date)
	expires := dates.FormatPtr(c.Expires)
	switch {
	case issued != "" && expires != "":
		return "(" + c.Name + ", " + issued + " - " + expires + ")"
	case issued != "":
		return "(" + c.Name + ", " + issued + ")"
	case expires != "":
		return "(" + c.Name + ", expires " + expires + ")"
	}
	return "(" + c.Name + ")"
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
