// Package layouts defines the preview arrangements. Two layouts ship
// built in, classic and compact; a layouts directory can override their
// headings and placeholder texts.
package layouts

import (
	"github.com/hero4job/cv-engine/internal/models"
)

// Layout is a preview arrangement name.
type Layout string

const (
	Classic Layout = "classic"
	Compact Layout = "compact"
)

// Block is one display unit of a layout. The personal section contributes
// three blocks so an arrangement can split identity from contact details.
type Block string

const (
	BlockIdentity   Block = "identity"
	BlockSummary    Block = "summary"
	BlockContact    Block = "contact"
	BlockExperience Block = "experience"
	BlockSkills     Block = "skills"
	BlockLanguages  Block = "languages"
	BlockEducation  Block = "education"
)

// SectionOf maps a block back to the CV section whose visibility flag
// controls it.
func (b Block) SectionOf() models.Section {
	switch b {
	case BlockIdentity, BlockSummary, BlockContact:
		return models.SectionPersonal
	case BlockExperience:
		return models.SectionExperience
	case BlockSkills:
		return models.SectionSkills
	case BlockLanguages:
		return models.SectionLanguages
	case BlockEducation:
		return models.SectionEducation
	}
	return ""
}

// Region is a named group of blocks rendered together.
type Region struct {
	Name   string  `yaml:"name" json:"name"`
	Blocks []Block `yaml:"blocks" json:"blocks"`
}

// Definition describes one arrangement: which blocks go where and the
// display strings the projector needs.
type Definition struct {
	Name            string           `yaml:"name" json:"name"`
	Regions         []Region         `yaml:"regions" json:"regions"`
	Headings        map[Block]string `yaml:"headings" json:"headings"`
	Empty           map[Block]string `yaml:"empty" json:"empty"`
	NamePlaceholder string           `yaml:"name_placeholder" json:"namePlaceholder"`
}

// Heading returns the heading for a block, empty when the block renders
// without one.
func (d *Definition) Heading(b Block) string {
	return d.Headings[b]
}

// EmptyText returns the placeholder rendered for an empty list block.
func (d *Definition) EmptyText(b Block) string {
	return d.Empty[b]
}

func classicDefinition() *Definition {
	return &Definition{
		Name: string(Classic),
		Regions: []Region{
			{Name: "main", Blocks: []Block{
				BlockIdentity, BlockSummary, BlockContact,
				BlockExperience, BlockSkills, BlockLanguages, BlockEducation,
			}},
		},
		Headings: map[Block]string{
			BlockExperience: "Experience",
			BlockSkills:     "Skills",
			BlockLanguages:  "Languages",
			BlockEducation:  "Education",
		},
		Empty:           defaultEmptyTexts(),
		NamePlaceholder: "Your Name",
	}
}

func compactDefinition() *Definition {
	return &Definition{
		Name: string(Compact),
		Regions: []Region{
			{Name: "main", Blocks: []Block{BlockIdentity, BlockSummary, BlockExperience}},
			{Name: "side", Blocks: []Block{BlockContact, BlockSkills, BlockLanguages, BlockEducation}},
		},
		Headings: map[Block]string{
			BlockContact:    "Personal Info",
			BlockExperience: "Work Experience",
			BlockSkills:     "Skills",
			BlockLanguages:  "Languages",
			BlockEducation:  "Education",
		},
		Empty:           defaultEmptyTexts(),
		NamePlaceholder: "Your Name",
	}
}

func defaultEmptyTexts() map[Block]string {
	return map[Block]string{
		BlockExperience: "No experience added.",
		BlockSkills:     "No skills added.",
		BlockLanguages:  "No languages added.",
		BlockEducation:  "No education added.",
	}
}
