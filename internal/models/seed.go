package models

import (
	"github.com/hero4job/cv-engine/internal/dates"
)

// SeedDocument returns the showcase document for a layout name. These are
// the same sample CVs the home page renders; any unknown name gets the
// compact sample.
func SeedDocument(layout string) Document {
	if layout == "classic" {
		return classicSeed()
	}
	return compactSeed()
}

func classicSeed() Document {
	return Document{
		PersonalData: PersonalData{
			FirstName:             "Harvey",
			LastName:              "Specter",
			Email:                 "harvey@specterlegal.com",
			Phone:                 "+1 555 123 4567",
			Country:               "USA",
			City:                  "New York, NY",
			LinkedInURL:           "https://www.linkedin.com/in/harvey-specter",
			PersonalWebsite:       "https://specterlegal.com",
			DriverLicenseCategory: "B",
			DesiredJobTitle:       "Senior Partner",
			Summary: "Accomplished senior partner with over 15 years of experience in corporate law, " +
				"specializing in mergers and acquisitions. Known for a strategic approach to complex legal " +
				"challenges and a track record of securing favorable outcomes for high-profile clients.",
		},
		Experience: []Experience{
			{
				Role:             "Senior Partner",
				CompanyName:      "Pearson Specter Litt",
				StartDate:        dates.NewMonthYear(1, 2023),
				StillWorkingHere: true,
				Location:         "New York, NY",
				Description: "Led the firm's most critical and lucrative cases, consistently increasing " +
					"firm revenue through successful high-stakes negotiations and litigation.",
			},
			{
				Role:        "Associate to Junior Partner",
				CompanyName: "Gordon Schmidt Van Dyke",
				StartDate:   dates.NewMonthYear(1, 1998),
				EndDate:     monthYear(1, 2003),
				Location:    "New York, NY",
				Description: "Advanced rapidly through performance in mergers and acquisitions, advising " +
					"multinational clients and delivering consistent wins in securities disputes.",
			},
		},
		Skills: []Skill{
			{Name: "Corporate Law and Litigation", ProficiencyLevel: SkillExpert},
			{Name: "Advanced Negotiation Techniques", ProficiencyLevel: SkillExpert},
			{Name: "Risk Management", ProficiencyLevel: SkillAdvanced},
			{Name: "Strategic Planning", ProficiencyLevel: SkillAdvanced},
			{Name: "Leadership", ProficiencyLevel: SkillExpert},
		},
		Languages: []Language{
			{
				Language:         "English",
				ProficiencyLevel: LanguageNative,
				CEFRLevel:        CEFRC2,
				Certificate: &Certificate{
					Name:    "IELTS",
					Date:    monthYear(6, 1997),
					Expires: monthYear(6, 2007),
				},
			},
			{
				Language:         "French",
				ProficiencyLevel: LanguageFluent,
				CEFRLevel:        CEFRC1,
			},
		},
		Education: []Education{
			{
				InstitutionName: "Harvard Law School",
				StartDate:       dates.NewMonthYear(9, 1994),
				EndDate:         monthYear(6, 1997),
				Location:        "Cambridge, MA",
				DegreeType:      "Juris Doctor",
				FieldOfStudy:    "Corporate Law",
			},
		},
	}
}

func compactSeed() Document {
	return Document{
		PersonalData: PersonalData{
			FirstName:       "Harry",
			LastName:        "Potter",
			Email:           "harrypotter@hogwarts.edu",
			Phone:           "(018) 157-0842",
			Country:         "England",
			City:            "London",
			DesiredJobTitle: "Professional Wizard",
			Summary: "Mission-driven wizard with extensive field experience in high-risk defensive " +
				"operations, dark arts countermeasures, and team leadership under pressure.",
		},
		Experience: []Experience{
			{
				Role:             "Ministry Auror",
				CompanyName:      "Ministry of Magic",
				StartDate:        dates.NewMonthYear(5, 1998),
				StillWorkingHere: true,
				Location:         "London, England",
				Description: "Accepted into the Auror Department without N.E.W.T.s; helped reform " +
					"operations, improved capture rates, and led field teams in post-war stabilization missions.",
			},
			{
				Role:        "Co-Founder & Field Leader",
				CompanyName: "Dumbledore's Army",
				StartDate:   dates.NewMonthYear(9, 1995),
				EndDate:     monthYear(6, 1997),
				Location:    "Hogwarts, Scotland",
				Description: "Trained students in practical defensive magic and coordinated tactical " +
					"response to high-threat encounters.",
			},
		},
		Skills: []Skill{
			{Name: "Defensive Magic", ProficiencyLevel: SkillExpert},
			{Name: "Dueling Under Pressure", ProficiencyLevel: SkillExpert},
			{Name: "Dark Arts Countermeasures", ProficiencyLevel: SkillAdvanced},
			{Name: "Team Leadership", ProficiencyLevel: SkillAdvanced},
			{Name: "Strategic Decision-Making", ProficiencyLevel: SkillAdvanced},
		},
		Languages: []Language{
			{Language: "English", ProficiencyLevel: LanguageNative, CEFRLevel: CEFRC2},
			{Language: "Parseltongue", ProficiencyLevel: LanguageFluent},
		},
		Education: []Education{
			{
				InstitutionName: "Hogwarts School of Witchcraft and Wizardry",
				StartDate:       dates.NewMonthYear(9, 1991),
				EndDate:         monthYear(6, 1998),
				Location:        "Scotland",
				DegreeType:      "Bachelor of Wizardry",
				FieldOfStudy:    "Defense Against the Dark Arts",
				Description: "Primary concentration in practical defensive spellwork, with advanced " +
					"coursework in Potions, Herbology, and Magical Creatures.",
			},
		},
	}
}

func monthYear(month, year int) *dates.Parts {
	p := dates.NewMonthYear(month, year)
	return &p
}
