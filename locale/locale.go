// Package locale holds every fixed string of the campaign in English and Telugu.
// Lookups are static; there is no runtime translation.
package locale

import "bar-council-campaign/models"

// CardStrings are the fixed strings drawn on the support card
type CardStrings struct {
	Designation         string
	Supporting          string
	PleaseSupport       string
	RoleLabel           string
	EnrollmentLabel     string
	DistrictLabel       string
	BarAssociationLabel string
	PhoneLabel          string
	Footer              string
}

var cardStrings = map[models.Language]CardStrings{
	models.LanguageEnglish: {
		Designation:         "Candidate for Member – Telangana State Bar Council",
		Supporting:          "I am supporting this candidate",
		PleaseSupport:       "You also please support",
		RoleLabel:           "Advocate",
		EnrollmentLabel:     "Enrollment No",
		DistrictLabel:       "District",
		BarAssociationLabel: "Bar Association",
		PhoneLabel:          "Phone",
		Footer:              "Telangana State Bar Council Elections",
	},
	models.LanguageTelugu: {
		Designation:         "తెలంగాణ రాష్ట్ర బార్ కౌన్సిల్ ఎన్నికల్లో పోటీ చేస్తున్న న్యాయవాది",
		Supporting:          "నేను ఈ అభ్యర్థికి మద్దతుగా ఉన్నాను",
		PleaseSupport:       "మీరు కూడా మద్దతు ఇవ్వండి",
		RoleLabel:           "న్యాయవాది",
		EnrollmentLabel:     "ఎన్‌రోల్మెంట్ నం",
		DistrictLabel:       "జిల్లా",
		BarAssociationLabel: "బార్ అసోసియేషన్",
		PhoneLabel:          "ఫోన్",
		Footer:              "తెలంగాణ రాష్ట్ర బార్ కౌన్సిల్ ఎన్నికలు",
	},
}

// Card returns the card strings for lang, falling back to English for unknown values
func Card(lang models.Language) CardStrings {
	if s, ok := cardStrings[lang]; ok {
		return s
	}
	return cardStrings[models.LanguageEnglish]
}

// Texts returns every string of the card in draw order
func (c CardStrings) Texts() []string {
	return []string{
		c.Designation,
		c.Supporting,
		c.PleaseSupport,
		c.RoleLabel,
		c.EnrollmentLabel,
		c.DistrictLabel,
		c.BarAssociationLabel,
		c.PhoneLabel,
		c.Footer,
	}
}

// Languages lists the supported locales in display order
func Languages() []models.Language {
	return []models.Language{models.LanguageEnglish, models.LanguageTelugu}
}
