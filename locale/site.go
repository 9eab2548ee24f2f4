package locale

import "bar-council-campaign/models"

// SiteStrings is the landing page content
type SiteStrings struct {
	LanguageToggle    string
	HeroDesignation   string
	AboutTitle        string
	AboutText         string
	ExperienceTitle   string
	ExperienceYears   string
	ExperienceCourts  string
	ExperienceService string
	VisionTitle       string
	VisionBullets     []string
	SupportButton     string
	QuickSupportTitle string
	AddDetails        string
	Skip              string
	FormTitle         string
	FormName          string
	FormEnrollment    string
	FormDistrict      string
	FormBar           string
	FormPhone         string
	FormMessage       string
	FormSubmit        string
	FormRequired      string
	DownloadPNG       string
	DownloadJPEG      string
	ShareWhatsApp     string
	WhatsAppShareText string
	CalendarTitle     string
	CalendarText      string
	CalendarDownload  string
	CalendarClose     string
	CalendarPushInfo  string
	VoteTitle         string
	VoteSubmit        string
	Disclaimer        string
}

var siteStrings = map[models.Language]SiteStrings{
	models.LanguageEnglish: {
		LanguageToggle:    "EN | తె",
		HeroDesignation:   "Candidate for Member – Telangana State Bar Council",
		AboutTitle:        "About the Advocate",
		AboutText:         "I am a practicing advocate with experience across courts in Telangana. My objective is to uphold the dignity of the legal profession and work for the welfare of advocates.",
		ExperienceTitle:   "Experience & Service",
		ExperienceYears:   "Years of Practice",
		ExperienceCourts:  "Courts Practiced",
		ExperienceService: "Service to Advocates",
		VisionTitle:       "Vision & Commitment",
		VisionBullets: []string{
			"Transparency in Bar Council functioning",
			"Support for young advocates",
			"Welfare and dignity of advocates",
			"Strong representation of advocate issues",
		},
		SupportButton:     "I Will Vote / Support",
		QuickSupportTitle: "I Support This Candidate",
		AddDetails:        "Add My Details",
		Skip:              "Skip",
		FormTitle:         "Support Details",
		FormName:          "Full Name",
		FormEnrollment:    "Enrollment Number",
		FormDistrict:      "District",
		FormBar:           "Bar Association",
		FormPhone:         "Phone",
		FormMessage:       "Your Message (max 100 characters)",
		FormSubmit:        "I Will Vote",
		FormRequired:      "This field is required",
		DownloadPNG:       "Download PNG",
		DownloadJPEG:      "Download JPEG",
		ShareWhatsApp:     "Share on WhatsApp",
		WhatsAppShareText: "I support this candidate for Telangana State Bar Council elections.\nPlease visit: ",
		CalendarTitle:     "Free 2026 Court Calendar",
		CalendarText:      "Download your free 2026 Court Calendar PDF. Stay updated with important court dates and holidays.",
		CalendarDownload:  "Download PDF",
		CalendarClose:     "Close",
		CalendarPushInfo:  "You'll receive important election updates via push notifications",
		VoteTitle:         "Choose your preferential order",
		VoteSubmit:        "Submit",
		Disclaimer:        "Support expressed here is voluntary and for informational purposes only.",
	},
	models.LanguageTelugu: {
		LanguageToggle:    "EN | తె",
		HeroDesignation:   "తెలంగాణ రాష్ట్ర బార్ కౌన్సిల్ సభ్యుడిగా అభ్యర్థి",
		AboutTitle:        "న్యాయవాది పరిచయం",
		AboutText:         "నేను తెలంగాణ రాష్ట్రంలోని వివిధ న్యాయస్థానాల్లో ప్రాక్టీస్ చేస్తున్న న్యాయవాదిని. న్యాయవృత్తి గౌరవం కాపాడటం, న్యాయవాదుల సంక్షేమం కోసం పని చేయడమే నా లక్ష్యం.",
		ExperienceTitle:   "అనుభవం మరియు సేవ",
		ExperienceYears:   "ప్రాక్టీస్ అనుభవం",
		ExperienceCourts:  "ప్రాక్టీస్ చేసిన కోర్టులు",
		ExperienceService: "న్యాయవాదుల కోసం సేవ",
		VisionTitle:       "దృష్టి మరియు కట్టుబాటు",
		VisionBullets: []string{
			"బార్ కౌన్సిల్ పనితీరులో పారదర్శకత",
			"యువ న్యాయవాదులకు మద్దతు",
			"న్యాయవాదుల సంక్షేమం",
			"న్యాయవాదుల సమస్యలపై గట్టిగా నిలబడటం",
		},
		SupportButton:     "నేను ఓటు వేస్తాను / మద్దతు",
		QuickSupportTitle: "నేను ఈ అభ్యర్థికి మద్దతు ఇస్తున్నాను",
		AddDetails:        "నా వివరాలను జోడించండి",
		Skip:              "దాటవేయి",
		FormTitle:         "మద్దతు వివరాలు",
		FormName:          "పూర్తి పేరు",
		FormEnrollment:    "నమోదు సంఖ్య",
		FormDistrict:      "జిల్లా",
		FormBar:           "బార్ అసోసియేషన్",
		FormPhone:         "ఫోన్",
		FormMessage:       "మీ సందేశం (గరిష్టంగా 100 అక్షరాలు)",
		FormSubmit:        "నేను ఓటు వేస్తాను",
		FormRequired:      "ఈ ఫీల్డ్ తప్పనిసరి",
		DownloadPNG:       "PNG డౌన్‌లోడ్ చేయండి",
		DownloadJPEG:      "JPEG డౌన్‌లోడ్ చేయండి",
		ShareWhatsApp:     "WhatsAppలో షేర్ చేయండి",
		WhatsAppShareText: "తెలంగాణ రాష్ట్ర బార్ కౌన్సిల్ ఎన్నికల్లో ఈ అభ్యర్థికి నా మద్దతు ఉంది.\nవివరాలకు ఈ లింక్ చూడండి: ",
		CalendarTitle:     "ఉచిత 2026 కోర్ట్ క్యాలెండర్",
		CalendarText:      "మీ ఉచిత 2026 కోర్ట్ క్యాలెండర్ PDFని డౌన్‌లోడ్ చేయండి. ముఖ్యమైన కోర్ట్ తేదీలు మరియు సెలవులతో నవీకరించబడండి.",
		CalendarDownload:  "PDF డౌన్‌లోడ్ చేయండి",
		CalendarClose:     "మూసివేయి",
		CalendarPushInfo:  "పుష్ నోటిఫికేషన్‌ల ద్వారా ముఖ్యమైన ఎన్నికల నవీకరణలను మీరు స్వీకరిస్తారు",
		VoteTitle:         "మీ ప్రాధాన్యత క్రమాన్ని ఎంచుకోండి",
		VoteSubmit:        "సమర్పించండి",
		Disclaimer:        "ఇక్కడ వ్యక్తం చేసిన మద్దతు స్వచ్ఛందంగా మరియు సమాచార ప్రయోజనాల కోసం మాత్రమే.",
	},
}

// Site returns the landing page content for lang, falling back to English
func Site(lang models.Language) SiteStrings {
	if s, ok := siteStrings[lang]; ok {
		return s
	}
	return siteStrings[models.LanguageEnglish]
}
