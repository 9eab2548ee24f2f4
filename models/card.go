package models

import "strings"

// MaxCustomMessageLength is the number of characters kept from a custom message before layout
const MaxCustomMessageLength = 100

// SupporterDetails holds the optional identity fields a supporter may add to the card
type SupporterDetails struct {
	Name             string `json:"name"`
	EnrollmentNumber string `json:"enrollmentNumber"`
	District         string `json:"district"`
	BarAssociation   string `json:"barAssociation"`
	Phone            string `json:"phone"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (s SupporterDetails) Trimmed() SupporterDetails {
	return SupporterDetails{
		Name:             strings.TrimSpace(s.Name),
		EnrollmentNumber: strings.TrimSpace(s.EnrollmentNumber),
		District:         strings.TrimSpace(s.District),
		BarAssociation:   strings.TrimSpace(s.BarAssociation),
		Phone:            strings.TrimSpace(s.Phone),
	}
}

// HasAny reports whether at least one field was supplied
func (s SupporterDetails) HasAny() bool {
	t := s.Trimmed()
	return t.Name != "" || t.EnrollmentNumber != "" || t.District != "" || t.BarAssociation != "" || t.Phone != ""
}

// CardRequest is the input of a single support card render
type CardRequest struct {
	CandidateName  string           `json:"candidateName"`
	CandidatePhoto string           `json:"candidatePhoto"`
	Language       Language         `json:"language"`
	Supporter      SupporterDetails `json:"supporter"`
	CustomMessage  string           `json:"customMessage"`
}

// NormalizedMessage trims the custom message and truncates it to MaxCustomMessageLength characters
func (r CardRequest) NormalizedMessage() string {
	return TruncateRunes(strings.TrimSpace(r.CustomMessage), MaxCustomMessageLength)
}

// TruncateRunes cuts s to at most n characters without splitting a multi-byte rune
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
