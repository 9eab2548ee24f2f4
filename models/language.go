package models

import "strings"

// Language is the UI locale selector. Only English and Telugu are supported.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTelugu  Language = "te"
)

// ParseLanguage maps a query/body value to a supported language, defaulting to English
func ParseLanguage(value string) Language {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "te", "telugu":
		return LanguageTelugu
	default:
		return LanguageEnglish
	}
}

// Valid reports whether the language is one of the two supported locales
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageTelugu
}

// Toggle returns the other supported language
func (l Language) Toggle() Language {
	if l == LanguageTelugu {
		return LanguageEnglish
	}
	return LanguageTelugu
}
