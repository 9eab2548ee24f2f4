package composer

import (
	"strings"
	"unicode/utf8"
)

// Measurer reports the rendered width and height of a string in pixels
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// WrapPolicy selects how long text is broken into lines
type WrapPolicy string

const (
	// WrapWords breaks greedily on spaces using measured pixel widths
	WrapWords WrapPolicy = "words"
	// WrapChars breaks every N characters regardless of word boundaries
	WrapChars WrapPolicy = "chars"
)

// ParseWrapPolicy maps a configuration value to a policy, defaulting to WrapWords
func ParseWrapPolicy(value string) WrapPolicy {
	if strings.EqualFold(strings.TrimSpace(value), string(WrapChars)) {
		return WrapChars
	}
	return WrapWords
}

// WrapWordsToWidth accumulates words while the measured line stays within maxWidth.
// A single word wider than maxWidth is emitted on its own line without splitting.
func WrapWordsToWidth(m Measurer, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if w, _ := m.MeasureString(candidate); w > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// WrapCharacters cuts text into chunks of at most maxChars characters and trims each chunk.
// Chunks that are blank after trimming are dropped.
func WrapCharacters(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	runes := []rune(text)
	var lines []string
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			lines = append(lines, chunk)
		}
	}
	return lines
}
