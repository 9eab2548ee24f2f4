package utils

import (
	"regexp"
	"strings"
)

// indianMobile matches a 10-digit number with an optional +91 or 0 prefix
var indianMobile = regexp.MustCompile(`(?:\+91|0)?(\d{10})`)

// ExtractPhoneNumbers scans CSV text cell by cell and returns the first Indian mobile
// number of each cell normalized to +91XXXXXXXXXX, de-duplicated in order of first appearance
func ExtractPhoneNumbers(text string) []string {
	// separators inside numbers such as "98765 43210" or "98765-43210"
	compact := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", `"`, "").Replace

	seen := make(map[string]bool)
	var numbers []string
	for _, line := range strings.Split(text, "\n") {
		for _, cell := range strings.Split(line, ",") {
			match := indianMobile.FindStringSubmatch(compact(strings.TrimSpace(cell)))
			if match == nil {
				continue
			}
			normalized := "+91" + match[1]
			if seen[normalized] {
				continue
			}
			seen[normalized] = true
			numbers = append(numbers, normalized)
		}
	}
	return numbers
}

// NormalizePhone returns the +91 form of a single number, or "" when it is not a 10-digit mobile
func NormalizePhone(phone string) string {
	numbers := ExtractPhoneNumbers(phone)
	if len(numbers) != 1 {
		return ""
	}
	return numbers[0]
}

// DigitsOnly strips everything but 0-9
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
