package utils

import "strings"

// MinTokenLength is the shortest value accepted as a push token. Shorter cells are
// leftovers such as headers or status text.
const MinTokenLength = 50

// ValidTokens trims values and keeps those longer than MinTokenLength
func ValidTokens(values []string) []string {
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if len(v) > MinTokenLength {
			tokens = append(tokens, v)
		}
	}
	return tokens
}

// Chunk splits items into consecutive batches of at most size elements
func Chunk(items []string, size int) [][]string {
	if size <= 0 {
		size = len(items)
	}
	var batches [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
