package graph

import (
	"regexp"
	"strings"
)

// ============================================================================
// Natural Key Normalization
// ============================================================================

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeKey trims a natural key and collapses internal whitespace runs to a
// single space. Case is preserved: "Paris" and "paris" remain distinct nodes.
func NormalizeKey(key string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(key), " ")
}

// normalizeKeys normalizes every key, dropping blanks and exact repeats while
// keeping first-seen order
func normalizeKeys(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(keys))
	unique := make([]string, 0, len(keys))
	for _, key := range keys {
		normalized := NormalizeKey(key)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		unique = append(unique, normalized)
	}
	return unique
}

// toParamList converts a string slice to the []interface{} shape the driver
// accepts for list parameters
func toParamList(values []string) []interface{} {
	list := make([]interface{}, len(values))
	for i, v := range values {
		list[i] = v
	}
	return list
}
