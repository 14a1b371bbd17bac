// Package text holds the string helpers shared by the fetchers, the reducer and the
// presentation layer: rune counting, positional chunking, previews and token estimates.
package text

import "strings"

// CountRunes returns the number of Unicode code points in text.
// Every length limit in this module (chunk size, minimum content length, preview length)
// is expressed in runes, so this is the single place that defines "character".
//
// Examples:
//
//	CountRunes("hello")   // 5
//	CountRunes("héllo")   // 5, although the string is 6 bytes
//	CountRunes("")        // 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// NormalizeSpace collapses every run of whitespace into a single space and trims both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
