package text

// DefaultPreviewLength is how much of an article is echoed back before its summary.
const DefaultPreviewLength = 500

// Preview returns the first n runes of s followed by "..." when s is longer than n.
// Shorter strings are returned unchanged.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if CountRunes(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Truncate cuts s to at most n runes without adding a marker.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
