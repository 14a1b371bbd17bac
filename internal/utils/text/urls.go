package text

import (
	"strings"

	"mvdan.cc/xurls/v2"
)

var webURLPattern = xurls.Strict()

// FirstWebURL returns the first http or https URL found in s. Surrounding text, such as
// a pasted sentence, is ignored.
func FirstWebURL(s string) (string, bool) {
	for _, u := range webURLPattern.FindAllString(s, -1) {
		lower := strings.ToLower(u)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return u, true
		}
	}
	return "", false
}
