package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate joins the given parts and turns them into a URL-friendly slug.
// Catalog entries without an explicit id get one from brand and name.
//
// Examples:
//   - ("Vue Mastery", "Socks") -> "vue-mastery-socks"
//   - ("  Wool  ", "Hat!") -> "wool-hat"
func Generate(parts ...string) string {
	s := strings.ToLower(strings.Join(parts, " "))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
