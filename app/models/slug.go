package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s to an ASCII, lowercase, hyphen-separated identifier.
// Accented letters lose their marks; other non-ASCII characters are dropped.
func Slugify(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	out := slugStrip.ReplaceAllString(strings.ToLower(b.String()), "")
	out = slugCollapse.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}

// NormalizeTags slugifies tags and drops empty and duplicate entries, keeping order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		s := Slugify(t)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
