package letterboxd

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the film page slug from a title: transliterated to ASCII,
// lowercased, runs of other characters collapsed to "-" and trimmed.
func Slug(title string) string {
	s := strings.ToLower(unidecode.Unidecode(title))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
