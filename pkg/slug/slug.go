package slug

import (
	"regexp"

	gslug "github.com/gosimple/slug"
)

var pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Derive converts a display name into its URL slug.
func Derive(name string) string {
	return gslug.Make(name)
}

// IsValid reports whether s is a well-formed slug: lowercase
// alphanumerics and single hyphens, no leading or trailing hyphen.
func IsValid(s string) bool {
	return s != "" && pattern.MatchString(s)
}
