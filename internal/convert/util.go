package convert

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9\-]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = nonSlug.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// OutputName prefixes name with a slug of prefix. An empty slug leaves name
// unchanged.
func OutputName(prefix, name string) string {
	slug := slugify(strings.TrimSuffix(filepath.Base(prefix), filepath.Ext(prefix)))
	if prefix == "" || slug == "" {
		return name
	}
	return slug + "_" + name
}
