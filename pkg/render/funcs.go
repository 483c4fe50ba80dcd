package render

import (
	"regexp"
	"strings"
	"text/template"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"kebab": toKebab,
	"snake": func(s string) string {
		return strings.ReplaceAll(toKebab(s), "-", "_")
	},
	"compact": func(s string) string {
		return strings.ReplaceAll(toKebab(s), "-", "")
	},
}

// toKebab turns a project name into a resource-safe identifier, e.g.
// "My_Project 2" -> "my-project-2".
func toKebab(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
