package templates

import (
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
		"capitalize": Capitalize,
		"join":       func(sep string, items []string) string { return strings.Join(items, sep) },
	}
}

var lowerCaser = cases.Lower(language.Und)

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + lowerCaser.String(s[size:])
}
