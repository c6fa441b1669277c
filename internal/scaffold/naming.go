package scaffold

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// GoName converts a schema, property or column name to an exported Go identifier.
func GoName(name string) string {
	id := inflect.Camelize(sanitize(name))
	if id == "" {
		return "X"
	}
	if unicode.IsDigit(rune(id[0])) {
		return "X" + id
	}
	return id
}

// jsonName converts a column name to a lower camel case JSON key.
func jsonName(name string) string {
	clean := sanitize(name)
	if clean == "" {
		return name
	}
	return inflect.CamelizeDownFirst(clean)
}

// PackageName derives a Go package name from a bounded context.
func PackageName(boundedContext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(boundedContext) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "app" + name
	}
	return name
}

// sanitize replaces characters that cannot appear in identifiers with underscores,
// which the inflector treats as word boundaries.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
}
