package extractor

import (
	"fmt"
	"strings"

	"github.com/vvka-141/appgen/internal/spec"
)

// TypeMapper derives SQL column types from a property's logical type and format.
// Overrides are keyed "type/format" or "type"; the more specific key wins.
type TypeMapper struct {
	Overrides map[string]string
}

// NewTypeMapper returns a mapper with the given overrides. overrides may be nil.
func NewTypeMapper(overrides map[string]string) TypeMapper {
	return TypeMapper{Overrides: overrides}
}

// Map returns the SQL type for a property schema node.
func (m TypeMapper) Map(prop spec.Node) string {
	typ := prop.String("type", "")
	format := prop.String("format", "")

	if sqlType, ok := m.override(typ, format); ok {
		return sqlType
	}

	maxLength, hasMax := prop.Int("maxLength")
	return builtinType(typ, format, maxLength, hasMax)
}

func (m TypeMapper) override(typ, format string) (string, bool) {
	if len(m.Overrides) == 0 || typ == "" {
		return "", false
	}
	if format != "" {
		if v, ok := m.Overrides[typ+"/"+format]; ok && v != "" {
			return v, true
		}
	}
	if v, ok := m.Overrides[typ]; ok && v != "" {
		return v, true
	}
	return "", false
}

func builtinType(typ, format string, maxLength int, hasMax bool) string {
	switch strings.ToLower(typ) {
	case "string":
		switch strings.ToLower(format) {
		case "uuid":
			return "uuid"
		case "date-time":
			return "timestamp with time zone"
		case "date":
			return "date"
		}
		if hasMax && maxLength > 0 {
			return fmt.Sprintf("varchar(%d)", maxLength)
		}
		return "varchar(255)"
	case "integer":
		if strings.ToLower(format) == "int64" {
			return "bigint"
		}
		return "integer"
	case "number":
		switch strings.ToLower(format) {
		case "float":
			return "real"
		case "double":
			return "double precision"
		}
		return "numeric"
	case "boolean":
		return "boolean"
	}
	return "text"
}
