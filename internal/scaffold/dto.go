package scaffold

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/vvka-141/appgen/internal/spec"
)

// maxRefDepth bounds alias chains between non-object schemas.
const maxRefDepth = 8

// dtoFile renders one struct per object schema that is not an entity:
// request and response shapes and value objects.
func (g *generator) dtoFile() (*jen.File, bool) {
	f := g.newFile()
	count := 0

	for _, def := range g.doc.Schemas().Pairs() {
		if g.entities[def.Key] || !isObject(def.Value) {
			continue
		}
		if def.Value.Get("x-persistence").Bool("isEntity", false) {
			continue
		}
		count++

		required := make(map[string]bool)
		for _, item := range def.Value.Get("required").Items() {
			required[item.Text()] = true
		}

		name := GoName(def.Key)
		if def.Value.Get("x-ddd").Bool("isValueObject", false) {
			f.Commentf("%s is a value object.", name)
		} else if desc := def.Value.String("description", ""); desc != "" {
			f.Comment(name + " " + lowerFirst(strings.TrimSpace(desc)))
		}
		f.Type().Id(name).StructFunc(func(grp *jen.Group) {
			for _, p := range def.Value.Get("properties").Pairs() {
				tags := map[string]string{"json": p.Key}
				if !required[p.Key] {
					tags["json"] += ",omitempty"
				}
				if v := validateTag(p.Value, required[p.Key]); v != "" {
					tags["validate"] = v
				}
				grp.Id(GoName(p.Key)).Add(g.propertyGoType(p.Value, 0)).Tag(tags)
			}
		})
		f.Line()
	}
	return f, count > 0
}

// propertyGoType maps a property schema to a Go type.
func (g *generator) propertyGoType(prop spec.Node, depth int) *jen.Statement {
	if ref := prop.RefName(); ref != "" {
		target := g.doc.Schemas().Get(ref)
		if isObject(target) || g.entities[ref] {
			return jen.Op("*").Id(GoName(ref))
		}
		if target.IsMissing() || depth >= maxRefDepth {
			return jen.Interface()
		}
		return g.propertyGoType(target, depth+1)
	}

	format := prop.String("format", "")
	switch prop.String("type", "") {
	case "string":
		switch format {
		case "uuid":
			return jen.Qual(uuidPkg, "UUID")
		case "date-time", "date":
			return jen.Qual("time", "Time")
		}
		return jen.String()
	case "integer":
		return jen.Int64()
	case "number":
		return jen.Float64()
	case "boolean":
		return jen.Bool()
	case "array":
		return jen.Index().Add(g.propertyGoType(prop.Get("items"), depth+1))
	case "object":
		return jen.Map(jen.String()).Interface()
	}
	return jen.Interface()
}

func validateTag(prop spec.Node, required bool) string {
	var rules []string
	if required {
		rules = append(rules, "required")
	}
	if prop.String("format", "") == "email" {
		rules = append(rules, "email")
	}
	if n, ok := prop.Int("minLength"); ok {
		rules = append(rules, fmt.Sprintf("min=%d", n))
	}
	if n, ok := prop.Int("maxLength"); ok {
		rules = append(rules, fmt.Sprintf("max=%d", n))
	}
	if len(rules) == 0 {
		return ""
	}
	if !required {
		rules = append([]string{"omitempty"}, rules...)
	}
	return strings.Join(rules, ",")
}

func isObject(n spec.Node) bool {
	return n.IsMap() && (n.String("type", "") == "object" || n.Has("properties"))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
