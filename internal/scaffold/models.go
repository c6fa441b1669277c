package scaffold

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/vvka-141/appgen/internal/schema"
)

const uuidPkg = "github.com/google/uuid"

// modelsFile renders one struct per table with db and json tags and a
// TableName method.
func (g *generator) modelsFile(tables []*schema.Table) (*jen.File, bool) {
	if len(tables) == 0 {
		return nil, false
	}

	f := g.newFile()
	for _, t := range tables {
		name := GoName(t.Entity)
		f.Commentf("%s is a row of the %s table.", name, t.Name)
		f.Type().Id(name).StructFunc(func(grp *jen.Group) {
			for _, c := range t.Columns {
				typ := columnGoType(c.RenderType())
				if c.Nullable {
					typ = jen.Op("*").Add(typ)
				}
				grp.Id(GoName(c.Name)).Add(typ).Tag(map[string]string{
					"db":   c.Name,
					"json": jsonName(c.Name),
				})
			}
		})
		f.Line()
		f.Commentf("TableName returns the name of the %s table.", t.Name)
		f.Func().Params(jen.Id(name)).Id("TableName").Params().String().Block(
			jen.Return(jen.Lit(t.Name)),
		)
		f.Line()
	}
	return f, true
}

// columnGoType maps a rendered SQL type to a Go type. Unknown types become string.
func columnGoType(sqlType string) *jen.Statement {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	switch {
	case t == "uuid":
		return jen.Qual(uuidPkg, "UUID")
	case strings.HasPrefix(t, "timestamp"), t == "date":
		return jen.Qual("time", "Time")
	case t == "integer", t == "int", t == "bigint", t == "smallint", t == "serial", t == "bigserial":
		return jen.Int64()
	case t == "real", t == "double precision", t == "float",
		strings.HasPrefix(t, "numeric"), strings.HasPrefix(t, "decimal"):
		return jen.Float64()
	case t == "boolean", t == "bool":
		return jen.Bool()
	case t == "bytea", t == "blob":
		return jen.Index().Byte()
	}
	return jen.String()
}
