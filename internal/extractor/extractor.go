// Package extractor selects persistent entities from a parsed specification
// and turns them into an immutable schema.Catalog.
package extractor

import (
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/schema"
	"github.com/vvka-141/appgen/internal/spec"
)

const persistenceKey = "x-persistence"

// Extract walks /components/schemas in declaration order and returns one
// entity per definition whose x-persistence.isEntity is true.
//
// Problems that do not prevent extraction (duplicate columns, duplicate table
// names, a second primary key, incomplete relations) are reported as
// diagnostics. Extract performs no I/O.
func Extract(doc *spec.Document, types TypeMapper) (*schema.Catalog, diag.List) {
	var diags diag.List
	var entities []*schema.Entity
	tableOwners := make(map[string]string)

	for _, def := range doc.Schemas().Pairs() {
		xp := def.Value.Get(persistenceKey)
		if !xp.Bool("isEntity", false) {
			continue
		}

		e := extractEntity(def.Key, def.Value, xp, types, &diags)

		if owner, dup := tableOwners[e.TableName]; dup {
			diags.Errorf(diag.CodeDuplicateTable, e.SchemaName, "",
				"table %q is already produced by entity %s", e.TableName, owner).Hint =
				"Set a distinct x-persistence.tableName on one of the entities."
			continue
		}
		tableOwners[e.TableName] = e.SchemaName
		entities = append(entities, e)
	}

	return schema.NewCatalog(entities...), diags
}

func extractEntity(name string, def, xp spec.Node, types TypeMapper, diags *diag.List) *schema.Entity {
	e := &schema.Entity{
		SchemaName: name,
		TableName:  xp.String("tableName", schema.SnakeCase(name)),
	}

	for _, p := range def.Get("properties").Pairs() {
		prop := p.Value
		fp := prop.Get(persistenceKey)

		if fp.Has("relation") {
			extractRelation(e, p.Key, fp, diags)
			continue
		}

		col := schema.Column{
			Name:     fp.String("columnName", schema.SnakeCase(p.Key)),
			DataType: fp.String("dataType", ""),
			Nullable: fp.Bool("isNullable", false),
			Unique:   fp.Bool("isUnique", false),
		}
		if col.DataType == "" {
			col.DataType = types.Map(prop)
		}

		if fp.Bool("isPrimaryKey", false) {
			if e.PrimaryKey != nil {
				diags.Errorf(diag.CodeDuplicatePrimaryKey, name, p.Key,
					"column %q is flagged as primary key but %q already is", col.Name, e.PrimaryKey.Column).Hint =
					"Only single-column primary keys are supported. Remove isPrimaryKey from all but one property."
			} else {
				col.PrimaryKey = true
				e.PrimaryKey = &schema.PrimaryKey{Column: col.Name, Type: col.DataType}
			}
		}

		addColumn(e, p.Key, col, diags)
	}

	return e
}

// extractRelation handles a property carrying x-persistence.relation. Only the
// owning side (joinColumn plus targetEntity) produces a column and a stub.
func extractRelation(e *schema.Entity, property string, fp spec.Node, diags *diag.List) {
	rel := fp.Get("relation")
	joinColumn := rel.String("joinColumn", "")
	targetEntity := rel.String("targetEntity", "")

	switch {
	case joinColumn != "" && targetEntity != "":
		col := schema.Column{
			Name:     joinColumn,
			DataType: fp.String("dataType", ""),
			Nullable: fp.Bool("isNullable", true),
			Unique:   fp.Bool("isUnique", false),
		}
		if !addColumn(e, property, col, diags) {
			return
		}
		e.ForeignKeys = append(e.ForeignKeys, schema.ForeignKey{
			Column:       joinColumn,
			TargetEntity: targetEntity,
			Property:     property,
		})
	case rel.Has("mappedBy"):
		// inverse side; the other entity owns the column
	default:
		d := diags.Warnf(diag.CodeIncompleteRelation, e.SchemaName, property,
			"relation has neither mappedBy nor both joinColumn and targetEntity; property skipped")
		d.Hint = "Declare joinColumn and targetEntity on the owning side, or mappedBy on the inverse side."
	}
}

func addColumn(e *schema.Entity, property string, col schema.Column, diags *diag.List) bool {
	if e.Column(col.Name) != nil {
		diags.Errorf(diag.CodeDuplicateColumn, e.SchemaName, property,
			"column %q is declared more than once; the first declaration is kept", col.Name).Hint =
			"Rename the property or set a distinct x-persistence.columnName."
		return false
	}
	e.Columns = append(e.Columns, col)
	return true
}
