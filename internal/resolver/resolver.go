// Package resolver binds foreign-key stubs to their target tables.
package resolver

import (
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/schema"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Options controls how unusable references are reported.
type Options struct {
	Unresolved appgen.UnresolvedPolicy
}

func (o Options) severity() diag.Severity {
	if o.Unresolved == appgen.UnresolvedWarn {
		return diag.SeverityWarning
	}
	return diag.SeverityError
}

// Resolve builds one table per catalog entity, in catalog order.
//
// Each foreign-key stub whose target exists and has a primary key becomes a
// resolved Reference; a referencing column without a declared type takes the
// target's primary-key type. Other stubs stay unresolved and are reported as
// UNRESOLVED_REFERENCE or MISSING_PRIMARY_KEY. The catalog is not modified.
func Resolve(cat *schema.Catalog, opts Options) ([]*schema.Table, diag.List) {
	var diags diag.List
	sev := opts.severity()

	entities := cat.Entities()
	tables := make([]*schema.Table, 0, len(entities))

	for _, e := range entities {
		t := &schema.Table{
			Entity:  e.SchemaName,
			Name:    e.TableName,
			Columns: append([]schema.Column(nil), e.Columns...),
		}
		if e.PrimaryKey != nil {
			pk := *e.PrimaryKey
			t.PrimaryKey = &pk
		}

		for _, fk := range e.ForeignKeys {
			ref := schema.Reference{Column: fk.Column, TargetEntity: fk.TargetEntity}

			target, ok := cat.Lookup(fk.TargetEntity)
			switch {
			case !ok:
				diags.Reportf(sev, diag.CodeUnresolvedReference, e.SchemaName, fk.Property,
					"foreign key %q references unknown entity %q; no constraint is emitted", fk.Column, fk.TargetEntity).Hint =
					"Check the spelling of targetEntity and that the target schema sets x-persistence.isEntity: true."
			case target.PrimaryKey == nil:
				diags.Reportf(sev, diag.CodeMissingPrimaryKey, e.SchemaName, fk.Property,
					"foreign key %q references entity %q, which declares no primary key; no constraint is emitted", fk.Column, fk.TargetEntity).Hint =
					"Flag one property of " + fk.TargetEntity + " with x-persistence.isPrimaryKey: true."
			default:
				ref.TargetTable = target.TableName
				ref.TargetColumn = target.PrimaryKey.Column
				ref.Resolved = true
				backfillType(t, fk.Column, target.PrimaryKey.Type)
			}

			t.References = append(t.References, ref)
		}

		tables = append(tables, t)
	}

	return tables, diags
}

func backfillType(t *schema.Table, column, dataType string) {
	for i := range t.Columns {
		if t.Columns[i].Name == column && t.Columns[i].DataType == "" {
			t.Columns[i].DataType = dataType
			return
		}
	}
}
