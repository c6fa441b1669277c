// Package ddl renders resolved tables as CREATE TABLE statements.
package ddl

import (
	"fmt"
	"strings"

	"github.com/vvka-141/appgen/internal/schema"
)

// Kind identifies the statement type.
type Kind string

const (
	CreateTable   Kind = "create_table"
	AddForeignKey Kind = "add_foreign_key"
)

// Statement is one rendered SQL statement.
type Statement struct {
	Kind  Kind
	Table string
	SQL   string
}

// Options controls rendering.
type Options struct {
	// DeferForeignKeys moves every foreign key out of CREATE TABLE into
	// ALTER TABLE statements emitted after all tables.
	DeferForeignKeys bool
}

const indent = "    "

// Statements renders tables in the given order. Unresolved references are
// omitted.
func Statements(tables []*schema.Table, opts Options) []Statement {
	stmts := make([]Statement, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, Statement{Kind: CreateTable, Table: t.Name, SQL: createTable(t, !opts.DeferForeignKeys)})
	}
	if !opts.DeferForeignKeys {
		return stmts
	}
	for _, t := range tables {
		for _, ref := range t.ResolvedReferences() {
			stmts = append(stmts, Statement{
				Kind:  AddForeignKey,
				Table: t.Name,
				SQL: fmt.Sprintf("ALTER TABLE %s ADD FOREIGN KEY (%s) REFERENCES %s(%s);",
					t.Name, ref.Column, ref.TargetTable, ref.TargetColumn),
			})
		}
	}
	return stmts
}

// Render joins the statements with a blank line. No trailing newline is added.
func Render(tables []*schema.Table, opts Options) string {
	return Join(Statements(tables, opts))
}

// Join concatenates statements separated by a blank line.
func Join(stmts []Statement) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.SQL)
	}
	return strings.Join(parts, "\n\n")
}

func createTable(t *schema.Table, inlineForeignKeys bool) string {
	var lines []string
	for _, c := range t.Columns {
		lines = append(lines, indent+columnDef(c))
	}
	if t.PrimaryKey != nil {
		lines = append(lines, fmt.Sprintf("%sPRIMARY KEY (%s)", indent, t.PrimaryKey.Column))
	}
	if inlineForeignKeys {
		for _, ref := range t.ResolvedReferences() {
			lines = append(lines, fmt.Sprintf("%sFOREIGN KEY (%s) REFERENCES %s(%s)",
				indent, ref.Column, ref.TargetTable, ref.TargetColumn))
		}
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

func columnDef(c schema.Column) string {
	def := c.Name + " " + c.RenderType()
	if !c.Nullable {
		def += " NOT NULL"
	}
	if c.Unique {
		def += " UNIQUE"
	}
	return def
}
