package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_PreservesOrderAndIgnoresDuplicates(t *testing.T) {
	a := &Entity{SchemaName: "A", TableName: "a"}
	b := &Entity{SchemaName: "B", TableName: "b"}
	dup := &Entity{SchemaName: "A", TableName: "other"}

	c := NewCatalog(a, b, dup)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []*Entity{a, b}, c.Entities())

	got, ok := c.Lookup("A")
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = c.Lookup("Missing")
	assert.False(t, ok)
}

func TestCatalog_EntitiesReturnsCopy(t *testing.T) {
	c := NewCatalog(&Entity{SchemaName: "A"})
	list := c.Entities()
	list[0] = nil
	assert.NotNil(t, c.Entities()[0])
}

func TestColumn_RenderType(t *testing.T) {
	assert.Equal(t, "text", Column{Name: "x"}.RenderType())
	assert.Equal(t, "uuid", Column{Name: "x", DataType: "uuid"}.RenderType())
}

func TestEntity_Column(t *testing.T) {
	e := &Entity{Columns: []Column{{Name: "id"}, {Name: "email"}}}
	assert.Equal(t, "email", e.Column("email").Name)
	assert.Nil(t, e.Column("missing"))
}

func TestTable_DependsOn(t *testing.T) {
	tbl := &Table{
		Name: "order_item",
		References: []Reference{
			{Column: "order_id", TargetTable: "orders", Resolved: true},
			{Column: "product_id", TargetTable: "product", Resolved: true},
			{Column: "replacement_order_id", TargetTable: "orders", Resolved: true},
			{Column: "parent_id", TargetTable: "order_item", Resolved: true},
			{Column: "ghost_id", TargetEntity: "Ghost"},
		},
	}

	assert.Equal(t, []string{"orders", "product"}, tbl.DependsOn())
	assert.Len(t, tbl.ResolvedReferences(), 4)
}
