package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/spec"
	"github.com/vvka-141/appgen/pkg/appgen"
)

func TestReport_DiagnosticsPlain(t *testing.T) {
	var list diag.List
	list.Errorf(diag.CodeUnresolvedReference, "Order", "customer", "target entity %q does not exist", "Customer").Hint = "Define Customer"
	list.Warnf(diag.CodeIncompleteRelation, "Order", "", "relation is incomplete")

	got := NewReport(false).Diagnostics(list)
	assert.Equal(t, "✗ error UNRESOLVED_REFERENCE [Order.customer]: target entity \"Customer\" does not exist\n"+
		"    hint: Define Customer\n"+
		"! warning INCOMPLETE_RELATION [Order]: relation is incomplete\n", got)
}

func TestReport_Summary(t *testing.T) {
	doc, err := spec.Parse([]byte(`
x-ddd: {boundedContext: Shop}
components:
  schemas:
    Customer:
      x-persistence: {isEntity: true}
      properties:
        id: {type: integer, x-persistence: {isPrimaryKey: true}}
    Order:
      x-persistence: {isEntity: true}
      properties:
        id: {type: integer, x-persistence: {isPrimaryKey: true}}
        customer: {x-persistence: {relation: {joinColumn: customer_id, targetEntity: Customer}}}
`), "shop.yaml")
	require.NoError(t, err)
	res, err := compiler.Compile(doc, compiler.Options{Unresolved: appgen.UnresolvedError})
	require.NoError(t, err)

	r := NewReport(false)
	assert.Equal(t, "✓ Shop: 2 table(s), 2 statement(s), 0 error(s), 0 warning(s)", r.Summary(res))
	assert.Equal(t, "  1. customer\n  2. order → customer\n", r.Tables(res))

	res.Deferred = true
	res.Diagnostics.Warnf(diag.CodeReferenceCycle, "", "", "cycle")
	assert.Equal(t, "! Shop: 2 table(s), 2 statement(s), 0 error(s), 1 warning(s), foreign keys deferred", r.Summary(res))
}

func TestReport_Styled(t *testing.T) {
	var list diag.List
	list.Errorf(diag.CodeDuplicateTable, "A", "", "duplicate")

	got := NewReport(true).Diagnostics(list)
	assert.Contains(t, got, "DUPLICATE_TABLE")
	assert.Contains(t, got, "duplicate")
}
