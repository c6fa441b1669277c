package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/schema"
	"github.com/vvka-141/appgen/internal/spec"
)

func extract(t *testing.T, src string) (*schema.Catalog, diag.List) {
	t.Helper()
	doc, err := spec.Parse([]byte(src), "app.json")
	require.NoError(t, err)
	return Extract(doc, NewTypeMapper(nil))
}

const billingSpec = `{
  "components": {
    "schemas": {
      "CustomerDto": {
        "type": "object",
        "properties": {"email": {"type": "string"}}
      },
      "Customer": {
        "type": "object",
        "x-persistence": {"isEntity": true},
        "properties": {
          "customerId": {
            "type": "string", "format": "uuid",
            "x-persistence": {"isPrimaryKey": true}
          },
          "email": {
            "type": "string",
            "x-persistence": {"isUnique": true, "columnName": "email_address"}
          },
          "createdAt": {"type": "string", "format": "date-time"},
          "nickname": {"type": "string", "x-persistence": {"isNullable": true}},
          "subscriptions": {
            "type": "array",
            "x-persistence": {"relation": {"mappedBy": "customer"}}
          }
        }
      },
      "Money": {
        "type": "object",
        "x-ddd": {"isValueObject": true},
        "properties": {"amount": {"type": "number"}}
      },
      "Subscription": {
        "type": "object",
        "x-persistence": {"isEntity": true, "tableName": "subscriptions"},
        "properties": {
          "id": {"type": "integer", "format": "int64", "x-persistence": {"isPrimaryKey": true}},
          "customer": {
            "x-persistence": {"relation": {"joinColumn": "customer_id", "targetEntity": "Customer"}}
          },
          "plan": {"type": "string", "x-persistence": {"dataType": "varchar(40)"}}
        }
      }
    }
  }
}`

func TestExtract_SelectsEntitiesInDeclarationOrder(t *testing.T) {
	cat, diags := extract(t, billingSpec)
	require.Empty(t, diags)
	require.Equal(t, 2, cat.Len())

	entities := cat.Entities()
	assert.Equal(t, "Customer", entities[0].SchemaName)
	assert.Equal(t, "customer", entities[0].TableName)
	assert.Equal(t, "Subscription", entities[1].SchemaName)
	assert.Equal(t, "subscriptions", entities[1].TableName)

	_, ok := cat.Lookup("CustomerDto")
	assert.False(t, ok)
	_, ok = cat.Lookup("Money")
	assert.False(t, ok)
}

func TestExtract_PlainColumns(t *testing.T) {
	cat, _ := extract(t, billingSpec)
	customer, ok := cat.Lookup("Customer")
	require.True(t, ok)

	assert.Equal(t, []schema.Column{
		{Name: "customer_id", DataType: "uuid", PrimaryKey: true},
		{Name: "email_address", DataType: "varchar(255)", Unique: true},
		{Name: "created_at", DataType: "timestamp with time zone"},
		{Name: "nickname", DataType: "varchar(255)", Nullable: true},
	}, customer.Columns)
	assert.Equal(t, &schema.PrimaryKey{Column: "customer_id", Type: "uuid"}, customer.PrimaryKey)
	assert.Empty(t, customer.ForeignKeys, "inverse side produces no foreign key")
}

func TestExtract_OwningRelation(t *testing.T) {
	cat, _ := extract(t, billingSpec)
	sub, ok := cat.Lookup("Subscription")
	require.True(t, ok)

	require.Len(t, sub.Columns, 3)
	assert.Equal(t, schema.Column{Name: "customer_id", Nullable: true}, sub.Columns[1])
	assert.Equal(t, schema.Column{Name: "plan", DataType: "varchar(40)"}, sub.Columns[2])
	assert.Equal(t, []schema.ForeignKey{
		{Column: "customer_id", TargetEntity: "Customer", Property: "customer"},
	}, sub.ForeignKeys)
	assert.Equal(t, &schema.PrimaryKey{Column: "id", Type: "bigint"}, sub.PrimaryKey)
}

func TestExtract_RelationWithExplicitNullabilityAndType(t *testing.T) {
	cat, diags := extract(t, `{"components": {"schemas": {
	  "Invoice": {
	    "x-persistence": {"isEntity": true},
	    "properties": {
	      "account": {"x-persistence": {
	        "isNullable": false, "dataType": "bigint",
	        "relation": {"joinColumn": "account_id", "targetEntity": "Account"}
	      }}
	    }
	  }
	}}}`)
	require.Empty(t, diags)

	invoice, _ := cat.Lookup("Invoice")
	assert.Equal(t, []schema.Column{{Name: "account_id", DataType: "bigint"}}, invoice.Columns)
	assert.Nil(t, invoice.PrimaryKey)
}

func TestExtract_IncompleteRelation(t *testing.T) {
	cat, diags := extract(t, `{"components": {"schemas": {
	  "Invoice": {
	    "x-persistence": {"isEntity": true},
	    "properties": {
	      "id": {"type": "integer", "x-persistence": {"isPrimaryKey": true}},
	      "account": {"x-persistence": {"relation": {"targetEntity": "Account"}}}
	    }
	  }
	}}}`)

	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeIncompleteRelation, diags[0].Code)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "account", diags[0].Property)

	invoice, _ := cat.Lookup("Invoice")
	assert.Len(t, invoice.Columns, 1)
	assert.Empty(t, invoice.ForeignKeys)
}

func TestExtract_DuplicateColumn(t *testing.T) {
	cat, diags := extract(t, `{"components": {"schemas": {
	  "Account": {
	    "x-persistence": {"isEntity": true},
	    "properties": {
	      "ownerId": {"type": "string", "format": "uuid"},
	      "owner": {"x-persistence": {"relation": {"joinColumn": "owner_id", "targetEntity": "User"}}}
	    }
	  }
	}}}`)

	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateColumn, diags[0].Code)
	assert.Equal(t, diag.SeverityError, diags[0].Severity)

	account, _ := cat.Lookup("Account")
	assert.Equal(t, []schema.Column{{Name: "owner_id", DataType: "uuid"}}, account.Columns)
	assert.Empty(t, account.ForeignKeys)
}

func TestExtract_DuplicatePrimaryKeyKeepsFirst(t *testing.T) {
	cat, diags := extract(t, `{"components": {"schemas": {
	  "Account": {
	    "x-persistence": {"isEntity": true},
	    "properties": {
	      "id": {"type": "integer", "x-persistence": {"isPrimaryKey": true}},
	      "code": {"type": "string", "x-persistence": {"isPrimaryKey": true}}
	    }
	  }
	}}}`)

	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicatePrimaryKey, diags[0].Code)

	account, _ := cat.Lookup("Account")
	assert.Equal(t, &schema.PrimaryKey{Column: "id", Type: "integer"}, account.PrimaryKey)
	assert.False(t, account.Columns[1].PrimaryKey)
	assert.Len(t, account.Columns, 2)
}

func TestExtract_DuplicateTable(t *testing.T) {
	cat, diags := extract(t, `{"components": {"schemas": {
	  "OrderItem": {"x-persistence": {"isEntity": true}, "properties": {}},
	  "LineItem": {"x-persistence": {"isEntity": true, "tableName": "order_item"}, "properties": {}}
	}}}`)

	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateTable, diags[0].Code)
	assert.Equal(t, "LineItem", diags[0].Entity)
	assert.Contains(t, diags[0].Message, "OrderItem")
	assert.Equal(t, 1, cat.Len())
}

func TestExtract_NoSchemas(t *testing.T) {
	cat, diags := extract(t, `{"openapi": "3.0.0"}`)
	assert.Empty(t, diags)
	assert.Equal(t, 0, cat.Len())
}

func TestExtract_YAMLDocument(t *testing.T) {
	doc, err := spec.Parse([]byte(`
components:
  schemas:
    Product:
      x-persistence:
        isEntity: true
      properties:
        sku:
          type: string
          maxLength: 32
          x-persistence:
            isPrimaryKey: true
        price:
          type: number
`), "app.yaml")
	require.NoError(t, err)

	cat, diags := Extract(doc, NewTypeMapper(map[string]string{"number": "numeric(10,2)"}))
	require.Empty(t, diags)

	product, ok := cat.Lookup("Product")
	require.True(t, ok)
	assert.Equal(t, []schema.Column{
		{Name: "sku", DataType: "varchar(32)", PrimaryKey: true},
		{Name: "price", DataType: "numeric(10,2)"},
	}, product.Columns)
}

func TestExtract_BlankNamesFallBackToDerivedNames(t *testing.T) {
	cat, _ := extract(t, `{
  "components": {
    "schemas": {
      "LineItem": {
        "x-persistence": {"isEntity": true, "tableName": ""},
        "properties": {
          "id": {"type": "integer", "x-persistence": {"isPrimaryKey": true, "columnName": "  "}},
          "unitPrice": {"type": "number", "x-persistence": {"columnName": ""}}
        }
      }
    }
  }
}`)
	item, ok := cat.Lookup("LineItem")
	require.True(t, ok)

	assert.Equal(t, "line_item", item.TableName)
	require.Len(t, item.Columns, 2)
	assert.Equal(t, "id", item.Columns[0].Name)
	assert.Equal(t, "unit_price", item.Columns[1].Name)
}
