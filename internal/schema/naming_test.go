package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Customer", "customer"},
		{"OrderItem", "order_item"},
		{"customerId", "customer_id"},
		{"customerID", "customer_id"},
		{"createdAt", "created_at"},
		{"already_snake", "already_snake"},
		{"Order-Line", "order_line"},
		{"first name", "first_name"},
		{"billing.Invoice", "billing_invoice"},
		{"unit€price", "unit_price"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}
