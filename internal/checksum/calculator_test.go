package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256_CalculateRaw(t *testing.T) {
	c := New()
	// SHA-256 of the empty input.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", c.CalculateRaw(nil))
	assert.NotEqual(t, c.CalculateRaw([]byte("a")), c.CalculateRaw([]byte("A")))
	assert.Len(t, c.CalculateRaw([]byte("CREATE TABLE a ();")), 64)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "CREATE TABLE a (\n    id integer NOT NULL\n);", "create table a ( id integer not null );"},
		{"trims", "  \n select 1  \n", "select 1"},
		{"line comment", "select 1 -- trailing\nfrom t", "select 1 from t"},
		{"block comment", "select /* inline */ 1", "select 1"},
		{"comment at start", "-- header\nselect 1", "select 1"},
		{"literal keeps case and spacing", "select 'Hello  World'", "select 'Hello  World'"},
		{"literal keeps comment markers", "select '-- not a comment'", "select '-- not a comment'"},
		{"escaped quote", "select 'it''s  X'", "select 'it''s  X'"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSHA256_NormalizedIgnoresLayout(t *testing.T) {
	c := New()
	a := "CREATE TABLE customer (\n    customer_id uuid NOT NULL,\n    PRIMARY KEY (customer_id)\n);"
	b := "-- generated\ncreate table customer ( customer_id UUID not null, primary key (customer_id) );\n"

	assert.Equal(t, c.CalculateNormalized([]byte(a)), c.CalculateNormalized([]byte(b)))
	assert.NotEqual(t, c.CalculateRaw([]byte(a)), c.CalculateRaw([]byte(b)))
}

func TestSHA256_NormalizedDetectsSchemaChange(t *testing.T) {
	c := New()
	a := "CREATE TABLE customer (\n    email varchar(255) NOT NULL\n);"
	b := "CREATE TABLE customer (\n    email varchar(320) NOT NULL\n);"
	assert.NotEqual(t, c.CalculateNormalized([]byte(a)), c.CalculateNormalized([]byte(b)))
}

func TestSHA256_Sum(t *testing.T) {
	c := New()
	content := []byte("CREATE TABLE a (\n    id integer NOT NULL\n);")
	sums := c.Sum(content)
	assert.Equal(t, c.CalculateRaw(content), sums.Raw)
	assert.Equal(t, c.CalculateNormalized(content), sums.Normalized)
}

func BenchmarkSHA256_CalculateNormalized(b *testing.B) {
	c := New()
	content := []byte("CREATE TABLE customer (\n    customer_id uuid NOT NULL,\n    email varchar(255) NOT NULL UNIQUE,\n    PRIMARY KEY (customer_id)\n);")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.CalculateNormalized(content)
	}
}
