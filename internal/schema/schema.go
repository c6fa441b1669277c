// Package schema defines the persistent model shared by the compiler stages.
//
// The extractor produces a Catalog of Entity values. The resolver turns the
// catalog into Table values with resolved References. Later stages only read
// tables and never see the catalog. Each stage builds a new value instead of
// changing the previous one.
package schema

// DefaultColumnType is rendered for columns whose type could not be determined.
const DefaultColumnType = "text"

// Column is one table column.
type Column struct {
	Name       string `json:"name" yaml:"name"`
	DataType   string `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	Nullable   bool   `json:"nullable" yaml:"nullable"`
	Unique     bool   `json:"unique" yaml:"unique"`
	PrimaryKey bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// RenderType returns DataType, or DefaultColumnType when it is empty.
func (c Column) RenderType() string {
	if c.DataType == "" {
		return DefaultColumnType
	}
	return c.DataType
}

// PrimaryKey identifies the single primary-key column of an entity.
type PrimaryKey struct {
	Column string `json:"column" yaml:"column"`
	Type   string `json:"type" yaml:"type"`
}

// ForeignKey is an unresolved reference declared on an entity's owning side.
type ForeignKey struct {
	Column       string // join column on the owning entity
	TargetEntity string // schema name of the referenced entity
	Property     string // property that declared the relation
}

// Entity is a specification definition flagged as persistent.
type Entity struct {
	SchemaName  string
	TableName   string
	Columns     []Column
	PrimaryKey  *PrimaryKey
	ForeignKeys []ForeignKey
}

// Column returns the column named name, or nil.
func (e *Entity) Column(name string) *Column {
	for i := range e.Columns {
		if e.Columns[i].Name == name {
			return &e.Columns[i]
		}
	}
	return nil
}

// Catalog is the ordered, read-only set of extracted entities.
type Catalog struct {
	entities []*Entity
	byName   map[string]*Entity
}

// NewCatalog builds a catalog from entities in declaration order.
// A later entity with an already used schema name is ignored.
func NewCatalog(entities ...*Entity) *Catalog {
	c := &Catalog{byName: make(map[string]*Entity, len(entities))}
	for _, e := range entities {
		if _, dup := c.byName[e.SchemaName]; dup {
			continue
		}
		c.entities = append(c.entities, e)
		c.byName[e.SchemaName] = e
	}
	return c
}

// Entities returns the entities in declaration order.
func (c *Catalog) Entities() []*Entity {
	out := make([]*Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Lookup returns the entity with the given schema name.
func (c *Catalog) Lookup(schemaName string) (*Entity, bool) {
	e, ok := c.byName[schemaName]
	return e, ok
}

// Len returns the number of entities.
func (c *Catalog) Len() int { return len(c.entities) }

// Reference is a foreign key after resolution. Target fields are empty when
// Resolved is false.
type Reference struct {
	Column       string `json:"column" yaml:"column"`
	TargetEntity string `json:"target_entity" yaml:"target_entity"`
	TargetTable  string `json:"target_table,omitempty" yaml:"target_table,omitempty"`
	TargetColumn string `json:"target_column,omitempty" yaml:"target_column,omitempty"`
	Resolved     bool   `json:"resolved" yaml:"resolved"`
}

// Table is a fully resolved entity, ready for ordering and emission.
type Table struct {
	Entity     string      `json:"entity" yaml:"entity"`
	Name       string      `json:"name" yaml:"name"`
	Columns    []Column    `json:"columns" yaml:"columns"`
	PrimaryKey *PrimaryKey `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
}

// ResolvedReferences returns the references that have a target.
func (t *Table) ResolvedReferences() []Reference {
	var out []Reference
	for _, r := range t.References {
		if r.Resolved {
			out = append(out, r)
		}
	}
	return out
}

// DependsOn returns the distinct target tables of resolved references,
// in declaration order, excluding the table itself.
func (t *Table) DependsOn() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, r := range t.References {
		if !r.Resolved || r.TargetTable == t.Name || seen[r.TargetTable] {
			continue
		}
		seen[r.TargetTable] = true
		deps = append(deps, r.TargetTable)
	}
	return deps
}
