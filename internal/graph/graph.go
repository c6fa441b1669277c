// Package graph orders tables so that every referenced table precedes the
// tables that reference it.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/appgen/internal/schema"
)

// ErrCycle is matched by every *CycleError.
var ErrCycle = errors.New("reference cycle")

// CycleError reports a cycle of foreign-key references.
// Path starts and ends with the same table, for example [a b a].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("reference cycle: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// Edge is a dependency from a referencing table to a referenced table.
type Edge struct {
	From string
	To   string
	// Cycle is the path closed by this edge when it was skipped during ordering.
	Cycle []string
}

type color int

const (
	white color = iota // not visited
	gray               // on the current DFS path
	black              // emitted
)

// Graph is the dependency graph of a resolved table set.
type Graph struct {
	nodes  []string
	tables map[string]*schema.Table
	deps   map[string][]string
}

// New builds the graph. Nodes keep table order; each table's dependencies
// keep reference order, without duplicates or self references.
func New(tables []*schema.Table) *Graph {
	g := &Graph{
		tables: make(map[string]*schema.Table, len(tables)),
		deps:   make(map[string][]string, len(tables)),
	}
	for _, t := range tables {
		if _, dup := g.tables[t.Name]; dup {
			continue
		}
		g.nodes = append(g.nodes, t.Name)
		g.tables[t.Name] = t
	}
	for _, name := range g.nodes {
		for _, dep := range g.tables[name].DependsOn() {
			if _, known := g.tables[dep]; known {
				g.deps[name] = append(g.deps[name], dep)
			}
		}
	}
	return g
}

// Nodes returns the table names in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Edges returns every dependency edge in deterministic order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, name := range g.nodes {
		for _, dep := range g.deps[name] {
			edges = append(edges, Edge{From: name, To: dep})
		}
	}
	return edges
}

// Order returns the tables in dependency order, or a *CycleError for the
// first cycle found.
func (g *Graph) Order() ([]*schema.Table, error) {
	order, skipped := g.walk()
	if len(skipped) > 0 {
		return nil, &CycleError{Path: skipped[0].Cycle}
	}
	return order, nil
}

// OrderIgnoringCycles returns a total order of all tables. Edges that would
// close a cycle are skipped and returned; the order honors every other edge.
func (g *Graph) OrderIgnoringCycles() ([]*schema.Table, []Edge) {
	return g.walk()
}

func (g *Graph) walk() ([]*schema.Table, []Edge) {
	colors := make(map[string]color, len(g.nodes))
	order := make([]*schema.Table, 0, len(g.nodes))
	var skipped []Edge
	var path []string

	var visit func(name string)
	visit = func(name string) {
		colors[name] = gray
		path = append(path, name)

		for _, dep := range g.deps[name] {
			switch colors[dep] {
			case white:
				visit(dep)
			case gray:
				skipped = append(skipped, Edge{From: name, To: dep, Cycle: cyclePath(path, dep)})
			}
		}

		path = path[:len(path)-1]
		colors[name] = black
		order = append(order, g.tables[name])
	}

	for _, name := range g.nodes {
		if colors[name] == white {
			visit(name)
		}
	}
	return order, skipped
}

// cyclePath returns the part of path starting at target, closed by target.
func cyclePath(path []string, target string) []string {
	for i, name := range path {
		if name == target {
			cycle := append([]string(nil), path[i:]...)
			return append(cycle, target)
		}
	}
	return []string{target, target}
}
