package spec

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is a read-only view over a yaml.v3 node. The zero Node represents a
// missing value; every accessor on it returns a zero result.
type Node struct {
	n *yaml.Node
}

// Pair is one key/value entry of a mapping, in declaration order.
type Pair struct {
	Key   string
	Value Node
}

// NewNode wraps a yaml.v3 node, skipping document wrappers and resolving aliases.
func NewNode(n *yaml.Node) Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return Node{n: n}
		}
	}
	return Node{}
}

// IsMissing reports whether the node does not exist.
func (n Node) IsMissing() bool { return n.n == nil }

// IsMap reports whether the node is a mapping.
func (n Node) IsMap() bool { return n.n != nil && n.n.Kind == yaml.MappingNode }

// IsSeq reports whether the node is a sequence.
func (n Node) IsSeq() bool { return n.n != nil && n.n.Kind == yaml.SequenceNode }

// IsScalar reports whether the node is a scalar.
func (n Node) IsScalar() bool { return n.n != nil && n.n.Kind == yaml.ScalarNode }

// IsNull reports whether the node is missing or an explicit null.
func (n Node) IsNull() bool {
	return n.n == nil || (n.IsScalar() && n.n.Tag == "!!null")
}

// Line returns the 1-based source line, or 0 if unknown.
func (n Node) Line() int {
	if n.n == nil {
		return 0
	}
	return n.n.Line
}

// Raw returns the underlying yaml.v3 node.
func (n Node) Raw() *yaml.Node { return n.n }

// Get returns the value for key in a mapping, or a missing node.
func (n Node) Get(key string) Node {
	if !n.IsMap() {
		return Node{}
	}
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		if n.n.Content[i].Value == key {
			return NewNode(n.n.Content[i+1])
		}
	}
	return Node{}
}

// KeyLine returns the source line of key in a mapping, or 0 when absent.
func (n Node) KeyLine(key string) int {
	if !n.IsMap() {
		return 0
	}
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		if n.n.Content[i].Value == key {
			return n.n.Content[i].Line
		}
	}
	return 0
}

// Has reports whether a mapping contains key.
func (n Node) Has(key string) bool {
	return !n.Get(key).IsMissing()
}

// Pairs returns the entries of a mapping in declaration order.
func (n Node) Pairs() []Pair {
	if !n.IsMap() {
		return nil
	}
	pairs := make([]Pair, 0, len(n.n.Content)/2)
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.n.Content[i].Value, Value: NewNode(n.n.Content[i+1])})
	}
	return pairs
}

// Keys returns the keys of a mapping in declaration order.
func (n Node) Keys() []string {
	pairs := n.Pairs()
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// Items returns the elements of a sequence.
func (n Node) Items() []Node {
	if !n.IsSeq() {
		return nil
	}
	items := make([]Node, 0, len(n.n.Content))
	for _, c := range n.n.Content {
		items = append(items, NewNode(c))
	}
	return items
}

// Text returns the scalar value, or "" for non-scalars and nulls.
func (n Node) Text() string {
	if !n.IsScalar() || n.IsNull() {
		return ""
	}
	return n.n.Value
}

// String returns the scalar value under key, or def when missing, null or
// blank.
func (n Node) String(key, def string) string {
	v := n.Get(key)
	if !v.IsScalar() || v.IsNull() || strings.TrimSpace(v.n.Value) == "" {
		return def
	}
	return v.n.Value
}

// Bool returns the boolean under key, or def when missing or not a boolean.
func (n Node) Bool(key string, def bool) bool {
	v := n.Get(key)
	if !v.IsScalar() || v.IsNull() {
		return def
	}
	b, err := strconv.ParseBool(v.n.Value)
	if err != nil {
		return def
	}
	return b
}

// Int returns the integer under key and whether it was present and valid.
func (n Node) Int(key string) (int, bool) {
	v := n.Get(key)
	if !v.IsScalar() || v.IsNull() {
		return 0, false
	}
	i, err := strconv.Atoi(v.n.Value)
	if err != nil {
		return 0, false
	}
	return i, true
}

// At resolves a JSON-pointer style path such as "/components/schemas".
// "~1" decodes to "/" and "~0" to "~". Numeric segments index sequences.
func (n Node) At(pointer string) Node {
	if pointer == "" || pointer == "/" {
		return n
	}
	cur := n
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		switch {
		case cur.IsMap():
			cur = cur.Get(seg)
		case cur.IsSeq():
			idx, err := strconv.Atoi(seg)
			items := cur.Items()
			if err != nil || idx < 0 || idx >= len(items) {
				return Node{}
			}
			cur = items[idx]
		default:
			return Node{}
		}
	}
	return cur
}

// RefName returns the last segment of a "$ref" value under n, or "".
func (n Node) RefName() string {
	ref := n.String("$ref", "")
	if ref == "" {
		return ""
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
