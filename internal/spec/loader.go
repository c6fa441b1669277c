package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// MaxDocumentSize bounds the size of a specification file.
const MaxDocumentSize = 16 * 1024 * 1024

// yamlLineRegex extracts the line number from yaml.v3 error messages.
var yamlLineRegex = regexp.MustCompile(`line (\d+):\s*(.*)`)

// Document is a parsed specification.
type Document struct {
	Source string
	Root   Node
}

// BoundedContext returns /x-ddd/boundedContext, or the default context name.
func (d *Document) BoundedContext() string {
	if v := d.Root.At("/x-ddd/boundedContext").Text(); v != "" {
		return v
	}
	return appgen.DefaultBoundedContext
}

// Schemas returns /components/schemas, or a missing node.
func (d *Document) Schemas() Node {
	return d.Root.At("/components/schemas")
}

// Load reads and parses the specification at path through fsProvider.
func Load(fsProvider filesystem.FileSystemProvider, path string) (*Document, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses JSON or YAML content. source is used in error messages.
//
// Error cases:
//   - empty or whitespace-only content
//   - content larger than MaxDocumentSize
//   - syntax errors (with line and column when known)
//   - a root that is not a mapping
//
// All of them return *ParseError, which matches appgen.ErrInvalidSpec.
func Parse(data []byte, source string) (*Document, error) {
	if len(data) > MaxDocumentSize {
		return nil, &ParseError{
			Source:  source,
			Message: fmt.Sprintf("document exceeds maximum size of %d bytes (got %d bytes)", MaxDocumentSize, len(data)),
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{
			Source:  source,
			Message: "document is empty",
			Hint:    "The specification must be a JSON or YAML object with a components.schemas section.",
		}
	}

	var (
		raw *yaml.Node
		err error
	)
	if trimmed[0] == '{' || trimmed[0] == '[' {
		raw, err = parseJSON(data, source)
	} else {
		raw, err = parseYAML(data, source)
	}
	if err != nil {
		return nil, err
	}

	root := NewNode(raw)
	if !root.IsMap() {
		return nil, &ParseError{
			Source:  source,
			Line:    root.Line(),
			Message: "document root must be an object",
			Hint:    "Wrap the specification in a top-level object, e.g. {\"components\": {\"schemas\": {...}}}",
		}
	}

	return &Document{Source: source, Root: root}, nil
}

func parseYAML(data []byte, source string) (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		perr := &ParseError{
			Source:  source,
			Message: strings.TrimPrefix(err.Error(), "yaml: "),
			Hint:    "Check indentation and quoting. YAML does not allow tabs for indentation.",
		}
		if m := yamlLineRegex.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
			perr.Message = m[2]
		}
		return nil, perr
	}
	return &node, nil
}

// parseJSON builds a yaml.v3 node tree from JSON tokens so that object key
// order survives, which map-based decoding would lose.
func parseJSON(data []byte, source string) (*yaml.Node, error) {
	p := &jsonParser{dec: json.NewDecoder(bytes.NewReader(data)), data: data}
	p.dec.UseNumber()

	node, err := p.value()
	if err == nil {
		if _, trailing := p.dec.Token(); trailing != io.EOF {
			err = fmt.Errorf("unexpected content after the top-level value")
		}
	}
	if err != nil {
		perr := &ParseError{
			Source:  source,
			Message: err.Error(),
			Hint:    "Check for missing commas, unbalanced braces and unquoted keys.",
		}
		offset := p.dec.InputOffset()
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			offset = syntaxErr.Offset
		}
		perr.Line, perr.Column = p.position(offset)
		return nil, perr
	}
	return node, nil
}

type jsonParser struct {
	dec  *json.Decoder
	data []byte
}

// position converts a byte offset into a 1-based line and column.
func (p *jsonParser) position(offset int64) (int, int) {
	if offset > int64(len(p.data)) {
		offset = int64(len(p.data))
	}
	prefix := p.data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

// nextLine returns the line of the next token. InputOffset points just past
// the previous token, before any separators.
func (p *jsonParser) nextLine() int {
	off := p.dec.InputOffset()
	for off < int64(len(p.data)) && strings.IndexByte(" \t\r\n,:", p.data[off]) >= 0 {
		off++
	}
	line, _ := p.position(off)
	return line
}

func (p *jsonParser) value() (*yaml.Node, error) {
	line := p.nextLine()
	tok, err := p.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of document")
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object(line)
		case '[':
			return p.array(line)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t, Line: line}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String(), Line: line}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t), Line: line}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (p *jsonParser) object(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}
	for p.dec.More() {
		keyLine := p.nextLine()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Line: keyLine},
			val,
		)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.closing(err)
	}
	return node, nil
}

func (p *jsonParser) array(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}
	for p.dec.More() {
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, val)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.closing(err)
	}
	return node, nil
}

func (p *jsonParser) closing(err error) error {
	if err == io.EOF {
		return fmt.Errorf("unexpected end of document")
	}
	return err
}
