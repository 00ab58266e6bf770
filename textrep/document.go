package textrep

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// node is one tag in the text document. Which payload field is set
// depends on Kind: Value for scalars, Text for strings, Items for the
// array kinds, ElemKind and Elements for lists, Entries for compounds.
type node struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Value    number   `json:"value,omitempty" yaml:"value,omitempty"`
	Text     *string  `json:"text,omitempty" yaml:"text,omitempty"`
	Items    []number `json:"items,omitempty" yaml:"items,omitempty"`
	ElemKind string   `json:"elem_kind,omitempty" yaml:"elem_kind,omitempty"`
	Elements []*node  `json:"elements,omitempty" yaml:"elements,omitempty"`
	Entries  []*node  `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// number holds a numeric literal exactly as written. It renders as a bare
// JSON number, a tagged YAML scalar, or a CBOR text string, and is only
// interpreted once the owning node's kind is known.
type number string

func (n number) isFloat() bool {
	for _, c := range n {
		switch c {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n), nil
}

func (n *number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || !(data[0] == '-' || ('0' <= data[0] && data[0] <= '9')) {
		return fmt.Errorf("expected number, got %s", data)
	}
	*n = number(data)
	return nil
}

func (n number) MarshalYAML() (any, error) {
	tag := "!!int"
	if n.isFloat() {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}, nil
}

func (n *number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected number", value.Line)
	}
	switch value.ShortTag() {
	case "!!int", "!!float":
		*n = number(value.Value)
		return nil
	default:
		return fmt.Errorf("line %d: expected number, got %s %q", value.Line, value.ShortTag(), value.Value)
	}
}

var (
	_ json.Marshaler   = number("")
	_ json.Unmarshaler = (*number)(nil)
	_ yaml.Marshaler   = number("")
	_ yaml.Unmarshaler = (*number)(nil)
)
