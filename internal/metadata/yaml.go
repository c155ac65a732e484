package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxNodes bounds the number of values a single document may expand to once
// aliases are followed.
const MaxNodes = 10000

// FromYAMLNode converts a decoded YAML mapping into a Record, preserving key order.
//
// A document or alias node is followed to its target. A null node yields a nil
// record and no error. Any other non-mapping node is an error.
func FromYAMLNode(n *yaml.Node) (*Record, error) {
	n = resolve(n)
	if n == nil || n.Kind == 0 || isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: front matter must be a mapping, got %s", n.Line, kindName(n))
	}
	c := &converter{active: make(map[*yaml.Node]bool)}
	return c.recordFromMapping(n)
}

// converter walks a node tree. active holds the containers on the current
// path so a recursive alias is reported instead of followed.
type converter struct {
	active map[*yaml.Node]bool
	nodes  int
}

func (c *converter) enter(from, n *yaml.Node) error {
	if c.active[n] {
		return fmt.Errorf("line %d: recursive alias", from.Line)
	}
	c.nodes++
	if c.nodes > MaxNodes {
		return fmt.Errorf("line %d: document expands to more than %d values", from.Line, MaxNodes)
	}
	c.active[n] = true
	return nil
}

func (c *converter) leave(n *yaml.Node) { delete(c.active, n) }

func (c *converter) recordFromMapping(n *yaml.Node) (*Record, error) {
	if err := c.enter(n, n); err != nil {
		return nil, err
	}
	defer c.leave(n)

	rec := NewRecord()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := resolve(n.Content[i])
		valNode := n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			if err := c.mergeInto(rec, valNode); err != nil {
				return nil, err
			}
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}

		val, err := c.valueFromNode(valNode)
		if err != nil {
			return nil, err
		}
		rec.Set(keyNode.Value, val)
	}
	return rec, nil
}

// mergeInto applies a YAML merge key (<<). Keys already present win.
func (c *converter) mergeInto(rec *Record, n *yaml.Node) error {
	n = resolve(n)
	if n == nil {
		return nil
	}
	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			sources = append(sources, resolve(item))
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		merged, err := c.recordFromMapping(src)
		if err != nil {
			return err
		}
		for _, k := range merged.keys {
			if !rec.Has(k) {
				rec.Set(k, merged.fields[k])
			}
		}
	}
	return nil
}

func (c *converter) valueFromNode(from *yaml.Node) (Value, error) {
	n := resolve(from)
	if n == nil {
		return Null(), nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if err := c.enter(from, n); err != nil {
			return Value{}, err
		}
		c.leave(n)
		return scalarValue(n)
	case yaml.SequenceNode:
		if err := c.enter(from, n); err != nil {
			return Value{}, err
		}
		defer c.leave(n)
		items := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.valueFromNode(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindList, list: items}, nil
	case yaml.MappingNode:
		if c.active[n] {
			return Value{}, fmt.Errorf("line %d: recursive alias", from.Line)
		}
		rec, err := c.recordFromMapping(n)
		if err != nil {
			return Value{}, err
		}
		return Map(rec), nil
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node %s", n.Line, kindName(n))
	}
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return NumberWithText(f, n.Value), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text.
		return String(n.Value), nil
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "node"
	}
}
