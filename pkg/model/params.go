package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option is a single named tool option.
type Option struct {
	Name  string
	Value string
}

// Parameters is an ordered set of tool options. Order is significant:
// generated command lines render options in insertion order, so the order
// the job-control server (or a defaults file) sends them in is the order
// they appear on the command line.
type Parameters struct {
	opts []Option
}

// NewParameters builds a Parameters from options in the given order.
func NewParameters(opts ...Option) Parameters {
	return Parameters{opts: append([]Option(nil), opts...)}
}

// Len returns the number of options, including falsy ones.
func (p Parameters) Len() int {
	return len(p.opts)
}

// Get returns the value for name and whether it is present.
func (p Parameters) Get(name string) (string, bool) {
	for _, o := range p.opts {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// Set replaces the value for name, or appends it when absent.
func (p *Parameters) Set(name, value string) {
	for i, o := range p.opts {
		if o.Name == name {
			p.opts[i].Value = value
			return
		}
	}
	p.opts = append(p.opts, Option{Name: name, Value: value})
}

// Without returns a copy of p with the named option removed. Order of the
// remaining options is preserved. The receiver is not modified.
func (p Parameters) Without(name string) Parameters {
	out := make([]Option, 0, len(p.opts))
	for _, o := range p.opts {
		if o.Name != name {
			out = append(out, o)
		}
	}
	return Parameters{opts: out}
}

// Options returns a copy of the options in order.
func (p Parameters) Options() []Option {
	return append([]Option(nil), p.opts...)
}

// falsy reports whether a value is excluded from command construction.
// "" comes from unset options, "false" and "0" from JSON booleans and
// numbers the server sends for disabled options.
func falsy(v string) bool {
	return v == "" || v == "false" || v == "0"
}

// Flags renders the non-falsy options as command-line flags in order.
// Each option becomes ` --name "value"` with a leading space; an empty
// Parameters renders as "".
func (p Parameters) Flags() string {
	var b strings.Builder
	for _, o := range p.opts {
		if falsy(o.Value) {
			continue
		}
		fmt.Fprintf(&b, ` --%s "%s"`, o.Name, o.Value)
	}
	return b.String()
}

// UnmarshalYAML decodes a YAML mapping into Parameters, preserving the
// document order of its keys.
func (p *Parameters) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("parameters: expected mapping, got %s", node.Tag)
	}
	opts := make([]Option, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("parameters: value for %q is not a scalar", key.Value)
		}
		v := val.Value
		if val.Tag == "!!null" {
			v = ""
		}
		opts = append(opts, Option{Name: key.Value, Value: v})
	}
	p.opts = opts
	return nil
}

// MarshalYAML encodes Parameters as a YAML mapping in option order.
func (p Parameters) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, o := range p.opts {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Value},
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object into Parameters, preserving the
// order of its keys. encoding/json map decoding would lose the order, so
// the object is walked token by token instead.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("parameters: expected object, got %v", tok)
	}

	var opts []Option
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parameters: %w", err)
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parameters: value for %q: %w", key, err)
		}
		var v string
		switch val := valTok.(type) {
		case string:
			v = val
		case json.Number:
			v = val.String()
		case bool:
			if val {
				v = "true"
			} else {
				v = "false"
			}
		case nil:
			v = ""
		default:
			return fmt.Errorf("parameters: value for %q is not a scalar", key)
		}
		opts = append(opts, Option{Name: key, Value: v})
	}
	p.opts = opts
	return nil
}

// MarshalJSON encodes Parameters as a JSON object in option order.
func (p Parameters) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, o := range p.opts {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(o.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.Value)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
