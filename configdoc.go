package options

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// schemaDocNode is the YAML shape LoadSchemaDoc decodes: the same
// "parse into a generic tree, then walk it" technique the teacher
// package uses for decoding INI documents (ini.go's Unmarshal), here
// repointed at schema trees rather than option values, since decoding
// parsed option *values* into typed Go values is explicitly out of
// scope for this package (Accept callbacks get a raw Lexeme).
type schemaDocNode struct {
	Kind     string          `yaml:"kind"`
	Name     string          `yaml:"name"`
	Children []schemaDocNode `yaml:"children"`
}

// LoadSchemaDoc reads a YAML schema document and builds the
// equivalent []Node tree, as an alternative to writing out nested
// Section/Option/Suboption calls by hand. Each entry's "kind" must be
// one of "section", "option" or "suboption"; suboptions may not carry
// children.
func LoadSchemaDoc(r io.Reader) ([]Node, error) {
	var docs []schemaDocNode
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&docs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load schema document: %w", err)
	}
	return convertSchemaDocs(docs)
}

func convertSchemaDocs(docs []schemaDocNode) ([]Node, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	nodes := make([]Node, 0, len(docs))
	for _, d := range docs {
		n, err := convertSchemaDocNode(d)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func convertSchemaDocNode(d schemaDocNode) (Node, error) {
	children, err := convertSchemaDocs(d.Children)
	if err != nil {
		return Node{}, err
	}
	switch d.Kind {
	case "section":
		return Section(d.Name, children...), nil
	case "option":
		return Option(d.Name, children...), nil
	case "suboption":
		if len(children) > 0 {
			return Node{}, fmt.Errorf("schema node %q: suboptions cannot have children", d.Name)
		}
		return Suboption(d.Name), nil
	default:
		return Node{}, fmt.Errorf("schema node %q: unknown kind %q", d.Name, d.Kind)
	}
}
