// Package schema describes the structure a generated sermon must have.
//
// The same tree feeds three consumers: the JSON Schema document used to
// validate responses, the example skeleton embedded in free-text prompts,
// and the native response schema of each generation backend.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type is the value kind of a schema node
type Type string

const (
	TypeObject Type = "object"
	TypeString Type = "string"
	TypeArray  Type = "array"
)

// Property is a named, ordered child of an object node
type Property struct {
	Name string
	Node *Node
}

// Node is one level of the document structure. Every property of an
// object node is required.
type Node struct {
	Type        Type
	Description string
	Properties  []Property
	Items       *Node
	NonEmpty    bool
}

// Required returns the property names of an object node in order
func (n *Node) Required() []string {
	names := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		names[i] = p.Name
	}
	return names
}

// Property returns the child node with the given name
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node
		}
	}
	return nil
}

// Paths lists the dotted path of every leaf field, arrays marked with []
func (n *Node) Paths() []string {
	var out []string
	n.walk("", &out)
	return out
}

func (n *Node) walk(prefix string, out *[]string) {
	switch n.Type {
	case TypeObject:
		for _, p := range n.Properties {
			path := p.Name
			if prefix != "" {
				path = prefix + "." + p.Name
			}
			p.Node.walk(path, out)
		}
	case TypeArray:
		if n.Items != nil {
			n.Items.walk(prefix+"[]", out)
		}
	default:
		*out = append(*out, prefix)
	}
}

// JSONSchema renders the node as a JSON Schema document
func (n *Node) JSONSchema() ([]byte, error) {
	doc := n.jsonSchema()
	doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal json schema: %w", err)
	}
	return raw, nil
}

func (n *Node) jsonSchema() map[string]any {
	out := map[string]any{"type": string(n.Type)}
	if n.Description != "" {
		out["description"] = n.Description
	}
	switch n.Type {
	case TypeObject:
		props := make(map[string]any, len(n.Properties))
		for _, p := range n.Properties {
			props[p.Name] = p.Node.jsonSchema()
		}
		out["properties"] = props
		out["required"] = n.Required()
	case TypeArray:
		if n.Items != nil {
			out["items"] = n.Items.jsonSchema()
		}
	case TypeString:
		if n.NonEmpty {
			out["minLength"] = 1
		}
	}
	return out
}

// Skeleton renders an indented example document of the exact expected
// shape. String leaves hold their description; arrays hold one item.
func (n *Node) Skeleton() string {
	var sb strings.Builder
	n.skeleton(&sb, 0)
	return sb.String()
}

func (n *Node) skeleton(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case TypeObject:
		sb.WriteString("{\n")
		for i, p := range n.Properties {
			sb.WriteString(indent + "  ")
			sb.WriteString(quote(p.Name))
			sb.WriteString(": ")
			p.Node.skeleton(sb, depth+1)
			if i < len(n.Properties)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(indent + "}")
	case TypeArray:
		sb.WriteString("[\n")
		if n.Items != nil {
			sb.WriteString(indent + "  ")
			n.Items.skeleton(sb, depth+1)
			sb.WriteString("\n")
		}
		sb.WriteString(indent + "]")
	default:
		placeholder := n.Description
		if placeholder == "" {
			placeholder = "..."
		}
		sb.WriteString(quote(placeholder))
	}
}

func quote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
