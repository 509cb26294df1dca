// Package render prints AST values as YAML or JSON documents.
//
// Values are first converted into a yaml.v3 node tree that keeps struct
// field order; both encoders walk that tree. Structs reached through a
// pointer or interface carry an "@type" key naming their Go type. Absent
// nodes, empty lists and empty names are left out; enums always print by
// name, including their zero value.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
)

// TypeKey is the mapping key holding a node's type name.
const TypeKey = "@type"

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Tree converts v into a yaml.v3 node tree.
func Tree(v interface{}) *yaml.Node {
	return build(reflect.ValueOf(v), true)
}

func build(v reflect.Value, typed bool) *yaml.Node {
	switch v.Kind() {
	case reflect.Invalid:
		return scalar("!!null", "null")
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return scalar("!!null", "null")
		}
		return build(v.Elem(), true)
	case reflect.Struct:
		return mapping(v, typed)
	case reflect.Slice, reflect.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < v.Len(); i++ {
			seq.Content = append(seq.Content, build(v.Index(i), false))
		}
		return seq
	case reflect.Bool:
		return scalar("!!bool", strconv.FormatBool(v.Bool()))
	case reflect.String:
		return scalar("!!str", v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return scalar("!!str", s.String())
		}
		return scalar("!!int", strconv.FormatInt(v.Int(), 10))
	}
	return scalar("!!str", fmt.Sprint(v.Interface()))
}

func mapping(v reflect.Value, typed bool) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if typed {
		m.Content = append(m.Content, scalar("!!str", TypeKey), scalar("!!str", v.Type().Name()))
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		fv := v.Field(i)
		switch policy(v, f.Name) {
		case fieldSkip:
			continue
		case fieldAuto:
			if empty(fv) {
				continue
			}
		}
		m.Content = append(m.Content, scalar("!!str", f.Name), build(fv, false))
	}
	return m
}

type fieldPolicy int

const (
	fieldAuto fieldPolicy = iota
	fieldSkip
	fieldAlways
)

// policy decides per variant which fields of v mean something. Fields it
// does not name are printed unless empty.
func policy(v reflect.Value, name string) fieldPolicy {
	if !v.CanInterface() {
		return fieldAuto
	}
	switch x := v.Interface().(type) {
	case ast.Literal:
		switch name {
		case "Bool":
			if x.Kind == ast.LiteralBool {
				return fieldAlways
			}
			return fieldSkip
		case "Text":
			if x.Kind == ast.LiteralBool || x.Kind == ast.LiteralNull {
				return fieldSkip
			}
			return fieldAlways
		}
	case ast.JoinOperator:
		switch name {
		case "Natural":
			if x.Kind != ast.JoinInner && x.Kind != ast.JoinOuter {
				return fieldSkip
			}
		case "Outer":
			if x.Kind != ast.JoinOuter {
				return fieldSkip
			}
		}
	case ast.InsertHeader:
		if name == "Conflict" && x.Replace {
			return fieldSkip
		}
	}
	return fieldAuto
}

// empty reports whether v is an absent node, an empty list or an empty
// name. Enums, flags and nested structs are never empty.
func empty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	}
	return false
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Statements renders parsed statements as one sequence document.
func Statements(w io.Writer, format string, nodes []ast.Node) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range nodes {
		doc.Content = append(doc.Content, Tree(n))
	}
	return Encode(w, format, doc)
}

// Encode writes n in the given format.
func Encode(w io.Writer, format string, n *yaml.Node) error {
	switch strings.ToLower(format) {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		var compact bytes.Buffer
		if err := writeJSON(&compact, n); err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
			return fmt.Errorf("failed to indent json: %w", err)
		}
		out.WriteByte('\n')
		_, err := out.WriteTo(w)
		return err
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func writeJSON(b *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSONString(b, n.Content[i].Value); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := writeJSON(b, n.Content[i+1]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, c); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			b.WriteString("null")
		case "!!bool", "!!int":
			b.WriteString(n.Value)
		default:
			return writeJSONString(b, n.Value)
		}
	default:
		return fmt.Errorf("cannot render yaml node kind %d as json", n.Kind)
	}
	return nil
}

func writeJSONString(b *bytes.Buffer, s string) error {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Truncate(b.Len() - 1) // Encode appends a newline
	return nil
}
