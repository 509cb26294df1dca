// Package cst defines the concrete syntax tree produced by the grammar engine
// and consumed by the AST builders.
package cst

import (
	"fmt"
	"strings"
)

// Span is the half-open byte range [Start, End) a node matched in the source.
type Span struct {
	Start int
	End   int
}

// Node is one CST node: a rule tag, its ordered children and the source it matched.
// Leaves have no children; their meaning is carried by Rule and Text.
type Node struct {
	Rule     Rule
	Children []*Node
	Span     Span
	Text     string
}

// NewLeaf creates a node without children.
func NewLeaf(rule Rule, text string, span Span) *Node {
	return &Node{Rule: rule, Text: text, Span: span}
}

// NewNode creates a non-terminal node. Its span and text are filled in by Close.
func NewNode(rule Rule) *Node {
	return &Node{Rule: rule}
}

// Add appends children in order.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Close sets the node's span to [start, end) of src.
func (n *Node) Close(src string, start, end int) *Node {
	n.Span = Span{Start: start, End: end}
	if start >= 0 && end <= len(src) && start <= end {
		n.Text = src[start:end]
	}
	return n
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String renders the node as an s-expression, mostly for test failures.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s(%q)", n.Rule, n.Text)
		return
	}
	b.WriteString("(")
	b.WriteString(n.Rule.String())
	for _, c := range n.Children {
		b.WriteString(" ")
		c.write(b)
	}
	b.WriteString(")")
}
