package sql

import "github.com/JayabrataBasu/sqlast/pkg/cst"

// cursor walks a node's children once, front to back. Builders peek at the
// next child's rule to decide whether an optional clause is present, so a
// child is only consumed by the clause it belongs to.
type cursor struct {
	node *cst.Node
	pos  int
}

func newCursor(n *cst.Node) *cursor {
	return &cursor{node: n}
}

// peek returns the next child without consuming it, or nil at the end.
func (c *cursor) peek() *cst.Node {
	return c.node.Child(c.pos)
}

func (c *cursor) peekIs(rules ...cst.Rule) bool {
	n := c.peek()
	return n != nil && n.Rule.In(rules...)
}

// optional consumes and returns the next child if it has one of rules.
func (c *cursor) optional(rules ...cst.Rule) *cst.Node {
	if !c.peekIs(rules...) {
		return nil
	}
	n := c.peek()
	c.pos++
	return n
}

// next consumes the next child, which must have one of rules.
func (c *cursor) next(rules ...cst.Rule) (*cst.Node, error) {
	n := c.peek()
	if n == nil || !n.Rule.In(rules...) {
		return nil, mismatch(c.node, n, rules...)
	}
	c.pos++
	return n, nil
}

// rest consumes and returns every remaining child.
func (c *cursor) rest() []*cst.Node {
	if c.pos >= len(c.node.Children) {
		return nil
	}
	out := c.node.Children[c.pos:]
	c.pos = len(c.node.Children)
	return out
}

// done fails if any child is left unconsumed.
func (c *cursor) done() error {
	if n := c.peek(); n != nil {
		return malformed(c.node, "unexpected trailing %s", n.Rule)
	}
	return nil
}

// expectRule checks that n is a node of rule before a builder walks it.
func expectRule(n *cst.Node, rule cst.Rule) error {
	if n == nil {
		return malformed(nil, "expected %s node, got nil", rule)
	}
	if n.Rule != rule {
		return mismatch(nil, n, rule)
	}
	return nil
}
