// Package logic implements boolean predicate trees over named integer
// variables.
//
// A leaf constrains one variable to a rangeset.List. Internal nodes combine
// two owned children with AND or OR. Every constructor returns a tree that
// shares no node or domain with its inputs, except Link which adopts the
// children it is given.
package logic

import (
	"fmt"
	"strings"

	"github.com/gnoverse/rangelogic/rangeset"
)

// ErrInvalidArgument is returned for nil or mistyped nodes.
var ErrInvalidArgument = rangeset.ErrInvalidArgument

// Kind is the variant tag of a Node.
type Kind int

const (
	KindVar Kind = iota
	KindAnd
	KindOr
	// KindNot is reserved; no constructor produces it and every operation
	// rejects it.
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "?"
	}
}

// Node is a predicate tree node. Leaves own their domain; AND/OR nodes own
// both children. parent is a back-reference only and never owns anything.
type Node struct {
	kind   Kind
	name   string
	domain *rangeset.List
	left   *Node
	right  *Node
	parent *Node
}

func (n *Node) Kind() Kind { return n.kind }

// Name returns the variable name of a leaf.
func (n *Node) Name() string { return n.name }

// Domain returns the constraint of a leaf. It belongs to the node and must
// not be modified.
func (n *Node) Domain() *rangeset.List { return n.domain }

func (n *Node) Left() *Node   { return n.left }
func (n *Node) Right() *Node  { return n.right }
func (n *Node) Parent() *Node { return n.parent }

// IsCond reports whether n is an AND/OR combinator rather than a leaf.
func (n *Node) IsCond() bool {
	return n.kind == KindAnd || n.kind == KindOr
}

// NewVar returns a leaf constraining name to a copy of domain.
func NewVar(name string, domain *rangeset.List) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("variable without a name: %w", ErrInvalidArgument)
	}
	dup, err := rangeset.Copy(domain)
	if err != nil {
		return nil, fmt.Errorf("copy domain of %s: %w", name, err)
	}
	return &Node{kind: KindVar, name: name, domain: dup}, nil
}

// Link makes left and right the children of a new AND or OR node. The
// children are adopted, not copied.
func Link(left, right *Node, kind Kind) (*Node, error) {
	if kind != KindAnd && kind != KindOr {
		return nil, fmt.Errorf("link as %s: %w", kind, ErrInvalidArgument)
	}
	if left == nil || right == nil || left == right {
		return nil, fmt.Errorf("link needs two distinct children: %w", ErrInvalidArgument)
	}
	if left.parent != nil || right.parent != nil {
		return nil, fmt.Errorf("child already has a parent: %w", ErrInvalidArgument)
	}

	n := &Node{kind: kind, left: left, right: right}
	left.parent = n
	right.parent = n
	return n, nil
}

// Copy returns a deep copy of n.
//
// Both combinator copies accept only an OR node, so a tree containing an
// AND node cannot be copied and yields ErrInvalidArgument.
func Copy(n *Node) (*Node, error) {
	if n == nil {
		return nil, ErrInvalidArgument
	}
	switch n.kind {
	case KindVar:
		return copyVar(n)
	case KindAnd:
		return copyCond(n, KindAnd)
	case KindOr:
		return copyCond(n, KindOr)
	}
	return nil, fmt.Errorf("copy %s node: %w", n.kind, ErrInvalidArgument)
}

func copyVar(n *Node) (*Node, error) {
	if n.kind != KindVar {
		return nil, fmt.Errorf("copy %s node as var: %w", n.kind, ErrInvalidArgument)
	}
	return NewVar(n.name, n.domain)
}

func copyCond(n *Node, kind Kind) (*Node, error) {
	if n.kind != KindOr {
		return nil, fmt.Errorf("copy %s node as %s: %w", n.kind, kind, ErrInvalidArgument)
	}

	left, err := Copy(n.left)
	if err != nil {
		return nil, fmt.Errorf("copy left operand: %w", err)
	}
	right, err := Copy(n.right)
	if err != nil {
		Destroy(left)
		return nil, fmt.Errorf("copy right operand: %w", err)
	}

	out, err := Link(left, right, kind)
	if err != nil {
		Destroy(left)
		Destroy(right)
		return nil, err
	}
	return out, nil
}

// VarMerge combines two leaves under kind. Leaves naming the same variable
// collapse into one leaf whose domain is the intersection (AND) or union
// (OR) of both domains; otherwise copies of both leaves are linked under a
// new node.
func VarMerge(left, right *Node, kind Kind) (*Node, error) {
	if left == nil || right == nil || left.kind != KindVar || right.kind != KindVar {
		return nil, fmt.Errorf("merge needs two variables: %w", ErrInvalidArgument)
	}
	if kind != KindAnd && kind != KindOr {
		return nil, fmt.Errorf("merge as %s: %w", kind, ErrInvalidArgument)
	}

	if left.name == right.name {
		var (
			domain *rangeset.List
			err    error
		)
		if kind == KindAnd {
			domain, err = rangeset.Intersect(left.domain, right.domain)
		} else {
			domain, err = rangeset.Union(left.domain, right.domain)
		}
		if err != nil {
			return nil, fmt.Errorf("merge domains of %s: %w", left.name, err)
		}
		return &Node{kind: KindVar, name: left.name, domain: domain}, nil
	}

	leftCopy, err := copyVar(left)
	if err != nil {
		return nil, err
	}
	rightCopy, err := copyVar(right)
	if err != nil {
		Destroy(leftCopy)
		return nil, err
	}
	out, err := Link(leftCopy, rightCopy, kind)
	if err != nil {
		Destroy(leftCopy)
		Destroy(rightCopy)
		return nil, err
	}
	return out, nil
}

// Destroy tears the tree rooted at n down in post-order, releasing every
// domain and child link, and detaches n from its parent.
func Destroy(n *Node) {
	if n == nil {
		return
	}
	if p := n.parent; p != nil {
		if p.left == n {
			p.left = nil
		}
		if p.right == n {
			p.right = nil
		}
	}

	type frame struct {
		node    *Node
		visited bool
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.visited {
			top.visited = true
			node := top.node
			if node.right != nil {
				stack = append(stack, frame{node: node.right})
			}
			if node.left != nil {
				stack = append(stack, frame{node: node.left})
			}
			continue
		}
		node := top.node
		stack = stack[:len(stack)-1]
		node.left = nil
		node.right = nil
		node.domain = nil
		node.parent = nil
	}
}

// String renders the tree one node per line, indented by depth.
func (n *Node) String() string {
	var b strings.Builder
	n.print(&b, 0)
	return b.String()
}

func (n *Node) print(b *strings.Builder, level int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("\t", level))
	switch n.kind {
	case KindVar:
		fmt.Fprintf(b, "[%s] %s\n", n.name, n.domain)
	default:
		fmt.Fprintf(b, "[%s]\n", n.kind)
	}
	n.left.print(b, level+1)
	n.right.print(b, level+1)
}
