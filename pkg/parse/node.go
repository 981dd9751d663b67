// Package parse implements a tolerant recursive-descent parser for the
// subset of shell syntax the completion engine needs to reason about:
// pipelines of statements, command decorations, redirections, command
// substitutions, comments and the handful of primary word shapes (bareword,
// single- and double-quoted, output capture). It builds a hybrid
// AST/parse-tree the way the teacher's own language parser does: every node
// keeps the exact source range and text it was built from, in addition to
// whatever fields give it semantic structure, so that a completer can always
// recover "what text is here" without re-slicing the source by hand.
//
// This is intentionally not a full shell-language grammar: control flow,
// function definitions and quoting edge cases that do not affect where the
// cursor can complete something are out of scope.
package parse

import "github.com/vially/fish-shell/pkg/diag"

// Node is implemented by every node in a parse tree.
type Node interface {
	diag.Ranger
	// Children returns the node's children, in source order.
	Children() []Node
	// SourceText returns the exact source text the node was parsed from.
	SourceText() string
	n() *node
}

// node is embedded by every concrete node type and provides the common
// bookkeeping (range, source text, parent/children links).
type node struct {
	diag.Ranging
	sourceText string
	parent     Node
	children   []Node
}

func (n *node) n() *node               { return n }
func (n *node) SourceText() string     { return n.sourceText }
func (n *node) Children() []Node       { return n.children }
func (n *node) addChild(ch Node)       { n.children = append(n.children, ch) }

// Parent returns the parent of n within the tree it was parsed in, or nil if
// n is the root.
func Parent(n Node) Node { return n.n().parent }

// Children returns the children of n. It is a free function, mirroring
// Parent, so that callers do not need n to be addressable.
func Children(n Node) []Node { return n.Children() }
