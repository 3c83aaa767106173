// Package ast defines the abstract syntax tree produced by the parser: a
// small set of statement and expression nodes, with no classes, labels,
// defer/catch or closures.
package ast

import (
	"strings"

	"github.com/mna/ember/lang/token"
)

// Node is implemented by every statement and expression node. Every node
// retains enough of its originating token (literal or start position) to
// reproduce its textual form.
type Node interface {
	// Pos returns the position of the first token belonging to the node.
	Pos() token.Pos
	// String returns a textual rendering of the node, used both for
	// human-readable errors and so that printing and re-parsing a node
	// reproduces a structurally identical tree.
	String() string
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed chunk: an ordered sequence of statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Pos {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}
