package ast

import (
	"strconv"
	"strings"

	"github.com/mna/ember/lang/token"
)

type (
	// Ident is an identifier reference.
	Ident struct {
		Start token.Pos
		Name  string
	}

	// IntLit is an integer literal.
	IntLit struct {
		Start token.Pos
		Value int64
	}

	// BoolLit is a true/false literal.
	BoolLit struct {
		Start token.Pos
		Value bool
	}

	// StringLit is a double-quoted string literal.
	StringLit struct {
		Start token.Pos
		Value string
	}

	// ArrayLit is a "[elem, elem, ...]" literal.
	ArrayLit struct {
		Start    token.Pos
		Elements []Expr
	}

	// HashPair is a single "key: value" pair of a HashLit, in source order.
	HashPair struct {
		Key   Expr
		Value Expr
	}

	// HashLit is a "{key: value, ...}" literal.
	HashLit struct {
		Start token.Pos
		Pairs []HashPair
	}

	// PrefixExpr is a unary "<op><right>" expression. Operator is BANG or
	// MINUS.
	PrefixExpr struct {
		Start    token.Pos
		Operator token.Token
		Right    Expr
	}

	// InfixExpr is a binary "<left> <op> <right>" expression.
	InfixExpr struct {
		Start    token.Pos
		Left     Expr
		Operator token.Token
		Right    Expr
	}

	// IfExpr is an "if (<cond>) { ... } [else { ... }]" expression.
	IfExpr struct {
		Start       token.Pos
		Condition   Expr
		Consequence *BlockStmt
		Alternative *BlockStmt // nil when no else clause
	}

	// FunctionLit is a "fn(<params>) { <body> }" expression.
	FunctionLit struct {
		Start      token.Pos
		Parameters []*Ident
		Body       *BlockStmt
	}

	// CallExpr is a "<fn>(<args>)" call expression.
	CallExpr struct {
		Start     token.Pos
		Function  Expr
		Arguments []Expr
	}

	// IndexExpr is a "<left>[<index>]" expression.
	IndexExpr struct {
		Start token.Pos
		Left  Expr
		Index Expr
	}
)

func (e *Ident) Pos() token.Pos       { return e.Start }
func (e *IntLit) Pos() token.Pos      { return e.Start }
func (e *BoolLit) Pos() token.Pos     { return e.Start }
func (e *StringLit) Pos() token.Pos   { return e.Start }
func (e *ArrayLit) Pos() token.Pos    { return e.Start }
func (e *HashLit) Pos() token.Pos     { return e.Start }
func (e *PrefixExpr) Pos() token.Pos  { return e.Start }
func (e *InfixExpr) Pos() token.Pos   { return e.Start }
func (e *IfExpr) Pos() token.Pos      { return e.Start }
func (e *FunctionLit) Pos() token.Pos { return e.Start }
func (e *CallExpr) Pos() token.Pos    { return e.Start }
func (e *IndexExpr) Pos() token.Pos   { return e.Start }

func (e *Ident) exprNode()       {}
func (e *IntLit) exprNode()      {}
func (e *BoolLit) exprNode()     {}
func (e *StringLit) exprNode()   {}
func (e *ArrayLit) exprNode()    {}
func (e *HashLit) exprNode()     {}
func (e *PrefixExpr) exprNode()  {}
func (e *InfixExpr) exprNode()   {}
func (e *IfExpr) exprNode()      {}
func (e *FunctionLit) exprNode() {}
func (e *CallExpr) exprNode()    {}
func (e *IndexExpr) exprNode()   {}

func (e *Ident) String() string     { return e.Name }
func (e *IntLit) String() string    { return strconv.FormatInt(e.Value, 10) }
func (e *BoolLit) String() string   { return strconv.FormatBool(e.Value) }

// String wraps the raw literal value in quotes without escaping, mirroring
// the scanner's lack of escape processing: a value containing a '"' cannot
// round-trip, since the language has no way to escape one inside a string
// literal.
func (e *StringLit) String() string { return `"` + e.Value + `"` }

func (e *ArrayLit) String() string {
	elems := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = el.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (e *HashLit) String() string {
	pairs := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		pairs[i] = p.Key.String() + ":" + p.Value.String()
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func (e *PrefixExpr) String() string {
	return "(" + e.Operator.String() + e.Right.String() + ")"
}

func (e *InfixExpr) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(e.Left.String())
	sb.WriteString(" ")
	sb.WriteString(e.Operator.String())
	sb.WriteString(" ")
	sb.WriteString(e.Right.String())
	sb.WriteString(")")
	return sb.String()
}

func (e *IfExpr) String() string {
	var sb strings.Builder
	sb.WriteString("if (")
	sb.WriteString(e.Condition.String())
	sb.WriteString(") ")
	sb.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		sb.WriteString("else ")
		sb.WriteString(e.Alternative.String())
	}
	return sb.String()
}

func (e *FunctionLit) String() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.String()
	}
	var sb strings.Builder
	sb.WriteString("fn(")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString(") ")
	sb.WriteString(e.Body.String())
	return sb.String()
}

func (e *CallExpr) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	var sb strings.Builder
	sb.WriteString(e.Function.String())
	sb.WriteString("(")
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteString(")")
	return sb.String()
}

func (e *IndexExpr) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(e.Left.String())
	sb.WriteString("[")
	sb.WriteString(e.Index.String())
	sb.WriteString("])")
	return sb.String()
}
