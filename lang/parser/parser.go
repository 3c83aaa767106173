// Package parser implements a Pratt parser that transforms a token stream
// into an abstract syntax tree (ast.Program): a registry of per-token-kind
// prefix/infix parse functions and a precedence-climbing expression loop.
package parser

import (
	"fmt"

	"github.com/mna/ember/lang/ast"
	"github.com/mna/ember/lang/scanner"
	"github.com/mna/ember/lang/token"
)

// Parse parses a single chunk of source and returns its AST. The returned
// error, if non-nil, is a scanner.ErrorList.
func Parse(src []byte) (*ast.Program, error) {
	var p parser
	p.init(src)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

// precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // > <
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // fn(x)
	INDEX       // arr[x]
)

var precedences = map[token.Token]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type parser struct {
	s      scanner.Scanner
	errors scanner.ErrorList

	cur  scanner.TokenAndValue
	peek scanner.TokenAndValue

	prefixParseFns map[token.Token]prefixParseFn
	infixParseFns  map[token.Token]infixParseFn
}

func (p *parser) init(src []byte) {
	p.s.Init(src)

	p.prefixParseFns = map[token.Token]prefixParseFn{
		token.IDENT:    p.parseIdent,
		token.INT:      p.parseIntLit,
		token.STRING:   p.parseStringLit,
		token.TRUE:     p.parseBoolLit,
		token.FALSE:    p.parseBoolLit,
		token.BANG:     p.parsePrefixExpr,
		token.MINUS:    p.parsePrefixExpr,
		token.LPAREN:   p.parseGroupedExpr,
		token.IF:       p.parseIfExpr,
		token.FUNCTION: p.parseFunctionLit,
		token.LBRACKET: p.parseArrayLit,
		token.LBRACE:   p.parseHashLit,
	}
	p.infixParseFns = map[token.Token]infixParseFn{
		token.PLUS:     p.parseInfixExpr,
		token.MINUS:    p.parseInfixExpr,
		token.SLASH:    p.parseInfixExpr,
		token.ASTERISK: p.parseInfixExpr,
		token.EQ:       p.parseInfixExpr,
		token.NOT_EQ:   p.parseInfixExpr,
		token.LT:       p.parseInfixExpr,
		token.GT:       p.parseInfixExpr,
		token.LPAREN:   p.parseCallExpr,
		token.LBRACKET: p.parseIndexExpr,
	}

	// prime cur and peek
	p.advance()
	p.advance()
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.s.NextToken()
}

func (p *parser) curIs(tok token.Token) bool  { return p.cur.Token == tok }
func (p *parser) peekIs(tok token.Token) bool { return p.peek.Token == tok }

// expectPeek advances past the peek token if it has the expected kind,
// otherwise it records an error and leaves the cursor unchanged.
func (p *parser) expectPeek(tok token.Token) bool {
	if p.peekIs(tok) {
		p.advance()
		return true
	}
	p.peekError(tok)
	return false
}

func (p *parser) peekError(want token.Token) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", want.GoString(), p.peek.Token.GoString())
	p.errors.Add(p.peek.Pos, msg)
}

func (p *parser) noPrefixParseFnError(tok token.Token) {
	p.errors.Add(p.cur.Pos, fmt.Sprintf("no prefix parse function for %s found", tok.GoString()))
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Token]; ok {
		return prec
	}
	return LOWEST
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Token]; ok {
		return prec
	}
	return LOWEST
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.advance()
	}
	return prog
}
