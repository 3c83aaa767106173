package parser

import (
	"strconv"

	"github.com/mna/ember/lang/ast"
	"github.com/mna/ember/lang/token"
)

func (p *parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.cur.Token]
	if prefix == nil {
		p.noPrefixParseFnError(p.cur.Token)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peek.Token]
		if infix == nil {
			return left
		}
		p.advance()
		left = infix(left)
	}
	return left
}

func (p *parser) parseIdent() ast.Expr {
	return &ast.Ident{Start: p.cur.Pos, Name: p.cur.Lit}
}

func (p *parser) parseIntLit() ast.Expr {
	v, err := strconv.ParseInt(p.cur.Lit, 10, 64)
	if err != nil {
		p.errors.Add(p.cur.Pos, "could not parse "+p.cur.Lit+" as integer")
		return nil
	}
	return &ast.IntLit{Start: p.cur.Pos, Value: v}
}

func (p *parser) parseStringLit() ast.Expr {
	return &ast.StringLit{Start: p.cur.Pos, Value: p.cur.Lit}
}

func (p *parser) parseBoolLit() ast.Expr {
	return &ast.BoolLit{Start: p.cur.Pos, Value: p.curIs(token.TRUE)}
}

func (p *parser) parsePrefixExpr() ast.Expr {
	expr := &ast.PrefixExpr{Start: p.cur.Pos, Operator: p.cur.Token}
	p.advance()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *parser) parseInfixExpr(left ast.Expr) ast.Expr {
	expr := &ast.InfixExpr{Start: p.cur.Pos, Left: left, Operator: p.cur.Token}
	precedence := p.curPrecedence()
	p.advance()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *parser) parseGroupedExpr() ast.Expr {
	p.advance()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *parser) parseIfExpr() ast.Expr {
	expr := &ast.IfExpr{Start: p.cur.Pos}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.advance()
	expr.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockStmt()

	if p.peekIs(token.ELSE) {
		p.advance()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStmt()
	}
	return expr
}

func (p *parser) parseFunctionLit() ast.Expr {
	fn := &ast.FunctionLit{Start: p.cur.Pos}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Parameters = p.parseFunctionParams()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStmt()
	return fn
}

func (p *parser) parseFunctionParams() []*ast.Ident {
	var params []*ast.Ident

	if p.peekIs(token.RPAREN) {
		p.advance()
		return params
	}

	p.advance()
	params = append(params, &ast.Ident{Start: p.cur.Pos, Name: p.cur.Lit})

	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		params = append(params, &ast.Ident{Start: p.cur.Pos, Name: p.cur.Lit})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *parser) parseCallExpr(fn ast.Expr) ast.Expr {
	expr := &ast.CallExpr{Start: p.cur.Pos, Function: fn}
	expr.Arguments = p.parseExprList(token.RPAREN)
	return expr
}

func (p *parser) parseArrayLit() ast.Expr {
	lit := &ast.ArrayLit{Start: p.cur.Pos}
	lit.Elements = p.parseExprList(token.RBRACKET)
	return lit
}

func (p *parser) parseIndexExpr(left ast.Expr) ast.Expr {
	expr := &ast.IndexExpr{Start: p.cur.Pos, Left: left}

	p.advance()
	expr.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return expr
}

func (p *parser) parseHashLit() ast.Expr {
	lit := &ast.HashLit{Start: p.cur.Pos}

	for !p.peekIs(token.RBRACE) {
		p.advance()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.advance()
		value := p.parseExpression(LOWEST)

		lit.Pairs = append(lit.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

// parseExprList parses a comma-separated list of expressions up to (and
// consuming) end.
func (p *parser) parseExprList(end token.Token) []ast.Expr {
	var list []ast.Expr

	if p.peekIs(end) {
		p.advance()
		return list
	}

	p.advance()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}
