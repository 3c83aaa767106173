package parser

import (
	"github.com/mna/ember/lang/ast"
	"github.com/mna/ember/lang/token"
)

func (p *parser) parseStatement() ast.Stmt {
	switch p.cur.Token {
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseLetStmt() ast.Stmt {
	stmt := &ast.LetStmt{Start: p.cur.Pos}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Ident{Start: p.cur.Pos, Name: p.cur.Lit}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.advance()

	stmt.Value = p.parseExpression(LOWEST)

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}
	return stmt
}

func (p *parser) parseReturnStmt() ast.Stmt {
	stmt := &ast.ReturnStmt{Start: p.cur.Pos}

	p.advance()

	if !p.curIs(token.SEMICOLON) {
		stmt.Value = p.parseExpression(LOWEST)
	}

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}
	return stmt
}

func (p *parser) parseExprStmt() ast.Stmt {
	stmt := &ast.ExprStmt{Start: p.cur.Pos}
	stmt.Expression = p.parseExpression(LOWEST)

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}
	return stmt
}

func (p *parser) parseBlockStmt() *ast.BlockStmt {
	block := &ast.BlockStmt{Start: p.cur.Pos}

	p.advance()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.advance()
	}
	return block
}
