package parser_test

import (
	"testing"

	"github.com/mna/ember/lang/ast"
	"github.com/mna/ember/lang/parser"
	"github.com/stretchr/testify/require"
)

func TestLetStatements(t *testing.T) {
	src := `
let x = 5;
let y = true;
let foobar = y;
`
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	wantNames := []string{"x", "y", "foobar"}
	for i, name := range wantNames {
		stmt, ok := prog.Statements[i].(*ast.LetStmt)
		require.Truef(t, ok, "statement %d is not a LetStmt", i)
		require.Equal(t, name, stmt.Name.Name)
	}
}

func TestReturnStatements(t *testing.T) {
	src := `
return 5;
return true;
return;
`
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	for i, stmt := range prog.Statements {
		_, ok := stmt.(*ast.ReturnStmt)
		require.Truef(t, ok, "statement %d is not a ReturnStmt", i)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-a * b", "((-a) * b);"},
		{"!-a", "(!(-a));"},
		{"a + b + c", "((a + b) + c);"},
		{"a + b - c", "((a + b) - c);"},
		{"a * b * c", "((a * b) * c);"},
		{"a * b / c", "((a * b) / c);"},
		{"a + b / c", "(a + (b / c));"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f);"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4));"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)));"},
		{"(5 + 5) * 2", "((5 + 5) * 2);"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d);"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d);"},
	}

	for _, tt := range tests {
		prog, err := parser.Parse([]byte(tt.src))
		require.NoError(t, err)
		require.Equal(t, tt.want, prog.String())
	}
}

func TestIfExpression(t *testing.T) {
	prog, err := parser.Parse([]byte(`if (x < y) { x } else { y }`))
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	stmt := prog.Statements[0].(*ast.ExprStmt)
	ifExpr, ok := stmt.Expression.(*ast.IfExpr)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Consequence)
	require.NotNil(t, ifExpr.Alternative)
}

func TestFunctionLiteralParams(t *testing.T) {
	tests := []struct {
		src    string
		params []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		prog, err := parser.Parse([]byte(tt.src))
		require.NoError(t, err)

		stmt := prog.Statements[0].(*ast.ExprStmt)
		fn := stmt.Expression.(*ast.FunctionLit)
		require.Len(t, fn.Parameters, len(tt.params))
		for i, name := range tt.params {
			require.Equal(t, name, fn.Parameters[i].Name)
		}
	}
}

func TestParseErrorsAreRecorded(t *testing.T) {
	_, err := parser.Parse([]byte(`let x 5;`))
	require.Error(t, err)
}

func TestHashLiteral(t *testing.T) {
	prog, err := parser.Parse([]byte(`{"one": 1, "two": 2}`))
	require.NoError(t, err)

	stmt := prog.Statements[0].(*ast.ExprStmt)
	hash := stmt.Expression.(*ast.HashLit)
	require.Len(t, hash.Pairs, 2)
}
