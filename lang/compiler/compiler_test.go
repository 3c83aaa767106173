package compiler_test

import (
	"testing"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/parser"
	"github.com/mna/ember/lang/types"
	"github.com/stretchr/testify/require"
)

func concat(chunks ...compiler.Instructions) compiler.Instructions {
	var out compiler.Instructions
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func compileSrc(t *testing.T, src string) *compiler.Bytecode {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)

	c := compiler.New()
	require.NoError(t, c.Compile(prog))
	return c.Bytecode()
}

func TestIntegerArithmetic(t *testing.T) {
	bc := compileSrc(t, "1 + 2")

	want := concat(
		compiler.Make(compiler.OpConstant, 0),
		compiler.Make(compiler.OpConstant, 1),
		compiler.Make(compiler.OpAdd),
		compiler.Make(compiler.OpPop),
	)
	require.Equal(t, want, bc.Instructions)
	require.Equal(t, []types.Value{&types.Int{Value: 1}, &types.Int{Value: 2}}, bc.Constants)
}

func TestLessThanSwapsOperands(t *testing.T) {
	bc := compileSrc(t, "1 < 2")

	want := concat(
		compiler.Make(compiler.OpConstant, 0), // 2
		compiler.Make(compiler.OpConstant, 1), // 1
		compiler.Make(compiler.OpGreaterThan),
		compiler.Make(compiler.OpPop),
	)
	require.Equal(t, want, bc.Instructions)
	require.Equal(t, []types.Value{&types.Int{Value: 2}, &types.Int{Value: 1}}, bc.Constants)
}

func TestGlobalLetStatements(t *testing.T) {
	bc := compileSrc(t, "let one = 1; let two = 2;")

	want := concat(
		compiler.Make(compiler.OpConstant, 0),
		compiler.Make(compiler.OpSetGlobal, 0),
		compiler.Make(compiler.OpConstant, 1),
		compiler.Make(compiler.OpSetGlobal, 1),
	)
	require.Equal(t, want, bc.Instructions)
}

func TestConditionalsNoTrailingPop(t *testing.T) {
	bc := compileSrc(t, "if (true) { 10 }; 3333;")

	want := concat(
		compiler.Make(compiler.OpTrue),
		compiler.Make(compiler.OpJumpNotTruthy, 10),
		compiler.Make(compiler.OpConstant, 0),
		compiler.Make(compiler.OpJump, 11),
		compiler.Make(compiler.OpNull),
		compiler.Make(compiler.OpPop),
		compiler.Make(compiler.OpConstant, 1),
		compiler.Make(compiler.OpPop),
	)
	require.Equal(t, want, bc.Instructions)
}

func TestFunctionBodyUsesReturnValue(t *testing.T) {
	bc := compileSrc(t, "fn() { 5 + 10 }")
	require.Len(t, bc.Constants, 3)

	fn, ok := bc.Constants[2].(*types.CompiledFunction)
	require.True(t, ok)

	want := concat(
		compiler.Make(compiler.OpConstant, 0),
		compiler.Make(compiler.OpConstant, 1),
		compiler.Make(compiler.OpAdd),
		compiler.Make(compiler.OpReturnValue),
	)
	require.Equal(t, compiler.Instructions(want), compiler.Instructions(fn.Instructions))
}

func TestCompilerError(t *testing.T) {
	prog, err := parser.Parse([]byte("foobar"))
	require.NoError(t, err)

	c := compiler.New()
	err = c.Compile(prog)
	require.EqualError(t, err, "undefined variable: foobar")
}

func TestHashLiteralKeysAreSorted(t *testing.T) {
	bc := compileSrc(t, `{"b": 2, "a": 1}`)

	want := concat(
		compiler.Make(compiler.OpConstant, 0), // "a"
		compiler.Make(compiler.OpConstant, 1), // 1
		compiler.Make(compiler.OpConstant, 2), // "b"
		compiler.Make(compiler.OpConstant, 3), // 2
		compiler.Make(compiler.OpHash, 4),
		compiler.Make(compiler.OpPop),
	)
	require.Equal(t, want, bc.Instructions)
}
