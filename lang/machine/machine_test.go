package machine_test

import (
	"testing"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/machine"
	"github.com/mna/ember/lang/parser"
	"github.com/mna/ember/lang/types"
	"github.com/stretchr/testify/require"
)

func runSrc(t *testing.T, src string) types.Value {
	t.Helper()

	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)

	c := compiler.New()
	require.NoError(t, c.Compile(prog))

	vm := machine.New(c.Bytecode())
	require.NoError(t, vm.Run())
	return vm.LastPoppedStackElem()
}

func TestSeedScenarios(t *testing.T) {
	tests := []struct {
		src  string
		want types.Value
	}{
		{"1 + 2 * 3", &types.Int{Value: 7}},
		{"let a = 5; let b = a * 2; b + 1", &types.Int{Value: 11}},
		{"if (10 > 1) { if (10 > 1) { return 10; } return 1; }", &types.Int{Value: 10}},
		{"let add = fn(a, b) { a + b }; add(2, add(3, 4))", &types.Int{Value: 9}},
		{"let a = [1, 2, 3]; a[1] + len(a)", &types.Int{Value: 5}},
		{`let h = {"one": 1, "two": 2}; h["two"]`, &types.Int{Value: 2}},
		{"!!5", types.True},
		{"fn(){}()", types.NullValue},
	}

	for _, tt := range tests {
		got := runSrc(t, tt.src)
		require.Equal(t, tt.want, got, tt.src)
	}
}

func TestTypeMismatchError(t *testing.T) {
	prog, err := parser.Parse([]byte("5 + true"))
	require.NoError(t, err)

	c := compiler.New()
	require.NoError(t, c.Compile(prog))

	vm := machine.New(c.Bytecode())
	err = vm.Run()
	require.EqualError(t, err, "type mismatch: INTEGER + BOOLEAN")
}

func TestWrongNumberOfArguments(t *testing.T) {
	prog, err := parser.Parse([]byte("fn(x){x}(1, 2)"))
	require.NoError(t, err)

	c := compiler.New()
	require.NoError(t, c.Compile(prog))

	vm := machine.New(c.Bytecode())
	err = vm.Run()
	require.EqualError(t, err, "wrong number of arguments: want=1 got=2")
}

func TestArrayIndexOutOfRange(t *testing.T) {
	require.Equal(t, types.NullValue, runSrc(t, "[1, 2, 3][10]"))
	require.Equal(t, types.NullValue, runSrc(t, "[1, 2, 3][-1]"))
}

func TestHashMissingKey(t *testing.T) {
	require.Equal(t, types.NullValue, runSrc(t, `{"foo": 5}["bar"]`))
}

func TestUnusableHashKey(t *testing.T) {
	prog, err := parser.Parse([]byte(`{"name": "ember"}[fn(x){x}]`))
	require.NoError(t, err)

	c := compiler.New()
	require.NoError(t, c.Compile(prog))

	vm := machine.New(c.Bytecode())
	err = vm.Run()
	require.EqualError(t, err, "unusable as hash key: COMPILED_FUNCTION")
}

func TestGlobalLetOverwriteAllowed(t *testing.T) {
	require.Equal(t, &types.Int{Value: 2}, runSrc(t, "let x = 1; let x = 2; x"))
}

func TestBuiltinFunctions(t *testing.T) {
	require.Equal(t, &types.Int{Value: 3}, runSrc(t, `len("abc")`))
	require.Equal(t, &types.Int{Value: 1}, runSrc(t, "first([1, 2, 3])"))
	require.Equal(t, &types.Int{Value: 3}, runSrc(t, "last([1, 2, 3])"))
	require.Equal(t, &types.Array{Elements: []types.Value{&types.Int{Value: 2}, &types.Int{Value: 3}}}, runSrc(t, "rest([1, 2, 3])"))
	require.Equal(t, &types.Array{Elements: []types.Value{&types.Int{Value: 1}, &types.Int{Value: 2}}}, runSrc(t, "push([1], 2)"))
}
