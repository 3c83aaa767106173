package eval_test

import (
	"testing"

	"github.com/mna/ember/lang/eval"
	"github.com/mna/ember/lang/types"
	"github.com/stretchr/testify/require"
)

func TestRunSeedScenarios(t *testing.T) {
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
		got, errs := eval.Run([]byte(tt.src))
		require.Empty(t, errs, tt.src)
		require.Equal(t, tt.want, got, tt.src)
	}
}

func TestRunErrorScenarios(t *testing.T) {
	_, errs := eval.Run([]byte("5 + true"))
	require.Equal(t, []string{"type mismatch: INTEGER + BOOLEAN"}, errs)

	_, errs = eval.Run([]byte("foobar"))
	require.Equal(t, []string{"undefined variable: foobar"}, errs)

	_, errs = eval.Run([]byte("fn(x){x}(1, 2)"))
	require.Equal(t, []string{"wrong number of arguments: want=1 got=2"}, errs)
}

func TestRunGlobalRedefinitionAllowed(t *testing.T) {
	got, errs := eval.Run([]byte("let x = 1; let x = 2; x"))
	require.Empty(t, errs)
	require.Equal(t, &types.Int{Value: 2}, got)
}

func TestSessionPersistsGlobals(t *testing.T) {
	s := eval.NewSession()

	_, errs := s.Run([]byte("let x = 1;"))
	require.Empty(t, errs)

	got, errs := s.Run([]byte("x + 1;"))
	require.Empty(t, errs)
	require.Equal(t, &types.Int{Value: 2}, got)
}

func TestPutsBuiltinWritesThroughHook(t *testing.T) {
	var out []string
	prev := types.Puts
	types.Puts = func(s string) { out = append(out, s) }
	defer func() { types.Puts = prev }()

	_, errs := eval.Run([]byte(`puts("hi")`))
	require.Empty(t, errs)
	require.Equal(t, []string{"hi"}, out)
}
