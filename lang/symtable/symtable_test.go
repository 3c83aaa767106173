package symtable_test

import (
	"testing"

	"github.com/mna/ember/lang/symtable"
	"github.com/stretchr/testify/require"
)

func TestDefineResolveGlobal(t *testing.T) {
	global := symtable.NewTable()
	a := global.Define("a")
	b := global.Define("b")

	require.Equal(t, symtable.Symbol{Name: "a", Scope: symtable.Global, Index: 0}, a)
	require.Equal(t, symtable.Symbol{Name: "b", Scope: symtable.Global, Index: 1}, b)

	got, ok := global.Resolve("a")
	require.True(t, ok)
	require.Equal(t, a, got)
}

func TestResolveLocalFallsBackToGlobal(t *testing.T) {
	global := symtable.NewTable()
	global.Define("a")

	local := symtable.NewEnclosedTable(global)
	local.Define("b")

	got, ok := local.Resolve("a")
	require.True(t, ok)
	require.Equal(t, symtable.Global, got.Scope)

	got, ok = local.Resolve("b")
	require.True(t, ok)
	require.Equal(t, symtable.Local, got.Scope)
}

func TestResolveBuiltin(t *testing.T) {
	global := symtable.NewTable()
	global.DefineBuiltin(0, "len")

	local := symtable.NewEnclosedTable(global)

	got, ok := local.Resolve("len")
	require.True(t, ok)
	require.Equal(t, symtable.Symbol{Name: "len", Scope: symtable.Builtin, Index: 0}, got)
}

func TestResolveUnknown(t *testing.T) {
	global := symtable.NewTable()
	_, ok := global.Resolve("nope")
	require.False(t, ok)
}
