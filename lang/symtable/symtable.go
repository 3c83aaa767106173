// Package symtable tracks name bindings during compilation: one of three
// scopes (Global, Local, Builtin). There is no Cell/Free scope, since ember
// has no closures. The table is consulted directly by the compiler as it
// emits code, rather than through a separate pre-compile resolver pass.
package symtable

import "fmt"

// Scope indicates where a symbol's value lives at runtime.
type Scope uint8

const (
	// Global symbols live in the VM's global slot vector.
	Global Scope = iota
	// Local symbols live on the shared value stack, relative to the current
	// call frame's base pointer.
	Local
	// Builtin symbols refer to one of the fixed built-in functions.
	Builtin
)

var scopeNames = [...]string{
	Global:  "global",
	Local:   "local",
	Builtin: "builtin",
}

func (s Scope) String() string {
	if int(s) >= len(scopeNames) {
		return fmt.Sprintf("<invalid scope %d>", s)
	}
	return scopeNames[s]
}

// Symbol records where a name resolves to.
type Symbol struct {
	Name  string
	Scope Scope
	Index int
}

// Table maps names to symbols for a single lexical scope, chained to an
// optional outer (enclosing function) scope.
type Table struct {
	Outer *Table

	store          map[string]Symbol
	numDefinitions int
}

// NewTable creates a top-level (global) symbol table.
func NewTable() *Table {
	return &Table{store: make(map[string]Symbol)}
}

// NewEnclosedTable creates a symbol table for a nested function scope, whose
// lookups fall back to outer when a name isn't found locally.
func NewEnclosedTable(outer *Table) *Table {
	return &Table{Outer: outer, store: make(map[string]Symbol)}
}

// Define binds name in this table. At the top-level table, this produces a
// Global symbol; otherwise a Local one.
func (t *Table) Define(name string) Symbol {
	sym := Symbol{Name: name, Index: t.numDefinitions}
	if t.Outer == nil {
		sym.Scope = Global
	} else {
		sym.Scope = Local
	}
	t.store[name] = sym
	t.numDefinitions++
	return sym
}

// DefineBuiltin binds name to a Builtin symbol at the given built-in index.
// Builtins are defined once, in the outermost table, before compilation of
// user code begins.
func (t *Table) DefineBuiltin(index int, name string) Symbol {
	sym := Symbol{Name: name, Scope: Builtin, Index: index}
	t.store[name] = sym
	return sym
}

// Resolve looks up name in this table, falling back to enclosing tables.
func (t *Table) Resolve(name string) (Symbol, bool) {
	sym, ok := t.store[name]
	if !ok && t.Outer != nil {
		return t.Outer.Resolve(name)
	}
	return sym, ok
}

// NumDefinitions reports how many names have been Define'd directly in this
// table (not counting builtins or outer scopes).
func (t *Table) NumDefinitions() int {
	return t.numDefinitions
}
