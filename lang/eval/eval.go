// Package eval wires the scanner, parser, compiler and machine into a
// single driver entry point for running a chunk of source end to end.
package eval

import (
	"fmt"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/machine"
	"github.com/mna/ember/lang/parser"
	"github.com/mna/ember/lang/scanner"
	"github.com/mna/ember/lang/symtable"
	"github.com/mna/ember/lang/types"
)

func init() {
	types.Puts = func(s string) { fmt.Println(s) }
}

// Run executes source end-to-end and returns the final popped value along
// with any accumulated error messages. A non-empty error list means the
// pipeline halted before (or during) execution; Value is nil in that case.
func Run(source []byte) (types.Value, []string) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, errorMessages(err)
	}

	c := compiler.New()
	if err := c.Compile(prog); err != nil {
		return nil, []string{err.Error()}
	}

	vm := machine.New(c.Bytecode())
	if err := vm.Run(); err != nil {
		return nil, []string{err.Error()}
	}
	return vm.LastPoppedStackElem(), nil
}

// Session is a reusable pipeline state for hosts, such as a REPL, that need
// to compile and run successive chunks of source while persisting global
// bindings and the constant pool between them.
type Session struct {
	symbolTable *symtable.Table
	constants   []types.Value
	globals     []types.Value
}

// NewSession creates an empty incremental evaluation session.
func NewSession() *Session {
	symbolTable := symtable.NewTable()
	for i, b := range types.Builtins {
		symbolTable.DefineBuiltin(i, b.Name)
	}
	return &Session{symbolTable: symbolTable}
}

// Run compiles and executes source against the session's accumulated
// globals and constants, persisting any new bindings for subsequent calls.
func (s *Session) Run(source []byte) (types.Value, []string) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, errorMessages(err)
	}

	c := compiler.NewWithState(s.symbolTable, s.constants)
	if err := c.Compile(prog); err != nil {
		return nil, []string{err.Error()}
	}
	bc := c.Bytecode()
	s.constants = bc.Constants

	vm := machine.NewWithGlobalsStore(bc, s.ensureGlobals())
	if err := vm.Run(); err != nil {
		return nil, []string{err.Error()}
	}
	return vm.LastPoppedStackElem(), nil
}

func (s *Session) ensureGlobals() []types.Value {
	if s.globals == nil {
		s.globals = make([]types.Value, 65536)
	}
	return s.globals
}

// errorMessages expands a scanner.ErrorList into one message per entry, so a
// host can display every accumulated parse error rather than just the first.
func errorMessages(err error) []string {
	if list, ok := err.(scanner.ErrorList); ok {
		msgs := make([]string, len(list))
		for i, e := range list {
			msgs[i] = e.Error()
		}
		return msgs
	}
	return []string{err.Error()}
}
