package compiler

import (
	"fmt"
	"sort"

	"github.com/mna/ember/lang/ast"
	"github.com/mna/ember/lang/symtable"
	"github.com/mna/ember/lang/token"
	"github.com/mna/ember/lang/types"
)

// placeholder is the operand value emitted for a jump target that will be
// patched once its destination is known.
const placeholder = 0xFFFF

// EmittedInstruction remembers an opcode and the byte offset it was emitted
// at, so the compiler can look back one instruction for the trailing-POP
// peephole rule.
type EmittedInstruction struct {
	Opcode   Opcode
	Position int
}

// compilationScope holds the in-progress instruction buffer for one
// function body (or the top-level program).
type compilationScope struct {
	instructions        Instructions
	lastInstruction     EmittedInstruction
	previousInstruction EmittedInstruction
}

// Compiler lowers an ast.Program into Bytecode: a single struct accumulating
// a constants pool and a symbol table across a recursive tree-walk of the
// AST, emitting directly into a flat instruction stream as it goes.
type Compiler struct {
	constants []types.Value

	symbolTable *symtable.Table

	scopes     []compilationScope
	scopeIndex int
}

// New creates a Compiler with a fresh global symbol table. Built-in
// functions are defined first, in index order, so OpGetBuiltin operands
// line up with types.Builtins.
func New() *Compiler {
	symbolTable := symtable.NewTable()
	for i, b := range types.Builtins {
		symbolTable.DefineBuiltin(i, b.Name)
	}

	return &Compiler{
		symbolTable: symbolTable,
		scopes:      []compilationScope{{}},
	}
}

// NewWithState creates a Compiler that reuses a symbol table and constants
// pool from a previous compilation, so a REPL-style host can compile
// successive chunks incrementally.
func NewWithState(symbolTable *symtable.Table, constants []types.Value) *Compiler {
	return &Compiler{
		symbolTable: symbolTable,
		constants:   constants,
		scopes:      []compilationScope{{}},
	}
}

// Compile lowers node, emitting into the current scope's instruction
// buffer.
func (c *Compiler) Compile(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Program:
		for _, stmt := range node.Statements {
			if err := c.Compile(stmt); err != nil {
				return err
			}
		}

	case *ast.ExprStmt:
		if err := c.Compile(node.Expression); err != nil {
			return err
		}
		c.emit(OpPop)

	case *ast.BlockStmt:
		for _, stmt := range node.Statements {
			if err := c.Compile(stmt); err != nil {
				return err
			}
		}

	case *ast.LetStmt:
		sym := c.symbolTable.Define(node.Name.Name)
		if err := c.Compile(node.Value); err != nil {
			return err
		}
		if sym.Scope == symtable.Global {
			c.emit(OpSetGlobal, sym.Index)
		} else {
			c.emit(OpSetLocal, sym.Index)
		}

	case *ast.ReturnStmt:
		if node.Value == nil {
			c.emit(OpNull)
		} else if err := c.Compile(node.Value); err != nil {
			return err
		}
		c.emit(OpReturnValue)

	case *ast.Ident:
		sym, ok := c.symbolTable.Resolve(node.Name)
		if !ok {
			return fmt.Errorf("undefined variable: %s", node.Name)
		}
		c.loadSymbol(sym)

	case *ast.IntLit:
		c.emit(OpConstant, c.addConstant(&types.Int{Value: node.Value}))

	case *ast.StringLit:
		c.emit(OpConstant, c.addConstant(&types.String{Value: node.Value}))

	case *ast.BoolLit:
		if node.Value {
			c.emit(OpTrue)
		} else {
			c.emit(OpFalse)
		}

	case *ast.ArrayLit:
		for _, el := range node.Elements {
			if err := c.Compile(el); err != nil {
				return err
			}
		}
		c.emit(OpArray, len(node.Elements))

	case *ast.HashLit:
		pairs := make([]ast.HashPair, len(node.Pairs))
		copy(pairs, node.Pairs)
		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i].Key.String() < pairs[j].Key.String()
		})
		for _, p := range pairs {
			if err := c.Compile(p.Key); err != nil {
				return err
			}
			if err := c.Compile(p.Value); err != nil {
				return err
			}
		}
		c.emit(OpHash, len(pairs)*2)

	case *ast.PrefixExpr:
		if err := c.Compile(node.Right); err != nil {
			return err
		}
		switch node.Operator {
		case token.BANG:
			c.emit(OpBang)
		case token.MINUS:
			c.emit(OpMinus)
		default:
			return fmt.Errorf("unknown prefix operator: %s", node.Operator)
		}

	case *ast.InfixExpr:
		if node.Operator == token.LT {
			// no LT opcode: a < b compiles as b > a.
			if err := c.Compile(node.Right); err != nil {
				return err
			}
			if err := c.Compile(node.Left); err != nil {
				return err
			}
			c.emit(OpGreaterThan)
			return nil
		}

		if err := c.Compile(node.Left); err != nil {
			return err
		}
		if err := c.Compile(node.Right); err != nil {
			return err
		}
		switch node.Operator {
		case token.PLUS:
			c.emit(OpAdd)
		case token.MINUS:
			c.emit(OpSub)
		case token.ASTERISK:
			c.emit(OpMul)
		case token.SLASH:
			c.emit(OpDiv)
		case token.GT:
			c.emit(OpGreaterThan)
		case token.EQ:
			c.emit(OpEqual)
		case token.NOT_EQ:
			c.emit(OpNotEqual)
		default:
			return fmt.Errorf("unknown infix operator: %s", node.Operator)
		}

	case *ast.IfExpr:
		if err := c.Compile(node.Condition); err != nil {
			return err
		}
		jumpNotTruthyPos := c.emit(OpJumpNotTruthy, placeholder)

		if err := c.Compile(node.Consequence); err != nil {
			return err
		}
		if c.lastInstructionIs(OpPop) {
			c.removeLastPop()
		}
		jumpPos := c.emit(OpJump, placeholder)
		c.changeOperand(jumpNotTruthyPos, len(c.currentInstructions()))

		if node.Alternative == nil {
			c.emit(OpNull)
		} else {
			if err := c.Compile(node.Alternative); err != nil {
				return err
			}
			if c.lastInstructionIs(OpPop) {
				c.removeLastPop()
			}
		}
		c.changeOperand(jumpPos, len(c.currentInstructions()))

	case *ast.FunctionLit:
		c.enterScope()

		for _, p := range node.Parameters {
			c.symbolTable.Define(p.Name)
		}

		if err := c.Compile(node.Body); err != nil {
			return err
		}

		if c.lastInstructionIs(OpPop) {
			c.replaceLastPopWithReturn()
		}
		if !c.lastInstructionIs(OpReturnValue) {
			c.emit(OpNull)
			c.emit(OpReturnValue)
		}

		numLocals := c.symbolTable.NumDefinitions()
		instructions := c.leaveScope()

		fn := &types.CompiledFunction{
			Instructions:  instructions,
			NumLocals:     numLocals,
			NumParameters: len(node.Parameters),
		}
		c.emit(OpConstant, c.addConstant(fn))

	case *ast.CallExpr:
		if err := c.Compile(node.Function); err != nil {
			return err
		}
		for _, a := range node.Arguments {
			if err := c.Compile(a); err != nil {
				return err
			}
		}
		c.emit(OpCall, len(node.Arguments))

	case *ast.IndexExpr:
		if err := c.Compile(node.Left); err != nil {
			return err
		}
		if err := c.Compile(node.Index); err != nil {
			return err
		}
		c.emit(OpIndex)

	default:
		return fmt.Errorf("unsupported node type %T", node)
	}
	return nil
}

// Bytecode returns the compiled program.
func (c *Compiler) Bytecode() *Bytecode {
	return &Bytecode{
		Instructions: c.currentInstructions(),
		Constants:    c.constants,
	}
}

func (c *Compiler) loadSymbol(sym symtable.Symbol) {
	switch sym.Scope {
	case symtable.Global:
		c.emit(OpGetGlobal, sym.Index)
	case symtable.Local:
		c.emit(OpGetLocal, sym.Index)
	case symtable.Builtin:
		c.emit(OpGetBuiltin, sym.Index)
	}
}

func (c *Compiler) addConstant(v types.Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

func (c *Compiler) emit(op Opcode, operands ...int) int {
	ins := Make(op, operands...)
	pos := c.addInstruction(ins)

	scope := &c.scopes[c.scopeIndex]
	scope.previousInstruction = scope.lastInstruction
	scope.lastInstruction = EmittedInstruction{Opcode: op, Position: pos}
	return pos
}

func (c *Compiler) addInstruction(ins []byte) int {
	scope := &c.scopes[c.scopeIndex]
	pos := len(scope.instructions)
	scope.instructions = append(scope.instructions, ins...)
	return pos
}

func (c *Compiler) currentInstructions() Instructions {
	return c.scopes[c.scopeIndex].instructions
}

func (c *Compiler) lastInstructionIs(op Opcode) bool {
	if len(c.currentInstructions()) == 0 {
		return false
	}
	return c.scopes[c.scopeIndex].lastInstruction.Opcode == op
}

func (c *Compiler) removeLastPop() {
	scope := &c.scopes[c.scopeIndex]
	scope.instructions = scope.instructions[:scope.lastInstruction.Position]
	scope.lastInstruction = scope.previousInstruction
}

func (c *Compiler) replaceInstruction(pos int, newInstruction []byte) {
	ins := c.currentInstructions()
	copy(ins[pos:], newInstruction)
}

func (c *Compiler) replaceLastPopWithReturn() {
	lastPos := c.scopes[c.scopeIndex].lastInstruction.Position
	c.replaceInstruction(lastPos, Make(OpReturnValue))
	c.scopes[c.scopeIndex].lastInstruction.Opcode = OpReturnValue
}

func (c *Compiler) changeOperand(opPos int, operand int) {
	op := Opcode(c.currentInstructions()[opPos])
	newInstruction := Make(op, operand)
	c.replaceInstruction(opPos, newInstruction)
}

func (c *Compiler) enterScope() {
	c.scopes = append(c.scopes, compilationScope{})
	c.scopeIndex++
	c.symbolTable = symtable.NewEnclosedTable(c.symbolTable)
}

func (c *Compiler) leaveScope() Instructions {
	instructions := c.currentInstructions()
	c.scopes = c.scopes[:len(c.scopes)-1]
	c.scopeIndex--
	c.symbolTable = c.symbolTable.Outer
	return instructions
}
