// Package codegen implements just enough AST-to-JitModule lowering to
// drive the linker and disassembler end-to-end: integer literals,
// arithmetic expressions, LET assignment to a fixed frame of
// stack-resident variables, and PRINT (via a runtime external call).
// Full statement lowering and the semantic checker that would normally
// precede it are out of scope; this exists only so the linker's
// contract ("consumes a finished JitModule") has a concrete producer.
package codegen

import (
	"fmt"

	"github.com/albanread/fasterbasic/aarch64"
	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/jitmodule"
)

// runtime external symbols a compiled module may call into. These are
// declared, never defined, here — resolving them is the linker's
// caller's job via a SymbolResolver.
const (
	externPrintInt = "fbrt_print_int"
	externPrintStr = "fbrt_print_str"
)

// Compiler lowers a parsed Program into a jitmodule.Module. Each
// Compile call is single-use.
type Compiler struct {
	mod   *jitmodule.Module
	slots map[string]int32 // variable name -> frame-relative byte offset (negative)
	frame int32             // total frame bytes reserved for variables, 16-aligned
	err   error
}

// New returns a Compiler ready to lower one Program.
func New() *Compiler {
	return &Compiler{slots: map[string]int32{}}
}

// Compile lowers prog into a sealed Module, or returns the first
// unsupported-construct error encountered.
func (c *Compiler) Compile(prog *ast.Program) (*jitmodule.Module, error) {
	c.mod = jitmodule.New()
	c.allocateSlots(prog)

	c.mod.DefineSymbol("main")
	c.emitPrologue()

	for _, line := range prog.Lines {
		for _, stmt := range line.Stmts {
			c.mod.AnnotateSource(line.Number)
			c.compileStmt(stmt)
			if c.err != nil {
				return nil, c.err
			}
		}
	}

	c.emitEpilogue()
	c.mod.Seal()
	return c.mod, nil
}

// allocateSlots walks every LET/DIM target once, up front, so the
// frame layout is known before any code is emitted — codegen never
// needs to backpatch the prologue's SUB SP,SP,#frame immediate.
func (c *Compiler) allocateSlots(prog *ast.Program) {
	alloc := func(name string) {
		if _, ok := c.slots[name]; ok {
			return
		}
		c.frame += 8
		c.slots[name] = -c.frame
	}
	var walkStmts func([]ast.Stmt)
	walkStmts = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch v := s.(type) {
			case *ast.LetStmt:
				if id, ok := v.Target.(*ast.Ident); ok {
					alloc(id.Name)
				}
			case *ast.DimStmt:
				for _, e := range v.Entries {
					alloc(e.Name)
				}
			case *ast.ForStmt:
				alloc(v.Var)
				walkStmts(v.Body)
			case *ast.IfStmt:
				walkStmts(v.Then)
				for _, ei := range v.ElseIfs {
					walkStmts(ei.Body)
				}
				walkStmts(v.Else)
			case *ast.WhileStmt:
				walkStmts(v.Body)
			}
		}
	}
	for _, line := range prog.Lines {
		walkStmts(line.Stmts)
	}
	// Round the frame up to a 16-byte boundary, matching AArch64's
	// stack-alignment requirement at every public interface.
	if c.frame%16 != 0 {
		c.frame += 16 - c.frame%16
	}
}

func (c *Compiler) emitPrologue() {
	m := c.mod
	word, _ := aarch64.EmitLoadStorePairOffset(aarch64.PairStore, true, aarch64.FP, aarch64.LR, aarch64.RSP, -16, aarch64.IndexPre, true)
	m.Emit(word)
	// MOV FP, SP must be the ADD #0 form: the ORR form reads index 31 as ZR.
	mov, _ := aarch64.EmitADDImm12(true, aarch64.FP, aarch64.RSP, 0, false)
	m.Emit(mov)
	if c.frame > 0 {
		word, ok := aarch64.EmitSUBImm12(true, aarch64.RSP, aarch64.RSP, uint32(c.frame), false)
		if ok {
			m.Emit(word)
		}
	}
}

func (c *Compiler) emitEpilogue() {
	m := c.mod
	if c.frame > 0 {
		word, ok := aarch64.EmitADDImm12(true, aarch64.RSP, aarch64.RSP, uint32(c.frame), false)
		if ok {
			m.Emit(word)
		}
	}
	word, _ := aarch64.EmitLoadStorePairOffset(aarch64.PairLoad, true, aarch64.FP, aarch64.LR, aarch64.RSP, 16, aarch64.IndexPost, true)
	m.Emit(word)
	m.Emit(aarch64.EmitRET(aarch64.LR))
}

func (c *Compiler) compileStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.LetStmt:
		c.compileExpr(v.Value, aarch64.R0)
		id, ok := v.Target.(*ast.Ident)
		if !ok {
			c.fail("codegen: assignment target must be a simple variable")
			return
		}
		c.storeVar(id.Name, aarch64.R0)
	case *ast.PrintStmt:
		for _, item := range v.Items {
			c.compileExpr(item, aarch64.R0)
			c.emitCall(externPrintInt)
		}
	case *ast.DimStmt:
		// Slots are pre-allocated; DIM itself emits no code.
	case *ast.ExprStmt:
		c.compileExpr(v.X, aarch64.R0)
	default:
		c.fail(fmt.Sprintf("codegen: unsupported statement %T", s))
	}
}

func (c *Compiler) compileExpr(e ast.Expr, dst aarch64.Register) {
	if c.err != nil {
		return
	}
	switch v := e.(type) {
	case *ast.NumberLit:
		for _, w := range aarch64.EmitMOVImmediate(true, dst, uint64(v.Value)) {
			c.mod.Emit(w)
		}
	case *ast.Ident:
		c.loadVar(v.Name, dst)
	case *ast.UnaryExpr:
		c.compileExpr(v.Expr, dst)
		switch v.Op {
		case ast.OpNeg:
			c.mod.Emit(aarch64.EmitSUBRegister(true, dst, aarch64.RZR, aarch64.Reg(dst)))
		case ast.OpNot:
			c.mod.Emit(aarch64.EmitLogicalRegister(aarch64.LogicalEON, true, dst, dst, aarch64.Reg(aarch64.RZR)))
		}
	case *ast.BinaryExpr:
		c.compileBinary(v, dst)
	default:
		c.fail(fmt.Sprintf("codegen: unsupported expression %T", e))
	}
}

// compileBinary evaluates Left into dst, pushes it, evaluates Right
// into dst too, copies it to a scratch register, pops Left back into
// dst, and combines the two. Evaluating Right into dst rather than
// into the scratch register keeps a nested binary expression on the
// right from overwriting the scratch value it depends on. This
// is a plain stack-machine scheme — it never tries to keep values in
// registers across sub-expressions — correct but not allocation-smart,
// which is acceptable for a stub whose job is to exercise the linker,
// not to produce tight code.
func (c *Compiler) compileBinary(v *ast.BinaryExpr, dst aarch64.Register) {
	const scratch = aarch64.R9
	c.compileExpr(v.Left, dst)
	c.pushReg(dst)
	c.compileExpr(v.Right, dst)
	c.mod.Emit(aarch64.EmitMOVRegister(true, scratch, dst))
	c.popReg(dst)

	switch v.Op {
	case ast.OpAdd:
		c.mod.Emit(aarch64.EmitADDRegister(true, dst, dst, aarch64.Reg(scratch)))
	case ast.OpSub:
		c.mod.Emit(aarch64.EmitSUBRegister(true, dst, dst, aarch64.Reg(scratch)))
	case ast.OpMul:
		c.mod.Emit(aarch64.EmitMUL(true, dst, dst, scratch))
	case ast.OpAnd:
		c.mod.Emit(aarch64.EmitLogicalRegister(aarch64.LogicalAND, true, dst, dst, aarch64.Reg(scratch)))
	case ast.OpOr:
		c.mod.Emit(aarch64.EmitLogicalRegister(aarch64.LogicalORR, true, dst, dst, aarch64.Reg(scratch)))
	case ast.OpXor:
		c.mod.Emit(aarch64.EmitLogicalRegister(aarch64.LogicalEOR, true, dst, dst, aarch64.Reg(scratch)))
	default:
		c.fail(fmt.Sprintf("codegen: unsupported binary operator %v", v.Op))
	}
}

func (c *Compiler) pushReg(r aarch64.Register) {
	word, _ := aarch64.EmitLoadStoreIndexed(aarch64.MemStore, 3, r, aarch64.RSP, -16, aarch64.IndexPre)
	c.mod.Emit(word)
}

func (c *Compiler) popReg(r aarch64.Register) {
	word, _ := aarch64.EmitLoadStoreIndexed(aarch64.MemLoadUnsigned, 3, r, aarch64.RSP, 16, aarch64.IndexPost)
	c.mod.Emit(word)
}

func (c *Compiler) loadVar(name string, dst aarch64.Register) {
	off, ok := c.slots[name]
	if !ok {
		c.fail(fmt.Sprintf("codegen: undeclared variable %q", name))
		return
	}
	word, ok := aarch64.EmitLoadStoreUnscaledImm(aarch64.MemLoadUnsigned, 3, dst, aarch64.FP, int64(off))
	if !ok {
		c.fail(fmt.Sprintf("codegen: variable %q frame offset out of range", name))
		return
	}
	c.mod.Emit(word)
}

func (c *Compiler) storeVar(name string, src aarch64.Register) {
	off, ok := c.slots[name]
	if !ok {
		c.fail(fmt.Sprintf("codegen: undeclared variable %q", name))
		return
	}
	word, ok := aarch64.EmitLoadStoreUnscaledImm(aarch64.MemStore, 3, src, aarch64.FP, int64(off))
	if !ok {
		c.fail(fmt.Sprintf("codegen: variable %q frame offset out of range", name))
		return
	}
	c.mod.Emit(word)
}

func (c *Compiler) emitCall(name string) {
	word, _ := aarch64.EmitBL(0) // displacement patched in by the linker via ExtCalls
	off := c.mod.Emit(word)
	c.mod.RecordExtCall(name, off)
}

func (c *Compiler) fail(msg string) {
	if c.err == nil {
		c.err = fmt.Errorf("%s", msg)
	}
}
