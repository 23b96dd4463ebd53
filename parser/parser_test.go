package parser

import (
	"testing"

	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New(src, "test.bas").TokenizeAll()
	prog, errs := Parse(toks)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs.Errors)
	}
	return prog
}

// Multiplication binds tighter than addition, so `2 + 3 * 4` must parse
// as `+` with a `*` on its right, never the reverse.
func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	prog := mustParse(t, "PRINT 2 + 3 * 4\n")
	stmt, ok := prog.Lines[0].Stmts[0].(*ast.PrintStmt)
	if !ok || len(stmt.Items) != 1 {
		t.Fatalf("expected a single-item PRINT, got %#v", prog.Lines[0].Stmts[0])
	}
	top, ok := stmt.Items[0].(*ast.BinaryExpr)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %#v", stmt.Items[0])
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpMul {
		t.Fatalf("expected + to carry * on its right, got %#v", top.Right)
	}
	if _, ok := top.Left.(*ast.NumberLit); !ok {
		t.Fatalf("expected + to carry a plain literal on its left, got %#v", top.Left)
	}
}

// prescan must finish before the main parse begins: a FUNCTION used
// before its own declaration is already recorded as a user function
// when New returns, and a SUB is recorded in the separate sub set.
func TestPrescanSeesForwardAndBackwardDeclarations(t *testing.T) {
	src := "PRINT Later(1)\nFUNCTION Later(x)\nRETURN x\nENDFUNCTION\nSUB Earlier()\nENDSUB\n"
	toks := lexer.New(src, "test.bas").TokenizeAll()
	p := New(toks)
	if !p.IsUserFunction("Later") {
		t.Error("prescan should have recorded Later as a user function before parsing its first use")
	}
	if !p.IsUserSub("Earlier") {
		t.Error("prescan should have recorded Earlier as a user sub")
	}
	if p.IsUserFunction("Earlier") || p.IsUserSub("Later") {
		t.Error("prescan should not cross-classify a SUB as a FUNCTION or vice versa")
	}
}

func TestParseIfBlockElseIf(t *testing.T) {
	prog := mustParse(t, "IF X > 0 THEN\nPRINT 1\nELSEIF X < 0 THEN\nPRINT 2\nELSE\nPRINT 3\nENDIF\n")
	ifs, ok := prog.Lines[0].Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an IfStmt, got %#v", prog.Lines[0].Stmts[0])
	}
	if len(ifs.ElseIfs) != 1 || len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("unexpected IfStmt shape: %+v", ifs)
	}
}
