package ast

import "testing"

func TestPrintDimRoundTripsEntries(t *testing.T) {
	prog := &Program{Lines: []Line{
		{Number: 10, Stmts: []Stmt{&DimStmt{Entries: []DimEntry{
			{Name: "A", Type: "INTEGER"},
			{Name: "B", Dims: []Expr{&NumberLit{Value: 10}}},
		}}}},
	}}
	out := Print(prog)
	want := "10 DIM A AS INTEGER, B(10)\n"
	if out != want {
		t.Errorf("Print(DIM) = %q, want %q", out, want)
	}
}

func TestPrintSelectCaseShape(t *testing.T) {
	prog := &Program{Lines: []Line{
		{Number: 10, Stmts: []Stmt{&SelectCaseStmt{
			Subject: &Ident{Name: "X"},
			Cases: []CaseClause{
				{Values: []Expr{&NumberLit{Value: 1}}, Body: []Stmt{&PrintStmt{Items: []Expr{&NumberLit{Value: 1}}}}},
				{IsElse: true, Body: []Stmt{&PrintStmt{Items: []Expr{&NumberLit{Value: 0}}}}},
			},
		}}}},
	}
	out := Print(prog)
	want := "10 SELECT CASE X\nCASE 1\n  PRINT 1\nCASE ELSE\n  PRINT 0\nENDSELECT\n"
	if out != want {
		t.Errorf("Print(SELECT CASE) = %q, want %q", out, want)
	}
}

// A block IF/ELSE prints in the block layout the parser accepts
// (THEN at line end, indented bodies, ELSE and ENDIF on their own
// lines). The test compares the printed text only; it does not
// re-parse it.
func TestPrintIfRoundTripsShape(t *testing.T) {
	original := &IfStmt{
		Cond: &BinaryExpr{Op: OpGt, Left: &Ident{Name: "X"}, Right: &NumberLit{Value: 0}},
		Then: []Stmt{&LetStmt{Target: &Ident{Name: "Y"}, Value: &NumberLit{Value: 1}}},
		Else: []Stmt{&LetStmt{Target: &Ident{Name: "Y"}, Value: &NumberLit{Value: 2}}},
	}
	text := printStmt(original)
	want := "IF X > 0 THEN\n  Y = 1\nELSE\n  Y = 2\nENDIF"
	if text != want {
		t.Errorf("printIf shape = %q, want %q", text, want)
	}
}
