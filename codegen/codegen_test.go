package codegen

import (
	"testing"

	"github.com/albanread/fasterbasic/ast"
	"github.com/albanread/fasterbasic/disasm"
	"github.com/albanread/fasterbasic/lexer"
	"github.com/albanread/fasterbasic/linker"
	"github.com/albanread/fasterbasic/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New(src, "test.bas").TokenizeAll()
	prog, errs := parser.Parse(toks)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs.Errors)
	}
	return prog
}

func TestCompileLetAndPrint(t *testing.T) {
	prog := parseProgram(t, "LET X = 1 + 2 * 3\nPRINT X\n")

	mod, err := New().Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(mod.ExtCalls) != 1 || mod.ExtCalls[0].Name != externPrintInt {
		t.Fatalf("expected one fbrt_print_int ext call, got %+v", mod.ExtCalls)
	}
	if len(mod.Code)%4 != 0 {
		t.Fatalf("code buffer length %d not word-aligned", len(mod.Code))
	}
}

// TestCompileAndLinkEndToEnd drives codegen, linker.Link, and
// disasm.Listing over the same module: compile, resolve externs, link
// into a synthetic region, and render a listing that cross-checks the
// extern BL against its stub. (fbc's -S lists the unlinked module.)
func TestCompileAndLinkEndToEnd(t *testing.T) {
	prog := parseProgram(t, "LET X = 1 + 2 * 3\nPRINT X\nPRINT X + 1\n")

	mod, err := New().Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	const codeBase = 0x10000
	const trampolineBase = 0x20000
	region := &linker.Region{
		CodeBase:       codeBase,
		TrampolineBase: trampolineBase,
		Code:           make([]byte, len(mod.Code)),
		Trampolines:    make([]byte, 16), // one unique extern: fbrt_print_int
	}
	resolve := func(name string) (uint64, bool) {
		if name == externPrintInt {
			return 0xdeadbeef, true
		}
		return 0, false
	}

	result, err := linker.Link(mod, resolve, region)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if len(result.TrampolineStubs) != 1 {
		t.Fatalf("expected 1 trampoline stub, got %d", len(result.TrampolineStubs))
	}

	listing := disasm.Listing(region.Code, codeBase, trampolineBase, mod, result.TrampolineStubs)
	if listing == "" {
		t.Fatal("expected non-empty listing")
	}
}

func TestCompileRejectsUnsupportedStatement(t *testing.T) {
	prog := parseProgram(t, "GOTO 100\n")
	if _, err := New().Compile(prog); err == nil {
		t.Fatal("expected an error compiling an unsupported statement")
	}
}
