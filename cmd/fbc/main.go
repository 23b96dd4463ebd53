// Command fbc drives the FasterBASIC AArch64 back end end to end: it
// reads a source file, runs it through the lexer, parser, and the
// minimal codegen stub, then either prints an annotated disassembly of
// the result or links it and reports what it would take to run.
// Executing the linked buffer is out of this repository's scope — that
// requires an executable-page allocator, which spec.md leaves to an
// external collaborator — so -run only reports readiness, it never
// maps memory itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/albanread/fasterbasic/aarch64"
	"github.com/albanread/fasterbasic/codegen"
	"github.com/albanread/fasterbasic/config"
	"github.com/albanread/fasterbasic/disasm"
	"github.com/albanread/fasterbasic/jitmodule"
	"github.com/albanread/fasterbasic/lexer"
	"github.com/albanread/fasterbasic/linker"
	"github.com/albanread/fasterbasic/parser"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fbc: ")

	var (
		outPath    = flag.String("o", "", "write output to this path instead of stdout")
		disasmOnly = flag.Bool("S", false, "emit an annotated disassembly of the compiled module and stop")
		runFlag    = flag.Bool("run", false, "link and report readiness to execute (mapping memory is left to the caller)")
		verify     = flag.Bool("verify", false, "round-trip verify the encoder's worked examples against the configured assembler")
		cfgPath    = flag.String("config", "", "path to fbc.toml (default: "+config.GetConfigPath()+")")
	)
	flag.Parse()

	cfg := loadConfig(*cfgPath)

	if *verify {
		os.Exit(runVerify(cfg))
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: fbc [flags] <source.bas>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	mod, err := compile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("creating %s: %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch {
	case *disasmOnly:
		fmt.Fprint(out, disasm.Listing(mod.Code, 0, 0, mod, nil))
	case *runFlag:
		reportRunReadiness(out, mod)
	default:
		fmt.Fprint(out, disasm.Listing(mod.Code, 0, 0, mod, nil))
	}
}

func loadConfig(explicitPath string) *config.Config {
	if explicitPath != "" {
		cfg, err := config.LoadFrom(explicitPath)
		if err != nil {
			log.Fatalf("loading %s: %v", explicitPath, err)
		}
		return cfg
	}
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func compile(path string) (*jitmodule.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	toks := lexer.New(string(src), path).TokenizeAll()
	prog, errs := parser.Parse(toks)
	if errs.HasErrors() {
		for _, e := range errs.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, fmt.Errorf("%d parse error(s) in %s", len(errs.Errors), path)
	}
	return codegen.New().Compile(prog)
}

// reportRunReadiness links the module against a resolver that maps
// every external name to the same placeholder address, purely to
// confirm the module links cleanly. It never
// executes anything: mapping the result at a real address and flushing
// the instruction cache is the embedding program's job.
func reportRunReadiness(out *os.File, mod *jitmodule.Module) {
	uniqueExterns := map[string]bool{}
	for _, call := range mod.ExtCalls {
		uniqueExterns[call.Name] = true
	}
	region := &linker.Region{
		CodeBase:       0x100000,
		TrampolineBase: 0x200000,
		Code:           make([]byte, len(mod.Code)),
		Trampolines:    make([]byte, len(uniqueExterns)*16),
	}
	resolve := func(name string) (uint64, bool) { return 0xffffffff, true }
	result, err := linker.Link(mod, resolve, region)
	if err != nil {
		log.Fatalf("link: %v", err)
	}
	fmt.Fprintf(out, "linked: %d bytes code, %d trampoline stub(s)\n",
		len(region.Code), len(result.TrampolineStubs))
	fmt.Fprintln(out, "execution requires an externally supplied executable-page allocator; fbc does not map memory itself")
}

func runVerify(cfg *config.Config) int {
	cases := builtinVerifyCases()
	mismatches, err := disasm.RoundTrip(disasm.VerifierConfig{
		Assembler:   cfg.Verify.Assembler,
		ObjdumpTool: cfg.Verify.ObjdumpTool,
	}, cases)
	if err != nil {
		log.Printf("verify: %v", err)
		return 1
	}
	if len(mismatches) == 0 {
		fmt.Printf("verify: %d case(s) round-tripped cleanly\n", len(cases))
		return 0
	}
	for _, m := range mismatches {
		fmt.Printf("verify: MISMATCH %s: encoded %#08x, assembled %#08x\n", m.Case.Name, m.Case.Word, m.Assembled)
	}
	return 1
}

// builtinVerifyCases lists eight worked examples: register ADD, MOVZ,
// NOP, LDR (unsigned immediate and register offset), STP pre-index,
// LSLV and BL. The conditional-select, bitfield, atomic, NEON,
// floating-point, crypto, barrier and system-register families have no
// case here, so -verify does not check them.
func builtinVerifyCases() []disasm.VerifyCase {
	ldr, _ := aarch64.EmitLoadStoreUnsignedImm(aarch64.MemLoadUnsigned, 3, aarch64.R0, aarch64.R1, 0)
	ldrReg := aarch64.EmitLoadStoreRegisterOffset(aarch64.MemLoadUnsigned, 3, aarch64.R0, aarch64.R1, aarch64.Reg(aarch64.R2))
	stp, _ := aarch64.EmitLoadStorePairOffset(aarch64.PairStore, true, aarch64.FP, aarch64.LR, aarch64.RSP, -16, aarch64.IndexPre, true)
	lslv := aarch64.EmitShiftVariable(aarch64.ShiftOpLSLV, true, aarch64.R0, aarch64.R1, aarch64.R2)
	bl, _ := aarch64.EmitBL(0)

	return []disasm.VerifyCase{
		{Name: "ADD X0,X1,X2", Word: 0x8B020020, Assembly: "add x0, x1, x2"},
		{Name: "MOVZ X0,#0", Word: 0xD2800000, Assembly: "movz x0, #0"},
		{Name: "NOP", Word: 0xD503201F, Assembly: "nop"},
		{Name: "LDR X0,[X1]", Word: ldr, Assembly: "ldr x0, [x1]"},
		{Name: "LDR X0,[X1,X2]", Word: ldrReg, Assembly: "ldr x0, [x1, x2]"},
		{Name: "STP X29,X30,[SP,#-16]!", Word: stp, Assembly: "stp x29, x30, [sp, #-16]!"},
		{Name: "LSLV X0,X1,X2", Word: lslv, Assembly: "lslv x0, x1, x2"},
		{Name: "BL self", Word: bl, Assembly: "bl _case"},
	}
}
