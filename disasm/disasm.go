// Package disasm renders a code buffer — either codegen's staging
// buffer or a linked, live region — as annotated assembly, using
// golang.org/x/arch/arm64/arm64asm as ground-truth decoding, and
// classifies instructions by mnemonic for frequency analysis.
package disasm

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/arch/arm64/arm64asm"

	"github.com/albanread/fasterbasic/jitmodule"
	"github.com/albanread/fasterbasic/linker"
)

// Category is one of the nine buckets every instruction is classified
// into by mnemonic-prefix match.
type Category int

const (
	CategoryArithmetic Category = iota
	CategoryMemory
	CategoryBranch
	CategoryMoveImmediate
	CategoryCompare
	CategoryFloatingPoint
	CategoryNEON
	CategorySystem
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryMemory:
		return "memory"
	case CategoryBranch:
		return "branch"
	case CategoryMoveImmediate:
		return "move/immediate"
	case CategoryCompare:
		return "compare"
	case CategoryFloatingPoint:
		return "floating-point"
	case CategoryNEON:
		return "NEON/SIMD"
	case CategorySystem:
		return "system"
	default:
		return "other"
	}
}

// prefixTable maps an uppercased mnemonic prefix to its category.
// Classify takes the longest matching prefix, so the order of entries
// does not matter (e.g. BIC lands in arithmetic, not under the bare B
// branch prefix).
var prefixTable = []struct {
	prefix string
	cat    Category
}{
	{"B", CategoryBranch}, {"CBZ", CategoryBranch}, {"CBNZ", CategoryBranch},
	{"TBZ", CategoryBranch}, {"TBNZ", CategoryBranch}, {"RET", CategoryBranch},

	{"LDR", CategoryMemory}, {"STR", CategoryMemory}, {"LDP", CategoryMemory},
	{"STP", CategoryMemory}, {"LDUR", CategoryMemory}, {"STUR", CategoryMemory},
	{"LDAR", CategoryMemory}, {"STLR", CategoryMemory}, {"LDXR", CategoryMemory},
	{"STXR", CategoryMemory}, {"LDAXR", CategoryMemory}, {"STLXR", CategoryMemory},
	{"LDAXP", CategoryMemory}, {"STLXP", CategoryMemory},

	{"MOVZ", CategoryMoveImmediate}, {"MOVN", CategoryMoveImmediate},
	{"MOVK", CategoryMoveImmediate}, {"MOV", CategoryMoveImmediate},

	{"CMP", CategoryCompare}, {"CMN", CategoryCompare}, {"CCMP", CategoryCompare},
	{"CCMN", CategoryCompare}, {"TST", CategoryCompare},

	{"FADD", CategoryFloatingPoint}, {"FSUB", CategoryFloatingPoint},
	{"FMUL", CategoryFloatingPoint}, {"FDIV", CategoryFloatingPoint},
	{"FCMP", CategoryFloatingPoint}, {"FMOV", CategoryFloatingPoint},
	{"FABS", CategoryFloatingPoint}, {"FNEG", CategoryFloatingPoint},
	{"FSQRT", CategoryFloatingPoint}, {"FMADD", CategoryFloatingPoint},
	{"FMSUB", CategoryFloatingPoint}, {"FCVT", CategoryFloatingPoint},
	{"SCVTF", CategoryFloatingPoint}, {"UCVTF", CategoryFloatingPoint},
	{"FMAX", CategoryFloatingPoint}, {"FMIN", CategoryFloatingPoint},

	{"DUP", CategoryNEON}, {"INS", CategoryNEON}, {"UMOV", CategoryNEON},
	{"SMOV", CategoryNEON}, {"ADDV", CategoryNEON}, {"EXT", CategoryNEON},
	{"SHL", CategoryNEON}, {"SSHR", CategoryNEON}, {"USHR", CategoryNEON},
	{"AESE", CategoryNEON}, {"AESD", CategoryNEON}, {"AESMC", CategoryNEON},
	{"AESIMC", CategoryNEON},

	{"NOP", CategorySystem}, {"BRK", CategorySystem}, {"DMB", CategorySystem},
	{"DSB", CategorySystem}, {"ISB", CategorySystem}, {"MRS", CategorySystem},
	{"MSR", CategorySystem}, {"WFE", CategorySystem}, {"WFI", CategorySystem},
	{"YIELD", CategorySystem}, {"SEV", CategorySystem},

	{"ADD", CategoryArithmetic}, {"SUB", CategoryArithmetic}, {"MUL", CategoryArithmetic},
	{"MADD", CategoryArithmetic}, {"MSUB", CategoryArithmetic}, {"SDIV", CategoryArithmetic},
	{"UDIV", CategoryArithmetic}, {"AND", CategoryArithmetic}, {"ORR", CategoryArithmetic},
	{"EOR", CategoryArithmetic}, {"BIC", CategoryArithmetic}, {"ORN", CategoryArithmetic},
	{"EON", CategoryArithmetic}, {"LSL", CategoryArithmetic}, {"LSR", CategoryArithmetic},
	{"ASR", CategoryArithmetic}, {"ROR", CategoryArithmetic}, {"NEG", CategoryArithmetic},
	{"CSEL", CategoryArithmetic}, {"CSET", CategoryArithmetic}, {"SBFM", CategoryArithmetic},
	{"UBFM", CategoryArithmetic}, {"BFM", CategoryArithmetic}, {"EXTR", CategoryArithmetic},
}

// Classify buckets a mnemonic into exactly one Category by longest
// prefix match.
func Classify(mnemonic string) Category {
	m := strings.ToUpper(mnemonic)
	best := CategoryOther
	bestLen := -1
	for _, e := range prefixTable {
		if strings.HasPrefix(m, e.prefix) && len(e.prefix) > bestLen {
			best = e.cat
			bestLen = len(e.prefix)
		}
	}
	return best
}

// Report summarizes the classification of a set of mnemonics as
// percentages, rounded half-up: (part*100 + total/2) / total.
func Report(mnemonics []string) map[Category]int {
	counts := map[Category]int{}
	for _, m := range mnemonics {
		counts[Classify(m)]++
	}
	total := len(mnemonics)
	pct := map[Category]int{}
	if total == 0 {
		return pct
	}
	for cat, n := range counts {
		pct[cat] = (n*100 + total/2) / total
	}
	return pct
}

// Instruction is one decoded word plus its address and raw annotations.
type Instruction struct {
	Addr      uint64
	Word      uint32
	Mnemonic  string
	Operands  string
	Decoded   bool
	Annotated []string
}

// Decode decodes a single little-endian instruction word at addr using
// arm64asm as ground truth. Decoded is false (Mnemonic/Operands empty)
// if arm64asm cannot decode the word — this happens for encodings
// arm64asm's decode tables don't cover; the listing still shows the
// raw word in that case.
func Decode(addr uint64, word uint32) Instruction {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], word)
	inst, err := arm64asm.Decode(buf[:])
	if err != nil {
		return Instruction{Addr: addr, Word: word}
	}
	text := arm64asm.GNUSyntax(inst)
	mnemonic := text
	operands := ""
	if idx := strings.IndexByte(text, ' '); idx >= 0 {
		mnemonic = text[:idx]
		operands = strings.TrimSpace(text[idx+1:])
	}
	return Instruction{Addr: addr, Word: word, Mnemonic: mnemonic, Operands: operands, Decoded: true}
}

// Listing renders code as the annotated assembly format described by
// the spec: one line per instruction, source-map/comment/label/extern
// annotations interleaved in code-offset order. trampolineBase and
// stubs are used to cross-check BL targets against the trampoline
// index on a linked buffer; pass trampolineBase 0 and nil stubs for an
// unlinked staging buffer.
func Listing(code []byte, baseAddr, trampolineBase uint64, m *jitmodule.Module, stubs []linker.Stub) string {
	labelAt := map[uint32]jitmodule.LabelID{}
	for id, off := range m.Labels {
		labelAt[off] = id
	}
	symbolAt := map[uint32][]string{}
	for name, sym := range m.Symbols {
		if sym.Kind == jitmodule.SymbolLocal {
			symbolAt[sym.Offset] = append(symbolAt[sym.Offset], name)
		}
	}
	extAt := map[uint32]string{}
	for _, call := range m.ExtCalls {
		extAt[call.InstructionOffset] = call.Name
	}
	sourceAt := map[uint32]int{}
	for _, sl := range m.SourceMap {
		sourceAt[sl.CodeOffset] = sl.Line
	}
	commentsAt := map[uint32][]string{}
	for _, c := range m.CommentMap {
		commentsAt[c.CodeOffset] = append(commentsAt[c.CodeOffset], c.Text)
	}
	stubByAddr := map[uint64]string{}
	for _, s := range stubs {
		stubByAddr[s.StubOffset] = s.Name
	}

	var sb strings.Builder
	for off := uint32(0); int(off)+4 <= len(code); off += 4 {
		names := symbolAt[off]
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&sb, "%s:\n", n)
		}
		if id, ok := labelAt[off]; ok {
			fmt.Fprintf(&sb, "  .L%d:\n", id)
		}

		word := binary.LittleEndian.Uint32(code[off : off+4])
		addr := baseAddr + uint64(off)
		inst := Decode(addr, word)

		var annotations []string
		for _, c := range commentsAt[off] {
			annotations = append(annotations, c)
		}
		if name, ok := extAt[off]; ok {
			annotations = append(annotations, "→ "+name)
		}
		if line, ok := sourceAt[off]; ok {
			annotations = append(annotations, fmt.Sprintf("line %d", line))
		}
		if target, ok := crossCheckBL(inst, addr); ok && target >= trampolineBase {
			if name, ok := stubByAddr[target-trampolineBase]; ok {
				annotations = append(annotations, "→ "+name+" (stub)")
			}
		}

		mnemonic, operands := inst.Mnemonic, inst.Operands
		if !inst.Decoded {
			mnemonic, operands = "???", ""
		}
		line := fmt.Sprintf("  %#010x:  %08x  %-8s%s", addr, word, mnemonic, operands)
		if len(annotations) > 0 {
			line += "    ; " + strings.Join(annotations, ", ")
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// crossCheckBL decodes a BL's 26-bit displacement and resolves it to
// an absolute target address, for cross-checking against the
// trampoline stub map on a linked buffer.
func crossCheckBL(inst Instruction, addr uint64) (uint64, bool) {
	if !inst.Decoded || !strings.EqualFold(inst.Mnemonic, "BL") {
		return 0, false
	}
	displWords := int32(inst.Word<<6) >> 6
	return uint64(int64(addr) + int64(displWords)*4), true
}
