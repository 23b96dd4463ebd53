// Package jitmodule holds the intermediate representation codegen
// emits into and the linker consumes: a flat, append-only machine-code
// buffer plus the side tables (labels, symbols, external calls, source
// map, comments) that give it meaning before it is linked into an
// executable region.
package jitmodule

// LabelID identifies a branch target defined somewhere in the module's
// own code, resolved to a byte offset once codegen has emitted it.
type LabelID int

// SymbolKind distinguishes a label defined within this module from one
// that must be resolved externally at link time.
type SymbolKind int

const (
	SymbolLocal SymbolKind = iota
	SymbolExternal
)

// Symbol is one named entry in the module's symbol table.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Offset uint32 // byte offset into Code, valid only for SymbolLocal
}

// ExtCall records one call site that must be patched to an externally
// resolved address at link time, by way of a trampoline island.
type ExtCall struct {
	Name              string // the external symbol's name
	InstructionOffset uint32 // byte offset of the BL instruction in Code
}

// SourceLine maps a byte offset in Code back to the BASIC source line
// that produced it, for disassembly annotation and diagnostics.
type SourceLine struct {
	CodeOffset uint32
	Line       int
}

// Comment attaches a free-text annotation to a byte offset in Code,
// surfaced by the disassembler listing.
type Comment struct {
	CodeOffset uint32
	Text       string
}

// Module is the unit of code codegen produces and the linker consumes.
// Code grows only by appending whole instruction words; once Seal is
// called no further emission is permitted, since the linker computes
// branch displacements against the buffer's final length.
type Module struct {
	Code       []byte
	Labels     map[LabelID]uint32
	Symbols    map[string]Symbol
	ExtCalls   []ExtCall
	SourceMap  []SourceLine
	CommentMap []Comment

	nextLabel LabelID
	sealed    bool
}

// New returns an empty Module ready for emission.
func New() *Module {
	return &Module{
		Labels:  map[LabelID]uint32{},
		Symbols: map[string]Symbol{},
	}
}

// NewLabel allocates a fresh, as-yet-undefined label.
func (m *Module) NewLabel() LabelID {
	id := m.nextLabel
	m.nextLabel++
	return id
}

// Offset returns the current end of the code buffer, in bytes — the
// offset the next emitted instruction will land at.
func (m *Module) Offset() uint32 { return uint32(len(m.Code)) }

// Emit appends one 32-bit instruction word to the code buffer. It
// panics if the module has been sealed, since that would silently
// invalidate every branch displacement already computed against the
// buffer's length.
func (m *Module) Emit(word uint32) uint32 {
	if m.sealed {
		panic("jitmodule: Emit after Seal")
	}
	off := m.Offset()
	m.Code = append(m.Code,
		byte(word), byte(word>>8), byte(word>>16), byte(word>>24))
	return off
}

// DefineLabel binds id to the current code offset.
func (m *Module) DefineLabel(id LabelID) {
	m.Labels[id] = m.Offset()
}

// DefineSymbol records a named, locally-defined entry point at the
// current code offset.
func (m *Module) DefineSymbol(name string) {
	m.Symbols[name] = Symbol{Name: name, Kind: SymbolLocal, Offset: m.Offset()}
}

// DeclareExternal records name as an external symbol the linker must
// resolve, without an offset of its own.
func (m *Module) DeclareExternal(name string) {
	if _, ok := m.Symbols[name]; ok {
		return
	}
	m.Symbols[name] = Symbol{Name: name, Kind: SymbolExternal}
}

// RecordExtCall registers a BL at instructionOffset as needing to
// target the external symbol name once the linker resolves it.
func (m *Module) RecordExtCall(name string, instructionOffset uint32) {
	m.DeclareExternal(name)
	m.ExtCalls = append(m.ExtCalls, ExtCall{Name: name, InstructionOffset: instructionOffset})
}

// AnnotateSource records that the instruction at the current offset
// originated from the given BASIC source line.
func (m *Module) AnnotateSource(line int) {
	m.SourceMap = append(m.SourceMap, SourceLine{CodeOffset: m.Offset(), Line: line})
}

// AnnotateComment attaches a free-text comment to the current offset.
func (m *Module) AnnotateComment(text string) {
	m.CommentMap = append(m.CommentMap, Comment{CodeOffset: m.Offset(), Text: text})
}

// Seal marks the module as finished: no further Emit calls are
// permitted. The linker requires a sealed module so that every branch
// displacement it computes is against a buffer that will not grow out
// from under it.
func (m *Module) Seal() { m.sealed = true }

// Sealed reports whether Seal has been called.
func (m *Module) Sealed() bool { return m.sealed }
