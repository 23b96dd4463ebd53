// Package linker transforms a finished jitmodule.Module into executable
// code at its final mapped address: it builds one trampoline stub per
// unique external symbol and rewrites every external BL to target its
// stub. Intra-module branch displacements are patched by the separate
// PatchIntraModule, before the module is handed to Link.
package linker

import (
	"encoding/binary"
	"fmt"

	"github.com/albanread/fasterbasic/aarch64"
	"github.com/albanread/fasterbasic/jitmodule"
)

// SymbolResolver maps an external symbol name to its absolute runtime
// address. It must be O(1) and must not block — the linker calls it
// synchronously for every unique extern.
type SymbolResolver func(name string) (uint64, bool)

// Region is the caller-supplied, already-allocated executable memory
// the linker writes into. CodeBase and TrampolineBase are the
// subregions' final absolute virtual addresses; Code and Trampolines
// are writable views over them, sized by the caller to at least
// len(module.Code) and stubCount*16 respectively.
type Region struct {
	CodeBase       uint64
	TrampolineBase uint64
	Code           []byte
	Trampolines    []byte
}

// Stub describes one trampoline island entry in its final placement.
type Stub struct {
	StubOffset uint32 // byte offset within the trampoline subregion
	Name       string
	TargetAddr uint64
}

// Result is the linker's output: the trampoline layout plus the two
// subregions' base addresses, echoed back for convenience.
type Result struct {
	TrampolineStubs    []Stub
	CodeBaseAddr       uint64
	TrampolineBaseAddr uint64
}

// ErrorKind distinguishes the linker's two failure modes.
type ErrorKind int

const (
	UnresolvedSymbol ErrorKind = iota
	OutOfRange
)

// Error is the linker's typed failure, naming the offending symbol or
// code offset.
type Error struct {
	Kind   ErrorKind
	Name   string
	Offset uint32
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnresolvedSymbol:
		return fmt.Sprintf("linker: unresolved symbol %q", e.Name)
	case OutOfRange:
		return fmt.Sprintf("linker: branch displacement out of range at offset %d", e.Offset)
	default:
		return "linker: unknown error"
	}
}

const stubSize = 16

// Link transforms m into executable code in region, resolving every
// external call through resolve. m must already be sealed. The caller
// is responsible for allocating region.Code/region.Trampolines with
// capacity for len(m.Code) and (unique extern count)*16 bytes
// respectively, and for the writable→executable page transition and
// instruction-cache invalidation afterward.
func Link(m *jitmodule.Module, resolve SymbolResolver, region *Region) (*Result, error) {
	if !m.Sealed() {
		panic("linker: Link on an unsealed module")
	}

	copy(region.Code, m.Code)

	stubIndex := map[string]int{}
	var stubs []Stub

	// First pass: assign one stub per unique external name, in order of
	// first appearance among ext_calls, and resolve each via the caller.
	for _, call := range m.ExtCalls {
		if _, ok := stubIndex[call.Name]; ok {
			continue
		}
		addr, ok := resolve(call.Name)
		if !ok {
			return nil, &Error{Kind: UnresolvedSymbol, Name: call.Name}
		}
		idx := len(stubs)
		stubIndex[call.Name] = idx
		stubs = append(stubs, Stub{
			StubOffset: uint32(idx * stubSize),
			Name:       call.Name,
			TargetAddr: addr,
		})
	}

	for _, stub := range stubs {
		if err := writeStub(region.Trampolines, int(stub.StubOffset), stub.TargetAddr); err != nil {
			return nil, err
		}
	}

	for _, call := range m.ExtCalls {
		idx := stubIndex[call.Name]
		stubAddr := region.TrampolineBase + uint64(idx*stubSize)
		blAddr := region.CodeBase + uint64(call.InstructionOffset)
		delta := int64(stubAddr) - int64(blAddr)
		if delta%4 != 0 {
			return nil, &Error{Kind: OutOfRange, Offset: call.InstructionOffset}
		}
		deltaWords := delta / 4

		byteOff := call.InstructionOffset
		if int(byteOff)+4 > len(region.Code) {
			return nil, &Error{Kind: OutOfRange, Offset: byteOff}
		}
		existing := binary.LittleEndian.Uint32(region.Code[byteOff : byteOff+4])
		patched, ok := aarch64.LinkRaw(existing, deltaWords)
		if !ok {
			return nil, &Error{Kind: OutOfRange, Offset: byteOff}
		}
		binary.LittleEndian.PutUint32(region.Code[byteOff:byteOff+4], patched)
	}

	return &Result{
		TrampolineStubs:    stubs,
		CodeBaseAddr:       region.CodeBase,
		TrampolineBaseAddr: region.TrampolineBase,
	}, nil
}

// writeStub encodes LDR X16,[PC,#8] ; BR X16 ; <target, 8 bytes LE>
// into buf at the given byte offset.
func writeStub(buf []byte, offset int, target uint64) error {
	if offset+stubSize > len(buf) {
		return &Error{Kind: OutOfRange, Offset: uint32(offset)}
	}
	ldr, _ := aarch64.EmitLDRLiteral(true, aarch64.R16, 8)
	br := aarch64.EmitBR(aarch64.R16)
	binary.LittleEndian.PutUint32(buf[offset:offset+4], ldr)
	binary.LittleEndian.PutUint32(buf[offset+4:offset+8], br)
	binary.LittleEndian.PutUint64(buf[offset+8:offset+16], target)
	return nil
}

// PatchIntraModule rewrites every still-unresolved intra-module branch
// in m.Code against its label's final offset, before the module is
// handed to Link. Codegen may instead resolve forward branches inline
// as labels become known; this covers the remainder.
func PatchIntraModule(m *jitmodule.Module, patches []aarch64.BranchPatch) error {
	for _, p := range patches {
		if !p.Resolve(m.Code) {
			return &Error{Kind: OutOfRange, Offset: p.InstructionOffset * 4}
		}
	}
	return nil
}
