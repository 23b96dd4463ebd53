package linker

import (
	"encoding/binary"
	"testing"

	"github.com/albanread/fasterbasic/aarch64"
	"github.com/albanread/fasterbasic/jitmodule"
)

func emitBL(m *jitmodule.Module) uint32 {
	off := m.Offset()
	word, ok := aarch64.EmitBL(0)
	if !ok {
		panic("EmitBL(0) must always encode")
	}
	m.Emit(word)
	return off
}

func TestLinkDedupesSharedExternStubs(t *testing.T) {
	m := jitmodule.New()
	off1 := emitBL(m)
	m.RecordExtCall("extern_foo", off1)
	off2 := emitBL(m)
	m.RecordExtCall("extern_bar", off2)
	off3 := emitBL(m)
	m.RecordExtCall("extern_foo", off3)
	m.Seal()

	targets := map[string]uint64{"extern_foo": 0x1000, "extern_bar": 0x2000}
	resolve := func(name string) (uint64, bool) {
		addr, ok := targets[name]
		return addr, ok
	}

	region := &Region{
		CodeBase:       0x400000,
		TrampolineBase: 0x500000,
		Code:           make([]byte, len(m.Code)),
		Trampolines:    make([]byte, 2*16),
	}

	result, err := Link(m, resolve, region)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if len(result.TrampolineStubs) != 2 {
		t.Fatalf("expected 2 stubs, got %d", len(result.TrampolineStubs))
	}

	stubAddrFor := func(off uint32) uint64 {
		word := binary.LittleEndian.Uint32(region.Code[off : off+4])
		displWords := int32(word<<6) >> 6 // sign-extend the 26-bit field
		blAddr := region.CodeBase + uint64(off)
		return uint64(int64(blAddr) + int64(displWords)*4)
	}

	if stubAddrFor(off1) != stubAddrFor(off3) {
		t.Errorf("both extern_foo BLs should resolve to the same stub: %#x != %#x", stubAddrFor(off1), stubAddrFor(off3))
	}
	if stubAddrFor(off1) == stubAddrFor(off2) {
		t.Errorf("extern_bar BL should resolve to a different stub than extern_foo's")
	}
}

func TestTrampolineStubBitExact(t *testing.T) {
	m := jitmodule.New()
	off := emitBL(m)
	m.RecordExtCall("extern_foo", off)
	m.Seal()

	region := &Region{
		CodeBase:       0,
		TrampolineBase: 0x1000,
		Code:           make([]byte, len(m.Code)),
		Trampolines:    make([]byte, 16),
	}
	resolve := func(name string) (uint64, bool) { return 0xdeadbeefcafebabe, true }

	if _, err := Link(m, resolve, region); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	ldr := binary.LittleEndian.Uint32(region.Trampolines[0:4])
	br := binary.LittleEndian.Uint32(region.Trampolines[4:8])
	target := binary.LittleEndian.Uint64(region.Trampolines[8:16])

	if ldr != 0x58000050 {
		t.Errorf("LDR X16,[PC,#8] = %#x, want 0x58000050", ldr)
	}
	if br != 0xd61f0200 {
		t.Errorf("BR X16 = %#x, want 0xd61f0200", br)
	}
	if target != 0xdeadbeefcafebabe {
		t.Errorf("stub target = %#x, want 0xdeadbeefcafebabe", target)
	}
}

func TestLinkUnresolvedSymbol(t *testing.T) {
	m := jitmodule.New()
	off := emitBL(m)
	m.RecordExtCall("missing", off)
	m.Seal()

	region := &Region{
		Code:        make([]byte, len(m.Code)),
		Trampolines: make([]byte, 16),
	}
	_, err := Link(m, func(string) (uint64, bool) { return 0, false }, region)
	if err == nil {
		t.Fatal("expected UnresolvedSymbol error")
	}
	linkErr, ok := err.(*Error)
	if !ok || linkErr.Kind != UnresolvedSymbol {
		t.Errorf("expected UnresolvedSymbol, got %v", err)
	}
}
