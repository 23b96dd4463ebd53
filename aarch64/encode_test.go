package aarch64

import "testing"

// Worked examples: a handful of well-known encodings cross-checked
// against disassemblers during development. These pin the encoder's
// bit layout so a refactor can't silently shift a field.
func TestWorkedExamples(t *testing.T) {
	cases := []struct {
		name string
		word uint32
		want uint32
	}{
		{"NOP", nopWord(), 0xD503201F},
		{"ADD X0,X1,X2", EmitADDRegister(true, R0, R1, Reg(R2)), 0x8B020020},
		{"MOVZ X0,#0", movz0(), 0xD2800000},
		{"LDR X0,[X1]", ldrUnsignedImm(), 0xF9400020},
		{"LDR X0,[X1,X2]", EmitLoadStoreRegisterOffset(MemLoadUnsigned, 3, R0, R1, Reg(R2)), 0xF8626820},
		{"LSLV X0,X1,X2", EmitShiftVariable(ShiftOpLSLV, true, R0, R1, R2), 0x9AC22020},
	}
	for _, c := range cases {
		if c.word != c.want {
			t.Errorf("%s: got %#08x, want %#08x", c.name, c.word, c.want)
		}
	}
}

func nopWord() uint32 {
	// NOP is HINT #0; it takes no operands.
	return EmitNOP()
}

func movz0() uint32 {
	word, ok := EmitMoveWide(MoveWideZ, true, R0, 0, 0)
	if !ok {
		panic("MOVZ X0,#0 should always encode")
	}
	return word
}

func ldrUnsignedImm() uint32 {
	word, ok := EmitLoadStoreUnsignedImm(MemLoadUnsigned, 3, R0, R1, 0)
	if !ok {
		panic("LDR X0,[X1] should always encode")
	}
	return word
}

func TestEmitB_ForwardOneWord(t *testing.T) {
	word, ok := EmitB(1)
	if !ok {
		t.Fatal("EmitB(1) should encode")
	}
	if want := uint32(0x14000001); word != want {
		t.Errorf("B +1: got %#08x, want %#08x", word, want)
	}
}
