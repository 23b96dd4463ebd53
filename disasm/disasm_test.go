package disasm

import "testing"

func TestClassifyBuckets(t *testing.T) {
	cases := map[string]Category{
		"ADD":  CategoryArithmetic,
		"LDR":  CategoryMemory,
		"B":    CategoryBranch,
		"MOVZ": CategoryMoveImmediate,
		"CMP":  CategoryCompare,
		"FADD": CategoryFloatingPoint,
		"DUP":  CategoryNEON,
		"NOP":  CategorySystem,
		"XYZZY": CategoryOther,
	}
	for mnemonic, want := range cases {
		if got := Classify(mnemonic); got != want {
			t.Errorf("Classify(%q) = %v, want %v", mnemonic, got, want)
		}
	}
}

func TestReportRoundsHalfUp(t *testing.T) {
	// 1 of 3 arithmetic => (1*100 + 1)/3 = 33
	report := Report([]string{"ADD", "LDR", "B"})
	if report[CategoryArithmetic] != 33 {
		t.Errorf("arithmetic pct = %d, want 33", report[CategoryArithmetic])
	}
}

func TestDecodeNOP(t *testing.T) {
	inst := Decode(0x1000, 0xD503201F)
	if !inst.Decoded {
		t.Fatal("expected NOP to decode")
	}
}
