package aarch64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The 12-bit unsigned immediate in ADD/SUB (Rd, Rn, #imm) tops out at
// 4095; 4096 only fits shifted (#imm, LSL #12).
func TestImm12Boundary(t *testing.T) {
	_, ok := EmitADDImm12(true, R0, R1, 4095, false)
	assert.True(t, ok, "4095 should fit an unshifted 12-bit immediate")

	_, ok = EmitADDImm12(true, R0, R1, 4096, false)
	assert.False(t, ok, "4096 should not fit an unshifted 12-bit immediate")

	_, ok = EmitADDImm12(true, R0, R1, 4097, false)
	assert.False(t, ok, "4097 should not fit an unshifted 12-bit immediate")

	_, ok = EmitADDImm12(true, R0, R1, 1, true)
	assert.True(t, ok, "#1, LSL #12 should always fit (encodes 4096)")
}

// BranchImm26 (B/BL) carries a 26-bit signed word displacement, so the
// patchable range is exactly [-2^25, 2^25-1].
func TestBranchDisplacementBoundary(t *testing.T) {
	bl, _ := EmitBL(0)
	if _, ok := LinkRaw(bl, 1<<25-1); !ok {
		t.Error("max positive BL displacement (2^25-1) should patch")
	}
	if _, ok := LinkRaw(bl, -(1 << 25)); !ok {
		t.Error("max negative BL displacement (-2^25) should patch")
	}
	if _, ok := LinkRaw(bl, 1<<25); ok {
		t.Error("2^25 overflows a 26-bit signed word displacement")
	}
	if _, ok := LinkRaw(bl, -(1<<25) - 1); ok {
		t.Error("-2^25-1 overflows a 26-bit signed word displacement")
	}
}

// Condition.Invert is its own inverse: inverting twice must return the
// original condition for every defined condition code.
func TestConditionInvertInvolution(t *testing.T) {
	for c := CondEQ; c <= CondAL; c++ {
		if got := c.Invert().Invert(); got != c {
			t.Errorf("condition %d: Invert(Invert()) = %d, want %d", c, got, c)
		}
	}
}

// Bitmask immediates must round-trip through encode then decode for a
// representative spread of element sizes and rotations.
func TestBitmaskRoundTrip(t *testing.T) {
	values := []uint64{
		0x1, 0x3, 0xff, 0xff00, 0x0f0f0f0f0f0f0f0f,
		0xAAAAAAAAAAAAAAAA, 0xfffffffe, 0x7fffffffffffffff,
	}
	for _, v := range values {
		n, immr, imms, ok := EncodeBitmaskImmediate(v, true)
		if !ok {
			t.Errorf("EncodeBitmaskImmediate(%#x, 64) reported not representable", v)
			continue
		}
		got, ok := DecodeBitmaskImmediate(n, immr, imms, true)
		if !ok {
			t.Errorf("DecodeBitmaskImmediate(%d,%d,%d) failed for original %#x", n, immr, imms, v)
			continue
		}
		if got != v {
			t.Errorf("bitmask round trip: encoded %#x, decoded %#x", v, got)
		}
	}
}

// 0 and all-ones are never expressible as a bitmask immediate: both
// would require a "repeated run" argument that degenerates to a
// register-wide MOV, which the architecture forbids encoding this way.
func TestBitmaskRejectsDegenerateValues(t *testing.T) {
	if _, _, _, ok := EncodeBitmaskImmediate(0, true); ok {
		t.Error("0 should not be representable as a bitmask immediate")
	}
	if _, _, _, ok := EncodeBitmaskImmediate(0xffffffffffffffff, true); ok {
		t.Error("all-ones should not be representable as a bitmask immediate")
	}
}
