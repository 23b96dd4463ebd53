package aarch64

import "encoding/binary"

// BranchPatch carries the information needed to rewrite a single
// already-emitted branch instruction's immediate field once its target
// is known: the instruction's offset and the branch target's offset,
// both in units of instruction words, plus which immediate field the
// branch uses.
type BranchPatch struct {
	InstructionOffset uint32 // in instruction words
	TargetOffset      uint32 // in instruction words
	Class             BranchClass
}

// Resolve reads the instruction at p.InstructionOffset (in buf, a byte
// slice addressed in 4-byte words) and rewrites its immediate field in
// place so that it branches to p.TargetOffset. It returns false if the
// resulting displacement does not fit p.Class's immediate width.
func (p BranchPatch) Resolve(buf []byte) bool {
	byteOff := p.InstructionOffset * 4
	if int(byteOff)+4 > len(buf) {
		return false
	}
	word := binary.LittleEndian.Uint32(buf[byteOff : byteOff+4])

	delta := int64(p.TargetOffset) - int64(p.InstructionOffset)
	width := p.Class.Width()
	if width == 0 || !signFits(delta, width) {
		return false
	}

	mask := uint32(1)<<width - 1
	var shift uint32
	switch p.Class {
	case BranchImm26:
		shift = 0
	case BranchImm19, BranchImm14:
		shift = 5
	}

	word = (word &^ (mask << shift)) | ((uint32(delta) & mask) << shift)
	binary.LittleEndian.PutUint32(buf[byteOff:byteOff+4], word)
	return true
}

// LinkRaw patches an already-encoded instruction word (not a buffer) by
// auto-detecting its BranchClass from its opcode bits, and returns the
// rewritten word. It is used when the caller already has the word value
// in hand rather than a byte buffer to patch in place.
func LinkRaw(existing uint32, deltaWords int64) (uint32, bool) {
	class := ClassifyBranch(existing)
	width := class.Width()
	if width == 0 || !signFits(deltaWords, width) {
		return 0, false
	}

	mask := uint32(1)<<width - 1
	var shift uint32
	if class == BranchImm19 || class == BranchImm14 {
		shift = 5
	}

	return (existing &^ (mask << shift)) | ((uint32(deltaWords) & mask) << shift), true
}
