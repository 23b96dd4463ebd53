package aarch64

// Load/store family: register-offset, unsigned-scaled immediate,
// unscaled signed immediate (LDUR/STUR), pre/post-index, and LDP/STP
// pair forms. size selects the transfer width: 0=byte, 1=half, 2=word,
// 3=dword (matching Arrangement.ElementSize()).

// MemOp distinguishes load from store, and (for loads) whether the
// result is sign- or zero-extended into a 32- or 64-bit register.
type MemOp uint8

const (
	MemStore MemOp = iota
	MemLoadUnsigned
	MemLoadSigned64 // sign-extend into a 64-bit register
	MemLoadSigned32 // sign-extend into a 32-bit register (byte/half only)
)

func loadStoreOpcBits(op MemOp, size uint32) (opc uint32) {
	switch op {
	case MemStore:
		return 0
	case MemLoadUnsigned:
		return 1
	case MemLoadSigned64:
		return 2
	case MemLoadSigned32:
		return 3
	}
	return 0
}

// EmitLDRLiteral encodes LDR Rt, [PC, #byteOffset] — a PC-relative
// literal load, used by the linker's trampoline stubs to fetch an
// 8-byte absolute target two instructions ahead of themselves.
// byteOffset must be a multiple of 4 and fit in the 19-bit signed word
// field.
func EmitLDRLiteral(is64 bool, rt Register, byteOffset int32) (uint32, bool) {
	if byteOffset%4 != 0 {
		return 0, false
	}
	words := byteOffset / 4
	if !signFits(int64(words), 19) {
		return 0, false
	}
	word := uint32(0x18000000)
	if is64 {
		word |= 1 << 30
	}
	return word | ((uint32(words) & 0x7ffff) << 5) | rt.enc(), true
}

// EmitLoadStoreRegisterOffset encodes LDR/STR Rt, [Xn, Rm{, extend
// {#amount}}] — base register plus an offset register, optionally
// extended/shifted. amount must be 0 or log2(transfer size) (i.e. the
// "shift" only applies when it matches the natural element size).
func EmitLoadStoreRegisterOffset(op MemOp, size uint32, rt Register, rn Register, rm RegisterParam) uint32 {
	opc := loadStoreOpcBits(op, size)
	optionField := uint32(0b011) // LSL/UXTX by default (plain register index)
	shiftBit := uint32(0)
	if rm.isExtended() {
		optionField = uint32(rm.extend)
		if rm.amount != 0 {
			shiftBit = 1
		}
	} else if rm.isShifted() && rm.amount != 0 {
		shiftBit = 1
	}
	return size<<30 | 0b111<<27 | opc<<22 | 1<<21 |
		rm.Reg.enc()<<16 | optionField<<13 | shiftBit<<12 | 1<<11 | rn.enc()<<5 | rt.enc()
}

// EmitLoadStoreUnsignedImm encodes LDR/STR Rt, [Xn, #imm] with the
// unsigned-scaled immediate form: imm is a byte offset that must be a
// non-negative multiple of the transfer size, encoded in 12 bits after
// scaling. ok is false if imm is out of range or misaligned.
func EmitLoadStoreUnsignedImm(op MemOp, size uint32, rt, rn Register, imm int64) (uint32, bool) {
	elemSize := int64(1) << size
	if imm < 0 || imm%elemSize != 0 {
		return 0, false
	}
	scaled := imm / elemSize
	if scaled >= 1<<12 {
		return 0, false
	}
	opc := loadStoreOpcBits(op, size)
	return size<<30 | 0b111<<27 | 1<<24 | opc<<22 | uint32(scaled)<<10 | rn.enc()<<5 | rt.enc(), true
}

// EmitLoadStoreUnscaledImm encodes LDUR/STUR Rt, [Xn, #simm] with a
// 9-bit signed, unscaled byte offset.
func EmitLoadStoreUnscaledImm(op MemOp, size uint32, rt, rn Register, simm int64) (uint32, bool) {
	if !signFits(simm, 9) {
		return 0, false
	}
	opc := loadStoreOpcBits(op, size)
	return size<<30 | 0b111<<27 | opc<<22 | (uint32(simm)&0x1ff)<<12 | rn.enc()<<5 | rt.enc(), true
}

// IndexMode selects pre- or post-increment addressing for the indexed
// load/store forms.
type IndexMode uint8

const (
	IndexPost IndexMode = iota
	IndexPre
)

// EmitLoadStoreIndexed encodes LDR/STR Rt, [Xn], #simm (post-index) or
// LDR/STR Rt, [Xn, #simm]! (pre-index), writing the updated address
// back to Xn. simm is a 9-bit signed unscaled byte offset.
func EmitLoadStoreIndexed(op MemOp, size uint32, rt, rn Register, simm int64, mode IndexMode) (uint32, bool) {
	if !signFits(simm, 9) {
		return 0, false
	}
	opc := loadStoreOpcBits(op, size)
	idx := uint32(0b01)
	if mode == IndexPre {
		idx = 0b11
	}
	return size<<30 | 0b111<<27 | opc<<22 | (uint32(simm)&0x1ff)<<12 | idx<<10 | rn.enc()<<5 | rt.enc(), true
}

// PairOp distinguishes LDP from STP, and signed vs unsigned widening
// for the 32-bit LDP form.
type PairOp uint8

const (
	PairStore PairOp = iota
	PairLoad
	PairLoadSigned32 // LDPSW: sign-extends two 32-bit values into X registers
)

// EmitLoadStorePairOffset encodes LDP/STP Rt1, Rt2, [Xn, #imm] with a
// signed immediate scaled by the transfer size (4 bytes for 32-bit, 8
// for 64-bit), 7-bit signed field. is64 selects the W or X register
// form for PairLoad/PairStore (PairLoadSigned32 is always 32-bit source
// widened into X destinations).
func EmitLoadStorePairOffset(op PairOp, is64 bool, rt1, rt2, rn Register, imm int64, mode IndexMode, writeback bool) (uint32, bool) {
	elemSize := int64(4)
	size64 := is64
	if op == PairLoadSigned32 {
		size64 = false
	}
	if size64 {
		elemSize = 8
	}
	if imm%elemSize != 0 {
		return 0, false
	}
	scaled := imm / elemSize
	if !signFits(scaled, 7) {
		return 0, false
	}
	opcField := uint32(0)
	if op == PairLoadSigned32 {
		opcField = 1
	} else if size64 {
		opcField = 2
	}
	lBit := uint32(0)
	if op != PairStore {
		lBit = 1
	}
	idx := uint32(0b10) // signed offset, no writeback
	if writeback {
		idx = 0b01
		if mode == IndexPre {
			idx = 0b11
		}
	}
	return opcField<<30 | 0b101<<27 | idx<<23 | lBit<<22 | (uint32(scaled)&0x7f)<<15 |
		rt2.enc()<<10 | rn.enc()<<5 | rt1.enc(), true
}
