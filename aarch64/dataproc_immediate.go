package aarch64

// Data-processing (immediate) instructions: ADD/SUB with a 12-bit
// unsigned immediate (optionally shifted left by 12), logical with a
// bitmask immediate, move-wide (MOVZ/MOVN/MOVK), and composite helpers
// that load an arbitrary immediate in the minimum number of
// instructions.

// EmitADDImm12 encodes ADD Rd, Rn, #imm{, LSL #12}. shift12 selects
// whether imm is pre-shifted left by 12. ok is false if imm does not
// fit in 12 bits.
func EmitADDImm12(is64 bool, rd, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	return addSubImm12(0, 0, is64, rd, rn, imm, shift12)
}

// EmitADDSImm12 encodes ADDS (flag-setting ADD immediate).
func EmitADDSImm12(is64 bool, rd, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	return addSubImm12(0, 1, is64, rd, rn, imm, shift12)
}

// EmitSUBImm12 encodes SUB Rd, Rn, #imm{, LSL #12}.
func EmitSUBImm12(is64 bool, rd, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	return addSubImm12(1, 0, is64, rd, rn, imm, shift12)
}

// EmitSUBSImm12 encodes SUBS (flag-setting SUB immediate).
func EmitSUBSImm12(is64 bool, rd, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	return addSubImm12(1, 1, is64, rd, rn, imm, shift12)
}

// EmitCMPImm12 encodes CMP Rn, #imm as an alias of SUBS RZR, Rn, #imm.
func EmitCMPImm12(is64 bool, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	return EmitSUBSImm12(is64, RZR, rn, imm, shift12)
}

func addSubImm12(op, s uint32, is64 bool, rd, rn Register, imm uint32, shift12 bool) (uint32, bool) {
	if imm >= 1<<12 {
		return 0, false
	}
	sh := uint32(0)
	if shift12 {
		sh = 1
	}
	word := sfBit(is64) | op<<30 | s<<29 | 0b10001<<24 | sh<<22 | (imm&0xfff)<<10 | rn.enc()<<5 | rd.enc()
	return word, true
}

// EmitAddSubImmAuto tries to encode ADD/SUB Rd, Rn, #imm (no shift),
// auto-negating to the opposite operation when the given immediate
// does not fit but its negation (interpreted as the other sign) does.
// sub selects the requested operation (false=ADD, true=SUB); the
// returned bool reports which operation was actually encoded.
func EmitAddSubImmAuto(is64 bool, rd, rn Register, imm int64, sub bool) (word uint32, encodedAsSub bool, ok bool) {
	if imm >= 0 && uint64(imm) < 1<<12 {
		w, _ := addSubImm12(boolToBit(sub), 0, is64, rd, rn, uint32(imm), false)
		return w, sub, true
	}
	if imm < 0 && uint64(-imm) < 1<<12 {
		w, _ := addSubImm12(boolToBit(!sub), 0, is64, rd, rn, uint32(-imm), false)
		return w, !sub, true
	}
	return 0, sub, false
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// EmitLogicalImm encodes AND/ORR/EOR/ANDS Rd, Rn, #imm using the
// bitmask-immediate encoding (see bitmask.go). ok is false if value is
// not representable as a bitmask immediate.
func EmitLogicalImm(op LogicalOp, is64 bool, rd, rn Register, value uint64) (uint32, bool) {
	n, immr, imms, ok := EncodeBitmaskImmediate(value, is64)
	if !ok {
		return 0, false
	}
	var opc uint32
	switch op {
	case LogicalAND:
		opc = 0
	case LogicalORR:
		opc = 1
	case LogicalEOR:
		opc = 2
	case LogicalANDS:
		opc = 3
	default:
		return 0, false
	}
	word := sfBit(is64) | opc<<29 | 0b100100<<23 | n<<22 | immr<<16 | imms<<10 | rn.enc()<<5 | rd.enc()
	return word, true
}

// MoveWideOp selects MOVZ/MOVN/MOVK.
type MoveWideOp uint8

const (
	MoveWideZ MoveWideOp = iota
	MoveWideN
	MoveWideK
)

// EmitMoveWide encodes MOVZ/MOVN/MOVK Rd, #imm16, LSL #(hw*16). hw
// selects which 16-bit lane of the destination the immediate targets
// (0-1 for 32-bit registers, 0-3 for 64-bit).
func EmitMoveWide(op MoveWideOp, is64 bool, rd Register, imm16 uint32, hw uint32) (uint32, bool) {
	if imm16 >= 1<<16 {
		return 0, false
	}
	maxHw := uint32(1)
	if is64 {
		maxHw = 3
	}
	if hw > maxHw {
		return 0, false
	}
	var opc uint32
	switch op {
	case MoveWideN:
		opc = 0
	case MoveWideZ:
		opc = 2
	case MoveWideK:
		opc = 3
	}
	return sfBit(is64) | opc<<29 | 0b100101<<23 | hw<<21 | (imm16&0xffff)<<5 | rd.enc(), true
}

// EmitMOVImmediate loads a constant into rd using the minimum number of
// MOVZ/MOVN/MOVK instructions (1 to 4 for a 64-bit register, 1 or 2 for
// a 32-bit one), choosing MOVN as the base when it shortens the
// sequence (e.g. for values with mostly-set high bits).
func EmitMOVImmediate(is64 bool, rd Register, value uint64) []uint32 {
	if !is64 {
		value &= 0xffffffff
	}
	lanes := 4
	if !is64 {
		lanes = 2
	}

	hw16 := make([]uint32, lanes)
	nonzero := 0
	for i := 0; i < lanes; i++ {
		hw16[i] = uint32(value>>(16*uint(i))) & 0xffff
		if hw16[i] != 0 {
			nonzero++
		}
	}

	allOnesLanes := 0
	for i := 0; i < lanes; i++ {
		if hw16[i] == 0xffff {
			allOnesLanes++
		}
	}

	var out []uint32
	if allOnesLanes > lanes-nonzero && allOnesLanes > 0 {
		// MOVN base: start from all-ones and MOVK in the lanes that
		// differ from 0xffff.
		base := ^value
		if !is64 {
			base &= 0xffffffff
		}
		first := true
		for i := 0; i < lanes; i++ {
			lane := uint32(base>>(16*uint(i))) & 0xffff
			if hw16[i] == 0xffff {
				continue
			}
			if first {
				w, _ := EmitMoveWide(MoveWideN, is64, rd, lane, uint32(i))
				out = append(out, w)
				first = false
				continue
			}
			if hw16[i] != 0xffff {
				w, _ := EmitMoveWide(MoveWideK, is64, rd, hw16[i], uint32(i))
				out = append(out, w)
			}
		}
		if len(out) == 0 {
			w, _ := EmitMoveWide(MoveWideN, is64, rd, 0, 0)
			out = append(out, w)
		}
		return out
	}

	first := true
	for i := 0; i < lanes; i++ {
		if hw16[i] == 0 {
			continue
		}
		if first {
			w, _ := EmitMoveWide(MoveWideZ, is64, rd, hw16[i], uint32(i))
			out = append(out, w)
			first = false
			continue
		}
		if hw16[i] != 0 {
			w, _ := EmitMoveWide(MoveWideK, is64, rd, hw16[i], uint32(i))
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		w, _ := EmitMoveWide(MoveWideZ, is64, rd, 0, 0)
		out = append(out, w)
	}
	return out
}
