package aarch64

// Bitfield family: BFM/SBFM/UBFM and their aliases (BFI/BFXIL, SBFX/
// UBFX, SXTB/SXTH/SXTW, UXTB/UXTH).

func bitfieldOp(opc uint32, is64 bool, rd, rn Register, immr, imms uint32) uint32 {
	n := uint32(0)
	if is64 {
		n = 1
	}
	return sfBit(is64) | opc<<29 | 0b100110<<23 | n<<22 | (immr&0x3f)<<16 | (imms&0x3f)<<10 | rn.enc()<<5 | rd.enc()
}

// EmitSBFM encodes SBFM Rd, Rn, #immr, #imms (signed bitfield move).
func EmitSBFM(is64 bool, rd, rn Register, immr, imms uint32) uint32 {
	return bitfieldOp(0, is64, rd, rn, immr, imms)
}

// EmitBFM encodes BFM Rd, Rn, #immr, #imms (bitfield move, merging into
// the unaffected bits of Rd).
func EmitBFM(is64 bool, rd, rn Register, immr, imms uint32) uint32 {
	return bitfieldOp(1, is64, rd, rn, immr, imms)
}

// EmitUBFM encodes UBFM Rd, Rn, #immr, #imms (unsigned bitfield move).
func EmitUBFM(is64 bool, rd, rn Register, immr, imms uint32) uint32 {
	return bitfieldOp(2, is64, rd, rn, immr, imms)
}

func width(is64 bool) uint32 {
	if is64 {
		return 64
	}
	return 32
}

// EmitSBFX encodes SBFX Rd, Rn, #lsb, #w as an alias of SBFM.
func EmitSBFX(is64 bool, rd, rn Register, lsb, w uint32) uint32 {
	return EmitSBFM(is64, rd, rn, lsb, lsb+w-1)
}

// EmitUBFX encodes UBFX Rd, Rn, #lsb, #w as an alias of UBFM.
func EmitUBFX(is64 bool, rd, rn Register, lsb, w uint32) uint32 {
	return EmitUBFM(is64, rd, rn, lsb, lsb+w-1)
}

// EmitBFI encodes BFI Rd, Rn, #lsb, #w (bitfield insert) as an alias of
// BFM.
func EmitBFI(is64 bool, rd, rn Register, lsb, w uint32) uint32 {
	wd := width(is64)
	immr := (wd - lsb) % wd
	imms := w - 1
	return EmitBFM(is64, rd, rn, immr, imms)
}

// EmitBFXIL encodes BFXIL Rd, Rn, #lsb, #w (bitfield extract and
// insert, low) as an alias of BFM.
func EmitBFXIL(is64 bool, rd, rn Register, lsb, w uint32) uint32 {
	return EmitBFM(is64, rd, rn, lsb, lsb+w-1)
}

// EmitSXTB encodes SXTB Rd, Rn (sign-extend byte) as an alias of SBFM.
func EmitSXTB(is64 bool, rd, rn Register) uint32 { return EmitSBFM(is64, rd, rn, 0, 7) }

// EmitSXTH encodes SXTH Rd, Rn (sign-extend halfword) as an alias of SBFM.
func EmitSXTH(is64 bool, rd, rn Register) uint32 { return EmitSBFM(is64, rd, rn, 0, 15) }

// EmitSXTW encodes SXTW Xd, Wn (sign-extend word); always 64-bit dest.
func EmitSXTW(rd, rn Register) uint32 { return EmitSBFM(true, rd, rn, 0, 31) }

// EmitUXTB encodes UXTB Rd, Rn (zero-extend byte) as an alias of UBFM.
func EmitUXTB(rd, rn Register) uint32 { return EmitUBFM(false, rd, rn, 0, 7) }

// EmitUXTH encodes UXTH Rd, Rn (zero-extend halfword) as an alias of UBFM.
func EmitUXTH(rd, rn Register) uint32 { return EmitUBFM(false, rd, rn, 0, 15) }
