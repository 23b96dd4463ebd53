package aarch64

// Conditional select family: CSEL/CSINC/CSINV/CSNEG and the CSET/CSETM/
// CINC/CINV/CNEG aliases built from them.

// CondSelectOp identifies which of the four conditional-select opcodes
// to encode.
type CondSelectOp uint8

const (
	CondSelectCSEL CondSelectOp = iota
	CondSelectCSINC
	CondSelectCSINV
	CondSelectCSNEG
)

// EmitCondSelect encodes CSEL/CSINC/CSINV/CSNEG Rd, Rn, Rm, cond:
// Rd = Rn if cond holds, else a function of Rm depending on op.
func EmitCondSelect(op CondSelectOp, is64 bool, rd, rn, rm Register, cond Condition) uint32 {
	var opField, op2 uint32
	switch op {
	case CondSelectCSEL:
		opField, op2 = 0, 0
	case CondSelectCSINC:
		opField, op2 = 0, 1
	case CondSelectCSINV:
		opField, op2 = 1, 0
	case CondSelectCSNEG:
		opField, op2 = 1, 1
	}
	return sfBit(is64) | opField<<30 | 0b11010100<<21 | rm.enc()<<16 | cond.enc()<<12 | op2<<10 | rn.enc()<<5 | rd.enc()
}

// EmitCSET encodes CSET Rd, cond as an alias of CSINC Rd, RZR, RZR,
// invert(cond).
func EmitCSET(is64 bool, rd Register, cond Condition) uint32 {
	return EmitCondSelect(CondSelectCSINC, is64, rd, RZR, RZR, cond.Invert())
}

// EmitCSETM encodes CSETM Rd, cond as an alias of CSINV Rd, RZR, RZR,
// invert(cond).
func EmitCSETM(is64 bool, rd Register, cond Condition) uint32 {
	return EmitCondSelect(CondSelectCSINV, is64, rd, RZR, RZR, cond.Invert())
}

// EmitCINC encodes CINC Rd, Rn, cond as an alias of CSINC Rd, Rn, Rn,
// invert(cond).
func EmitCINC(is64 bool, rd, rn Register, cond Condition) uint32 {
	return EmitCondSelect(CondSelectCSINC, is64, rd, rn, rn, cond.Invert())
}

// EmitCINV encodes CINV Rd, Rn, cond as an alias of CSINV Rd, Rn, Rn,
// invert(cond).
func EmitCINV(is64 bool, rd, rn Register, cond Condition) uint32 {
	return EmitCondSelect(CondSelectCSINV, is64, rd, rn, rn, cond.Invert())
}

// EmitCNEG encodes CNEG Rd, Rn, cond as an alias of CSNEG Rd, Rn, Rn,
// invert(cond).
func EmitCNEG(is64 bool, rd, rn Register, cond Condition) uint32 {
	return EmitCondSelect(CondSelectCSNEG, is64, rd, rn, rn, cond.Invert())
}

// ConditionalCompareOp selects CCMP or CCMN.
type ConditionalCompareOp uint8

const (
	CondCompareCCMP ConditionalCompareOp = iota
	CondCompareCCMN
)

// EmitCondCompareImm encodes CCMP/CCMN Rn, #imm5, #nzcv, cond: when
// cond holds, compares Rn against imm5 and sets flags normally;
// otherwise the flags are set directly to nzcv.
func EmitCondCompareImm(op ConditionalCompareOp, is64 bool, rn Register, imm5 uint32, nzcv uint32, cond Condition) uint32 {
	opField := uint32(1) // CCMP
	if op == CondCompareCCMN {
		opField = 0
	}
	return sfBit(is64) | opField<<30 | 1<<29 | 0b11010010<<21 | 1<<11 |
		(imm5&0x1f)<<16 | cond.enc()<<12 | rn.enc()<<5 | (nzcv & 0xf)
}
