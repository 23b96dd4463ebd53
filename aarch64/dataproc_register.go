package aarch64

// Data-processing (register) instructions: ADD/SUB family, logical
// family, variable/immediate shifts, multiply-add family, division.
// Each has 32-bit and 64-bit forms selected by is64.

func sfBit(is64 bool) uint32 {
	if is64 {
		return 1 << 31
	}
	return 0
}

func shiftEncBits(p RegisterParam) (shiftOp, amount uint32) {
	if p.isShifted() {
		return uint32(p.shift), p.amount
	}
	return 0, 0
}

// addSubRegister encodes the Add/subtract (shifted register) form used
// by ADD/ADDS/SUB/SUBS when operand 3 carries a shift (or none).
func addSubRegister(op, s uint32, is64 bool, rd, rn Register, p RegisterParam) uint32 {
	shiftOp, amount := shiftEncBits(p)
	return sfBit(is64) | op<<30 | s<<29 | 0b01011<<24 | shiftOp<<22 |
		p.Reg.enc()<<16 | (amount&0x3f)<<10 | rn.enc()<<5 | rd.enc()
}

// addSubExtended encodes the Add/subtract (extended register) form used
// when operand 3 carries an extend.
func addSubExtended(op, s uint32, is64 bool, rd, rn Register, p RegisterParam) uint32 {
	return sfBit(is64) | op<<30 | s<<29 | 0b01011<<24 | 1<<21 |
		p.Reg.enc()<<16 | uint32(p.extend)<<13 | (p.amount&0x7)<<10 | rn.enc()<<5 | rd.enc()
}

func addSubFamily(op, s uint32, is64 bool, rd, rn Register, p RegisterParam) uint32 {
	if p.isExtended() {
		return addSubExtended(op, s, is64, rd, rn, p)
	}
	return addSubRegister(op, s, is64, rd, rn, p)
}

// EmitADDRegister encodes ADD Rd, Rn, Rm{, shift #amount | extend #amount}.
func EmitADDRegister(is64 bool, rd, rn Register, rm RegisterParam) uint32 {
	return addSubFamily(0, 0, is64, rd, rn, rm)
}

// EmitADDSRegister encodes ADDS (flag-setting ADD).
func EmitADDSRegister(is64 bool, rd, rn Register, rm RegisterParam) uint32 {
	return addSubFamily(0, 1, is64, rd, rn, rm)
}

// EmitSUBRegister encodes SUB Rd, Rn, Rm{, shift|extend}.
func EmitSUBRegister(is64 bool, rd, rn Register, rm RegisterParam) uint32 {
	return addSubFamily(1, 0, is64, rd, rn, rm)
}

// EmitSUBSRegister encodes SUBS (flag-setting SUB).
func EmitSUBSRegister(is64 bool, rd, rn Register, rm RegisterParam) uint32 {
	return addSubFamily(1, 1, is64, rd, rn, rm)
}

// EmitCMPRegister encodes CMP Rn, Rm as an alias of SUBS Rzr, Rn, Rm.
func EmitCMPRegister(is64 bool, rn Register, rm RegisterParam) uint32 {
	return EmitSUBSRegister(is64, RZR, rn, rm)
}

// EmitCMNRegister encodes CMN Rn, Rm as an alias of ADDS Rzr, Rn, Rm.
func EmitCMNRegister(is64 bool, rn Register, rm RegisterParam) uint32 {
	return EmitADDSRegister(is64, RZR, rn, rm)
}

// LogicalOp enumerates the logical (shifted register) family opcodes.
type LogicalOp uint8

const (
	LogicalAND LogicalOp = iota
	LogicalBIC           // AND NOT
	LogicalORR
	LogicalORN
	LogicalEOR
	LogicalEON
	LogicalANDS
	LogicalBICS
)

// EmitLogicalRegister encodes AND/BIC/ORR/ORN/EOR/EON/ANDS/BICS
// (shifted register), with an optional shift on operand 3.
func EmitLogicalRegister(op LogicalOp, is64 bool, rd, rn Register, rm RegisterParam) uint32 {
	shiftOp, amount := shiftEncBits(rm)
	var opc, n uint32
	switch op {
	case LogicalAND:
		opc, n = 0, 0
	case LogicalBIC:
		opc, n = 0, 1
	case LogicalORR:
		opc, n = 1, 0
	case LogicalORN:
		opc, n = 1, 1
	case LogicalEOR:
		opc, n = 2, 0
	case LogicalEON:
		opc, n = 2, 1
	case LogicalANDS:
		opc, n = 3, 0
	case LogicalBICS:
		opc, n = 3, 1
	}
	return sfBit(is64) | opc<<29 | 0b01010<<24 | shiftOp<<22 | n<<21 |
		rm.Reg.enc()<<16 | (amount&0x3f)<<10 | rn.enc()<<5 | rd.enc()
}

// EmitMOVRegister encodes MOV Rd, Rn as an alias of ORR Rd, RZR, Rn.
func EmitMOVRegister(is64 bool, rd, rn Register) uint32 {
	return EmitLogicalRegister(LogicalORR, is64, rd, RZR, Reg(rn))
}

// EmitTSTRegister encodes TST Rn, Rm as an alias of ANDS RZR, Rn, Rm.
func EmitTSTRegister(is64 bool, rn Register, rm RegisterParam) uint32 {
	return EmitLogicalRegister(LogicalANDS, is64, RZR, rn, rm)
}

// ShiftVariableOp identifies a variable (register-controlled) shift.
type ShiftVariableOp uint8

const (
	ShiftOpLSLV ShiftVariableOp = iota
	ShiftOpLSRV
	ShiftOpASRV
	ShiftOpRORV
)

// EmitShiftVariable encodes LSLV/LSRV/ASRV/RORV Rd, Rn, Rm (shift
// amount taken from a register).
func EmitShiftVariable(op ShiftVariableOp, is64 bool, rd, rn, rm Register) uint32 {
	return sfBit(is64) | 0b11010110<<21 |
		rm.enc()<<16 | (0b001000+uint32(op))<<10 | rn.enc()<<5 | rd.enc()
}

// EmitLSLImmediate encodes LSL Rd, Rn, #shift as an alias of UBFM.
func EmitLSLImmediate(is64 bool, rd, rn Register, shift uint32) uint32 {
	width := uint32(32)
	if is64 {
		width = 64
	}
	immr := (width - shift) % width
	imms := width - 1 - shift
	return EmitUBFM(is64, rd, rn, immr, imms)
}

// EmitLSRImmediate encodes LSR Rd, Rn, #shift as an alias of UBFM.
func EmitLSRImmediate(is64 bool, rd, rn Register, shift uint32) uint32 {
	width := uint32(32)
	if is64 {
		width = 64
	}
	return EmitUBFM(is64, rd, rn, shift, width-1)
}

// EmitASRImmediate encodes ASR Rd, Rn, #shift as an alias of SBFM.
func EmitASRImmediate(is64 bool, rd, rn Register, shift uint32) uint32 {
	width := uint32(32)
	if is64 {
		width = 64
	}
	return EmitSBFM(is64, rd, rn, shift, width-1)
}

// EmitRORImmediate encodes ROR Rd, Rn, #shift as EXTR Rd, Rn, Rn, #shift.
func EmitRORImmediate(is64 bool, rd, rn Register, shift uint32) uint32 {
	return EmitEXTR(is64, rd, rn, rn, shift)
}

// EmitEXTR encodes EXTR Rd, Rn, Rm, #lsb (extract register).
func EmitEXTR(is64 bool, rd, rn, rm Register, lsb uint32) uint32 {
	n := uint32(0)
	if is64 {
		n = 1
	}
	width := uint32(6)
	if !is64 {
		width = 5
	}
	_ = width
	return sfBit(is64) | 0b00100111<<23 | n<<22 | rm.enc()<<16 | (lsb&0x3f)<<10 | rn.enc()<<5 | rd.enc()
}

// MulAddOp enumerates the multiply-add family.
type MulAddOp uint8

const (
	MulAddMADD MulAddOp = iota
	MulAddMSUB
	MulAddSMADDL
	MulAddSMSUBL
	MulAddUMADDL
	MulAddUMSUBL
)

// EmitMulAdd encodes MADD/MSUB (32- or 64-bit) and the *L widening forms
// (always 64-bit destination, 32-bit sources).
func EmitMulAdd(op MulAddOp, is64 bool, rd, rn, rm, ra Register) uint32 {
	switch op {
	case MulAddMADD:
		return sfBit(is64) | 0b0011011<<24 | rm.enc()<<16 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	case MulAddMSUB:
		return sfBit(is64) | 0b0011011<<24 | rm.enc()<<16 | 1<<15 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	case MulAddSMADDL:
		return 1<<31 | 0b0011011<<24 | 0b001<<21 | rm.enc()<<16 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	case MulAddSMSUBL:
		return 1<<31 | 0b0011011<<24 | 0b001<<21 | rm.enc()<<16 | 1<<15 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	case MulAddUMADDL:
		return 1<<31 | 0b0011011<<24 | 0b101<<21 | rm.enc()<<16 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	case MulAddUMSUBL:
		return 1<<31 | 0b0011011<<24 | 0b101<<21 | rm.enc()<<16 | 1<<15 | ra.enc()<<10 | rn.enc()<<5 | rd.enc()
	}
	return 0
}

// EmitMUL encodes MUL Rd, Rn, Rm as an alias of MADD Rd, Rn, Rm, RZR.
func EmitMUL(is64 bool, rd, rn, rm Register) uint32 {
	return EmitMulAdd(MulAddMADD, is64, rd, rn, rm, RZR)
}

// EmitSDIV encodes SDIV Rd, Rn, Rm (signed division).
func EmitSDIV(is64 bool, rd, rn, rm Register) uint32 {
	return sfBit(is64) | 0b11010110<<21 | rm.enc()<<16 | 0b000011<<10 | rn.enc()<<5 | rd.enc()
}

// EmitUDIV encodes UDIV Rd, Rn, Rm (unsigned division).
func EmitUDIV(is64 bool, rd, rn, rm Register) uint32 {
	return sfBit(is64) | 0b11010110<<21 | rm.enc()<<16 | 0b000010<<10 | rn.enc()<<5 | rd.enc()
}
