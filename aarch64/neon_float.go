package aarch64

// NEON/FP floating-point instructions: scalar and vector binary/unary
// arithmetic, fused multiply-add, compares, and conversions between
// integer and floating-point. Ftype selects single (0) vs double (1)
// precision for scalar forms; vector forms take an Arrangement whose
// element size must be S or D.

// FPType selects the scalar floating-point precision.
type FPType uint8

const (
	FPSingle FPType = 0
	FPDouble FPType = 1
)

func (t FPType) ftype() uint32 {
	if t == FPDouble {
		return 1
	}
	return 0
}

// FPBinOp enumerates the scalar floating-point data-processing (two
// source) family.
type FPBinOp uint8

const (
	FPAdd FPBinOp = iota
	FPSub
	FPMul
	FPDiv
	FPMax
	FPMin
)

// EmitFPBinary encodes FADD/FSUB/FMUL/FDIV/FMAX/FMIN Sd/Dd, Sn/Dn,
// Sm/Dm (scalar floating-point, two register sources).
func EmitFPBinary(op FPBinOp, t FPType, vd, vn, vm VReg) uint32 {
	var opcode uint32
	switch op {
	case FPAdd:
		opcode = 0b0010
	case FPSub:
		opcode = 0b0011
	case FPMul:
		opcode = 0b0000
	case FPDiv:
		opcode = 0b0001
	case FPMax:
		opcode = 0b0100
	case FPMin:
		opcode = 0b0101
	}
	return 0b00011110<<24 | t.ftype()<<22 | 1<<21 | vm.enc()<<16 | opcode<<12 | 0b10<<10 | vn.enc()<<5 | vd.enc()
}

// EmitFPCompare encodes FCMP Sn/Dn, Sm/Dm (scalar compare, sets
// condition flags).
func EmitFPCompare(t FPType, vn, vm VReg) uint32 {
	return 0b00011110<<24 | t.ftype()<<22 | 1<<21 | vm.enc()<<16 | 0b1000<<10 | vn.enc()<<5
}

// EmitFPCompareZero encodes FCMP Sn/Dn, #0.0.
func EmitFPCompareZero(t FPType, vn VReg) uint32 {
	return 0b00011110<<24 | t.ftype()<<22 | 1<<21 | 0b001000<<10 | vn.enc()<<5 | 0b01000
}

// FPUnaryOp enumerates the scalar floating-point data-processing (one
// source) family.
type FPUnaryOp uint8

const (
	FPMov FPUnaryOp = iota
	FPAbs
	FPNeg
	FPSqrt
)

// EmitFPUnary encodes FMOV/FABS/FNEG/FSQRT Sd/Dd, Sn/Dn.
func EmitFPUnary(op FPUnaryOp, t FPType, vd, vn VReg) uint32 {
	var opcode uint32
	switch op {
	case FPMov:
		opcode = 0b000000
	case FPAbs:
		opcode = 0b000001
	case FPNeg:
		opcode = 0b000010
	case FPSqrt:
		opcode = 0b000011
	}
	return 0b00011110<<24 | t.ftype()<<22 | 1<<21 | opcode<<15 | 0b10000<<10 | vn.enc()<<5 | vd.enc()
}

// FMAOp selects the sign combination of the fused multiply-add family.
type FMAOp uint8

const (
	FMAdd FMAOp = iota
	FMSub
)

// EmitFMADD encodes FMADD/FMSUB Sd/Dd, Sn, Sm, Sa (scalar fused
// multiply-add/subtract, rounded once).
func EmitFMADD(op FMAOp, t FPType, vd, vn, vm, va VReg) uint32 {
	o0 := uint32(0)
	if op == FMSub {
		o0 = 1
	}
	return 0b00011111<<24 | t.ftype()<<22 | vm.enc()<<16 | o0<<15 | va.enc()<<10 | vn.enc()<<5 | vd.enc()
}

// EmitFCVTIntegerToFP encodes SCVTF/UCVTF Sd/Dd, Rn (general register
// to floating-point conversion).
func EmitFCVTIntegerToFP(signed, is64 bool, t FPType, vd VReg, rn Register) uint32 {
	opcode := uint32(0b010)
	if !signed {
		opcode = 0b011
	}
	return sfBit(is64) | 0b0011110<<24 | t.ftype()<<22 | 1<<21 | opcode<<16 | rn.enc()<<5 | vd.enc()
}

// RoundMode selects the rounding mode of a floating-point-to-integer
// conversion.
type RoundMode uint8

const (
	RoundZero RoundMode = iota // FCVTZ*: round toward zero (truncate)
	RoundNearestTiesAway
	RoundMinusInf
	RoundPlusInf
	RoundNearestTiesEven
)

// EmitFCVTToInteger encodes FCVTZS/FCVTZU (and the other rounding-mode
// variants) Rd, Sn/Dn: floating-point to general register conversion.
func EmitFCVTToInteger(signed, is64 bool, mode RoundMode, t FPType, rd Register, vn VReg) uint32 {
	var rmode, opc uint32
	switch mode {
	case RoundNearestTiesAway:
		rmode, opc = 0b00, 0b100
	case RoundMinusInf:
		rmode, opc = 0b10, 0b000
	case RoundPlusInf:
		rmode, opc = 0b01, 0b000
	case RoundNearestTiesEven:
		rmode, opc = 0b00, 0b000
	default: // RoundZero
		rmode, opc = 0b11, 0b000
	}
	if !signed {
		opc |= 1
	}
	return sfBit(is64) | 0b0011110<<24 | t.ftype()<<22 | 1<<21 | rmode<<19 | opc<<16 | vn.enc()<<5 | rd.enc()
}

// VecFPOp enumerates the vector (three-register-same) floating-point
// family.
type VecFPOp uint8

const (
	VecFADD VecFPOp = iota
	VecFSUB
	VecFMUL
	VecFDIV
	VecFMAX
	VecFMIN
	VecFCMEQ
	VecFCMGT
	VecFCMGE
)

// EmitVecFPOp encodes a three-register-same vector floating-point
// instruction; a's element size selects S or D lanes.
func EmitVecFPOp(op VecFPOp, a Arrangement, vd, vn, vm VReg) uint32 {
	q := a.Q()
	sz := uint32(0)
	if a.ElementSize() == arrSize64 {
		sz = 1
	}
	switch op {
	case VecFADD:
		return q<<30 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b110101<<10 | vn.enc()<<5 | vd.enc()
	case VecFSUB:
		return q<<30 | 0b01110<<24 | 1<<23 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b110101<<10 | vn.enc()<<5 | vd.enc()
	case VecFMUL:
		return q<<30 | 1<<29 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b110111<<10 | vn.enc()<<5 | vd.enc()
	case VecFDIV:
		return q<<30 | 1<<29 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111111<<10 | vn.enc()<<5 | vd.enc()
	case VecFMAX:
		return q<<30 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111101<<10 | vn.enc()<<5 | vd.enc()
	case VecFMIN:
		return q<<30 | 0b01110<<24 | 1<<23 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111101<<10 | vn.enc()<<5 | vd.enc()
	case VecFCMEQ:
		return q<<30 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111001<<10 | vn.enc()<<5 | vd.enc()
	case VecFCMGT:
		return q<<30 | 1<<29 | 0b01110<<24 | 1<<23 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111001<<10 | vn.enc()<<5 | vd.enc()
	case VecFCMGE:
		return q<<30 | 1<<29 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b111001<<10 | vn.enc()<<5 | vd.enc()
	}
	return 0
}

// EmitVecFMLA encodes FMLA Vd.<T>, Vn.<T>, Vm.<T> (vector fused
// multiply-accumulate, no separate rounding).
func EmitVecFMLA(a Arrangement, vd, vn, vm VReg) uint32 {
	q := a.Q()
	sz := uint32(0)
	if a.ElementSize() == arrSize64 {
		sz = 1
	}
	return q<<30 | 0b01110<<24 | sz<<22 | 1<<21 | vm.enc()<<16 | 0b110011<<10 | vn.enc()<<5 | vd.enc()
}
