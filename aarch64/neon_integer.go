package aarch64

// NEON integer instructions: arithmetic, logical, compare, permute,
// pairwise reduce, shift, and extend/narrow forms, plus the
// DUP/INS/SMOV/UMOV lane-movement family. All vector forms take an
// Arrangement describing element size and register width (64- vs
// 128-bit); scalar forms take ArrangementB/H/S/D.

func neonQU(a Arrangement) (q, sizeField uint32) {
	return a.Q(), a.ElementSize()
}

// VecIntOp enumerates the three-register-same integer ALU family.
type VecIntOp uint8

const (
	VecADD VecIntOp = iota
	VecSUB
	VecAND
	VecORR
	VecEOR
	VecBIC
	VecORN
	VecCMEQ
	VecCMGT
	VecCMGE
	VecCMHI
	VecCMHS
	VecMUL
	VecSMAX
	VecSMIN
	VecUMAX
	VecUMIN
)

// EmitVecIntOp encodes a three-register-same vector integer
// instruction over the given arrangement.
func EmitVecIntOp(op VecIntOp, a Arrangement, vd, vn, vm VReg) uint32 {
	q, size := neonQU(a)
	switch op {
	case VecADD:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b100001<<10 | vn.enc()<<5 | vd.enc()
	case VecSUB:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b100001<<10 | vn.enc()<<5 | vd.enc()
	case VecAND:
		return q<<30 | 0b01110<<24 | 0<<22 | 1<<21 | vm.enc()<<16 | 0b000111<<10 | vn.enc()<<5 | vd.enc()
	case VecBIC:
		return q<<30 | 0b01110<<24 | 1<<22 | 1<<21 | vm.enc()<<16 | 0b000111<<10 | vn.enc()<<5 | vd.enc()
	case VecORR:
		return q<<30 | 0b01110<<24 | 2<<22 | 1<<21 | vm.enc()<<16 | 0b000111<<10 | vn.enc()<<5 | vd.enc()
	case VecORN:
		return q<<30 | 0b01110<<24 | 3<<22 | 1<<21 | vm.enc()<<16 | 0b000111<<10 | vn.enc()<<5 | vd.enc()
	case VecEOR:
		return q<<30 | 1<<29 | 0b01110<<24 | 0<<22 | 1<<21 | vm.enc()<<16 | 0b000111<<10 | vn.enc()<<5 | vd.enc()
	case VecCMEQ:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b100011<<10 | vn.enc()<<5 | vd.enc()
	case VecCMGT:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b001101<<10 | vn.enc()<<5 | vd.enc()
	case VecCMGE:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b001111<<10 | vn.enc()<<5 | vd.enc()
	case VecCMHI:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b001101<<10 | vn.enc()<<5 | vd.enc()
	case VecCMHS:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b001111<<10 | vn.enc()<<5 | vd.enc()
	case VecMUL:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b100111<<10 | vn.enc()<<5 | vd.enc()
	case VecSMAX:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b011001<<10 | vn.enc()<<5 | vd.enc()
	case VecSMIN:
		return q<<30 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b011011<<10 | vn.enc()<<5 | vd.enc()
	case VecUMAX:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b011001<<10 | vn.enc()<<5 | vd.enc()
	case VecUMIN:
		return q<<30 | 1<<29 | 0b01110<<24 | size<<22 | 1<<21 | vm.enc()<<16 | 0b011011<<10 | vn.enc()<<5 | vd.enc()
	}
	return 0
}

// twoRegMisc encodes the two-register-miscellaneous group shared by
// NOT/NEG/ABS and similar single-operand vector instructions.
func twoRegMisc(u, q, size, opcode uint32, vd, vn VReg) uint32 {
	return q<<30 | u<<29 | 0b01110<<24 | size<<22 | 0b10000<<17 | opcode<<12 | 0b10<<10 | vn.enc()<<5 | vd.enc()
}

// EmitVecNOT encodes NOT Vd.<T>, Vn.<T> (bitwise complement, a special
// case of the two-register-miscellaneous encoding group).
func EmitVecNOT(a Arrangement, vd, vn VReg) uint32 {
	q, _ := neonQU(a)
	return twoRegMisc(1, q, 0, 0b00101, vd, vn)
}

// EmitVecNEG encodes NEG Vd.<T>, Vn.<T>.
func EmitVecNEG(a Arrangement, vd, vn VReg) uint32 {
	q, size := neonQU(a)
	return twoRegMisc(1, q, size, 0b01011, vd, vn)
}

// EmitVecABS encodes ABS Vd.<T>, Vn.<T>.
func EmitVecABS(a Arrangement, vd, vn VReg) uint32 {
	q, size := neonQU(a)
	return twoRegMisc(0, q, size, 0b01011, vd, vn)
}

// ShiftImmOp selects the shift-by-immediate family member.
type ShiftImmOp uint8

const (
	ShiftImmSHL ShiftImmOp = iota
	ShiftImmSSHR
	ShiftImmUSHR
)

// EmitVecShiftImm encodes SHL/SSHR/USHR Vd.<T>, Vn.<T>, #amount. The
// immh:immb encoding biases amount against the element size per the
// architecture's shift-immediate convention.
func EmitVecShiftImm(op ShiftImmOp, a Arrangement, vd, vn VReg, amount uint32) uint32 {
	q, _ := neonQU(a)
	elemBits := uint32(8) << a.ElementSize()
	var immhImmb uint32
	var u, opcode uint32
	switch op {
	case ShiftImmSHL:
		immhImmb = elemBits + amount
		opcode = 0b01010
	case ShiftImmSSHR:
		immhImmb = 2*elemBits - amount
		opcode = 0b00000
	case ShiftImmUSHR:
		immhImmb = 2*elemBits - amount
		u = 1
		opcode = 0b00000
	}
	return q<<30 | u<<29 | 0b011110<<23 | (immhImmb&0x7f)<<16 | opcode<<11 | 1<<10 | vn.enc()<<5 | vd.enc()
}

// EmitDUPElement encodes DUP Vd.<T>, Vn.<Ts>[index]: broadcasts one
// lane of Vn across Vd.
func EmitDUPElement(a Arrangement, vd, vn VReg, index uint32) uint32 {
	q, _ := neonQU(a)
	imm5 := dupImm5(a, index)
	return q<<30 | 0b001110000<<21 | imm5<<16 | 0b000001<<10 | vn.enc()<<5 | vd.enc()
}

func dupImm5(a Arrangement, index uint32) uint32 {
	switch a.ElementSize() {
	case arrSize8:
		return (index<<1 | 1) & 0x1f
	case arrSize16:
		return (index<<2 | 0b10) & 0x1f
	case arrSize32:
		return (index<<3 | 0b100) & 0x1f
	default:
		return (index<<4 | 0b1000) & 0x1f
	}
}

// EmitINSGeneral encodes INS Vd.<Ts>[index], Rn: copies a general
// register into one lane of Vd.
func EmitINSGeneral(a Arrangement, vd VReg, index uint32, rn Register) uint32 {
	imm5 := dupImm5(a, index)
	return 0b01001110000<<21 | imm5<<16 | 0b000111<<10 | rn.enc()<<5 | vd.enc()
}

// EmitUMOV encodes UMOV Rd, Vn.<Ts>[index]: moves one lane into a
// general register, zero-extended.
func EmitUMOV(a Arrangement, is64 bool, rd Register, vn VReg, index uint32) uint32 {
	q := uint32(0)
	if is64 {
		q = 1
	}
	imm5 := dupImm5(a, index)
	return q<<30 | 0b001110000<<21 | imm5<<16 | 0b001111<<10 | vn.enc()<<5 | rd.enc()
}

// EmitSMOV encodes SMOV Rd, Vn.<Ts>[index]: moves one lane into a
// general register, sign-extended.
func EmitSMOV(a Arrangement, is64 bool, rd Register, vn VReg, index uint32) uint32 {
	q := uint32(0)
	if is64 {
		q = 1
	}
	imm5 := dupImm5(a, index)
	return q<<30 | 0b001110000<<21 | imm5<<16 | 0b001011<<10 | vn.enc()<<5 | rd.enc()
}

// EmitADDV encodes ADDV Bd/Hd/Sd, Vn.<T>: across-lanes add reduction.
func EmitADDV(a Arrangement, vd, vn VReg) uint32 {
	q, size := neonQU(a)
	return q<<30 | 0b01110<<24 | size<<22 | 0b11000<<17 | 0b11011<<12 | 0b10<<10 | vn.enc()<<5 | vd.enc()
}

// EmitEXT encodes EXT Vd.16B, Vn.16B, Vm.16B, #index: concatenates and
// extracts a byte-aligned window across two vectors.
func EmitEXT(a Arrangement, vd, vn, vm VReg, index uint32) uint32 {
	q, _ := neonQU(a)
	return q<<30 | 0b101110000<<21 | vm.enc()<<16 | (index&0xf)<<11 | vn.enc()<<5 | vd.enc()
}
