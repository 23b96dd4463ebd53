package aarch64

// System, barrier, and hint instructions: NOP and friends, BRK, the
// DMB/DSB/ISB memory barriers, and MRS/MSR accessors for the handful of
// system registers the run-time needs (flags, FP status/control,
// thread-pointer, cycle counter).

// EmitNOP encodes NOP.
func EmitNOP() uint32 { return 0xd503201f }

// HintOp enumerates the HINT-space instructions sharing NOP's encoding
// family, distinguished by the CRm:op2 field.
type HintOp uint8

const (
	HintYIELD HintOp = 1
	HintWFE   HintOp = 2
	HintWFI   HintOp = 3
	HintSEV   HintOp = 4
	HintSEVL  HintOp = 5
)

// EmitHint encodes a HINT-space instruction (YIELD, WFE, WFI, SEV,
// SEVL).
func EmitHint(op HintOp) uint32 {
	return 0xd503201f | uint32(op)<<5
}

// EmitBRK encodes BRK #imm16 (breakpoint trap).
func EmitBRK(imm16 uint32) uint32 {
	return 0xd4200000 | (imm16&0xffff)<<5
}

// BarrierKind selects the domain/access-type suffix of a DMB/DSB
// barrier (e.g. SY, ISH, ISHLD, ISHST, OSH, NSH). The encoding packs
// CRm as domain<<2|types.
type BarrierKind uint8

const (
	BarrierSY BarrierKind = 0xf
	BarrierST BarrierKind = 0xe
	BarrierLD BarrierKind = 0xd
	BarrierISH BarrierKind = 0xb
	BarrierISHST BarrierKind = 0xa
	BarrierISHLD BarrierKind = 0x9
	BarrierNSH BarrierKind = 0x7
	BarrierOSH BarrierKind = 0x3
)

const barrierBase = 0xd5033000

// EmitDMB encodes DMB <kind> (data memory barrier).
func EmitDMB(kind BarrierKind) uint32 {
	return barrierBase | uint32(kind)<<8 | 5<<5 | 0x1f
}

// EmitDSB encodes DSB <kind> (data synchronization barrier).
func EmitDSB(kind BarrierKind) uint32 {
	return barrierBase | uint32(kind)<<8 | 4<<5 | 0x1f
}

// EmitISB encodes ISB SY (instruction synchronization barrier).
func EmitISB() uint32 {
	return barrierBase | uint32(BarrierSY)<<8 | 6<<5 | 0x1f
}

// SystemRegister names a system register reachable through MRS/MSR,
// identified by its encoded op0:op1:CRn:CRm:op2 field.
type SystemRegister uint32

const (
	SysRegNZCV      SystemRegister = 0b11_011_0100_0010_000
	SysRegFPCR      SystemRegister = 0b11_011_0100_0100_000
	SysRegFPSR      SystemRegister = 0b11_011_0100_0100_001
	SysRegTPIDR_EL0 SystemRegister = 0b11_011_1101_0000_010
	SysRegCNTVCT_EL0 SystemRegister = 0b11_011_1110_0000_010
)

// EmitMRS encodes MRS Xt, <sysreg> (read a system register).
func EmitMRS(rt Register, sysreg SystemRegister) uint32 {
	return 0xd5300000 | uint32(sysreg)<<5 | rt.enc()
}

// EmitMSR encodes MSR <sysreg>, Xt (write a system register).
func EmitMSR(sysreg SystemRegister, rt Register) uint32 {
	return 0xd5100000 | uint32(sysreg)<<5 | rt.enc()
}
