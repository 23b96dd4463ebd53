package aarch64

// AES crypto extension instructions. All operate on a full 128-bit
// vector register (Arrangement16B).

// EmitAESE encodes AESE Vd.16B, Vn.16B (AES single-round encryption).
func EmitAESE(vd, vn VReg) uint32 { return aesOp(0b00100, vd, vn) }

// EmitAESD encodes AESD Vd.16B, Vn.16B (AES single-round decryption).
func EmitAESD(vd, vn VReg) uint32 { return aesOp(0b00101, vd, vn) }

// EmitAESMC encodes AESMC Vd.16B, Vn.16B (AES mix columns).
func EmitAESMC(vd, vn VReg) uint32 { return aesOp(0b00110, vd, vn) }

// EmitAESIMC encodes AESIMC Vd.16B, Vn.16B (AES inverse mix columns).
func EmitAESIMC(vd, vn VReg) uint32 { return aesOp(0b00111, vd, vn) }

func aesOp(opcode uint32, vd, vn VReg) uint32 {
	return 0b01001110<<24 | 0b10100<<17 | opcode<<12 | 0b10<<10 | vn.enc()<<5 | vd.enc()
}
