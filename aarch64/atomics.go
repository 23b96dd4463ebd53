package aarch64

// Atomic/exclusive and ordered access instructions: LDAR/STLR (acquire/
// release, no exclusivity), LDXR/STXR (load/store exclusive), and
// LDAXP/STLXP (load/store exclusive pair, acquire/release).

// EmitLDAR encodes LDAR Rt, [Xn] (load-acquire).
func EmitLDAR(size uint32, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | 1<<23 | 1<<22 | 0x1f<<16 | 1<<15 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitSTLR encodes STLR Rt, [Xn] (store-release).
func EmitSTLR(size uint32, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | 1<<23 | 0x1f<<16 | 1<<15 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitLDXR encodes LDXR Rt, [Xn] (load-exclusive).
func EmitLDXR(size uint32, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | 1<<22 | 0x1f<<16 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitSTXR encodes STXR Ws, Rt, [Xn] (store-exclusive): Ws receives the
// status (0 on success).
func EmitSTXR(size uint32, ws, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | ws.enc()<<16 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitLDAXR encodes LDAXR Rt, [Xn] (load-exclusive with acquire).
func EmitLDAXR(size uint32, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | 1<<22 | 0x1f<<16 | 1<<15 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitSTLXR encodes STLXR Ws, Rt, [Xn] (store-exclusive with release).
func EmitSTLXR(size uint32, ws, rt, rn Register) uint32 {
	return size<<30 | 0b001000<<24 | ws.enc()<<16 | 1<<15 | 0x1f<<10 | rn.enc()<<5 | rt.enc()
}

// EmitLDAXP encodes LDAXP Rt1, Rt2, [Xn] (load-exclusive pair with
// acquire). is64 selects W or X register pairs.
func EmitLDAXP(is64 bool, rt1, rt2, rn Register) uint32 {
	sz := uint32(0)
	if is64 {
		sz = 1
	}
	return 1<<31 | sz<<30 | 0b001000<<24 | 1<<22 | 1<<21 | 0x1f<<16 | 1<<15 | rt2.enc()<<10 | rn.enc()<<5 | rt1.enc()
}

// EmitSTLXP encodes STLXP Ws, Rt1, Rt2, [Xn] (store-exclusive pair with
// release).
func EmitSTLXP(is64 bool, ws, rt1, rt2, rn Register) uint32 {
	sz := uint32(0)
	if is64 {
		sz = 1
	}
	return 1<<31 | sz<<30 | 0b001000<<24 | 1<<21 | 1<<15 | ws.enc()<<16 | rt2.enc()<<10 | rn.enc()<<5 | rt1.enc()
}
