package m68k

// moveDescs contributes the data-movement opcode grammar:
// MOVE, MOVEA, MOVEQ, MOVEP, LEA, PEA, MOVEM, EXG, SWAP.
func moveDescs() []opcodeDesc {
	return []opcodeDesc{
		// MOVE uses a non-standard size encoding (01=B, 11=W, 10=L) and
		// its destination EA field is register:mode, bit-reversed relative
		// to every other instruction. Byte moves cannot source an address
		// register.
		{"MOVE.B", opMOVE, []opcodePart{
			{2, "fixed", []uint16{0}},
			{2, "size", []uint16{1}},
			{6, "destination", eaValuesSwapped(eaDataAlterable)},
			{6, "source", eaValues(eaDataSrc)}}},

		{"MOVE", opMOVE, []opcodePart{
			{2, "fixed", []uint16{0}},
			{2, "size", []uint16{2 /* Long */, 3 /* Word */}},
			{6, "destination", eaValuesSwapped(eaDataAlterable)},
			{6, "source", eaValues(eaAll)}}},

		{"MOVEA", opMOVEA, []opcodePart{
			{2, "fixed", []uint16{0}},
			{2, "size", []uint16{2 /* Long */, 3 /* Word */}},
			{3, "address register", nil},
			{3, "fixed", []uint16{1}},
			{6, "source", eaValues(eaAll)}}},

		{"MOVEQ", opMOVEQ, []opcodePart{
			{4, "fixed", []uint16{7}},
			{3, "register", nil},
			{1, "fixed", []uint16{0}},
			{8, "data", nil}}},

		{"MOVEP", opMOVEP, []opcodePart{
			{4, "fixed", []uint16{0}},
			{3, "data register", nil},
			{1, "fixed", []uint16{1}},
			{1, "direction", nil},
			{1, "size", nil},
			{3, "fixed", []uint16{1}},
			{3, "address register", nil}}},

		{"LEA", opLEA, []opcodePart{
			{4, "fixed", []uint16{4}},
			{3, "address register", nil},
			{3, "fixed", []uint16{7}},
			{6, "source", eaValues(eaControl)}}},

		{"PEA", opPEA, []opcodePart{
			{10, "fixed", []uint16{0x121}},
			{6, "source", eaValues(eaControl)}}},

		{"MOVEM (reg to mem)", opMOVEM, []opcodePart{
			{5, "fixed", []uint16{9}},
			{1, "direction", []uint16{0}},
			{3, "fixed", []uint16{1}},
			{1, "size", nil},
			{6, "destination", eaValues(eaInd | eaPreDec | eaDisp | eaIdx | eaAbsW | eaAbsL)}}},

		{"MOVEM (mem to reg)", opMOVEM, []opcodePart{
			{5, "fixed", []uint16{9}},
			{1, "direction", []uint16{1}},
			{3, "fixed", []uint16{1}},
			{1, "size", nil},
			{6, "source", eaValues(eaInd | eaPostInc | eaDisp | eaIdx | eaAbsW | eaAbsL | eaPCDisp | eaPCIdx)}}},

		{"EXG", opEXG, []opcodePart{
			{4, "fixed", []uint16{0xC}},
			{3, "register x", nil},
			{1, "fixed", []uint16{1}},
			{5, "opmode", []uint16{0x08 /* Dn,Dn */, 0x09 /* An,An */, 0x11 /* Dn,An */}},
			{3, "register y", nil}}},

		{"SWAP", opSWAP, []opcodePart{
			{13, "fixed", []uint16{0x908}},
			{3, "register", nil}}},
	}
}

// moveSizeMap maps the MOVE size encoding to Size.
// MOVE uses non-standard encoding: 01=Byte, 11=Word, 10=Long.
var moveSizeMap = [4]Size{0, Byte, Long, Word}

func opMOVE(c *CPU) {
	sz := moveSizeMap[(c.ir>>12)&3]
	srcMode := uint8((c.ir >> 3) & 7)
	srcReg := uint8(c.ir & 7)
	dstMode := uint8((c.ir >> 6) & 7)
	dstReg := uint8((c.ir >> 9) & 7)

	src := c.resolveEA(srcMode, srcReg, sz)
	val := src.read(c, sz)

	dst := c.resolveEA(dstMode, dstReg, sz)
	c.setFlagsLogical(val, sz)
	dst.write(c, sz, val)
}

func opMOVEA(c *CPU) {
	sz := moveSizeMap[(c.ir>>12)&3]
	srcMode := uint8((c.ir >> 3) & 7)
	srcReg := uint8(c.ir & 7)
	an := (c.ir >> 9) & 7

	src := c.resolveEA(srcMode, srcReg, sz)
	val := src.read(c, sz)

	// MOVEA.W sign-extends to 32 bits; condition codes are untouched
	if sz == Word {
		val = signExtend(Word, val)
	}
	c.reg.A[an] = val
}

func opMOVEQ(c *CPU) {
	dn := (c.ir >> 9) & 7
	data := int8(c.ir & 0xFF)
	c.reg.D[dn] = uint32(int32(data))
	c.setFlagsLogical(c.reg.D[dn], Long)
}

func opLEA(c *CPU) {
	an := (c.ir >> 9) & 7
	srcMode := uint8((c.ir >> 3) & 7)
	srcReg := uint8(c.ir & 7)

	src := c.resolveEA(srcMode, srcReg, Long)
	c.reg.A[an] = src.address(c)
}

func opPEA(c *CPU) {
	srcMode := uint8((c.ir >> 3) & 7)
	srcReg := uint8(c.ir & 7)

	src := c.resolveEA(srcMode, srcReg, Long)
	c.pushLong(src.address(c))
}

func opMOVEM(c *CPU) {
	dir := (c.ir >> 10) & 1 // 0 = reg-to-mem, 1 = mem-to-reg
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	sz := Word
	if c.ir&0x40 != 0 {
		sz = Long
	}

	mask := c.fetchWord() // register list mask

	if dir == 0 {
		// Register to memory
		if mode == 4 {
			// -(An): mask is reversed — bit 0=A7, bit 15=D0. Each selected
			// register gets its own predecrement, D0 first, so ascending
			// memory ends up holding the set in reverse register order.
			addr := c.reg.A[reg]
			for i := 15; i >= 0; i-- {
				if mask&(1<<uint(i)) != 0 {
					addr -= uint32(sz)
					ri := 15 - i
					if ri < 8 {
						c.writeMem(sz, addr&addrMask, c.reg.D[ri])
					} else {
						c.writeMem(sz, addr&addrMask, c.reg.A[ri-8])
					}
				}
			}
			c.reg.A[reg] = addr
		} else {
			// Other modes: normal order (D0 first, A7 last)
			dst := c.resolveEA(mode, reg, sz)
			addr := dst.address(c)
			for i := 0; i < 16; i++ {
				if mask&(1<<uint(i)) != 0 {
					if i < 8 {
						c.writeMem(sz, addr, c.reg.D[i])
					} else {
						c.writeMem(sz, addr, c.reg.A[i-8])
					}
					addr += uint32(sz)
				}
			}
		}
		return
	}

	// Memory to registers: word transfers sign-extend into the full
	// 32-bit register.
	if mode == 3 {
		// (An)+: load then update An
		addr := c.reg.A[reg]
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) != 0 {
				val := c.readMem(sz, addr&addrMask)
				if sz == Word {
					val = signExtend(Word, val)
				}
				if i < 8 {
					c.reg.D[i] = val
				} else {
					c.reg.A[i-8] = val
				}
				addr += uint32(sz)
			}
		}
		c.reg.A[reg] = addr
	} else {
		src := c.resolveEA(mode, reg, sz)
		addr := src.address(c)
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) != 0 {
				val := c.readMem(sz, addr)
				if sz == Word {
					val = signExtend(Word, val)
				}
				if i < 8 {
					c.reg.D[i] = val
				} else {
					c.reg.A[i-8] = val
				}
				addr += uint32(sz)
			}
		}
	}
}

func opMOVEP(c *CPU) {
	dn := (c.ir >> 9) & 7
	an := c.ir & 7
	opmode := (c.ir >> 6) & 7
	disp := int16(c.fetchWord())
	addr := uint32(int32(c.reg.A[an])+int32(disp)) & addrMask

	switch opmode {
	case 4: // MOVEP.W mem->reg
		b0 := c.readMem(Byte, addr)
		b1 := c.readMem(Byte, addr+2)
		val := (b0 << 8) | b1
		c.reg.D[dn] = (c.reg.D[dn] & 0xFFFF0000) | (val & 0xFFFF)
	case 5: // MOVEP.L mem->reg
		b0 := c.readMem(Byte, addr)
		b1 := c.readMem(Byte, addr+2)
		b2 := c.readMem(Byte, addr+4)
		b3 := c.readMem(Byte, addr+6)
		c.reg.D[dn] = (b0 << 24) | (b1 << 16) | (b2 << 8) | b3
	case 6: // MOVEP.W reg->mem
		val := c.reg.D[dn]
		c.writeMem(Byte, addr, (val>>8)&0xFF)
		c.writeMem(Byte, addr+2, val&0xFF)
	case 7: // MOVEP.L reg->mem
		val := c.reg.D[dn]
		c.writeMem(Byte, addr, (val>>24)&0xFF)
		c.writeMem(Byte, addr+2, (val>>16)&0xFF)
		c.writeMem(Byte, addr+4, (val>>8)&0xFF)
		c.writeMem(Byte, addr+6, val&0xFF)
	}
	// MOVEP does not affect condition codes
}

func opEXG(c *CPU) {
	rx := (c.ir >> 9) & 7
	ry := c.ir & 7
	opmode := (c.ir >> 3) & 0x1F

	switch opmode {
	case 0x08: // Data-Data
		c.reg.D[rx], c.reg.D[ry] = c.reg.D[ry], c.reg.D[rx]
	case 0x09: // Addr-Addr
		c.reg.A[rx], c.reg.A[ry] = c.reg.A[ry], c.reg.A[rx]
	case 0x11: // Data-Addr
		c.reg.D[rx], c.reg.A[ry] = c.reg.A[ry], c.reg.D[rx]
	}
}

func opSWAP(c *CPU) {
	dn := c.ir & 7
	val := c.reg.D[dn]
	c.reg.D[dn] = (val>>16)&0xFFFF | (val&0xFFFF)<<16
	c.setFlagsLogical(c.reg.D[dn], Long)
}
