package m68k

// sizeEncoding maps the standard 2-bit size field (bits 7-6) to Size.
func sizeEncoding(bits uint16) Size {
	switch bits {
	case 0:
		return Byte
	case 1:
		return Word
	case 2:
		return Long
	}
	return 0
}

// stdSizes is the standard size-field value set {Byte, Word, Long}.
var stdSizes = []uint16{0, 1, 2}

// arithDescs contributes the arithmetic opcode grammar: ADD/SUB families,
// CMP families, MULU/MULS, DIVU/DIVS, NEG/NEGX, CLR, EXT, CHK.
func arithDescs() []opcodeDesc {
	descs := []opcodeDesc{
		{"MULU", opMULU, []opcodePart{
			{4, "fixed", []uint16{0xC}},
			{3, "register", nil},
			{3, "opmode", []uint16{3}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"MULS", opMULS, []opcodePart{
			{4, "fixed", []uint16{0xC}},
			{3, "register", nil},
			{3, "opmode", []uint16{7}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"DIVU", opDIVU, []opcodePart{
			{4, "fixed", []uint16{8}},
			{3, "register", nil},
			{3, "opmode", []uint16{3}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"DIVS", opDIVS, []opcodePart{
			{4, "fixed", []uint16{8}},
			{3, "register", nil},
			{3, "opmode", []uint16{7}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"NEG", opNEG, []opcodePart{
			{8, "fixed", []uint16{0x44}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"NEGX", opNEGX, []opcodePart{
			{8, "fixed", []uint16{0x40}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"CLR", opCLR, []opcodePart{
			{8, "fixed", []uint16{0x42}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"EXT", opEXT, []opcodePart{
			{4, "fixed", []uint16{4}},
			{3, "fixed", []uint16{4}},
			{3, "opmode", []uint16{2 /* byte->word */, 3 /* word->long */}},
			{3, "fixed", []uint16{0}},
			{3, "register", nil}}},

		{"CHK", opCHK, []opcodePart{
			{4, "fixed", []uint16{4}},
			{3, "register", nil},
			{3, "fixed", []uint16{6}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"CMPI", opCMPI, []opcodePart{
			{8, "fixed", []uint16{0xC}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"CMPA", opCMPA, []opcodePart{
			{4, "fixed", []uint16{0xB}},
			{3, "register", nil},
			{3, "opmode", []uint16{3 /* Word */, 7 /* Long */}},
			{6, "source", eaValues(eaAll)}}},

		{"CMPM", opCMPM, []opcodePart{
			{4, "fixed", []uint16{0xB}},
			{3, "register x", nil},
			{1, "fixed", []uint16{1}},
			{2, "size", stdSizes},
			{3, "fixed", []uint16{1}},
			{3, "register y", nil}}},

		// Byte-wide compares cannot source an address register.
		{"CMP.B", opCMP, []opcodePart{
			{4, "fixed", []uint16{0xB}},
			{3, "register", nil},
			{1, "fixed", []uint16{0}},
			{2, "size", []uint16{0}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"CMP", opCMP, []opcodePart{
			{4, "fixed", []uint16{0xB}},
			{3, "register", nil},
			{1, "fixed", []uint16{0}},
			{2, "size", []uint16{1, 2}},
			{6, "source", eaValues(eaAll)}}},
	}

	descs = append(descs, addSubDescs("ADD", 0xD, opADDToReg, opADDToEA, opADDA, opADDX)...)
	descs = append(descs, addSubDescs("SUB", 0x9, opSUBToReg, opSUBToEA, opSUBA, opSUBX)...)

	descs = append(descs, []opcodeDesc{
		{"ADDI", opADDI, []opcodePart{
			{8, "fixed", []uint16{6}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"SUBI", opSUBI, []opcodePart{
			{8, "fixed", []uint16{4}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"ADDQ", opADDQ, []opcodePart{
			{4, "fixed", []uint16{5}},
			{3, "data", nil},
			{1, "fixed", []uint16{0}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		// ADDQ/SUBQ to an address register are word/long only and leave
		// the condition codes alone.
		{"ADDQ (address)", opADDQ, []opcodePart{
			{4, "fixed", []uint16{5}},
			{3, "data", nil},
			{1, "fixed", []uint16{0}},
			{2, "size", []uint16{1, 2}},
			{6, "destination", eaValues(eaAn)}}},

		{"SUBQ", opSUBQ, []opcodePart{
			{4, "fixed", []uint16{5}},
			{3, "data", nil},
			{1, "fixed", []uint16{1}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"SUBQ (address)", opSUBQ, []opcodePart{
			{4, "fixed", []uint16{5}},
			{3, "data", nil},
			{1, "fixed", []uint16{1}},
			{2, "size", []uint16{1, 2}},
			{6, "destination", eaValues(eaAn)}}},
	}...)

	return descs
}

// addSubDescs builds the shared ADD/SUB grammar shape: <ea>,Dn in both
// widths, Dn,<ea>, the address-destination form, and the extended form
// with its register and predecrement variants.
func addSubDescs(name string, prefix uint16, toReg, toEA, toAddr, extended opFunc) []opcodeDesc {
	return []opcodeDesc{
		// Byte-wide: address register source is illegal.
		{name + ".B <ea>,Dn", toReg, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register", nil},
			{1, "direction", []uint16{0}},
			{2, "size", []uint16{0}},
			{6, "source", eaValues(eaDataSrc)}}},

		{name + " <ea>,Dn", toReg, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register", nil},
			{1, "direction", []uint16{0}},
			{2, "size", []uint16{1, 2}},
			{6, "source", eaValues(eaAll)}}},

		{name + " Dn,<ea>", toEA, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register", nil},
			{1, "direction", []uint16{1}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaMemAlterable)}}},

		{name + "A", toAddr, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register", nil},
			{3, "opmode", []uint16{3 /* Word */, 7 /* Long */}},
			{6, "source", eaValues(eaAll)}}},

		{name + "X (register)", extended, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register x", nil},
			{1, "fixed", []uint16{1}},
			{2, "size", stdSizes},
			{2, "fixed", []uint16{0}},
			{1, "mode", []uint16{0}},
			{3, "register y", nil}}},

		{name + "X (memory)", extended, []opcodePart{
			{4, "fixed", []uint16{prefix}},
			{3, "register x", nil},
			{1, "fixed", []uint16{1}},
			{2, "size", stdSizes},
			{2, "fixed", []uint16{0}},
			{1, "mode", []uint16{1}},
			{3, "register y", nil}}},
	}
}

// --- ADD ---

func opADDToReg(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	s := src.read(c, sz)
	d := c.reg.D[dn] & sz.Mask()
	wide := uint64(d) + uint64(s)
	c.setFlagsAdd(s, d, wide, sz)

	mask := sz.Mask()
	c.reg.D[dn] = (c.reg.D[dn] & ^mask) | (uint32(wide) & mask)
}

func opADDToEA(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	s := c.reg.D[dn] & sz.Mask()
	wide := uint64(d) + uint64(s)
	c.setFlagsAdd(s, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opADDA(c *CPU) {
	an := (c.ir >> 9) & 7
	sz := Word
	if (c.ir>>6)&7 == 7 {
		sz = Long
	}
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	val := src.read(c, sz)
	if sz == Word {
		val = signExtend(Word, val)
	}
	// ADDA does not affect condition codes
	c.reg.A[an] += val
}

func opADDI(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	imm := c.fetchImm(sz)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	wide := uint64(d) + uint64(imm)
	c.setFlagsAdd(imm, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opADDQ(c *CPU) {
	data := uint32((c.ir >> 9) & 7)
	if data == 0 {
		data = 8
	}
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	if mode == 1 {
		// ADDQ to An: always 32-bit, no flags
		c.reg.A[reg] += data
		return
	}

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	wide := uint64(d) + uint64(data)
	c.setFlagsAdd(data, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opADDX(c *CPU) {
	rx := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	ry := c.ir & 7
	memForm := c.ir&8 != 0

	x := uint64(0)
	if c.reg.SR&flagX != 0 {
		x = 1
	}

	var s, d uint32
	var dst operand
	if memForm {
		src := c.resolveEA(4, uint8(ry), sz) // -(Ay)
		s = src.read(c, sz)
		dst = c.resolveEA(4, uint8(rx), sz) // -(Ax)
		d = dst.read(c, sz)
	} else {
		s = c.reg.D[ry] & sz.Mask()
		d = c.reg.D[rx] & sz.Mask()
		dst = operand{kind: opDataReg, reg: uint8(rx)}
	}

	wide := uint64(d) + uint64(s) + x

	oldZ := c.reg.SR & flagZ
	c.setFlagsAdd(s, d, wide, sz)
	// ADDX: Z is only cleared, never set (preserves Z across multi-precision)
	c.restoreZOnZero(uint32(wide), sz, oldZ)

	dst.write(c, sz, uint32(wide))
}

// --- SUB ---

func opSUBToReg(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	s := src.read(c, sz)
	d := c.reg.D[dn] & sz.Mask()
	wide := uint64(d) - uint64(s)
	c.setFlagsSub(s, d, wide, sz)

	mask := sz.Mask()
	c.reg.D[dn] = (c.reg.D[dn] & ^mask) | (uint32(wide) & mask)
}

func opSUBToEA(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	s := c.reg.D[dn] & sz.Mask()
	wide := uint64(d) - uint64(s)
	c.setFlagsSub(s, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opSUBA(c *CPU) {
	an := (c.ir >> 9) & 7
	sz := Word
	if (c.ir>>6)&7 == 7 {
		sz = Long
	}
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	val := src.read(c, sz)
	if sz == Word {
		val = signExtend(Word, val)
	}
	c.reg.A[an] -= val
}

func opSUBI(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	imm := c.fetchImm(sz)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	wide := uint64(d) - uint64(imm)
	c.setFlagsSub(imm, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opSUBQ(c *CPU) {
	data := uint32((c.ir >> 9) & 7)
	if data == 0 {
		data = 8
	}
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	if mode == 1 {
		c.reg.A[reg] -= data
		return
	}

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	wide := uint64(d) - uint64(data)
	c.setFlagsSub(data, d, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opSUBX(c *CPU) {
	rx := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	ry := c.ir & 7
	memForm := c.ir&8 != 0

	x := uint64(0)
	if c.reg.SR&flagX != 0 {
		x = 1
	}

	var s, d uint32
	var dst operand
	if memForm {
		src := c.resolveEA(4, uint8(ry), sz)
		s = src.read(c, sz)
		dst = c.resolveEA(4, uint8(rx), sz)
		d = dst.read(c, sz)
	} else {
		s = c.reg.D[ry] & sz.Mask()
		d = c.reg.D[rx] & sz.Mask()
		dst = operand{kind: opDataReg, reg: uint8(rx)}
	}

	wide := uint64(d) - uint64(s) - x

	oldZ := c.reg.SR & flagZ
	c.setFlagsSub(s, d, wide, sz)
	// SUBX: Z is only cleared, never set (preserves Z across multi-precision)
	c.restoreZOnZero(uint32(wide), sz, oldZ)

	dst.write(c, sz, uint32(wide))
}

// --- CMP ---

func opCMP(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	s := src.read(c, sz)
	d := c.reg.D[dn] & sz.Mask()
	c.setFlagsCmp(s, d, uint64(d)-uint64(s), sz)
}

func opCMPA(c *CPU) {
	an := (c.ir >> 9) & 7
	sz := Word
	if (c.ir>>6)&7 == 7 {
		sz = Long
	}
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	val := src.read(c, sz)
	if sz == Word {
		val = signExtend(Word, val)
	}
	d := c.reg.A[an]
	c.setFlagsCmp(val, d, uint64(d)-uint64(val), Long)
}

func opCMPI(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	imm := c.fetchImm(sz)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	c.setFlagsCmp(imm, d, uint64(d)-uint64(imm), sz)
}

func opCMPM(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	ay := c.ir & 7
	ax := (c.ir >> 9) & 7

	src := c.resolveEA(3, uint8(ay), sz) // (Ay)+
	s := src.read(c, sz)
	dst := c.resolveEA(3, uint8(ax), sz) // (Ax)+
	d := dst.read(c, sz)
	c.setFlagsCmp(s, d, uint64(d)-uint64(s), sz)
}

// --- MULU / MULS ---

func opMULU(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	s := src.read(c, Word)
	d := c.reg.D[dn] & 0xFFFF
	result := s * d
	c.reg.D[dn] = result

	c.setFlagsLogical(result, Long)
}

func opMULS(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	s := int32(int16(src.read(c, Word)))
	d := int32(int16(c.reg.D[dn] & 0xFFFF))
	result := uint32(s * d)
	c.reg.D[dn] = result

	c.setFlagsLogical(result, Long)
}

// --- DIVU / DIVS ---

func opDIVU(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	divisor := src.read(c, Word)

	if divisor == 0 {
		c.exception(vecDivideByZero)
		return
	}

	dividend := c.reg.D[dn]
	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > 0xFFFF {
		// Quotient does not fit 16 bits: destination untouched
		c.reg.SR |= flagV
		c.reg.SR &^= flagC
	} else {
		c.reg.D[dn] = (remainder&0xFFFF)<<16 | (quotient & 0xFFFF)
		c.setFlagsLogical(quotient, Word)
	}
}

func opDIVS(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	divisor := int32(int16(src.read(c, Word)))

	if divisor == 0 {
		c.exception(vecDivideByZero)
		return
	}

	dividend := int32(c.reg.D[dn])

	// 0x80000000 / -1 overflows 32-bit division itself; it can never fit
	// the 16-bit quotient, so flag it before dividing.
	if dividend == -0x80000000 && divisor == -1 {
		c.reg.SR |= flagV | flagN
		c.reg.SR &^= flagC | flagZ
		return
	}

	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > 32767 || quotient < -32768 {
		c.reg.SR |= flagV | flagN
		c.reg.SR &^= flagC | flagZ
	} else {
		c.reg.D[dn] = uint32(remainder&0xFFFF)<<16 | uint32(quotient)&0xFFFF
		c.setFlagsLogical(uint32(quotient), Word)
	}
}

// --- NEG / NEGX / CLR ---

func opNEG(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	wide := uint64(0) - uint64(d)
	c.setFlagsSub(d, 0, wide, sz)
	dst.write(c, sz, uint32(wide))
}

func opNEGX(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	d := dst.read(c, sz)
	x := uint64(0)
	if c.reg.SR&flagX != 0 {
		x = 1
	}
	wide := uint64(0) - uint64(d) - x
	oldZ := c.reg.SR & flagZ
	c.setFlagsSub(d, 0, wide, sz)
	// NEGX: Z is only cleared, never set (preserves Z across multi-precision)
	c.restoreZOnZero(uint32(wide), sz, oldZ)
	dst.write(c, sz, uint32(wide))
}

func opCLR(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	dst.write(c, sz, 0)

	// CLR always sets Z, clears NVC
	c.reg.SR &^= flagN | flagV | flagC
	c.reg.SR |= flagZ
}

// --- EXT ---

func opEXT(c *CPU) {
	dn := c.ir & 7
	if (c.ir>>6)&7 == 2 {
		// EXT.W: byte -> word
		val := uint32(uint16(int16(int8(c.reg.D[dn]))))
		c.reg.D[dn] = (c.reg.D[dn] & 0xFFFF0000) | val
		c.setFlagsLogical(val, Word)
		return
	}
	// EXT.L: word -> long
	val := signExtend(Word, c.reg.D[dn])
	c.reg.D[dn] = val
	c.setFlagsLogical(val, Long)
}

// --- CHK ---

func opCHK(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	bound := int16(src.read(c, Word))
	val := int16(c.reg.D[dn] & 0xFFFF)

	if val < 0 {
		c.reg.SR &^= flagN | flagZ | flagV | flagC
		c.reg.SR |= flagN
		c.exception(vecCHK)
		return
	}
	if val > bound {
		c.reg.SR &^= flagN | flagZ | flagV | flagC
		c.exception(vecCHK)
	}
}
