package m68k

// logicDescs contributes the logical and shift opcode grammar: AND/OR/EOR
// and their immediate forms (including the SR/CCR destinations), NOT, TST,
// TAS, and the shift/rotate family.
func logicDescs() []opcodeDesc {
	descs := []opcodeDesc{
		{"AND <ea>,Dn", opANDToReg, []opcodePart{
			{4, "fixed", []uint16{0xC}},
			{3, "register", nil},
			{1, "direction", []uint16{0}},
			{2, "size", stdSizes},
			{6, "source", eaValues(eaDataSrc)}}},

		{"AND Dn,<ea>", opANDToEA, []opcodePart{
			{4, "fixed", []uint16{0xC}},
			{3, "register", nil},
			{1, "direction", []uint16{1}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaMemAlterable)}}},

		{"OR <ea>,Dn", opORToReg, []opcodePart{
			{4, "fixed", []uint16{8}},
			{3, "register", nil},
			{1, "direction", []uint16{0}},
			{2, "size", stdSizes},
			{6, "source", eaValues(eaDataSrc)}}},

		{"OR Dn,<ea>", opORToEA, []opcodePart{
			{4, "fixed", []uint16{8}},
			{3, "register", nil},
			{1, "direction", []uint16{1}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaMemAlterable)}}},

		{"EOR", opEOR, []opcodePart{
			{4, "fixed", []uint16{0xB}},
			{3, "register", nil},
			{1, "direction", []uint16{1}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"NOT", opNOT, []opcodePart{
			{8, "fixed", []uint16{0x46}},
			{2, "size", stdSizes},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"TST", opTST, []opcodePart{
			{8, "fixed", []uint16{0x4A}},
			{2, "size", stdSizes},
			{6, "source", eaValues(eaDataAlterable)}}},

		{"TAS", opTAS, []opcodePart{
			{10, "fixed", []uint16{0x12B}},
			{6, "destination", eaValues(eaDataAlterable)}}},

		// Register/immediate shift and rotate forms:
		// 1110 ccc d ss i tt rrr
		{"shift/rotate (register)", opShiftReg, []opcodePart{
			{4, "fixed", []uint16{0xE}},
			{3, "count/register", nil},
			{1, "direction", nil},
			{2, "size", stdSizes},
			{1, "count source", nil},
			{2, "type", nil},
			{3, "register", nil}}},

		// Memory forms: always one word, shifted by one.
		{"shift/rotate (memory)", opShiftMem, []opcodePart{
			{4, "fixed", []uint16{0xE}},
			{3, "type", []uint16{0, 1, 2, 3}},
			{1, "direction", nil},
			{2, "fixed", []uint16{3}},
			{6, "destination", eaValues(eaMemAlterable)}}},
	}

	descs = append(descs, immLogicDescs("ORI", 0x0, opORI)...)
	descs = append(descs, immLogicDescs("ANDI", 0x2, opANDI)...)
	descs = append(descs, immLogicDescs("EORI", 0xA, opEORI)...)
	return descs
}

// immLogicDescs builds the ORI/ANDI/EORI grammar. The byte and word forms
// admit the mode 7.4 destination, which binds to the CCR (byte) or the
// full SR (word) instead of an immediate.
func immLogicDescs(name string, prefix uint16, handler opFunc) []opcodeDesc {
	return []opcodeDesc{
		{name, handler, []opcodePart{
			{8, "fixed", []uint16{prefix}},
			{2, "size", []uint16{0, 1}},
			{6, "destination", eaValues(eaDataAlterable | eaImm)}}},

		{name + ".L", handler, []opcodePart{
			{8, "fixed", []uint16{prefix}},
			{2, "size", []uint16{2}},
			{6, "destination", eaValues(eaDataAlterable)}}},
	}
}

// --- AND / OR / EOR ---

func opANDToReg(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	result := src.read(c, sz) & (c.reg.D[dn] & sz.Mask())
	c.setFlagsLogical(result, sz)

	mask := sz.Mask()
	c.reg.D[dn] = (c.reg.D[dn] & ^mask) | (result & mask)
}

func opANDToEA(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	result := dst.read(c, sz) & (c.reg.D[dn] & sz.Mask())
	c.setFlagsLogical(result, sz)
	dst.write(c, sz, result)
}

func opORToReg(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	result := src.read(c, sz) | (c.reg.D[dn] & sz.Mask())
	c.setFlagsLogical(result, sz)

	mask := sz.Mask()
	c.reg.D[dn] = (c.reg.D[dn] & ^mask) | (result & mask)
}

func opORToEA(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	result := dst.read(c, sz) | (c.reg.D[dn] & sz.Mask())
	c.setFlagsLogical(result, sz)
	dst.write(c, sz, result)
}

func opEOR(c *CPU) {
	dn := (c.ir >> 9) & 7
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	result := dst.read(c, sz) ^ (c.reg.D[dn] & sz.Mask())
	c.setFlagsLogical(result, sz)
	dst.write(c, sz, result)
}

// --- ORI / ANDI / EORI ---

func opORI(c *CPU) {
	c.immLogic(func(d, imm uint32) uint32 { return d | imm })
}

func opANDI(c *CPU) {
	c.immLogic(func(d, imm uint32) uint32 { return d & imm })
}

func opEORI(c *CPU) {
	c.immLogic(func(d, imm uint32) uint32 { return d ^ imm })
}

// immLogic is the shared body of the ORI/ANDI/EORI family. A mode 7.4
// destination binds to the CCR (byte) or SR (word); writing the full SR
// is privileged.
func (c *CPU) immLogic(op func(d, imm uint32) uint32) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	imm := c.fetchImm(sz)

	dst := c.resolveEADst(mode, reg, sz)
	if dst.kind == opStatusReg {
		if sz == Word && !c.supervisor() {
			c.exception(vecPrivilegeViolation)
			return
		}
		dst.write(c, sz, op(dst.read(c, sz), imm))
		return
	}

	result := op(dst.read(c, sz), imm)
	c.setFlagsLogical(result, sz)
	dst.write(c, sz, result)
}

// --- NOT / TST / TAS ---

func opNOT(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, sz)
	result := ^dst.read(c, sz) & sz.Mask()
	c.setFlagsLogical(result, sz)
	dst.write(c, sz, result)
}

func opTST(c *CPU) {
	sz := sizeEncoding((c.ir >> 6) & 3)
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, sz)
	c.setFlagsLogical(src.read(c, sz), sz)
}

func opTAS(c *CPU) {
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Byte)
	val := dst.read(c, Byte)

	// Test: flags from the pre-write value, like TST.B
	c.setFlagsLogical(val, Byte)

	// Set bit 7
	dst.write(c, Byte, val|0x80)
}

// --- Shifts and Rotates ---
// ASL, ASR, LSL, LSR, ROL, ROR, ROXL, ROXR
// Register form: 1110 CCC D SS i TT RRR
//   CCC = count/register, D = direction (0=right, 1=left)
//   SS = size, i = 0:immediate count 1:register count
//   TT = type (00=AS, 01=LS, 10=ROX, 11=RO)
//   RRR = data register
// Memory form: 1110 0TT D 11 eee eee (always word, count=1)

func opShiftReg(c *CPU) {
	cnt := (c.ir >> 9) & 7
	dir := (c.ir >> 8) & 1 // 0=right, 1=left
	sz := sizeEncoding((c.ir >> 6) & 3)
	fromReg := (c.ir >> 5) & 1
	typ := (c.ir >> 3) & 3
	dreg := c.ir & 7

	var count uint32
	if fromReg != 0 {
		count = c.reg.D[cnt] & 63
	} else {
		count = uint32(cnt)
		if count == 0 {
			count = 8
		}
	}

	val := c.reg.D[dreg] & sz.Mask()
	result := doShift(c, val, count, dir, typ, sz)

	mask := sz.Mask()
	c.reg.D[dreg] = (c.reg.D[dreg] & ^mask) | (result & mask)
}

func opShiftMem(c *CPU) {
	dir := (c.ir >> 8) & 1
	typ := (c.ir >> 9) & 3
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Word)
	val := dst.read(c, Word)
	result := doShift(c, val, 1, dir, typ, Word)
	dst.write(c, Word, result)
}

// doShift performs the actual shift/rotate operation and computes flags.
func doShift(c *CPU, val, count uint32, dir, typ uint16, sz Size) uint32 {
	msb := sz.MSB()
	mask := sz.Mask()

	if count == 0 {
		// Zero count: X unchanged, C cleared (except ROX, where C = X)
		c.setFlagsLogical(val, sz)
		if typ == 2 && c.reg.SR&flagX != 0 {
			c.reg.SR |= flagC
		}
		return val
	}

	var result uint32

	switch typ {
	case 0: // Arithmetic shift (AS)
		if dir == 1 { // ASL
			result = val
			c.reg.SR &^= flagV
			for i := uint32(0); i < count; i++ {
				msbit := result & msb
				result = (result << 1) & mask
				// V latches if the sign bit changes at any point
				if result&msb != msbit {
					c.reg.SR |= flagV
				}
			}
			lastOut := (val >> (sz.Bits() - count)) & 1
			if count > sz.Bits() {
				lastOut = 0
			}
			if lastOut != 0 {
				c.reg.SR |= flagC | flagX
			} else {
				c.reg.SR &^= flagC | flagX
			}
		} else { // ASR
			sign := val & msb
			result = val
			for i := uint32(0); i < count; i++ {
				result = (result >> 1) | sign
			}
			result &= mask
			var lastOut uint32
			if count >= sz.Bits() {
				lastOut = (val >> (sz.Bits() - 1)) & 1 // sign bit
			} else {
				lastOut = (val >> (count - 1)) & 1
			}
			if lastOut != 0 {
				c.reg.SR |= flagC | flagX
			} else {
				c.reg.SR &^= flagC | flagX
			}
			c.reg.SR &^= flagV
		}

	case 1: // Logical shift (LS)
		if dir == 1 { // LSL
			result = (val << count) & mask
			lastOut := uint32(0)
			if count <= sz.Bits() {
				lastOut = (val >> (sz.Bits() - count)) & 1
			}
			if lastOut != 0 {
				c.reg.SR |= flagC | flagX
			} else {
				c.reg.SR &^= flagC | flagX
			}
		} else { // LSR
			result = (val & mask) >> count
			lastOut := uint32(0)
			if count <= sz.Bits() {
				lastOut = (val >> (count - 1)) & 1
			}
			if lastOut != 0 {
				c.reg.SR |= flagC | flagX
			} else {
				c.reg.SR &^= flagC | flagX
			}
		}
		c.reg.SR &^= flagV

	case 2: // Rotate through extend (ROX)
		bits := sz.Bits()
		if dir == 1 { // ROXL
			result = val
			for i := uint32(0); i < count; i++ {
				x := uint32(0)
				if c.reg.SR&flagX != 0 {
					x = 1
				}
				if result&msb != 0 {
					c.reg.SR |= flagX | flagC
				} else {
					c.reg.SR &^= flagX | flagC
				}
				result = ((result << 1) | x) & mask
			}
		} else { // ROXR
			result = val
			for i := uint32(0); i < count; i++ {
				x := uint32(0)
				if c.reg.SR&flagX != 0 {
					x = 1
				}
				if result&1 != 0 {
					c.reg.SR |= flagX | flagC
				} else {
					c.reg.SR &^= flagX | flagC
				}
				result = (result >> 1) | (x << (bits - 1))
			}
			result &= mask
		}
		c.reg.SR &^= flagV

	case 3: // Rotate (RO)
		bits := sz.Bits()
		shift := count % bits
		if dir == 1 { // ROL
			result = ((val << shift) | (val >> (bits - shift))) & mask
			if result&1 != 0 {
				c.reg.SR |= flagC
			} else {
				c.reg.SR &^= flagC
			}
		} else { // ROR
			result = ((val >> shift) | (val << (bits - shift))) & mask
			if result&msb != 0 {
				c.reg.SR |= flagC
			} else {
				c.reg.SR &^= flagC
			}
		}
		c.reg.SR &^= flagV
	}

	// Set N and Z
	c.reg.SR &^= flagN | flagZ
	if result&msb != 0 {
		c.reg.SR |= flagN
	}
	if result&mask == 0 {
		c.reg.SR |= flagZ
	}

	return result
}
