package m68k

// branchDescs contributes the control-transfer opcode grammar:
// Bcc/BRA/BSR, DBcc, Scc, JMP/JSR, RTS/RTE/RTR.
func branchDescs() []opcodeDesc {
	return []opcodeDesc{
		{"BRA", opBRA, []opcodePart{
			{8, "fixed", []uint16{0x60}},
			{8, "displacement", nil}}},

		{"BSR", opBSR, []opcodePart{
			{8, "fixed", []uint16{0x61}},
			{8, "displacement", nil}}},

		{"Bcc", opBcc, []opcodePart{
			{4, "fixed", []uint16{6}},
			{4, "condition", []uint16{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
			{8, "displacement", nil}}},

		{"DBcc", opDBcc, []opcodePart{
			{4, "fixed", []uint16{5}},
			{4, "condition", nil},
			{5, "fixed", []uint16{0x19}},
			{3, "register", nil}}},

		{"Scc", opScc, []opcodePart{
			{4, "fixed", []uint16{5}},
			{4, "condition", nil},
			{2, "fixed", []uint16{3}},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"JMP", opJMP, []opcodePart{
			{10, "fixed", []uint16{0x13B}},
			{6, "target", eaValues(eaControl)}}},

		{"JSR", opJSR, []opcodePart{
			{10, "fixed", []uint16{0x13A}},
			{6, "target", eaValues(eaControl)}}},

		{"RTS", opRTS, []opcodePart{
			{16, "fixed", []uint16{0x4E75}}}},

		{"RTE", opRTE, []opcodePart{
			{16, "fixed", []uint16{0x4E73}}}},

		{"RTR", opRTR, []opcodePart{
			{16, "fixed", []uint16{0x4E77}}}},
	}
}

// branchDisp returns the branch displacement: the low 8 bits of the opcode
// sign-extended, or a following 16-bit extension word when that byte is
// zero. base must be captured before the extension fetch.
func (c *CPU) branchDisp() int32 {
	disp := int32(int8(c.ir & 0xFF))
	if disp == 0 {
		disp = int32(int16(c.fetchWord()))
	}
	return disp
}

func opBcc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	base := c.reg.PC // PC after opcode fetch = instruction address + 2
	disp := c.branchDisp()

	if c.testCondition(cc) {
		c.reg.PC = uint32(int32(base) + disp)
	}
}

func opBRA(c *CPU) {
	base := c.reg.PC
	disp := c.branchDisp()
	c.reg.PC = uint32(int32(base) + disp)
}

func opBSR(c *CPU) {
	base := c.reg.PC
	disp := c.branchDisp()

	// Return address is past any displacement extension word
	c.pushLong(c.reg.PC)
	c.reg.PC = uint32(int32(base) + disp)
}

func opDBcc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	dn := c.ir & 7

	base := c.reg.PC // displacement is relative to the extension word
	disp := int16(c.fetchWord())

	if c.testCondition(cc) {
		// Condition true: no branch, no decrement
		return
	}

	// Decrement low word of Dn
	val := int16(c.reg.D[dn]&0xFFFF) - 1
	c.reg.D[dn] = (c.reg.D[dn] & 0xFFFF0000) | uint32(uint16(val))

	if val != -1 {
		c.reg.PC = uint32(int32(base) + int32(disp))
	}
}

func opScc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Byte)
	if c.testCondition(cc) {
		dst.write(c, Byte, 0xFF)
	} else {
		dst.write(c, Byte, 0x00)
	}
}

func opJMP(c *CPU) {
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Word)
	c.reg.PC = dst.address(c)
}

func opJSR(c *CPU) {
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Word)
	// Push the return address after any extension words, then jump
	c.pushLong(c.reg.PC)
	c.reg.PC = dst.address(c)
}

func opRTS(c *CPU) {
	c.reg.PC = c.popLong()
}

func opRTE(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}

	sr := c.popWord()
	pc := c.popLong()
	c.setSR(sr)
	c.reg.PC = pc
}

func opRTR(c *CPU) {
	ccr := c.popWord()
	c.setCCR(uint8(ccr))
	c.reg.PC = c.popLong()
}
