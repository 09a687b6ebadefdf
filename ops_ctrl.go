package m68k

// ctrlDescs contributes the system-control opcode grammar: NOP, STOP,
// RESET, ILLEGAL, TRAP, TRAPV, LINK/UNLK, and the SR/CCR/USP moves.
func ctrlDescs() []opcodeDesc {
	return []opcodeDesc{
		{"NOP", opNOP, []opcodePart{
			{16, "fixed", []uint16{0x4E71}}}},

		{"STOP", opSTOP, []opcodePart{
			{16, "fixed", []uint16{0x4E72}}}},

		{"RESET", opRESET, []opcodePart{
			{16, "fixed", []uint16{0x4E70}}}},

		{"ILLEGAL", opILLEGAL, []opcodePart{
			{16, "fixed", []uint16{0x4AFC}}}},

		{"TRAPV", opTRAPV, []opcodePart{
			{16, "fixed", []uint16{0x4E76}}}},

		{"TRAP", opTRAP, []opcodePart{
			{12, "fixed", []uint16{0x4E4}},
			{4, "vector", nil}}},

		{"LINK", opLINK, []opcodePart{
			{13, "fixed", []uint16{0x9CA}},
			{3, "register", nil}}},

		{"UNLK", opUNLK, []opcodePart{
			{13, "fixed", []uint16{0x9CB}},
			{3, "register", nil}}},

		{"MOVE to USP", opMOVEToUSP, []opcodePart{
			{13, "fixed", []uint16{0x9CC}},
			{3, "register", nil}}},

		{"MOVE from USP", opMOVEFromUSP, []opcodePart{
			{13, "fixed", []uint16{0x9CD}},
			{3, "register", nil}}},

		{"MOVE from SR", opMOVEFromSR, []opcodePart{
			{10, "fixed", []uint16{0x103}},
			{6, "destination", eaValues(eaDataAlterable)}}},

		{"MOVE to CCR", opMOVEToCCR, []opcodePart{
			{10, "fixed", []uint16{0x113}},
			{6, "source", eaValues(eaDataSrc)}}},

		{"MOVE to SR", opMOVEToSR, []opcodePart{
			{10, "fixed", []uint16{0x11B}},
			{6, "source", eaValues(eaDataSrc)}}},
	}
}

func opNOP(c *CPU) {}

func opSTOP(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}

	imm := c.fetchWord()
	c.setSR(imm)
	c.stopped = true
}

func opRESET(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	// Asserts the external reset line. The core owns no peripherals, so
	// this is a no-op beyond the privilege check.
}

func opILLEGAL(c *CPU) {
	c.exception(vecIllegalInstruction)
}

func opTRAP(c *CPU) {
	c.exception(int(c.ir&0xF) + vecTrap0)
}

func opTRAPV(c *CPU) {
	if c.reg.SR&flagV != 0 {
		c.exception(vecTRAPV)
	}
}

func opLINK(c *CPU) {
	an := c.ir & 7
	disp := int16(c.fetchWord())

	c.pushLong(c.reg.A[an])
	c.reg.A[an] = c.reg.A[7]
	c.reg.A[7] = uint32(int32(c.reg.A[7]) + int32(disp))
}

func opUNLK(c *CPU) {
	an := c.ir & 7
	c.reg.A[7] = c.reg.A[an]
	c.reg.A[an] = c.popLong()
}

func opMOVEToUSP(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	an := c.ir & 7
	c.reg.USP = c.reg.A[an]
}

func opMOVEFromUSP(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	an := c.ir & 7
	c.reg.A[an] = c.reg.USP
}

func opMOVEFromSR(c *CPU) {
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	dst := c.resolveEA(mode, reg, Word)
	dst.write(c, Word, uint32(c.reg.SR))
}

func opMOVEToCCR(c *CPU) {
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	c.setCCR(uint8(src.read(c, Word)))
}

func opMOVEToSR(c *CPU) {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}

	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	src := c.resolveEA(mode, reg, Word)
	c.setSR(uint16(src.read(c, Word)))
}
