package m68k

// bitDescs contributes the bit-manipulation opcode grammar.
// Dynamic forms: 0000 DDD 1 tt eee eee (Dn supplies the bit number)
// Static forms:  0000 1000 tt eee eee + immediate word
// tt = 00:BTST, 01:BCHG, 10:BCLR, 11:BSET
func bitDescs() []opcodeDesc {
	descs := []opcodeDesc{
		// BTST is read-only and additionally accepts PC-relative and
		// immediate sources; the mutating forms need an alterable
		// destination.
		{"BTST (register)", opBitOp, []opcodePart{
			{4, "fixed", []uint16{0}},
			{3, "register", nil},
			{3, "fixed", []uint16{4}},
			{6, "destination", eaValues(eaDataSrc)}}},

		{"BTST (immediate)", opBitOp, []opcodePart{
			{10, "fixed", []uint16{0x020}},
			{6, "destination", eaValues(eaDataSrc &^ eaImm)}}},
	}

	dynOpmode := []uint16{5, 6, 7} // BCHG, BCLR, BSET
	names := []string{"BCHG", "BCLR", "BSET"}
	for i, name := range names {
		descs = append(descs,
			opcodeDesc{name + " (register)", opBitOp, []opcodePart{
				{4, "fixed", []uint16{0}},
				{3, "register", nil},
				{3, "fixed", []uint16{dynOpmode[i]}},
				{6, "destination", eaValues(eaDataAlterable)}}},
			opcodeDesc{name + " (immediate)", opBitOp, []opcodePart{
				{10, "fixed", []uint16{0x021 + uint16(i)}},
				{6, "destination", eaValues(eaDataAlterable)}}},
		)
	}
	return descs
}

// Bit operation selectors (bits 7-6 of the opcode word).
const (
	bitTst = iota
	bitChg
	bitClr
	bitSet
)

// opBitOp executes BTST/BCHG/BCLR/BSET in both their dynamic (bit number
// in Dn) and static (bit number in an extension word) forms. The bit
// number is taken modulo 32 for a data-register destination and modulo 8
// for memory; Z is always set from the bit's pre-operation value.
func opBitOp(c *CPU) {
	op := (c.ir >> 6) & 3
	mode := uint8((c.ir >> 3) & 7)
	reg := uint8(c.ir & 7)

	var bitNum uint32
	if c.ir&0x0100 != 0 {
		bitNum = c.reg.D[(c.ir>>9)&7]
	} else {
		bitNum = uint32(c.fetchWord() & 0xFF)
	}

	if mode == 0 {
		// Data register destination: long operand, bit mod 32
		bitNum &= 31
		mask := uint32(1) << bitNum
		val := c.reg.D[reg]
		c.setBitZ(val, mask)
		switch op {
		case bitChg:
			c.reg.D[reg] = val ^ mask
		case bitClr:
			c.reg.D[reg] = val &^ mask
		case bitSet:
			c.reg.D[reg] = val | mask
		}
		return
	}

	// Memory destination: byte operand, bit mod 8
	bitNum &= 7
	mask := uint32(1) << bitNum
	dst := c.resolveEA(mode, reg, Byte)
	val := dst.read(c, Byte)
	c.setBitZ(val, mask)
	switch op {
	case bitChg:
		dst.write(c, Byte, val^mask)
	case bitClr:
		dst.write(c, Byte, val&^mask)
	case bitSet:
		dst.write(c, Byte, val|mask)
	}
}

// setBitZ sets Z from the tested bit's pre-operation value.
func (c *CPU) setBitZ(val, mask uint32) {
	if val&mask == 0 {
		c.reg.SR |= flagZ
	} else {
		c.reg.SR &^= flagZ
	}
}
