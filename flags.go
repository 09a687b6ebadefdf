package m68k

// Status register flag bits.
const (
	flagC uint16 = 1 << iota // Carry
	flagV                    // Overflow
	flagZ                    // Zero
	flagN                    // Negative
	flagX                    // Extend

	flagS uint16 = 1 << 13 // Supervisor
	flagT uint16 = 1 << 15 // Trace
)

// Exported flag bits for the inspection surface (CPU.Flag).
const (
	FlagC = flagC
	FlagV = flagV
	FlagZ = flagZ
	FlagN = flagN
	FlagX = flagX
	FlagS = flagS
	FlagT = flagT
)

// hasCarry reports whether the width-wide operation that produced the
// 64-bit lifted result carried (or borrowed) out of the operand width:
// bit 8*sizeof(T) of the higher-precision result.
func hasCarry(wide uint64, sz Size) bool {
	return wide>>sz.Bits()&1 != 0
}

// hasOverflow reports signed overflow of an addition: both operands have
// the same sign and the result's sign differs.
func hasOverflow(src, dst, result uint32, sz Size) bool {
	msb := sz.MSB()
	return ^(src^dst)&(src^result)&msb != 0
}

// hasBorrowOverflow reports signed overflow of a subtraction
// result = dst - src: operand signs differ and the result's sign differs
// from dst's.
func hasBorrowOverflow(src, dst, result uint32, sz Size) bool {
	msb := sz.MSB()
	return (src^dst)&(result^dst)&msb != 0
}

// setFlagsAdd sets XNZVC after an addition. wide is the 64-bit lifted
// result dst + src (+ carry-in), from which the masked width-wide result
// and the carry bit are derived.
func (c *CPU) setFlagsAdd(src, dst uint32, wide uint64, sz Size) {
	mask := sz.Mask()
	r := uint32(wide) & mask

	c.reg.SR &^= flagX | flagN | flagZ | flagV | flagC

	if r == 0 {
		c.reg.SR |= flagZ
	}
	if isNegative(sz, r) {
		c.reg.SR |= flagN
	}
	if hasOverflow(src&mask, dst&mask, r, sz) {
		c.reg.SR |= flagV
	}
	if hasCarry(wide, sz) {
		c.reg.SR |= flagC | flagX
	}
}

// setFlagsSub sets XNZVC after a subtraction. wide is the 64-bit lifted
// result dst - src (- borrow-in); on borrow the high bits of wide are all
// ones, so bit 8*sizeof(T) doubles as the borrow flag.
func (c *CPU) setFlagsSub(src, dst uint32, wide uint64, sz Size) {
	mask := sz.Mask()
	r := uint32(wide) & mask

	c.reg.SR &^= flagX | flagN | flagZ | flagV | flagC

	if r == 0 {
		c.reg.SR |= flagZ
	}
	if isNegative(sz, r) {
		c.reg.SR |= flagN
	}
	if hasBorrowOverflow(src&mask, dst&mask, r, sz) {
		c.reg.SR |= flagV
	}
	if hasCarry(wide, sz) {
		c.reg.SR |= flagC | flagX
	}
}

// setFlagsCmp sets NZVC after a comparison (subtraction without storing).
// Does not modify the X flag.
func (c *CPU) setFlagsCmp(src, dst uint32, wide uint64, sz Size) {
	mask := sz.Mask()
	r := uint32(wide) & mask

	c.reg.SR &^= flagN | flagZ | flagV | flagC

	if r == 0 {
		c.reg.SR |= flagZ
	}
	if isNegative(sz, r) {
		c.reg.SR |= flagN
	}
	if hasBorrowOverflow(src&mask, dst&mask, r, sz) {
		c.reg.SR |= flagV
	}
	if hasCarry(wide, sz) {
		c.reg.SR |= flagC
	}
}

// setFlagsLogical sets NZ, clears VC after a logical or move operation.
func (c *CPU) setFlagsLogical(result uint32, sz Size) {
	c.reg.SR &^= flagN | flagZ | flagV | flagC

	if result&sz.Mask() == 0 {
		c.reg.SR |= flagZ
	}
	if isNegative(sz, result) {
		c.reg.SR |= flagN
	}
}

// restoreZOnZero re-applies the pre-instruction Z when the result is zero.
// ADDX/SUBX/NEGX clear Z on a non-zero result but never set it, so a
// multi-precision chain's Z survives a zero limb.
func (c *CPU) restoreZOnZero(result uint32, sz Size, oldZ uint16) {
	if result&sz.Mask() == 0 {
		c.reg.SR = (c.reg.SR &^ flagZ) | oldZ
	}
}

// testCondition evaluates an MC68000 condition code (0-15).
func (c *CPU) testCondition(cc uint16) bool {
	sr := c.reg.SR
	switch cc {
	case 0: // T - True
		return true
	case 1: // F - False
		return false
	case 2: // HI - !C & !Z
		return sr&(flagC|flagZ) == 0
	case 3: // LS - C | Z
		return sr&(flagC|flagZ) != 0
	case 4: // CC - !C
		return sr&flagC == 0
	case 5: // CS - C
		return sr&flagC != 0
	case 6: // NE - !Z
		return sr&flagZ == 0
	case 7: // EQ - Z
		return sr&flagZ != 0
	case 8: // VC - !V
		return sr&flagV == 0
	case 9: // VS - V
		return sr&flagV != 0
	case 10: // PL - !N
		return sr&flagN == 0
	case 11: // MI - N
		return sr&flagN != 0
	case 12: // GE - (N & V) | (!N & !V)
		n := sr&flagN != 0
		v := sr&flagV != 0
		return n == v
	case 13: // LT - (N & !V) | (!N & V)
		n := sr&flagN != 0
		v := sr&flagV != 0
		return n != v
	case 14: // GT - !Z & ((N & V) | (!N & !V))
		n := sr&flagN != 0
		v := sr&flagV != 0
		z := sr&flagZ != 0
		return n == v && !z
	case 15: // LE - Z | (N & !V) | (!N & V)
		n := sr&flagN != 0
		v := sr&flagV != 0
		z := sr&flagZ != 0
		return z || n != v
	}
	return false
}
