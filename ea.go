package m68k

import "fmt"

// Resolved operand categories.
const (
	opDataReg   = iota // Data register direct (Dn)
	opAddrReg          // Address register direct (An)
	opMemory           // All memory addressing modes
	opImmediate        // Immediate (#imm)
	opStatusReg        // SR/CCR, via the mode 7.4 override
)

// operand is a resolved effective address: a tagged handle whose read and
// write carry the semantics of the addressing mode that produced it.
// Pre-decrement side effects have already been applied to the address
// register by the time an operand exists; post-increment side effects are
// applied at resolve time as well, with the captured address predating
// the increment.
type operand struct {
	kind uint8  // opDataReg, opAddrReg, opMemory, opImmediate, opStatusReg
	reg  uint8  // register number (for register kinds)
	addr uint32 // memory address (for memory kinds)
	imm  uint32 // immediate value (for immediate kind)
}

// read returns the value at this operand.
func (e operand) read(c *CPU, sz Size) uint32 {
	switch e.kind {
	case opDataReg:
		return c.reg.D[e.reg] & sz.Mask()
	case opAddrReg:
		return c.reg.A[e.reg] & sz.Mask()
	case opMemory:
		return c.readMem(sz, e.addr)
	case opImmediate:
		return e.imm & sz.Mask()
	case opStatusReg:
		return uint32(c.reg.SR) & sz.Mask()
	}
	return 0
}

// write stores a value at this operand.
// Data register writes preserve upper bits for byte/word operations.
// Address register writes always store the full 32-bit value.
// Status register writes go through the SR/CCR discipline (byte width
// touches only the CCR).
func (e operand) write(c *CPU, sz Size, val uint32) {
	switch e.kind {
	case opDataReg:
		mask := sz.Mask()
		c.reg.D[e.reg] = (c.reg.D[e.reg] & ^mask) | (val & mask)
	case opAddrReg:
		c.reg.A[e.reg] = val
	case opMemory:
		c.writeMem(sz, e.addr, val)
	case opStatusReg:
		if sz == Byte {
			c.setCCR(uint8(val))
		} else {
			c.setSR(uint16(val))
		}
	}
}

// address returns the memory address this operand resolves to. Asking for
// the address of a non-memory operand is an emulator-internal fault; a
// correctly seeded decode table never reaches it.
func (e operand) address(c *CPU) uint32 {
	if e.kind != opMemory {
		c.fail(fmt.Errorf("%w: operand has no memory address", ErrInvalidAddressingMode))
		return 0
	}
	return e.addr
}

// resolveEA decodes and resolves an effective address from a mode/register
// pair. The mode is bits 5-3 and reg is bits 2-0 of the standard EA field.
// Extension words are fetched from the instruction stream as needed.
func (c *CPU) resolveEA(mode, reg uint8, sz Size) operand {
	switch mode {
	case 0: // Dn - Data register direct
		return operand{kind: opDataReg, reg: reg}

	case 1: // An - Address register direct
		return operand{kind: opAddrReg, reg: reg}

	case 2: // (An) - Address register indirect
		return operand{kind: opMemory, addr: c.reg.A[reg] & addrMask}

	case 3: // (An)+ - Address register indirect with postincrement
		addr := c.reg.A[reg]
		inc := uint32(sz)
		if reg == 7 && sz == Byte {
			inc = 2 // SP always stays word-aligned
		}
		c.reg.A[reg] += inc
		return operand{kind: opMemory, addr: addr & addrMask}

	case 4: // -(An) - Address register indirect with predecrement
		dec := uint32(sz)
		if reg == 7 && sz == Byte {
			dec = 2 // SP always stays word-aligned
		}
		c.reg.A[reg] -= dec
		return operand{kind: opMemory, addr: c.reg.A[reg] & addrMask}

	case 5: // d16(An) - Address register indirect with displacement
		disp := int16(c.fetchWord())
		return operand{kind: opMemory, addr: uint32(int32(c.reg.A[reg])+int32(disp)) & addrMask}

	case 6: // d8(An,Xn) - Address register indirect with index
		ext := c.fetchWord()
		return operand{kind: opMemory, addr: c.calcIndex(c.reg.A[reg], ext)}

	case 7:
		switch reg {
		case 0: // abs.W - Absolute short (sign-extended to 32 bits)
			addr := int16(c.fetchWord())
			return operand{kind: opMemory, addr: uint32(int32(addr)) & addrMask}

		case 1: // abs.L - Absolute long
			addr := c.fetchLong()
			return operand{kind: opMemory, addr: addr & addrMask}

		case 2: // d16(PC) - PC relative with displacement
			pc := c.reg.PC // PC points to the extension word
			disp := int16(c.fetchWord())
			return operand{kind: opMemory, addr: uint32(int32(pc)+int32(disp)) & addrMask}

		case 3: // d8(PC,Xn) - PC relative with index
			pc := c.reg.PC // PC points to the extension word
			ext := c.fetchWord()
			return operand{kind: opMemory, addr: c.calcIndex(pc, ext)}

		case 4: // #imm - Immediate
			return operand{kind: opImmediate, imm: c.fetchImm(sz)}
		}
	}

	// Unreachable through a correctly seeded decode table.
	c.fail(fmt.Errorf("%w: mode %d register %d", ErrInvalidAddressingMode, mode, reg))
	return operand{}
}

// resolveEADst resolves a destination effective address for the
// ORI/ANDI/EORI immediate family, where mode 7.4 binds to the status
// register instead of an immediate: byte width means the CCR, word width
// the full SR.
func (c *CPU) resolveEADst(mode, reg uint8, sz Size) operand {
	if mode == 7 && reg == 4 {
		return operand{kind: opStatusReg}
	}
	return c.resolveEA(mode, reg, sz)
}

// calcIndex computes a base + d8(Xn) indexed address from an extension word.
// Extension word format: D/A | Reg(3) | W/L | 0(3) | Disp(8)
func (c *CPU) calcIndex(base uint32, ext uint16) uint32 {
	disp := int8(ext & 0xFF)
	xn := (ext >> 12) & 7

	var idx int32
	if ext&0x8000 != 0 {
		idx = int32(c.reg.A[xn])
	} else {
		idx = int32(c.reg.D[xn])
	}

	// Bit 11: 0 = sign-extend word index, 1 = full long index
	if ext&0x0800 == 0 {
		idx = int32(int16(idx))
	}

	return uint32(int32(base)+idx+int32(disp)) & addrMask
}
