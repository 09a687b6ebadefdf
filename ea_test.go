package m68k

import (
	"errors"
	"testing"
)

func TestResolveEARegisterModes(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{
		D:   [8]uint32{0x11111111, 0x22222222},
		A:   [8]uint32{0x1000},
		SR:  0x2700,
		SSP: 0x10000,
	})

	e := cpu.resolveEA(0, 1, Long)
	if got := e.read(cpu, Long); got != 0x22222222 {
		t.Errorf("Dn read = 0x%08X", got)
	}
	e.write(cpu, Byte, 0xAB)
	if cpu.reg.D[1] != 0x222222AB {
		t.Errorf("byte write to Dn = 0x%08X, want upper bits preserved", cpu.reg.D[1])
	}

	e = cpu.resolveEA(1, 0, Long)
	if got := e.read(cpu, Long); got != 0x1000 {
		t.Errorf("An read = 0x%08X", got)
	}
	e.write(cpu, Long, 0x2000)
	if cpu.reg.A[0] != 0x2000 {
		t.Errorf("An write = 0x%08X", cpu.reg.A[0])
	}
}

func TestResolveEAIndirect(t *testing.T) {
	cpu := newCPU(t)
	var a [8]uint32
	a[2] = 0x3000
	cpu.SetState(Registers{A: a, SR: 0x2700, SSP: 0x10000})
	pokeLong(cpu, 0x3000, 0xCAFEBABE)

	e := cpu.resolveEA(2, 2, Long)
	if got := e.read(cpu, Long); got != 0xCAFEBABE {
		t.Errorf("(An) read = 0x%08X", got)
	}
	if cpu.reg.A[2] != 0x3000 {
		t.Errorf("(An) modified A2")
	}
}

func TestResolveEAPostincrement(t *testing.T) {
	cpu := newCPU(t)
	var a [8]uint32
	a[0] = 0x3000
	cpu.SetState(Registers{A: a, SR: 0x2700, SSP: 0x10000})
	pokeWord(cpu, 0x3000, 0x1234)

	e := cpu.resolveEA(3, 0, Word)
	// The handle points at the pre-increment address...
	if got := e.read(cpu, Word); got != 0x1234 {
		t.Errorf("(An)+ read = 0x%04X", got)
	}
	// ...and the register has already advanced
	if cpu.reg.A[0] != 0x3002 {
		t.Errorf("A0 = 0x%06X, want 0x3002", cpu.reg.A[0])
	}
}

func TestResolveEAPredecrement(t *testing.T) {
	cpu := newCPU(t)
	var a [8]uint32
	a[0] = 0x3004
	cpu.SetState(Registers{A: a, SR: 0x2700, SSP: 0x10000})
	pokeLong(cpu, 0x3000, 0xDEADBEEF)

	e := cpu.resolveEA(4, 0, Long)
	if cpu.reg.A[0] != 0x3000 {
		t.Errorf("A0 = 0x%06X, want 0x3000 (decremented before access)", cpu.reg.A[0])
	}
	if got := e.read(cpu, Long); got != 0xDEADBEEF {
		t.Errorf("-(An) read = 0x%08X", got)
	}
}

func TestA7ByteQuirk(t *testing.T) {
	// Byte-sized (A7)+ and -(A7) adjust by 2 to keep the stack word-aligned
	cpu := newCPU(t)
	cpu.SetState(Registers{SR: 0x2700, SSP: 0x2000})

	cpu.resolveEA(4, 7, Byte)
	if cpu.reg.A[7] != 0x1FFE {
		t.Errorf("-(A7).B: A7 = 0x%06X, want 0x1FFE", cpu.reg.A[7])
	}

	cpu.resolveEA(3, 7, Byte)
	if cpu.reg.A[7] != 0x2000 {
		t.Errorf("(A7)+.B: A7 = 0x%06X, want 0x2000", cpu.reg.A[7])
	}

	// Other registers move by exactly one
	var a [8]uint32
	a[0] = 0x2000
	cpu.SetState(Registers{A: a, SR: 0x2700, SSP: 0x10000})
	cpu.resolveEA(4, 0, Byte)
	if cpu.reg.A[0] != 0x1FFF {
		t.Errorf("-(A0).B: A0 = 0x%06X, want 0x1FFF", cpu.reg.A[0])
	}
}

func TestResolveEADisplacement(t *testing.T) {
	cpu := newCPU(t)
	var a [8]uint32
	a[1] = 0x3000
	cpu.SetState(Registers{A: a, PC: 0x1000, SR: 0x2700, SSP: 0x10000})
	pokeWord(cpu, 0x1000, 0xFFFC) // displacement -4

	e := cpu.resolveEA(5, 1, Word)
	if e.addr != 0x2FFC {
		t.Errorf("d16(An) = 0x%06X, want 0x2FFC", e.addr)
	}
	if cpu.reg.PC != 0x1002 {
		t.Errorf("PC = 0x%06X, want 0x1002", cpu.reg.PC)
	}
}

func TestResolveEAIndexed(t *testing.T) {
	cpu := newCPU(t)
	var a [8]uint32
	a[1] = 0x3000
	cpu.SetState(Registers{
		D:   [8]uint32{0, 0, 0x10},
		A:   a,
		PC:  0x1000,
		SR:  0x2700,
		SSP: 0x10000,
	})
	// Extension: D2.W index, displacement 4
	pokeWord(cpu, 0x1000, 0x2004)

	e := cpu.resolveEA(6, 1, Word)
	if e.addr != 0x3014 {
		t.Errorf("d8(An,Xn) = 0x%06X, want 0x3014", e.addr)
	}
}

func TestResolveEAAbsolute(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{PC: 0x1000, SR: 0x2700, SSP: 0x10000})

	pokeWord(cpu, 0x1000, 0x8000) // abs.W 0x8000 sign-extends to 0xFFFF8000
	e := cpu.resolveEA(7, 0, Word)
	if e.addr != 0xFF8000 {
		t.Errorf("abs.W = 0x%06X, want 0xFF8000 (sign-extended, 24-bit wrapped)", e.addr)
	}

	pokeLong(cpu, 0x1002, 0x00123456)
	e = cpu.resolveEA(7, 1, Word)
	if e.addr != 0x123456 {
		t.Errorf("abs.L = 0x%06X, want 0x123456", e.addr)
	}
}

func TestResolveEAPCRelative(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{PC: 0x1000, SR: 0x2700, SSP: 0x10000})
	pokeWord(cpu, 0x1000, 0x0010) // displacement +16 from the extension word

	e := cpu.resolveEA(7, 2, Word)
	if e.addr != 0x1010 {
		t.Errorf("d16(PC) = 0x%06X, want 0x1010", e.addr)
	}
}

func TestResolveEAImmediate(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{PC: 0x1000, SR: 0x2700, SSP: 0x10000})
	pokeLong(cpu, 0x1000, 0x11223344)

	e := cpu.resolveEA(7, 4, Long)
	if got := e.read(cpu, Long); got != 0x11223344 {
		t.Errorf("#imm.L = 0x%08X", got)
	}
	if cpu.reg.PC != 0x1004 {
		t.Errorf("PC = 0x%06X, want 0x1004", cpu.reg.PC)
	}
}

func TestAddressOfNonMemoryOperandFaults(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{SR: 0x2700, SSP: 0x10000})

	e := cpu.resolveEA(0, 3, Long)
	e.address(cpu)
	if !errors.Is(cpu.fault, ErrInvalidAddressingMode) {
		t.Errorf("fault = %v, want ErrInvalidAddressingMode", cpu.fault)
	}
}

func TestStatusRegisterOverride(t *testing.T) {
	cpu := newCPU(t)
	cpu.SetState(Registers{SR: 0x2700, SSP: 0x10000})

	e := cpu.resolveEADst(7, 4, Word)
	if e.kind != opStatusReg {
		t.Fatalf("kind = %d, want opStatusReg", e.kind)
	}
	if got := e.read(cpu, Word); got != 0x2700 {
		t.Errorf("SR read = 0x%04X, want 0x2700", got)
	}

	// Byte width touches only the CCR
	e.write(cpu, Byte, 0x1F)
	if cpu.reg.SR != 0x271F {
		t.Errorf("SR = 0x%04X, want 0x271F", cpu.reg.SR)
	}

	// Other modes resolve normally
	e = cpu.resolveEADst(0, 2, Word)
	if e.kind != opDataReg {
		t.Errorf("kind = %d, want opDataReg", e.kind)
	}
}
