package m68k

import "testing"

// newCPU builds a CPU for testing, failing the test on a decode-table
// build error.
func newCPU(t *testing.T) *CPU {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c
}

// pokeWord stores a big-endian 16-bit word into memory.
func pokeWord(c *CPU, addr uint32, val uint16) {
	c.Poke(addr, byte(val>>8))
	c.Poke(addr+1, byte(val))
}

// pokeLong stores a big-endian 32-bit long into memory.
func pokeLong(c *CPU, addr uint32, val uint32) {
	pokeWord(c, addr, uint16(val>>16))
	pokeWord(c, addr+2, uint16(val))
}

// peekLong reads a big-endian 32-bit long from memory.
func peekLong(c *CPU, addr uint32) uint32 {
	return uint32(c.Peek(addr))<<24 | uint32(c.Peek(addr+1))<<16 |
		uint32(c.Peek(addr+2))<<8 | uint32(c.Peek(addr+3))
}

// cpuState captures the full programmer-visible state for a test case.
// RAM entries are [address, byte_value] pairs.
// A[7] is unused; the active stack pointer is derived from USP/SSP/SR.
type cpuState struct {
	D   [8]uint32
	A   [7]uint32
	PC  uint32
	SR  uint16
	USP uint32
	SSP uint32
	RAM [][2]uint32
}

// runTest loads initial state, executes one Tick, and compares against the
// expected state.
func runTest(t *testing.T, init, want cpuState) {
	t.Helper()

	cpu := newCPU(t)

	// Load initial RAM (byte-level entries)
	for _, entry := range init.RAM {
		cpu.Poke(entry[0], byte(entry[1]))
	}

	var a8 [8]uint32
	copy(a8[:7], init.A[:])
	cpu.SetState(Registers{
		D: init.D, A: a8, PC: init.PC, SR: init.SR,
		USP: init.USP, SSP: init.SSP,
	})

	if err := cpu.Tick(); err != nil {
		t.Fatalf("Tick() = %v", err)
	}

	reg := cpu.Registers()

	// Compare data registers
	for i := 0; i < 8; i++ {
		if reg.D[i] != want.D[i] {
			t.Errorf("D%d = 0x%08X, want 0x%08X", i, reg.D[i], want.D[i])
		}
	}

	// Compare address registers (A0-A6)
	for i := 0; i < 7; i++ {
		if reg.A[i] != want.A[i] {
			t.Errorf("A%d = 0x%08X, want 0x%08X", i, reg.A[i], want.A[i])
		}
	}

	// Compare stack pointers and A7.
	// In supervisor mode, A[7] is the live SSP and reg.USP is the shadow USP.
	// In user mode, A[7] is the live USP and reg.SSP is the shadow SSP.
	// Test cases always provide the "real" USP/SSP values regardless of mode.
	if want.SR&flagS != 0 {
		if reg.A[7] != want.SSP {
			t.Errorf("A7/SSP = 0x%08X, want 0x%08X", reg.A[7], want.SSP)
		}
		if reg.USP != want.USP {
			t.Errorf("USP = 0x%08X, want 0x%08X", reg.USP, want.USP)
		}
	} else {
		if reg.A[7] != want.USP {
			t.Errorf("A7/USP = 0x%08X, want 0x%08X", reg.A[7], want.USP)
		}
		if reg.SSP != want.SSP {
			t.Errorf("SSP = 0x%08X, want 0x%08X", reg.SSP, want.SSP)
		}
	}

	// Compare PC
	if reg.PC != want.PC {
		t.Errorf("PC = 0x%08X, want 0x%08X", reg.PC, want.PC)
	}

	// Compare SR
	if reg.SR != want.SR {
		t.Errorf("SR = 0x%04X, want 0x%04X (diff: %04X)", reg.SR, want.SR, reg.SR^want.SR)
	}

	// Compare RAM
	for _, entry := range want.RAM {
		wantVal := byte(entry[1])
		gotVal := cpu.Peek(entry[0])
		if gotVal != wantVal {
			t.Errorf("RAM[0x%06X] = 0x%02X, want 0x%02X", entry[0], gotVal, wantVal)
		}
	}
}

// program assembles opcode words at the given address and returns a CPU in
// supervisor mode with PC there and SSP at 0x10000.
func program(t *testing.T, pc uint32, words ...uint16) *CPU {
	t.Helper()
	cpu := newCPU(t)
	for i, w := range words {
		pokeWord(cpu, pc+uint32(i*2), w)
	}
	cpu.SetState(Registers{PC: pc, SR: 0x2700, SSP: 0x10000})
	return cpu
}

// tick runs one instruction and fails the test on a fault.
func tick(t *testing.T, cpu *CPU) {
	t.Helper()
	if err := cpu.Tick(); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
}
