package m68k

import (
	"errors"
	"testing"
)

func TestDecodeTableBuilds(t *testing.T) {
	table, occupancy, err := buildOpcodeTable(opcodeDescriptions())
	if err != nil {
		t.Fatalf("buildOpcodeTable() = %v", err)
	}

	// The base 68000 integer ISA populates a large share of the 64K space
	// (the original tool reported its occupancy rate for the same reason).
	if occupancy < 20000 {
		t.Errorf("occupancy = %d, suspiciously low", occupancy)
	}

	known := []struct {
		opcode uint16
		name   string
	}{
		{0x4E71, "NOP"},
		{0x4E75, "RTS"},
		{0x4E73, "RTE"},
		{0x4E77, "RTR"},
		{0x4AFC, "ILLEGAL"},
		{0x4E72, "STOP"},
		{0x4E40, "TRAP #0"},
		{0x203C, "MOVE.L #imm,D0"},
		{0x303C, "MOVE.W #imm,D0"},
		{0x7000, "MOVEQ #0,D0"},
		{0xD040, "ADD.W D0,D0"},
		{0x0640, "ADDI.W #imm,D0"},
		{0x5248, "ADDQ.W #1,A0"},
		{0x80C1, "DIVU.W D1,D0"},
		{0x81C1, "DIVS.W D1,D0"},
		{0xC0C1, "MULU.W D1,D0"},
		{0x4840, "SWAP D0"},
		{0x4850, "PEA (A0)"},
		{0x41D0, "LEA (A0),A0"},
		{0x48D0, "MOVEM.L regs,(A0)"},
		{0x4CD0, "MOVEM.L (A0),regs"},
		{0x0108, "MOVEP.W (A0),D0"},
		{0x003C, "ORI #imm,CCR"},
		{0x007C, "ORI #imm,SR"},
		{0x023C, "ANDI #imm,CCR"},
		{0x0A7C, "EORI #imm,SR"},
		{0xE248, "LSR.W #1,D0"},
		{0xE2D0, "LSR.W (A0) [memory]"},
		{0x0800, "BTST #imm,D0"},
		{0x6000, "BRA"},
		{0x6600, "BNE"},
		{0x51C8, "DBRA D0"},
		{0x50C0, "ST D0"},
		{0x4E50, "LINK A0"},
		{0x4E58, "UNLK A0"},
		{0x40C0, "MOVE SR,D0"},
		{0x46C0, "MOVE D0,SR"},
		{0x4AC0, "TAS D0"},
		{0xB108, "CMPM.B (A0)+,(A0)+"},
		{0xC140, "EXG D0,D0"},
	}
	for _, k := range known {
		if table[k.opcode] == nil {
			t.Errorf("slot 0x%04X (%s) is empty", k.opcode, k.name)
		}
	}

	// Encodings the base 68000 does not define must stay empty.
	empty := []struct {
		opcode uint16
		name   string
	}{
		{0x0048, "ORI.W to An"},
		{0x1048, "MOVE.B An,D0"},
		{0x4E7A, "MOVEC (68010)"},
		{0xC108, "ABCD -(A0),-(A0) (deferred)"},
		{0x8108, "SBCD -(A0),-(A0) (deferred)"},
		{0x4800, "NBCD D0 (deferred)"},
		{0x06C0, "ADDI size=11"},
	}
	for _, e := range empty {
		if table[e.opcode] != nil {
			t.Errorf("slot 0x%04X (%s) should be empty", e.opcode, e.name)
		}
	}
}

func TestDecodeConflictDetected(t *testing.T) {
	descs := []opcodeDesc{
		{"FIRST", opNOP, []opcodePart{{16, "fixed", []uint16{0x1234}}}},
		{"SECOND", opNOP, []opcodePart{{16, "fixed", []uint16{0x1234}}}},
	}
	_, _, err := buildOpcodeTable(descs)
	if !errors.Is(err, ErrDecodeConflict) {
		t.Errorf("err = %v, want ErrDecodeConflict", err)
	}
}

func TestDecodeOverlappingFamiliesConflict(t *testing.T) {
	// Two families whose field products intersect in a single slot.
	descs := []opcodeDesc{
		{"WIDE", opNOP, []opcodePart{
			{8, "fixed", []uint16{0x12}},
			{8, "data", nil}}},
		{"NARROW", opNOP, []opcodePart{
			{16, "fixed", []uint16{0x1280}}}},
	}
	_, _, err := buildOpcodeTable(descs)
	if !errors.Is(err, ErrDecodeConflict) {
		t.Errorf("err = %v, want ErrDecodeConflict", err)
	}
}

func TestDecodeBadFieldWidth(t *testing.T) {
	descs := []opcodeDesc{
		{"SHORT", opNOP, []opcodePart{{12, "fixed", []uint16{0}}}},
	}
	_, _, err := buildOpcodeTable(descs)
	if !errors.Is(err, ErrUnsupportedOpcodeVariant) {
		t.Errorf("err = %v, want ErrUnsupportedOpcodeVariant", err)
	}
}

func TestDecodeValueTooLarge(t *testing.T) {
	descs := []opcodeDesc{
		{"BIG", opNOP, []opcodePart{
			{8, "fixed", []uint16{0x100}},
			{8, "data", nil}}},
	}
	_, _, err := buildOpcodeTable(descs)
	if !errors.Is(err, ErrUnsupportedOpcodeVariant) {
		t.Errorf("err = %v, want ErrUnsupportedOpcodeVariant", err)
	}
}

func TestDecodeOccupancy(t *testing.T) {
	n, err := DecodeOccupancy()
	if err != nil {
		t.Fatalf("DecodeOccupancy() = %v", err)
	}
	if n == 0 {
		t.Error("DecodeOccupancy() = 0")
	}
}

func TestEAValueExpansion(t *testing.T) {
	vals := eaValues(eaDn)
	if len(vals) != 8 {
		t.Fatalf("eaValues(eaDn) has %d entries, want 8", len(vals))
	}
	for i, v := range vals {
		if v != uint16(i) {
			t.Errorf("eaValues(eaDn)[%d] = %#o, want %#o", i, v, i)
		}
	}

	vals = eaValues(eaImm)
	if len(vals) != 1 || vals[0] != 0x3C {
		t.Errorf("eaValues(eaImm) = %v, want [0x3C]", vals)
	}

	// Swapped order: mode 2 (An indirect) register 5 packs as 5<<3|2.
	vals = eaValuesSwapped(eaInd)
	want := uint16(5<<3 | 2)
	found := false
	for _, v := range vals {
		if v == want {
			found = true
		}
	}
	if !found {
		t.Errorf("eaValuesSwapped(eaInd) missing %#x", want)
	}
}
