package m68k

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	src := newCPU(t)
	src.SetState(Registers{
		D:   [8]uint32{1, 2, 3, 4, 5, 6, 7, 8},
		A:   [8]uint32{10, 20, 30, 40, 50, 60, 70},
		PC:  0x1234,
		SR:  0x2715,
		USP: 0x8000,
		SSP: 0x10000,
	})
	src.ir = 0x4E71
	src.reg.IR = 0x4E71
	src.stopped = true

	buf := make([]byte, src.SerializeSize())
	if err := src.Serialize(buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}

	dst := newCPU(t)
	if err := dst.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize() = %v", err)
	}

	srcReg := src.Registers()
	dstReg := dst.Registers()
	if srcReg != dstReg {
		t.Errorf("registers differ:\n got %+v\nwant %+v", dstReg, srcReg)
	}
	if dst.ir != src.ir {
		t.Errorf("ir = 0x%04X, want 0x%04X", dst.ir, src.ir)
	}
	if !dst.Stopped() {
		t.Error("stopped state not restored")
	}
}

func TestSerializeBufferTooSmall(t *testing.T) {
	cpu := newCPU(t)
	if err := cpu.Serialize(make([]byte, 10)); err == nil {
		t.Error("Serialize must reject a short buffer")
	}
	if err := cpu.Deserialize(make([]byte, 10)); err == nil {
		t.Error("Deserialize must reject a short buffer")
	}
}

func TestDeserializeVersionMismatch(t *testing.T) {
	cpu := newCPU(t)
	buf := make([]byte, cpu.SerializeSize())
	if err := cpu.Serialize(buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	buf[0] = 0xFF
	if err := cpu.Deserialize(buf); err == nil {
		t.Error("Deserialize must reject an unknown version")
	}
}

func TestSerializeSurvivesExecution(t *testing.T) {
	// Snapshot mid-program, keep running, restore, re-run: same result
	cpu := program(t, 0x1000, 0x7005, 0x5680) // MOVEQ #5,D0; ADDQ.L #3,D0
	tick(t, cpu)

	buf := make([]byte, cpu.SerializeSize())
	if err := cpu.Serialize(buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}

	tick(t, cpu)
	after := cpu.D(0)

	if err := cpu.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize() = %v", err)
	}
	if cpu.D(0) != 5 {
		t.Errorf("D0 = %d after restore, want 5", cpu.D(0))
	}
	tick(t, cpu)
	if cpu.D(0) != after {
		t.Errorf("replay diverged: D0 = %d, want %d", cpu.D(0), after)
	}
}
