package m68k

import "errors"

// Emulator-internal errors. These indicate a bug in the hosted program or
// the emulator itself and propagate out of Tick. Processor-visible faults
// (divide by zero, TRAP, privilege violation, ...) are never reported this
// way; they vector through the exception table instead.
var (
	// ErrInvalidMemoryAccess is returned when an access falls outside the
	// 16 MiB address space (e.g. a long read straddling the top of memory).
	ErrInvalidMemoryAccess = errors.New("m68k: invalid memory access")

	// ErrStackOverflow is returned when a push would drive the active
	// stack pointer below address zero.
	ErrStackOverflow = errors.New("m68k: stack overflow")

	// ErrInvalidAddressingMode is returned when an instruction asks for
	// the address of an operand that does not live in memory (e.g. LEA of
	// a data register). Unreachable through a correctly seeded decode
	// table.
	ErrInvalidAddressingMode = errors.New("m68k: invalid addressing mode")

	// ErrDecodeConflict is returned at initialization when two opcode
	// descriptions claim the same 16-bit table slot.
	ErrDecodeConflict = errors.New("m68k: decode table conflict")

	// ErrUnsupportedOpcodeVariant is returned when a grammar entry is
	// malformed: its fields do not sum to 16 bits, or a field value does
	// not fit its width.
	ErrUnsupportedOpcodeVariant = errors.New("m68k: unsupported opcode variant")
)
