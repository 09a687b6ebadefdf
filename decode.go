package m68k

import (
	"fmt"
	"sync"
)

// opFunc is the handler signature for a single MC68000 instruction.
// The first word of the instruction is already in c.ir when called.
type opFunc func(*CPU)

const tableSize = 0x10000

// opcodeTable is a 64K-entry lookup table indexed by the first instruction
// word. nil entries are treated as illegal instructions.
type opcodeTable [tableSize]opFunc

// opcodePart is one bit-field of an opcode description, most significant
// field first. An empty values list means every value the field can hold
// is permitted.
type opcodePart struct {
	bits   uint16
	name   string
	values []uint16
}

// opcodeDesc declares one instruction form: a mnemonic for diagnostics, the
// handler it dispatches to, and the ordered bit-fields of its first word.
// The table builder expands the cross product of all field values.
type opcodeDesc struct {
	mnemonic string
	handler  opFunc
	parts    []opcodePart
}

// Effective-addressing-mode classes, used to declare which (mode,register)
// pairs an instruction's EA field accepts.
const (
	eaDn      uint16 = 1 << iota // Data register direct
	eaAn                         // Address register direct
	eaInd                        // Address register indirect
	eaPostInc                    // Address register indirect with postincrement
	eaPreDec                     // Address register indirect with predecrement
	eaDisp                       // Address register indirect with displacement
	eaIdx                        // Address register indirect with index
	eaAbsW                       // Absolute short
	eaAbsL                       // Absolute long
	eaPCDisp                     // Program counter with displacement
	eaPCIdx                      // Program counter with index
	eaImm                        // Immediate (or status register, under the ORI/ANDI/EORI override)
)

// Common EA classes of the 68000 instruction set.
const (
	eaAll           = eaDn | eaAn | eaInd | eaPostInc | eaPreDec | eaDisp | eaIdx | eaAbsW | eaAbsL | eaPCDisp | eaPCIdx | eaImm
	eaDataSrc       = eaAll &^ eaAn
	eaDataAlterable = eaDn | eaInd | eaPostInc | eaPreDec | eaDisp | eaIdx | eaAbsW | eaAbsL
	eaMemAlterable  = eaDataAlterable &^ eaDn
	eaControl       = eaInd | eaDisp | eaIdx | eaAbsW | eaAbsL | eaPCDisp | eaPCIdx
)

// eaValues expands an EA class mask into 6-bit field values in the usual
// mode:register order.
func eaValues(modes uint16) []uint16 {
	return expandEA(modes, false)
}

// eaValuesSwapped expands an EA class mask into register:mode order, the
// bit-reversed layout MOVE uses for its destination field.
func eaValuesSwapped(modes uint16) []uint16 {
	return expandEA(modes, true)
}

func expandEA(modes uint16, swapped bool) []uint16 {
	pack := func(mode, reg uint16) uint16 {
		if swapped {
			return reg<<3 | mode
		}
		return mode<<3 | reg
	}

	var out []uint16
	for i := uint16(0); i <= 11; i++ {
		if modes&(1<<i) == 0 {
			continue
		}
		if i <= 6 {
			for reg := uint16(0); reg < 8; reg++ {
				out = append(out, pack(i, reg))
			}
		} else {
			// Modes 7-11 live under mode 7 with the register field
			// selecting the variant.
			out = append(out, pack(7, i-7))
		}
	}
	return out
}

// buildOpcodeTable expands every opcode description into the 64K dispatch
// table. Each slot must be claimed by at most one description; a second
// claim is a build-time conflict. Returns the table and the number of
// populated slots.
func buildOpcodeTable(descs []opcodeDesc) (*opcodeTable, int, error) {
	table := &opcodeTable{}
	owners := make(map[uint16]string)

	for _, desc := range descs {
		if err := expandDesc(desc, table, owners); err != nil {
			return nil, 0, err
		}
	}
	return table, len(owners), nil
}

// expandDesc walks the cross product of one description's field values,
// depth-first, assembling the 16-bit word as it goes.
func expandDesc(desc opcodeDesc, table *opcodeTable, owners map[uint16]string) error {
	var total uint16
	for _, part := range desc.parts {
		total += part.bits
	}
	if total != 16 {
		return fmt.Errorf("%w: %s fields sum to %d bits", ErrUnsupportedOpcodeVariant, desc.mnemonic, total)
	}

	type item struct {
		part  int
		shift uint16 // bits remaining to the right of the assembled prefix
		word  uint16
	}

	stack := []item{{part: 0, shift: 16}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.part == len(desc.parts) {
			if owner, taken := owners[it.word]; taken {
				return fmt.Errorf("%w: %s and %s both claim slot 0x%04x",
					ErrDecodeConflict, owner, desc.mnemonic, it.word)
			}
			owners[it.word] = desc.mnemonic
			table[it.word] = desc.handler
			continue
		}

		part := desc.parts[it.part]
		limit := uint32(1) << part.bits

		values := part.values
		if len(values) == 0 {
			values = make([]uint16, limit)
			for i := range values {
				values[i] = uint16(i)
			}
		}

		shift := it.shift - part.bits
		for _, v := range values {
			if uint32(v) >= limit {
				return fmt.Errorf("%w: %s field %q value %d exceeds %d bits",
					ErrUnsupportedOpcodeVariant, desc.mnemonic, part.name, v, part.bits)
			}
			stack = append(stack, item{
				part:  it.part + 1,
				shift: shift,
				word:  it.word | v<<shift,
			})
		}
	}
	return nil
}

// opcodeDescriptions collects the full opcode grammar of the base 68000
// integer instruction set, one contribution per instruction family.
func opcodeDescriptions() []opcodeDesc {
	var descs []opcodeDesc
	descs = append(descs, moveDescs()...)
	descs = append(descs, arithDescs()...)
	descs = append(descs, logicDescs()...)
	descs = append(descs, bitDescs()...)
	descs = append(descs, branchDescs()...)
	descs = append(descs, ctrlDescs()...)
	return descs
}

var (
	tableOnce      sync.Once
	tableShared    *opcodeTable
	tableOccupancy int
	tableErr       error
)

// sharedOpcodeTable builds the dispatch table once per process. The grammar
// is static, so every CPU shares the same read-only table.
func sharedOpcodeTable() (*opcodeTable, error) {
	tableOnce.Do(func() {
		tableShared, tableOccupancy, tableErr = buildOpcodeTable(opcodeDescriptions())
	})
	return tableShared, tableErr
}

// DecodeOccupancy returns how many of the 65,536 opcode slots are
// populated by the grammar. For diagnostics.
func DecodeOccupancy() (int, error) {
	if _, err := sharedOpcodeTable(); err != nil {
		return 0, err
	}
	return tableOccupancy, nil
}
