package m68k

import "log"

// MC68000 exception vector numbers.
const (
	vecResetSSP           = 0
	vecResetPC            = 1
	vecBusError           = 2
	vecAddressError       = 3
	vecIllegalInstruction = 4
	vecDivideByZero       = 5
	vecCHK                = 6
	vecTRAPV              = 7
	vecPrivilegeViolation = 8
	vecTrace              = 9
	vecLineA              = 10
	vecLineF              = 11
	vecTrap0              = 32 // TRAP #0 through TRAP #15 = vectors 32-47
)

// exception processes a vectored exception: enters supervisor mode, pushes
// the return frame (PC + SR) onto the supervisor stack, reads the
// handler address from the vector table, and jumps to it. This is the
// single entry point for all processor-visible control-flow faults; the
// host never observes them as errors.
func (c *CPU) exception(vector int) {
	// Log error exceptions (vectors 2-11) for diagnostics
	if vector >= vecBusError && vector <= vecLineF {
		log.Printf("[m68k] exception %d at PC=%06x SR=%04x", vector, c.reg.PC, c.reg.SR)
	}

	oldSR := c.reg.SR

	// Enter supervisor mode, clear trace
	if c.reg.SR&flagS == 0 {
		c.reg.USP = c.reg.A[7]
		c.reg.A[7] = c.reg.SSP
	}
	c.reg.SR = (c.reg.SR | flagS) & ^flagT

	// Push PC and old SR onto the supervisor stack
	c.pushLong(c.reg.PC)
	c.pushWord(oldSR)

	// Read handler address from the vector table
	c.reg.PC = c.readMem(Long, uint32(vector)*4)
}
