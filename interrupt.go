package m68k

import "fmt"

// Interrupt injects an exception from the host between ticks: an external
// device signalling the CPU. The exception frame is pushed and control
// transfers through the given vector; a CPU stopped by STOP resumes.
//
// Priority arbitration between devices is the host's concern; the core
// services whatever the host injects.
func (c *CPU) Interrupt(vector int) error {
	if c.fault != nil {
		return c.fault
	}
	if vector < 0 || vector > 255 {
		return fmt.Errorf("m68k: interrupt vector %d out of range", vector)
	}

	c.stopped = false
	c.exception(vector)
	return c.fault
}
