package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m68k "github.com/tinyemu/m68k"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "m68kemu",
		Short: "m68kemu — interpreted MC68000 instruction-set simulator",
	}

	var org uint32
	var pc uint32
	var ticks int
	var trace bool

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a flat binary image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := newLoadedCPU(args[0], org, pc)
			if err != nil {
				return err
			}

			n := 0
			for ; ticks == 0 || n < ticks; n++ {
				if cpu.Stopped() {
					fmt.Printf("stopped after %d instructions\n", n)
					break
				}
				if trace {
					word := uint16(cpu.Peek(cpu.PC()))<<8 | uint16(cpu.Peek(cpu.PC()+1))
					fmt.Printf("%06X  %04X\n", cpu.PC(), word)
				}
				if err := cpu.Tick(); err != nil {
					printRegisters(cpu)
					return fmt.Errorf("after %d instructions: %w", n, err)
				}
			}

			printRegisters(cpu)
			return nil
		},
	}
	runCmd.Flags().Uint32Var(&org, "org", 0x1000, "memory offset the image is loaded at")
	runCmd.Flags().Uint32Var(&pc, "pc", 0x1000, "initial program counter")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "maximum instructions to execute (0 = until STOP)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print PC and opcode word before each instruction")

	monitorCmd := &cobra.Command{
		Use:   "monitor <image>",
		Short: "Single-step a flat binary image interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := newLoadedCPU(args[0], org, pc)
			if err != nil {
				return err
			}
			return monitor(cpu)
		},
	}
	monitorCmd.Flags().Uint32Var(&org, "org", 0x1000, "memory offset the image is loaded at")
	monitorCmd.Flags().Uint32Var(&pc, "pc", 0x1000, "initial program counter")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print decode-table statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := m68k.DecodeOccupancy()
			if err != nil {
				return err
			}
			fmt.Printf("decode table: %d of 65536 slots populated\n", n)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, monitorCmd, infoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLoadedCPU builds a CPU with the given image deposited at org and the
// program counter at pc.
func newLoadedCPU(path string, org, pc uint32) (*m68k.CPU, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cpu, err := m68k.New()
	if err != nil {
		return nil, err
	}
	if err := cpu.LoadProgram(org, image, pc); err != nil {
		return nil, err
	}
	return cpu, nil
}

func printRegisters(cpu *m68k.CPU) {
	reg := cpu.Registers()
	for i := 0; i < 8; i++ {
		fmt.Printf("D%d=%08X ", i, reg.D[i])
		if i == 3 || i == 7 {
			fmt.Println()
		}
	}
	for i := 0; i < 8; i++ {
		fmt.Printf("A%d=%08X ", i, reg.A[i])
		if i == 3 || i == 7 {
			fmt.Println()
		}
	}
	fmt.Printf("PC=%06X SR=%04X USP=%08X SSP=%08X", cpu.PC(), cpu.SR(), cpu.USP(), cpu.SSP())
	fmt.Printf("  [%s%s%s%s%s]\n",
		flagChar(cpu, m68k.FlagX, "X"),
		flagChar(cpu, m68k.FlagN, "N"),
		flagChar(cpu, m68k.FlagZ, "Z"),
		flagChar(cpu, m68k.FlagV, "V"),
		flagChar(cpu, m68k.FlagC, "C"))
}

func flagChar(cpu *m68k.CPU, bit uint16, name string) string {
	if cpu.Flag(bit) {
		return name
	}
	return "-"
}

// monitor runs an interactive single-step loop on a raw terminal:
// s/space = step, r = registers, c = run until STOP or fault, q = quit.
// Raw mode disables line buffering so single keystrokes drive the loop;
// the previous terminal state is restored on exit.
func monitor(cpu *m68k.CPU) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor: failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	// Raw mode needs explicit carriage returns.
	prompt := func() { fmt.Print("m68k> \r\n") }
	fmt.Print("monitor: s=step r=registers c=continue q=quit\r\n")
	prompt()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return err
		}

		switch buf[0] {
		case 'q', 3: // q or Ctrl-C
			return nil

		case 's', ' ':
			if cpu.Stopped() {
				fmt.Print("cpu is stopped\r\n")
				break
			}
			if err := cpu.Tick(); err != nil {
				fmt.Printf("fault: %v\r\n", err)
				break
			}
			fmt.Printf("PC=%06X SR=%04X\r\n", cpu.PC(), cpu.SR())

		case 'r':
			term.Restore(fd, oldState)
			printRegisters(cpu)
			if _, err := term.MakeRaw(fd); err != nil {
				return err
			}

		case 'c':
			for !cpu.Stopped() {
				if err := cpu.Tick(); err != nil {
					fmt.Printf("fault: %v\r\n", err)
					break
				}
			}
			fmt.Printf("stopped at PC=%06X\r\n", cpu.PC())
		}
		prompt()
	}
}
