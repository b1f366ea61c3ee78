// This file is part of calcore.
//
// calcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// calcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with calcore.  If not, see <https://www.gnu.org/licenses/>.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/calcore/calcore/hardware"
	"github.com/calcore/calcore/hardware/cpu"
)

// implemented by engines that give access to the emulated hardware
type calcEngine interface {
	Calc() *hardware.Calc
}

// snapshot of the hardware that is suitable for visualisation. the Calc
// type itself is not suitable because of the size of memory and the
// references to the scheduler
type snapshot struct {
	Variant   string
	Detection string
	CPU       cpuSnapshot
	Intc      intcSnapshot
	LCD       lcdSnapshot
	Timer     timerSnapshot
	Keypad    string
	Backlight uint8
	Control   string
	LastStop  string
}

type cpuSnapshot struct {
	Registers cpu.Registers
	IFF1      bool
	Halted    bool
	Cycles    uint64
}

type intcSnapshot struct {
	Status  uint8
	Enabled uint8
}

type lcdSnapshot struct {
	Upbase  uint32
	Control uint8
	Frames  uint64
}

type timerSnapshot struct {
	Count   uint32
	Reload  uint32
	Control uint8
}

func takeSnapshot(calc *hardware.Calc) *snapshot {
	return &snapshot{
		Variant:   calc.Variant.String(),
		Detection: calc.Detection.String(),
		CPU: cpuSnapshot{
			Registers: calc.CPU.Registers,
			IFF1:      calc.CPU.IFF1,
			Halted:    calc.CPU.Halted,
			Cycles:    calc.CPU.Cycles,
		},
		Intc: intcSnapshot{
			Status:  calc.Intc.Status,
			Enabled: calc.Intc.Enabled,
		},
		LCD: lcdSnapshot{
			Upbase:  calc.LCD.Upbase,
			Control: calc.LCD.Control,
			Frames:  calc.LCD.Frames,
		},
		Timer: timerSnapshot{
			Count:   calc.Timer.Count,
			Reload:  calc.Timer.Reload,
			Control: calc.Timer.Control,
		},
		Keypad:    calc.Keypad.String(),
		Backlight: calc.Backlight.Brightness,
		Control:   calc.Control.String(),
		LastStop:  calc.LastStop.String(),
	}
}

func printSnapshot(w io.Writer, calc *hardware.Calc) {
	fmt.Fprintf(w, "variant:   %s\n", calc.Variant)
	fmt.Fprintf(w, "detection: %s\n", calc.Detection)
	fmt.Fprintf(w, "cpu:       %s\n", calc.CPU)
	fmt.Fprintf(w, "cycles:    %d\n", calc.CPU.Cycles)
	fmt.Fprintf(w, "intc:      %s\n", calc.Intc)
	fmt.Fprintf(w, "lcd:       %s\n", calc.LCD)
	fmt.Fprintf(w, "timer:     %s\n", calc.Timer)
	fmt.Fprintf(w, "keypad:    %s\n", calc.Keypad)
	fmt.Fprintf(w, "backlight: %d\n", calc.Backlight.Brightness)
	fmt.Fprintf(w, "control:   %s\n", calc.Control)
	fmt.Fprintf(w, "stop:      %s\n", calc.LastStop)
}

func newInspectCommand(opts *RootOptions) *cobra.Command {
	var cycles int
	var dot string

	cmd := &cobra.Command{
		Use:   "inspect <rom>",
		Short: "Show the state of the hardware after running a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := opts.engine(args[0])
			if err != nil {
				return err
			}
			defer eng.Destroy()

			ce, ok := eng.(calcEngine)
			if !ok {
				return fmt.Errorf("backend %s does not support inspection", eng.Name())
			}

			if cycles > 0 {
				eng.RunCycles(cycles)
			}

			calc := ce.Calc()
			printSnapshot(cmd.OutOrStdout(), calc)

			if dot != "" {
				f, err := os.Create(dot)
				if err != nil {
					return err
				}
				defer f.Close()
				s := takeSnapshot(calc)
				memviz.Map(f, &s)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&cycles, "cycles", 0, "number of cycles to run before inspection")
	cmd.Flags().StringVar(&dot, "dot", "", "write graphviz visualisation of the hardware state to file")

	return cmd
}
