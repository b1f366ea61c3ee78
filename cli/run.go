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
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/digest"
	"github.com/calcore/calcore/hardware/peripherals"
	"github.com/calcore/calcore/slots"
)

type runOptions struct {
	frames  int
	cycles  int
	digest  bool
	key     string
	save    string
	restore string
	power   bool
}

func newRunCommand(opts *RootOptions) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM image without a display",
		Long: `Run a ROM image for a number of frames without a display and print a
summary of the state of the calculator afterwards.

The state of the calculator can be restored from a slot before running and
saved to a new slot after running.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), opts, ro, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&ro.frames, "frames", 60, "number of frames to run")
	cmd.Flags().IntVar(&ro.cycles, "cycles", 0, "cycles per frame (default from preferences)")
	cmd.Flags().BoolVar(&ro.digest, "digest", false, "print digest of every frame")
	cmd.Flags().StringVar(&ro.key, "key", "", "key to hold during the first frame (row,col)")
	cmd.Flags().StringVar(&ro.save, "save", "", "save state to a new slot with this name")
	cmd.Flags().StringVar(&ro.restore, "restore", "", "restore state from slot with this id")
	cmd.Flags().BoolVar(&ro.power, "power", true, "press the ON key before running (ignored with --restore)")

	return cmd
}

// parse a key in the form "row,col"
func parseKey(s string) (int, int, error) {
	r, c, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("key must be in the form row,col: %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return 0, 0, fmt.Errorf("key row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return 0, 0, fmt.Errorf("key column: %w", err)
	}
	if row < 0 || row >= peripherals.KeyRows || col < 0 || col >= peripherals.KeyColumns {
		return 0, 0, fmt.Errorf("key outside of keypad: %d,%d", row, col)
	}
	return row, col, nil
}

// summary of a run
type runSummary struct {
	Frames    int
	Cycles    int
	Stop      backend.StopReason
	DisplayOn bool
	Backlight uint8
	Digest    string
}

func (s runSummary) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "frames: %d\n", s.Frames)
	fmt.Fprintf(&b, "cycles: %d\n", s.Cycles)
	fmt.Fprintf(&b, "stop: %s\n", s.Stop)
	fmt.Fprintf(&b, "display: %v\n", s.DisplayOn)
	fmt.Fprintf(&b, "backlight: %d\n", s.Backlight)
	fmt.Fprintf(&b, "digest: %s\n", s.Digest)
	return b.String()
}

func runRun(ctx context.Context, opts *RootOptions, ro *runOptions, romFile string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cpf := ro.cycles
	if cpf <= 0 {
		cpf = opts.Preferences.CyclesPerFrame.Get().(int)
	}

	row, col := -1, -1
	if ro.key != "" {
		var err error
		row, col, err = parseKey(ro.key)
		if err != nil {
			return err
		}
	}

	eng, rom, err := opts.engine(romFile)
	if err != nil {
		return err
	}
	defer eng.Destroy()

	// the slot store is only opened if it is needed
	var store *slots.Store
	if ro.save != "" || ro.restore != "" {
		pth, err := opts.slotsPath()
		if err != nil {
			return err
		}
		store, err = slots.Open(pth)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if ro.restore != "" {
		slot, err := store.LoadFor(ctx, ro.restore, opts.Backend)
		if err != nil {
			return err
		}
		if err := eng.LoadState(slot.Blob); err != nil {
			return fmt.Errorf("restoring %s: %w", ro.restore, err)
		}
	} else if ro.power {
		eng.PowerOn()
	}

	if row >= 0 {
		eng.SetKey(row, col, true)
	}

	dig := digest.NewVideo()
	sum := runSummary{}

	for f := range ro.frames {
		sum.Cycles += eng.RunCycles(cpf)
		sum.Frames++

		pixels, _, _ := eng.Framebuffer()
		dig.Frame(pixels)
		if ro.digest {
			fmt.Fprintf(w, "%d: %s\n", f, dig.Hash())
		}

		if f == 0 && row >= 0 {
			eng.SetKey(row, col, false)
		}

		if sr, ok := eng.(backend.StopReporter); ok {
			sum.Stop = sr.LastStop()
			if sum.Stop == backend.StopExit {
				break
			}
		}
	}

	sum.DisplayOn = eng.IsDisplayOn()
	sum.Backlight = eng.BacklightLevel()
	sum.Digest = dig.Hash()
	fmt.Fprint(w, sum.String())

	if ro.save != "" {
		buf := make([]byte, eng.SaveStateSize())
		n, err := eng.SaveState(buf)
		if err != nil {
			return err
		}
		id, err := store.Save(ctx, slots.Slot{
			Name:    ro.save,
			Backend: eng.Name(),
			ROMHash: slots.ROMHash(rom),
			Blob:    buf[:n],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "saved: %s\n", id)
	}

	return nil
}
