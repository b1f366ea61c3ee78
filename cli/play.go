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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
	"github.com/spf13/cobra"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/performance/limiter"
	"github.com/calcore/calcore/rewind"
)

// number of frames a key is held for after being typed. a terminal does not
// report key releases
const holdFrames = 4

// number of rewind entries to go back when rewinding
const rewindStep = 10

// the screen is redrawn every drawFrames frames
const drawFrames = 4

// size of the text screen
const (
	screenCols = 80
	screenRows = 30
)

// the terminal is read with a timeout so the reading goroutine can notice
// that play has ended
const readTimeout = 100 * time.Millisecond

// clear the terminal and move the cursor to the top left
const clearScreen = "\033[H\033[2J"

// keys that are currently being held and the number of frames before
// they are released
type heldKeys map[keyPos]int

func (h heldKeys) press(eng backend.Engine, k keyPos) {
	if _, ok := h[k]; !ok {
		eng.SetKey(k.row, k.col, true)
	}
	h[k] = holdFrames
}

// release keys that have been held for long enough
func (h heldKeys) tick(eng backend.Engine) {
	for k, n := range h {
		n--
		if n <= 0 {
			eng.SetKey(k.row, k.col, false)
			delete(h, k)
			continue
		}
		h[k] = n
	}
}

func newPlayCommand(opts *RootOptions) *cobra.Command {
	var tty string

	cmd := &cobra.Command{
		Use:   "play <rom>",
		Short: "Play a ROM image in the terminal",
		Long: `Play a ROM image in the terminal. The display is drawn with text characters.

Keys:
  0-9 . + - * / ^ ( ) ,   calculator keys of the same name
  ~                       negate
  arrow keys, enter       calculator keys of the same name
  backspace               del
  c                       clear
  o                       on
  s a m g y x             2nd, alpha, mode, graph, y=, X,T,θ,n
  u                       rewind
  q, ctrl-c               quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], tty, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&tty, "tty", "/dev/tty", "terminal device to read keys from")

	return cmd
}

func runPlay(opts *RootOptions, romFile string, tty string, w io.Writer) error {
	eng, _, err := opts.engine(romFile)
	if err != nil {
		return err
	}
	defer eng.Destroy()

	rw := rewind.NewRewind(eng, 0)
	_, err = rewind.NewPreferences(rw, opts.Config)
	if err != nil {
		return err
	}

	t, err := term.Open(tty, term.RawMode, term.ReadTimeout(readTimeout))
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	defer func() {
		_ = t.Restore()
		_ = t.Close()
	}()

	done := make(chan bool)
	defer close(done)
	keys := readTerm(t, done, opts.Log)

	cpf := opts.Preferences.CyclesPerFrame.Get().(int)
	held := make(heldKeys)

	eng.PowerOn()

	lim := limiter.NewFPSLimiter(clocks.FrameRate)
	defer lim.Stop()

	var frame int
	var status string

	for {
		select {
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			for _, in := range decodeInput(b) {
				switch in.action {
				case actionQuit:
					fmt.Fprint(w, "\r\n")
					return nil
				case actionRewind:
					s, err := rw.Rewind(rewindStep)
					if err != nil {
						status = err.Error()
						continue
					}
					frame = s.Frame
					status = fmt.Sprintf("rewound to frame %d", frame)
				default:
					held.press(eng, in.key)
				}
			}

		case <-lim.C():
			eng.RunCycles(cpf)
			held.tick(eng)
			frame++

			if _, err := rw.Check(frame); err != nil {
				opts.Log.Log(logger.Allow, "play", err)
			}

			if frame%drawFrames == 0 {
				pixels, width, height := eng.Framebuffer()
				fmt.Fprint(w, clearScreen)
				if eng.IsDisplayOn() {
					fmt.Fprint(w, asciiScreen(pixels, width, height, screenCols, screenRows))
				} else {
					fmt.Fprint(w, asciiScreen(nil, width, height, screenCols, screenRows))
				}
				fmt.Fprintf(w, "frame %d  %s\r\n", frame, status)
			}

			if sr, ok := eng.(backend.StopReporter); ok && sr.LastStop() == backend.StopExit {
				fmt.Fprint(w, "calculator has stopped\r\n")
				return nil
			}
		}
	}
}

// read from the terminal in a goroutine until done is closed. the returned
// channel is closed if the terminal can no longer be read
func readTerm(t *term.Term, done chan bool, log logger.Sink) chan []byte {
	keys := make(chan []byte)

	go func() {
		defer close(keys)
		buf := make([]byte, 16)
		for {
			n, err := t.Read(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				log.Logf(logger.Allow, "play", "terminal: %v", err)
				return
			}

			if n > 0 {
				select {
				case keys <- append([]byte{}, buf[:n]...):
				case <-done:
					return
				}
				continue
			}

			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return keys
}
