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

package performance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/calcore/calcore/backend"
)

// sentinal error returned by the run loop.
var timedOut = errors.New("performance timed out")

// Options for Check().
type Options struct {
	// number of cycles in each frame
	CyclesPerFrame int

	// time spent running before measurement starts. allows the frame rate to
	// settle down
	Leadtime time.Duration

	// length of the measurement period
	Duration time.Duration

	Profile Profile

	// header of the profile filenames
	FilenameHeader string
}

// Result of a performance check.
type Result struct {
	Frames   int
	Duration time.Duration
	FPS      float64
	Accuracy float64
}

func (r Result) String() string {
	return fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%", r.FPS, r.Frames, r.Duration.Seconds(), r.Accuracy)
}

// Check the performance of the engine. The engine must have a ROM loaded.
// The engine is run as quickly as possible for the duration specified in the
// options and the result is written to output.
//
// The check ends early if the context is cancelled. The measurement is
// abandoned in that case.
func Check(ctx context.Context, output io.Writer, eng backend.Engine, opts Options) (Result, error) {
	if opts.CyclesPerFrame <= 0 {
		return Result{}, fmt.Errorf("performance: cycles per frame must be positive")
	}
	if opts.Duration <= 0 {
		return Result{}, fmt.Errorf("performance: duration must be positive")
	}
	if opts.FilenameHeader == "" {
		opts.FilenameHeader = "performance"
	}

	var numFrames int
	var start time.Time

	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals true
		// when duration has expired. signals false to indicate that
		// performance measurement should start
		timerChan := make(chan bool, 2)

		time.AfterFunc(opts.Leadtime, func() {
			timerChan <- false
			time.AfterFunc(opts.Duration, func() {
				timerChan <- true
			})
		})

		measuring := false

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case v := <-timerChan:
				if v {
					return timedOut
				}
				measuring = true
				numFrames = 0
				start = time.Now()
			default:
			}

			eng.RunCycles(opts.CyclesPerFrame)
			if measuring {
				numFrames++
			}
		}
	}

	err := RunProfiler(opts.Profile, opts.FilenameHeader, runner)
	if err != nil && !errors.Is(err, timedOut) {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	res := Result{
		Frames:   numFrames,
		Duration: time.Since(start),
	}
	res.FPS, res.Accuracy = CalcFPS(res.Frames, res.Duration.Seconds())

	fmt.Fprintln(output, res.String())

	return res, nil
}
