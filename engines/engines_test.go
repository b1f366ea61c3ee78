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

package engines_test

import (
	"bytes"
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/engines"
	"github.com/calcore/calcore/hardware/testrom"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/test"
	"github.com/google/go-cmp/cmp"
)

// run a contract test against every built-in engine
func forEachEngine(t *testing.T, f func(t *testing.T, eng backend.Engine, log *logger.Logger)) {
	reg := engines.Default()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			log := logger.NewLogger(logger.DefaultCapacity)
			eng, err := reg.Create(name, log)
			test.DemandSuccess(t, err)
			defer eng.Destroy()
			f(t, eng, log)
		})
	}
}

func loaded(t *testing.T, eng backend.Engine, code map[int][]uint8) {
	t.Helper()
	test.DemandSuccess(t, eng.LoadROM(testrom.Build(code)))
}

func snapshot(t *testing.T, eng backend.Engine) []byte {
	t.Helper()
	blob := make([]byte, eng.SaveStateSize())
	n, err := eng.SaveState(blob)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, n, len(blob))
	return blob
}

func frame(eng backend.Engine) []uint32 {
	px, _, _ := eng.Framebuffer()
	return append([]uint32(nil), px...)
}

func TestDefault(t *testing.T) {
	reg := engines.Default()
	test.ExpectEquality(t, reg.Default(), "ce")
	test.ExpectSuccess(t, reg.Count() > 0)

	_, err := reg.Create("nonexistent", nil)
	test.ExpectSuccess(t, curated.Is(err, backend.UnknownBackend))
}

func TestUninitialised(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		px, w, h := eng.Framebuffer()
		test.ExpectEquality(t, len(px), 0)
		test.ExpectEquality(t, w, backend.ScreenWidth)
		test.ExpectEquality(t, h, backend.ScreenHeight)

		test.ExpectEquality(t, eng.RunCycles(1000), 0)
		test.ExpectEquality(t, eng.BacklightLevel(), uint8(0))
		test.ExpectFailure(t, eng.IsDisplayOn())
		test.ExpectEquality(t, eng.SaveStateSize(), 0)

		_, err := eng.SaveState(make([]byte, 16))
		test.ExpectSuccess(t, curated.Is(err, backend.NotInitialised))
		err = eng.LoadState(make([]byte, 16))
		test.ExpectSuccess(t, curated.Is(err, backend.NotInitialised))

		// quiet no-ops
		eng.Reset()
		eng.PowerOn()
		eng.SetKey(0, 0, true)
	})
}

func TestLoadROM(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		err := eng.LoadROM(nil)
		test.ExpectSuccess(t, curated.Is(err, backend.EmptyInput))
		test.ExpectEquality(t, backend.Status(err), backend.StatusEmptyInput)

		// still uninitialised
		test.ExpectEquality(t, eng.RunCycles(1000), 0)
		px, w, h := eng.Framebuffer()
		test.ExpectEquality(t, len(px), 0)
		test.ExpectEquality(t, w*h, backend.ScreenWidth*backend.ScreenHeight)

		err = eng.LoadROM(make([]byte, 5*1024*1024))
		test.ExpectSuccess(t, curated.Is(err, backend.TooLarge))

		loaded(t, eng, testrom.Spin)
		px, _, _ = eng.Framebuffer()
		test.ExpectEquality(t, len(px), backend.ScreenWidth*backend.ScreenHeight)
		test.ExpectEquality(t, eng.RunCycles(1000), 1000)
	})
}

func TestRunNothing(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		loaded(t, eng, testrom.Display)
		eng.RunCycles(100000)
		eng.SetKey(1, 1, true)

		before := snapshot(t, eng)
		fb := frame(eng)

		test.ExpectEquality(t, eng.RunCycles(0), 0)
		test.ExpectEquality(t, eng.RunCycles(-5), 0)

		test.ExpectEquality(t, cmp.Diff(fb, frame(eng)), "")
		test.ExpectSuccess(t, bytes.Equal(before, snapshot(t, eng)))
	})
}

func TestSaveStateBuffer(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		loaded(t, eng, testrom.Spin)

		size := eng.SaveStateSize()
		test.DemandSuccess(t, size > 0)

		_, err := eng.SaveState(make([]byte, size-1))
		test.ExpectSuccess(t, curated.Is(err, backend.BufferTooSmall))
		test.ExpectEquality(t, backend.Status(err), backend.StatusBufferTooSmall)

		// a larger buffer is fine but only the state size is written
		big := make([]byte, size+100)
		for i := range big {
			big[i] = 0xaa
		}
		n, err := eng.SaveState(big)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, n, size)
		test.ExpectEquality(t, big[size], uint8(0xaa))
	})
}

func TestRoundTrip(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		reg := engines.Default()

		for _, n := range []int{0, 1, 12345, 1000000} {
			loaded(t, eng, testrom.Display)
			eng.RunCycles(n)
			blob := snapshot(t, eng)

			// restore into a fresh engine that has loaded a different ROM
			other, err := reg.Create(eng.Name(), nil)
			test.DemandSuccess(t, err)
			loaded(t, other, testrom.Spin)
			test.DemandSuccess(t, other.LoadState(blob))

			test.ExpectEquality(t, cmp.Diff(frame(eng), frame(other)), "")

			// identical from here on
			for _, m := range []int{1, 500, 80000, 800000} {
				eng.RunCycles(m)
				other.RunCycles(m)
				test.ExpectEquality(t, cmp.Diff(frame(eng), frame(other)), "")
			}
			test.ExpectSuccess(t, bytes.Equal(snapshot(t, eng), snapshot(t, other)))

			other.Destroy()
		}
	})
}

func TestLoadStateFailure(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		loaded(t, eng, testrom.Display)
		eng.RunCycles(50000)

		good := snapshot(t, eng)
		before := snapshot(t, eng)

		short := good[:7]

		version := append([]byte(nil), good...)
		version[0] ^= 0xff

		corrupt := append([]byte(nil), good...)
		corrupt[len(corrupt)/2] ^= 0xff

		truncated := good[:len(good)/2]

		for _, c := range []struct {
			data    []byte
			pattern string
			status  int
		}{
			{data: nil, pattern: backend.DataCorruption, status: backend.StatusDataCorruption},
			{data: short, pattern: backend.DataCorruption, status: backend.StatusDataCorruption},
			{data: version, pattern: backend.VersionMismatch, status: backend.StatusVersionMismatch},
			{data: corrupt, pattern: backend.DataCorruption, status: backend.StatusDataCorruption},
			{data: truncated, pattern: backend.DataCorruption, status: backend.StatusDataCorruption},
		} {
			err := eng.LoadState(c.data)
			test.ExpectSuccess(t, curated.Is(err, c.pattern))
			test.ExpectEquality(t, backend.Status(err), c.status)
			test.ExpectSuccess(t, bytes.Equal(before, snapshot(t, eng)))
		}

		test.ExpectSuccess(t, eng.LoadState(good))
	})
}

func TestSetKeyOutOfRange(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		loaded(t, eng, testrom.Spin)
		before := snapshot(t, eng)

		eng.SetKey(8, 0, true)
		eng.SetKey(0, 8, true)
		eng.SetKey(-1, -1, true)

		test.ExpectSuccess(t, bytes.Equal(before, snapshot(t, eng)))
	})
}

func TestDestroy(t *testing.T) {
	forEachEngine(t, func(t *testing.T, eng backend.Engine, _ *logger.Logger) {
		loaded(t, eng, testrom.Spin)
		eng.Destroy()
		eng.Destroy()

		test.ExpectEquality(t, eng.RunCycles(100), 0)
		test.ExpectEquality(t, eng.SaveStateSize(), 0)

		// can be used again
		loaded(t, eng, testrom.Spin)
		test.ExpectEquality(t, eng.RunCycles(100), 100)
	})
}
