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

package backend_test

import (
	"errors"
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/test"
)

// nullEngine satisfies the Engine interface and does nothing
type nullEngine struct {
	name string
	sink logger.Sink
}

func (e *nullEngine) Name() string           { return e.name }
func (e *nullEngine) LoadROM(_ []byte) error { return nil }
func (e *nullEngine) Reset()                 {}
func (e *nullEngine) PowerOn()               {}
func (e *nullEngine) RunCycles(_ int) int    { return 0 }
func (e *nullEngine) Framebuffer() ([]uint32, int, int) {
	return nil, backend.ScreenWidth, backend.ScreenHeight
}
func (e *nullEngine) SetKey(_ int, _ int, _ bool)     {}
func (e *nullEngine) BacklightLevel() uint8           { return 0 }
func (e *nullEngine) IsDisplayOn() bool               { return false }
func (e *nullEngine) SaveStateSize() int              { return 0 }
func (e *nullEngine) SaveState(_ []byte) (int, error) { return 0, nil }
func (e *nullEngine) LoadState(_ []byte) error        { return nil }
func (e *nullEngine) Destroy()                        {}

func nullFactory(name string) backend.Factory {
	return func(sink logger.Sink) (backend.Engine, error) {
		return &nullEngine{name: name, sink: sink}, nil
	}
}

func TestRegistry(t *testing.T) {
	reg := backend.NewRegistry()
	test.ExpectEquality(t, reg.Count(), 0)
	test.ExpectEquality(t, reg.Default(), "")

	test.DemandSuccess(t, reg.Register("zeta", nullFactory("zeta")))
	test.DemandSuccess(t, reg.Register("alpha", nullFactory("alpha")))

	// duplicates, nil factories and empty names are all rejected
	test.ExpectFailure(t, reg.Register("zeta", nullFactory("zeta")))
	test.ExpectFailure(t, reg.Register("nil", nil))
	test.ExpectFailure(t, reg.Register("", nullFactory("")))

	test.ExpectEquality(t, reg.Count(), 2)
	test.ExpectEquality(t, reg.Default(), "zeta")
	test.ExpectSuccess(t, reg.Has("alpha"))
	test.ExpectFailure(t, reg.Has("beta"))

	names := reg.Names()
	test.DemandEquality(t, len(names), 2)
	test.ExpectEquality(t, names[0], "alpha")
	test.ExpectEquality(t, names[1], "zeta")

	eng, err := reg.Create("alpha", nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, eng.Name(), "alpha")

	// a nil sink is replaced with the discard sink
	test.ExpectEquality(t, eng.(*nullEngine).sink, logger.Discard)

	_, err = reg.Create("beta", nil)
	test.ExpectSuccess(t, curated.Is(err, backend.UnknownBackend))
}

func TestStatus(t *testing.T) {
	test.ExpectEquality(t, backend.Status(nil), backend.StatusOK)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.EmptyInput)), backend.StatusEmptyInput)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.TooLarge, 10, 5)), backend.StatusTooLarge)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.BufferTooSmall, 1, 2)), backend.StatusBufferTooSmall)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.VersionMismatch, 1, 2)), backend.StatusVersionMismatch)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.DataCorruption, "short")), backend.StatusDataCorruption)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.AlreadyLive)), backend.StatusAlreadyLive)
	test.ExpectEquality(t, backend.Status(curated.Errorf(backend.NotInitialised)), backend.StatusNotInitialised)

	// wrapped patterns are found
	wrapped := curated.Errorf("slots: %v", curated.Errorf(backend.VersionMismatch, 1, 2))
	test.ExpectEquality(t, backend.Status(wrapped), backend.StatusVersionMismatch)

	// anything else is the catch-all code
	test.ExpectEquality(t, backend.Status(errors.New("unknown")), backend.StatusInvalidHandle)
}

func TestStopReason(t *testing.T) {
	test.ExpectEquality(t, backend.StopNone.String(), "none")
	test.ExpectEquality(t, backend.StopBudget.String(), "budget")
	test.ExpectEquality(t, backend.StopExit.String(), "exit")
}
