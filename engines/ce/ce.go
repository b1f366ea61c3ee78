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

package ce

import (
	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/hardware"
	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/hardware/peripherals"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/savestate"
)

// Name of the backend.
const Name = "ce"

// StateSize is the size of every state blob.
const StateSize = 5 * 1024 * 1024

// PowerOnCycles is how long the ON key is held by PowerOn().
const PowerOnCycles = clocks.CPU / 100

// Engine is the reference implementation of backend.Engine.
type Engine struct {
	// nil until a ROM has been loaded
	calc *hardware.Calc

	fb   []uint32
	sink logger.Sink
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The engine is uninitialised until a ROM is loaded.
func NewEngine(sink logger.Sink) *Engine {
	if sink == nil {
		sink = logger.Discard
	}
	return &Engine{sink: sink}
}

// Factory satisfies the backend.Factory type.
func Factory(sink logger.Sink) (backend.Engine, error) {
	return NewEngine(sink), nil
}

// Name implements the backend.Engine interface.
func (eng *Engine) Name() string {
	return Name
}

// Initialised returns true if a ROM has been loaded.
func (eng *Engine) Initialised() bool {
	return eng.calc != nil
}

// Calc returns the emulated hardware. Returns nil if the engine is
// uninitialised.
func (eng *Engine) Calc() *hardware.Calc {
	return eng.calc
}

// LoadROM implements the backend.Engine interface. The ROM is loaded into
// new hardware which replaces the current hardware only if the load
// succeeds.
func (eng *Engine) LoadROM(rom []byte) error {
	calc := hardware.NewCalc(eng.sink)
	if err := calc.LoadROM(rom); err != nil {
		eng.sink.Log(logger.Allow, Name, err)
		return err
	}

	eng.calc = calc
	if eng.fb == nil {
		eng.fb = make([]uint32, backend.ScreenWidth*backend.ScreenHeight)
	}

	return nil
}

// Reset implements the backend.Engine interface.
func (eng *Engine) Reset() {
	if eng.calc == nil {
		return
	}
	eng.calc.Reset()
}

// PowerOn implements the backend.Engine interface.
func (eng *Engine) PowerOn() {
	if eng.calc == nil {
		return
	}
	eng.calc.SetKey(peripherals.OnKeyRow, peripherals.OnKeyColumn, true)
	eng.calc.Run(PowerOnCycles)
	eng.calc.SetKey(peripherals.OnKeyRow, peripherals.OnKeyColumn, false)
}

// RunCycles implements the backend.Engine interface.
func (eng *Engine) RunCycles(cycles int) int {
	if eng.calc == nil || cycles <= 0 {
		return 0
	}
	eng.calc.Run(cycles)
	return cycles
}

// LastStop implements the backend.StopReporter interface.
func (eng *Engine) LastStop() backend.StopReason {
	if eng.calc == nil {
		return backend.StopNone
	}
	return eng.calc.LastStop
}

// Framebuffer implements the backend.Engine interface. The display is
// rendered on every call.
func (eng *Engine) Framebuffer() ([]uint32, int, int) {
	if eng.calc != nil {
		eng.calc.Render(eng.fb)
	}
	return eng.fb, backend.ScreenWidth, backend.ScreenHeight
}

// SetKey implements the backend.Engine interface.
func (eng *Engine) SetKey(row int, col int, pressed bool) {
	if eng.calc == nil {
		return
	}
	if !eng.calc.SetKey(row, col, pressed) {
		eng.sink.Logf(logger.Allow, Name, "key (%d, %d) is outside the key matrix", row, col)
	}
}

// BacklightLevel implements the backend.Engine interface.
func (eng *Engine) BacklightLevel() uint8 {
	if eng.calc == nil {
		return 0
	}
	return eng.calc.BacklightLevel()
}

// IsDisplayOn implements the backend.Engine interface.
func (eng *Engine) IsDisplayOn() bool {
	if eng.calc == nil {
		return false
	}
	return eng.calc.IsDisplayOn()
}

// SaveStateSize implements the backend.Engine interface.
func (eng *Engine) SaveStateSize() int {
	if eng.calc == nil {
		return 0
	}
	return StateSize
}

// SaveState implements the backend.Engine interface.
func (eng *Engine) SaveState(out []byte) (int, error) {
	if eng.calc == nil {
		return 0, curated.Errorf(backend.NotInitialised)
	}
	if len(out) < StateSize {
		return 0, curated.Errorf(backend.BufferTooSmall, len(out), StateSize)
	}
	return savestate.Encode(out[:StateSize], eng.calc.Save)
}

// LoadState implements the backend.Engine interface. The state is decoded
// into new hardware which replaces the current hardware only if decoding
// succeeds.
func (eng *Engine) LoadState(data []byte) error {
	if eng.calc == nil {
		return curated.Errorf(backend.NotInitialised)
	}

	calc := hardware.NewCalc(eng.sink)
	err := savestate.Decode(data, func(r *savestate.Reader) error {
		calc.Load(r)
		return nil
	})
	if err != nil {
		eng.sink.Log(logger.Allow, "savestate", err)
		return err
	}

	eng.calc = calc
	return nil
}

// Destroy implements the backend.Engine interface.
func (eng *Engine) Destroy() {
	eng.calc = nil
	eng.fb = nil
}
