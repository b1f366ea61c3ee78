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

package bridge

import (
	"slices"
	"sync"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/engines"
	"github.com/calcore/calcore/logger"
)

// Handle refers to the live engine of a Bridge. The zero value is never a
// valid handle.
type Handle int64

// Bridge is the primitive operation surface.
type Bridge struct {
	crit sync.Mutex

	registry *backend.Registry
	backend  string
	log      *logger.Logger

	live   backend.Engine
	handle Handle
	serial Handle
}

// NewBridge is the preferred method of initialisation for the Bridge type. If
// the registry is nil the built-in engines are used. If the log is nil a log
// of the default capacity is created.
func NewBridge(registry *backend.Registry, log *logger.Logger) *Bridge {
	if registry == nil {
		registry = engines.Default()
	}
	if log == nil {
		log = logger.NewLogger(logger.DefaultCapacity)
	}
	return &Bridge{
		registry: registry,
		backend:  registry.Default(),
		log:      log,
	}
}

// returns the live engine if the handle refers to it. the lock must be held
func (br *Bridge) engine(h Handle) (backend.Engine, error) {
	if h == 0 || br.live == nil || h != br.handle {
		return nil, curated.Errorf(backend.InvalidHandle)
	}
	return br.live, nil
}

// Create a new engine using the current backend. Returns zero if an engine
// is already live or if the engine cannot be created. The reason is logged.
func (br *Bridge) Create() Handle {
	br.crit.Lock()
	defer br.crit.Unlock()

	if br.live != nil {
		br.log.Log(logger.Allow, "bridge", curated.Errorf(backend.AlreadyLive))
		return 0
	}

	eng, err := br.registry.Create(br.backend, br.log)
	if err != nil {
		br.log.Log(logger.Allow, "bridge", err)
		return 0
	}

	br.serial++
	br.live = eng
	br.handle = br.serial

	return br.handle
}

// Destroy the live engine. Another engine can be created afterwards.
func (br *Bridge) Destroy(h Handle) {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return
	}

	eng.Destroy()
	br.live = nil
	br.handle = 0
}

// LoadROM loads a ROM into the engine. Returns a status code.
func (br *Bridge) LoadROM(h Handle, rom []byte) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return backend.Status(err)
	}
	return backend.Status(eng.LoadROM(rom))
}

// Reset the engine.
func (br *Bridge) Reset(h Handle) {
	br.crit.Lock()
	defer br.crit.Unlock()

	if eng, err := br.engine(h); err == nil {
		eng.Reset()
	}
}

// PowerOn presses and releases the ON key.
func (br *Bridge) PowerOn(h Handle) {
	br.crit.Lock()
	defer br.crit.Unlock()

	if eng, err := br.engine(h); err == nil {
		eng.PowerOn()
	}
}

// RunCycles runs the engine for the number of cycles. Returns zero if the
// handle is invalid.
func (br *Bridge) RunCycles(h Handle, cycles int) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return 0
	}
	return eng.RunCycles(cycles)
}

// Framebuffer returns a copy of the pixels of the display. The copy is owned
// by the caller and is not changed by later calls to RunCycles(). The pixels
// are nil if the handle is invalid but the dimensions are always those of the
// display.
//
// CopyFramebuffer() avoids the allocation when the caller has a buffer.
func (br *Bridge) Framebuffer(h Handle) ([]uint32, int, int) {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return nil, backend.ScreenWidth, backend.ScreenHeight
	}
	px, w, ht := eng.Framebuffer()
	return slices.Clone(px), w, ht
}

// CopyFramebuffer copies the pixels of the display into the slice. Returns
// the number of pixels copied or a negative status code.
func (br *Bridge) CopyFramebuffer(h Handle, out []uint32) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return backend.Status(err)
	}

	px, w, ht := eng.Framebuffer()
	if px == nil {
		return backend.StatusNotInitialised
	}
	if len(out) < w*ht {
		return backend.StatusBufferTooSmall
	}
	return copy(out, px)
}

// SetKey presses or releases a key.
func (br *Bridge) SetKey(h Handle, row int, col int, down bool) {
	br.crit.Lock()
	defer br.crit.Unlock()

	if eng, err := br.engine(h); err == nil {
		eng.SetKey(row, col, down)
	}
}

// BacklightLevel returns the brightness of the backlight. Zero if the
// handle is invalid.
func (br *Bridge) BacklightLevel(h Handle) uint8 {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return 0
	}
	return eng.BacklightLevel()
}

// IsDisplayOn returns true if the display is on. False if the handle is
// invalid.
func (br *Bridge) IsDisplayOn(h Handle) bool {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return false
	}
	return eng.IsDisplayOn()
}

// SaveStateSize returns the size of a state blob. Zero if the handle is
// invalid.
func (br *Bridge) SaveStateSize(h Handle) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return 0
	}
	return eng.SaveStateSize()
}

// SaveState writes a state blob into the slice. Returns the number of bytes
// written or a negative status code.
func (br *Bridge) SaveState(h Handle, out []byte) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return backend.Status(err)
	}

	n, err := eng.SaveState(out)
	if err != nil {
		return backend.Status(err)
	}
	return n
}

// LoadState restores a state blob. Returns a status code.
func (br *Bridge) LoadState(h Handle, data []byte) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return backend.Status(err)
	}
	return backend.Status(eng.LoadState(data))
}

// LastStop returns the reason the most recent RunCycles() returned, as the
// integer value of backend.StopReason. Engines that don't report stop
// reasons always return backend.StopNone.
func (br *Bridge) LastStop(h Handle) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	eng, err := br.engine(h)
	if err != nil {
		return int(backend.StopNone)
	}
	if r, ok := eng.(backend.StopReporter); ok {
		return int(r.LastStop())
	}
	return int(backend.StopNone)
}

// DrainLogs returns and clears every log entry.
func (br *Bridge) DrainLogs() []string {
	return br.log.Drain()
}

// Available returns the names of the backends that can be selected with
// SetBackend().
func (br *Bridge) Available() []string {
	return br.registry.Names()
}

// Current returns the name of the backend used by Create().
func (br *Bridge) Current() string {
	br.crit.Lock()
	defer br.crit.Unlock()
	return br.backend
}

// SetBackend selects the backend used by Create(). The backend cannot be
// changed while an engine is live. Returns a status code.
func (br *Bridge) SetBackend(name string) int {
	br.crit.Lock()
	defer br.crit.Unlock()

	if !br.registry.Has(name) {
		err := curated.Errorf(backend.UnknownBackend, name)
		br.log.Log(logger.Allow, "bridge", err)
		return backend.Status(err)
	}
	if br.live != nil {
		return backend.StatusAlreadyLive
	}

	br.backend = name
	return backend.StatusOK
}

// Count returns the number of available backends.
func (br *Bridge) Count() int {
	return br.registry.Count()
}
