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

package backend

// Dimensions of the framebuffer returned by every engine.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)

// Engine is the contract satisfied by every emulation engine. An engine is
// created uninitialised; LoadROM() initialises it.
//
// Operations on an uninitialised engine are quiet no-ops unless documented
// otherwise. None of the operations are safe to call concurrently.
type Engine interface {
	// Name of the backend that created the engine.
	Name() string

	// LoadROM copies the ROM into flash, detects the device variant and
	// performs a full reset. The ROM slice is not retained. Returns an
	// EmptyInput or TooLarge error.
	LoadROM(rom []byte) error

	// Reset performs a full hardware reset. The ROM is kept.
	Reset()

	// PowerOn presses and releases the ON key, running the engine briefly
	// in between.
	PowerOn()

	// RunCycles executes up to the requested number of CPU cycles. Returns
	// zero if the request is zero or negative, or if the engine is
	// uninitialised. Otherwise returns the requested amount, whether or not
	// the engine stopped early. See StopReporter.
	RunCycles(cycles int) int

	// Framebuffer returns the ARGB8888 pixels of the display, row-major.
	// The slice is owned by the engine and is valid until the next call to
	// RunCycles(), LoadState() or Destroy(). The pixels are nil before the
	// first ROM load but the dimensions are always ScreenWidth and
	// ScreenHeight.
	Framebuffer() (pixels []uint32, width int, height int)

	// SetKey updates the key matrix. Coordinates outside the matrix are
	// ignored.
	SetKey(row int, col int, pressed bool)

	// BacklightLevel returns the backlight brightness. 0 is off.
	BacklightLevel() uint8

	// IsDisplayOn returns true if the display is powered and the backlight
	// is not off.
	IsDisplayOn() bool

	// SaveStateSize returns the exact number of bytes written by
	// SaveState(). Returns zero if the engine is uninitialised.
	SaveStateSize() int

	// SaveState writes the state blob to the buffer and returns the number
	// of bytes written. Returns a NotInitialised or BufferTooSmall error.
	SaveState(out []byte) (int, error)

	// LoadState restores a state blob previously created by SaveState() of
	// an engine from the same backend. The engine is unchanged if an error
	// is returned. Returns NotInitialised, DataCorruption or
	// VersionMismatch errors.
	LoadState(data []byte) error

	// Destroy releases the resources held by the engine. Calling Destroy()
	// more than once is safe. The engine is uninitialised afterwards.
	Destroy()
}

// StopReason describes why the most recent call to RunCycles() returned.
type StopReason int

// List of valid StopReason values.
const (
	StopNone StopReason = iota
	StopBudget
	StopExit
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopBudget:
		return "budget"
	case StopExit:
		return "exit"
	}
	return "unknown"
}

// StopReporter is implemented by engines that can report how the most recent
// call to RunCycles() terminated. RunCycles() returns the requested budget
// in either case so a host that needs to distinguish an early exit must use
// this interface.
type StopReporter interface {
	LastStop() StopReason
}
