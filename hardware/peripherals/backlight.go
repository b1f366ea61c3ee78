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

package peripherals

import "github.com/calcore/calcore/savestate"

// BacklightOrigin is the base address of the backlight controller.
const BacklightOrigin = 0xf60000

// BacklightFull is the brightness after reset.
const BacklightFull = 0xff

// Backlight controls the brightness of the display. A brightness of zero
// switches the display off.
type Backlight struct {
	Brightness uint8
}

// NewBacklight is the preferred method of initialisation for the Backlight
// type.
func NewBacklight() *Backlight {
	return &Backlight{Brightness: BacklightFull}
}

// Reset the backlight to full brightness.
func (bl *Backlight) Reset() {
	bl.Brightness = BacklightFull
}

// Read implements the memory.Device interface.
func (bl *Backlight) Read(offset uint32) uint8 {
	if offset == 0x24 {
		return bl.Brightness
	}
	return 0
}

// Write implements the memory.Device interface.
func (bl *Backlight) Write(offset uint32, data uint8) {
	if offset == 0x24 {
		bl.Brightness = data
	}
}

// Save the backlight state.
func (bl *Backlight) Save(w *savestate.Writer) {
	w.Uint8(bl.Brightness)
}

// Load the backlight state.
func (bl *Backlight) Load(r *savestate.Reader) {
	bl.Brightness = r.Uint8()
}
