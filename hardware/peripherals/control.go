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

import (
	"fmt"

	"github.com/calcore/calcore/hardware/cpu"
	"github.com/calcore/calcore/savestate"
)

// ControlOrigin is the base address of the control registers in the MMIO
// area. The same registers are also found at port zero of the I/O space.
const ControlOrigin = 0xe00000

// ControlSize is the number of addresses occupied by the control registers.
const ControlSize = 0x100

// Bits in the power register.
const (
	PowerReset = 0x01
	PowerDown  = 0x02
)

// Control is the block of system control registers. Writes to the power
// register are turned into signals for the run loop.
type Control struct {
	// identifies the device variant to the program
	Variant uint8

	// the CPU speed setting. stored but has no effect
	Speed uint8

	cpu *cpu.CPU
}

// NewControl is the preferred method of initialisation for the Control type.
func NewControl(mc *cpu.CPU) *Control {
	return &Control{cpu: mc}
}

func (ctl *Control) String() string {
	return fmt.Sprintf("variant=%d speed=%d", ctl.Variant, ctl.Speed)
}

// Reset the control registers. The variant is a property of the device and
// is not changed.
func (ctl *Control) Reset() {
	ctl.Speed = 0
}

// Read implements the memory.Device interface.
func (ctl *Control) Read(offset uint32) uint8 {
	switch offset {
	case 0x02:
		return ctl.Variant
	case 0x03:
		return ctl.Speed
	}
	return 0
}

// Write implements the memory.Device interface.
func (ctl *Control) Write(offset uint32, data uint8) {
	switch offset {
	case 0x00:
		if data&PowerReset == PowerReset {
			ctl.cpu.Signal(cpu.SignalReset)
		}
		if data&PowerDown == PowerDown {
			ctl.cpu.Signal(cpu.SignalExit)
		}
	case 0x03:
		ctl.Speed = data
	}
}

// Save the control registers.
func (ctl *Control) Save(w *savestate.Writer) {
	w.Uint8(ctl.Variant)
	w.Uint8(ctl.Speed)
}

// Load the control registers.
func (ctl *Control) Load(r *savestate.Reader) {
	ctl.Variant = r.Uint8()
	ctl.Speed = r.Uint8()
}
