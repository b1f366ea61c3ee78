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

	"github.com/calcore/calcore/savestate"
)

// IntcOrigin is the base address of the interrupt controller.
const IntcOrigin = 0xf00000

// Interrupt is a bit in the interrupt controller's status and enable
// registers.
type Interrupt uint8

// List of valid Interrupt values.
const (
	IntOn     Interrupt = 0x01
	IntTimer  Interrupt = 0x02
	IntKeypad Interrupt = 0x04
	IntLCD    Interrupt = 0x08
)

// Intc is the interrupt controller. An interrupt is requested of the CPU
// when a raised interrupt is also enabled.
type Intc struct {
	Status  uint8
	Enabled uint8
}

// NewIntc is the preferred method of initialisation for the Intc type.
func NewIntc() *Intc {
	return &Intc{}
}

func (ic *Intc) String() string {
	return fmt.Sprintf("status=%02x enabled=%02x", ic.Status, ic.Enabled)
}

// Reset the interrupt controller.
func (ic *Intc) Reset() {
	ic.Status = 0
	ic.Enabled = 0
}

// Raise an interrupt. The status bit is set even if the interrupt is not
// enabled.
func (ic *Intc) Raise(i Interrupt) {
	ic.Status |= uint8(i)
}

// Pending implements the cpu.Interrupter interface.
func (ic *Intc) Pending() bool {
	return ic.Status&ic.Enabled != 0
}

// Read implements the memory.Device interface.
func (ic *Intc) Read(offset uint32) uint8 {
	switch offset {
	case 0x00:
		return ic.Status
	case 0x04:
		return ic.Enabled
	}
	return 0
}

// Write implements the memory.Device interface. Writing to the acknowledge
// register clears the status bits that are set in the data.
func (ic *Intc) Write(offset uint32, data uint8) {
	switch offset {
	case 0x04:
		ic.Enabled = data
	case 0x08:
		ic.Status &^= data
	}
}

// Save the interrupt controller state.
func (ic *Intc) Save(w *savestate.Writer) {
	w.Uint8(ic.Status)
	w.Uint8(ic.Enabled)
}

// Load the interrupt controller state.
func (ic *Intc) Load(r *savestate.Reader) {
	ic.Status = r.Uint8()
	ic.Enabled = r.Uint8()
}
