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
	"strings"

	"github.com/calcore/calcore/hardware/cpu"
	"github.com/calcore/calcore/savestate"
)

// KeypadOrigin is the base address of the keypad controller.
const KeypadOrigin = 0xf50000

// Dimensions of the key matrix.
const (
	KeyRows    = 8
	KeyColumns = 8
)

// Position of the ON key in the key matrix. The ON key is wired to its own
// interrupt and is not seen by the keypad interrupt.
const (
	OnKeyRow    = 2
	OnKeyColumn = 0
)

// Keypad is the 8x8 key matrix. Each row is a bitmask with bit n set when
// the key in column n is held.
type Keypad struct {
	Mode uint8
	Rows [KeyRows]uint8

	cpu  *cpu.CPU
	intc *Intc
}

// NewKeypad is the preferred method of initialisation for the Keypad type.
// The CPU is signalled when keys are pressed and woken by the ON key.
func NewKeypad(mc *cpu.CPU, intc *Intc) *Keypad {
	return &Keypad{
		cpu:  mc,
		intc: intc,
	}
}

func (kp *Keypad) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("mode=%02x", kp.Mode))
	for _, r := range kp.Rows {
		s.WriteString(fmt.Sprintf(" %08b", r))
	}
	return s.String()
}

// Reset releases every key.
func (kp *Keypad) Reset() {
	kp.Mode = 0
	clear(kp.Rows[:])
}

// SetKey presses or releases the key at the row and column. Keys outside
// the matrix are ignored and false is returned.
func (kp *Keypad) SetKey(row, col int, pressed bool) bool {
	if row < 0 || row >= KeyRows || col < 0 || col >= KeyColumns {
		return false
	}

	bit := uint8(1) << col
	if pressed {
		kp.Rows[row] |= bit
	} else {
		kp.Rows[row] &^= bit
	}

	if !pressed {
		return true
	}

	if row == OnKeyRow && col == OnKeyColumn {
		kp.cpu.Signal(cpu.SignalOnKey)
	} else {
		kp.cpu.Signal(cpu.SignalAnyKey)
	}

	return true
}

// Held returns true if the key at the row and column is held. Keys outside
// the matrix are never held.
func (kp *Keypad) Held(row, col int) bool {
	if row < 0 || row >= KeyRows || col < 0 || col >= KeyColumns {
		return false
	}
	return kp.Rows[row]&(uint8(1)<<col) != 0
}

// OnCheck raises the ON interrupt and wakes the CPU if the ON key is held.
func (kp *Keypad) OnCheck() {
	if kp.Held(OnKeyRow, OnKeyColumn) {
		kp.intc.Raise(IntOn)
		kp.cpu.Wake()
	}
}

// AnyCheck raises the keypad interrupt if any key other than ON is held.
func (kp *Keypad) AnyCheck() {
	for r, v := range kp.Rows {
		if r == OnKeyRow {
			v &^= uint8(1) << OnKeyColumn
		}
		if v != 0 {
			kp.intc.Raise(IntKeypad)
			return
		}
	}
}

// Read implements the memory.Device interface.
func (kp *Keypad) Read(offset uint32) uint8 {
	switch {
	case offset == 0x00:
		return kp.Mode
	case offset >= 0x10 && offset < 0x10+KeyRows*2 && offset&0x01 == 0:
		return kp.Rows[(offset-0x10)/2]
	}
	return 0
}

// Write implements the memory.Device interface. The row data registers are
// read-only.
func (kp *Keypad) Write(offset uint32, data uint8) {
	if offset == 0x00 {
		kp.Mode = data
	}
}

// Save the keypad state.
func (kp *Keypad) Save(w *savestate.Writer) {
	w.Uint8(kp.Mode)
	w.Bytes(kp.Rows[:])
}

// Load the keypad state.
func (kp *Keypad) Load(r *savestate.Reader) {
	kp.Mode = r.Uint8()
	r.Bytes(kp.Rows[:])
}
