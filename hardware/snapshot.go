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

package hardware

import (
	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/hardware/device"
	"github.com/calcore/calcore/savestate"
)

// Save the state of every component of the Calc.
func (calc *Calc) Save(w *savestate.Writer) {
	w.Uint8(uint8(calc.Variant))
	calc.CPU.Save(w)
	calc.Mem.Save(w)
	calc.Intc.Save(w)
	calc.LCD.Save(w)
	calc.Timer.Save(w)
	calc.Keypad.Save(w)
	calc.Backlight.Save(w)
	calc.Control.Save(w)
	calc.Sched.Save(w)
	w.Uint8(uint8(calc.LastStop))
}

// Load the state of every component of the Calc. The Calc should be newly
// created because an error part way through will leave it in an
// inconsistent state. Errors are reported through the Reader.
func (calc *Calc) Load(r *savestate.Reader) {
	v := device.Variant(r.Uint8())
	r.Check(v.Valid(), "unknown device variant")

	calc.CPU.Load(r)
	calc.Mem.Load(r)
	calc.Intc.Load(r)
	calc.LCD.Load(r)
	calc.Timer.Load(r)
	calc.Keypad.Load(r)
	calc.Backlight.Load(r)
	calc.Control.Load(r)
	calc.Sched.Load(r)

	stop := backend.StopReason(r.Uint8())
	r.Check(stop >= backend.StopNone && stop <= backend.StopExit, "unknown stop reason")

	if r.Err() != nil {
		return
	}

	calc.setVariant(v)
	calc.Detection = device.Result{Variant: v}
	calc.LastStop = stop
}
