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
	"fmt"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/hardware/cpu"
	"github.com/calcore/calcore/hardware/device"
	"github.com/calcore/calcore/hardware/memory"
	"github.com/calcore/calcore/hardware/peripherals"
	"github.com/calcore/calcore/hardware/scheduler"
	"github.com/calcore/calcore/logger"
)

// sizes of the peripheral register blocks in the MMIO area
const (
	blockSize = 0x100
	portsSize = peripherals.ControlSize
)

// Calc is the main container for the emulated components of the calculator.
type Calc struct {
	Mem   *memory.Memory
	CPU   *cpu.CPU
	Sched *scheduler.Scheduler

	Intc      *peripherals.Intc
	LCD       *peripherals.LCD
	Timer     *peripherals.Timer
	Keypad    *peripherals.Keypad
	Backlight *peripherals.Backlight
	Control   *peripherals.Control

	// the device variant of the loaded ROM
	Variant device.Variant

	// the result of device detection. not part of the saved state
	Detection device.Result

	// why the most recent call to Run() returned
	LastStop backend.StopReason

	// set by the run event handler
	budgetExpired bool

	sink logger.Sink
}

// NewCalc creates a new Calc and everything associated with the hardware.
// Flash is erased and no ROM is loaded.
func NewCalc(sink logger.Sink) *Calc {
	if sink == nil {
		sink = logger.Discard
	}

	calc := &Calc{
		Mem:   memory.NewMemory(),
		Sched: scheduler.NewScheduler(),
		Intc:  peripherals.NewIntc(),
		sink:  sink,
	}

	calc.CPU = cpu.NewCPU(calc.Mem, calc.Intc, sink)
	calc.LCD = peripherals.NewLCD(calc.Sched, calc.Intc)
	calc.Timer = peripherals.NewTimer(calc.Sched, calc.Intc)
	calc.Keypad = peripherals.NewKeypad(calc.CPU, calc.Intc)
	calc.Backlight = peripherals.NewBacklight()
	calc.Control = peripherals.NewControl(calc.CPU)

	calc.Mem.Map(peripherals.ControlOrigin, portsSize, calc.Control)
	calc.Mem.Map(peripherals.LCDOrigin, blockSize, calc.LCD)
	calc.Mem.Map(peripherals.IntcOrigin, blockSize, calc.Intc)
	calc.Mem.Map(peripherals.TimerOrigin, blockSize, calc.Timer)
	calc.Mem.Map(peripherals.KeypadOrigin, blockSize, calc.Keypad)
	calc.Mem.Map(peripherals.BacklightOrigin, blockSize, calc.Backlight)
	calc.Mem.MapPort(0x0000, portsSize, calc.Control)

	calc.Sched.SetHandler(scheduler.EventRun, func() {
		calc.budgetExpired = true
	})

	calc.setVariant(device.Default)

	return calc
}

func (calc *Calc) String() string {
	return fmt.Sprintf("%s: %s", calc.Variant, calc.CPU)
}

func (calc *Calc) setVariant(v device.Variant) {
	calc.Variant = v
	calc.Control.Variant = uint8(v)
}

// LoadROM copies the ROM image into flash, detects the device variant from
// the certificate and resets the hardware. The Calc is unchanged if an
// error is returned.
func (calc *Calc) LoadROM(rom []uint8) error {
	if err := calc.Mem.LoadFlash(rom); err != nil {
		return err
	}

	calc.Detection = device.Detect(calc.Mem.Flash, calc.sink)
	calc.setVariant(calc.Detection.Variant)
	calc.Reset()

	calc.sink.Logf(logger.Allow, "ce", "loaded %d byte rom for %s", len(rom), calc.Variant)

	return nil
}

// Reset the hardware. Flash is preserved. A run that is in progress keeps
// its budget.
func (calc *Calc) Reset() {
	calc.Sched.Reset()
	calc.Mem.Reset()
	calc.CPU.Reset()
	calc.Intc.Reset()
	calc.LCD.Reset()
	calc.Timer.Reset()
	calc.Keypad.Reset()
	calc.Backlight.Reset()
	calc.Control.Reset()
}

// SetKey presses or releases a key. Returns false if the key is outside the
// key matrix.
func (calc *Calc) SetKey(row, col int, pressed bool) bool {
	return calc.Keypad.SetKey(row, col, pressed)
}

// Render the display into the framebuffer.
func (calc *Calc) Render(fb []uint32) {
	calc.LCD.Render(calc.Mem, fb)
}

// BacklightLevel returns the brightness of the display.
func (calc *Calc) BacklightLevel() uint8 {
	return calc.Backlight.Brightness
}

// IsDisplayOn returns true if the LCD controller is on and the backlight is
// not fully dimmed.
func (calc *Calc) IsDisplayOn() bool {
	return calc.LCD.Enabled() && calc.Backlight.Brightness > 0
}
