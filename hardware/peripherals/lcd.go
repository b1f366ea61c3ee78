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

	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/hardware/memory"
	"github.com/calcore/calcore/hardware/scheduler"
	"github.com/calcore/calcore/savestate"
)

// LCDOrigin is the base address of the LCD controller.
const LCDOrigin = 0xe30000

// Geometry of the display in pixels.
const (
	LCDWidth  = 320
	LCDHeight = 240
)

// Black is the ARGB value of an unlit pixel.
const Black = 0xff000000

// bit in the control register that switches the controller on
const lcdEnable = 0x01

// LCD is the display controller. When enabled it refreshes the display once
// per frame from the video memory pointed to by Upbase.
type LCD struct {
	Upbase  uint32
	Control uint8

	// number of refreshes since reset
	Frames uint64

	sched *scheduler.Scheduler
	intc  *Intc
}

// NewLCD is the preferred method of initialisation for the LCD type.
func NewLCD(sched *scheduler.Scheduler, intc *Intc) *LCD {
	lcd := &LCD{
		sched: sched,
		intc:  intc,
	}
	sched.SetHandler(scheduler.EventLCD, lcd.refresh)
	lcd.Reset()
	return lcd
}

func (lcd *LCD) String() string {
	return fmt.Sprintf("upbase=%06x control=%02x frames=%d", lcd.Upbase, lcd.Control, lcd.Frames)
}

// Reset the LCD controller. The controller is switched off and Upbase
// points to the default video memory.
func (lcd *LCD) Reset() {
	lcd.Upbase = memory.VRAMOrigin
	lcd.Control = 0
	lcd.Frames = 0
	lcd.sched.Cancel(scheduler.EventLCD)
}

// Enabled returns true if the controller is switched on.
func (lcd *LCD) Enabled() bool {
	return lcd.Control&lcdEnable == lcdEnable
}

func frameTicks() uint64 {
	return clocks.CyclesToTicks(clocks.CyclesPerFrame)
}

func (lcd *LCD) refresh() {
	lcd.Frames++
	lcd.intc.Raise(IntLCD)
	lcd.sched.Repeat(scheduler.EventLCD, frameTicks())
}

// Read implements the memory.Device interface.
func (lcd *LCD) Read(offset uint32) uint8 {
	switch offset {
	case 0x10, 0x11, 0x12:
		return uint8(lcd.Upbase >> ((offset - 0x10) * 8))
	case 0x18:
		return lcd.Control
	}
	return 0
}

// Write implements the memory.Device interface.
func (lcd *LCD) Write(offset uint32, data uint8) {
	switch offset {
	case 0x10, 0x11, 0x12:
		shift := (offset - 0x10) * 8
		lcd.Upbase = (lcd.Upbase &^ (0xff << shift)) | uint32(data)<<shift
	case 0x18:
		was := lcd.Enabled()
		lcd.Control = data
		if lcd.Enabled() && !was {
			lcd.sched.Schedule(scheduler.EventLCD, frameTicks())
		} else if !lcd.Enabled() {
			lcd.sched.Cancel(scheduler.EventLCD)
		}
	}
}

// Render the display into the framebuffer, which must have room for
// LCDWidth * LCDHeight pixels. Video memory is RGB565 little-endian. The
// display is black if the controller is off. Pixels that would be read from
// outside RAM are black.
func (lcd *LCD) Render(mem *memory.Memory, fb []uint32) {
	n := min(len(fb), LCDWidth*LCDHeight)

	if !lcd.Enabled() {
		for i := range n {
			fb[i] = Black
		}
		return
	}

	vram := mem.VRAM(lcd.Upbase)
	for i := range n {
		if i*2+1 >= len(vram) {
			fb[i] = Black
			continue
		}
		fb[i] = RGB565(uint16(vram[i*2]) | uint16(vram[i*2+1])<<8)
	}
}

// RGB565 converts a 16bit pixel to ARGB8888. The low bits of each 8bit
// channel are filled from the high bits so that full intensity is 0xff.
func RGB565(p uint16) uint32 {
	r := uint32(p>>11) & 0x1f
	g := uint32(p>>5) & 0x3f
	b := uint32(p) & 0x1f

	r = r<<3 | r>>2
	g = g<<2 | g>>4
	b = b<<3 | b>>2

	return Black | r<<16 | g<<8 | b
}

// Save the LCD state.
func (lcd *LCD) Save(w *savestate.Writer) {
	w.Uint32(lcd.Upbase)
	w.Uint8(lcd.Control)
	w.Uint64(lcd.Frames)
}

// Load the LCD state. The scheduler is loaded separately.
func (lcd *LCD) Load(r *savestate.Reader) {
	lcd.Upbase = r.Uint32()
	lcd.Control = r.Uint8()
	lcd.Frames = r.Uint64()
	r.Check(lcd.Upbase <= memory.AddressMask, "lcd upbase out of range")
}
