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
	"github.com/calcore/calcore/hardware/scheduler"
	"github.com/calcore/calcore/savestate"
)

// TimerOrigin is the base address of the general purpose timer.
const TimerOrigin = 0xf20000

// bit in the control register that starts the timer
const timerEnable = 0x01

// Timer counts down from the reload value at the 32kHz timer clock. Every
// time it reaches zero the expiry count is increased, the timer interrupt
// is raised and the count down starts again.
type Timer struct {
	// number of times the timer has expired. reset by writing to any of the
	// count registers
	Count uint32

	// reload value in ticks of the timer clock
	Reload uint32

	Control uint8

	sched *scheduler.Scheduler
	intc  *Intc
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(sched *scheduler.Scheduler, intc *Intc) *Timer {
	tmr := &Timer{
		sched: sched,
		intc:  intc,
	}
	sched.SetHandler(scheduler.EventTimer, tmr.expire)
	tmr.Reset()
	return tmr
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("count=%d reload=%d control=%02x", tmr.Count, tmr.Reload, tmr.Control)
}

// Reset the timer. The timer is stopped.
func (tmr *Timer) Reset() {
	tmr.Count = 0
	tmr.Reload = 0
	tmr.Control = 0
	tmr.sched.Cancel(scheduler.EventTimer)
}

// Enabled returns true if the timer is running.
func (tmr *Timer) Enabled() bool {
	return tmr.Control&timerEnable == timerEnable
}

// period of the timer in base clock ticks. a reload value of zero is
// treated as one
func (tmr *Timer) period() uint64 {
	return uint64(max(tmr.Reload, 1)) * clocks.TicksPerTimerCycle
}

func (tmr *Timer) expire() {
	tmr.Count++
	tmr.intc.Raise(IntTimer)
	tmr.sched.Repeat(scheduler.EventTimer, tmr.period())
}

// Read implements the memory.Device interface.
func (tmr *Timer) Read(offset uint32) uint8 {
	switch {
	case offset <= 0x03:
		return uint8(tmr.Count >> (offset * 8))
	case offset >= 0x04 && offset <= 0x07:
		return uint8(tmr.Reload >> ((offset - 0x04) * 8))
	case offset == 0x30:
		return tmr.Control
	}
	return 0
}

// Write implements the memory.Device interface. A change to the reload
// value takes effect the next time the timer expires or is started.
func (tmr *Timer) Write(offset uint32, data uint8) {
	switch {
	case offset <= 0x03:
		tmr.Count = 0
	case offset >= 0x04 && offset <= 0x07:
		shift := (offset - 0x04) * 8
		tmr.Reload = (tmr.Reload &^ (0xff << shift)) | uint32(data)<<shift
	case offset == 0x30:
		was := tmr.Enabled()
		tmr.Control = data
		if tmr.Enabled() && !was {
			tmr.sched.Schedule(scheduler.EventTimer, tmr.period())
		} else if !tmr.Enabled() {
			tmr.sched.Cancel(scheduler.EventTimer)
		}
	}
}

// Save the timer state.
func (tmr *Timer) Save(w *savestate.Writer) {
	w.Uint32(tmr.Count)
	w.Uint32(tmr.Reload)
	w.Uint8(tmr.Control)
}

// Load the timer state. The scheduler is loaded separately.
func (tmr *Timer) Load(r *savestate.Reader) {
	tmr.Count = r.Uint32()
	tmr.Reload = r.Uint32()
	tmr.Control = r.Uint8()
}
