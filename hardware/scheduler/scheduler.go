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

package scheduler

import (
	"fmt"

	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/savestate"
)

// Event identifies a scheduled event. There is only ever one instance of
// each event pending.
type Event int

// List of valid Event values. The order is used to break ties between events
// with the same deadline.
const (
	EventRun Event = iota
	EventLCD
	EventTimer
	NumEvents
)

func (e Event) String() string {
	switch e {
	case EventRun:
		return "run"
	case EventLCD:
		return "lcd"
	case EventTimer:
		return "timer"
	}
	return fmt.Sprintf("event %d", int(e))
}

type item struct {
	active   bool
	deadline uint64
}

// Scheduler keeps the time of the emulation and the list of pending events.
// Time is measured in ticks of the base clock.
type Scheduler struct {
	now      uint64
	items    [NumEvents]item
	handlers [NumEvents]func()
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("now=%d run=%v lcd=%v timer=%v", s.now,
		s.items[EventRun].active, s.items[EventLCD].active, s.items[EventTimer].active)
}

// SetHandler sets the function to be called when the event fires. Handlers
// are not part of the saved state and must be set again after Load().
func (s *Scheduler) SetHandler(e Event, f func()) {
	s.handlers[e] = f
}

// Now returns the current time.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Advance time by the number of ticks.
func (s *Scheduler) Advance(ticks uint64) {
	s.now += ticks
}

// AdvanceCycles advances time by the number of CPU cycles.
func (s *Scheduler) AdvanceCycles(cycles int) {
	s.now += clocks.CyclesToTicks(cycles)
}

// Schedule the event to fire the number of ticks after the current time.
func (s *Scheduler) Schedule(e Event, ticks uint64) {
	s.items[e] = item{active: true, deadline: s.now + ticks}
}

// Repeat the event the number of ticks after its previous deadline. Any
// lateness in processing the previous deadline is absorbed by the new one.
func (s *Scheduler) Repeat(e Event, ticks uint64) {
	s.items[e] = item{active: true, deadline: s.items[e].deadline + ticks}
}

// Cancel the event.
func (s *Scheduler) Cancel(e Event) {
	s.items[e].active = false
}

// Active returns true if the event is pending.
func (s *Scheduler) Active(e Event) bool {
	return s.items[e].active
}

// Deadline returns the time at which the event fires or last fired.
func (s *Scheduler) Deadline(e Event) uint64 {
	return s.items[e].deadline
}

// Next returns the deadline of the earliest pending event. The boolean is
// false if there are no pending events.
func (s *Scheduler) Next() (uint64, bool) {
	var next uint64
	found := false
	for _, it := range s.items {
		if it.active && (!found || it.deadline < next) {
			next = it.deadline
			found = true
		}
	}
	return next, found
}

// Process fires every pending event whose deadline has been reached, earliest
// first. A handler may schedule further events, including the one being
// handled; those are also fired if already due.
func (s *Scheduler) Process() {
	for {
		due := NumEvents
		for e := range NumEvents {
			it := s.items[e]
			if !it.active || it.deadline > s.now {
				continue
			}
			if due == NumEvents || it.deadline < s.items[due].deadline {
				due = e
			}
		}

		if due == NumEvents {
			return
		}

		s.items[due].active = false
		if s.handlers[due] != nil {
			s.handlers[due]()
		}
	}
}

// Reset time to zero and cancel every event except the run event. The run
// event keeps the same distance from the current time so that a reset in the
// middle of a run does not change how long the run lasts. An expired run
// event is moved to time zero, where the next budget will be measured from.
func (s *Scheduler) Reset() {
	run := s.items[EventRun]
	if run.deadline > s.now {
		run.deadline -= s.now
	} else {
		run.deadline = 0
	}

	s.now = 0
	for e := range s.items {
		s.items[e] = item{}
	}
	s.items[EventRun] = run
}

// Save the scheduler state. Handlers are not saved.
func (s *Scheduler) Save(w *savestate.Writer) {
	w.Uint64(s.now)
	for _, it := range s.items {
		w.Bool(it.active)
		w.Uint64(it.deadline)
	}
}

// Load the scheduler state. Handlers are not changed.
func (s *Scheduler) Load(r *savestate.Reader) {
	s.now = r.Uint64()
	for e := range s.items {
		s.items[e].active = r.Bool()
		s.items[e].deadline = r.Uint64()
	}
}
