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

package rewind

import (
	"fmt"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/savestate"
)

// Sentinel error patterns.
const (
	NoEntries     = "rewind: no entries"
	Uninitialised = "rewind: engine is not initialised"
)

// State is a single entry in the rewind history.
type State struct {
	// the frame number supplied to Record()
	Frame int

	blob []byte
}

func (s State) String() string {
	return fmt.Sprintf("%d", s.Frame)
}

// Size returns the number of bytes used by the state.
func (s State) Size() int {
	return len(s.blob)
}

// Frames describes the range of frames in the history.
type Frames struct {
	Start int
	End   int
}

// the default maximum number of entries to store before the earliest entries
// are forgotten
const defaultMaxEntries = 100

// Rewind contains a history of engine states.
type Rewind struct {
	eng backend.Engine

	// circular array of entries. the oldest entry is at index start
	entries []*State
	start   int
	count   int

	// the number of frames between recordings made by Check()
	frequency int

	// scratch buffer for SaveState(). sized by the engine
	scratch []byte
}

// NewRewind is the preferred method of initialisation for the Rewind type.
// A maxEntries value of less than one uses the default.
func NewRewind(eng backend.Engine, maxEntries int) *Rewind {
	r := &Rewind{
		eng:       eng,
		frequency: 1,
	}
	r.allocate(maxEntries)
	return r
}

func (r *Rewind) String() string {
	if r.count == 0 {
		return "rewind: empty"
	}
	f := r.GetFrames()
	return fmt.Sprintf("rewind: %d entries (frames %d to %d)", r.count, f.Start, f.End)
}

// allocate a new history. existing entries are kept, starting with the most
// recent, for as long as there is room
func (r *Rewind) allocate(maxEntries int) {
	if maxEntries < 1 {
		maxEntries = defaultMaxEntries
	}

	keep := min(r.count, maxEntries)
	entries := make([]*State, maxEntries)
	for i := range keep {
		entries[i] = r.entries[(r.start+r.count-keep+i)%len(r.entries)]
	}

	r.entries = entries
	r.start = 0
	r.count = keep
}

// SetFrequency sets how many frames Check() waits between recordings. A
// value of less than one is treated as one.
func (r *Rewind) SetFrequency(frequency int) {
	r.frequency = max(frequency, 1)
}

// Reset removes all entries.
func (r *Rewind) Reset() {
	clear(r.entries)
	r.start = 0
	r.count = 0
}

// Len returns the number of entries in the history.
func (r *Rewind) Len() int {
	return r.count
}

// Cap returns the maximum number of entries in the history.
func (r *Rewind) Cap() int {
	return len(r.entries)
}

// GetFrames returns the range of frames in the history. The range is
// meaningless if Len() returns zero.
func (r *Rewind) GetFrames() Frames {
	if r.count == 0 {
		return Frames{}
	}
	return Frames{
		Start: r.entries[r.start].Frame,
		End:   r.entries[(r.start+r.count-1)%len(r.entries)].Frame,
	}
}

// Check should be called once per frame. A state is recorded if the frame
// number is a multiple of the frequency. Returns true if a state was
// recorded.
func (r *Rewind) Check(frame int) (bool, error) {
	if frame%r.frequency != 0 {
		return false, nil
	}
	if err := r.Record(frame); err != nil {
		return false, err
	}
	return true, nil
}

// Record the current state of the engine. The oldest entry is forgotten if
// the history is full.
func (r *Rewind) Record(frame int) error {
	sz := r.eng.SaveStateSize()
	if sz == 0 {
		return curated.Errorf(Uninitialised)
	}
	if len(r.scratch) != sz {
		r.scratch = make([]byte, sz)
	}

	n, err := r.eng.SaveState(r.scratch)
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	blob, ok := savestate.Trim(r.scratch[:n])
	if !ok {
		// engine state is not framed by the savestate package. keep all of it
		blob = r.scratch[:n]
	}

	// reuse the oldest entry if the history is full
	var s *State
	if r.count == len(r.entries) {
		s = r.entries[r.start]
		r.start = (r.start + 1) % len(r.entries)
		r.count--
	} else {
		s = &State{}
	}

	s.Frame = frame
	s.blob = append(s.blob[:0], blob...)

	r.entries[(r.start+r.count)%len(r.entries)] = s
	r.count++

	return nil
}

// Rewind returns the engine to the state n entries before the most recent.
// A value of zero restores the most recent entry. Values larger than the
// history restore the oldest entry. Entries after the restored entry are
// forgotten.
//
// Returns the restored entry. The history is unchanged if an error is
// returned.
func (r *Rewind) Rewind(n int) (State, error) {
	if r.count == 0 {
		return State{}, curated.Errorf(NoEntries)
	}

	n = min(max(n, 0), r.count-1)
	s := r.entries[(r.start+r.count-1-n)%len(r.entries)]

	if err := r.eng.LoadState(s.blob); err != nil {
		return State{}, curated.Errorf("rewind: %v", err)
	}

	// forget later entries
	for i := r.count - n; i < r.count; i++ {
		r.entries[(r.start+i)%len(r.entries)] = nil
	}
	r.count -= n

	return *s, nil
}

// GotoLast restores the most recent entry.
func (r *Rewind) GotoLast() error {
	_, err := r.Rewind(0)
	return err
}
