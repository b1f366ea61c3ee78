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
	"github.com/calcore/calcore/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	r   *Rewind
	dsk *prefs.Disk

	// maximum number of entries in the history
	MaxEntries prefs.Int

	// number of frames between recordings
	Frequency prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// how often a state is recorded. the higher the number, the more coarse the
// rewind system will feel
const defaultFrequency = 1

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Changes to the values are applied to the Rewind
// instance immediately.
func NewPreferences(r *Rewind, pth string) (*Preferences, error) {
	p := &Preferences{r: r}

	p.MaxEntries.Set(r.Cap())
	p.Frequency.Set(defaultFrequency)

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("rewind.maxEntries", &p.MaxEntries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.frequency", &p.Frequency)
	if err != nil {
		return nil, err
	}

	p.MaxEntries.SetHookPost(func(v prefs.Value) error {
		r.allocate(v.(int))
		return nil
	})
	p.Frequency.SetHookPost(func(v prefs.Value) error {
		r.SetFrequency(v.(int))
		return nil
	})

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Load rewind preferences and apply to the current rewind system.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
