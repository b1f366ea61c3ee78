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

package cli

import (
	"fmt"

	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/prefs"
)

// Preferences of the command line tool.
type Preferences struct {
	dsk *prefs.Disk

	// name of the backend to use
	Backend prefs.String

	// number of CPU cycles to run for every frame
	CyclesPerFrame prefs.Int

	// capacity of the log
	LogCapacity prefs.Int

	// path of the slots database. the empty string means the default path
	SlotsDB prefs.String

	// echo log entries to stderr
	Verbose prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

func newPreferences(pth string, defaultBackend string) (*Preferences, error) {
	p := &Preferences{}

	p.Backend.Set(defaultBackend)
	p.CyclesPerFrame.Set(clocks.CyclesPerFrame)
	p.LogCapacity.Set(logger.DefaultCapacity)
	p.SlotsDB.Set("")
	p.Verbose.Set(false)

	p.CyclesPerFrame.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("cycles per frame must be positive")
		}
		return nil
	})
	p.LogCapacity.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("log capacity must be positive")
		}
		return nil
	})

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("calcore.backend", &p.Backend)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("calcore.cyclesPerFrame", &p.CyclesPerFrame)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("calcore.logCapacity", &p.LogCapacity)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("calcore.slotsDB", &p.SlotsDB)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("calcore.verbose", &p.Verbose)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
