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

// Package prefs facilitates the storage of preferential values in the
// calcore system. Preference values are typed (Bool, Int and String) and
// are safe to read from any goroutine.
//
// A Disk instance collects preference values under string keys and stores
// them in a YAML file. More than one Disk instance can use the same file:
// saving one instance does not clobber the keys of another.
//
//	var backend prefs.String
//	dsk, err := prefs.NewDisk(path)
//	err = dsk.Add("calcore.backend", &backend)
//	err = dsk.Load(true)
//
// Preference values can be overridden for the lifetime of a group of Load()
// calls with the command line stack. See PushCommandLineStack().
package prefs
