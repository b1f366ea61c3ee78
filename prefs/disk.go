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

package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences.yaml"

// WarningBoilerPlate is written to the head of every preferences file.
const WarningBoilerPlate = "# *** do not edit this file while calcore is running ***"

// Disk represents preference values as stored on disk. A preferences file
// can be shared by more than one Disk instance, each with its own set of
// keys. Saving a Disk does not disturb the values of keys it does not know
// about.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Path returns the path of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s: %s\n", k, dsk.entries[k]))
	}
	return s.String()
}

// Add preference value to list of values to store/load from Disk. The key
// value is used to identify the value in the preferences file.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("prefs: empty key")
	}
	if isDefunct(key) {
		return fmt.Errorf("prefs: key %s is defunct", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %s already added", key)
	}
	dsk.entries[key] = p
	return nil
}

// read the preferences file. a missing file results in an empty map and a
// nil error
func (dsk *Disk) read() (map[string]any, error) {
	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}

	m := map[string]any{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("prefs: %s: %w", dsk.path, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Save current preference values to disk. Values in the file for keys that
// have not been added to this Disk instance are preserved. Defunct keys are
// removed.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	m, err := dsk.read()
	if err != nil {
		return err
	}

	for k := range m {
		if isDefunct(k) {
			delete(m, k)
		}
	}

	for k, p := range dsk.entries {
		m[k] = p.Get()
	}

	var buf bytes.Buffer
	buf.WriteString(WarningBoilerPlate)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	if err := os.WriteFile(dsk.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true and the file does
// not exist then the current values are saved, creating the file.
//
// Values in the current command line group (see PushCommandLineStack())
// take priority over the values in the file.
func (dsk *Disk) Load(saveOnFail bool) error {
	if saveOnFail {
		if _, err := os.Stat(dsk.path); errors.Is(err, fs.ErrNotExist) {
			if err := dsk.Save(); err != nil {
				return err
			}
		}
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	m, err := dsk.read()
	if err != nil {
		return err
	}

	for _, k := range dsk.keys() {
		v, ok := m[k]
		if ok && v != nil {
			if err := dsk.entries[k].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

// Reset all values added to the Disk instance. The file is not changed.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}
