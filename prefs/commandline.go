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
	"fmt"
	"slices"
	"strings"
	"sync"
)

// separators used in a command line preferences string. for example:
//
//	calcore.backend::ce; calcore.cyclesPerFrame::800000
const (
	groupSeparator = ";"
	valueSeparator = "::"
)

// a group of preference values taken from a single command line
type commandLineGroup map[string]string

func parseCommandLineGroup(s string) commandLineGroup {
	g := make(commandLineGroup)
	for _, p := range strings.Split(s, groupSeparator) {
		k, v, ok := strings.Cut(p, valueSeparator)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		g[k] = strings.TrimSpace(v)
	}
	return g
}

// the remaining entries in the group formatted as a command line string.
// entries are sorted by key
func (g commandLineGroup) String() string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%s%s%s", k, valueSeparator, g[k])
	}
	return strings.Join(s, groupSeparator+" ")
}

var commandLine struct {
	crit  sync.Mutex
	stack []commandLineGroup
}

// PushCommandLineStack parses a preferences string and adds it as a new group
// to the top of the stack. Entries without the :: separator are ignored.
//
// Only the group at the top of the stack is consulted by Disk.Load().
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	commandLine.stack = append(commandLine.stack, parseCommandLineGroup(prefs))
}

// PopCommandLineStack removes the most recent group added by
// PushCommandLineStack(). Returns the entries of that group that were not
// consumed by GetCommandLinePref().
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return ""
	}
	g := commandLine.stack[n-1]
	commandLine.stack = commandLine.stack[:n-1]
	return g.String()
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.stack)
}

// GetCommandLinePref returns the value for key in the top group of the stack.
// The entry is consumed and will not be returned a second time.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return false, nil
	}
	g := commandLine.stack[n-1]
	v, ok := g[key]
	if !ok {
		return false, nil
	}
	delete(g, key)
	return true, v
}
