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

package logger

// Sink is the logging interface handed to emulation components. The Logger
// type satisfies it.
type Sink interface {
	Log(perm Permission, tag string, detail any)
	Logf(perm Permission, tag string, pattern string, args ...any)
}

type discard struct{}

func (_ discard) Log(_ Permission, _ string, _ any) {
}

func (_ discard) Logf(_ Permission, _ string, _ string, _ ...any) {
}

// Discard is a Sink that drops every entry.
var Discard Sink = discard{}
