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

// Package engines lists the emulation engines that are built into calcore.
// Hosts should create engines through the registry returned by Default()
// rather than by importing an engine package directly.
package engines

import (
	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/engines/ce"
)

// Default returns a registry containing every built-in engine. The first
// engine registered is the default.
func Default() *backend.Registry {
	r := backend.NewRegistry()
	if err := r.Register(ce.Name, ce.Factory); err != nil {
		panic(err)
	}
	return r
}
