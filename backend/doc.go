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

// Package backend defines the contract between a host and an emulation
// engine. Any number of engines can satisfy the Engine interface; the host
// chooses between them at runtime through a Registry.
//
// Errors returned by engines are curated errors. The patterns are declared
// in this package and the Status() function converts them to the integer
// codes used by the bridge package.
//
// State blobs are only portable between engines of the same backend. Hosts
// must record which backend produced a blob.
package backend
