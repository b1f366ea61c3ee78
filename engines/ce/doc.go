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

// Package ce is the reference engine. It emulates the eZ80 based calculators
// with the hardware package and satisfies the backend.Engine and
// backend.StopReporter interfaces.
//
// Save states are a fixed StateSize bytes. The payload is the complete
// hardware state, including flash, so a state can only be restored by an
// engine that has loaded a ROM but not necessarily the same ROM.
package ce
