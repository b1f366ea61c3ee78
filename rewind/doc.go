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

// Package rewind keeps a bounded history of engine states. States are
// recorded as the emulation progresses and the engine can be returned to any
// of them with Rewind().
//
// The history is a circular array. When it is full the oldest state is
// forgotten to make room for the newest. Rewinding to a state forgets every
// state that was recorded after it.
//
// Each state is a state blob produced by the engine's SaveState() function,
// stored without padding.
package rewind
