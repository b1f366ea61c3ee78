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

// Package savestate is the binary encoding for engine state. A blob is laid
// out as:
//
//	offset  size  content
//	0       4     Version (little-endian)
//	4       4     payload length (little-endian)
//	8       n     payload
//	8+n     4     CRC-32 (IEEE) of the payload
//	12+n    ...   zero padding to the size declared by the engine
//
// The payload is produced and consumed by the engine with the Writer and
// Reader types. Both work entirely in memory.
package savestate
