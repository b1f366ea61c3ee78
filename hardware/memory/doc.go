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

// Package memory implements the 24bit address space of the calculator.
//
//	0x000000 - 0x3fffff   flash (read-only to the CPU)
//	0xd00000 - 0xd657ff   RAM
//	0xd40000 - 0xd657ff   default location of video memory (inside RAM)
//	0xe00000 - 0xffffff   memory mapped peripherals
//
// Peripherals are attached with Map(). They can also be attached to the
// separate 16bit I/O port space with MapPort().
package memory
