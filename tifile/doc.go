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

// Package tifile reads and writes the variable files used by the TI-84 Plus
// CE family of calculators. Programs (.8xp), application variables (.8xv)
// and other variable types share the same container format:
//
//	[55 byte header] [variable entries] [16 bit checksum]
//
// The header starts with the "**TI83F*" signature. The length of the entry
// section is a 16 bit little-endian value at offset 53. The checksum is the
// lower 16 bits of the sum of every byte in the entry section.
//
// Each entry is a 17 byte entry header followed by the variable data:
//
//	[header size u16] [data size u16] [type] [name 8 bytes] [version]
//	[flag] [data size u16] [data]
//
// Bit 7 of the flag byte indicates that the variable should be archived.
package tifile
