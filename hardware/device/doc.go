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

// Package device identifies the calculator model that a ROM image was made
// for. The information is found in the certificate area of the flash, as a
// nest of tagged fields.
//
// A field starts with a 16bit big-endian tag. The low nibble of the tag
// selects how the length of the field contents is encoded:
//
//	0x0 - 0xc    the nibble is the length
//	0xd          one length byte follows the tag
//	0xe          two length bytes follow the tag (big-endian)
//	0xf          four length bytes follow the tag (big-endian)
//
// The full tag, including the length nibble, is what identifies a field.
//
// Detect() never fails. A ROM that cannot be identified is treated as a
// TI-84 Plus CE and the problem is logged.
package device
