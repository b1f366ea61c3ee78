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

// Package testrom builds small ROM images for testing engines and hosts. The
// programs exercise the parts of the hardware that are visible through the
// backend.Engine interface.
package testrom

import "github.com/calcore/calcore/hardware/device"

// Build a ROM image from code placed at the given addresses. Bytes not
// covered by the code are in the erased state.
func Build(code map[int][]uint8) []uint8 {
	size := 0
	for a, c := range code {
		size = max(size, a+len(c))
	}
	r := make([]uint8, size)
	for i := range r {
		r[i] = 0xff
	}
	for a, c := range code {
		copy(r[a:], c)
	}
	return r
}

// WithDevice adds a certificate identifying the device to the code.
func WithDevice(code map[int][]uint8, v device.Variant) map[int][]uint8 {
	c := make(map[int][]uint8, len(code)+1)
	for a, b := range code {
		c[a] = b
	}
	c[0x20000] = device.DeviceInfoField(device.Identify(v))
	return c
}

// Spin loops forever without touching any hardware.
var Spin = map[int][]uint8{
	0x00: {0x18, 0xfe}, // JR 0x00
}

// Exit halts with interrupts disabled. When woken by the ON key it writes
// 0x42 to the start of RAM and loops.
var Exit = map[int][]uint8{
	0x00: {
		0xf3,       // DI
		0x76,       // HALT
		0x3e, 0x42, // LD A,0x42
		0x32, 0x00, 0x00, 0xd0, // LD (0xd00000),A
		0x18, 0xfe, // JR 0x08
	},
}

// Display switches on the LCD and continually changes the contents of video
// memory. Each pass over the first 0x5800 bytes of video memory adds three
// to every byte.
var Display = map[int][]uint8{
	0x00: {
		0x3e, 0x01, // LD A,1
		0x32, 0x18, 0x00, 0xe3, // LD (0xe30018),A
		0x21, 0x00, 0x00, 0xd4, // 0x06 LD HL,0xd40000
		0x01, 0x00, 0x58, 0x00, // LD BC,0x005800
		0x7e,       // 0x0e LD A,(HL)
		0xc6, 0x03, // ADD A,3
		0x77,       // LD (HL),A
		0x23,       // INC HL
		0x0b,       // DEC BC
		0x78,       // LD A,B
		0xb1,       // OR C
		0x20, 0xf6, // JR NZ,0x0e
		0xc3, 0x06, 0x00, 0x00, // JP 0x06
	},
}

// Timer enables the timer interrupt and counts interrupts in the first byte
// of RAM. The timer expires every 32 ticks of the 32kHz clock.
var Timer = map[int][]uint8{
	0x00: {
		0x3e, 0x02, // LD A,2
		0x32, 0x04, 0x00, 0xf0, // LD (0xf00004),A
		0x3e, 0x20, // LD A,0x20
		0x32, 0x04, 0x00, 0xf2, // LD (0xf20004),A
		0x3e, 0x01, // LD A,1
		0x32, 0x30, 0x00, 0xf2, // LD (0xf20030),A
		0xfb,       // EI
		0x76,       // HALT
		0x18, 0xfd, // JR 0x13
	},
	0x38: {
		0x3a, 0x00, 0x00, 0xd0, // LD A,(0xd00000)
		0x3c,                   // INC A
		0x32, 0x00, 0x00, 0xd0, // LD (0xd00000),A
		0x3e, 0xff, // LD A,0xff
		0x32, 0x08, 0x00, 0xf0, // LD (0xf00008),A
		0xfb, // EI
		0xc9, // RET
	},
}
