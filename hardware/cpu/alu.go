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

package cpu

import "math/bits"

func signZero(v uint8) uint8 {
	f := v & FlagS
	if v == 0 {
		f |= FlagZ
	}
	return f
}

func parity(v uint8) uint8 {
	if bits.OnesCount8(v)&1 == 0 {
		return FlagPV
	}
	return 0
}

func (mc *CPU) add8(a, b uint8, carry bool) uint8 {
	c := uint16(0)
	if carry {
		c = 1
	}
	r := uint16(a) + uint16(b) + c
	res := uint8(r)

	f := signZero(res)
	if r > 0xff {
		f |= FlagC
	}
	if (a^b^res)&0x10 != 0 {
		f |= FlagH
	}
	if (a^res)&(b^res)&0x80 != 0 {
		f |= FlagPV
	}
	mc.F = f
	return res
}

func (mc *CPU) sub8(a, b uint8, carry bool) uint8 {
	c := 0
	if carry {
		c = 1
	}
	r := int(a) - int(b) - c
	res := uint8(r)

	f := signZero(res) | FlagN
	if r < 0 {
		f |= FlagC
	}
	if (a^b^res)&0x10 != 0 {
		f |= FlagH
	}
	if (a^b)&(a^res)&0x80 != 0 {
		f |= FlagPV
	}
	mc.F = f
	return res
}

// alu performs one of the eight accumulator operations, selected by bits 3
// to 5 of the opcode.
func (mc *CPU) alu(op uint8, v uint8) {
	switch op {
	case 0: // ADD
		mc.A = mc.add8(mc.A, v, false)
	case 1: // ADC
		mc.A = mc.add8(mc.A, v, mc.F&FlagC != 0)
	case 2: // SUB
		mc.A = mc.sub8(mc.A, v, false)
	case 3: // SBC
		mc.A = mc.sub8(mc.A, v, mc.F&FlagC != 0)
	case 4: // AND
		mc.A &= v
		mc.F = signZero(mc.A) | FlagH | parity(mc.A)
	case 5: // XOR
		mc.A ^= v
		mc.F = signZero(mc.A) | parity(mc.A)
	case 6: // OR
		mc.A |= v
		mc.F = signZero(mc.A) | parity(mc.A)
	case 7: // CP
		mc.sub8(mc.A, v, false)
	}
}

func (mc *CPU) inc8(v uint8) uint8 {
	res := v + 1
	f := (mc.F & FlagC) | signZero(res)
	if v&0x0f == 0x0f {
		f |= FlagH
	}
	if v == 0x7f {
		f |= FlagPV
	}
	mc.F = f
	return res
}

func (mc *CPU) dec8(v uint8) uint8 {
	res := v - 1
	f := (mc.F & FlagC) | signZero(res) | FlagN
	if v&0x0f == 0x00 {
		f |= FlagH
	}
	if v == 0x80 {
		f |= FlagPV
	}
	mc.F = f
	return res
}

// add a register pair to HL. only the carry flag is changed in ADL mode (H
// and N are also affected but not modelled beyond clearing N).
func (mc *CPU) addHL(v uint32) {
	r := (mc.HL & wordMask) + (v & wordMask)
	mc.F &^= FlagC | FlagN
	if r > wordMask {
		mc.F |= FlagC
	}
	mc.HL = r & wordMask
}

// rotate operations on the accumulator
func (mc *CPU) rotateA(op uint8) {
	a := mc.A
	c := mc.F&FlagC != 0
	var out bool

	switch op {
	case 0: // RLCA
		out = a&0x80 != 0
		a = a<<1 | a>>7
	case 1: // RRCA
		out = a&0x01 != 0
		a = a>>1 | a<<7
	case 2: // RLA
		out = a&0x80 != 0
		a <<= 1
		if c {
			a |= 0x01
		}
	case 3: // RRA
		out = a&0x01 != 0
		a >>= 1
		if c {
			a |= 0x80
		}
	}

	mc.A = a
	mc.F &= FlagS | FlagZ | FlagPV
	if out {
		mc.F |= FlagC
	}
}
