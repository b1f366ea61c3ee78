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

import "github.com/calcore/calcore/logger"

// read an 8bit operand using the register encoding. index 6 is (HL)
func (mc *CPU) operand(i uint8) (uint8, int) {
	if i == 6 {
		return mc.bus.Read(mc.HL), 1
	}
	return mc.reg8(i), 0
}

func (mc *CPU) setOperand(i uint8, v uint8) int {
	if i == 6 {
		mc.bus.Write(mc.HL, v)
		return 1
	}
	mc.setReg8(i, v)
	return 0
}

func (mc *CPU) unimplemented(prefix string, opcode uint8, address uint32) int {
	mc.sink.Logf(logger.Allow, "cpu", "unimplemented opcode %s%02x at %06x", prefix, opcode, address)
	return 1
}

// execute one instruction and return the number of cycles used
func (mc *CPU) execute() int {
	address := mc.PC
	opcode := mc.fetch()

	// decoding of the regular blocks of the instruction set
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 1:
		if opcode == 0x76 {
			mc.Halted = true
			if !mc.IFF1 {
				// nothing can wake the CPU apart from the ON key
				mc.Signal(SignalExit)
			}
			return 2
		}
		// LD r,r'
		v, c := mc.operand(z)
		return 1 + c + mc.setOperand(y, v)

	case 2:
		// ALU A,r
		v, c := mc.operand(z)
		mc.alu(y, v)
		return 1 + c
	}

	switch opcode {
	case 0x00: // NOP
		return 1

	case 0x01, 0x11, 0x21, 0x31: // LD rr,Mmm
		*mc.pair(opcode >> 4) = mc.fetch24()
		return 4

	case 0x02: // LD (BC),A
		mc.bus.Write(mc.BC, mc.A)
		return 2
	case 0x12: // LD (DE),A
		mc.bus.Write(mc.DE, mc.A)
		return 2
	case 0x0a: // LD A,(BC)
		mc.A = mc.bus.Read(mc.BC)
		return 2
	case 0x1a: // LD A,(DE)
		mc.A = mc.bus.Read(mc.DE)
		return 2

	case 0x03, 0x13, 0x23, 0x33: // INC rr
		p := mc.pair(opcode >> 4)
		*p = (*p + 1) & wordMask
		return 1
	case 0x0b, 0x1b, 0x2b, 0x3b: // DEC rr
		p := mc.pair(opcode >> 4)
		*p = (*p - 1) & wordMask
		return 1

	case 0x09, 0x19, 0x29, 0x39: // ADD HL,rr
		mc.addHL(*mc.pair(opcode >> 4))
		return 1

	case 0x04, 0x0c, 0x14, 0x1c, 0x24, 0x2c, 0x34, 0x3c: // INC r
		v, c := mc.operand(y)
		return 1 + c + mc.setOperand(y, mc.inc8(v))
	case 0x05, 0x0d, 0x15, 0x1d, 0x25, 0x2d, 0x35, 0x3d: // DEC r
		v, c := mc.operand(y)
		return 1 + c + mc.setOperand(y, mc.dec8(v))
	case 0x06, 0x0e, 0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e: // LD r,n
		return 2 + mc.setOperand(y, mc.fetch())

	case 0x07, 0x0f, 0x17, 0x1f: // RLCA RRCA RLA RRA
		mc.rotateA(y)
		return 1

	case 0x10: // DJNZ d
		d := int8(mc.fetch())
		b := mc.B() - 1
		mc.BC = setHigh(mc.BC, b)
		if b != 0 {
			mc.jumpRelative(d)
			return 4
		}
		return 2
	case 0x18: // JR d
		mc.jumpRelative(int8(mc.fetch()))
		return 3
	case 0x20, 0x28, 0x30, 0x38: // JR cc,d
		d := int8(mc.fetch())
		if mc.condition(y - 4) {
			mc.jumpRelative(d)
			return 3
		}
		return 2

	case 0x22: // LD (Mmm),HL
		mc.write24(mc.fetch24(), mc.HL)
		return 7
	case 0x2a: // LD HL,(Mmm)
		mc.HL = mc.read24(mc.fetch24())
		return 7
	case 0x32: // LD (Mmm),A
		mc.bus.Write(mc.fetch24(), mc.A)
		return 5
	case 0x3a: // LD A,(Mmm)
		mc.A = mc.bus.Read(mc.fetch24())
		return 5

	case 0x2f: // CPL
		mc.A = ^mc.A
		mc.F |= FlagH | FlagN
		return 1
	case 0x37: // SCF
		mc.F = (mc.F &^ (FlagH | FlagN)) | FlagC
		return 1
	case 0x3f: // CCF
		h := mc.F&FlagC != 0
		mc.F = (mc.F &^ (FlagH | FlagN)) ^ FlagC
		if h {
			mc.F |= FlagH
		}
		return 1

	case 0xc6, 0xce, 0xd6, 0xde, 0xe6, 0xee, 0xf6, 0xfe: // ALU A,n
		mc.alu(y, mc.fetch())
		return 2

	case 0xc3: // JP Mmm
		mc.PC = mc.fetch24()
		return 5
	case 0xc2, 0xca, 0xd2, 0xda, 0xe2, 0xea, 0xf2, 0xfa: // JP cc,Mmm
		a := mc.fetch24()
		if mc.condition(y) {
			mc.PC = a
			return 5
		}
		return 4
	case 0xe9: // JP (HL)
		mc.PC = mc.HL
		return 3

	case 0xcd: // CALL Mmm
		a := mc.fetch24()
		mc.push(mc.PC)
		mc.PC = a
		return 7
	case 0xc4, 0xcc, 0xd4, 0xdc, 0xe4, 0xec, 0xf4, 0xfc: // CALL cc,Mmm
		a := mc.fetch24()
		if mc.condition(y) {
			mc.push(mc.PC)
			mc.PC = a
			return 7
		}
		return 4
	case 0xc9: // RET
		mc.PC = mc.pop()
		return 6
	case 0xc0, 0xc8, 0xd0, 0xd8, 0xe0, 0xe8, 0xf0, 0xf8: // RET cc
		if mc.condition(y) {
			mc.PC = mc.pop()
			return 6
		}
		return 2
	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff: // RST
		mc.push(mc.PC)
		mc.PC = uint32(y) * 8
		return 6

	case 0xc5, 0xd5, 0xe5: // PUSH rr
		mc.push(*mc.pair((opcode >> 4) & 0x03))
		return 4
	case 0xf5: // PUSH AF
		mc.push(uint32(mc.A)<<8 | uint32(mc.F))
		return 4
	case 0xc1, 0xd1, 0xe1: // POP rr
		*mc.pair((opcode >> 4) & 0x03) = mc.pop()
		return 4
	case 0xf1: // POP AF
		v := mc.pop()
		mc.A = uint8(v >> 8)
		mc.F = uint8(v)
		return 4

	case 0xeb: // EX DE,HL
		mc.DE, mc.HL = mc.HL, mc.DE
		return 1
	case 0xf9: // LD SP,HL
		mc.SP = mc.HL
		return 1

	case 0xf3: // DI
		mc.IFF1 = false
		mc.IFF2 = false
		return 1
	case 0xfb: // EI
		mc.IFF1 = true
		mc.IFF2 = true
		return 1

	case 0xcb:
		return mc.executeCB()
	case 0xed:
		return mc.executeED()
	}

	return mc.unimplemented("", opcode, address)
}

func (mc *CPU) jumpRelative(d int8) {
	mc.PC = uint32(int32(mc.PC)+int32(d)) & wordMask
}

// bit instructions. rotates and shifts are not implemented
func (mc *CPU) executeCB() int {
	address := mc.PC - 1
	opcode := mc.fetch()

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 1: // BIT b,r
		v, c := mc.operand(z)
		f := (mc.F & FlagC) | FlagH
		if v&(1<<y) == 0 {
			f |= FlagZ | FlagPV
		}
		if y == 7 && v&0x80 != 0 {
			f |= FlagS
		}
		mc.F = f
		return 2 + c
	case 2: // RES b,r
		v, c := mc.operand(z)
		return 2 + c + mc.setOperand(z, v&^(1<<y))
	case 3: // SET b,r
		v, c := mc.operand(z)
		return 2 + c + mc.setOperand(z, v|(1<<y))
	}

	return mc.unimplemented("cb", opcode, address)
}

func (mc *CPU) executeED() int {
	address := mc.PC - 1
	opcode := mc.fetch()

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	if x == 0 && y != 6 {
		switch z {
		case 0: // IN0 r,(n)
			v := mc.bus.In(uint16(mc.fetch()))
			mc.setReg8(y, v)
			mc.F = (mc.F & FlagC) | signZero(v) | parity(v)
			return 4
		case 1: // OUT0 (n),r
			mc.bus.Out(uint16(mc.fetch()), mc.reg8(y))
			return 4
		}
	}

	switch opcode {
	case 0x44: // NEG
		mc.A = mc.sub8(0, mc.A, false)
		return 2
	case 0x46, 0x56, 0x5e: // IM 0/1/2
		// interrupts are always dispatched to the mode 1 vector
		return 2
	case 0xb0: // LDIR
		mc.bus.Write(mc.DE, mc.bus.Read(mc.HL))
		mc.HL = (mc.HL + 1) & wordMask
		mc.DE = (mc.DE + 1) & wordMask
		mc.BC = (mc.BC - 1) & wordMask
		mc.F &^= FlagH | FlagN | FlagPV
		if mc.BC != 0 {
			mc.F |= FlagPV
			mc.PC = address
			return 3
		}
		return 3
	}

	return mc.unimplemented("ed", opcode, address)
}
