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

import "fmt"

// Flag bits of the F register.
const (
	FlagC  = 0x01
	FlagN  = 0x02
	FlagPV = 0x04
	FlagH  = 0x10
	FlagZ  = 0x40
	FlagS  = 0x80
)

// mask for the 24bit registers
const wordMask = 0xffffff

// Registers of the eZ80 in ADL mode. The register pairs, SP and PC are all
// 24 bits wide.
type Registers struct {
	A  uint8
	F  uint8
	BC uint32
	DE uint32
	HL uint32
	SP uint32
	PC uint32
}

func (r Registers) String() string {
	return fmt.Sprintf("A=%02x F=%s BC=%06x DE=%06x HL=%06x SP=%06x PC=%06x",
		r.A, flagString(r.F), r.BC, r.DE, r.HL, r.SP, r.PC)
}

func flagString(f uint8) string {
	b := []byte("sz-h-pnc")
	u := []byte("SZ-H-PNC")
	for i := 0; i < 8; i++ {
		if f&(0x80>>i) != 0 {
			b[i] = u[i]
		}
	}
	return string(b)
}

// B returns the high byte of the lower 16 bits of BC.
func (r *Registers) B() uint8 {
	return uint8(r.BC >> 8)
}

// C returns the low byte of BC.
func (r *Registers) C() uint8 {
	return uint8(r.BC)
}

// H returns the high byte of the lower 16 bits of HL.
func (r *Registers) H() uint8 {
	return uint8(r.HL >> 8)
}

// L returns the low byte of HL.
func (r *Registers) L() uint8 {
	return uint8(r.HL)
}

// set the high byte of the lower 16 bits of a register pair
func setHigh(pair uint32, v uint8) uint32 {
	return (pair &^ 0x00ff00) | uint32(v)<<8
}

// set the low byte of a register pair
func setLow(pair uint32, v uint8) uint32 {
	return (pair &^ 0x0000ff) | uint32(v)
}

// the 8bit register encoding used by the instruction set. index 6 is (HL)
// and is handled by the caller.
func (r *Registers) reg8(i uint8) uint8 {
	switch i {
	case 0:
		return uint8(r.BC >> 8)
	case 1:
		return uint8(r.BC)
	case 2:
		return uint8(r.DE >> 8)
	case 3:
		return uint8(r.DE)
	case 4:
		return uint8(r.HL >> 8)
	case 5:
		return uint8(r.HL)
	case 7:
		return r.A
	}
	panic(fmt.Sprintf("cpu: invalid 8bit register index (%d)", i))
}

func (r *Registers) setReg8(i uint8, v uint8) {
	switch i {
	case 0:
		r.BC = setHigh(r.BC, v)
	case 1:
		r.BC = setLow(r.BC, v)
	case 2:
		r.DE = setHigh(r.DE, v)
	case 3:
		r.DE = setLow(r.DE, v)
	case 4:
		r.HL = setHigh(r.HL, v)
	case 5:
		r.HL = setLow(r.HL, v)
	case 7:
		r.A = v
	default:
		panic(fmt.Sprintf("cpu: invalid 8bit register index (%d)", i))
	}
}

// the register pair encoding used by LD rr,Mmm, INC rr, DEC rr and ADD HL,rr
func (r *Registers) pair(i uint8) *uint32 {
	switch i {
	case 0:
		return &r.BC
	case 1:
		return &r.DE
	case 2:
		return &r.HL
	}
	return &r.SP
}

// condition codes
func (r *Registers) condition(cc uint8) bool {
	switch cc {
	case 0:
		return r.F&FlagZ == 0
	case 1:
		return r.F&FlagZ != 0
	case 2:
		return r.F&FlagC == 0
	case 3:
		return r.F&FlagC != 0
	case 4:
		return r.F&FlagPV == 0
	case 5:
		return r.F&FlagPV != 0
	case 6:
		return r.F&FlagS == 0
	}
	return r.F&FlagS != 0
}
