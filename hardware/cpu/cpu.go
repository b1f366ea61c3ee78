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

import (
	"fmt"
	"sync/atomic"

	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/savestate"
)

// Bus is the CPU's view of memory and the I/O port space.
type Bus interface {
	Read(address uint32) uint8
	Write(address uint32, data uint8)
	In(port uint16) uint8
	Out(port uint16, data uint8)
}

// Interrupter reports whether a maskable interrupt is being requested.
type Interrupter interface {
	Pending() bool
}

// Signal is a request to the run loop. Signals can be raised from outside
// the emulation goroutine.
type Signal uint32

// List of valid Signal values. Signals are bits and more than one can be
// pending at once.
const (
	SignalReset Signal = 1 << iota
	SignalExit
	SignalOnKey
	SignalAnyKey
)

// Addresses used by the CPU.
const (
	ResetVector     = 0x000000
	InterruptVector = 0x000038
	ResetSP         = 0xd40000
)

// cycles taken to acknowledge an interrupt
const interruptCycles = 8

// CPU implements a subset of the eZ80, always in ADL mode.
type CPU struct {
	Registers

	IFF1   bool
	IFF2   bool
	Halted bool

	// total number of cycles executed since reset
	Cycles uint64

	signals atomic.Uint32

	bus  Bus
	intr Interrupter
	sink logger.Sink
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// interrupter can be nil.
func NewCPU(bus Bus, intr Interrupter, sink logger.Sink) *CPU {
	if sink == nil {
		sink = logger.Discard
	}
	mc := &CPU{
		bus:  bus,
		intr: intr,
		sink: sink,
	}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s iff=%v halted=%v", mc.Registers, mc.IFF1, mc.Halted)
}

// Reset the CPU. Pending signals are not affected.
func (mc *CPU) Reset() {
	mc.Registers = Registers{
		SP: ResetSP,
		PC: ResetVector,
	}
	mc.IFF1 = false
	mc.IFF2 = false
	mc.Halted = false
	mc.Cycles = 0
}

// Signal raises one or more signals.
func (mc *CPU) Signal(s Signal) {
	for {
		o := mc.signals.Load()
		if mc.signals.CompareAndSwap(o, o|uint32(s)) {
			return
		}
	}
}

// ClearSignals returns the pending signals and clears them in a single
// operation.
func (mc *CPU) ClearSignals() Signal {
	return Signal(mc.signals.Swap(0))
}

// PendingSignals returns the pending signals without clearing them.
func (mc *CPU) PendingSignals() Signal {
	return Signal(mc.signals.Load())
}

// Wake the CPU from a halt.
func (mc *CPU) Wake() {
	mc.Halted = false
}

// Step executes one instruction or acknowledges one interrupt. Returns the
// number of cycles used. Returns zero if the CPU is halted and nothing woke
// it.
func (mc *CPU) Step() int {
	if mc.IFF1 && mc.intr != nil && mc.intr.Pending() {
		mc.Halted = false
		mc.IFF1 = false
		mc.IFF2 = false
		mc.push(mc.PC)
		mc.PC = InterruptVector
		mc.Cycles += interruptCycles
		return interruptCycles
	}

	if mc.Halted {
		return 0
	}

	c := mc.execute()
	mc.Cycles += uint64(c)
	return c
}

func (mc *CPU) read24(address uint32) uint32 {
	lo := uint32(mc.bus.Read(address))
	mi := uint32(mc.bus.Read((address + 1) & wordMask))
	hi := uint32(mc.bus.Read((address + 2) & wordMask))
	return lo | mi<<8 | hi<<16
}

func (mc *CPU) write24(address uint32, v uint32) {
	mc.bus.Write(address, uint8(v))
	mc.bus.Write((address+1)&wordMask, uint8(v>>8))
	mc.bus.Write((address+2)&wordMask, uint8(v>>16))
}

func (mc *CPU) fetch() uint8 {
	v := mc.bus.Read(mc.PC)
	mc.PC = (mc.PC + 1) & wordMask
	return v
}

func (mc *CPU) fetch24() uint32 {
	v := mc.read24(mc.PC)
	mc.PC = (mc.PC + 3) & wordMask
	return v
}

func (mc *CPU) push(v uint32) {
	mc.SP = (mc.SP - 3) & wordMask
	mc.write24(mc.SP, v)
}

func (mc *CPU) pop() uint32 {
	v := mc.read24(mc.SP)
	mc.SP = (mc.SP + 3) & wordMask
	return v
}

// Save the CPU state. Pending signals are included.
func (mc *CPU) Save(w *savestate.Writer) {
	w.Uint8(mc.A)
	w.Uint8(mc.F)
	w.Uint32(mc.BC)
	w.Uint32(mc.DE)
	w.Uint32(mc.HL)
	w.Uint32(mc.SP)
	w.Uint32(mc.PC)
	w.Bool(mc.IFF1)
	w.Bool(mc.IFF2)
	w.Bool(mc.Halted)
	w.Uint64(mc.Cycles)
	w.Uint32(mc.signals.Load())
}

// Load the CPU state.
func (mc *CPU) Load(r *savestate.Reader) {
	mc.A = r.Uint8()
	mc.F = r.Uint8()
	mc.BC = r.Uint32()
	mc.DE = r.Uint32()
	mc.HL = r.Uint32()
	mc.SP = r.Uint32()
	mc.PC = r.Uint32()
	mc.IFF1 = r.Bool()
	mc.IFF2 = r.Bool()
	mc.Halted = r.Bool()
	mc.Cycles = r.Uint64()
	mc.signals.Store(r.Uint32())

	for _, v := range []uint32{mc.BC, mc.DE, mc.HL, mc.SP, mc.PC} {
		r.Check(v <= wordMask, "register value out of range")
	}
}
