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

package cpu_test

import (
	"strings"
	"testing"

	"github.com/calcore/calcore/hardware/cpu"
	"github.com/calcore/calcore/hardware/memory"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/savestate"
	"github.com/calcore/calcore/test"
)

type interrupter struct {
	pending bool
}

func (i *interrupter) Pending() bool {
	return i.pending
}

type port struct {
	data [256]uint8
}

func (p *port) Read(offset uint32) uint8 {
	return p.data[offset]
}

func (p *port) Write(offset uint32, data uint8) {
	p.data[offset] = data
}

type harness struct {
	mem  *memory.Memory
	cpu  *cpu.CPU
	intr *interrupter
	port *port
	log  *logger.Logger
}

func newHarness(t *testing.T, program ...uint8) *harness {
	t.Helper()

	h := &harness{
		mem:  memory.NewMemory(),
		intr: &interrupter{},
		port: &port{},
		log:  logger.NewLogger(10),
	}
	h.mem.MapPort(0x0000, 0x100, h.port)
	test.DemandSuccess(t, h.mem.LoadFlash(program))
	h.cpu = cpu.NewCPU(h.mem, h.intr, h.log)
	return h
}

func (h *harness) steps(n int) int {
	c := 0
	for range n {
		c += h.cpu.Step()
	}
	return c
}

func TestLoadAndArithmetic(t *testing.T) {
	h := newHarness(t,
		0x3e, 0x05, // LD A,5
		0xc6, 0x03, // ADD A,3
		0x47,       // LD B,A
		0xd6, 0x08, // SUB 8
	)

	h.steps(4)
	test.ExpectEquality(t, h.cpu.A, uint8(0))
	test.ExpectEquality(t, h.cpu.B(), uint8(8))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagZ, uint8(cpu.FlagZ))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagN, uint8(cpu.FlagN))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagC, uint8(0))
	test.ExpectEquality(t, h.cpu.PC, uint32(7))
}

func TestFlags(t *testing.T) {
	h := newHarness(t,
		0x3e, 0x7f, // LD A,0x7f
		0x3c,       // INC A
		0x3e, 0xff, // LD A,0xff
		0xc6, 0x01, // ADD A,1
		0x3e, 0x0f, // LD A,0x0f
		0xe6, 0x03, // AND 3
		0xfe, 0x04, // CP 4
	)

	// INC of 0x7f overflows
	h.steps(2)
	test.ExpectEquality(t, h.cpu.A, uint8(0x80))
	test.ExpectEquality(t, h.cpu.F&(cpu.FlagS|cpu.FlagPV|cpu.FlagH), uint8(cpu.FlagS|cpu.FlagPV|cpu.FlagH))

	// ADD carries out
	h.steps(2)
	test.ExpectEquality(t, h.cpu.A, uint8(0))
	test.ExpectEquality(t, h.cpu.F&(cpu.FlagZ|cpu.FlagC), uint8(cpu.FlagZ|cpu.FlagC))

	// AND sets H and parity (0x03 has even parity)
	h.steps(2)
	test.ExpectEquality(t, h.cpu.A, uint8(0x03))
	test.ExpectEquality(t, h.cpu.F&(cpu.FlagH|cpu.FlagPV), uint8(cpu.FlagH|cpu.FlagPV))

	// CP borrows but A is unchanged
	h.steps(1)
	test.ExpectEquality(t, h.cpu.A, uint8(0x03))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagC, uint8(cpu.FlagC))
}

func TestCallReturn(t *testing.T) {
	h := newHarness(t,
		0x01, 0x56, 0x34, 0x12, // 0x00 LD BC,0x123456
		0xc5,                   // 0x04 PUSH BC
		0xcd, 0x10, 0x00, 0x00, // 0x05 CALL 0x000010
		0xd1, // 0x09 POP DE
		0x76, // 0x0a HALT
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x3e, 0x42, // 0x10 LD A,0x42
		0xc9, // 0x12 RET
	)

	h.steps(2)
	test.ExpectEquality(t, h.cpu.SP, uint32(cpu.ResetSP-3))

	h.steps(1)
	test.ExpectEquality(t, h.cpu.PC, uint32(0x10))
	test.ExpectEquality(t, h.cpu.SP, uint32(cpu.ResetSP-6))

	// return address is on the stack, 24bits little-endian
	sp := h.cpu.SP - memory.RAMOrigin
	test.ExpectEquality(t, h.mem.RAM[sp], uint8(0x09))
	test.ExpectEquality(t, h.mem.RAM[sp+1], uint8(0x00))
	test.ExpectEquality(t, h.mem.RAM[sp+2], uint8(0x00))

	h.steps(3)
	test.ExpectEquality(t, h.cpu.A, uint8(0x42))
	test.ExpectEquality(t, h.cpu.DE, uint32(0x123456))
	test.ExpectEquality(t, h.cpu.SP, uint32(cpu.ResetSP))
}

func TestLoops(t *testing.T) {
	h := newHarness(t,
		0x06, 0x05, // 0x00 LD B,5
		0xaf,       // 0x02 XOR A
		0x3c,       // 0x03 INC A
		0x10, 0xfd, // 0x04 DJNZ 0x03
		0x18, 0xfe, // 0x06 JR 0x06
	)

	h.steps(2 + 5*2)
	test.ExpectEquality(t, h.cpu.A, uint8(5))
	test.ExpectEquality(t, h.cpu.B(), uint8(0))
	test.ExpectEquality(t, h.cpu.PC, uint32(0x06))

	// JR to self
	h.steps(10)
	test.ExpectEquality(t, h.cpu.PC, uint32(0x06))
}

func TestLDIR(t *testing.T) {
	h := newHarness(t,
		0x21, 0x20, 0x00, 0x00, // 0x00 LD HL,0x000020
		0x11, 0x00, 0x00, 0xd0, // 0x04 LD DE,0xd00000
		0x01, 0x04, 0x00, 0x00, // 0x08 LD BC,4
		0xed, 0xb0, // 0x0c LDIR
		0x76, // 0x0e HALT
		0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xde, 0xad, 0xbe, 0xef, // 0x20
	)

	h.steps(3 + 4)
	test.ExpectEquality(t, h.cpu.PC, uint32(0x0e))
	test.ExpectEquality(t, h.cpu.BC, uint32(0))
	test.ExpectEquality(t, h.mem.RAM[0], uint8(0xde))
	test.ExpectEquality(t, h.mem.RAM[3], uint8(0xef))
	test.ExpectEquality(t, h.cpu.HL, uint32(0x24))
	test.ExpectEquality(t, h.cpu.DE, uint32(0xd00004))
}

func TestHaltAndInterrupt(t *testing.T) {
	h := newHarness(t,
		0xfb, // EI
		0x76, // HALT
	)

	h.steps(2)
	test.ExpectSuccess(t, h.cpu.Halted)
	test.ExpectEquality(t, h.cpu.PendingSignals(), cpu.Signal(0))

	// halted cpu uses no cycles
	test.ExpectEquality(t, h.cpu.Step(), 0)

	// interrupt wakes the cpu and jumps to the vector
	h.intr.pending = true
	h.cpu.Step()
	test.ExpectFailure(t, h.cpu.Halted)
	test.ExpectFailure(t, h.cpu.IFF1)
	test.ExpectEquality(t, h.cpu.PC, uint32(cpu.InterruptVector))

	sp := h.cpu.SP - memory.RAMOrigin
	test.ExpectEquality(t, h.mem.RAM[sp], uint8(0x02))
}

func TestHaltWithInterruptsDisabled(t *testing.T) {
	h := newHarness(t,
		0xf3, // DI
		0x76, // HALT
	)

	h.steps(2)
	test.ExpectSuccess(t, h.cpu.Halted)
	test.ExpectEquality(t, h.cpu.ClearSignals(), cpu.SignalExit)
	test.ExpectEquality(t, h.cpu.PendingSignals(), cpu.Signal(0))

	// a pending interrupt is ignored
	h.intr.pending = true
	test.ExpectEquality(t, h.cpu.Step(), 0)

	h.cpu.Wake()
	test.ExpectFailure(t, h.cpu.Halted)
}

func TestPorts(t *testing.T) {
	h := newHarness(t,
		0x3e, 0x99, // LD A,0x99
		0xed, 0x39, 0x05, // OUT0 (5),A
		0xed, 0x00, 0x06, // IN0 B,(6)
	)
	h.port.data[6] = 0x77

	h.steps(3)
	test.ExpectEquality(t, h.port.data[5], uint8(0x99))
	test.ExpectEquality(t, h.cpu.B(), uint8(0x77))
}

func TestBitInstructions(t *testing.T) {
	h := newHarness(t,
		0x0e, 0x00, // LD C,0
		0xcb, 0xd9, // SET 3,C
		0xcb, 0x59, // BIT 3,C
		0xcb, 0x99, // RES 3,C
		0xcb, 0x59, // BIT 3,C
	)

	h.steps(3)
	test.ExpectEquality(t, h.cpu.C(), uint8(0x08))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagZ, uint8(0))

	h.steps(2)
	test.ExpectEquality(t, h.cpu.C(), uint8(0x00))
	test.ExpectEquality(t, h.cpu.F&cpu.FlagZ, uint8(cpu.FlagZ))
}

func TestUnimplemented(t *testing.T) {
	h := newHarness(t,
		0xdd, // IX prefix
	)

	test.ExpectEquality(t, h.cpu.Step(), 1)
	test.ExpectEquality(t, h.cpu.PC, uint32(1))

	d := h.log.Drain()
	test.DemandEquality(t, len(d), 1)
	test.ExpectSuccess(t, strings.Contains(d[0], "unimplemented opcode dd"))
}

func TestSignals(t *testing.T) {
	h := newHarness(t, 0x00)

	h.cpu.Signal(cpu.SignalOnKey)
	h.cpu.Signal(cpu.SignalAnyKey)
	test.ExpectEquality(t, h.cpu.ClearSignals(), cpu.SignalOnKey|cpu.SignalAnyKey)
	test.ExpectEquality(t, h.cpu.ClearSignals(), cpu.Signal(0))

	// reset does not clear signals
	h.cpu.Signal(cpu.SignalReset)
	h.cpu.Reset()
	test.ExpectEquality(t, h.cpu.PendingSignals(), cpu.SignalReset)
}

func TestSaveLoad(t *testing.T) {
	h := newHarness(t,
		0x01, 0x56, 0x34, 0x12, // LD BC,0x123456
		0x3e, 0x42, // LD A,0x42
		0xfb, // EI
	)
	h.steps(3)
	h.cpu.Signal(cpu.SignalAnyKey)

	blob := make([]byte, 128)
	_, err := savestate.Encode(blob, h.cpu.Save)
	test.DemandSuccess(t, err)

	c := cpu.NewCPU(h.mem, h.intr, nil)
	err = savestate.Decode(blob, func(r *savestate.Reader) error {
		c.Load(r)
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.String(), h.cpu.String())
	test.ExpectEquality(t, c.Cycles, h.cpu.Cycles)
	test.ExpectEquality(t, c.PendingSignals(), cpu.SignalAnyKey)
}
