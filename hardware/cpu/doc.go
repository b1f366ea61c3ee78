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

// Package cpu emulates the subset of the eZ80 needed to run simple programs
// on the calculator. The processor is always in ADL mode, meaning that the
// program counter, the stack pointer and the register pairs are 24 bits
// wide.
//
// The CPU requires an implementation of the Bus interface. The Memory type
// in the memory package is the usual implementation.
//
//	mc := cpu.NewCPU(mem, intc, sink)
//	for {
//		if mc.Step() == 0 {
//			// halted
//		}
//	}
//
// Step() returns the number of cycles used by the instruction. Cycle counts
// are approximate.
//
// Signals are the mechanism by which peripherals and the host talk to the
// run loop. They are stored atomically and can be raised from any goroutine.
// The run loop collects them with ClearSignals(), which reads and clears the
// pending signals in one operation.
//
// Opcodes that are not implemented are logged and treated as a one byte NOP.
// Maskable interrupts are always dispatched to InterruptVector, regardless of
// the interrupt mode selected by the program.
package cpu
