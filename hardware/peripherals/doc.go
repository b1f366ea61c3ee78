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

// Package peripherals contains the memory mapped hardware of the
// calculator: the interrupt controller, the LCD controller, the general
// purpose timer, the keypad, the backlight and the control ports.
//
// Every peripheral implements the memory.Device interface and is attached
// to the address space by the owner of the Memory instance. Offsets passed
// to Read() and Write() are relative to the base address of the peripheral.
//
// Peripherals that need to do something at a future time use the
// scheduler. Peripherals that need the attention of the run loop raise a
// cpu.Signal.
package peripherals
