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

// Package hardware is the base package for the calculator emulation. The
// Calc type is the container for the emulated components. Each component
// has its own package under this one.
//
// Emulation is driven by Run(), which executes CPU instructions until a
// budget of CPU cycles has been used or until the emulated program asks to
// stop. Time is kept by the scheduler package. The budget is enforced by a
// scheduled event, the same mechanism the peripherals use for their own
// timing, so the order in which a budget expiring and a peripheral event
// happen at the same time is well defined.
//
// The state of a Calc can be written to and restored from a savestate blob
// with Save() and Load().
package hardware
