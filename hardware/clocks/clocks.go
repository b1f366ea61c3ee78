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

// Package clocks defines the constant values for the clocks in the
// calculator. All timing in the emulation is measured in ticks of the base
// clock. Every other clock is an exact divisor of the base clock.
package clocks

// Clock rates in Hz.
const (
	Base  = 7_680_000_000
	CPU   = 48_000_000
	Timer = 32_768
)

// Ticks of the base clock for one tick of the other clocks.
const (
	TicksPerCycle      = Base / CPU
	TicksPerTimerCycle = Base / Timer
)

// FrameRate of the LCD refresh.
const FrameRate = 60

// CyclesPerFrame is the number of CPU cycles between LCD refreshes.
const CyclesPerFrame = CPU / FrameRate

// CyclesToTicks converts a number of CPU cycles to base clock ticks.
func CyclesToTicks(cycles int) uint64 {
	if cycles <= 0 {
		return 0
	}
	return uint64(cycles) * TicksPerCycle
}
