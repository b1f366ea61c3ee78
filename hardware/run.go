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

package hardware

import (
	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/hardware/cpu"
	"github.com/calcore/calcore/hardware/scheduler"
	"github.com/calcore/calcore/logger"
)

// Run the emulation for the budget of CPU cycles. Returns early if the
// emulated program raises the exit signal. A budget of zero or less does
// nothing.
//
// The budget is measured from the moment the previous budget expired, so
// any overshoot from the final instruction of one call is taken from the
// next call. If the previous call returned early, the budget is measured
// from the current time.
func (calc *Calc) Run(budget int) {
	if budget <= 0 {
		return
	}

	ticks := clocks.CyclesToTicks(budget)
	if calc.Sched.Active(scheduler.EventRun) {
		calc.Sched.Schedule(scheduler.EventRun, ticks)
	} else {
		calc.Sched.Repeat(scheduler.EventRun, ticks)
	}

	calc.budgetExpired = false
	calc.LastStop = backend.StopNone

	for {
		sig := calc.CPU.ClearSignals()

		if sig&cpu.SignalExit == cpu.SignalExit {
			calc.LastStop = backend.StopExit
			calc.sink.Log(logger.Allow, "ce", "exit signal")
			return
		}

		if sig&cpu.SignalReset == cpu.SignalReset {
			calc.sink.Log(logger.Allow, "ce", "reset signal")
			calc.Reset()
			continue
		}

		if sig&cpu.SignalOnKey == cpu.SignalOnKey {
			calc.Keypad.OnCheck()
		}
		if sig&cpu.SignalAnyKey == cpu.SignalAnyKey {
			calc.Keypad.AnyCheck()
		}

		calc.Sched.Process()
		if calc.budgetExpired {
			calc.LastStop = backend.StopBudget
			return
		}

		if c := calc.CPU.Step(); c > 0 {
			calc.Sched.AdvanceCycles(c)
			continue
		}

		// the CPU is halted. skip to the next event, which at the latest is
		// the end of the budget
		if next, ok := calc.Sched.Next(); ok && next > calc.Sched.Now() {
			calc.Sched.Advance(next - calc.Sched.Now())
		}
	}
}
