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

package hardware_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"slices"
	"strings"
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/hardware"
	"github.com/calcore/calcore/hardware/clocks"
	"github.com/calcore/calcore/hardware/device"
	"github.com/calcore/calcore/hardware/memory"
	"github.com/calcore/calcore/hardware/peripherals"
	"github.com/calcore/calcore/hardware/testrom"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/savestate"
	"github.com/calcore/calcore/test"
)

func newCalc(t *testing.T, code map[int][]uint8) (*hardware.Calc, *logger.Logger) {
	t.Helper()
	log := logger.NewLogger(logger.DefaultCapacity)
	calc := hardware.NewCalc(log)
	test.DemandSuccess(t, calc.LoadROM(testrom.Build(code)))
	return calc, log
}

func TestLoadROM(t *testing.T) {
	calc := hardware.NewCalc(nil)

	err := calc.LoadROM(nil)
	test.ExpectSuccess(t, curated.Is(err, backend.EmptyInput))

	err = calc.LoadROM(make([]uint8, memory.FlashSize+1))
	test.ExpectSuccess(t, curated.Is(err, backend.TooLarge))

	// failed loads leave flash erased
	test.ExpectEquality(t, calc.Mem.Flash[0], uint8(memory.FlashErased))

	test.ExpectSuccess(t, calc.LoadROM(testrom.Build(testrom.Spin)))
	test.ExpectEquality(t, calc.Mem.Flash[0], uint8(0x18))
	test.ExpectEquality(t, calc.Variant, device.Default)
}

func TestDetection(t *testing.T) {
	calc, log := newCalc(t, map[int][]uint8{
		0x00:    {0x18, 0xfe},
		0x20000: device.DeviceInfoField(0x15, 0x01),
	})

	test.ExpectEquality(t, calc.Variant, device.TI82AEP)
	test.ExpectSuccess(t, calc.Detection.Recognised)
	test.ExpectEquality(t, calc.Mem.Read(peripherals.ControlOrigin+0x02), uint8(device.TI82AEP))
	test.ExpectEquality(t, calc.Mem.In(0x02), uint8(device.TI82AEP))

	d := log.Drain()
	test.DemandEquality(t, len(d), 2)
	test.ExpectSuccess(t, strings.HasPrefix(d[0], "device: "))
	test.ExpectSuccess(t, strings.HasPrefix(d[1], "ce: loaded"))
}

func TestRunBudget(t *testing.T) {
	calc, _ := newCalc(t, testrom.Spin)

	// JR takes three cycles so the budget is overshot
	calc.Run(1000)
	test.ExpectEquality(t, calc.LastStop, backend.StopBudget)
	test.ExpectEquality(t, calc.CPU.Cycles, uint64(1002))

	// the overshoot is taken from the next budget
	calc.Run(1000)
	test.ExpectEquality(t, calc.CPU.Cycles, uint64(2001))
	test.ExpectEquality(t, calc.Sched.Now(), clocks.CyclesToTicks(2001))
}

func TestRunNothing(t *testing.T) {
	calc, _ := newCalc(t, testrom.Spin)

	calc.Run(0)
	calc.Run(-5)
	test.ExpectEquality(t, calc.CPU.Cycles, uint64(0))
	test.ExpectEquality(t, calc.Sched.Now(), uint64(0))
	test.ExpectEquality(t, calc.LastStop, backend.StopNone)
}

func TestHaltExit(t *testing.T) {
	calc, _ := newCalc(t, testrom.Exit)

	calc.Run(10000)
	test.ExpectEquality(t, calc.LastStop, backend.StopExit)
	test.ExpectSuccess(t, calc.CPU.Halted)
	test.ExpectEquality(t, calc.CPU.Cycles, uint64(3))

	// still halted. time skips to the end of the budget
	calc.Run(10000)
	test.ExpectEquality(t, calc.LastStop, backend.StopBudget)
	test.ExpectEquality(t, calc.Sched.Now(), clocks.CyclesToTicks(10003))

	// the ON key wakes the CPU
	calc.SetKey(peripherals.OnKeyRow, peripherals.OnKeyColumn, true)
	calc.Run(100)
	test.ExpectFailure(t, calc.CPU.Halted)
	test.ExpectEquality(t, calc.Mem.RAM[0], uint8(0x42))
	test.ExpectEquality(t, calc.Intc.Status&uint8(peripherals.IntOn), uint8(peripherals.IntOn))
}

func TestControlExit(t *testing.T) {
	calc, _ := newCalc(t, map[int][]uint8{
		0x00: {
			0x3e, 0x02, // LD A,2
			0x32, 0x00, 0x00, 0xe0, // LD (0xe00000),A
			0x18, 0xfe, // JR 0x06
		},
	})

	calc.Run(10000)
	test.ExpectEquality(t, calc.LastStop, backend.StopExit)
	test.ExpectEquality(t, calc.CPU.PC, uint32(0x06))
}

func TestControlReset(t *testing.T) {
	calc, log := newCalc(t, map[int][]uint8{
		0x00: {
			0x3e, 0x01, // LD A,1
			0xed, 0x39, 0x00, // OUT0 (0),A
			0x18, 0xfe, // JR 0x05
		},
	})
	log.Clear()

	calc.Run(1000)
	test.ExpectEquality(t, calc.LastStop, backend.StopBudget)

	// the program keeps resetting the machine but the budget is honoured
	test.ExpectSuccess(t, slices.Contains(log.Drain(), "ce: reset signal"))
	test.ExpectSuccess(t, calc.CPU.Cycles < 1000)
}

func TestDisplay(t *testing.T) {
	calc, _ := newCalc(t, map[int][]uint8{
		0x00: {
			0x21, 0x00, 0x00, 0xd4, // LD HL,0xd40000
			0x36, 0xff, // LD (HL),0xff
			0x23,       // INC HL
			0x36, 0xff, // LD (HL),0xff
			0x3e, 0x01, // LD A,1
			0x32, 0x18, 0x00, 0xe3, // LD (0xe30018),A
			0x18, 0xfe, // JR 0x0f
		},
	})

	fb := make([]uint32, peripherals.LCDWidth*peripherals.LCDHeight)
	calc.Render(fb)
	test.ExpectEquality(t, fb[0], uint32(peripherals.Black))
	test.ExpectFailure(t, calc.IsDisplayOn())

	calc.Run(clocks.CyclesPerFrame*3 + 1000)
	calc.Render(fb)
	test.ExpectEquality(t, fb[0], uint32(0xffffffff))
	test.ExpectEquality(t, fb[1], uint32(peripherals.Black))
	test.ExpectSuccess(t, calc.IsDisplayOn())
	test.ExpectEquality(t, calc.LCD.Frames, uint64(3))
	test.ExpectEquality(t, calc.BacklightLevel(), uint8(peripherals.BacklightFull))

	calc.Mem.Write(peripherals.BacklightOrigin+0x24, 0x00)
	test.ExpectFailure(t, calc.IsDisplayOn())
}

func TestTimerInterrupt(t *testing.T) {
	calc, _ := newCalc(t, testrom.Timer)

	calc.Run(480000)
	test.ExpectEquality(t, calc.LastStop, backend.StopBudget)
	test.ExpectEquality(t, calc.Timer.Count, uint32(10))
	test.ExpectEquality(t, calc.Mem.RAM[0], uint8(10))
	test.ExpectSuccess(t, calc.CPU.Halted)
}

func TestKeypadInterrupt(t *testing.T) {
	calc, _ := newCalc(t, testrom.Spin)

	test.ExpectSuccess(t, calc.SetKey(6, 0, true))
	calc.Run(10)
	test.ExpectEquality(t, calc.Intc.Status&uint8(peripherals.IntKeypad), uint8(peripherals.IntKeypad))

	test.ExpectFailure(t, calc.SetKey(8, 8, true))
}

func TestReset(t *testing.T) {
	calc, _ := newCalc(t, testrom.Timer)
	calc.Run(100000)
	calc.SetKey(1, 1, true)

	calc.Reset()
	test.ExpectEquality(t, calc.CPU.PC, uint32(0))
	test.ExpectEquality(t, calc.Mem.RAM[0], uint8(0))
	test.ExpectEquality(t, calc.Timer.Count, uint32(0))
	test.ExpectFailure(t, calc.Keypad.Held(1, 1))
	test.ExpectEquality(t, calc.Mem.Flash[0], uint8(0x3e))
}

func TestResetBudget(t *testing.T) {
	calc, _ := newCalc(t, testrom.Spin)
	calc.Run(1000000)
	test.DemandEquality(t, calc.LastStop, backend.StopBudget)

	// the budget after a reset is measured from the reset
	calc.Reset()
	calc.Run(100)
	test.ExpectEquality(t, calc.LastStop, backend.StopBudget)
	test.ExpectEquality(t, calc.CPU.Cycles, uint64(102))
	test.ExpectEquality(t, calc.Sched.Now(), clocks.CyclesToTicks(102))
}

func save(t *testing.T, calc *hardware.Calc) []byte {
	t.Helper()
	blob := make([]byte, 5*1024*1024)
	_, err := savestate.Encode(blob, calc.Save)
	test.DemandSuccess(t, err)
	return blob
}

func TestSaveLoad(t *testing.T) {
	calc, _ := newCalc(t, testrom.Timer)
	calc.Run(100000)

	blob := save(t, calc)

	restored := hardware.NewCalc(nil)
	err := savestate.Decode(blob, func(r *savestate.Reader) error {
		restored.Load(r)
		return nil
	})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, restored.String(), calc.String())
	test.ExpectEquality(t, restored.LastStop, calc.LastStop)

	// both machines continue identically
	for range 5 {
		calc.Run(50000)
		restored.Run(50000)
		test.ExpectEquality(t, restored.CPU.String(), calc.CPU.String())
		test.ExpectEquality(t, restored.Sched.String(), calc.Sched.String())
		test.ExpectEquality(t, restored.Timer.String(), calc.Timer.String())
	}
	test.ExpectSuccess(t, bytes.Equal(restored.Mem.RAM, calc.Mem.RAM))

	// saving again gives the same blob
	test.ExpectSuccess(t, bytes.Equal(save(t, calc), save(t, restored)))
}

func TestLoadBadVariant(t *testing.T) {
	calc, _ := newCalc(t, testrom.Spin)
	blob := save(t, calc)

	// the variant is the first byte of the payload. the checksum is fixed
	// up so that it is the variant check that fails
	l := binary.LittleEndian.Uint32(blob[4:])
	blob[8] = 0x7f
	binary.LittleEndian.PutUint32(blob[8+l:], crc32.ChecksumIEEE(blob[8:8+l]))

	restored := hardware.NewCalc(nil)
	err := savestate.Decode(blob, func(r *savestate.Reader) error {
		restored.Load(r)
		return nil
	})
	test.ExpectSuccess(t, curated.Is(err, backend.DataCorruption))
	test.ExpectEquality(t, restored.Variant, device.Default)
}
