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

package memory_test

import (
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/hardware/memory"
	"github.com/calcore/calcore/test"
)

type registers struct {
	data [16]uint8
}

func (r *registers) Read(offset uint32) uint8 {
	return r.data[offset]
}

func (r *registers) Write(offset uint32, data uint8) {
	r.data[offset] = data
}

func TestLoadFlash(t *testing.T) {
	mem := memory.NewMemory()
	test.ExpectEquality(t, mem.Read(0), uint8(memory.FlashErased))

	err := mem.LoadFlash(nil)
	test.ExpectSuccess(t, curated.Is(err, backend.EmptyInput))

	err = mem.LoadFlash(make([]uint8, memory.FlashSize+1))
	test.ExpectSuccess(t, curated.Is(err, backend.TooLarge))

	// a rom of exactly the flash size is fine
	err = mem.LoadFlash(make([]uint8, memory.FlashSize))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mem.Read(memory.FlashSize-1), uint8(0))

	// loading a shorter rom leaves the remainder erased
	err = mem.LoadFlash([]uint8{1, 2, 3})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mem.Read(2), uint8(3))
	test.ExpectEquality(t, mem.Read(3), uint8(memory.FlashErased))
	test.ExpectEquality(t, mem.Read(memory.FlashSize-1), uint8(memory.FlashErased))
}

func TestReadWrite(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.LoadFlash([]uint8{0x12}))

	// flash is read-only
	mem.Write(0, 0x34)
	test.ExpectEquality(t, mem.Read(0), uint8(0x12))

	mem.Write(memory.RAMOrigin, 0x56)
	test.ExpectEquality(t, mem.Read(memory.RAMOrigin), uint8(0x56))
	mem.Write(memory.RAMOrigin+memory.RAMSize-1, 0x78)
	test.ExpectEquality(t, mem.RAM[memory.RAMSize-1], uint8(0x78))

	// addresses wrap at 24 bits
	test.ExpectEquality(t, mem.Read(0x1000000+memory.RAMOrigin), uint8(0x56))

	// unmapped
	mem.Write(memory.RAMOrigin+memory.RAMSize, 0x9a)
	test.ExpectEquality(t, mem.Read(memory.RAMOrigin+memory.RAMSize), uint8(0))
	test.ExpectEquality(t, mem.Read(0x800000), uint8(0))

	mem.Reset()
	test.ExpectEquality(t, mem.Read(memory.RAMOrigin), uint8(0))
	test.ExpectEquality(t, mem.Read(0), uint8(0x12))
}

func TestMapping(t *testing.T) {
	mem := memory.NewMemory()

	a := &registers{}
	b := &registers{}
	mem.Map(0xf00000, 16, a)
	mem.Map(0xf20000, 16, b)
	mem.MapPort(0x0000, 16, a)

	mem.Write(0xf00004, 0x11)
	mem.Write(0xf20004, 0x22)
	test.ExpectEquality(t, a.data[4], uint8(0x11))
	test.ExpectEquality(t, b.data[4], uint8(0x22))
	test.ExpectEquality(t, mem.Read(0xf20004), uint8(0x22))

	// outside of the mapped size
	mem.Write(0xf00010, 0x33)
	test.ExpectEquality(t, mem.Read(0xf00010), uint8(0))

	// ports
	mem.Out(0x0004, 0x44)
	test.ExpectEquality(t, a.data[4], uint8(0x44))
	test.ExpectEquality(t, mem.In(0x0004), uint8(0x44))
	test.ExpectEquality(t, mem.In(0x1000), uint8(0))
}

func TestVRAM(t *testing.T) {
	mem := memory.NewMemory()

	v := mem.VRAM(memory.VRAMOrigin)
	test.ExpectEquality(t, len(v), memory.VRAMSize)

	mem.Write(memory.VRAMOrigin, 0xff)
	test.ExpectEquality(t, v[0], uint8(0xff))

	// video memory near the end of RAM is truncated
	v = mem.VRAM(memory.RAMOrigin + memory.RAMSize - 10)
	test.ExpectEquality(t, len(v), 10)

	test.ExpectEquality(t, len(mem.VRAM(0)), 0)
}
