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

package memory

import (
	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/savestate"
)

// Areas of the 24bit address space.
const (
	AddressMask = 0xffffff

	FlashOrigin = 0x000000
	FlashSize   = 0x400000
	FlashErased = 0xff

	RAMOrigin = 0xd00000
	RAMSize   = 0x065800

	VRAMOrigin = 0xd40000
	VRAMSize   = backend.ScreenWidth * backend.ScreenHeight * 2

	MMIOOrigin = 0xe00000
)

// Device is implemented by memory mapped peripherals. The offset is relative
// to the base address of the mapping.
type Device interface {
	Read(offset uint32) uint8
	Write(offset uint32, data uint8)
}

type mapping struct {
	base uint32
	size uint32
	dev  Device
}

func (m mapping) contains(address uint32) bool {
	return address >= m.base && address-m.base < m.size
}

// Memory is the address space of the CPU. Flash is read-only to the CPU. RAM
// includes the video memory. Everything from MMIOOrigin upwards is routed to
// the mapped peripherals. I/O ports are a separate 16bit address space.
type Memory struct {
	Flash []uint8
	RAM   []uint8

	mmio  []mapping
	ports []mapping
}

// NewMemory is the preferred method of initialisation for the Memory type.
// Flash is in the erased state and RAM is zeroed.
func NewMemory() *Memory {
	mem := &Memory{
		Flash: make([]uint8, FlashSize),
		RAM:   make([]uint8, RAMSize),
	}
	mem.EraseFlash()
	return mem
}

// Map a peripheral into the MMIO area.
func (mem *Memory) Map(base uint32, size uint32, dev Device) {
	mem.mmio = append(mem.mmio, mapping{base: base & AddressMask, size: size, dev: dev})
}

// MapPort maps a peripheral into the I/O port space.
func (mem *Memory) MapPort(base uint16, size uint16, dev Device) {
	mem.ports = append(mem.ports, mapping{base: uint32(base), size: uint32(size), dev: dev})
}

// EraseFlash sets every byte of flash to the erased value.
func (mem *Memory) EraseFlash() {
	for i := range mem.Flash {
		mem.Flash[i] = FlashErased
	}
}

// LoadFlash erases flash and copies the ROM into it. The ROM slice is not
// retained.
func (mem *Memory) LoadFlash(rom []uint8) error {
	if len(rom) == 0 {
		return curated.Errorf(backend.EmptyInput)
	}
	if len(rom) > FlashSize {
		return curated.Errorf(backend.TooLarge, len(rom), FlashSize)
	}
	mem.EraseFlash()
	copy(mem.Flash, rom)
	return nil
}

// Reset clears RAM. Flash is not changed.
func (mem *Memory) Reset() {
	clear(mem.RAM)
}

// Read a byte from the address space. Unmapped addresses read as zero.
func (mem *Memory) Read(address uint32) uint8 {
	address &= AddressMask

	switch {
	case address < FlashSize:
		return mem.Flash[address]
	case address >= RAMOrigin && address < RAMOrigin+RAMSize:
		return mem.RAM[address-RAMOrigin]
	case address >= MMIOOrigin:
		for _, m := range mem.mmio {
			if m.contains(address) {
				return m.dev.Read(address - m.base)
			}
		}
	}

	return 0
}

// Write a byte to the address space. Writes to flash and to unmapped
// addresses are ignored.
func (mem *Memory) Write(address uint32, data uint8) {
	address &= AddressMask

	switch {
	case address >= RAMOrigin && address < RAMOrigin+RAMSize:
		mem.RAM[address-RAMOrigin] = data
	case address >= MMIOOrigin:
		for _, m := range mem.mmio {
			if m.contains(address) {
				m.dev.Write(address-m.base, data)
				return
			}
		}
	}
}

// In reads from an I/O port. Unmapped ports read as zero.
func (mem *Memory) In(port uint16) uint8 {
	for _, m := range mem.ports {
		if m.contains(uint32(port)) {
			return m.dev.Read(uint32(port) - m.base)
		}
	}
	return 0
}

// Out writes to an I/O port. Writes to unmapped ports are ignored.
func (mem *Memory) Out(port uint16, data uint8) {
	for _, m := range mem.ports {
		if m.contains(uint32(port)) {
			m.dev.Write(uint32(port)-m.base, data)
			return
		}
	}
}

// VRAM returns the slice of RAM used by the display, starting at the
// address given. The slice is shorter than VRAMSize if the address is too
// close to the end of RAM. Returns nil if the address is not in RAM.
func (mem *Memory) VRAM(address uint32) []uint8 {
	address &= AddressMask
	if address < RAMOrigin || address >= RAMOrigin+RAMSize {
		return nil
	}
	o := address - RAMOrigin
	e := min(o+VRAMSize, RAMSize)
	return mem.RAM[o:e]
}

// Save flash and RAM.
func (mem *Memory) Save(w *savestate.Writer) {
	w.Bytes(mem.Flash)
	w.Bytes(mem.RAM)
}

// Load flash and RAM.
func (mem *Memory) Load(r *savestate.Reader) {
	r.Bytes(mem.Flash)
	r.Bytes(mem.RAM)
}
