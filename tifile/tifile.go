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

package tifile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/calcore/calcore/curated"
)

// Sentinel error patterns.
const (
	TooShort       = "tifile: file too short"
	BadMagic       = "tifile: bad magic (expected **TI83F*)"
	TruncatedEntry = "tifile: truncated variable entry"
	BadChecksum    = "tifile: bad checksum: expected %#04x, got %#04x"
)

// Magic is the signature at the start of every file.
var Magic = []byte("**TI83F*")

const (
	headerLen      = 55
	dataLenOffset  = 53
	entryHeaderLen = 17
	checksumLen    = 2

	// the smallest possible file
	minFileSize = headerLen + entryHeaderLen + checksumLen
)

// the entry header size field of a standard entry
const standardEntryHeader = 0x0d

// the bytes that follow the magic in the file header
var signature = []byte{0x1a, 0x0a, 0x00}

// Entry is a single variable in a file.
type Entry struct {
	Type     VarType
	Name     [8]byte
	Version  uint8
	Archived bool

	// the variable data. for programs and appvars this includes the two
	// byte size prefix
	Data []byte
}

// NameString returns the name with the padding removed.
func (e Entry) NameString() string {
	return string(e.Name[:e.NameLen()])
}

// NameLen returns the length of the name without padding.
func (e Entry) NameLen() int {
	if i := bytes.IndexByte(e.Name[:], 0); i >= 0 {
		return i
	}
	return len(e.Name)
}

// IsAsmProgram returns true if the entry is a program containing eZ80
// machine code. Such programs start with the bytes 0xef 0x7b after the size
// prefix.
func (e Entry) IsAsmProgram() bool {
	return e.Type.IsProgram() && len(e.Data) >= 4 && e.Data[2] == 0xef && e.Data[3] == 0x7b
}

func (e Entry) String() string {
	s := fmt.Sprintf("%-8s %-17s %6d bytes", e.NameString(), e.Type, len(e.Data))
	if e.IsAsmProgram() {
		s = fmt.Sprintf("%s asm", s)
	}
	if e.Archived {
		s = fmt.Sprintf("%s archived", s)
	}
	return s
}

// File is a parsed variable file.
type File struct {
	Comment string
	Entries []Entry
}

func checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// Parse a variable file.
func Parse(data []byte) (*File, error) {
	if len(data) < minFileSize {
		return nil, curated.Errorf(TooShort)
	}

	if !bytes.Equal(data[:len(Magic)], Magic) {
		return nil, curated.Errorf(BadMagic)
	}

	dataLen := int(binary.LittleEndian.Uint16(data[dataLenOffset:]))
	if len(data) < headerLen+dataLen+checksumLen {
		return nil, curated.Errorf(TooShort)
	}

	section := data[headerLen : headerLen+dataLen]
	stored := binary.LittleEndian.Uint16(data[headerLen+dataLen:])
	if computed := checksum(section); computed != stored {
		return nil, curated.Errorf(BadChecksum, stored, computed)
	}

	f := &File{
		Comment: string(bytes.TrimRight(data[len(Magic)+len(signature):dataLenOffset], "\x00")),
	}

	offset := 0
	for offset+entryHeaderLen <= len(section) {
		h := section[offset:]
		l := int(binary.LittleEndian.Uint16(h[2:]))

		e := Entry{
			Type:     VarType(h[4]),
			Version:  h[13],
			Archived: h[14]&0x80 == 0x80,
		}
		copy(e.Name[:], h[5:13])

		start := offset + entryHeaderLen
		end := start + l
		if end > len(section) {
			return nil, curated.Errorf(TruncatedEntry)
		}
		e.Data = bytes.Clone(section[start:end])

		f.Entries = append(f.Entries, e)
		offset = end
	}

	return f, nil
}

// Bytes returns the file in the variable file format.
func (f *File) Bytes() ([]byte, error) {
	var section bytes.Buffer
	for _, e := range f.Entries {
		if len(e.Data) > 0xffff {
			return nil, fmt.Errorf("tifile: %s: data too long", e.NameString())
		}

		var flag uint8
		if e.Archived {
			flag = 0x80
		}

		binary.Write(&section, binary.LittleEndian, uint16(standardEntryHeader))
		binary.Write(&section, binary.LittleEndian, uint16(len(e.Data)))
		section.WriteByte(uint8(e.Type))
		section.Write(e.Name[:])
		section.WriteByte(e.Version)
		section.WriteByte(flag)
		binary.Write(&section, binary.LittleEndian, uint16(len(e.Data)))
		section.Write(e.Data)
	}

	if section.Len() > 0xffff {
		return nil, fmt.Errorf("tifile: entries too long")
	}

	comment := make([]byte, dataLenOffset-len(Magic)-len(signature))
	if len(f.Comment) > len(comment) {
		return nil, fmt.Errorf("tifile: comment too long")
	}
	copy(comment, f.Comment)

	var out bytes.Buffer
	out.Write(Magic)
	out.Write(signature)
	out.Write(comment)
	binary.Write(&out, binary.LittleEndian, uint16(section.Len()))
	out.Write(section.Bytes())
	binary.Write(&out, binary.LittleEndian, checksum(section.Bytes()))

	return out.Bytes(), nil
}

// NewEntry creates an entry with the name. Names longer than eight bytes
// are truncated.
func NewEntry(t VarType, name string, data []byte) Entry {
	e := Entry{
		Type: t,
		Data: data,
	}
	copy(e.Name[:], name)
	return e
}
