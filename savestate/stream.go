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

package savestate

import (
	"encoding/binary"
	"fmt"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
)

// Writer accumulates little-endian values in memory.
type Writer struct {
	buf []byte
}

// NewWriter is the preferred method of initialisation for the Writer type.
// The capacity is a hint only.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Bool appends a single byte, 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// Uint16 appends two bytes.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint32 appends four bytes.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Uint64 appends eight bytes.
func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Bytes appends the slice as-is. The length is not recorded so the reader
// must know it in advance.
func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Reader consumes little-endian values from memory. The first problem
// encountered is remembered and all subsequent reads return zero values. The
// problem is available through Err().
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first problem encountered by the reader. It will always be
// a DataCorruption error.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of bytes not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Check records a DataCorruption error if ok is false. Used to validate
// values as they are read.
func (r *Reader) Check(ok bool, detail string) {
	if !ok && r.err == nil {
		r.err = curated.Errorf(backend.DataCorruption, fmt.Sprintf("%s (offset %d)", detail, r.pos))
	}
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.data)-r.pos {
		r.err = curated.Errorf(backend.DataCorruption, fmt.Sprintf("truncated payload (offset %d, need %d bytes)", r.pos, n))
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads a single byte. Any value other than 0 or 1 is corruption.
func (r *Reader) Bool() bool {
	v := r.Uint8()
	r.Check(v <= 1, "invalid boolean")
	return v == 1
}

// Uint16 reads two bytes.
func (r *Reader) Uint16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 reads four bytes.
func (r *Reader) Uint32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 reads eight bytes.
func (r *Reader) Uint64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Bytes fills dst with the next len(dst) bytes.
func (r *Reader) Bytes(dst []byte) {
	b := r.next(len(dst))
	if b == nil {
		return
	}
	copy(dst, b)
}
