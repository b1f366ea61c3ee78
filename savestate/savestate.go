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
	"hash/crc32"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
)

// Version is the marker at the start of every state blob. It changes
// whenever the layout of the payload changes.
const Version uint32 = 0xCA1C0E01

// MinimumSize is the smallest blob that can be considered for decoding.
const MinimumSize = 8

// the fixed parts of a blob: version marker, payload length and checksum
const (
	headerLen  = 8
	trailerLen = 4
)

// Overhead is the number of bytes in a blob that are not payload.
const Overhead = headerLen + trailerLen

// Encode writes a blob to the out buffer. The entire buffer is used: any
// space after the payload is zeroed. Returns the number of bytes written,
// which is always len(out).
//
// It is an error if the payload does not fit in the buffer. That is a fault
// in the engine declaring the state size and not something a host can
// correct.
func Encode(out []byte, payload func(w *Writer)) (int, error) {
	w := NewWriter(len(out))
	payload(w)

	if w.Len()+Overhead > len(out) {
		return 0, fmt.Errorf("savestate: payload of %d bytes does not fit in %d bytes", w.Len(), len(out))
	}

	binary.LittleEndian.PutUint32(out[0:], Version)
	binary.LittleEndian.PutUint32(out[4:], uint32(w.Len()))
	n := copy(out[headerLen:], w.buf)
	binary.LittleEndian.PutUint32(out[headerLen+n:], crc32.ChecksumIEEE(w.buf))

	clear(out[headerLen+n+trailerLen:])

	return len(out), nil
}

// Decode checks the blob and hands the payload to the supplied function. The
// function should build its state somewhere it can be discarded if an error
// is returned.
//
// The version marker is checked before anything else in the blob is looked
// at. A blob that is too short or which fails the checksum is a
// DataCorruption error. A blob with the wrong marker is a VersionMismatch
// error.
func Decode(data []byte, payload func(r *Reader) error) error {
	if len(data) < MinimumSize {
		return curated.Errorf(backend.DataCorruption, fmt.Sprintf("blob of %d bytes is too short", len(data)))
	}

	v := binary.LittleEndian.Uint32(data[0:])
	if v != Version {
		return curated.Errorf(backend.VersionMismatch, v, Version)
	}

	l := uint64(binary.LittleEndian.Uint32(data[4:]))
	if uint64(headerLen)+l+uint64(trailerLen) > uint64(len(data)) {
		return curated.Errorf(backend.DataCorruption, fmt.Sprintf("payload length %d exceeds blob", l))
	}

	p := data[headerLen : headerLen+int(l)]
	crc := binary.LittleEndian.Uint32(data[headerLen+int(l):])
	if crc != crc32.ChecksumIEEE(p) {
		return curated.Errorf(backend.DataCorruption, "checksum mismatch")
	}

	r := NewReader(p)
	if err := payload(r); err != nil {
		if curated.Has(err, backend.DataCorruption) {
			return err
		}
		return curated.Errorf(backend.DataCorruption, err)
	}
	if r.Err() != nil {
		return r.Err()
	}
	if r.Remaining() != 0 {
		return curated.Errorf(backend.DataCorruption, fmt.Sprintf("%d unused payload bytes", r.Remaining()))
	}

	return nil
}

// Peek returns the version marker of a blob without checking anything else.
// The boolean is false if the blob is too short to have a marker.
func Peek(data []byte) (uint32, bool) {
	if len(data) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data), true
}

// Trim returns the blob without the zero padding that follows the checksum.
// The trimmed blob can be decoded in exactly the same way as the untrimmed
// blob. The returned slice shares memory with the data argument. The boolean
// is false if the blob is too short for the payload length it declares.
func Trim(data []byte) ([]byte, bool) {
	if len(data) < MinimumSize {
		return nil, false
	}
	l := uint64(binary.LittleEndian.Uint32(data[4:]))
	n := uint64(headerLen) + l + uint64(trailerLen)
	if n > uint64(len(data)) {
		return nil, false
	}
	return data[:n], true
}
