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

package savestate_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/savestate"
	"github.com/calcore/calcore/test"
)

type sample struct {
	a uint8
	b uint16
	c uint32
	d uint64
	e bool
	f [5]byte
}

func (s *sample) save(w *savestate.Writer) {
	w.Uint8(s.a)
	w.Uint16(s.b)
	w.Uint32(s.c)
	w.Uint64(s.d)
	w.Bool(s.e)
	w.Bytes(s.f[:])
}

func (s *sample) load(r *savestate.Reader) error {
	s.a = r.Uint8()
	s.b = r.Uint16()
	s.c = r.Uint32()
	s.d = r.Uint64()
	s.e = r.Bool()
	r.Bytes(s.f[:])
	return r.Err()
}

func TestRoundTrip(t *testing.T) {
	in := sample{a: 1, b: 0x1234, c: 0xdeadbeef, d: 0x0102030405060708, e: true, f: [5]byte{5, 4, 3, 2, 1}}

	blob := make([]byte, 64)
	for i := range blob {
		blob[i] = 0xaa
	}

	n, err := savestate.Encode(blob, in.save)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, len(blob))

	// version marker is little-endian at the start of the blob
	v, ok := savestate.Peek(blob)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, savestate.Version)
	test.ExpectEquality(t, blob[0], uint8(savestate.Version&0xff))

	// padding has been zeroed
	test.ExpectEquality(t, blob[len(blob)-1], uint8(0))

	var out sample
	err = savestate.Decode(blob, out.load)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out, in)
}

func TestTooSmallForPayload(t *testing.T) {
	var in sample
	_, err := savestate.Encode(make([]byte, 16), in.save)
	test.ExpectFailure(t, err)
}

func TestShortBlob(t *testing.T) {
	var out sample
	for _, l := range []int{0, 1, 7} {
		err := savestate.Decode(make([]byte, l), out.load)
		test.ExpectSuccess(t, curated.Is(err, backend.DataCorruption), l)
	}

	_, ok := savestate.Peek([]byte{1, 2, 3})
	test.ExpectFailure(t, ok)
}

func TestVersionMismatch(t *testing.T) {
	var in, out sample
	blob := make([]byte, 64)
	_, err := savestate.Encode(blob, in.save)
	test.DemandSuccess(t, err)

	blob[0] ^= 0xff
	err = savestate.Decode(blob, out.load)
	test.ExpectSuccess(t, curated.Is(err, backend.VersionMismatch))

	// eight zero bytes is a version mismatch and not corruption because the
	// marker is checked first
	err = savestate.Decode(make([]byte, 8), out.load)
	test.ExpectSuccess(t, curated.Is(err, backend.VersionMismatch))
}

func TestCorruption(t *testing.T) {
	var in sample
	blob := make([]byte, 64)
	_, err := savestate.Encode(blob, in.save)
	test.DemandSuccess(t, err)

	// payload byte flipped
	flipped := append([]byte{}, blob...)
	flipped[10] ^= 0x01
	var out sample
	test.ExpectSuccess(t, curated.Is(savestate.Decode(flipped, out.load), backend.DataCorruption))

	// payload length too long for blob
	long := append([]byte{}, blob...)
	binary.LittleEndian.PutUint32(long[4:], 1000)
	test.ExpectSuccess(t, curated.Is(savestate.Decode(long, out.load), backend.DataCorruption))

	// truncated blob
	test.ExpectSuccess(t, curated.Is(savestate.Decode(blob[:12], out.load), backend.DataCorruption))

	// valid framing but the payload is shorter than the reader expects
	short := make([]byte, 64)
	_, err = savestate.Encode(short, func(w *savestate.Writer) { w.Uint8(1) })
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(savestate.Decode(short, out.load), backend.DataCorruption))

	// payload with unused bytes
	extra := make([]byte, 64)
	_, err = savestate.Encode(extra, func(w *savestate.Writer) {
		in.save(w)
		w.Uint8(0xff)
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(savestate.Decode(extra, out.load), backend.DataCorruption))

	// an invalid boolean
	badBool := make([]byte, 64)
	_, err = savestate.Encode(badBool, func(w *savestate.Writer) { w.Uint8(2) })
	test.DemandSuccess(t, err)
	err = savestate.Decode(badBool, func(r *savestate.Reader) error {
		r.Bool()
		return r.Err()
	})
	test.ExpectSuccess(t, curated.Is(err, backend.DataCorruption))
}

func TestPayloadError(t *testing.T) {
	var in sample
	blob := make([]byte, 64)
	_, err := savestate.Encode(blob, in.save)
	test.DemandSuccess(t, err)

	// errors from the payload function are reported as corruption
	cause := errors.New("bad register value")
	err = savestate.Decode(blob, func(r *savestate.Reader) error {
		return cause
	})
	test.ExpectSuccess(t, curated.Is(err, backend.DataCorruption))
	test.ExpectSuccess(t, errors.Is(err, cause))
}

func TestTrim(t *testing.T) {
	in := sample{a: 9, c: 0x01020304, e: true}

	blob := make([]byte, 64)
	_, err := savestate.Encode(blob, in.save)
	test.DemandSuccess(t, err)

	trimmed, ok := savestate.Trim(blob)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(trimmed), savestate.Overhead+21)

	// a trimmed blob decodes the same as the original
	var out sample
	test.DemandSuccess(t, savestate.Decode(trimmed, out.load))
	test.ExpectEquality(t, out, in)

	// a blob cut short of its declared payload cannot be trimmed
	_, ok = savestate.Trim(blob[:20])
	test.ExpectFailure(t, ok)
	_, ok = savestate.Trim(blob[:4])
	test.ExpectFailure(t, ok)
}
