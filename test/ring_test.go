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

package test_test

import (
	"fmt"
	"testing"

	"github.com/calcore/calcore/test"
)

func TestRingWriterSize(t *testing.T) {
	_, err := test.NewRingWriter(0)
	test.ExpectFailure(t, err)
	_, err = test.NewRingWriter(-1)
	test.ExpectFailure(t, err)
}

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(8)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.String(), "")

	fmt.Fprint(r, "ld a")
	test.ExpectEquality(t, r.String(), "ld a")

	// exactly filled
	fmt.Fprint(r, ",0x1")
	test.ExpectEquality(t, r.String(), "ld a,0x1")

	// oldest bytes are dropped
	fmt.Fprint(r, "2")
	test.ExpectEquality(t, r.String(), "d a,0x12")
	fmt.Fprint(r, "\nret")
	test.ExpectEquality(t, r.String(), "0x12\nret")

	// a write as long as the buffer replaces everything
	fmt.Fprint(r, "halt\nnop")
	test.ExpectEquality(t, r.String(), "halt\nnop")

	// a write longer than the buffer keeps only its own tail
	fmt.Fprint(r, "call 0x000038")
	test.ExpectEquality(t, r.String(), "0x000038")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")
	fmt.Fprint(r, "ei")
	test.ExpectEquality(t, r.String(), "ei")
}
