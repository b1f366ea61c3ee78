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

package test

import (
	"fmt"
	"sync"
)

// RingWriter is an io.Writer that retains only the last size bytes written
// to it. Useful for checking the tail of output that may grow without limit.
type RingWriter struct {
	crit sync.Mutex
	tail []byte
	size int
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type. The size argument must be greater than zero.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ring writer: size must be positive (%d)", size)
	}
	return &RingWriter{
		tail: make([]byte, 0, size),
		size: size,
	}, nil
}

// String returns the retained bytes, oldest first.
func (r *RingWriter) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()
	return string(r.tail)
}

// Reset discards all retained bytes.
func (r *RingWriter) Reset() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.tail = r.tail[:0]
}

// Write implements the io.Writer interface. It never fails.
func (r *RingWriter) Write(p []byte) (int, error) {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := len(p)
	if n >= r.size {
		r.tail = append(r.tail[:0], p[n-r.size:]...)
		return n, nil
	}

	if drop := len(r.tail) + n - r.size; drop > 0 {
		r.tail = append(r.tail[:0], r.tail[drop:]...)
	}
	r.tail = append(r.tail, p...)
	return n, nil
}
