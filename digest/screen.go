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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// Framebuffer returns the SHA-1 hex string of a single ARGB8888 framebuffer.
func Framebuffer(pixels []uint32) string {
	return fmt.Sprintf("%x", sha1.Sum(pixelBytes(nil, pixels)))
}

// convert pixels to bytes, reusing buf if it is large enough
func pixelBytes(buf []byte, pixels []uint32) []byte {
	l := len(pixels) * 4
	if cap(buf) < l {
		buf = make([]byte, l)
	}
	buf = buf[:l]
	for i, p := range pixels {
		binary.LittleEndian.PutUint32(buf[i*4:], p)
	}
	return buf
}

// Screen is the digest of the most recent frame only.
type Screen struct {
	digest [sha1.Size]byte
	buf    []byte
}

// NewScreen is the preferred method of initialisation for the Screen type.
func NewScreen() *Screen {
	return &Screen{}
}

// Hash implements the Digest interface.
func (dig *Screen) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Screen) ResetDigest() {
	clear(dig.digest[:])
}

// Frame replaces the digest with that of the supplied pixels.
func (dig *Screen) Frame(pixels []uint32) {
	dig.buf = pixelBytes(dig.buf, pixels)
	dig.digest = sha1.Sum(dig.buf)
}
