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

package backend

import "github.com/calcore/calcore/curated"

// Error patterns returned by engines and the bridge. Test for them with
// curated.Is() or curated.Has().
const (
	AlreadyLive        = "backend: an engine instance is already live"
	InvalidHandle      = "backend: invalid handle"
	EmptyInput         = "backend: rom is empty"
	TooLarge           = "backend: rom too large (%d bytes, maximum %d)"
	UnrecognizedDevice = "backend: unrecognised device (model %#02x, device %#02x)"
	BufferTooSmall     = "backend: buffer too small (%d bytes, need %d)"
	DataCorruption     = "backend: state data corrupt: %v"
	VersionMismatch    = "backend: state version mismatch (%#08x, expected %#08x)"
	NotInitialised     = "backend: engine not initialised"
	UnknownBackend     = "backend: unknown backend (%s)"
)

// Status codes for the primitive operation surface. Negative values are
// errors.
const (
	StatusOK              = 0
	StatusInvalidHandle   = -1
	StatusEmptyInput      = -2
	StatusTooLarge        = -3
	StatusAlreadyLive     = -4
	StatusNotInitialised  = -5
	StatusUnknownBackend  = -6
	StatusBufferTooSmall  = -101
	StatusVersionMismatch = -103
	StatusDataCorruption  = -105
)

var statusCodes = []struct {
	pattern string
	status  int
}{
	{pattern: InvalidHandle, status: StatusInvalidHandle},
	{pattern: EmptyInput, status: StatusEmptyInput},
	{pattern: TooLarge, status: StatusTooLarge},
	{pattern: AlreadyLive, status: StatusAlreadyLive},
	{pattern: NotInitialised, status: StatusNotInitialised},
	{pattern: UnknownBackend, status: StatusUnknownBackend},
	{pattern: BufferTooSmall, status: StatusBufferTooSmall},
	{pattern: VersionMismatch, status: StatusVersionMismatch},
	{pattern: DataCorruption, status: StatusDataCorruption},
}

// Status maps an error to a status code. A nil error is StatusOK. An error
// that isn't one of the patterns above maps to StatusInvalidHandle, matching
// the catch-all failure code of the primitive surface.
func Status(err error) int {
	if err == nil {
		return StatusOK
	}

	for _, c := range statusCodes {
		if curated.Has(err, c.pattern) {
			return c.status
		}
	}

	return StatusInvalidHandle
}
