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

// Package digest creates SHA-1 fingerprints of framebuffers. The
// fingerprints are used by tests and by the command line tools to compare
// the output of two emulation runs.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
package digest

// Digest implementations generate a fingerprint of something the emulation
// has produced.
type Digest interface {
	Hash() string
	ResetDigest()
}
