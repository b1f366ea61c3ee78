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

// Package logger is the log sink for the emulation. There is no central
// logger; a Logger is created by the host and handed to each engine as a
// Sink.
//
// Each entry is made up of a tag and some detail. The tag names the
// component making the entry:
//
//	log.Log(logger.Allow, "device", "Could not determine device type")
//
// A Logger holds a bounded number of entries. When full, the oldest entry is
// discarded. The host periodically calls Drain() to collect and remove
// everything that has been logged since the last drain.
//
// The Permission interface decides whether an entry should be made at all.
// The Allow and Deny values are suitable for most purposes.
package logger
