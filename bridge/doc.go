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

// Package bridge is the primitive operation surface used by hosts that
// cannot deal with Go types directly. Only integers, booleans, strings and
// slices of bytes and pixels cross the bridge. Errors are reported as the
// status codes defined in the backend package.
//
// A Bridge allows one live engine at a time. Engines are referred to by a
// Handle, which is never zero for a live engine. Operations given a handle
// that does not refer to the live engine are quiet no-ops or return
// backend.StatusInvalidHandle.
//
// Every operation apart from DrainLogs() is serialised by a single lock.
// DrainLogs() only takes the lock of the log, so a host can collect log
// output while another goroutine is inside RunCycles().
package bridge
