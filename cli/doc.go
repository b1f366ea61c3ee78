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

// Package cli implements the calcore command line tool. The command tree is
// built by NewRootCommand() and is run by the main package.
//
//	calcore backends
//	calcore detect <rom>
//	calcore run <rom> [--frames N] [--cycles N] [--digest] [--key r,c] [--power] [--save NAME] [--restore ID]
//	calcore slots list [--rom FILE]
//	calcore slots delete <id>
//	calcore varinfo <file>
//	calcore inspect <rom> [--cycles N] [--dot FILE]
//	calcore play <rom> [--tty DEV]
//	calcore perf <rom> [--duration D] [--leadtime D] [--profile cpu,mem,trace] [--profile-dir DIR]
//	calcore version
//
// Global flags select the backend and the preferences file. They also
// override individual preferences, turn on echoing of log entries to stderr
// and launch the statistics server.
package cli
