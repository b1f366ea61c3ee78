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

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of entries a Logger will hold if no other
// capacity is specified.
const DefaultCapacity = 200

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

// Logger is a bounded first-in-first-out list of log entries. Once the
// capacity is reached the oldest entry is discarded to make room for the new
// entry.
//
// All functions are safe to call from more than one goroutine.
type Logger struct {
	crit     sync.Mutex
	capacity int
	entries  []Entry
	echo     io.Writer
}

// NewLogger is the preferred method of initialisation for the Logger type. A
// capacity of zero or less means DefaultCapacity.
func NewLogger(capacity int) *Logger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Logger{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Log adds an entry to the logger. The detail argument can be of any type but
// error and fmt.Stringer are handled specifically.
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}

	var s string
	switch d := detail.(type) {
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	case string:
		s = d
	default:
		s = fmt.Sprintf("%v", d)
	}

	l.log(tag, s)
}

// Logf adds a formatted entry to the logger.
func (l *Logger) Logf(perm Permission, tag string, pattern string, args ...any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.log(tag, fmt.Sprintf(pattern, args...))
}

func (l *Logger) log(tag, detail string) {
	// entries are single lines
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", " ")

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}

	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) >= l.capacity {
		n := copy(l.entries, l.entries[len(l.entries)-l.capacity+1:])
		l.entries = l.entries[:n]
	}
	l.entries = append(l.entries, e)

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
		io.WriteString(l.echo, "\n")
	}
}

// Drain returns every entry as a string, oldest first, and empties the
// logger. The copy and the clear happen under the same lock so no entry can
// be lost or returned twice.
func (l *Logger) Drain() []string {
	l.crit.Lock()
	defer l.crit.Unlock()

	d := make([]string, len(l.entries))
	for i, e := range l.entries {
		d[i] = e.String()
	}
	l.entries = l.entries[:0]

	return d
}

// Entries returns a copy of the current entries, oldest first. The logger is
// not changed.
func (l *Logger) Entries() []Entry {
	l.crit.Lock()
	defer l.crit.Unlock()

	c := make([]Entry, len(l.entries))
	copy(c, l.entries)
	return c
}

// Len returns the number of entries currently held.
func (l *Logger) Len() int {
	l.crit.Lock()
	defer l.crit.Unlock()
	return len(l.entries)
}

// Capacity returns the maximum number of entries the logger will hold.
func (l *Logger) Capacity() int {
	return l.capacity
}

// Clear all entries.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

// Write contents of logger to io.Writer. Returns false if there was nothing
// to write.
func (l *Logger) Write(output io.Writer) bool {
	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == 0 {
		return false
	}
	for _, e := range l.entries {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
	return true
}

// Tail writes the last N entries to io.Writer.
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if number > len(l.entries) {
		number = len(l.entries)
	}
	if number < 0 {
		number = 0
	}

	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

// SetEcho copies every new entry to io.Writer as it is logged. A nil writer
// turns echoing off.
func (l *Logger) SetEcho(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.echo = output
}
