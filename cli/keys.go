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

package cli

import "github.com/calcore/calcore/hardware/peripherals"

// list of ASCII codes for non-alphanumeric characters
const (
	keyInterrupt      = 3
	keyBackspace      = 8
	keyCarriageReturn = 13
	keyEsc            = 27
	keyDelete         = 127
)

// list of ASCII codes that can follow keyEsc and '[' in a cursor sequence
const (
	cursorUp       = 'A'
	cursorDown     = 'B'
	cursorForward  = 'C'
	cursorBackward = 'D'
)

// position of a key in the key matrix
type keyPos struct {
	row int
	col int
}

var (
	keyDown  = keyPos{7, 0}
	keyLeft  = keyPos{7, 1}
	keyRight = keyPos{7, 2}
	keyUp    = keyPos{7, 3}
	keyEnter = keyPos{6, 0}
	keyOn    = keyPos{peripherals.OnKeyRow, peripherals.OnKeyColumn}
	keyClear = keyPos{6, 6}
	keyDel   = keyPos{1, 7}
)

// keyboard characters and the calculator keys they press
var keyMap = map[byte]keyPos{
	'0': {3, 0},
	'1': {3, 1},
	'2': {4, 1},
	'3': {5, 1},
	'4': {3, 2},
	'5': {4, 2},
	'6': {5, 2},
	'7': {3, 3},
	'8': {4, 3},
	'9': {5, 3},
	'.': {4, 0},
	'+': {6, 1},
	'-': {6, 2},
	'*': {6, 3},
	'/': {6, 4},
	'^': {6, 5},
	'(': {4, 4},
	')': {5, 4},
	',': {3, 4},
	'~': {5, 0},
	'o': keyOn,
	'c': keyClear,
	'm': {1, 6},
	'g': {1, 0},
	'y': {1, 4},
	'a': {2, 7},
	's': {1, 5},
	'x': {3, 7},

	keyCarriageReturn: keyEnter,
	keyBackspace:      keyDel,
	keyDelete:         keyDel,
}

// actions requested by the keyboard that are not calculator keys
type action int

const (
	actionNone action = iota
	actionQuit
	actionRewind
)

// input decoded from the keyboard
type input struct {
	key    keyPos
	action action
}

// decodeInput converts the bytes read from the terminal into calculator keys
// and actions. Unrecognised bytes are ignored.
func decodeInput(b []byte) []input {
	var in []input

	for i := 0; i < len(b); i++ {
		c := b[i]

		switch c {
		case keyInterrupt, 'q':
			in = append(in, input{action: actionQuit})
			continue
		case 'u':
			in = append(in, input{action: actionRewind})
			continue
		case keyEsc:
			if i+2 < len(b) && b[i+1] == '[' {
				var k keyPos
				switch b[i+2] {
				case cursorUp:
					k = keyUp
				case cursorDown:
					k = keyDown
				case cursorForward:
					k = keyRight
				case cursorBackward:
					k = keyLeft
				default:
					i += 2
					continue
				}
				in = append(in, input{key: k})
				i += 2
			}
			continue
		}

		if k, ok := keyMap[c]; ok {
			in = append(in, input{key: k})
		}
	}

	return in
}
