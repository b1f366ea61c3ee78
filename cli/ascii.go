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

import "strings"

// characters used for increasing levels of brightness
const asciiRamp = " .:-=+*#%@"

// luminance of an ARGB8888 pixel in the range 0 to 255
func luminance(p uint32) int {
	r := int(p>>16) & 0xff
	g := int(p>>8) & 0xff
	b := int(p) & 0xff
	return (r*299 + g*587 + b*114) / 1000
}

// asciiScreen renders the pixels as text of the given number of columns and
// rows. Each character is the average brightness of the block of pixels it
// covers. Missing pixels are treated as black.
func asciiScreen(pixels []uint32, width, height, cols, rows int) string {
	cols = max(min(cols, width), 1)
	rows = max(min(rows, height), 1)

	s := strings.Builder{}
	s.Grow((cols + 2) * rows)

	for cy := range rows {
		y0 := cy * height / rows
		y1 := (cy + 1) * height / rows
		for cx := range cols {
			x0 := cx * width / cols
			x1 := (cx + 1) * width / cols

			var sum, n int
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					i := y*width + x
					if i < len(pixels) {
						sum += luminance(pixels[i])
					}
					n++
				}
			}

			l := 0
			if n > 0 {
				l = sum / n
			}
			s.WriteByte(asciiRamp[l*(len(asciiRamp)-1)/255])
		}
		s.WriteString("\r\n")
	}

	return s.String()
}
