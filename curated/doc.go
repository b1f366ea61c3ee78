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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() which takes a pattern and a list
// of values, in the same way as fmt.Errorf().
//
// The pattern identifies the error. Patterns that a caller is expected to
// test for should be declared as a const string in the package that returns
// them. For example, the backend package declares:
//
//	const EmptyInput = "backend: rom is empty"
//
// and a caller can test for that condition with:
//
//	if curated.Is(err, backend.EmptyInput) {
//		...
//	}
//
// Has() is similar but checks the whole chain of curated errors, for when
// the pattern of interest has been wrapped:
//
//	e := curated.Errorf("slots: %v", err)
//	curated.Has(e, backend.EmptyInput) // true
//
// The Error() implementation normalises the message so that duplicate
// adjacent parts are removed. Parts are separated by ": ". So a chain that
// would otherwise print as
//
//	backend: backend: rom is empty
//
// prints as
//
//	backend: rom is empty
//
// Curated errors also implement Unwrap(), returning the first error value
// given to Errorf(). This makes errors.Is() work through a curated wrapper
// for non-curated causes such as io.ErrUnexpectedEOF.
package curated
