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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".calcore"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The sub-path
// directory will be created if necessary. Either argument can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}

// getBasePath returns the base path joined with subPth, creating the
// directories if they do not already exist
func getBasePath(subPth string) (string, error) {
	base := baseResourcePath

	if _, err := os.Stat(baseResourcePath); err != nil {
		cnf, err := os.UserConfigDir()
		if err == nil {
			base = filepath.Join(cnf, baseResourcePath[1:])
		}
	}

	pth := filepath.Join(base, subPth)

	if _, err := os.Stat(pth); err == nil {
		return pth, nil
	}

	if err := os.MkdirAll(pth, 0700); err != nil {
		return "", err
	}

	return pth, nil
}
