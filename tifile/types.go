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

package tifile

import "fmt"

// VarType is the type byte of a variable entry.
type VarType uint8

// List of known VarType values.
const (
	RealNumber       VarType = 0x00
	RealList         VarType = 0x01
	Matrix           VarType = 0x02
	Equation         VarType = 0x03
	String           VarType = 0x04
	Program          VarType = 0x05
	ProtectedProgram VarType = 0x06
	Picture          VarType = 0x07
	GDB              VarType = 0x08
	Complex          VarType = 0x0c
	ComplexList      VarType = 0x0d
	AppVar           VarType = 0x15
	Group            VarType = 0x17
	OS               VarType = 0x23
	FlashApp         VarType = 0x24
)

var varTypeNames = map[VarType]string{
	RealNumber:       "real",
	RealList:         "list",
	Matrix:           "matrix",
	Equation:         "equation",
	String:           "string",
	Program:          "program",
	ProtectedProgram: "protected program",
	Picture:          "picture",
	GDB:              "gdb",
	Complex:          "complex",
	ComplexList:      "complex list",
	AppVar:           "appvar",
	Group:            "group",
	OS:               "os",
	FlashApp:         "flash app",
}

func (t VarType) String() string {
	if s, ok := varTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%#02x)", uint8(t))
}

// IsProgram returns true for regular and protected programs.
func (t VarType) IsProgram() bool {
	return t == Program || t == ProtectedProgram
}

// IsAppVar returns true for application variables.
func (t VarType) IsAppVar() bool {
	return t == AppVar
}
