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

package device

import "fmt"

// Variant is the calculator model.
type Variant int

// List of valid Variant values.
const (
	TI84PCE Variant = iota
	TI83PCE
	TI82AEP
)

// Default is the variant used when detection fails.
const Default = TI84PCE

func (v Variant) String() string {
	switch v {
	case TI84PCE:
		return "TI-84 Plus CE"
	case TI83PCE:
		return "TI-83 Premium CE"
	case TI82AEP:
		return "TI-82 Advanced Edition Python"
	}
	return fmt.Sprintf("variant %d", int(v))
}

// Valid returns true if the variant is one of the known values.
func (v Variant) Valid() bool {
	return v >= TI84PCE && v <= TI82AEP
}

// model and device ids found in the certificate
const (
	modelCE   = 0x13
	modelAEP  = 0x15
	deviceCE  = 0x00
	deviceAlt = 0x01
)

var variants = []struct {
	model   uint8
	device  uint8
	variant Variant
}{
	{model: modelCE, device: deviceCE, variant: TI84PCE},
	{model: modelCE, device: deviceAlt, variant: TI83PCE},
	{model: modelAEP, device: deviceAlt, variant: TI82AEP},
}

// Lookup returns the variant for the model and device ids. The boolean is
// false if the pair is not recognised.
func Lookup(model, device uint8) (Variant, bool) {
	for _, v := range variants {
		if v.model == model && v.device == device {
			return v.variant, true
		}
	}
	return Default, false
}

// Identify returns the model and device ids for a variant. Used to build
// certificates for a variant.
func Identify(v Variant) (model uint8, device uint8) {
	for _, e := range variants {
		if e.variant == v {
			return e.model, e.device
		}
	}
	return modelCE, deviceCE
}
