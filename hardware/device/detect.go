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

import (
	"fmt"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/logger"
)

// the certificate can be found at one of these offsets in flash
const (
	firstOffset = 0x20000
	lastOffset  = 0x40000
	offsetStep  = 0x10000
)

// Result of device detection.
type Result struct {
	Variant Variant

	// ids found in the certificate. only meaningful if Found is true
	Model  uint8
	Device uint8
	Found  bool

	// Recognised is true if the ids were found and are in the variant table
	Recognised bool

	// offset of the certificate in flash
	Offset int
}

func (r Result) String() string {
	if !r.Found {
		return fmt.Sprintf("variant=%s (default)", r.Variant)
	}
	s := fmt.Sprintf("variant=%s model=%#02x device=%#02x offset=%#05x", r.Variant, r.Model, r.Device, r.Offset)
	if !r.Recognised {
		s = fmt.Sprintf("%s (default)", s)
	}
	return s
}

// Detect examines the certificate area of flash and returns the variant the
// ROM was made for. If the variant cannot be determined the Default variant
// is returned and a warning is logged to the sink.
func Detect(flash []byte, sink logger.Sink) Result {
	if sink == nil {
		sink = logger.Discard
	}

	res := Result{Variant: Default}

	for offset := firstOffset; offset < lastOffset && offset < len(flash); offset += offsetStep {
		outer, _, err := ParseField(flash[offset:])
		if err != nil {
			break
		}
		if outer.Tag != TagCertificate {
			continue
		}

		model, dev, err := deviceInfo(outer.Contents)
		if err != nil {
			break
		}

		res.Model = model
		res.Device = dev
		res.Found = true
		res.Offset = offset
		sink.Logf(logger.Allow, "device", "info from certificate: device %#02x, model %#02x", dev, model)

		if v, ok := Lookup(model, dev); ok {
			res.Variant = v
			res.Recognised = true
			return res
		}
		break
	}

	if res.Found {
		sink.Log(logger.Allow, "device", curated.Errorf(backend.UnrecognizedDevice, res.Model, res.Device))
	}
	sink.Log(logger.Allow, "device", "could not determine device type")

	return res
}

// walk the chain of fields inside the certificate and return the model and
// device ids. each field in the chain immediately follows the previous one.
func deviceInfo(data []byte) (uint8, uint8, error) {
	chain := []uint16{TagModel, TagChain1, TagChain2, TagChain3, TagDevice}

	var model, dev uint8

	for _, tag := range chain {
		f, n, err := ParseField(data)
		if err != nil {
			return 0, 0, err
		}
		if f.Tag != tag {
			return 0, 0, fmt.Errorf("device: unexpected field %#04x (expecting %#04x)", f.Tag, tag)
		}

		switch tag {
		case TagModel:
			if len(f.Contents) < 1 {
				return 0, 0, curated.Errorf(FieldTruncated, len(f.Contents), 1)
			}
			model = f.Contents[0]
		case TagDevice:
			if len(f.Contents) < 2 {
				return 0, 0, curated.Errorf(FieldTruncated, len(f.Contents), 2)
			}
			dev = f.Contents[1]
		}

		data = data[n:]
	}

	return model, dev, nil
}
