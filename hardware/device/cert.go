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
	"encoding/binary"

	"github.com/calcore/calcore/curated"
)

// Error patterns for certificate fields.
const (
	FieldTruncated = "device: certificate field truncated (%d bytes, need %d)"
	FieldLength    = "device: certificate field %#04x cannot hold %d bytes"
)

// Tags of the fields that make up the device information.
const (
	TagCertificate = 0x800f
	TagModel       = 0x8012
	TagChain1      = 0x8021
	TagChain2      = 0x8032
	TagChain3      = 0x80a1
	TagDevice      = 0x80c2
)

// Field is a tagged field from the certificate area.
type Field struct {
	Tag      uint16
	Contents []byte
}

// ParseField parses the field at the start of data. Returns the field and
// the number of bytes it occupies, including the tag and length. The
// contents of the field refer to the data slice and are not copied.
func ParseField(data []byte) (Field, int, error) {
	if len(data) < 2 {
		return Field{}, 0, curated.Errorf(FieldTruncated, len(data), 2)
	}

	tag := binary.BigEndian.Uint16(data)
	hdr := 2
	var size uint64

	switch n := tag & 0x0f; n {
	case 0x0d:
		hdr += 1
		if len(data) < hdr {
			return Field{}, 0, curated.Errorf(FieldTruncated, len(data), hdr)
		}
		size = uint64(data[2])
	case 0x0e:
		hdr += 2
		if len(data) < hdr {
			return Field{}, 0, curated.Errorf(FieldTruncated, len(data), hdr)
		}
		size = uint64(binary.BigEndian.Uint16(data[2:]))
	case 0x0f:
		hdr += 4
		if len(data) < hdr {
			return Field{}, 0, curated.Errorf(FieldTruncated, len(data), hdr)
		}
		size = uint64(binary.BigEndian.Uint32(data[2:]))
	default:
		size = uint64(n)
	}

	if size > uint64(len(data)-hdr) {
		return Field{}, 0, curated.Errorf(FieldTruncated, len(data), uint64(hdr)+size)
	}

	end := hdr + int(size)
	return Field{Tag: tag, Contents: data[hdr:end]}, end, nil
}

// EncodeField is the inverse of ParseField. The length nibble of the tag
// must be able to describe the length of the contents.
func EncodeField(tag uint16, contents []byte) ([]byte, error) {
	n := len(contents)

	var hdr []byte
	switch nib := tag & 0x0f; nib {
	case 0x0d:
		if n > 0xff {
			return nil, curated.Errorf(FieldLength, tag, n)
		}
		hdr = []byte{byte(tag >> 8), byte(tag), byte(n)}
	case 0x0e:
		if n > 0xffff {
			return nil, curated.Errorf(FieldLength, tag, n)
		}
		hdr = binary.BigEndian.AppendUint16([]byte{byte(tag >> 8), byte(tag)}, uint16(n))
	case 0x0f:
		if uint64(n) > 0xffffffff {
			return nil, curated.Errorf(FieldLength, tag, n)
		}
		hdr = binary.BigEndian.AppendUint32([]byte{byte(tag >> 8), byte(tag)}, uint32(n))
	default:
		if n != int(nib) {
			return nil, curated.Errorf(FieldLength, tag, n)
		}
		hdr = []byte{byte(tag >> 8), byte(tag)}
	}

	return append(hdr, contents...), nil
}

// DeviceInfoField returns the certificate field that identifies the model
// and device ids. Placing the field at one of the certificate offsets of a
// ROM image makes the image detectable.
func DeviceInfoField(model uint8, device uint8) []byte {
	chain := []Field{
		{Tag: TagModel, Contents: []byte{model, 0x00}},
		{Tag: TagChain1, Contents: []byte{0x00}},
		{Tag: TagChain2, Contents: []byte{0x00, 0x00}},
		{Tag: TagChain3, Contents: []byte{0x00}},
		{Tag: TagDevice, Contents: []byte{0x00, device}},
	}

	var inner []byte
	for _, f := range chain {
		b, err := EncodeField(f.Tag, f.Contents)
		if err != nil {
			panic(err)
		}
		inner = append(inner, b...)
	}

	b, err := EncodeField(TagCertificate, inner)
	if err != nil {
		panic(err)
	}
	return b
}
