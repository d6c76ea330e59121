package background

import (
	"bytes"
	"encoding/binary"
)

// dpiScale returns the horizontal and vertical DPI relative to
// ReferenceDPI, or 1 when the file does not record a resolution.
func dpiScale(format string, data []byte) (float64, float64) {
	var dx, dy float64
	switch format {
	case "png":
		dx, dy = pngDPI(data)
	case "jpeg":
		dx, dy = jfifDPI(data)
	}
	if dx <= 0 || dy <= 0 {
		return 1, 1
	}
	return dx / ReferenceDPI, dy / ReferenceDPI
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngDPI reads the pHYs chunk. Only the metre unit carries a resolution.
func pngDPI(data []byte) (float64, float64) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0
	}
	p := len(pngSignature)
	for p+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[p:]))
		typ := string(data[p+4 : p+8])
		body := p + 8
		if n < 0 || body+n > len(data) {
			return 0, 0
		}
		switch typ {
		case "pHYs":
			if n < 9 || data[body+8] != 1 {
				return 0, 0
			}
			x := float64(binary.BigEndian.Uint32(data[body:]))
			y := float64(binary.BigEndian.Uint32(data[body+4:]))
			return x * 0.0254, y * 0.0254
		case "IDAT", "IEND":
			return 0, 0
		}
		p = body + n + 4
	}
	return 0, 0
}

// jfifDPI reads the density fields of the APP0 JFIF segment.
func jfifDPI(data []byte) (float64, float64) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0
	}
	p := 2
	for p+4 <= len(data) {
		if data[p] != 0xFF {
			return 0, 0
		}
		marker := data[p+1]
		n := int(binary.BigEndian.Uint16(data[p+2:]))
		seg := data[p+4 : min(len(data), p+2+n)]
		if marker == 0xE0 && len(seg) >= 12 && bytes.HasPrefix(seg, []byte("JFIF\x00")) {
			unit := seg[7]
			x := float64(binary.BigEndian.Uint16(seg[8:]))
			y := float64(binary.BigEndian.Uint16(seg[10:]))
			switch unit {
			case 1:
				return x, y
			case 2:
				return x * 2.54, y * 2.54
			}
			return 0, 0
		}
		if marker == 0xDA || marker == 0xD9 {
			return 0, 0
		}
		p += 2 + n
	}
	return 0, 0
}
