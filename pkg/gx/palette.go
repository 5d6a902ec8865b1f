package gx

import (
	"github.com/EchoTools/texdecode/pkg/bitconv"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// DecodePalette expands 16-bit big-endian palette entries into RGBA8, four
// bytes per entry. A trailing odd byte is ignored.
func DecodePalette(p PaletteFormat, src []byte) ([]byte, error) {
	var decode func(uint16) [4]uint8
	switch p {
	case PaletteIA8:
		decode = ia8
	case PaletteRGB565:
		decode = rgb565
	case PaletteRGB5A3:
		decode = rgb5a3
	default:
		return nil, surface.Unsupported("palette format %s", p)
	}

	n := len(src) / 2
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		c := decode(bitconv.U16BE(src, i*2))
		copy(out[i*4:], c[:])
	}
	return out, nil
}

// ia8 decodes an alpha byte followed by an intensity byte.
func ia8(v uint16) [4]uint8 {
	a, i := uint8(v>>8), uint8(v)
	return [4]uint8{i, i, i, a}
}

func rgb565(v uint16) [4]uint8 {
	r, g, b := bitconv.RGB565(v)
	return [4]uint8{r, g, b, 0xff}
}

// rgb5a3 decodes RGB555 when the top bit is set, A3RGB444 otherwise.
func rgb5a3(v uint16) [4]uint8 {
	c := uint32(v)
	if c&0x8000 != 0 {
		return [4]uint8{
			bitconv.Expand5to8(c >> 10 & 0x1f),
			bitconv.Expand5to8(c >> 5 & 0x1f),
			bitconv.Expand5to8(c & 0x1f),
			0xff,
		}
	}
	return [4]uint8{
		bitconv.Expand4to8(c >> 8 & 0xf),
		bitconv.Expand4to8(c >> 4 & 0xf),
		bitconv.Expand4to8(c & 0xf),
		bitconv.Expand3to8(c >> 12 & 0x7),
	}
}
