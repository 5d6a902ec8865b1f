// Package gx decodes GameCube and Wii (GX) tiled textures into linear RGBA8.
//
// GX textures are stored as a row-major grid of fixed-size tiles. Each tile
// is stored row-major, except RGBA8, which splits a 4x4 tile into an AR plane
// followed by a GB plane, and CMPR, which packs four BC1-style sub-blocks
// into an 8x8 tile.
package gx

import (
	"fmt"
	"strings"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// PixelFormat is a GX texture format. The values are the hardware TX_SETIMAGE
// format codes.
type PixelFormat uint8

const (
	I4     PixelFormat = 0x0
	I8     PixelFormat = 0x1
	IA4    PixelFormat = 0x2
	IA8    PixelFormat = 0x3
	RGB565 PixelFormat = 0x4
	RGB5A3 PixelFormat = 0x5
	RGBA8  PixelFormat = 0x6
	C4     PixelFormat = 0x8
	C8     PixelFormat = 0x9
	C14X2  PixelFormat = 0xA
	CMPR   PixelFormat = 0xE
)

type pixelInfo struct {
	name         string
	tileWidth    int
	tileHeight   int
	bitsPerPixel int
}

var pixelTable = map[PixelFormat]pixelInfo{
	I4:     {"I4", 8, 8, 4},
	I8:     {"I8", 8, 4, 8},
	IA4:    {"IA4", 8, 4, 8},
	IA8:    {"IA8", 4, 4, 16},
	RGB565: {"RGB565", 4, 4, 16},
	RGB5A3: {"RGB5A3", 4, 4, 16},
	RGBA8:  {"RGBA8", 4, 4, 32},
	C4:     {"C4", 8, 8, 4},
	C8:     {"C8", 8, 4, 8},
	C14X2:  {"C14X2", 4, 4, 16},
	CMPR:   {"CMPR", 8, 8, 4},
}

// Valid reports whether f is a known GX format.
func (f PixelFormat) Valid() bool {
	_, ok := pixelTable[f]
	return ok
}

// BlockSize returns the tile footprint of f in pixels.
func (f PixelFormat) BlockSize() (w, h int) {
	info := pixelTable[f]
	return info.tileWidth, info.tileHeight
}

// BitsPerPixel returns the encoded size of one pixel.
func (f PixelFormat) BitsPerPixel() int {
	return pixelTable[f].bitsPerPixel
}

// IsPaletted reports whether f stores palette indices.
func (f PixelFormat) IsPaletted() bool {
	return f == C4 || f == C8 || f == C14X2
}

func (f PixelFormat) String() string {
	if info, ok := pixelTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("GX(%#x)", uint8(f))
}

// ParsePixelFormat looks up a format by name, ignoring case.
func ParsePixelFormat(name string) (PixelFormat, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for f, info := range pixelTable {
		if info.name == n {
			return f, nil
		}
	}
	return 0, surface.Unsupported("unknown GX format %q", name)
}

// MaxDimension is the largest width or height Decode accepts. It keeps the
// padded RGBA8 size of any texture within an int on 32-bit platforms.
const MaxDimension = 1 << 14

// EncodedSize returns the number of source bytes a width x height texture
// occupies once padded to whole tiles. It is 0 for unknown formats and for
// sizes outside 1..MaxDimension.
func EncodedSize(f PixelFormat, width, height int) int {
	info, ok := pixelTable[f]
	if !ok || !validSize(width, height) {
		return 0
	}
	w := surface.RoundUp(width, info.tileWidth)
	h := surface.RoundUp(height, info.tileHeight)
	return w * h * info.bitsPerPixel / 8
}

func validSize(width, height int) bool {
	return width > 0 && height > 0 && width <= MaxDimension && height <= MaxDimension
}

// PaletteFormat is the encoding of palette (TLUT) entries.
type PaletteFormat uint8

const (
	PaletteIA8    PaletteFormat = 0
	PaletteRGB565 PaletteFormat = 1
	PaletteRGB5A3 PaletteFormat = 2
)

// Valid reports whether p is a known palette format.
func (p PaletteFormat) Valid() bool {
	return p <= PaletteRGB5A3
}

func (p PaletteFormat) String() string {
	switch p {
	case PaletteIA8:
		return "IA8"
	case PaletteRGB565:
		return "RGB565"
	case PaletteRGB5A3:
		return "RGB5A3"
	}
	return fmt.Sprintf("TLUT(%d)", uint8(p))
}

// ParsePaletteFormat looks up a palette format by name, ignoring case.
func ParsePaletteFormat(name string) (PaletteFormat, error) {
	for p := PaletteIA8; p <= PaletteRGB5A3; p++ {
		if strings.EqualFold(strings.TrimSpace(name), p.String()) {
			return p, nil
		}
	}
	return 0, surface.Unsupported("unknown palette format %q", name)
}
