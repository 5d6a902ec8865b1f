package gx

import (
	"fmt"

	"github.com/EchoTools/texdecode/pkg/bcn"
	"github.com/EchoTools/texdecode/pkg/bitconv"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// texelFunc returns the color of the n-th encoded pixel in tile order.
type texelFunc func(src []byte, n int) [4]uint8

// Decode converts a tiled GX texture into width*height RGBA8 pixels.
//
// src must hold at least EncodedSize(f, width, height) bytes; anything after
// that (typically further mip levels) is ignored. Paletted formats decode
// their indices through paletteSrc, interpreted as pf. Indices past the end
// of the palette produce transparent black.
func Decode(f PixelFormat, pf PaletteFormat, src, paletteSrc []byte, width, height int) ([]byte, error) {
	if !f.Valid() {
		return nil, surface.Unsupported("GX format %s", f)
	}
	if !validSize(width, height) {
		return nil, surface.Unsupported("%s texture size %dx%d outside 1..%d", f, width, height, MaxDimension)
	}
	if want := EncodedSize(f, width, height); len(src) < want {
		return nil, fmt.Errorf("decode %s %dx%d: %w", f, width, height,
			surface.SizeMismatch("source", len(src), want))
	}

	dst := make([]byte, width*height*4)
	switch f {
	case RGBA8:
		decodeRGBA8(src, dst, width, height)
	case CMPR:
		decodeCMPR(src, dst, width, height)
	default:
		texel, err := texelReader(f, pf, paletteSrc)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", f, err)
		}
		walkTiles(f, src, dst, width, height, texel)
	}
	return dst, nil
}

// walkTiles visits every pixel of the padded tile grid. The source cursor
// advances for padding pixels too; only pixels inside the image are written.
func walkTiles(f PixelFormat, src, dst []byte, width, height int, texel texelFunc) {
	tw, th := f.BlockSize()
	n := 0
	for ty := 0; ty < height; ty += th {
		for tx := 0; tx < width; tx += tw {
			for y := 0; y < th; y++ {
				for x := 0; x < tw; x++ {
					c := texel(src, n)
					n++
					px, py := tx+x, ty+y
					if px >= width || py >= height {
						continue
					}
					o := (py*width + px) * 4
					copy(dst[o:o+4], c[:])
				}
			}
		}
	}
}

func texelReader(f PixelFormat, pf PaletteFormat, paletteSrc []byte) (texelFunc, error) {
	switch f {
	case I4:
		return func(src []byte, n int) [4]uint8 {
			i := bitconv.Expand4to8(nibble(src, n))
			return [4]uint8{i, i, i, i}
		}, nil
	case I8:
		return func(src []byte, n int) [4]uint8 {
			i := src[n]
			return [4]uint8{i, i, i, i}
		}, nil
	case IA4:
		return func(src []byte, n int) [4]uint8 {
			a := bitconv.Expand4to8(uint32(src[n] >> 4))
			i := bitconv.Expand4to8(uint32(src[n] & 0xf))
			return [4]uint8{i, i, i, a}
		}, nil
	case IA8:
		return func(src []byte, n int) [4]uint8 {
			return ia8(bitconv.U16BE(src, n*2))
		}, nil
	case RGB565:
		return func(src []byte, n int) [4]uint8 {
			return rgb565(bitconv.U16BE(src, n*2))
		}, nil
	case RGB5A3:
		return func(src []byte, n int) [4]uint8 {
			return rgb5a3(bitconv.U16BE(src, n*2))
		}, nil
	}

	palette, err := DecodePalette(pf, paletteSrc)
	if err != nil {
		return nil, err
	}
	lookup := func(i int) [4]uint8 {
		var c [4]uint8
		if o := i * 4; o+4 <= len(palette) {
			copy(c[:], palette[o:o+4])
		}
		return c
	}

	switch f {
	case C4:
		return func(src []byte, n int) [4]uint8 {
			return lookup(int(nibble(src, n)))
		}, nil
	case C8:
		return func(src []byte, n int) [4]uint8 {
			return lookup(int(src[n]))
		}, nil
	case C14X2:
		return func(src []byte, n int) [4]uint8 {
			return lookup(int(bitconv.U16BE(src, n*2) & 0x3fff))
		}, nil
	}
	return nil, surface.Unsupported("no texel decoder for %s", f)
}

// nibble returns the n-th 4-bit value, high nibble first.
func nibble(src []byte, n int) uint32 {
	b := src[n/2]
	if n%2 == 0 {
		return uint32(b >> 4)
	}
	return uint32(b & 0xf)
}

// decodeRGBA8 reads each 4x4 tile as 16 AR pairs followed by 16 GB pairs.
func decodeRGBA8(src, dst []byte, width, height int) {
	off := 0
	for ty := 0; ty < height; ty += 4 {
		for tx := 0; tx < width; tx += 4 {
			for i := 0; i < 16; i++ {
				if o, ok := pixelOffset(tx+i%4, ty+i/4, width, height); ok {
					dst[o+3] = src[off+i*2]
					dst[o+0] = src[off+i*2+1]
				}
			}
			off += 32
			for i := 0; i < 16; i++ {
				if o, ok := pixelOffset(tx+i%4, ty+i/4, width, height); ok {
					dst[o+1] = src[off+i*2]
					dst[o+2] = src[off+i*2+1]
				}
			}
			off += 32
		}
	}
}

// decodeCMPR reads each 8x8 tile as four 4x4 sub-blocks in UL, UR, BL, BR
// order. Sub-blocks are BC1 with big-endian endpoints and MSB-first indices.
func decodeCMPR(src, dst []byte, width, height int) {
	off := 0
	for ty := 0; ty < height; ty += 8 {
		for tx := 0; tx < width; tx += 8 {
			for sub := 0; sub < 4; sub++ {
				sx, sy := tx+(sub%2)*4, ty+(sub/2)*4
				b := src[off : off+8]
				off += 8

				ramp := bcn.ColorRamp(bitconv.U16BE(b, 0), bitconv.U16BE(b, 2), bcn.TransparentKeepColor)
				for y := 0; y < 4; y++ {
					row := b[4+y]
					for x := 0; x < 4; x++ {
						if o, ok := pixelOffset(sx+x, sy+y, width, height); ok {
							c := ramp[row>>(6-2*x)&3]
							copy(dst[o:o+4], c[:])
						}
					}
				}
			}
		}
	}
}

func pixelOffset(x, y, width, height int) (int, bool) {
	if x >= width || y >= height {
		return 0, false
	}
	return (y*width + x) * 4, true
}
