// Package texture dispatches extracted texture data to the right decoder.
//
// Extraction tools hand over texture bytes in one of three families:
// 1. Tegra surfaces, BCn or uncompressed, optionally block-linear swizzled
// 2. GameCube/Wii GX tiled textures, optionally paletted
// 3. SGI image files
//
// A Dump bundles the bytes with a Descriptor so a texture can be decoded
// without knowing where it came from.
package texture

import (
	"fmt"
	"image"

	"github.com/EchoTools/texdecode/pkg/bcn"
	"github.com/EchoTools/texdecode/pkg/blocklinear"
	"github.com/EchoTools/texdecode/pkg/gx"
	"github.com/EchoTools/texdecode/pkg/sgi"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// Selector chooses a Tegra decoder.
type Selector struct {
	Format   surface.ChannelFormat
	Swizzled bool
	Signed   bool
	SRGB     bool
}

// Flag returns the surface flag implied by the selector.
func (s Selector) Flag() surface.Flag {
	switch {
	case s.Signed:
		return surface.SNorm
	case s.SRGB:
		return surface.SRGB
	}
	return surface.UNorm
}

func (s Selector) String() string {
	layout := "linear"
	if s.Swizzled {
		layout = "block-linear"
	}
	return fmt.Sprintf("%s %s %s", s.Format, s.Flag(), layout)
}

// Image is a decoded texture. Pix holds Width*Height RGBA8 pixels. For
// signed images every byte is a two's complement int8 sample.
type Image struct {
	Width    int
	Height   int
	Pix      []byte
	Signed   bool
	BottomUp bool // rows are stored bottom row first
}

// NRGBA converts the image for display. Signed samples are biased by 128 so
// that -128 maps to 0 and 127 to 255.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)
	if img.Signed {
		for i, v := range out.Pix {
			out.Pix[i] = v ^ 0x80
		}
	}
	return out
}

// RequiredSize returns the exact source length DecodeTegra expects.
func RequiredSize(sel Selector, meta surface.MetaData) int {
	l := blocklinear.NewLayout(sel.Format, meta)
	if sel.Swizzled {
		return l.SwizzledLength()
	}
	return l.LinearLength()
}

// DecodeTegra decodes a Tegra surface. BC1-BC5 are decompressed; R8,
// R8G8B8A8 and B8G8R8A8 are expanded to RGBA8. The surface height is
// flattened with its depth, so the image is Width x Height*Depth.
func DecodeTegra(sel Selector, meta surface.MetaData, src []byte) (*Image, error) {
	meta.Flag = sel.Flag()
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if !decodable(sel.Format) {
		return nil, surface.Unsupported("no decoder for %s", sel.Format)
	}
	if sel.Signed && !sel.Format.IsBCn() {
		return nil, surface.Unsupported("%s has no signed decoder", sel.Format)
	}
	if want := RequiredSize(sel, meta); len(src) != want {
		return nil, fmt.Errorf("decode %s %dx%d: %w", sel, meta.Width, meta.Tall(),
			surface.SizeMismatch("source", len(src), want))
	}

	img := &Image{Width: meta.Width, Height: meta.Tall(), Signed: sel.Signed}
	var err error
	switch {
	case sel.Format.IsBCn() && sel.Signed:
		img.Pix, err = decodeSigned(sel, meta, src)
	case sel.Format.IsBCn() && sel.Swizzled:
		img.Pix, err = bcn.DecompressSwizzled(sel.Format, meta, src)
	case sel.Format.IsBCn():
		img.Pix, err = bcn.Decompress(sel.Format, meta, src)
	default:
		img.Pix, err = expandUncompressed(sel, meta, src)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodable(f surface.ChannelFormat) bool {
	switch f {
	case surface.R8, surface.R8G8B8A8, surface.B8G8R8A8:
		return true
	}
	return f.IsBCn()
}

func decodeSigned(sel Selector, meta surface.MetaData, src []byte) ([]byte, error) {
	var samples []int8
	var err error
	if sel.Swizzled {
		samples, err = bcn.DecompressSwizzledSigned(sel.Format, meta, src)
	} else {
		samples, err = bcn.DecompressSigned(sel.Format, meta, src)
	}
	if err != nil {
		return nil, err
	}
	pix := make([]byte, len(samples))
	for i, v := range samples {
		pix[i] = byte(v)
	}
	return pix, nil
}

func expandUncompressed(sel Selector, meta surface.MetaData, src []byte) ([]byte, error) {
	linear := src
	if sel.Swizzled {
		var err error
		if linear, err = blocklinear.DeswizzleSurface(sel.Format, meta, src); err != nil {
			return nil, err
		}
	}

	n := meta.Width * meta.Tall()
	pix := make([]byte, n*4)
	switch sel.Format {
	case surface.R8G8B8A8:
		copy(pix, linear)
	case surface.B8G8R8A8:
		for i := 0; i < n; i++ {
			o := i * 4
			pix[o], pix[o+1], pix[o+2], pix[o+3] = linear[o+2], linear[o+1], linear[o], linear[o+3]
		}
	case surface.R8:
		for i := 0; i < n; i++ {
			pix[i*4], pix[i*4+3] = linear[i], 0xff
		}
	default:
		return nil, surface.Unsupported("no decoder for %s", sel.Format)
	}
	return pix, nil
}

// DecodeGX decodes a GX tiled texture. palette is only read for paletted
// formats.
func DecodeGX(f gx.PixelFormat, pf gx.PaletteFormat, src, palette []byte, width, height int) (*Image, error) {
	pix, err := gx.Decode(f, pf, src, palette, width, height)
	if err != nil {
		return nil, err
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// DecodeSGI decodes an SGI image file. The result is bottom-up.
func DecodeSGI(src []byte) (*Image, error) {
	w, h, err := sgi.Dimensions(src)
	if err != nil {
		return nil, err
	}
	pix, err := sgi.Decode(src)
	if err != nil {
		return nil, err
	}
	return &Image{Width: w, Height: h, Pix: pix, BottomUp: true}, nil
}
