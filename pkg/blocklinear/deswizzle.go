package blocklinear

import (
	"fmt"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// Deswizzle extracts the blocks of a width x height swizzled surface into
// row-major block order without decompressing them.
func Deswizzle(width, height int, f surface.ChannelFormat, src []byte, blockHeightLog2 int) ([]byte, error) {
	return DeswizzleSurface(f, surface.MetaData{
		Width:           width,
		Height:          height,
		Depth:           1,
		BlockHeightLog2: blockHeightLog2,
	}, src)
}

// DeswizzleSurface is Deswizzle for a surface with depth slices.
func DeswizzleSurface(f surface.ChannelFormat, meta surface.MetaData, src []byte) ([]byte, error) {
	l, err := prepare(f, meta)
	if err != nil {
		return nil, err
	}
	if err := l.Check(src); err != nil {
		return nil, fmt.Errorf("deswizzle %s %dx%d: %w", f, meta.Width, meta.Tall(), err)
	}

	bpb := l.BytesPerBlock
	dst := make([]byte, l.LinearLength())
	for y := 0; y < l.BlocksHigh; y++ {
		row := y * l.BlocksWide * bpb
		for x := 0; x < l.BlocksWide; x++ {
			addr := l.Address(x, y)
			copy(dst[row+x*bpb:row+(x+1)*bpb], src[addr:addr+bpb])
		}
	}
	return dst, nil
}

// Swizzle is the inverse of DeswizzleSurface. It scatters row-major blocks
// into a block-linear buffer of exactly SwizzledLength bytes; padding bytes
// are zero.
func Swizzle(f surface.ChannelFormat, meta surface.MetaData, linear []byte) ([]byte, error) {
	l, err := prepare(f, meta)
	if err != nil {
		return nil, err
	}
	if want := l.LinearLength(); len(linear) != want {
		return nil, fmt.Errorf("swizzle %s %dx%d: %w", f, meta.Width, meta.Tall(),
			surface.SizeMismatch("linear source", len(linear), want))
	}

	bpb := l.BytesPerBlock
	dst := make([]byte, l.SwizzledLength())
	for y := 0; y < l.BlocksHigh; y++ {
		row := y * l.BlocksWide * bpb
		for x := 0; x < l.BlocksWide; x++ {
			addr := l.Address(x, y)
			copy(dst[addr:addr+bpb], linear[row+x*bpb:row+(x+1)*bpb])
		}
	}
	return dst, nil
}

func prepare(f surface.ChannelFormat, meta surface.MetaData) (Layout, error) {
	if !f.Valid() {
		return Layout{}, surface.Unsupported("cannot swizzle format %s", f)
	}
	if err := meta.Validate(); err != nil {
		return Layout{}, err
	}
	return NewLayout(f, meta), nil
}
