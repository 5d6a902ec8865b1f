// Package bcn decompresses BC1-BC5 (DXT1/3/5, RGTC1/2) surfaces into linear
// RGBA pixels.
//
// Surfaces may be stored in NVIDIA block-linear order, as on Tegra GPUs, or
// as plain row-major blocks. BC4 and BC5 additionally decode to signed
// RGBA8 for SNORM surfaces. Every output pixel is written exactly once; the
// output is width*height*depth*4 samples.
package bcn

import (
	"fmt"

	"github.com/EchoTools/texdecode/pkg/blocklinear"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// DecompressSwizzled decodes a block-linear BC1-BC5 surface into RGBA8. The
// source must be exactly blocklinear.RequiredUnswizzledLength bytes.
func DecompressSwizzled(f surface.ChannelFormat, meta surface.MetaData, src []byte) ([]byte, error) {
	dec, err := unsignedDecoder(f, meta.Flag)
	if err != nil {
		return nil, err
	}
	return decompressSwizzled(f, meta, src, dec)
}

// DecompressSwizzledSigned decodes a block-linear BC4 or BC5 surface into
// signed RGBA8.
func DecompressSwizzledSigned(f surface.ChannelFormat, meta surface.MetaData, src []byte) ([]int8, error) {
	dec, err := signedDecoder(f)
	if err != nil {
		return nil, err
	}
	return decompressSwizzled(f, meta, src, dec)
}

// Decompress decodes row-major BC1-BC5 blocks into RGBA8. The source must be
// exactly ceil(w/4)*ceil(tall/4)*blockSize bytes.
func Decompress(f surface.ChannelFormat, meta surface.MetaData, src []byte) ([]byte, error) {
	dec, err := unsignedDecoder(f, meta.Flag)
	if err != nil {
		return nil, err
	}
	return decompressLinear(f, meta, src, dec)
}

// DecompressSigned decodes row-major BC4 or BC5 blocks into signed RGBA8.
func DecompressSigned(f surface.ChannelFormat, meta surface.MetaData, src []byte) ([]int8, error) {
	dec, err := signedDecoder(f)
	if err != nil {
		return nil, err
	}
	return decompressLinear(f, meta, src, dec)
}

func unsignedDecoder(f surface.ChannelFormat, flag surface.Flag) (blockFunc[uint8], error) {
	if flag == surface.SNorm {
		return nil, surface.Unsupported("%s with %s requires the signed decoder", f, flag)
	}
	switch f {
	case surface.BC1:
		return decodeBC1, nil
	case surface.BC2:
		return decodeBC2, nil
	case surface.BC3:
		return decodeBC3, nil
	case surface.BC4:
		return decodeBC4[uint8], nil
	case surface.BC5:
		return decodeBC5[uint8], nil
	}
	return nil, surface.Unsupported("no block decoder for %s", f)
}

func signedDecoder(f surface.ChannelFormat) (blockFunc[int8], error) {
	switch f {
	case surface.BC4:
		return decodeBC4[int8], nil
	case surface.BC5:
		return decodeBC5[int8], nil
	}
	return nil, surface.Unsupported("%s has no %s variant", f, surface.SNorm)
}

func decompressSwizzled[T Sample](f surface.ChannelFormat, meta surface.MetaData, src []byte, dec blockFunc[T]) ([]T, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	l := blocklinear.NewLayout(f, meta)
	if err := l.Check(src); err != nil {
		return nil, fmt.Errorf("decompress %s %dx%d: %w", f, meta.Width, meta.Tall(), err)
	}

	dst := make([]T, meta.Width*meta.Tall()*4)
	walkBlocks(l.BlocksWide, l.BlocksHigh, meta.Width, meta.Tall(), src, dst, l.BytesPerBlock, l.Address, dec)
	return dst, nil
}

func decompressLinear[T Sample](f surface.ChannelFormat, meta surface.MetaData, src []byte, dec blockFunc[T]) ([]T, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	wb, hb, bpb := meta.BlocksWide(f), meta.BlocksHigh(f), f.BytesPerBlock()
	if want := wb * hb * bpb; len(src) != want {
		return nil, fmt.Errorf("decompress %s %dx%d: %w", f, meta.Width, meta.Tall(),
			surface.SizeMismatch("block source", len(src), want))
	}

	dst := make([]T, meta.Width*meta.Tall()*4)
	offset := func(bx, by int) int {
		return (by*wb + bx) * bpb
	}
	walkBlocks(wb, hb, meta.Width, meta.Tall(), src, dst, bpb, offset, dec)
	return dst, nil
}

// walkBlocks visits blocks in raster order, decodes each one from the offset
// returned by offset and writes the texels that fall inside width x tall.
func walkBlocks[T Sample](wb, hb, width, tall int, src []byte, dst []T, bpb int,
	offset func(bx, by int) int, dec blockFunc[T]) {
	var block texels[T]
	for by := 0; by < hb; by++ {
		rows := min(4, tall-by*4)
		for bx := 0; bx < wb; bx++ {
			off := offset(bx, by)
			dec(src[off:off+bpb], &block)

			cols := min(4, width-bx*4)
			for iy := 0; iy < rows; iy++ {
				for ix := 0; ix < cols; ix++ {
					o := ((by*4+iy)*width + bx*4 + ix) * 4
					copy(dst[o:o+4], block[iy*4+ix][:])
				}
			}
		}
	}
}
