package texture

import (
	"encoding/binary"
	"fmt"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// DDS header constants
const (
	DDS_MAGIC                    = 0x20534444 // "DDS "
	DDS_HEADER_SIZE              = 124
	DDS_HEADER_FLAGS_CAPS        = 0x1
	DDS_HEADER_FLAGS_HEIGHT      = 0x2
	DDS_HEADER_FLAGS_WIDTH       = 0x4
	DDS_HEADER_FLAGS_PITCH       = 0x8
	DDS_HEADER_FLAGS_PIXELFORMAT = 0x1000
	DDS_HEADER_FLAGS_LINEARSIZE  = 0x80000

	DDS_SURFACE_FLAGS_TEXTURE = 0x1000

	DDS_PIXELFORMAT_SIZE = 32
	DDS_FOURCC           = 0x4

	DX10_FOURCC = 0x30315844 // "DX10"

	// DDSHeaderLength is the magic, the header and the DX10 extension.
	DDSHeaderLength = 4 + DDS_HEADER_SIZE + 20

	ddsResourceTexture2D = 3
)

// ConvertBlocksToDDS wraps row-major blocks, as returned by
// blocklinear.DeswizzleSurface, in a DDS file with a DX10 header. Depth
// slices are written as one tall 2D texture.
func ConvertBlocksToDDS(blocks []byte, f surface.ChannelFormat, meta surface.MetaData) ([]byte, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	format, err := DXGIFormat(f, meta.Flag)
	if err != nil {
		return nil, err
	}

	want := meta.BlocksWide(f) * meta.BlocksHigh(f) * f.BytesPerBlock()
	if len(blocks) != want {
		return nil, fmt.Errorf("block data for %s %dx%d: %w", f, meta.Width, meta.Tall(),
			surface.SizeMismatch("block data", len(blocks), want))
	}

	header := createDDSHeader(uint32(meta.Width), uint32(meta.Tall()), format, f)
	dds := make([]byte, len(header)+len(blocks))
	copy(dds, header)
	copy(dds[len(header):], blocks)
	return dds, nil
}

// createDDSHeader creates a single-mip DDS header with DX10 extension.
func createDDSHeader(width, height, dxgiFormat uint32, f surface.ChannelFormat) []byte {
	header := make([]byte, DDSHeaderLength)
	offset := 0
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(header[offset:offset+4], v)
		offset += 4
	}

	put(DDS_MAGIC)
	put(DDS_HEADER_SIZE)

	flags := uint32(DDS_HEADER_FLAGS_CAPS | DDS_HEADER_FLAGS_HEIGHT | DDS_HEADER_FLAGS_WIDTH |
		DDS_HEADER_FLAGS_PIXELFORMAT)
	if f.IsCompressed() {
		flags |= DDS_HEADER_FLAGS_LINEARSIZE
	} else {
		flags |= DDS_HEADER_FLAGS_PITCH
	}
	put(flags)
	put(height)
	put(width)
	put(pitchOrLinearSize(width, height, f))
	put(0) // depth
	put(1) // mip count
	offset += 44

	// DDS_PIXELFORMAT: FourCC "DX10", masks unused
	put(DDS_PIXELFORMAT_SIZE)
	put(DDS_FOURCC)
	put(DX10_FOURCC)
	offset += 20

	put(DDS_SURFACE_FLAGS_TEXTURE)
	offset += 12 + 4

	// DDS_HEADER_DXT10
	put(dxgiFormat)
	put(ddsResourceTexture2D)
	put(0) // misc flags
	put(1) // array size
	put(0) // misc flags 2

	return header
}

// pitchOrLinearSize returns the size of the top level for compressed formats
// and the row pitch otherwise.
func pitchOrLinearSize(width, height uint32, f surface.ChannelFormat) uint32 {
	bw, bh, bpb := uint32(f.BlockWidth()), uint32(f.BlockHeight()), uint32(f.BytesPerBlock())
	blocksWide := (width + bw - 1) / bw
	if !f.IsCompressed() {
		return blocksWide * bpb
	}
	blocksHigh := (height + bh - 1) / bh
	return blocksWide * blocksHigh * bpb
}
