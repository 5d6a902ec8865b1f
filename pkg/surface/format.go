// Package surface describes GPU texture surfaces: the channel formats a
// surface can be stored in, the per-surface metadata needed to walk it, and
// the error kinds reported by the decoders.
package surface

import (
	"fmt"
	"strings"
)

// ChannelFormat identifies the texel layout of a surface. Every format has a
// fixed block footprint; uncompressed formats use 1x1 blocks.
type ChannelFormat uint8

const (
	FormatUnknown ChannelFormat = iota

	R8
	R8G8B8A8
	B8G8R8A8
	R10G10B10A2
	R11G11B10

	BC1
	BC2
	BC3
	BC4
	BC5
	BC6H
	BC7

	ETC1
	ETC2RGB
	ETC2RGBA
	EACR11
	EACRG11

	PVRTC2BPP
	PVRTC4BPP

	ASTC4x4
	ASTC5x4
	ASTC5x5
	ASTC6x5
	ASTC6x6
	ASTC8x5
	ASTC8x6
	ASTC8x8
	ASTC10x5
	ASTC10x6
	ASTC10x8
	ASTC10x10
	ASTC12x10
	ASTC12x12

	formatCount
)

type formatInfo struct {
	name          string
	blockWidth    uint8
	blockHeight   uint8
	bytesPerBlock uint8
}

var formatTable = [formatCount]formatInfo{
	FormatUnknown: {"UNKNOWN", 1, 1, 1},

	R8:          {"R8", 1, 1, 1},
	R8G8B8A8:    {"R8G8B8A8", 1, 1, 4},
	B8G8R8A8:    {"B8G8R8A8", 1, 1, 4},
	R10G10B10A2: {"R10G10B10A2", 1, 1, 4},
	R11G11B10:   {"R11G11B10", 1, 1, 4},

	BC1:  {"BC1", 4, 4, 8},
	BC2:  {"BC2", 4, 4, 16},
	BC3:  {"BC3", 4, 4, 16},
	BC4:  {"BC4", 4, 4, 8},
	BC5:  {"BC5", 4, 4, 16},
	BC6H: {"BC6H", 4, 4, 16},
	BC7:  {"BC7", 4, 4, 16},

	ETC1:     {"ETC1", 4, 4, 8},
	ETC2RGB:  {"ETC2_RGB", 4, 4, 8},
	ETC2RGBA: {"ETC2_RGBA", 4, 4, 16},
	EACR11:   {"EAC_R11", 4, 4, 8},
	EACRG11:  {"EAC_RG11", 4, 4, 16},

	PVRTC2BPP: {"PVRTC_2BPP", 8, 4, 8},
	PVRTC4BPP: {"PVRTC_4BPP", 4, 4, 8},

	ASTC4x4:   {"ASTC_4x4", 4, 4, 16},
	ASTC5x4:   {"ASTC_5x4", 5, 4, 16},
	ASTC5x5:   {"ASTC_5x5", 5, 5, 16},
	ASTC6x5:   {"ASTC_6x5", 6, 5, 16},
	ASTC6x6:   {"ASTC_6x6", 6, 6, 16},
	ASTC8x5:   {"ASTC_8x5", 8, 5, 16},
	ASTC8x6:   {"ASTC_8x6", 8, 6, 16},
	ASTC8x8:   {"ASTC_8x8", 8, 8, 16},
	ASTC10x5:  {"ASTC_10x5", 10, 5, 16},
	ASTC10x6:  {"ASTC_10x6", 10, 6, 16},
	ASTC10x8:  {"ASTC_10x8", 10, 8, 16},
	ASTC10x10: {"ASTC_10x10", 10, 10, 16},
	ASTC12x10: {"ASTC_12x10", 12, 10, 16},
	ASTC12x12: {"ASTC_12x12", 12, 12, 16},
}

func (f ChannelFormat) info() formatInfo {
	if f >= formatCount {
		return formatTable[FormatUnknown]
	}
	return formatTable[f]
}

// Valid reports whether f is a known, non-unknown format.
func (f ChannelFormat) Valid() bool {
	return f > FormatUnknown && f < formatCount
}

// BlockWidth returns the block width in pixels.
func (f ChannelFormat) BlockWidth() int { return int(f.info().blockWidth) }

// BlockHeight returns the block height in pixels.
func (f ChannelFormat) BlockHeight() int { return int(f.info().blockHeight) }

// BytesPerBlock returns the encoded size of one block.
func (f ChannelFormat) BytesPerBlock() int { return int(f.info().bytesPerBlock) }

// IsCompressed reports whether f is a block compressed format.
func (f ChannelFormat) IsCompressed() bool {
	return f.BlockWidth() > 1 || f.BlockHeight() > 1
}

// IsBCn reports whether f is one of the BC1-BC5 formats decoded by package bcn.
func (f ChannelFormat) IsBCn() bool {
	return f >= BC1 && f <= BC5
}

func (f ChannelFormat) String() string {
	if f >= formatCount {
		return fmt.Sprintf("UNKNOWN(%d)", uint8(f))
	}
	return f.info().name
}

// ParseChannelFormat looks up a format by name, ignoring case and accepting
// the common DXT aliases for BC1-BC3.
func ParseChannelFormat(name string) (ChannelFormat, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "DXT1":
		return BC1, nil
	case "DXT3":
		return BC2, nil
	case "DXT5":
		return BC3, nil
	case "ATI1":
		return BC4, nil
	case "ATI2":
		return BC5, nil
	}
	for f := FormatUnknown + 1; f < formatCount; f++ {
		known := strings.ToUpper(formatTable[f].name)
		if known == n || strings.ReplaceAll(known, "_", "") == n {
			return f, nil
		}
	}
	return FormatUnknown, Unsupported("unknown channel format %q", name)
}
