package texture

import (
	"fmt"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// DXGI_FORMAT constants for the formats that can be decoded or exported.
const (
	DXGI_FORMAT_UNKNOWN             = 0
	DXGI_FORMAT_R8G8B8A8_UNORM      = 28
	DXGI_FORMAT_R8G8B8A8_UNORM_SRGB = 29
	DXGI_FORMAT_R8_UNORM            = 61
	DXGI_FORMAT_BC1_UNORM           = 71
	DXGI_FORMAT_BC1_UNORM_SRGB      = 72
	DXGI_FORMAT_BC2_UNORM           = 74
	DXGI_FORMAT_BC2_UNORM_SRGB      = 75
	DXGI_FORMAT_BC3_UNORM           = 77
	DXGI_FORMAT_BC3_UNORM_SRGB      = 78
	DXGI_FORMAT_BC4_UNORM           = 80
	DXGI_FORMAT_BC4_SNORM           = 81
	DXGI_FORMAT_BC5_UNORM           = 83
	DXGI_FORMAT_BC5_SNORM           = 84
	DXGI_FORMAT_B8G8R8A8_UNORM      = 87
	DXGI_FORMAT_B8G8R8A8_UNORM_SRGB = 91
	DXGI_FORMAT_BC6H_UF16           = 95
	DXGI_FORMAT_BC6H_SF16           = 96
	DXGI_FORMAT_BC7_UNORM           = 98
	DXGI_FORMAT_BC7_UNORM_SRGB      = 99
)

type dxgiInfo struct {
	name   string
	format surface.ChannelFormat
	flag   surface.Flag
}

var dxgiTable = map[uint32]dxgiInfo{
	DXGI_FORMAT_R8G8B8A8_UNORM:      {"R8G8B8A8_UNORM", surface.R8G8B8A8, surface.UNorm},
	DXGI_FORMAT_R8G8B8A8_UNORM_SRGB: {"R8G8B8A8_UNORM_SRGB", surface.R8G8B8A8, surface.SRGB},
	DXGI_FORMAT_R8_UNORM:            {"R8_UNORM", surface.R8, surface.UNorm},
	DXGI_FORMAT_BC1_UNORM:           {"BC1_UNORM", surface.BC1, surface.UNorm},
	DXGI_FORMAT_BC1_UNORM_SRGB:      {"BC1_UNORM_SRGB", surface.BC1, surface.SRGB},
	DXGI_FORMAT_BC2_UNORM:           {"BC2_UNORM", surface.BC2, surface.UNorm},
	DXGI_FORMAT_BC2_UNORM_SRGB:      {"BC2_UNORM_SRGB", surface.BC2, surface.SRGB},
	DXGI_FORMAT_BC3_UNORM:           {"BC3_UNORM", surface.BC3, surface.UNorm},
	DXGI_FORMAT_BC3_UNORM_SRGB:      {"BC3_UNORM_SRGB", surface.BC3, surface.SRGB},
	DXGI_FORMAT_BC4_UNORM:           {"BC4_UNORM", surface.BC4, surface.UNorm},
	DXGI_FORMAT_BC4_SNORM:           {"BC4_SNORM", surface.BC4, surface.SNorm},
	DXGI_FORMAT_BC5_UNORM:           {"BC5_UNORM", surface.BC5, surface.UNorm},
	DXGI_FORMAT_BC5_SNORM:           {"BC5_SNORM", surface.BC5, surface.SNorm},
	DXGI_FORMAT_B8G8R8A8_UNORM:      {"B8G8R8A8_UNORM", surface.B8G8R8A8, surface.UNorm},
	DXGI_FORMAT_B8G8R8A8_UNORM_SRGB: {"B8G8R8A8_UNORM_SRGB", surface.B8G8R8A8, surface.SRGB},
	DXGI_FORMAT_BC6H_UF16:           {"BC6H_UF16", surface.BC6H, surface.UNorm},
	DXGI_FORMAT_BC6H_SF16:           {"BC6H_SF16", surface.BC6H, surface.SNorm},
	DXGI_FORMAT_BC7_UNORM:           {"BC7_UNORM", surface.BC7, surface.UNorm},
	DXGI_FORMAT_BC7_UNORM_SRGB:      {"BC7_UNORM_SRGB", surface.BC7, surface.SRGB},
}

// FormatName returns a human-readable name for a DXGI_FORMAT value.
func FormatName(format uint32) string {
	if info, ok := dxgiTable[format]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(0x%x)", format)
}

// SelectorFromDXGI maps a DXGI_FORMAT value to a Tegra selector. The sRGB
// variants only set the flag; no color space conversion happens on decode.
func SelectorFromDXGI(format uint32, swizzled bool) (Selector, error) {
	info, ok := dxgiTable[format]
	if !ok {
		return Selector{}, surface.Unsupported("DXGI format %s", FormatName(format))
	}
	return Selector{
		Format:   info.format,
		Swizzled: swizzled,
		Signed:   info.flag == surface.SNorm,
		SRGB:     info.flag == surface.SRGB,
	}, nil
}

// DXGIFormat returns the DXGI_FORMAT value used when exporting f with flag.
func DXGIFormat(f surface.ChannelFormat, flag surface.Flag) (uint32, error) {
	for format, info := range dxgiTable {
		if info.format == f && info.flag == flag {
			return format, nil
		}
	}
	// Formats without an sRGB variant are exported as UNORM.
	if flag == surface.SRGB {
		return DXGIFormat(f, surface.UNorm)
	}
	return DXGI_FORMAT_UNKNOWN, surface.Unsupported("no DXGI format for %s %s", f, flag)
}
