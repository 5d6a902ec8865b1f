// Package sgi decodes SGI image files (.sgi, .rgb, .rgba, .bw) into RGBA8.
//
// Rows are returned in file order, which for SGI images is bottom-up.
package sgi

import (
	"bytes"
	"fmt"

	"github.com/EchoTools/texdecode/pkg/bitconv"
	"github.com/EchoTools/texdecode/pkg/surface"
)

const (
	// Magic is the big-endian value of the first two bytes of every SGI file.
	Magic = 0x01DA

	// HeaderSize is the fixed size of the header; image data starts after it.
	HeaderSize = 512

	// maxPixels bounds the decoded image to 1 GiB of RGBA8.
	maxPixels = 1 << 28
)

// Storage is the image data layout.
type Storage uint8

const (
	Verbatim Storage = 0
	RLE      Storage = 1
)

func (s Storage) String() string {
	switch s {
	case Verbatim:
		return "verbatim"
	case RLE:
		return "rle"
	}
	return fmt.Sprintf("storage(%d)", uint8(s))
}

// Header is the fixed 512-byte SGI header. All fields are big-endian.
type Header struct {
	Storage         Storage
	BytesPerChannel int
	Dimension       int
	Width           int
	Height          int
	Channels        int
	PixMin          uint32
	PixMax          uint32
	Name            string
	ColorMap        uint32
}

// IsSGI reports whether src starts with the SGI magic.
func IsSGI(src []byte) bool {
	return len(src) >= 2 && bitconv.U16BE(src, 0) == Magic
}

// ParseHeader reads and validates the header at the start of src.
func ParseHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, surface.Malformed("SGI header is %d bytes, expected %d", len(src), HeaderSize)
	}
	if magic := bitconv.U16BE(src, 0); magic != Magic {
		return Header{}, surface.Malformed("invalid SGI magic %#04x", magic)
	}

	h := Header{
		Storage:         Storage(src[2]),
		BytesPerChannel: int(src[3]),
		Dimension:       int(bitconv.U16BE(src, 4)),
		Width:           int(bitconv.U16BE(src, 6)),
		Height:          int(bitconv.U16BE(src, 8)),
		Channels:        int(bitconv.U16BE(src, 10)),
		PixMin:          bitconv.U32BE(src, 12),
		PixMax:          bitconv.U32BE(src, 16),
		Name:            string(bytes.TrimRight(src[24:104], "\x00")),
		ColorMap:        bitconv.U32BE(src, 104),
	}

	// Lower-dimension images leave the unused sizes undefined.
	switch h.Dimension {
	case 1:
		h.Height, h.Channels = 1, 1
	case 2:
		h.Channels = 1
	case 3:
	default:
		return Header{}, surface.Unsupported("SGI dimension %d", h.Dimension)
	}

	if h.Storage != Verbatim && h.Storage != RLE {
		return Header{}, surface.Unsupported("SGI %s", h.Storage)
	}
	if h.BytesPerChannel != 1 && h.BytesPerChannel != 2 {
		return Header{}, surface.Unsupported("SGI with %d bytes per channel", h.BytesPerChannel)
	}
	if h.Width == 0 || h.Height == 0 || h.Channels == 0 {
		return Header{}, surface.Malformed("SGI image size %dx%dx%d", h.Width, h.Height, h.Channels)
	}
	return h, nil
}

// Dimensions returns the width and height stored in the header.
func Dimensions(src []byte) (width, height int, err error) {
	h, err := ParseHeader(src)
	if err != nil {
		return 0, 0, err
	}
	return h.Width, h.Height, nil
}

// Decode converts an SGI file into Width*Height RGBA8 pixels.
//
// One channel is gray, two are gray and alpha, three are RGB and four or more
// are RGBA; channels past the fourth are ignored. Missing alpha is opaque.
// Two-byte channels keep their high byte.
func Decode(src []byte) ([]byte, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return nil, err
	}

	read := readVerbatimRow
	if h.Storage == RLE {
		table, err := readOffsetTable(src, h)
		if err != nil {
			return nil, fmt.Errorf("decode SGI %dx%d: %w", h.Width, h.Height, err)
		}
		read = table.readRow
	} else if want := HeaderSize + h.Width*h.Height*h.Channels*h.BytesPerChannel; len(src) < want {
		return nil, fmt.Errorf("decode SGI %dx%d: %w", h.Width, h.Height,
			surface.SizeMismatch("verbatim image", len(src), want))
	}
	// RLE rows may share data, so a small file can still describe a huge image.
	if h.Width*h.Height > maxPixels {
		return nil, surface.Unsupported("SGI image %dx%d exceeds %d pixels", h.Width, h.Height, maxPixels)
	}

	dst := make([]byte, h.Width*h.Height*4)
	row := make([]byte, h.Width)

	for c := 0; c < min(h.Channels, 4); c++ {
		for y := 0; y < h.Height; y++ {
			clear(row)
			if err := read(src, h, c, y, row); err != nil {
				return nil, fmt.Errorf("decode SGI channel %d row %d: %w", c, y, err)
			}
			scatter(dst, h, c, y, row)
		}
	}
	if h.Channels == 1 || h.Channels == 3 {
		for i := 3; i < len(dst); i += 4 {
			dst[i] = 0xff
		}
	}
	return dst, nil
}

// scatter writes one decoded channel row into the RGBA output.
func scatter(dst []byte, h Header, c, y int, row []byte) {
	base := y * h.Width * 4
	for x, v := range row {
		o := base + x*4
		switch {
		case h.Channels <= 2 && c == 0:
			dst[o], dst[o+1], dst[o+2] = v, v, v
		case h.Channels == 2:
			dst[o+3] = v
		default:
			dst[o+c] = v
		}
	}
}

func readVerbatimRow(src []byte, h Header, c, y int, row []byte) error {
	bpc := h.BytesPerChannel
	off := HeaderSize + (c*h.Height+y)*h.Width*bpc
	for x := range row {
		// 16-bit samples are big-endian; the high byte comes first.
		row[x] = src[off+x*bpc]
	}
	return nil
}
