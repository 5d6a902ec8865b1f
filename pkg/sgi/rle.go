package sgi

import (
	"github.com/EchoTools/texdecode/pkg/bitconv"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// offsetTable holds the per-scanline start offsets and lengths of an RLE
// image, indexed by y + channel*height.
type offsetTable struct {
	starts  []int
	lengths []int
}

// readOffsetTable reads the start and length tables that follow the header.
// Every scanline must lie between the end of the tables and the end of src.
func readOffsetTable(src []byte, h Header) (offsetTable, error) {
	n := h.Height * h.Channels
	dataStart := HeaderSize + n*8
	if len(src) < dataStart {
		return offsetTable{}, surface.SizeMismatch("RLE offset table", len(src), dataStart)
	}

	t := offsetTable{
		starts:  make([]int, n),
		lengths: make([]int, n),
	}
	for i := 0; i < n; i++ {
		start := int(bitconv.U32BE(src, HeaderSize+i*4))
		length := int(bitconv.U32BE(src, HeaderSize+(n+i)*4))
		if start < dataStart || start+length > len(src) {
			return offsetTable{}, surface.Malformed("scanline %d at %d+%d outside %d-byte file", i, start, length, len(src))
		}
		t.starts[i], t.lengths[i] = start, length
	}
	return t, nil
}

// readRow expands one RLE scanline. Each packet starts with a count in the
// low seven bits; with the high bit set that many values follow, otherwise
// one value follows and is repeated. A zero count ends the row. Runs that
// would overflow the row are cut at the row end.
func (t offsetTable) readRow(src []byte, h Header, c, y int, row []byte) error {
	bpc := h.BytesPerChannel
	i := y + c*h.Height
	line := src[t.starts[i] : t.starts[i]+t.lengths[i]]

	// at reads the bpc-byte sample at off. Pixel values keep the high byte;
	// opcodes live in the low byte.
	at := func(off int, opcode bool) (uint8, bool) {
		if off+bpc > len(line) {
			return 0, false
		}
		if opcode {
			return line[off+bpc-1], true
		}
		return line[off], true
	}

	pos, x := 0, 0
	for x < len(row) {
		op, ok := at(pos, true)
		if !ok {
			return surface.Malformed("scanline ends after %d of %d pixels", x, len(row))
		}
		pos += bpc

		count := int(op & 0x7f)
		if count == 0 {
			break
		}
		if op&0x80 != 0 {
			for ; count > 0; count-- {
				v, ok := at(pos, false)
				if !ok {
					return surface.Malformed("literal run past end of scanline")
				}
				pos += bpc
				if x < len(row) {
					row[x] = v
					x++
				}
			}
			continue
		}

		v, ok := at(pos, false)
		if !ok {
			return surface.Malformed("repeat run past end of scanline")
		}
		pos += bpc
		for ; count > 0 && x < len(row); count-- {
			row[x] = v
			x++
		}
	}
	return nil
}
