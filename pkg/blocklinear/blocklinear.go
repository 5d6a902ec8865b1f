// Package blocklinear implements the NVIDIA block-linear ("GOB") memory
// layout used by Tegra GPUs.
//
// A GOB is 64 bytes wide and 8 rows tall. BlockHeight GOBs are stacked
// vertically to form one block, and blocks are laid out left to right, then
// top to bottom. All coordinates here are in format blocks (4x4 pixels for
// BCn, single pixels for uncompressed formats).
package blocklinear

import "github.com/EchoTools/texdecode/pkg/surface"

const (
	GOBWidth  = 64 // bytes
	GOBHeight = 8  // rows
	GOBSize   = GOBWidth * GOBHeight
)

// Address returns the byte offset of block (x, y) inside a swizzled buffer
// that starts at base.
func Address(x, y, widthInBlocks, bytesPerBlock, blockHeight, base int) int {
	widthInGOBs := surface.DivRoundUp(widthInBlocks*bytesPerBlock, GOBWidth)
	xb := x * bytesPerBlock

	gob := base +
		(y/(GOBHeight*blockHeight))*GOBSize*blockHeight*widthInGOBs +
		(xb/GOBWidth)*GOBSize*blockHeight +
		((y%(GOBHeight*blockHeight))/GOBHeight)*GOBSize

	return gob +
		((xb%64)/32)*256 +
		((y%8)/2)*64 +
		((xb%32)/16)*32 +
		(y%2)*16 +
		xb%16
}

// BlockHeight resolves the GOB count per block for a surface that is
// heightInBlocks rows tall. The requested height (1 << log2) is halved while
// the next power of two of heightInBlocks is smaller than one block, since a
// block taller than the image produces wrong addresses.
func BlockHeight(heightInBlocks, log2 int) int {
	bh := 1 << log2
	for bh > 1 && nextPow2(heightInBlocks) < GOBHeight*bh {
		bh >>= 1
	}
	return bh
}

// RequiredUnswizzledLength returns the exact size of a swizzled buffer holding
// a surface of widthInBlocks x heightInBlocks blocks. The row pitch is rounded
// up to whole GOBs and the height to whole blocks of 8*blockHeight rows.
func RequiredUnswizzledLength(widthInBlocks, heightInBlocks, bytesPerBlock, blockHeight int) int {
	return surface.RoundUp(widthInBlocks*bytesPerBlock, GOBWidth) *
		surface.RoundUp(heightInBlocks, GOBHeight*blockHeight)
}

func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// Layout is the resolved block geometry of one swizzled surface.
type Layout struct {
	BlocksWide    int
	BlocksHigh    int
	BytesPerBlock int
	BlockHeight   int
}

// NewLayout computes the layout of a surface stored in format f. Depth slices
// are flattened into one tall surface.
func NewLayout(f surface.ChannelFormat, meta surface.MetaData) Layout {
	hb := meta.BlocksHigh(f)
	return Layout{
		BlocksWide:    meta.BlocksWide(f),
		BlocksHigh:    hb,
		BytesPerBlock: f.BytesPerBlock(),
		BlockHeight:   BlockHeight(hb, meta.BlockHeightLog2),
	}
}

// Address returns the swizzled offset of block (x, y).
func (l Layout) Address(x, y int) int {
	return Address(x, y, l.BlocksWide, l.BytesPerBlock, l.BlockHeight, 0)
}

// SwizzledLength is the exact size of the swizzled buffer.
func (l Layout) SwizzledLength() int {
	return RequiredUnswizzledLength(l.BlocksWide, l.BlocksHigh, l.BytesPerBlock, l.BlockHeight)
}

// LinearLength is the size of the same blocks in row-major order.
func (l Layout) LinearLength() int {
	return l.BlocksWide * l.BlocksHigh * l.BytesPerBlock
}

// Check fails with a size mismatch unless src is exactly SwizzledLength bytes.
func (l Layout) Check(src []byte) error {
	if want := l.SwizzledLength(); len(src) != want {
		return surface.SizeMismatch("swizzled source", len(src), want)
	}
	return nil
}
