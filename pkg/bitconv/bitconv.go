// Package bitconv provides the integer primitives shared by the texture
// decoders: endian-aware multi-byte readers, n-bit to 8-bit channel
// expansion and the interpolation helpers used by block compressed formats.
//
// The readers index the slice directly. Reading past the end of the slice
// panics; callers are expected to have validated buffer sizes up front.
package bitconv

// U16LE reads a little-endian uint16 at offset off.
func U16LE(b []byte, off int) uint16 {
	_ = b[off+1]
	return uint16(b[off]) | uint16(b[off+1])<<8
}

// U16BE reads a big-endian uint16 at offset off.
func U16BE(b []byte, off int) uint16 {
	_ = b[off+1]
	return uint16(b[off])<<8 | uint16(b[off+1])
}

// U24LE reads a little-endian 24-bit value at offset off.
func U24LE(b []byte, off int) uint32 {
	_ = b[off+2]
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16
}

// U24BE reads a big-endian 24-bit value at offset off.
func U24BE(b []byte, off int) uint32 {
	_ = b[off+2]
	return uint32(b[off])<<16 | uint32(b[off+1])<<8 | uint32(b[off+2])
}

// U32LE reads a little-endian uint32 at offset off.
func U32LE(b []byte, off int) uint32 {
	_ = b[off+3]
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

// U32BE reads a big-endian uint32 at offset off.
func U32BE(b []byte, off int) uint32 {
	_ = b[off+3]
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}

// ExpandBits scales a width-bit unsigned value to 8 bits by bit replication.
// ExpandBits(w, 0) is 0 and ExpandBits(w, 1<<w-1) is 255 for every width in
// 1..8. Bits of v above width are ignored.
func ExpandBits(width uint, v uint32) uint8 {
	v &= 1<<width - 1
	switch width {
	case 1:
		return uint8(v * 0xff)
	case 2:
		return uint8(v * 0x55)
	case 3:
		return uint8(v<<5 | v<<2 | v>>1)
	case 4, 5, 6, 7, 8:
		return uint8(v<<(8-width) | v>>(2*width-8))
	}
	panic("bitconv: unsupported bit width")
}

// Expand3to8 expands a 3-bit channel.
func Expand3to8(v uint32) uint8 { return ExpandBits(3, v) }

// Expand4to8 expands a 4-bit channel.
func Expand4to8(v uint32) uint8 { return ExpandBits(4, v) }

// Expand5to8 expands a 5-bit channel.
func Expand5to8(v uint32) uint8 { return ExpandBits(5, v) }

// Expand6to8 expands a 6-bit channel.
func Expand6to8(v uint32) uint8 { return ExpandBits(6, v) }

// S3TCBlend returns the hardware approximation of a/3 + 2b/3 used for the
// interpolated BC1 palette entries. It is (3a + 5b) >> 3, not (a + 2b) / 3.
func S3TCBlend(a, b uint8) uint8 {
	return uint8((3*uint32(a) + 5*uint32(b)) >> 3)
}

// HalfBlend returns the truncated average of a and b.
func HalfBlend(a, b uint8) uint8 {
	return uint8((uint32(a) + uint32(b)) >> 1)
}

// RGB565 unpacks a 5:6:5 color into expanded 8-bit channels.
func RGB565(c uint16) (r, g, b uint8) {
	return Expand5to8(uint32(c>>11) & 0x1f),
		Expand6to8(uint32(c>>5) & 0x3f),
		Expand5to8(uint32(c) & 0x1f)
}
