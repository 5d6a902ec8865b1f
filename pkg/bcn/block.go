package bcn

import "github.com/EchoTools/texdecode/pkg/bitconv"

// texels holds one decoded 4x4 block in row-major order.
type texels[T Sample] [16][4]T

// blockFunc decodes a single encoded block into 16 texels.
type blockFunc[T Sample] func(block []byte, out *texels[T])

func decodeBC1(b []byte, out *texels[uint8]) {
	decodeColor(b, out, true)
}

// decodeBC2 reads two 32-bit planes of 4-bit alpha ahead of a BC1 color block.
func decodeBC2(b []byte, out *texels[uint8]) {
	decodeColor(b[8:16], out, false)
	planes := [2]uint32{bitconv.U32LE(b, 0), bitconv.U32LE(b, 4)}
	for i := range out {
		nibble := planes[i/8] >> (4 * (i % 8)) & 0xf
		out[i][3] = bitconv.Expand4to8(nibble)
	}
}

// decodeBC3 reads an interpolated alpha block ahead of a BC1 color block.
func decodeBC3(b []byte, out *texels[uint8]) {
	decodeColor(b[8:16], out, false)
	ramp := ScalarRamp(b[0], b[1])
	for i := range out {
		out[i][3] = ramp[scalarIndex(b, i)]
	}
}

func decodeBC4[T Sample](b []byte, out *texels[T]) {
	ramp := ScalarRamp(T(b[0]), T(b[1]))
	_, hi := Bounds[T]()
	for i := range out {
		v := ramp[scalarIndex(b, i)]
		out[i] = [4]T{v, v, v, T(hi)}
	}
}

// decodeBC5 decodes two consecutive scalar blocks: the first into R, the
// second into G. B and A are forced to MAX.
func decodeBC5[T Sample](b []byte, out *texels[T]) {
	red := ScalarRamp(T(b[0]), T(b[1]))
	green := ScalarRamp(T(b[8]), T(b[9]))
	_, hi := Bounds[T]()
	for i := range out {
		out[i][0] = red[scalarIndex(b[0:8], i)]
		out[i][1] = green[scalarIndex(b[8:16], i)]
		out[i][2] = T(hi)
		out[i][3] = T(hi)
	}
}

// decodeColor decodes the 8-byte color part shared by BC1-BC3. When
// withAlpha is false the alpha channel is left for the caller to fill.
func decodeColor(b []byte, out *texels[uint8], withAlpha bool) {
	ramp := ColorRamp(bitconv.U16LE(b, 0), bitconv.U16LE(b, 2), TransparentBlack)
	indices := bitconv.U32LE(b, 4)
	for i := range out {
		c := ramp[indices>>(2*i)&3]
		out[i][0], out[i][1], out[i][2] = c[0], c[1], c[2]
		if withAlpha {
			out[i][3] = c[3]
		}
	}
}

// scalarIndex returns the 3-bit index of texel i from the two 24-bit index
// planes that follow the endpoints of a scalar block.
func scalarIndex(b []byte, i int) uint32 {
	if i < 8 {
		return bitconv.U24LE(b, 2) >> (3 * i) & 7
	}
	return bitconv.U24LE(b, 5) >> (3 * (i - 8)) & 7
}
