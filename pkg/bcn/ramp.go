package bcn

import "github.com/EchoTools/texdecode/pkg/bitconv"

// Sample is the storage type of one decoded channel: uint8 for UNORM output
// and int8 for SNORM output.
type Sample interface {
	~uint8 | ~int8
}

// Bounds returns the MIN and MAX values representable by T.
func Bounds[T Sample]() (lo, hi int) {
	var zero T
	if zero-1 > zero {
		return 0, 255
	}
	return -128, 127
}

// Narrow clamps v into the range of T.
func Narrow[T Sample](v int) T {
	lo, hi := Bounds[T]()
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	return T(v)
}

// ScalarRamp builds the 8-entry interpolation table of a BC3 alpha, BC4 or
// BC5 channel block from its two endpoints.
//
// With a1 > a2 entries 2-7 interpolate in sevenths. Otherwise entries 2-5
// interpolate in fifths and entries 6 and 7 are MIN and MAX of T.
func ScalarRamp[T Sample](a1, a2 T) [8]T {
	var ramp [8]T
	ramp[0], ramp[1] = a1, a2

	x1, x2 := int(a1), int(a2)
	if a1 > a2 {
		for i := 1; i <= 6; i++ {
			ramp[i+1] = Narrow[T](((7-i)*x1 + i*x2) / 7)
		}
		return ramp
	}

	for i := 1; i <= 4; i++ {
		ramp[i+1] = Narrow[T](((5-i)*x1 + i*x2) / 5)
	}
	lo, hi := Bounds[T]()
	ramp[6], ramp[7] = T(lo), T(hi)
	return ramp
}

// Color is one RGBA8 palette entry.
type Color [4]uint8

// PunchThrough selects how entry 3 of a three-color block is built.
type PunchThrough uint8

const (
	// TransparentBlack is the BC1 rule: entry 3 is (0, 0, 0, 0).
	TransparentBlack PunchThrough = iota

	// TransparentKeepColor is the GameCube CMPR rule: entry 3 repeats the
	// RGB of entry 2 with alpha 0.
	TransparentKeepColor
)

// ColorRamp builds the 4-entry palette of a BC1-style color block. The
// endpoints are compared as raw 16-bit values: c1 > c2 selects four opaque
// colors, anything else selects three colors plus a transparent entry.
func ColorRamp(c1, c2 uint16, mode PunchThrough) [4]Color {
	var ramp [4]Color
	r1, g1, b1 := bitconv.RGB565(c1)
	r2, g2, b2 := bitconv.RGB565(c2)
	ramp[0] = Color{r1, g1, b1, 0xff}
	ramp[1] = Color{r2, g2, b2, 0xff}

	if c1 > c2 {
		ramp[2] = Color{
			bitconv.S3TCBlend(r2, r1),
			bitconv.S3TCBlend(g2, g1),
			bitconv.S3TCBlend(b2, b1),
			0xff,
		}
		ramp[3] = Color{
			bitconv.S3TCBlend(r1, r2),
			bitconv.S3TCBlend(g1, g2),
			bitconv.S3TCBlend(b1, b2),
			0xff,
		}
		return ramp
	}

	ramp[2] = Color{
		bitconv.HalfBlend(r1, r2),
		bitconv.HalfBlend(g1, g2),
		bitconv.HalfBlend(b1, b2),
		0xff,
	}
	switch mode {
	case TransparentKeepColor:
		ramp[3] = Color{ramp[2][0], ramp[2][1], ramp[2][2], 0}
	default:
		ramp[3] = Color{0, 0, 0, 0}
	}
	return ramp
}
