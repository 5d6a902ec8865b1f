package surface

import "fmt"

// Flag is the numeric interpretation of a surface's channels.
type Flag uint8

const (
	UNorm Flag = iota
	SRGB
	SNorm
)

func (f Flag) String() string {
	switch f {
	case UNorm:
		return "UNorm"
	case SRGB:
		return "sRGB"
	case SNorm:
		return "SNorm"
	default:
		return fmt.Sprintf("Flag(%d)", uint8(f))
	}
}

// MetaData describes the dimensions of a surface. Depth slices are stacked
// vertically into one tall 2D surface before any block math.
type MetaData struct {
	Flag            Flag
	Width           int
	Height          int
	Depth           int
	BlockHeightLog2 int
}

// Tall returns the height of the flattened surface (Height * Depth).
func (m MetaData) Tall() int {
	if m.Depth < 1 {
		return m.Height
	}
	return m.Height * m.Depth
}

// BlocksWide returns the number of block columns for format f.
func (m MetaData) BlocksWide(f ChannelFormat) int {
	return DivRoundUp(m.Width, f.BlockWidth())
}

// BlocksHigh returns the number of block rows of the flattened surface.
func (m MetaData) BlocksHigh(f ChannelFormat) int {
	return DivRoundUp(m.Tall(), f.BlockHeight())
}

// Validate checks that the dimensions are usable.
func (m MetaData) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return Unsupported("invalid surface dimensions %dx%d", m.Width, m.Height)
	}
	if m.Depth < 0 {
		return Unsupported("invalid surface depth %d", m.Depth)
	}
	if m.BlockHeightLog2 < 0 || m.BlockHeightLog2 > 5 {
		return Unsupported("block height log2 %d out of range 0..5", m.BlockHeightLog2)
	}
	return nil
}

// DivRoundUp returns ceil(n / d) for positive d.
func DivRoundUp(n, d int) int {
	return (n + d - 1) / d
}

// RoundUp rounds n up to a multiple of m.
func RoundUp(n, m int) int {
	return DivRoundUp(n, m) * m
}
