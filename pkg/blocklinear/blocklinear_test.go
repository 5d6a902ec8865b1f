package blocklinear

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/EchoTools/texdecode/pkg/surface"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		widthInBlocks int
		bytesPerBlock int
		blockHeight   int
		base          int
		want          int
	}{
		{"Origin", 0, 0, 8, 16, 1, 0, 0},
		{"Base", 0, 0, 8, 16, 1, 4096, 4096},
		{"SecondRow", 0, 1, 8, 16, 1, 0, 16},
		{"ThirdRow", 0, 2, 8, 16, 1, 0, 64},
		{"SecondColumn", 1, 0, 8, 16, 1, 0, 32},
		{"ThirdColumn", 2, 0, 8, 16, 1, 0, 256},
		{"NextGOBAcross", 4, 0, 8, 16, 1, 0, 512},
		{"NextGOBRowDown", 0, 8, 8, 16, 1, 0, 1024},
		{"StackedGOB", 0, 8, 8, 16, 2, 0, 512},
		{"BC1HalfUnit", 1, 0, 8, 8, 1, 0, 8},
		{"BC1SecondUnit", 2, 0, 8, 8, 1, 0, 32},
		{"OddRow", 1, 3, 8, 16, 1, 0, 64 + 16 + 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Address(tt.x, tt.y, tt.widthInBlocks, tt.bytesPerBlock, tt.blockHeight, tt.base)
			if got != tt.want {
				t.Errorf("Address(%d, %d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBlockHeight(t *testing.T) {
	tests := []struct {
		heightInBlocks int
		log2           int
		want           int
	}{
		{1, 4, 1},
		{4, 4, 1},
		{8, 4, 1},
		{9, 4, 2},
		{16, 4, 2},
		{17, 4, 4},
		{128, 4, 16},
		{1024, 4, 16},
		{1024, 0, 1},
		{64, 5, 8},
	}

	for _, tt := range tests {
		if got := BlockHeight(tt.heightInBlocks, tt.log2); got != tt.want {
			t.Errorf("BlockHeight(%d, %d): got %d, want %d", tt.heightInBlocks, tt.log2, got, tt.want)
		}
	}
}

func TestRequiredUnswizzledLength(t *testing.T) {
	tests := []struct {
		w, h, bpb, bh int
		want          int
	}{
		{1, 1, 8, 1, 64 * 8},
		{4, 8, 16, 1, 64 * 8},
		{5, 3, 16, 2, 128 * 16},
		{64, 64, 4, 8, 256 * 64},
	}

	for _, tt := range tests {
		if got := RequiredUnswizzledLength(tt.w, tt.h, tt.bpb, tt.bh); got != tt.want {
			t.Errorf("RequiredUnswizzledLength(%d, %d, %d, %d): got %d, want %d",
				tt.w, tt.h, tt.bpb, tt.bh, got, tt.want)
		}
	}
}

func TestAddressesAreUniqueAndInRange(t *testing.T) {
	for _, f := range []surface.ChannelFormat{surface.BC1, surface.BC3, surface.R8G8B8A8, surface.R8} {
		for log2 := 0; log2 <= 5; log2++ {
			meta := surface.MetaData{Width: 100, Height: 260, Depth: 1, BlockHeightLog2: log2}
			l := NewLayout(f, meta)
			size := l.SwizzledLength()
			seen := make(map[int]bool)
			for y := 0; y < l.BlocksHigh; y++ {
				for x := 0; x < l.BlocksWide; x++ {
					addr := l.Address(x, y)
					if addr < 0 || addr+l.BytesPerBlock > size {
						t.Fatalf("%s log2=%d: block (%d,%d) at %d outside %d", f, log2, x, y, addr, size)
					}
					if seen[addr] {
						t.Fatalf("%s log2=%d: block (%d,%d) reuses address %d", f, log2, x, y, addr)
					}
					seen[addr] = true
				}
			}
		}
	}
}

func TestSwizzleRoundTrip(t *testing.T) {
	formats := []surface.ChannelFormat{surface.BC1, surface.BC3, surface.BC4, surface.R8G8B8A8, surface.ASTC8x8}
	sizes := [][2]int{{4, 4}, {1, 1}, {3, 7}, {17, 33}, {64, 64}, {100, 50}, {256, 128}, {513, 9}}
	rng := rand.New(rand.NewSource(1))

	for _, f := range formats {
		for _, size := range sizes {
			for log2 := 0; log2 <= 5; log2++ {
				name := fmt.Sprintf("%s/%dx%d/bh%d", f, size[0], size[1], log2)
				t.Run(name, func(t *testing.T) {
					meta := surface.MetaData{Width: size[0], Height: size[1], Depth: 1, BlockHeightLog2: log2}
					l := NewLayout(f, meta)

					linear := make([]byte, l.LinearLength())
					rng.Read(linear)

					swizzled, err := Swizzle(f, meta, linear)
					if err != nil {
						t.Fatalf("swizzle: %v", err)
					}
					if len(swizzled) != l.SwizzledLength() {
						t.Fatalf("swizzled length: got %d, want %d", len(swizzled), l.SwizzledLength())
					}

					back, err := Deswizzle(size[0], size[1], f, swizzled, log2)
					if err != nil {
						t.Fatalf("deswizzle: %v", err)
					}
					if !bytes.Equal(back, linear) {
						t.Error("deswizzle(swizzle(x)) != x")
					}
				})
			}
		}
	}
}

func TestDeswizzleRoundTripAligned(t *testing.T) {
	tests := []struct {
		format        surface.ChannelFormat
		width, height int
		log2          int
	}{
		{surface.BC3, 16, 32, 0},
		{surface.BC1, 32, 64, 1},
		{surface.R8G8B8A8, 32, 64, 3},
		{surface.BC5, 64, 512, 4},
	}
	rng := rand.New(rand.NewSource(2))

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			meta := surface.MetaData{Width: tt.width, Height: tt.height, Depth: 1, BlockHeightLog2: tt.log2}
			l := NewLayout(tt.format, meta)
			if l.SwizzledLength() != l.LinearLength() {
				t.Fatalf("test layout is padded: %d vs %d", l.SwizzledLength(), l.LinearLength())
			}

			src := make([]byte, l.SwizzledLength())
			rng.Read(src)

			linear, err := DeswizzleSurface(tt.format, meta, src)
			if err != nil {
				t.Fatalf("deswizzle: %v", err)
			}
			back, err := Swizzle(tt.format, meta, linear)
			if err != nil {
				t.Fatalf("swizzle: %v", err)
			}
			if !bytes.Equal(back, src) {
				t.Error("swizzle(deswizzle(x)) != x")
			}
		})
	}
}

func TestDeswizzleDepthFlattens(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tall := surface.MetaData{Width: 20, Height: 24, Depth: 1, BlockHeightLog2: 2}
	stacked := surface.MetaData{Width: 20, Height: 8, Depth: 3, BlockHeightLog2: 2}

	src := make([]byte, NewLayout(surface.BC1, tall).SwizzledLength())
	rng.Read(src)

	a, err := DeswizzleSurface(surface.BC1, tall, src)
	if err != nil {
		t.Fatalf("tall: %v", err)
	}
	b, err := DeswizzleSurface(surface.BC1, stacked, src)
	if err != nil {
		t.Fatalf("stacked: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("depth slices should deswizzle like one tall surface")
	}
}

func TestDeswizzleSizeMismatch(t *testing.T) {
	meta := surface.MetaData{Width: 64, Height: 64, Depth: 1, BlockHeightLog2: 4}
	required := NewLayout(surface.BC1, meta).SwizzledLength()

	for _, n := range []int{required - 1, required + 1, 0} {
		_, err := DeswizzleSurface(surface.BC1, meta, make([]byte, n))
		if !errors.Is(err, surface.ErrSizeMismatch) {
			t.Errorf("len %d: got %v, want size mismatch", n, err)
		}
	}

	if _, err := Swizzle(surface.BC1, meta, make([]byte, 7)); !errors.Is(err, surface.ErrSizeMismatch) {
		t.Errorf("swizzle short input: got %v, want size mismatch", err)
	}
}

func TestDeswizzleUnsupported(t *testing.T) {
	_, err := Deswizzle(4, 4, surface.FormatUnknown, make([]byte, 512), 0)
	if !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("got %v, want unsupported", err)
	}
}
