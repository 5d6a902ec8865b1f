package gx

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/EchoTools/texdecode/pkg/bcn"
	"github.com/EchoTools/texdecode/pkg/surface"
)

func pixel(out []byte, width, x, y int) []byte {
	o := (y*width + x) * 4
	return out[o : o+4]
}

func TestEncodedSize(t *testing.T) {
	tests := []struct {
		format        PixelFormat
		width, height int
		want          int
	}{
		{I4, 8, 8, 32},
		{I4, 1, 1, 32},
		{I8, 8, 4, 32},
		{I8, 10, 4, 64},
		{IA4, 8, 4, 32},
		{IA8, 4, 4, 32},
		{RGB565, 4, 4, 32},
		{RGB5A3, 5, 5, 128},
		{RGBA8, 4, 4, 64},
		{CMPR, 8, 8, 32},
		{CMPR, 16, 4, 64},
		{C4, 8, 8, 32},
		{C8, 8, 4, 32},
		{C14X2, 4, 4, 32},
		{PixelFormat(0x7), 4, 4, 0},
	}

	for _, tt := range tests {
		if got := EncodedSize(tt.format, tt.width, tt.height); got != tt.want {
			t.Errorf("EncodedSize(%s, %d, %d): got %d, want %d", tt.format, tt.width, tt.height, got, tt.want)
		}
	}
}

func TestBlockSize(t *testing.T) {
	tests := []struct {
		format PixelFormat
		w, h   int
	}{
		{I4, 8, 8},
		{I8, 8, 4},
		{IA4, 8, 4},
		{IA8, 4, 4},
		{RGB565, 4, 4},
		{RGB5A3, 4, 4},
		{RGBA8, 4, 4},
		{CMPR, 8, 8},
		{C4, 8, 8},
		{C8, 8, 4},
		{C14X2, 4, 4},
	}

	for _, tt := range tests {
		w, h := tt.format.BlockSize()
		if w != tt.w || h != tt.h {
			t.Errorf("%s block size: got %dx%d, want %dx%d", tt.format, w, h, tt.w, tt.h)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if f, err := ParsePixelFormat("cmpr"); err != nil || f != CMPR {
		t.Errorf("ParsePixelFormat(cmpr): got %v, %v", f, err)
	}
	if _, err := ParsePixelFormat("DXT1"); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("ParsePixelFormat(DXT1): got %v, want unsupported", err)
	}
	if p, err := ParsePaletteFormat("rgb5a3"); err != nil || p != PaletteRGB5A3 {
		t.Errorf("ParsePaletteFormat(rgb5a3): got %v, %v", p, err)
	}
	if _, err := ParsePaletteFormat("I8"); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("ParsePaletteFormat(I8): got %v, want unsupported", err)
	}
}

func TestDecodeRGBA8PlaneOrder(t *testing.T) {
	src := make([]byte, 64)
	for i := 0; i < 16; i++ {
		src[i*2] = 0x10 + byte(i)    // A
		src[i*2+1] = 0x20 + byte(i)  // R
		src[32+i*2] = 0x30 + byte(i) // G
		src[33+i*2] = 0x40 + byte(i) // B
	}

	out, err := Decode(RGBA8, 0, src, nil, 4, 4)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i := 0; i < 16; i++ {
		want := []byte{0x20 + byte(i), 0x30 + byte(i), 0x40 + byte(i), 0x10 + byte(i)}
		if got := out[i*4 : i*4+4]; !bytes.Equal(got, want) {
			t.Errorf("pixel %d: got %v, want %v", i, got, want)
		}
	}
}

func TestDecodeRGBA8SecondTile(t *testing.T) {
	src := make([]byte, 128)
	// first pixel of the second tile
	src[64], src[65], src[96], src[97] = 1, 2, 3, 4

	out, err := Decode(RGBA8, 0, src, nil, 6, 2)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := pixel(out, 6, 4, 0); !bytes.Equal(got, []byte{2, 3, 4, 1}) {
		t.Errorf("pixel (4,0): got %v, want [2 3 4 1]", got)
	}
}

func TestDecodeCMPRThreeColorKeepsColor(t *testing.T) {
	src := make([]byte, 32)
	for sub := 0; sub < 4; sub++ {
		b := src[sub*8:]
		// c1 = 0x001F (blue) <= c2 = 0xF800 (red)
		b[0], b[1], b[2], b[3] = 0x00, 0x1F, 0xF8, 0x00
		b[4], b[5], b[6], b[7] = 0xFF, 0xFF, 0xFF, 0xFF
	}

	out, err := Decode(CMPR, 0, src, nil, 8, 8)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	ramp := bcn.ColorRamp(0x001F, 0xF800, bcn.TransparentKeepColor)
	for i := 0; i < 64; i++ {
		px := out[i*4 : i*4+4]
		if px[3] != 0 {
			t.Fatalf("pixel %d: alpha %d, want 0", i, px[3])
		}
		if px[0] != ramp[2][0] || px[1] != ramp[2][1] || px[2] != ramp[2][2] {
			t.Fatalf("pixel %d: RGB %v, want entry 2 RGB %v", i, px[:3], ramp[2][:3])
		}
	}

	if bc1 := bcn.ColorRamp(0x001F, 0xF800, bcn.TransparentBlack); bc1[3] == ramp[3] {
		t.Error("CMPR entry 3 should differ from BC1 transparent black")
	}
	if !bytes.Equal(out[:4], []byte{127, 0, 127, 0}) {
		t.Errorf("pixel 0: got %v, want [127 0 127 0]", out[:4])
	}
}

func TestDecodeCMPRQuadrants(t *testing.T) {
	colors := []uint16{0xF800, 0x07E0, 0x001F, 0xFFFF}
	src := make([]byte, 32)
	for sub, c := range colors {
		b := src[sub*8:]
		b[0], b[1] = byte(c>>8), byte(c)
	}
	// UL row 0: pixel 0 takes index 1 (c2, black), pixels 1-3 take index 0
	src[4] = 0x40

	out, err := Decode(CMPR, 0, src, nil, 8, 8)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	tests := []struct {
		x, y int
		want []byte
	}{
		{0, 0, []byte{0, 0, 0, 255}},
		{1, 0, []byte{255, 0, 0, 255}},
		{3, 3, []byte{255, 0, 0, 255}},
		{4, 0, []byte{0, 255, 0, 255}},
		{7, 3, []byte{0, 255, 0, 255}},
		{0, 4, []byte{0, 0, 255, 255}},
		{4, 4, []byte{255, 255, 255, 255}},
		{7, 7, []byte{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := pixel(out, 8, tt.x, tt.y); !bytes.Equal(got, tt.want) {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeCMPRClipsToImage(t *testing.T) {
	src := make([]byte, 32)
	for sub := 0; sub < 4; sub++ {
		src[sub*8] = 0xFF
		src[sub*8+1] = 0xFF
	}
	out, err := Decode(CMPR, 0, src, nil, 5, 3)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != 5*3*4 {
		t.Fatalf("Expected %d bytes, got %d", 5*3*4, len(out))
	}
	for i := 0; i < len(out); i++ {
		if out[i] != 255 {
			t.Fatalf("byte %d: got %d, want 255", i, out[i])
		}
	}
}

func TestDecodeCursorAdvancesThroughPadding(t *testing.T) {
	src := make([]byte, EncodedSize(I8, 10, 6))
	for i := range src {
		src[i] = byte(i)
	}

	out, err := Decode(I8, 0, src, nil, 10, 6)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	tests := []struct {
		x, y int
		want byte
	}{
		{0, 0, 0},
		{7, 0, 7},
		{0, 1, 8},
		{8, 0, 32},
		{9, 0, 33},
		{9, 3, 57},
		{0, 4, 64},
		{9, 5, 32*3 + 8 + 1},
	}
	for _, tt := range tests {
		got := pixel(out, 10, tt.x, tt.y)
		want := []byte{tt.want, tt.want, tt.want, tt.want}
		if !bytes.Equal(got, want) {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, want)
		}
	}
}

func TestDecodeIntensityFormats(t *testing.T) {
	tests := []struct {
		name   string
		format PixelFormat
		first  []byte
		want   [2][]byte
	}{
		{"I4", I4, []byte{0xF0}, [2][]byte{{255, 255, 255, 255}, {0, 0, 0, 0}}},
		{"I8", I8, []byte{0x7F, 0x01}, [2][]byte{{0x7F, 0x7F, 0x7F, 0x7F}, {1, 1, 1, 1}}},
		{"IA4", IA4, []byte{0xA5, 0x0F}, [2][]byte{{0x55, 0x55, 0x55, 0xAA}, {0xFF, 0xFF, 0xFF, 0x00}}},
		{"IA8", IA8, []byte{0x80, 0x40, 0xFF, 0x00}, [2][]byte{{0x40, 0x40, 0x40, 0x80}, {0, 0, 0, 0xFF}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.format.BlockSize()
			src := make([]byte, EncodedSize(tt.format, w, h))
			copy(src, tt.first)

			out, err := Decode(tt.format, 0, src, nil, w, h)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			for i, want := range tt.want {
				if got := out[i*4 : i*4+4]; !bytes.Equal(got, want) {
					t.Errorf("pixel %d: got %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestRGB5A3(t *testing.T) {
	tests := []struct {
		v    uint16
		want [4]uint8
	}{
		{0xFC00, [4]uint8{255, 0, 0, 255}},
		{0x83E0, [4]uint8{0, 255, 0, 255}},
		{0x801F, [4]uint8{0, 0, 255, 255}},
		{0x7F00, [4]uint8{255, 0, 0, 255}},
		{0x0F0F, [4]uint8{255, 0, 255, 0}},
		{0x3123, [4]uint8{0x11, 0x22, 0x33, 109}},
	}

	for _, tt := range tests {
		if got := rgb5a3(tt.v); got != tt.want {
			t.Errorf("rgb5a3(%#04x): got %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestDecodeRGB565BigEndian(t *testing.T) {
	src := make([]byte, 32)
	src[0], src[1] = 0xF8, 0x00
	src[2], src[3] = 0x00, 0xF8

	out, err := Decode(RGB565, 0, src, nil, 4, 4)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out[0:4], []byte{255, 0, 0, 255}) {
		t.Errorf("pixel 0: got %v, want red", out[0:4])
	}
	if !bytes.Equal(out[4:8], []byte{0, 28, 198, 255}) {
		t.Errorf("pixel 1: got %v, want [0 28 198 255]", out[4:8])
	}
}

func TestDecodePalette(t *testing.T) {
	pal := []byte{0xF8, 0x00, 0x07, 0xE0, 0x00}
	out, err := DecodePalette(PaletteRGB565, pal)
	if err != nil {
		t.Fatalf("DecodePalette failed: %v", err)
	}
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}

	out, err = DecodePalette(PaletteIA8, []byte{0x80, 0x40})
	if err != nil {
		t.Fatalf("DecodePalette failed: %v", err)
	}
	if !bytes.Equal(out, []byte{0x40, 0x40, 0x40, 0x80}) {
		t.Errorf("IA8: got %v", out)
	}

	if _, err := DecodePalette(PaletteFormat(9), pal); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("got %v, want unsupported", err)
	}
}

func TestDecodePaletted(t *testing.T) {
	pal := []byte{0xF8, 0x00, 0x07, 0xE0, 0x00, 0x1F}

	tests := []struct {
		name   string
		format PixelFormat
		first  []byte
		want   [2][]byte
	}{
		{"C4", C4, []byte{0x12}, [2][]byte{{0, 255, 0, 255}, {0, 0, 255, 255}}},
		{"C8", C8, []byte{0x01, 0x05}, [2][]byte{{0, 255, 0, 255}, {0, 0, 0, 0}}},
		{"C14X2", C14X2, []byte{0xC0, 0x02, 0x00, 0x00}, [2][]byte{{0, 0, 255, 255}, {255, 0, 0, 255}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.format.BlockSize()
			src := make([]byte, EncodedSize(tt.format, w, h))
			copy(src, tt.first)

			out, err := Decode(tt.format, PaletteRGB565, src, pal, w, h)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			for i, want := range tt.want {
				if got := out[i*4 : i*4+4]; !bytes.Equal(got, want) {
					t.Errorf("pixel %d: got %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(CMPR, 0, make([]byte, 31), nil, 8, 8); !errors.Is(err, surface.ErrSizeMismatch) {
		t.Errorf("short source: got %v, want size mismatch", err)
	}
	if _, err := Decode(CMPR, 0, make([]byte, 64), nil, 8, 8); err != nil {
		t.Errorf("trailing data should be ignored: %v", err)
	}
	if _, err := Decode(PixelFormat(0x7), 0, make([]byte, 64), nil, 4, 4); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("unknown format: got %v, want unsupported", err)
	}
	if _, err := Decode(C8, PaletteFormat(3), make([]byte, 32), nil, 8, 4); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("unknown palette format: got %v, want unsupported", err)
	}
	if _, err := Decode(I8, 0, nil, nil, 0, 4); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("zero width: got %v, want unsupported", err)
	}
	if _, err := Decode(I8, 0, make([]byte, 16), nil, math.MaxInt32, math.MaxInt32); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("overflowing size: got %v, want unsupported", err)
	}
	if _, err := Decode(RGBA8, 0, make([]byte, 64), nil, MaxDimension+1, 4); !errors.Is(err, surface.ErrUnsupported) {
		t.Errorf("width past MaxDimension: got %v, want unsupported", err)
	}
	if got := EncodedSize(I8, math.MaxInt32, math.MaxInt32); got != 0 {
		t.Errorf("EncodedSize for overflowing size: got %d, want 0", got)
	}
}
