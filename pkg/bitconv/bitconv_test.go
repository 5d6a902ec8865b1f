package bitconv

import "testing"

func TestExpandBitsExtremes(t *testing.T) {
	for width := uint(1); width <= 8; width++ {
		if got := ExpandBits(width, 0); got != 0 {
			t.Errorf("ExpandBits(%d, 0): got %d, want 0", width, got)
		}
		if got := ExpandBits(width, 1<<width-1); got != 255 {
			t.Errorf("ExpandBits(%d, max): got %d, want 255", width, got)
		}
	}
}

func TestExpandBitsMonotonic(t *testing.T) {
	for width := uint(1); width <= 8; width++ {
		prev := -1
		for v := uint32(0); v < 1<<width; v++ {
			got := int(ExpandBits(width, v))
			if got <= prev {
				t.Fatalf("ExpandBits(%d, %d) = %d, not above previous %d", width, v, got, prev)
			}
			prev = got
		}
	}
}

func TestExpandBitsReference(t *testing.T) {
	tests := []struct {
		width uint
		value uint32
		want  uint8
	}{
		{3, 1, 0x24},  // 001 -> 00100100
		{3, 4, 0x92},  // 100 -> 10010010
		{4, 0x8, 0x88},
		{4, 0x3, 0x33},
		{5, 0x10, 0x84}, // 10000 -> 10000100
		{5, 0x01, 0x08},
		{6, 0x20, 0x82}, // 100000 -> 10000010
		{6, 0x01, 0x04},
		{8, 0x5a, 0x5a},
	}

	for _, tt := range tests {
		if got := ExpandBits(tt.width, tt.value); got != tt.want {
			t.Errorf("ExpandBits(%d, %#x): got %#x, want %#x", tt.width, tt.value, got, tt.want)
		}
	}
}

func TestExpandHelpers(t *testing.T) {
	if Expand3to8(7) != 255 || Expand4to8(15) != 255 || Expand5to8(31) != 255 || Expand6to8(63) != 255 {
		t.Error("specialised expanders do not reach 255")
	}
	if Expand5to8(0x20|0x03) != Expand5to8(0x03) {
		t.Error("bits above the width should be ignored")
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b     uint8
		s3tc     uint8
		halfWant uint8
	}{
		{0, 255, 159, 127},
		{255, 0, 95, 127},
		{10, 10, 10, 10},
		{0, 0, 0, 0},
		{255, 255, 255, 255},
	}

	for _, tt := range tests {
		if got := S3TCBlend(tt.a, tt.b); got != tt.s3tc {
			t.Errorf("S3TCBlend(%d, %d): got %d, want %d", tt.a, tt.b, got, tt.s3tc)
		}
		if got := HalfBlend(tt.a, tt.b); got != tt.halfWant {
			t.Errorf("HalfBlend(%d, %d): got %d, want %d", tt.a, tt.b, got, tt.halfWant)
		}
	}
}

func TestReaders(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	if got := U16LE(b, 1); got != 0x0302 {
		t.Errorf("U16LE: got %#x", got)
	}
	if got := U16BE(b, 1); got != 0x0203 {
		t.Errorf("U16BE: got %#x", got)
	}
	if got := U24LE(b, 2); got != 0x050403 {
		t.Errorf("U24LE: got %#x", got)
	}
	if got := U24BE(b, 2); got != 0x030405 {
		t.Errorf("U24BE: got %#x", got)
	}
	if got := U32LE(b, 0); got != 0x04030201 {
		t.Errorf("U32LE: got %#x", got)
	}
	if got := U32BE(b, 1); got != 0x02030405 {
		t.Errorf("U32BE: got %#x", got)
	}
}

func TestReadersPanicPastEnd(t *testing.T) {
	readers := map[string]func([]byte, int){
		"U16LE": func(b []byte, off int) { U16LE(b, off) },
		"U16BE": func(b []byte, off int) { U16BE(b, off) },
		"U24LE": func(b []byte, off int) { U24LE(b, off) },
		"U24BE": func(b []byte, off int) { U24BE(b, off) },
		"U32LE": func(b []byte, off int) { U32LE(b, off) },
		"U32BE": func(b []byte, off int) { U32BE(b, off) },
	}

	for name, read := range readers {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for out-of-range read")
				}
			}()
			read([]byte{0x00}, 0)
		})
	}
}

func TestRGB565(t *testing.T) {
	r, g, b := RGB565(0xF800)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("RGB565(0xF800): got (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}
	r, g, b = RGB565(0x07E0)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("RGB565(0x07E0): got (%d, %d, %d), want (0, 255, 0)", r, g, b)
	}
}
