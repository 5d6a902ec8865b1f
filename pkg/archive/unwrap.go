package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// Compression is the outer layer wrapped around a dump.
type Compression uint8

const (
	None Compression = iota
	ZSTDArchive
	ZSTDFrame
	LZ4Frame
	Zlib
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case ZSTDArchive:
		return "zstd-archive"
	case ZSTDFrame:
		return "zstd"
	case LZ4Frame:
		return "lz4"
	case Zlib:
		return "zlib"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

const (
	zstdFrameMagic = 0xFD2FB528
	lz4FrameMagic  = 0x184D2204
)

// Detect identifies the compression layer from the leading bytes of data.
func Detect(data []byte) Compression {
	if len(data) >= 4 {
		if [4]byte(data[0:4]) == Magic {
			return ZSTDArchive
		}
		switch binary.LittleEndian.Uint32(data[0:4]) {
		case zstdFrameMagic:
			return ZSTDFrame
		case lz4FrameMagic:
			return LZ4Frame
		}
	}
	// zlib: deflate method, window <= 32K, header check bits
	if len(data) >= 2 && data[0]&0x0f == 8 && data[0]>>4 <= 7 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0 {
		return Zlib
	}
	return None
}

// Unwrap removes one detected compression layer. Data without a known layer
// is returned unchanged.
func Unwrap(data []byte) ([]byte, Compression, error) {
	c := Detect(data)
	var out []byte
	var err error
	switch c {
	case None:
		return data, None, nil
	case ZSTDArchive:
		out, err = ReadAll(bytes.NewReader(data))
	case ZSTDFrame:
		out, err = zstd.Decompress(nil, data)
	case LZ4Frame:
		out, err = readLimited(lz4.NewReader(bytes.NewReader(data)))
	case Zlib:
		var zr io.ReadCloser
		if zr, err = zlib.NewReader(bytes.NewReader(data)); err == nil {
			out, err = readLimited(zr)
			zr.Close()
		}
	}
	if err != nil {
		return nil, c, fmt.Errorf("unwrap %s: %w", c, err)
	}
	return out, c, nil
}

// DecompressLZ4Block expands a raw LZ4 block of known uncompressed size.
// Raw blocks carry no magic, so Detect never reports them.
func DecompressLZ4Block(src []byte, size int) ([]byte, error) {
	if size <= 0 || size > maxUncompressed {
		return nil, surface.Malformed("LZ4 block size %d", size)
	}
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 block: %w", surface.SizeMismatch("decompressed block", n, size))
	}
	return dst, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxUncompressed+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxUncompressed {
		return nil, surface.Malformed("stream expands past %d bytes", maxUncompressed)
	}
	return out, nil
}
