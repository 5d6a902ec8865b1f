// Package archive unwraps the compressed containers texture dumps arrive in.
//
// Extraction tools store dumps either raw or wrapped in one compression
// layer: a ZSTD archive (a 24-byte "ZSTD" header followed by a zstd stream),
// a bare zstd frame, an LZ4 frame or a zlib stream. Unwrap detects and
// removes that layer.
package archive

import (
	"encoding/binary"

	"github.com/EchoTools/texdecode/pkg/surface"
)

// Magic bytes identifying a ZSTD archive header.
var Magic = [4]byte{0x5a, 0x53, 0x54, 0x44} // "ZSTD"

// HeaderSize is the fixed binary size of an archive header.
const HeaderSize = 24 // 4 + 4 + 8 + 8 bytes

// headerLength is the value of Header.HeaderLength: the bytes after it.
const headerLength = 16

// Header is the header of a ZSTD archive.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// NewHeader creates an archive header for the given sizes.
func NewHeader(uncompressedSize, compressedSize uint64) *Header {
	return &Header{
		Magic:            Magic,
		HeaderLength:     headerLength,
		Length:           uncompressedSize,
		CompressedLength: compressedSize,
	}
}

// Validate checks the header fields. An empty archive is malformed since
// every dump carries at least a descriptor.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return surface.Malformed("invalid archive magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != headerLength {
		return surface.Malformed("invalid archive header length: expected %d, got %d", headerLength, h.HeaderLength)
	}
	if h.Length == 0 {
		return surface.Malformed("archive uncompressed size is zero")
	}
	if h.Length > maxUncompressed {
		return surface.Malformed("archive uncompressed size %d exceeds %d", h.Length, maxUncompressed)
	}
	if h.CompressedLength == 0 {
		return surface.Malformed("archive compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must hold HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.Length)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedLength)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return surface.SizeMismatch("archive header", len(data), HeaderSize)
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from buf without validating it.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(data[4:8])
	h.Length = binary.LittleEndian.Uint64(data[8:16])
	h.CompressedLength = binary.LittleEndian.Uint64(data[16:24])
}
