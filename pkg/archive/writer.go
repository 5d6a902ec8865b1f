package archive

import (
	"fmt"

	"github.com/DataDog/zstd"
)

type encodeConfig struct {
	level int
}

// EncodeOption configures EncodeBytes.
type EncodeOption func(*encodeConfig)

// WithCompressionLevel sets the zstd compression level.
func WithCompressionLevel(level int) EncodeOption {
	return func(c *encodeConfig) {
		c.level = level
	}
}

// EncodeBytes compresses data into an in-memory archive: a header carrying
// both lengths followed by a single zstd frame.
func EncodeBytes(data []byte, opts ...EncodeOption) ([]byte, error) {
	cfg := encodeConfig{level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(&cfg)
	}

	compressed, err := zstd.CompressLevel(nil, data, cfg.level)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	out := make([]byte, HeaderSize, HeaderSize+len(compressed))
	NewHeader(uint64(len(data)), uint64(len(compressed))).EncodeTo(out)
	return append(out, compressed...), nil
}
