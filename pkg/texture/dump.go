package texture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/EchoTools/texdecode/pkg/gx"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// maxDumpSection bounds the data and palette lengths read from a descriptor.
const maxDumpSection = 1 << 30

// Dump is a descriptor followed by texture data and an optional palette.
type Dump struct {
	Descriptor *Descriptor
	Data       []byte
	Palette    []byte
}

// ReadDump reads a descriptor and the sections it announces.
func ReadDump(r io.Reader) (*Dump, error) {
	desc, err := ParseDescriptor(r)
	if err != nil {
		return nil, err
	}
	if desc.DataLength > maxDumpSection || desc.PaletteLength > maxDumpSection {
		return nil, surface.Malformed("section sizes %d/%d exceed limit", desc.DataLength, desc.PaletteLength)
	}

	d := &Dump{
		Descriptor: desc,
		Data:       make([]byte, desc.DataLength),
		Palette:    make([]byte, desc.PaletteLength),
	}
	if _, err := io.ReadFull(r, d.Data); err != nil {
		return nil, fmt.Errorf("failed to read texture data: %w", err)
	}
	if _, err := io.ReadFull(r, d.Palette); err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	return d, nil
}

// ParseDump reads a dump held in memory.
func ParseDump(data []byte) (*Dump, error) {
	return ReadDump(bytes.NewReader(data))
}

// Bytes serializes the dump, updating the descriptor's section lengths.
func (d *Dump) Bytes() []byte {
	d.Descriptor.DataLength = uint32(len(d.Data))
	d.Descriptor.PaletteLength = uint32(len(d.Palette))

	out := make([]byte, 0, DescriptorSize+len(d.Data)+len(d.Palette))
	out = append(out, d.Descriptor.ToBytes()...)
	out = append(out, d.Data...)
	return append(out, d.Palette...)
}

// Decode decodes the dump with the decoder its descriptor names.
func (d *Dump) Decode() (*Image, error) {
	desc := d.Descriptor
	switch desc.Family {
	case FamilyTegra:
		return DecodeTegra(desc.Selector(), desc.MetaData(), d.Data)
	case FamilyGX:
		return DecodeGX(gx.PixelFormat(desc.Format), gx.PaletteFormat(desc.PaletteFormat),
			d.Data, d.Palette, int(desc.Width), int(desc.Height))
	case FamilySGI:
		return DecodeSGI(d.Data)
	}
	return nil, surface.Unsupported("texture %s", desc.Family)
}
