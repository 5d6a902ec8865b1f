package texture

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/EchoTools/texdecode/pkg/gx"
	"github.com/EchoTools/texdecode/pkg/surface"
)

// Family identifies which decoder a dump is meant for.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyTegra
	FamilyGX
	FamilySGI
)

func (f Family) String() string {
	switch f {
	case FamilyTegra:
		return "tegra"
	case FamilyGX:
		return "gx"
	case FamilySGI:
		return "sgi"
	}
	return fmt.Sprintf("family(%d)", uint8(f))
}

// ParseFamily looks up a family by its String name.
func ParseFamily(name string) (Family, error) {
	for f := FamilyTegra; f <= FamilySGI; f++ {
		if f.String() == name {
			return f, nil
		}
	}
	return FamilyUnknown, surface.Unsupported("unknown texture family %q", name)
}

// Descriptor flags.
const (
	FlagSwizzled uint16 = 1 << iota
	FlagSigned
	FlagSRGB
)

// DescriptorMagic starts every descriptor.
var DescriptorMagic = [4]byte{'T', 'X', 'D', '1'}

// DescriptorSize is the fixed size of a descriptor.
const DescriptorSize = 64

// Descriptor is the 64-byte little-endian header written by extraction tools
// in front of texture bytes.
type Descriptor struct {
	Magic           [4]byte  // +0x00: "TXD1"
	Family          Family   // +0x04
	Format          uint8    // +0x05: surface.ChannelFormat or gx.PixelFormat
	Flags           uint16   // +0x06: FlagSwizzled, FlagSigned, FlagSRGB
	Width           uint32   // +0x08
	Height          uint32   // +0x0C
	Depth           uint32   // +0x10: stacked slices, Tegra only
	BlockHeightLog2 uint8    // +0x14: Tegra only
	PaletteFormat   uint8    // +0x15: gx.PaletteFormat
	_               uint16   // +0x16
	DataLength      uint32   // +0x18: bytes of texture data following the descriptor
	PaletteLength   uint32   // +0x1C: bytes of palette data following the texture data
	DXGIFormat      uint32   // +0x20: source DXGI_FORMAT if known, else 0
	Reserved        [28]byte // +0x24: padding to 64 bytes
}

// ParseDescriptor reads a descriptor from binary data.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	data := make([]byte, DescriptorSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	if [4]byte(data[0:4]) != DescriptorMagic {
		return nil, surface.Malformed("invalid descriptor magic %q", data[0:4])
	}

	d := &Descriptor{
		Magic:           DescriptorMagic,
		Family:          Family(data[0x04]),
		Format:          data[0x05],
		Flags:           binary.LittleEndian.Uint16(data[0x06:0x08]),
		Width:           binary.LittleEndian.Uint32(data[0x08:0x0C]),
		Height:          binary.LittleEndian.Uint32(data[0x0C:0x10]),
		Depth:           binary.LittleEndian.Uint32(data[0x10:0x14]),
		BlockHeightLog2: data[0x14],
		PaletteFormat:   data[0x15],
		DataLength:      binary.LittleEndian.Uint32(data[0x18:0x1C]),
		PaletteLength:   binary.LittleEndian.Uint32(data[0x1C:0x20]),
		DXGIFormat:      binary.LittleEndian.Uint32(data[0x20:0x24]),
	}
	copy(d.Reserved[:], data[0x24:])
	return d, nil
}

// ToBytes serializes the descriptor to 64 bytes.
func (d *Descriptor) ToBytes() []byte {
	data := make([]byte, DescriptorSize)
	copy(data[0:4], DescriptorMagic[:])
	data[0x04] = byte(d.Family)
	data[0x05] = d.Format
	binary.LittleEndian.PutUint16(data[0x06:0x08], d.Flags)
	binary.LittleEndian.PutUint32(data[0x08:0x0C], d.Width)
	binary.LittleEndian.PutUint32(data[0x0C:0x10], d.Height)
	binary.LittleEndian.PutUint32(data[0x10:0x14], d.Depth)
	data[0x14] = d.BlockHeightLog2
	data[0x15] = d.PaletteFormat
	binary.LittleEndian.PutUint32(data[0x18:0x1C], d.DataLength)
	binary.LittleEndian.PutUint32(data[0x1C:0x20], d.PaletteLength)
	binary.LittleEndian.PutUint32(data[0x20:0x24], d.DXGIFormat)
	copy(data[0x24:], d.Reserved[:])
	return data
}

// Selector returns the Tegra selector described by d.
func (d *Descriptor) Selector() Selector {
	return Selector{
		Format:   surface.ChannelFormat(d.Format),
		Swizzled: d.Flags&FlagSwizzled != 0,
		Signed:   d.Flags&FlagSigned != 0,
		SRGB:     d.Flags&FlagSRGB != 0,
	}
}

// MetaData returns the Tegra surface metadata described by d.
func (d *Descriptor) MetaData() surface.MetaData {
	return surface.MetaData{
		Flag:            d.Selector().Flag(),
		Width:           int(d.Width),
		Height:          int(d.Height),
		Depth:           max(int(d.Depth), 1),
		BlockHeightLog2: int(d.BlockHeightLog2),
	}
}

// FormatString names the format in the family's own terms.
func (d *Descriptor) FormatString() string {
	switch d.Family {
	case FamilyTegra:
		return d.Selector().String()
	case FamilyGX:
		f := gx.PixelFormat(d.Format)
		if f.IsPaletted() {
			return fmt.Sprintf("%s (palette %s)", f, gx.PaletteFormat(d.PaletteFormat))
		}
		return f.String()
	}
	return "-"
}

// String returns a human-readable representation.
func (d *Descriptor) String() string {
	s := fmt.Sprintf("Texture: %s %dx%d, format=%s, data_size=%d",
		d.Family, d.Width, d.Height, d.FormatString(), d.DataLength)
	if d.Depth > 1 {
		s += fmt.Sprintf(", depth=%d", d.Depth)
	}
	if d.PaletteLength > 0 {
		s += fmt.Sprintf(", palette_size=%d", d.PaletteLength)
	}
	if d.DXGIFormat != DXGI_FORMAT_UNKNOWN {
		s += ", dxgi=" + FormatName(d.DXGIFormat)
	}
	return s
}
