package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/EchoTools/texdecode/pkg/archive"
	"github.com/EchoTools/texdecode/pkg/blocklinear"
	"github.com/EchoTools/texdecode/pkg/gx"
	"github.com/EchoTools/texdecode/pkg/sgi"
	"github.com/EchoTools/texdecode/pkg/surface"
	"github.com/EchoTools/texdecode/pkg/texture"
)

// defaultBlockHeightLog2 is used for raw Tegra input when no block height
// is given. BlockHeight shrinks it for short surfaces.
const defaultBlockHeightLog2 = 4

// decodeOptions holds the flags shared by every command. Zero values leave
// the descriptor untouched.
type decodeOptions struct {
	family          string
	format          string
	dxgi            uint
	width           int
	height          int
	depth           int
	swizzled        bool
	blockHeightLog2 int
	signed          bool
	srgb            bool
	palette         string
	paletteFormat   string
	flip            bool
	scale           int
	lz4BlockSize    int
}

func (o *decodeOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.family, "family", "", "texture family: tegra, gx or sgi")
	fs.StringVar(&o.format, "format", "", "channel format (BC1, R8G8B8A8, ...) or GX pixel format (CMPR, RGB5A3, ...)")
	fs.UintVar(&o.dxgi, "dxgi", 0, "Tegra format given as a DXGI_FORMAT value")
	fs.IntVar(&o.width, "width", 0, "width in pixels")
	fs.IntVar(&o.height, "height", 0, "height in pixels")
	fs.IntVar(&o.depth, "depth", 0, "number of stacked slices")
	fs.BoolVar(&o.swizzled, "swizzled", false, "Tegra data is block-linear swizzled")
	fs.IntVar(&o.blockHeightLog2, "block-height-log2", -1, "log2 of the GOBs per block (default from descriptor, or 4)")
	fs.BoolVar(&o.signed, "signed", false, "BC4/BC5 data is SNORM")
	fs.BoolVar(&o.srgb, "srgb", false, "color data is sRGB")
	fs.StringVar(&o.palette, "palette", "", "palette file for GX C4/C8/C14X2")
	fs.StringVar(&o.paletteFormat, "palette-format", "", "GX palette format: IA8, RGB565 or RGB5A3")
	fs.BoolVar(&o.flip, "flip", false, "flip the output vertically")
	fs.IntVar(&o.scale, "scale", 1, "integer upscale factor (nearest neighbor)")
	fs.IntVar(&o.lz4BlockSize, "lz4-block-size", 0, "input is a raw LZ4 block of this uncompressed size")
}

// hasLayout reports whether any flag describing the texture itself was set.
func (o *decodeOptions) hasLayout() bool {
	return o.family != "" || o.format != "" || o.dxgi != 0 || o.width > 0 || o.height > 0
}

// loadInput reads a file and strips its compression layer.
func loadInput(path string, lz4BlockSize int) ([]byte, archive.Compression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, archive.None, fmt.Errorf("read %s: %w", path, err)
	}
	if lz4BlockSize > 0 {
		out, err := archive.DecompressLZ4Block(data, lz4BlockSize)
		return out, archive.LZ4Frame, err
	}
	return archive.Unwrap(data)
}

// buildDump turns unwrapped input into a dump. SGI files and dumps are
// recognized by their magic; anything else is raw texture data described
// entirely by flags.
func (o *decodeOptions) buildDump(data []byte) (*texture.Dump, error) {
	var d *texture.Dump
	switch {
	case sgi.IsSGI(data):
		w, h, err := sgi.Dimensions(data)
		if err != nil {
			return nil, err
		}
		return &texture.Dump{
			Descriptor: &texture.Descriptor{
				Magic:  texture.DescriptorMagic,
				Family: texture.FamilySGI,
				Width:  uint32(w),
				Height: uint32(h),
			},
			Data: data,
		}, nil

	case isDump(data):
		var err error
		if d, err = texture.ParseDump(data); err != nil {
			return nil, err
		}

	default:
		if !o.hasLayout() {
			return nil, surface.Malformed("input is not a texture dump or SGI image; describe it with -family, -format, -width and -height")
		}
		d = &texture.Dump{
			Descriptor: &texture.Descriptor{
				Magic:           texture.DescriptorMagic,
				Family:          texture.FamilyTegra,
				BlockHeightLog2: defaultBlockHeightLog2,
			},
			Data: data,
		}
	}

	if err := o.apply(d.Descriptor); err != nil {
		return nil, err
	}
	if o.palette != "" {
		palette, _, err := loadInput(o.palette, 0)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		d.Palette = palette
	}
	return d, nil
}

// apply overrides descriptor fields with the flags that were given.
func (o *decodeOptions) apply(desc *texture.Descriptor) error {
	if o.family != "" {
		family, err := texture.ParseFamily(o.family)
		if err != nil {
			return err
		}
		desc.Family = family
	}

	if o.dxgi != 0 {
		sel, err := texture.SelectorFromDXGI(uint32(o.dxgi), o.swizzled)
		if err != nil {
			return err
		}
		desc.Family = texture.FamilyTegra
		desc.Format = uint8(sel.Format)
		desc.DXGIFormat = uint32(o.dxgi)
		if sel.Signed {
			desc.Flags |= texture.FlagSigned
		}
		if sel.SRGB {
			desc.Flags |= texture.FlagSRGB
		}
	}

	if o.format != "" {
		switch desc.Family {
		case texture.FamilyTegra:
			f, err := surface.ParseChannelFormat(o.format)
			if err != nil {
				return err
			}
			desc.Format = uint8(f)
		case texture.FamilyGX:
			f, err := gx.ParsePixelFormat(o.format)
			if err != nil {
				return err
			}
			desc.Format = uint8(f)
		default:
			return surface.Unsupported("-format has no meaning for %s textures", desc.Family)
		}
	}

	if o.paletteFormat != "" {
		pf, err := gx.ParsePaletteFormat(o.paletteFormat)
		if err != nil {
			return err
		}
		desc.PaletteFormat = uint8(pf)
	}

	if o.width > 0 {
		desc.Width = uint32(o.width)
	}
	if o.height > 0 {
		desc.Height = uint32(o.height)
	}
	if o.depth > 0 {
		desc.Depth = uint32(o.depth)
	}
	if o.blockHeightLog2 >= 0 {
		desc.BlockHeightLog2 = uint8(o.blockHeightLog2)
	}
	if o.swizzled {
		desc.Flags |= texture.FlagSwizzled
	}
	if o.signed {
		desc.Flags |= texture.FlagSigned
	}
	if o.srgb {
		desc.Flags |= texture.FlagSRGB
	}
	return nil
}

// render converts a decoded texture into the image that gets saved.
func (o *decodeOptions) render(img *texture.Image) image.Image {
	var out image.Image = img.NRGBA()
	if img.BottomUp != o.flip {
		out = imaging.FlipV(out)
	}
	if o.scale > 1 {
		out = imaging.Resize(out, img.Width*o.scale, img.Height*o.scale, imaging.NearestNeighbor)
	}
	return out
}

// decodeFile decodes one input file and saves it as an image. The output
// format follows the file extension.
func decodeFile(inputPath, outputPath string, opts *decodeOptions) error {
	data, _, err := loadInput(inputPath, opts.lz4BlockSize)
	if err != nil {
		return err
	}

	d, err := opts.buildDump(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	img, err := d.Decode()
	if err != nil {
		return fmt.Errorf("decode %s: %w", d.Descriptor.FormatString(), err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := imaging.Save(opts.render(img), outputPath); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// deswizzleFile reorders a swizzled BCn surface into linear block order and
// writes it as a DDS file.
func deswizzleFile(inputPath, outputPath string, opts *decodeOptions) error {
	data, _, err := loadInput(inputPath, opts.lz4BlockSize)
	if err != nil {
		return err
	}

	d, err := opts.buildDump(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	desc := d.Descriptor
	if desc.Family != texture.FamilyTegra {
		return surface.Unsupported("deswizzle needs a tegra texture, got %s", desc.Family)
	}

	sel := desc.Selector()
	meta := desc.MetaData()
	blocks := d.Data
	if sel.Swizzled {
		if blocks, err = blocklinear.DeswizzleSurface(sel.Format, meta, d.Data); err != nil {
			return fmt.Errorf("deswizzle %s: %w", sel, err)
		}
	}

	dds, err := texture.ConvertBlocksToDDS(blocks, sel.Format, meta)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := os.WriteFile(outputPath, dds, 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// showInfo displays the layers and descriptor of an input file.
func showInfo(inputPath string, opts *decodeOptions) error {
	data, compression, err := loadInput(inputPath, opts.lz4BlockSize)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", inputPath)
	fmt.Printf("Compression: %s\n", compression)
	fmt.Printf("Data size: %d bytes (%.2f KB)\n", len(data), float64(len(data))/1024)

	if sgi.IsSGI(data) {
		h, err := sgi.ParseHeader(data)
		if err != nil {
			return fmt.Errorf("parse header: %w", err)
		}
		fmt.Printf("Image: SGI %dx%d, %d channel(s), %d byte(s) per channel\n",
			h.Width, h.Height, h.Channels, h.BytesPerChannel)
		fmt.Printf("Storage: %s\n", h.Storage)
		fmt.Printf("Dimension: %d\n", h.Dimension)
		fmt.Printf("Pixel range: %d-%d\n", h.PixMin, h.PixMax)
		if h.Name != "" {
			fmt.Printf("Name: %s\n", h.Name)
		}
		return nil
	}

	d, err := opts.buildDump(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Println(d.Descriptor.String())
	if d.Descriptor.Family == texture.FamilyTegra {
		sel, meta := d.Descriptor.Selector(), d.Descriptor.MetaData()
		fmt.Printf("Expected data size: %d bytes\n", texture.RequiredSize(sel, meta))
	}
	return nil
}

// packFile wraps raw texture bytes in a dump described by flags, optionally
// compressing the result into a ZSTD archive.
func packFile(inputPath, outputPath string, opts *decodeOptions, archived bool, level int) error {
	data, _, err := loadInput(inputPath, opts.lz4BlockSize)
	if err != nil {
		return err
	}

	d, err := opts.buildDump(data)
	if err != nil {
		return fmt.Errorf("describe: %w", err)
	}
	desc := d.Descriptor
	if desc.Family == texture.FamilyTegra && desc.DXGIFormat == texture.DXGI_FORMAT_UNKNOWN {
		sel := desc.Selector()
		if format, err := texture.DXGIFormat(sel.Format, sel.Flag()); err == nil {
			desc.DXGIFormat = format
		}
	}

	out := d.Bytes()
	if archived {
		var archiveOpts []archive.EncodeOption
		if level != 0 {
			archiveOpts = append(archiveOpts, archive.WithCompressionLevel(level))
		}
		if out, err = archive.EncodeBytes(out, archiveOpts...); err != nil {
			return fmt.Errorf("compress: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// isDump reports whether data starts with a descriptor.
func isDump(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[0:4], texture.DescriptorMagic[:])
}
