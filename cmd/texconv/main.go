// texconv - Texture decoder for extracted console texture dumps
//
// Decodes Tegra (BC1-BC5, optionally block-linear swizzled), GX tiled and
// SGI textures to PNG. Inputs may be wrapped in a ZSTD archive, a zstd,
// LZ4 or zlib stream, or a raw LZ4 block of known size.
//
// Usage:
//   texconv decode [flags] input.tex output.png   # Dump → PNG
//   texconv deswizzle [flags] input.tex out.dds   # Swizzled BCn → DDS
//   texconv info input.tex                        # Show texture info
//   texconv batch [flags] dir/ out/               # Batch decode directory
//   texconv pack [flags] input.bin output.tex     # Raw bytes → dump

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "decode":
		opts, fs := newDecodeFlags("decode")
		fs.Parse(args)
		if fs.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "Usage: texconv decode [flags] input output.png\n")
			os.Exit(1)
		}
		if err := decodeFile(fs.Arg(0), fs.Arg(1), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded %s → %s\n", fs.Arg(0), fs.Arg(1))

	case "deswizzle":
		opts, fs := newDecodeFlags("deswizzle")
		fs.Parse(args)
		if fs.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "Usage: texconv deswizzle [flags] input output.dds\n")
			os.Exit(1)
		}
		if err := deswizzleFile(fs.Arg(0), fs.Arg(1), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deswizzled %s → %s\n", fs.Arg(0), fs.Arg(1))

	case "info":
		opts, fs := newDecodeFlags("info")
		fs.Parse(args)
		if fs.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "Usage: texconv info input\n")
			os.Exit(1)
		}
		if err := showInfo(fs.Arg(0), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "batch":
		opts, fs := newDecodeFlags("batch")
		fs.Parse(args)
		if fs.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "Usage: texconv batch [flags] input_dir output_dir\n")
			os.Exit(1)
		}
		if err := batchDecode(fs.Arg(0), fs.Arg(1), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "pack":
		opts, fs := newDecodeFlags("pack")
		archived := fs.Bool("zstd", false, "wrap the dump in a ZSTD archive")
		level := fs.Int("level", 0, "zstd compression level (0 uses the archive default)")
		fs.Parse(args)
		if fs.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "Usage: texconv pack [flags] input output.tex\n")
			os.Exit(1)
		}
		if err := packFile(fs.Arg(0), fs.Arg(1), opts, *archived, *level); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Packed %s → %s\n", fs.Arg(0), fs.Arg(1))

	case "-h", "-help", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newDecodeFlags(name string) (*decodeOptions, *flag.FlagSet) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	opts := &decodeOptions{}
	opts.register(fs)
	return opts, fs
}

func printUsage() {
	fmt.Println("texconv - Texture decoder for extracted console texture dumps")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  texconv decode [flags] <input> <output.png>    # Dump → PNG")
	fmt.Println("  texconv deswizzle [flags] <input> <out.dds>    # Swizzled BCn → DDS")
	fmt.Println("  texconv info [flags] <input>                   # Show info")
	fmt.Println("  texconv batch [flags] <dir> <out>              # Batch decode")
	fmt.Println("  texconv pack [flags] <input> <output.tex>      # Raw bytes → dump")
	fmt.Println()
	fmt.Println("Families:")
	fmt.Println("  tegra  - BC1-BC5, R8, R8G8B8A8, B8G8R8A8; linear or block-linear")
	fmt.Println("  gx     - I4, I8, IA4, IA8, RGB565, RGB5A3, RGBA8, C4, C8, C14X2, CMPR")
	fmt.Println("  sgi    - SGI images, verbatim or RLE (detected automatically)")
	fmt.Println()
	fmt.Println("Run 'texconv <command> -h' for the flags of a command.")
}
