// bmpfx reads an uncompressed 24/32-bit bitmap, runs a chain of pixel
// transforms over it and writes the result back out as a canonical BMP.
//
// Usage:
//
//	bmpfx [flags] <input.bmp> [transform ...]
//
// Transforms are applied in order. A -pipeline YAML file can supply the
// list instead of (or in addition to) the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anas-shakeel/bmpfx/internal/bmp"
	"github.com/anas-shakeel/bmpfx/internal/pipeline"
)

func main() {
	var (
		pipelineFile = flag.String("pipeline", "", "YAML file with an ordered list of transforms")
		output       = flag.String("o", "", "output file (defaults to <input>_out.bmp)")
		channel      = flag.String("channel", "", "keep only one color channel (red, green, or blue)")
		showMeta     = flag.Bool("meta", false, "print image metadata and exit")
		preview      = flag.Bool("preview", false, "render the result in the terminal (small images only)")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	input := args[0]
	transforms := args[1:]

	if *pipelineFile != "" {
		cfg, err := pipeline.Load(*pipelineFile)
		if err != nil {
			log.Fatal(err)
		}
		transforms = append(cfg.Transforms, transforms...)
	}

	img, err := readBitmap(input)
	if err != nil {
		log.Fatal(err)
	}

	if *showMeta {
		fmt.Printf("Filename: \t%v\n%s", input, img.Metadata())
		return
	}

	if err := pipeline.Run(img, transforms); err != nil {
		log.Fatal(err)
	}

	if *channel != "" {
		img, err = img.Channel(*channel)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *preview {
		img.Preview(os.Stdout)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "_out.bmp"
	}
	if err := writeBitmap(img, out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", out)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bmpfx [flags] <input.bmp> [transform ...]\n\nTransforms: %s\n\nFlags:\n",
		strings.Join(pipeline.Names(), ", "))
	flag.PrintDefaults()
}

// readBitmap opens and decodes a bitmap file.
func readBitmap(path string) (*bmp.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return bmp.Decode(file)
}

// writeBitmap encodes the bitmap onto local disk.
func writeBitmap(img *bmp.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return bmp.Encode(file, img)
}
