// Command gridconv converts an image into a pixel grid and writes the grid
// cells as CSV or JSON, without the GUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pixelgrid/internal/export"
	"pixelgrid/internal/grid"
	"pixelgrid/internal/gridstats"
	"pixelgrid/internal/ingest"
	"pixelgrid/internal/version"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func main() {
	imagePath := flag.String("image", "", "Path to source image (PNG, JPEG, or WebP)")
	size := flag.Int("size", grid.DefaultSize, "Grid resolution")
	format := flag.String("format", "csv", "Output format: csv or json")
	outPath := flag.String("out", "", "Output file (default stdout)")
	stats := flag.Bool("stats", false, "Print grid statistics to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gridconv v%s (%s)\n", version.Version, version.GitCommit)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: gridconv -image <path> [-size 50] [-format csv|json] [-out <path>]")
		os.Exit(1)
	}
	if !grid.IsSupportedSize(*size) {
		fmt.Fprintf(os.Stderr, "Unsupported grid size %d (supported: %v)\n",
			*size, grid.SupportedSizes)
		os.Exit(1)
	}
	if *format != "csv" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Unknown format %q (use csv or json)\n", *format)
		os.Exit(1)
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
		os.Exit(1)
	}

	name := filepath.Base(*imagePath)
	mimeType := mimeByExt[strings.ToLower(filepath.Ext(*imagePath))]

	g, err := ingest.FromBytes(name, mimeType, data, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion failed: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	records := export.Records(g)
	if *format == "json" {
		err = export.WriteJSON(out, records)
	} else {
		err = export.WriteCSV(out, records)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	if *stats {
		st := gridstats.Compute(g)
		fmt.Fprintf(os.Stderr, "Grid: %dx%d (%d cells)\n", g.Size(), g.Size(), st.CellCount)
		fmt.Fprintf(os.Stderr, "Luminance: mean %.3f, stddev %.3f, range %.3f-%.3f\n",
			st.MeanLuminance, st.StdDevLuminance, st.MinLuminance, st.MaxLuminance)
		fmt.Fprintf(os.Stderr, "Extreme contrast: %.1f:1\n", st.ExtremeContrast)
	}
}
