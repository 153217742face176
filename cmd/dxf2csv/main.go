package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf"
)

var (
	outputPath   = flag.String("o", "", "Output CSV path (defaults to the input path with a .csv extension)")
	outputFormat = flag.String("format", "text", "Result output format: text, json")
	xlsx         = flag.Bool("xlsx", false, "Write an XLSX workbook instead of CSV")
	maxFileSize  = flag.Int64("maxfilesize", 100*1024*1024, "Maximum DXF file size in bytes")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: DXF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	dxfPath := flag.Arg(0)
	if _, err := os.Stat(dxfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", dxfPath)
		os.Exit(1)
	}

	exporter := dxf.NewExporter(*maxFileSize)

	var outPath string
	var rowCount int
	var columns []string
	var warning string

	if *xlsx {
		result, err := exporter.ExportXLSX(dxf.DXFExportXLSXRequest{Path: dxfPath, OutputPath: *outputPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting entities: %v\n", err)
			os.Exit(1)
		}
		outPath, rowCount, columns, warning = result.OutputPath, result.RowCount, result.Columns, result.Warning
	} else {
		result, err := exporter.ExportCSV(dxf.DXFExportCSVRequest{Path: dxfPath, OutputPath: *outputPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting entities: %v\n", err)
			os.Exit(1)
		}
		outPath, rowCount, columns, warning = result.OutputPath, result.RowCount, result.Columns, result.Warning
	}

	if err := outputResults(dxfPath, outPath, rowCount, columns, warning); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
	if warning != "" {
		os.Exit(1)
	}
}

func outputResults(inputPath, outPath string, rowCount int, columns []string, warning string) error {
	if *outputFormat == "json" {
		report := struct {
			Input    string   `json:"input"`
			Output   string   `json:"output,omitempty"`
			RowCount int      `json:"row_count"`
			Columns  []string `json:"columns,omitempty"`
			Warning  string   `json:"warning,omitempty"`
		}{inputPath, outPath, rowCount, columns, warning}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if warning != "" {
		fmt.Printf("Warning: %s\n", warning)
		return nil
	}
	fmt.Printf("Exported %d entities from %s\n", rowCount, filepath.Base(inputPath))
	fmt.Printf("Output: %s\n", outPath)
	fmt.Printf("Columns: %d\n", len(columns))
	return nil
}

func printHelp() {
	fmt.Println("dxf2csv - Export DXF drawing entities to a CSV or XLSX table")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func printUsage() {
	fmt.Printf("Usage: %s [options] <drawing.dxf>\n", os.Args[0])
}
