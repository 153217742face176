package dxf

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// utf8BOM marks the output as UTF-8 for spreadsheet consumers
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter converts drawing entities into delimited tabular files.
//
// Concurrent exports targeting the same output path are not coordinated;
// callers that share an output file must serialize their calls.
type Exporter struct {
	maxFileSize int64
	extractor   *Extractor
}

// NewExporter creates a new tabular exporter with the specified constraints
func NewExporter(maxFileSize int64) *Exporter {
	return &Exporter{
		maxFileSize: maxFileSize,
		extractor:   NewExtractor(),
	}
}

// ExportCSV extracts all modelspace entities of a DXF file into a CSV file
// with a UTF-8 byte-order marker. When the request has no output path the
// input path with a .csv extension is used. A drawing with zero entities
// yields a warning result and no file.
func (ex *Exporter) ExportCSV(req DXFExportCSVRequest) (*DXFExportCSVResult, error) {
	records, warning, err := ex.collectRecords(req.Path)
	if err != nil {
		return nil, err
	}
	result := &DXFExportCSVResult{Path: req.Path}
	if warning != "" {
		result.Warning = warning
		return result, nil
	}

	schema := ReconcileSchema(records)
	outputPath := resolveOutputPath(req.Path, req.OutputPath, ".csv")

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(schema); err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}
	row := make([]string, len(schema))
	for _, rec := range records {
		for i, field := range schema {
			row[i] = rec[field]
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}

	absPath, err := writeFileAtomic(outputPath, buf.Bytes())
	if err != nil {
		return nil, err
	}

	result.OutputPath = absPath
	result.RowCount = len(records)
	result.Columns = schema
	return result, nil
}

// collectRecords loads the document and normalizes every modelspace entity.
// The full batch is held in memory because the column schema is not knowable
// until all records are seen.
func (ex *Exporter) collectRecords(path string) ([]Record, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("path cannot be empty")
	}

	// The input check runs before the document provider is touched
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("input file does not exist: %s: %w", path, err)
		}
		return nil, "", fmt.Errorf("cannot access input file: %w", err)
	}
	if info.Size() > ex.maxFileSize {
		return nil, "", fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), ex.maxFileSize)
	}

	doc, err := document.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load DXF file: %w", err)
	}

	msp := doc.Modelspace()
	if len(msp) == 0 {
		return nil, fmt.Sprintf("no entities found in drawing: %s", path), nil
	}

	records := make([]Record, 0, len(msp))
	for _, ent := range msp {
		rec := ex.extractor.Extract(ent)
		for tag, value := range xdataProjection(ent) {
			rec[tag] = value
		}
		records = append(records, rec)
	}
	return records, "", nil
}

// resolveOutputPath applies the default output naming: the input path with
// its extension replaced
func resolveOutputPath(inputPath, outputPath, ext string) string {
	if outputPath != "" {
		return outputPath
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

// writeFileAtomic writes content through a temp file and rename, so a write
// failure never leaves a partial output file. Missing parent directories are
// created. Returns the absolute output path.
func writeFileAtomic(path string, content []byte) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dxf-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize output file: %w", err)
	}
	if err := os.Chmod(absPath, 0o644); err != nil {
		return "", fmt.Errorf("failed to set output permissions: %w", err)
	}

	return absPath, nil
}
