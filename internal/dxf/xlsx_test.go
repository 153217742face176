package dxf

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExporter_ExportXLSX(t *testing.T) {
	exporter := NewExporter(1024 * 1024)
	dir := t.TempDir()

	input := writeDrawing(t, dir, "plan.dxf", drawingContent(
		lineEntity("A1", "Walls", 0, 0, 10, 0),
		circleEntity("A2", "Walls", 2.25),
	))
	output := filepath.Join(dir, "plan.xlsx")

	result, err := exporter.ExportXLSX(DXFExportXLSXRequest{Path: input, OutputPath: output})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", result.RowCount)
	}

	f, err := excelize.OpenFile(result.OutputPath)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != xlsxSheetName {
		t.Errorf("sheets = %v, want [%s]", sheets, xlsxSheetName)
	}

	rows, err := f.GetRows(xlsxSheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	wantHeader := []string{"Handle", "EntityType", "Layer", "Radius", "Position"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	if !reflect.DeepEqual(result.Columns, wantHeader) {
		t.Errorf("Columns = %v, want %v", result.Columns, wantHeader)
	}

	wantCircle := []string{"A2", "CIRCLE", "Walls", "2.25", "Center(0.000,0.000,0.000)"}
	if !reflect.DeepEqual(rows[2], wantCircle) {
		t.Errorf("circle row = %v, want %v", rows[2], wantCircle)
	}
}

func TestExporter_ExportXLSX_DefaultOutputPath(t *testing.T) {
	exporter := NewExporter(1024 * 1024)
	dir := t.TempDir()

	input := writeDrawing(t, dir, "site.dxf", drawingContent(
		lineEntity("B1", "0", 1, 1, 2, 2),
	))

	result, err := exporter.ExportXLSX(DXFExportXLSXRequest{Path: input})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := filepath.Abs(filepath.Join(dir, "site.xlsx"))
	if err != nil {
		t.Fatalf("failed to resolve expected path: %v", err)
	}
	if result.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, want)
	}
}

func TestExporter_ExportXLSX_EmptyDrawingWarns(t *testing.T) {
	exporter := NewExporter(1024 * 1024)
	dir := t.TempDir()

	input := writeDrawing(t, dir, "empty.dxf", drawingContent())
	output := filepath.Join(dir, "empty.xlsx")

	result, err := exporter.ExportXLSX(DXFExportXLSXRequest{Path: input, OutputPath: output})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected a warning for a drawing without entities")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("no output file should be written for an empty drawing")
	}
}
