package dxf

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Entities"

// ExportXLSX extracts all modelspace entities of a DXF file into an XLSX
// workbook with a single "Entities" sheet. Schema and row semantics are
// identical to the CSV export.
func (ex *Exporter) ExportXLSX(req DXFExportXLSXRequest) (*DXFExportXLSXResult, error) {
	records, warning, err := ex.collectRecords(req.Path)
	if err != nil {
		return nil, err
	}
	result := &DXFExportXLSXResult{Path: req.Path}
	if warning != "" {
		result.Warning = warning
		return result, nil
	}

	schema := ReconcileSchema(records)
	outputPath := resolveOutputPath(req.Path, req.OutputPath, ".xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, field := range schema {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, field); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		rowNum := i + 2
		for col, field := range schema {
			value, ok := rec[field]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
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
