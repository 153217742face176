package dxf

import (
	"fmt"
	"os"
	"strings"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// Validator handles DXF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new DXF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a DXF file
func (v *Validator) ValidateFile(req DXFValidateFileRequest) (*DXFValidateFileResult, error) {
	result := &DXFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	err := v.validateDXFFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	return result, nil
}

// validateDXFFile performs detailed validation on a DXF file
func (v *Validator) validateDXFFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(filePath, fileInfo); err != nil {
		return err
	}

	// Parse the document to confirm it is structurally sound
	if _, err := document.Load(filePath); err != nil {
		return fmt.Errorf("invalid DXF file: %w", err)
	}

	return nil
}

// IsValidDXF performs a quick check to see if a file is a valid DXF
func (v *Validator) IsValidDXF(filePath string) bool {
	return v.validateDXFFile(filePath) == nil
}

// ValidateFileInfo performs basic validation on file info without parsing the DXF
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".dxf") {
		return fmt.Errorf("file is not a DXF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// checkFileSize guards components that parse whole documents against
// oversized inputs
func checkFileSize(filePath string, maxFileSize int64) error {
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), maxFileSize)
	}
	return nil
}
