package dxf

import (
	"fmt"
	"os"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// Stats handles DXF statistics operations
type Stats struct {
	maxFileSize int64
	validator   *Validator
}

// NewStats creates a new DXF stats analyzer with the specified constraints
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// GetFileStats returns detailed statistics about a single DXF file
func (s *Stats) GetFileStats(req DXFStatsFileRequest) (*DXFStatsFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := s.validator.ValidateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	doc, err := document.Load(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load DXF file: %w", err)
	}

	msp := doc.Modelspace()
	typeCounts := make(map[string]int)
	layers := make(map[string]struct{})
	for _, ent := range msp {
		typeCounts[ent.Type]++
		layers[ent.Layer] = struct{}{}
	}

	return &DXFStatsFileResult{
		Path:         req.Path,
		Size:         fileInfo.Size(),
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
		AcadVersion:  doc.AcadVersion,
		ReleaseName:  acadReleaseName(doc.AcadVersion),
		EntityCount:  len(msp),
		TypeCounts:   typeCounts,
		LayerCount:   len(layers),
	}, nil
}

// acadReleaseName maps a $ACADVER code to the drawing release it denotes
func acadReleaseName(acadVersion string) string {
	switch acadVersion {
	case "AC1009":
		return "R12"
	case "AC1012":
		return "R13"
	case "AC1014":
		return "R14"
	case "AC1015":
		return "R2000"
	case "AC1018":
		return "R2004"
	case "AC1021":
		return "R2007"
	case "AC1024":
		return "R2010"
	case "AC1027":
		return "R2013"
	case "AC1032":
		return "R2018"
	case "":
		return ""
	default:
		return "unknown"
	}
}
