package dxf

import (
	"fmt"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/security"
)

// Service handles DXF file operations by orchestrating the individual
// components behind one facade
type Service struct {
	maxFileSize   int64
	inspector     *Inspector
	exporter      *Exporter
	validator     *Validator
	stats         *Stats
	search        *Search
	serverInfo    *ServerInfo
	pathValidator *security.PathValidator
}

// NewService creates a new DXF service with all components
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	s := &Service{
		maxFileSize:   maxFileSize,
		inspector:     NewInspector(maxFileSize),
		exporter:      NewExporter(maxFileSize),
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
	}
	s.serverInfo = NewServerInfo(s)
	return s, nil
}

// DXFInspectStructure previews the structure and XDATA of a DXF file
func (s *Service) DXFInspectStructure(req DXFInspectStructureRequest) (*DXFInspectStructureResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.inspector.InspectStructure(req)
}

// DXFExportCSV extracts all entities of a DXF file into a CSV table
func (s *Service) DXFExportCSV(req DXFExportCSVRequest) (*DXFExportCSVResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if req.OutputPath != "" {
		if err := s.pathValidator.ValidatePath(req.OutputPath); err != nil {
			return nil, fmt.Errorf("security validation failed: %w", err)
		}
	}
	return s.exporter.ExportCSV(req)
}

// DXFExportXLSX extracts all entities of a DXF file into an XLSX workbook
func (s *Service) DXFExportXLSX(req DXFExportXLSXRequest) (*DXFExportXLSXResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if req.OutputPath != "" {
		if err := s.pathValidator.ValidatePath(req.OutputPath); err != nil {
			return nil, fmt.Errorf("security validation failed: %w", err)
		}
	}
	return s.exporter.ExportXLSX(req)
}

// DXFValidateFile performs validation on a DXF file
func (s *Service) DXFValidateFile(req DXFValidateFileRequest) (*DXFValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// DXFStatsFile returns detailed statistics about a single DXF file
func (s *Service) DXFStatsFile(req DXFStatsFileRequest) (*DXFStatsFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(req)
}

// DXFSearchDirectory searches for DXF files in a directory
func (s *Service) DXFSearchDirectory(req DXFSearchDirectoryRequest) (*DXFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.search.SearchDirectory(req)
}

// DXFServerInfo returns server information, tool inventory and usage guidance
func (s *Service) DXFServerInfo(
	req DXFServerInfoRequest, serverName, version, defaultDirectory string,
) (*DXFServerInfoResult, error) {
	return s.serverInfo.GetServerInfo(req, serverName, version, defaultDirectory)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidDXF performs a quick validation check on a file
func (s *Service) IsValidDXF(filePath string) bool {
	return s.validator.IsValidDXF(filePath)
}

// FindDXFsInDirectory finds all DXF files in a directory without filtering
func (s *Service) FindDXFsInDirectory(directory string) ([]FileInfo, error) {
	return s.search.FindDXFsInDirectory(directory)
}

// CountDXFsInDirectory counts the number of valid DXF files in a directory
func (s *Service) CountDXFsInDirectory(directory string) (int, error) {
	return s.search.CountDXFsInDirectory(directory)
}
