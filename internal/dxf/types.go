package dxf

// FileInfo represents information about a DXF file on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Record is one normalized entity row: field name to rendered value.
// Created fresh per entity during a single export pass.
type Record map[string]string

// Request Types

// DXFInspectStructureRequest represents a request to preview the structure
// of a DXF file. MaxEntities nil means the default limit; zero or negative
// disables truncation.
type DXFInspectStructureRequest struct {
	Path        string `json:"path"`
	MaxEntities *int   `json:"max_entities,omitempty"`
}

// DXFExportCSVRequest represents a request to export DXF entities to CSV
type DXFExportCSVRequest struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path,omitempty"`
}

// DXFExportXLSXRequest represents a request to export DXF entities to XLSX
type DXFExportXLSXRequest struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path,omitempty"`
}

// DXFValidateFileRequest represents a request to validate a DXF file
type DXFValidateFileRequest struct {
	Path string `json:"path"`
}

// DXFStatsFileRequest represents a request to get stats about a DXF file
type DXFStatsFileRequest struct {
	Path string `json:"path"`
}

// DXFSearchDirectoryRequest represents a request to search for DXF files in a directory
type DXFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// DXFInspectStructureResult represents the result of a structure preview
type DXFInspectStructureResult struct {
	Path        string   `json:"path"`
	Lines       []string `json:"lines"`
	EntityCount int      `json:"entity_count"`
	Truncated   bool     `json:"truncated"`
}

// DXFExportCSVResult represents the result of a CSV export operation.
// Warning is set (and no file written) when the drawing has no entities.
type DXFExportCSVResult struct {
	Path       string   `json:"path"`
	OutputPath string   `json:"output_path,omitempty"`
	RowCount   int      `json:"row_count"`
	Columns    []string `json:"columns,omitempty"`
	Warning    string   `json:"warning,omitempty"`
}

// DXFExportXLSXResult represents the result of an XLSX export operation
type DXFExportXLSXResult struct {
	Path       string   `json:"path"`
	OutputPath string   `json:"output_path,omitempty"`
	RowCount   int      `json:"row_count"`
	Columns    []string `json:"columns,omitempty"`
	Warning    string   `json:"warning,omitempty"`
}

// DXFValidateFileResult represents the result of a DXF validation operation
type DXFValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// DXFStatsFileResult represents the result of a DXF file stats operation
type DXFStatsFileResult struct {
	Path         string         `json:"path"`
	Size         int64          `json:"size"`
	ModifiedDate string         `json:"modified_date"`
	AcadVersion  string         `json:"acad_version,omitempty"`
	ReleaseName  string         `json:"release_name,omitempty"`
	EntityCount  int            `json:"entity_count"`
	TypeCounts   map[string]int `json:"type_counts"`
	LayerCount   int            `json:"layer_count"`
}

// DXFSearchDirectoryResult represents the result of a DXF search operation
type DXFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// DXFServerInfoRequest represents a request to get server information and capabilities
type DXFServerInfoRequest struct {
	// No parameters needed for server info
}

// DXFServerInfoResult represents server information and usage guidance
type DXFServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
