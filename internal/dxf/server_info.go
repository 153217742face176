package dxf

// ServerInfo assembles server metadata, tool inventory and directory
// contents for the dxf_server_info tool
type ServerInfo struct {
	service *Service
}

// NewServerInfo creates a server info provider backed by the given service
func NewServerInfo(service *Service) *ServerInfo {
	return &ServerInfo{service: service}
}

// GetServerInfo returns server information, available tools and usage guidance
func (si *ServerInfo) GetServerInfo(
	_ DXFServerInfoRequest, serverName, version, defaultDirectory string,
) (*DXFServerInfoResult, error) {
	result := &DXFServerInfoResult{
		ServerName:       serverName,
		Version:          version,
		DefaultDirectory: defaultDirectory,
		MaxFileSize:      si.service.GetMaxFileSize(),
		AvailableTools:   availableTools(),
		UsageGuidance:    usageGuidance,
	}

	// Directory contents are best effort; an unreadable directory should
	// not fail the info call
	if files, err := si.service.FindDXFsInDirectory(defaultDirectory); err == nil {
		result.DirectoryContents = files
	}

	return result, nil
}

func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        "dxf_inspect_structure",
			Description: "Preview entity types, layers and XDATA of a DXF file",
			Usage:       "dxf_inspect_structure(path='/path/to/drawing.dxf', max_entities=200)",
			Parameters:  "path (required), max_entities (optional, default 200, <=0 for no limit)",
		},
		{
			Name:        "dxf_export_csv",
			Description: "Extract all entities and their attributes into a CSV table",
			Usage:       "dxf_export_csv(path='/path/to/drawing.dxf', output_path='/path/to/out.csv')",
			Parameters:  "path (required), output_path (optional, defaults to input with .csv extension)",
		},
		{
			Name:        "dxf_export_xlsx",
			Description: "Extract all entities and their attributes into an XLSX workbook",
			Usage:       "dxf_export_xlsx(path='/path/to/drawing.dxf', output_path='/path/to/out.xlsx')",
			Parameters:  "path (required), output_path (optional, defaults to input with .xlsx extension)",
		},
		{
			Name:        "dxf_validate_file",
			Description: "Validate if a file is a readable DXF drawing",
			Usage:       "dxf_validate_file(path='/path/to/drawing.dxf')",
			Parameters:  "path (required)",
		},
		{
			Name:        "dxf_stats_file",
			Description: "Get entity, type and layer statistics about a DXF file",
			Usage:       "dxf_stats_file(path='/path/to/drawing.dxf')",
			Parameters:  "path (required)",
		},
		{
			Name:        "dxf_search_directory",
			Description: "Search for DXF files in a directory with optional fuzzy matching",
			Usage:       "dxf_search_directory(directory='/path/to/drawings', query='floor')",
			Parameters:  "directory (optional, uses default), query (optional)",
		},
		{
			Name:        "dxf_server_info",
			Description: "Get server information, available tools and usage guidance",
			Usage:       "dxf_server_info()",
			Parameters:  "none",
		},
	}
}

const usageGuidance = `💡 Usage Guidance:

1. Start with 'dxf_search_directory' to discover drawings, or 'dxf_server_info' to see the configured directory.
2. Run 'dxf_validate_file' before batch processing unknown files.
3. Use 'dxf_inspect_structure' to preview entity types, layers and XDATA before exporting.
4. Use 'dxf_export_csv' (or 'dxf_export_xlsx') to produce the full entity table; the response contains the resolved output path.
5. Column order is stable across re-exports of the same drawing: core attributes first, then XDATA application tags alphabetically.`
