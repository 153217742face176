package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"github.com/cadtools/mcp-dxf-reader/internal/config"
	"github.com/cadtools/mcp-dxf-reader/internal/descriptions"
	"github.com/cadtools/mcp-dxf-reader/internal/dxf"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	dxfService *dxf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, dxfService *dxf.Service) (*Server, error) {
	if dxfService == nil {
		return nil, fmt.Errorf("dxfService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		dxfService: dxfService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	inspectStructureTool := mcp.NewTool(
		"dxf_inspect_structure",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_inspect_structure")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the DXF file"),
		),
		mcp.WithNumber("max_entities",
			mcp.Description("Maximum number of entities to list (default 200, zero or negative for no limit)"),
		),
	)
	s.mcpServer.AddTool(inspectStructureTool, s.handleDXFInspectStructure)

	exportCSVTool := mcp.NewTool(
		"dxf_export_csv",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_export_csv")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the DXF file"),
		),
		mcp.WithString("output_path",
			mcp.Description("Output CSV path (defaults to the input path with a .csv extension)"),
		),
	)
	s.mcpServer.AddTool(exportCSVTool, s.handleDXFExportCSV)

	exportXLSXTool := mcp.NewTool(
		"dxf_export_xlsx",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_export_xlsx")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the DXF file"),
		),
		mcp.WithString("output_path",
			mcp.Description("Output XLSX path (defaults to the input path with a .xlsx extension)"),
		),
	)
	s.mcpServer.AddTool(exportXLSXTool, s.handleDXFExportXLSX)

	validateFileTool := mcp.NewTool(
		"dxf_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the DXF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleDXFValidateFile)

	statsFileTool := mcp.NewTool(
		"dxf_stats_file",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_stats_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the DXF file"),
		),
	)
	s.mcpServer.AddTool(statsFileTool, s.handleDXFStatsFile)

	searchDirectoryTool := mcp.NewTool(
		"dxf_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleDXFSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"dxf_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("dxf_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleDXFServerInfo)
}

// Handler functions
func (s *Server) handleDXFInspectStructure(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := dxf.DXFInspectStructureRequest{Path: path}
	args := request.GetArguments()
	if raw, ok := args["max_entities"].(float64); ok {
		limit := int(raw)
		req.MaxEntities = &limit
	}

	result, err := s.dxfService.DXFInspectStructure(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(strings.Join(result.Lines, "\n")), nil
}

func (s *Server) handleDXFExportCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := dxf.DXFExportCSVRequest{Path: path}
	if out, ok := request.GetArguments()["output_path"].(string); ok {
		req.OutputPath = out
	}

	result, err := s.dxfService.DXFExportCSV(req)
	if err != nil {
		return mcp.NewToolResultError(exportErrorStatus(path, err)), nil
	}
	if result.Warning != "" {
		return mcp.NewToolResultText(fmt.Sprintf("[警告] DXF 中未发现任何实体：%s", result.Path)), nil
	}

	responseText := fmt.Sprintf("[成功] CSV 文件已生成：%s\n", result.OutputPath)
	responseText += fmt.Sprintf("Rows: %d\n", result.RowCount)
	responseText += fmt.Sprintf("Columns: %s\n", strings.Join(result.Columns, ", "))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDXFExportXLSX(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := dxf.DXFExportXLSXRequest{Path: path}
	if out, ok := request.GetArguments()["output_path"].(string); ok {
		req.OutputPath = out
	}

	result, err := s.dxfService.DXFExportXLSX(req)
	if err != nil {
		return mcp.NewToolResultError(exportErrorStatus(path, err)), nil
	}
	if result.Warning != "" {
		return mcp.NewToolResultText(fmt.Sprintf("[警告] DXF 中未发现任何实体：%s", result.Path)), nil
	}

	responseText := fmt.Sprintf("[成功] XLSX 文件已生成：%s\n", result.OutputPath)
	responseText += fmt.Sprintf("Rows: %d\n", result.RowCount)
	responseText += fmt.Sprintf("Columns: %s\n", strings.Join(result.Columns, ", "))
	return mcp.NewToolResultText(responseText), nil
}

// exportErrorStatus renders export failures in the tool's user-facing status
// format, distinguishing a missing input file from every other failure
func exportErrorStatus(path string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("[错误] 输入文件不存在：%s", path)
	}
	return fmt.Sprintf("[错误] DXF 解析或导出失败：%v", err)
}

func (s *Server) handleDXFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := dxf.DXFValidateFileRequest{Path: path}
	result, err := s.dxfService.DXFValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("DXF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("DXF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDXFStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := dxf.DXFStatsFileRequest{Path: path}
	result, err := s.dxfService.DXFStatsFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDXFStatsFileResult(result)), nil
}

func (s *Server) handleDXFSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.DXFDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := dxf.DXFSearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.dxfService.DXFSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No DXF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatDXFSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDXFServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := dxf.DXFServerInfoRequest{}
	result, err := s.dxfService.DXFServerInfo(req, s.config.ServerName, s.config.Version, s.config.DXFDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDXFServerInfoResult(result)), nil
}

// Formatting methods
func (s *Server) formatDXFSearchDirectoryResult(result *dxf.DXFSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d DXF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatDXFStatsFileResult(result *dxf.DXFStatsFileResult) string {
	text := "DXF File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.AcadVersion != "" {
		text += fmt.Sprintf("Drawing Version: %s", result.AcadVersion)
		if result.ReleaseName != "" {
			text += fmt.Sprintf(" (%s)", result.ReleaseName)
		}
		text += "\n"
	}

	text += fmt.Sprintf("Modelspace Entities: %d\n", result.EntityCount)
	text += fmt.Sprintf("Layers In Use: %d\n", result.LayerCount)

	if len(result.TypeCounts) > 0 {
		text += "\nEntity Types:\n"
		types := make([]string, 0, len(result.TypeCounts))
		for entityType := range result.TypeCounts {
			types = append(types, entityType)
		}
		sort.Strings(types)
		for _, entityType := range types {
			text += fmt.Sprintf("  %s: %d\n", entityType, result.TypeCounts[entityType])
		}
	}

	return text
}

func (s *Server) formatDXFServerInfoResult(result *dxf.DXFServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d DXF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No DXF files found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting DXF MCP server in stdio mode")
		log.Printf("DXF directory: %s", s.config.DXFDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
