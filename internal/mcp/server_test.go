package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cadtools/mcp-dxf-reader/internal/config"
	"github.com/cadtools/mcp-dxf-reader/internal/dxf"
)

// sampleDrawing is a minimal ASCII DXF with one LINE and one CIRCLE
const sampleDrawing = `0
SECTION
2
ENTITIES
0
LINE
5
A1
8
Walls
10
0.0
20
0.0
30
0.0
11
10.0
21
0.0
31
0.0
0
CIRCLE
5
A2
8
Fixtures
10
1.0
20
1.0
30
0.0
40
2.5
0
ENDSEC
0
EOF
`

// emptyDrawing has an ENTITIES section without any entities
const emptyDrawing = `0
SECTION
2
ENTITIES
0
ENDSEC
0
EOF
`

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()

	cfg := &config.Config{
		Mode:         "stdio",
		DXFDirectory: dir,
		Version:      "1.0.0",
		ServerName:   "test-server",
		MaxFileSize:  1024 * 1024,
	}
	dxfService, err := dxf.NewService(cfg.MaxFileSize, cfg.DXFDirectory)
	if err != nil {
		t.Fatalf("Failed to create DXF service: %v", err)
	}
	server, err := NewServer(cfg, dxfService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server
}

func writeTestDrawing(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestNewServer(t *testing.T) {
	tempDir := t.TempDir()

	maxFileSize := int64(1024 * 1024)
	dxfService, err := dxf.NewService(maxFileSize, tempDir)
	if err != nil {
		t.Fatalf("Failed to create DXF service: %v", err)
	}

	cfg := &config.Config{
		Mode:         "stdio",
		Host:         "127.0.0.1",
		Port:         8080,
		DXFDirectory: tempDir,
		Version:      "1.0.0",
		ServerName:   "test-server",
		LogLevel:     "info",
		MaxFileSize:  maxFileSize,
	}

	server, err := NewServer(cfg, dxfService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("server should not be nil")
	}
	if server.config != cfg {
		t.Error("server config not set correctly")
	}
	if server.dxfService != dxfService {
		t.Error("server dxfService not set correctly")
	}
	if server.mcpServer == nil {
		t.Error("mcpServer should be initialized")
	}

	if _, err := NewServer(cfg, nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestServer_HandleDXFInspectStructure(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFInspectStructure(context.Background(), toolRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "模型空间共有 2 个实体") {
		t.Errorf("content should mention 2 entities, got: %s", resultText)
	}
	if !strings.Contains(resultText, "[1] 类型:LINE 图层:Walls") {
		t.Errorf("content should list the LINE entity, got: %s", resultText)
	}
	if !strings.Contains(resultText, "[2] 类型:CIRCLE 图层:Fixtures") {
		t.Errorf("content should list the CIRCLE entity, got: %s", resultText)
	}
}

func TestServer_HandleDXFInspectStructure_MaxEntities(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	// JSON numbers arrive as float64
	result, err := server.handleDXFInspectStructure(context.Background(), toolRequest(map[string]interface{}{
		"path":         testFile,
		"max_entities": float64(1),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "已截断") {
		t.Errorf("content should contain a truncation marker, got: %s", resultText)
	}
	if strings.Contains(resultText, "[2]") {
		t.Errorf("second entity should be cut off, got: %s", resultText)
	}
}

func TestServer_HandleDXFExportCSV(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	outputPath := filepath.Join(tempDir, "plan.csv")
	result, err := server.handleDXFExportCSV(context.Background(), toolRequest(map[string]interface{}{
		"path":        testFile,
		"output_path": outputPath,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "[成功] CSV 文件已生成：") {
		t.Errorf("expected success status, got: %s", resultText)
	}
	if !strings.Contains(resultText, "Rows: 2") {
		t.Errorf("content should mention row count, got: %s", resultText)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestServer_HandleDXFExportCSV_MissingInput(t *testing.T) {
	tempDir := t.TempDir()
	server := newTestServer(t, tempDir)

	missing := filepath.Join(tempDir, "missing.dxf")
	result, err := server.handleDXFExportCSV(context.Background(), toolRequest(map[string]interface{}{
		"path": missing,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "[错误] 输入文件不存在："+missing) {
		t.Errorf("expected missing input status, got: %s", resultText)
	}
}

func TestServer_HandleDXFExportCSV_MalformedInput(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "broken.dxf", "not a drawing\nat all\n")
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFExportCSV(context.Background(), toolRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "[错误] DXF 解析或导出失败：") {
		t.Errorf("expected parse failure status, got: %s", resultText)
	}
}

func TestServer_HandleDXFExportCSV_EmptyDrawing(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "empty.dxf", emptyDrawing)
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFExportCSV(context.Background(), toolRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "[警告] DXF 中未发现任何实体：") {
		t.Errorf("expected empty drawing warning, got: %s", resultText)
	}
}

func TestServer_HandleDXFExportXLSX(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	outputPath := filepath.Join(tempDir, "plan.xlsx")
	result, err := server.handleDXFExportXLSX(context.Background(), toolRequest(map[string]interface{}{
		"path":        testFile,
		"output_path": outputPath,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "[成功] XLSX 文件已生成：") {
		t.Errorf("expected success status, got: %s", resultText)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestServer_HandleDXFValidateFile(t *testing.T) {
	tempDir := t.TempDir()
	valid := writeTestDrawing(t, tempDir, "good.dxf", sampleDrawing)
	invalid := writeTestDrawing(t, tempDir, "broken.dxf", "garbage content\n")
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFValidateFile(context.Background(), toolRequest(map[string]interface{}{
		"path": valid,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "is valid and readable") {
		t.Errorf("expected valid result, got: %s", resultText)
	}

	result, err = server.handleDXFValidateFile(context.Background(), toolRequest(map[string]interface{}{
		"path": invalid,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	resultText = extractTextFromResult(result)
	if !strings.Contains(resultText, "DXF validation failed") {
		t.Errorf("expected validation failure, got: %s", resultText)
	}
}

func TestServer_HandleDXFStatsFile(t *testing.T) {
	tempDir := t.TempDir()
	testFile := writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFStatsFile(context.Background(), toolRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Modelspace Entities: 2") {
		t.Errorf("content should mention entity count, got: %s", resultText)
	}
	if !strings.Contains(resultText, "CIRCLE: 1") || !strings.Contains(resultText, "LINE: 1") {
		t.Errorf("content should list entity type counts, got: %s", resultText)
	}
	if !strings.Contains(resultText, "Layers In Use: 2") {
		t.Errorf("content should mention layer count, got: %s", resultText)
	}
}

func TestServer_HandleDXFSearchDirectory(t *testing.T) {
	tempDir := t.TempDir()
	writeTestDrawing(t, tempDir, "doc1.dxf", sampleDrawing)
	writeTestDrawing(t, tempDir, "doc2.dxf", sampleDrawing)
	writeTestDrawing(t, tempDir, "report.txt", "plain text\n")
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFSearchDirectory(context.Background(), toolRequest(map[string]interface{}{
		"directory": tempDir,
		"query":     "",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Found 2 DXF file(s)") {
		t.Errorf("content should mention 2 DXF files, got: %s", resultText)
	}
}

func TestServer_DefaultDirectory(t *testing.T) {
	tempDir := t.TempDir()
	server := newTestServer(t, tempDir)

	// Request without directory should use the configured default
	result, err := server.handleDXFSearchDirectory(context.Background(), toolRequest(map[string]interface{}{
		"query": "",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, tempDir) {
		t.Errorf("content should mention default directory %s, got: %s", tempDir, resultText)
	}
}

func TestServer_HandleDXFServerInfo(t *testing.T) {
	tempDir := t.TempDir()
	writeTestDrawing(t, tempDir, "plan.dxf", sampleDrawing)
	server := newTestServer(t, tempDir)

	result, err := server.handleDXFServerInfo(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "test-server v1.0.0") {
		t.Errorf("content should mention server name and version, got: %s", resultText)
	}
	if !strings.Contains(resultText, "dxf_export_csv") {
		t.Errorf("content should list available tools, got: %s", resultText)
	}
	if !strings.Contains(resultText, "plan.dxf") {
		t.Errorf("content should list directory contents, got: %s", resultText)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	tempDir := t.TempDir()
	server := newTestServer(t, tempDir)

	emptyRequest := toolRequest(map[string]interface{}{})

	// Test each handler that requires arguments
	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"DXFInspectStructure", server.handleDXFInspectStructure},
		{"DXFExportCSV", server.handleDXFExportCSV},
		{"DXFExportXLSX", server.handleDXFExportXLSX},
		{"DXFValidateFile", server.handleDXFValidateFile},
		{"DXFStatsFile", server.handleDXFStatsFile},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}

			// Check if it's an error result
			resultText := extractTextFromResult(result)
			if !strings.Contains(resultText, "required") && !strings.Contains(resultText, "missing") &&
				!strings.Contains(resultText, "error") {
				t.Errorf("expected error message for missing arguments, got: %s", resultText)
			}
		})
	}
}

func TestFormatMethods(t *testing.T) {
	tempDir := t.TempDir()
	server := newTestServer(t, tempDir)

	// Test formatDXFSearchDirectoryResult
	searchResult := &dxf.DXFSearchDirectoryResult{
		Files: []dxf.FileInfo{
			{
				Name:         "test.dxf",
				Path:         "/tmp/test.dxf",
				Size:         1024,
				ModifiedTime: "2023-01-01 12:00:00",
			},
		},
		TotalCount:  1,
		Directory:   "/tmp",
		SearchQuery: "test",
	}

	formatted := server.formatDXFSearchDirectoryResult(searchResult)
	if !strings.Contains(formatted, "Found 1 DXF file(s)") {
		t.Error("formatted result should contain file count")
	}
	if !strings.Contains(formatted, "test.dxf") {
		t.Error("formatted result should contain filename")
	}

	// Test formatDXFStatsFileResult
	statsResult := &dxf.DXFStatsFileResult{
		Path:         "/tmp/test.dxf",
		Size:         1024,
		ModifiedDate: "2023-01-01 12:00:00",
		AcadVersion:  "AC1032",
		ReleaseName:  "R2018",
		EntityCount:  12,
		TypeCounts:   map[string]int{"LINE": 10, "CIRCLE": 2},
		LayerCount:   3,
	}

	formatted = server.formatDXFStatsFileResult(statsResult)
	if !strings.Contains(formatted, "Modelspace Entities: 12") {
		t.Error("formatted result should contain entity count")
	}
	if !strings.Contains(formatted, "AC1032 (R2018)") {
		t.Error("formatted result should contain drawing version")
	}
	if !strings.Contains(formatted, "LINE: 10") {
		t.Error("formatted result should contain type counts")
	}

	// Type counts render in sorted order
	if strings.Index(formatted, "CIRCLE: 2") > strings.Index(formatted, "LINE: 10") {
		t.Error("entity types should be sorted alphabetically")
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	// Try to extract text content
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		// Handle pointer to TextContent as well
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
