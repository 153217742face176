package dxf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// drawingContent assembles an ASCII DXF ENTITIES section from per-entity
// tag pair lists
func drawingContent(entities ...[]string) string {
	lines := []string{"0", "SECTION", "2", "ENTITIES"}
	for _, ent := range entities {
		lines = append(lines, ent...)
	}
	lines = append(lines, "0", "ENDSEC", "0", "EOF")
	return strings.Join(lines, "\n") + "\n"
}

func lineEntity(handle, layer string, x1, y1, x2, y2 float64) []string {
	return []string{
		"0", "LINE",
		"5", handle,
		"8", layer,
		"10", fmt.Sprintf("%g", x1), "20", fmt.Sprintf("%g", y1), "30", "0.0",
		"11", fmt.Sprintf("%g", x2), "21", fmt.Sprintf("%g", y2), "31", "0.0",
	}
}

func insertEntity(handle, layer, blockName string, xdata ...string) []string {
	ent := []string{
		"0", "INSERT",
		"5", handle,
		"8", layer,
		"2", blockName,
		"10", "0.0", "20", "0.0", "30", "0.0",
	}
	return append(ent, xdata...)
}

func circleEntity(handle, layer string, radius float64) []string {
	return []string{
		"0", "CIRCLE",
		"5", handle,
		"8", layer,
		"10", "0.0", "20", "0.0", "30", "0.0",
		"40", fmt.Sprintf("%g", radius),
	}
}

func textEntity(handle, layer, text string) []string {
	return []string{
		"0", "TEXT",
		"5", handle,
		"8", layer,
		"10", "0.0", "20", "0.0", "30", "0.0",
		"1", text,
	}
}

// manyLines produces count LINE entities with sequential handles
func manyLines(count int) [][]string {
	entities := make([][]string, count)
	for i := range entities {
		entities[i] = lineEntity(fmt.Sprintf("%X", i+1), "0", 0, 0, float64(i), 1)
	}
	return entities
}

// writeDrawing writes DXF content into dir and returns the file path
func writeDrawing(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture drawing: %v", err)
	}
	return path
}
