package dxf

import (
	"fmt"
	"strings"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// stringDataCode is the XDATA group code carrying the primary string payload
const stringDataCode = 1000

// xdataProjection returns the flat export view of an entity's XDATA: for
// each application tag, the value of the first code-1000 record. Tags with
// no code-1000 record contribute nothing; all other code types are dropped
// because the table model is flat.
func xdataProjection(e *document.Entity) map[string]string {
	if !e.HasXData() {
		return nil
	}
	fields := make(map[string]string)
	for _, app := range e.XData {
		for _, rec := range app.Records {
			if rec.Code == stringDataCode {
				fields[app.AppID] = rec.Value
				break
			}
		}
	}
	return fields
}

// xdataPreview renders every XDATA record of an entity for diagnostic
// output: app(code:value, code:value); app2(...)
func xdataPreview(e *document.Entity) string {
	parts := make([]string, 0, len(e.XData))
	for _, app := range e.XData {
		codes := make([]string, len(app.Records))
		for i, rec := range app.Records {
			codes[i] = fmt.Sprintf("%d:%s", rec.Code, rec.Value)
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", app.AppID, strings.Join(codes, ", ")))
	}
	return strings.Join(parts, "; ")
}
