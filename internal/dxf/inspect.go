package dxf

import (
	"fmt"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// DefaultMaxEntities is the preview entity limit when the request does not
// specify one
const DefaultMaxEntities = 200

// truncationMarker is appended when the preview stops before the end of the
// modelspace
const truncationMarker = "...(已截断其余实体输出)"

// Inspector produces bounded human-readable previews of drawing structure
type Inspector struct {
	maxFileSize int64
}

// NewInspector creates a new structure inspector with the specified constraints
func NewInspector(maxFileSize int64) *Inspector {
	return &Inspector{maxFileSize: maxFileSize}
}

// InspectStructure previews entity types, layers and XDATA of a DXF file.
// On load failure the result is a single error line rather than a Go error,
// mirroring the tool's user-facing contract.
func (i *Inspector) InspectStructure(req DXFInspectStructureRequest) (*DXFInspectStructureResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	result := &DXFInspectStructureResult{Path: req.Path}

	if err := checkFileSize(req.Path, i.maxFileSize); err != nil {
		result.Lines = []string{fmt.Sprintf("加载 DXF 文件失败: %v", err)}
		return result, nil
	}
	doc, err := document.Load(req.Path)
	if err != nil {
		result.Lines = []string{fmt.Sprintf("加载 DXF 文件失败: %v", err)}
		return result, nil
	}

	msp := doc.Modelspace()
	result.EntityCount = len(msp)
	result.Lines = append(result.Lines, fmt.Sprintf(
		"文件加载成功 (dxfdoc v%s)，模型空间共有 %d 个实体。", document.ProviderVersion, len(msp)))

	// Resolve the bound once: the unbounded sentinel (<= 0) becomes the
	// total count, so the loop body has a single exit condition.
	limit := DefaultMaxEntities
	if req.MaxEntities != nil {
		limit = *req.MaxEntities
	}
	if limit <= 0 {
		limit = len(msp)
	}

	for idx, ent := range msp {
		if idx >= limit {
			result.Lines = append(result.Lines, truncationMarker)
			result.Truncated = true
			break
		}
		line := fmt.Sprintf("[%d] 类型:%s 图层:%s", idx+1, ent.Type, ent.Layer)
		if ent.HasXData() {
			line += " | XDATA: " + xdataPreview(ent)
		}
		result.Lines = append(result.Lines, line)
	}

	return result, nil
}
