package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	DXFInspectStructureDescription = `Preview the structure of a DXF drawing: entity types, layers, and XDATA blocks.

**When to use:** Before exporting a drawing, to understand what entity types and extended data it contains, or to diagnose why an export looks wrong.

**Why it's useful:** Gives a bounded, human-readable listing of the modelspace without producing any file, including the full (code, value) XDATA records that the flat export intentionally drops.

**Examples:**
• Survey a drawing: "Inspect pipeline-network.dxf to see which layers and entity types it uses"
• Diagnose XDATA: "Show the XDATA application tags on the entities in site-plan.dxf"
• Bound the output: "Preview only the first 50 entities of the large as-built drawing"

**Common workflows:**
1. Export Preparation: Inspect structure → Identify layers and XDATA tags → Export to CSV
2. Diagnostics: Export looks wrong → Inspect structure → Compare XDATA records with exported cells
3. Quick Survey: Inspect with a small limit → Decide whether the drawing is worth full processing

**Best practices:** The default limit of 200 entities keeps output bounded on large drawings; pass max_entities <= 0 only when you really need every entity listed.`

	DXFExportCSVDescription = `Extract all modelspace entities and their attributes into a CSV table.

**When to use:** Need the drawing contents as flat tabular data for spreadsheets, GIS imports, or downstream analysis.

**Why it's useful:** Normalizes heterogeneous entities (lines, polylines, block inserts, text, circles, splines) into one table with a stable column order: handle, type, layer, geometry and text fields first, then XDATA application tags alphabetically. Output is UTF-8 with BOM so spreadsheet tools open non-ASCII layer names and text correctly.

**Examples:**
• Spreadsheet handoff: "Export utility-lines.dxf to CSV for the survey team"
• Attribute audit: "Extract all block inserts and their XDATA from equipment-plan.dxf"
• Re-export stability: "Re-export the updated drawing; column positions stay identical for the import script"

**Common workflows:**
1. Data Handoff: Validate file → Export CSV → Open in spreadsheet / import downstream
2. Attribute Analysis: Inspect structure → Export CSV → Filter rows by EntityType or Layer
3. Batch Conversion: Search directory → Export each drawing → Collect output paths

**Best practices:** Omit output_path to write next to the input with a .csv extension; the response always contains the resolved absolute output path.`

	DXFExportXLSXDescription = `Extract all modelspace entities and their attributes into an XLSX workbook.

**When to use:** Same data as the CSV export, but for consumers that want a real spreadsheet file rather than delimited text.

**Why it's useful:** Avoids CSV encoding and delimiter pitfalls entirely; the "Entities" sheet carries the same stable column schema as the CSV export.

**Examples:**
• Report attachment: "Export floor-plan.dxf to XLSX for the client report"
• Mixed-language data: "Export the drawing with Chinese layer names for reviewers using Excel"

**Common workflows:**
1. Reporting: Export XLSX → Attach to report → Reviewers filter and sort in Excel
2. Comparison: Export two revisions → Diff sheets column by column

**Best practices:** Column order matches dxf_export_csv exactly, so either format feeds the same downstream tooling.`

	DXFValidateFileDescription = `Verify DXF file integrity and readability before processing.

**When to use:** Before attempting to inspect or export any DXF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted or binary-encoded files early, and confirms the file parses as a DXF tag stream.

**Examples:**
• Batch processing safety: "Validate all DXFs in /drawings/ before bulk export"
• Upload verification: "Check user-uploaded site-plan.dxf is valid before processing"
• Format check: "Verify exported-drawing.dxf is ASCII DXF, not the binary encoding"

**Common workflows:**
1. Automated Processing: Validate → Export if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files

**Best practices:** Always run this first in automated workflows handling unknown drawings.`

	DXFStatsFileDescription = `Get entity, layer, and version statistics about a DXF file.

**When to use:** Need a quantitative summary of a drawing: how many entities, of which types, on how many layers, and which drawing release wrote it.

**Why it's useful:** Answers "what is in this drawing" without listing every entity, and reports the $ACADVER release for compatibility checks.

**Examples:**
• Sizing an export: "How many entities does the campus plan contain?"
• Compatibility: "Which AutoCAD release format is legacy-survey.dxf?"
• Content profile: "How many TEXT vs LINE entities are in the annotation drawing?"

**Common workflows:**
1. Triage: Stats → Decide between bounded inspect and full export
2. Inventory: Search directory → Stats per file → Build a drawing register

**Best practices:** Cheap relative to export; use it to size and plan processing of large drawings.`

	DXFSearchDirectoryDescription = `Search for DXF files in a directory with optional fuzzy matching.

**When to use:** Discover which drawings are available before inspecting or exporting, or find a specific drawing by partial name.

**Why it's useful:** Recursively walks the drawing directory, skipping hidden directories and files that fail quick validation, so results are actually processable DXFs.

**Examples:**
• Discovery: "List all DXF files under the project drawings directory"
• Lookup: "Find drawings matching 'gas' in the pipeline folder"

**Common workflows:**
1. Batch Export: Search directory → Export each result → Collect output paths
2. Interactive: Search → Pick file → Inspect → Export

**Best practices:** Leave directory empty to search the server's configured drawing directory.`

	DXFServerInfoDescription = `Get server information, available tools, directory contents, and usage guidance.

**When to use:** First contact with the server, or whenever you need to know the configured drawing directory and the available tool surface.

**Why it's useful:** One call returns the server version, limits, every tool with usage examples, and the DXF files currently visible in the configured directory.

**Examples:**
• Orientation: "What tools does this DXF server offer and what drawings can it see?"
• Limits: "What is the maximum file size this server accepts?"

**Common workflows:**
1. Session Start: Server info → Search directory → Inspect → Export

**Best practices:** Call once at the start of a session; the directory listing reflects the filesystem at call time.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"dxf_inspect_structure": DXFInspectStructureDescription,
	"dxf_export_csv":        DXFExportCSVDescription,
	"dxf_export_xlsx":       DXFExportXLSXDescription,
	"dxf_validate_file":     DXFValidateFileDescription,
	"dxf_stats_file":        DXFStatsFileDescription,
	"dxf_search_directory":  DXFSearchDirectoryDescription,
	"dxf_server_info":       DXFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
