package registry

import (
	"context"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// writeTools names every tool that mutates a workbook. Tools absent from
// this set are read-only.
var writeTools = map[string]bool{
	"apply_formula":        true,
	"format_range":         true,
	"write_data_to_excel":  true,
	"create_workbook":      true,
	"create_worksheet":     true,
	"create_chart":         true,
	"create_pivot_table":   true,
	"create_table":         true,
	"copy_worksheet":       true,
	"delete_worksheet":     true,
	"rename_worksheet":     true,
	"merge_cells":          true,
	"unmerge_cells":        true,
	"copy_range":           true,
	"delete_range":         true,
	"insert_rows":          true,
	"insert_columns":       true,
	"delete_sheet_rows":    true,
	"delete_sheet_columns": true,
}

// WriteToolFilter hides mutating tools when the server runs read-only.
// Enable read-only mode by setting EXCEL_MCP_READ_ONLY=true.
type WriteToolFilter struct {
	readOnly bool
}

// NewWriteToolFilterFromEnv constructs a filter using EXCEL_MCP_READ_ONLY.
func NewWriteToolFilterFromEnv() *WriteToolFilter {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("EXCEL_MCP_READ_ONLY")))
	readOnly := v == "1" || v == "true" || v == "yes"
	return &WriteToolFilter{readOnly: readOnly}
}

// FilterTools implements server tool filtering semantics.
func (f *WriteToolFilter) FilterTools(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	if !f.readOnly {
		return tools
	}
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if writeTools[t.Name] {
			continue
		}
		out = append(out, t)
	}
	return out
}
