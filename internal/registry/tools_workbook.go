package registry

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	"github.com/sheetbridge/excel-mcp-server/pkg/validation"
)

// CreateWorkbookInput defines parameters for create_workbook.
type CreateWorkbookInput struct {
	Filepath string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path where the new workbook is created"`
}

// CreateWorksheetInput defines parameters for create_worksheet.
type CreateWorksheetInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Name for the new worksheet"`
}

// WorkbookMetadataInput defines parameters for get_workbook_metadata.
type WorkbookMetadataInput struct {
	Filepath      string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	IncludeRanges bool   `json:"include_ranges,omitempty" jsonschema_description:"Include per-sheet used ranges"`
}

func registerWorkbookTools(s *server.MCPServer, reg *Registry, deps *Deps) {
	createWorkbook := mcp.NewTool(
		"create_workbook",
		mcp.WithDescription("Create a new Excel workbook at the given path"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path for the new workbook (.xlsx)")),
	)
	s.AddTool(createWorkbook, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CreateWorkbookInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("creating workbook", err), nil
		}
		path, err := deps.Resolver.ResolveForCreate(in.Filepath)
		if err != nil {
			return deps.toolError("creating workbook", err), nil
		}
		msg, err := excel.CreateWorkbook(path)
		if err != nil {
			return deps.toolError("creating workbook", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(createWorkbook)

	createWorksheet := mcp.NewTool(
		"create_worksheet",
		mcp.WithDescription("Add a new worksheet to an existing workbook"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Name for the new worksheet")),
	)
	s.AddTool(createWorksheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CreateWorksheetInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("creating worksheet", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("creating worksheet", err), nil
		}
		msg, err := excel.CreateSheet(path, in.SheetName)
		if err != nil {
			return deps.toolError("creating worksheet", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(createWorksheet)

	metadata := mcp.NewTool(
		"get_workbook_metadata",
		mcp.WithDescription("Return workbook metadata: sheets, size, modification time, and optionally used ranges"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithBoolean("include_ranges", mcp.Description("Include per-sheet used ranges")),
	)
	s.AddTool(metadata, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in WorkbookMetadataInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("reading workbook metadata", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("reading workbook metadata", err), nil
		}
		info, err := excel.GetWorkbookInfo(path, in.IncludeRanges)
		if err != nil {
			return deps.toolError("reading workbook metadata", err), nil
		}
		payload, err := json.Marshal(info)
		if err != nil {
			return deps.toolError("reading workbook metadata", err), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}))
	reg.Register(metadata)
}
