package registry

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	"github.com/sheetbridge/excel-mcp-server/pkg/validation"
)

// WriteDataInput defines parameters for write_data_to_excel.
type WriteDataInput struct {
	Filepath  string  `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string  `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	Data      [][]any `json:"data" validate:"required,min=1" jsonschema_description:"Rows of cell values; strings starting with '=' are written as formulas"`
	StartCell string  `json:"start_cell,omitempty" validate:"omitempty,a1cell" jsonschema_description:"Anchor cell, defaults to A1"`
}

// ReadDataInput defines parameters for read_data_from_excel.
type ReadDataInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet to read"`
	StartCell string `json:"start_cell,omitempty" validate:"omitempty,a1cell" jsonschema_description:"Start cell, defaults to A1"`
	EndCell   string `json:"end_cell,omitempty" validate:"omitempty,a1cell" jsonschema_description:"End cell; omitted means read to the used extent"`
}

// ValidationInfoInput defines parameters for get_data_validation_info.
type ValidationInfoInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet to inspect"`
}

func registerDataTools(s *server.MCPServer, reg *Registry, deps *Deps) {
	writeData := mcp.NewTool(
		"write_data_to_excel",
		mcp.WithDescription("Write a 2D block of values into a worksheet; '=' prefixed strings become formulas"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
		mcp.WithArray("data", mcp.Required(), mcp.Description("Rows of cell values")),
		mcp.WithString("start_cell", mcp.Description("Anchor cell, defaults to A1")),
	)
	s.AddTool(writeData, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in WriteDataInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("writing data", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("writing data", err), nil
		}
		start := in.StartCell
		if start == "" {
			start = "A1"
		}
		msg, err := excel.WriteData(path, in.SheetName, in.Data, start)
		if err != nil {
			return deps.toolError("writing data", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(writeData)

	readData := mcp.NewTool(
		"read_data_from_excel",
		mcp.WithDescription("Read a range of cells with addresses, typed values, and any validation rules"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet to read")),
		mcp.WithString("start_cell", mcp.Description("Start cell, defaults to A1")),
		mcp.WithString("end_cell", mcp.Description("End cell; omitted means read to the used extent")),
	)
	s.AddTool(readData, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ReadDataInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("reading data", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("reading data", err), nil
		}
		start := in.StartCell
		if start == "" {
			start = "A1"
		}
		data, err := excel.ReadRange(path, in.SheetName, start, in.EndCell)
		if err != nil {
			return deps.toolError("reading data", err), nil
		}
		if len(data.Cells) == 0 {
			return mcp.NewToolResultText("No data found in specified range"), nil
		}
		payload, err := json.Marshal(data)
		if err != nil {
			return deps.toolError("reading data", err), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}))
	reg.Register(readData)

	validationInfo := mcp.NewTool(
		"get_data_validation_info",
		mcp.WithDescription("List data validation rules defined in a worksheet"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet to inspect")),
	)
	s.AddTool(validationInfo, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ValidationInfoInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("reading validation rules", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("reading validation rules", err), nil
		}
		out, err := excel.GetDataValidationInfo(path, in.SheetName)
		if err != nil {
			return deps.toolError("reading validation rules", err), nil
		}
		if len(out.Rules) == 0 {
			return mcp.NewToolResultText("No data validation rules found in this worksheet"), nil
		}
		payload, err := json.Marshal(out)
		if err != nil {
			return deps.toolError("reading validation rules", err), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}))
	reg.Register(validationInfo)
}
