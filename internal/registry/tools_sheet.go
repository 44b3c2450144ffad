package registry

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	"github.com/sheetbridge/excel-mcp-server/pkg/validation"
)

// CopySheetInput defines parameters for copy_worksheet.
type CopySheetInput struct {
	Filepath    string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SourceSheet string `json:"source_sheet" validate:"required" jsonschema_description:"Sheet to copy"`
	TargetSheet string `json:"target_sheet" validate:"required" jsonschema_description:"Name for the copy"`
}

// SheetNameInput defines parameters for tools addressing one worksheet.
type SheetNameInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
}

// RenameSheetInput defines parameters for rename_worksheet.
type RenameSheetInput struct {
	Filepath string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	OldName  string `json:"old_name" validate:"required" jsonschema_description:"Current sheet name"`
	NewName  string `json:"new_name" validate:"required" jsonschema_description:"New sheet name"`
}

// RangeInput defines parameters for tools addressing a cell range.
type RangeInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	StartCell string `json:"start_cell" validate:"required,a1cell" jsonschema_description:"First cell of the range"`
	EndCell   string `json:"end_cell" validate:"required,a1cell" jsonschema_description:"Last cell of the range"`
}

// CopyRangeInput defines parameters for copy_range.
type CopyRangeInput struct {
	Filepath    string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName   string `json:"sheet_name" validate:"required" jsonschema_description:"Source worksheet"`
	SourceStart string `json:"source_start" validate:"required,a1cell" jsonschema_description:"First cell of the source range"`
	SourceEnd   string `json:"source_end" validate:"required,a1cell" jsonschema_description:"Last cell of the source range"`
	TargetStart string `json:"target_start" validate:"required,a1cell" jsonschema_description:"Anchor cell for the copy"`
	TargetSheet string `json:"target_sheet,omitempty" jsonschema_description:"Destination worksheet; defaults to the source sheet"`
}

// DeleteRangeInput defines parameters for delete_range.
type DeleteRangeInput struct {
	Filepath       string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName      string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	StartCell      string `json:"start_cell" validate:"required,a1cell" jsonschema_description:"First cell of the range"`
	EndCell        string `json:"end_cell" validate:"required,a1cell" jsonschema_description:"Last cell of the range"`
	ShiftDirection string `json:"shift_direction,omitempty" validate:"omitempty,oneof=up left" jsonschema_description:"Where remaining cells move: up or left"`
}

// RowOpInput defines parameters for insert_rows and delete_sheet_rows.
type RowOpInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	StartRow  int    `json:"start_row" validate:"required,min=1" jsonschema_description:"First row, 1-indexed"`
	Count     int    `json:"count,omitempty" validate:"omitempty,min=1" jsonschema_description:"Number of rows, defaults to 1"`
}

// ColOpInput defines parameters for insert_columns and delete_sheet_columns.
type ColOpInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	StartCol  int    `json:"start_col" validate:"required,min=1" jsonschema_description:"First column, 1-indexed"`
	Count     int    `json:"count,omitempty" validate:"omitempty,min=1" jsonschema_description:"Number of columns, defaults to 1"`
}

func registerSheetTools(s *server.MCPServer, reg *Registry, deps *Deps) {
	type rangeAction func(path string, in RangeInput) (string, error)

	registerRangeTool := func(name, desc, op string, action rangeAction) {
		tool := mcp.NewTool(
			name,
			mcp.WithDescription(desc),
			mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
			mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
			mcp.WithString("start_cell", mcp.Required(), mcp.Description("First cell of the range")),
			mcp.WithString("end_cell", mcp.Required(), mcp.Description("Last cell of the range")),
		)
		s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in RangeInput) (*mcp.CallToolResult, error) {
			if err := validation.ValidateStruct(in); err != nil {
				return deps.toolError(op, err), nil
			}
			path, err := deps.Resolver.Resolve(in.Filepath)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			msg, err := action(path, in)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			return mcp.NewToolResultText(msg), nil
		}))
		reg.Register(tool)
	}

	copySheet := mcp.NewTool(
		"copy_worksheet",
		mcp.WithDescription("Duplicate a worksheet within the workbook"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("source_sheet", mcp.Required(), mcp.Description("Sheet to copy")),
		mcp.WithString("target_sheet", mcp.Required(), mcp.Description("Name for the copy")),
	)
	s.AddTool(copySheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CopySheetInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("copying worksheet", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("copying worksheet", err), nil
		}
		msg, err := excel.CopySheet(path, in.SourceSheet, in.TargetSheet)
		if err != nil {
			return deps.toolError("copying worksheet", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(copySheet)

	deleteSheet := mcp.NewTool(
		"delete_worksheet",
		mcp.WithDescription("Delete a worksheet; the last remaining sheet cannot be removed"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Sheet to delete")),
	)
	s.AddTool(deleteSheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in SheetNameInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("deleting worksheet", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("deleting worksheet", err), nil
		}
		msg, err := excel.DeleteSheet(path, in.SheetName)
		if err != nil {
			return deps.toolError("deleting worksheet", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(deleteSheet)

	renameSheet := mcp.NewTool(
		"rename_worksheet",
		mcp.WithDescription("Rename a worksheet"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("old_name", mcp.Required(), mcp.Description("Current sheet name")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("New sheet name")),
	)
	s.AddTool(renameSheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in RenameSheetInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("renaming worksheet", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("renaming worksheet", err), nil
		}
		msg, err := excel.RenameSheet(path, in.OldName, in.NewName)
		if err != nil {
			return deps.toolError("renaming worksheet", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(renameSheet)

	registerRangeTool("merge_cells", "Merge a cell range into one cell", "merging cells",
		func(path string, in RangeInput) (string, error) {
			return excel.MergeRange(path, in.SheetName, in.StartCell, in.EndCell)
		})

	registerRangeTool("unmerge_cells", "Split a previously merged cell range", "unmerging cells",
		func(path string, in RangeInput) (string, error) {
			return excel.UnmergeRange(path, in.SheetName, in.StartCell, in.EndCell)
		})

	mergedCells := mcp.NewTool(
		"get_merged_cells",
		mcp.WithDescription("List merged cell ranges in a worksheet"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet to inspect")),
	)
	s.AddTool(mergedCells, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in SheetNameInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("listing merged cells", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("listing merged cells", err), nil
		}
		merged, err := excel.GetMergedRanges(path, in.SheetName)
		if err != nil {
			return deps.toolError("listing merged cells", err), nil
		}
		payload, err := json.Marshal(merged)
		if err != nil {
			return deps.toolError("listing merged cells", err), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}))
	reg.Register(mergedCells)

	copyRange := mcp.NewTool(
		"copy_range",
		mcp.WithDescription("Copy values, formulas, and styles from one range to another, optionally across sheets"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Source worksheet")),
		mcp.WithString("source_start", mcp.Required(), mcp.Description("First cell of the source range")),
		mcp.WithString("source_end", mcp.Required(), mcp.Description("Last cell of the source range")),
		mcp.WithString("target_start", mcp.Required(), mcp.Description("Anchor cell for the copy")),
		mcp.WithString("target_sheet", mcp.Description("Destination worksheet; defaults to the source sheet")),
	)
	s.AddTool(copyRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CopyRangeInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("copying range", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("copying range", err), nil
		}
		msg, err := excel.CopyRange(path, in.SheetName, in.SourceStart, in.SourceEnd, in.TargetStart, in.TargetSheet)
		if err != nil {
			return deps.toolError("copying range", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(copyRange)

	deleteRange := mcp.NewTool(
		"delete_range",
		mcp.WithDescription("Clear a range and shift the remaining cells up or left"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
		mcp.WithString("start_cell", mcp.Required(), mcp.Description("First cell of the range")),
		mcp.WithString("end_cell", mcp.Required(), mcp.Description("Last cell of the range")),
		mcp.WithString("shift_direction", mcp.Description("Where remaining cells move: up (default) or left")),
	)
	s.AddTool(deleteRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in DeleteRangeInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("deleting range", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("deleting range", err), nil
		}
		msg, err := excel.DeleteRange(path, in.SheetName, in.StartCell, in.EndCell, in.ShiftDirection)
		if err != nil {
			return deps.toolError("deleting range", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(deleteRange)

	type rowAction func(path, sheet string, start, count int) (string, error)

	registerRowTool := func(name, desc, op string, action rowAction) {
		tool := mcp.NewTool(
			name,
			mcp.WithDescription(desc),
			mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
			mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
			mcp.WithNumber("start_row", mcp.Required(), mcp.Description("First row, 1-indexed")),
			mcp.WithNumber("count", mcp.Description("Number of rows, defaults to 1")),
		)
		s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in RowOpInput) (*mcp.CallToolResult, error) {
			if err := validation.ValidateStruct(in); err != nil {
				return deps.toolError(op, err), nil
			}
			path, err := deps.Resolver.Resolve(in.Filepath)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			count := in.Count
			if count == 0 {
				count = 1
			}
			msg, err := action(path, in.SheetName, in.StartRow, count)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			return mcp.NewToolResultText(msg), nil
		}))
		reg.Register(tool)
	}

	registerColTool := func(name, desc, op string, action rowAction) {
		tool := mcp.NewTool(
			name,
			mcp.WithDescription(desc),
			mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
			mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
			mcp.WithNumber("start_col", mcp.Required(), mcp.Description("First column, 1-indexed")),
			mcp.WithNumber("count", mcp.Description("Number of columns, defaults to 1")),
		)
		s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ColOpInput) (*mcp.CallToolResult, error) {
			if err := validation.ValidateStruct(in); err != nil {
				return deps.toolError(op, err), nil
			}
			path, err := deps.Resolver.Resolve(in.Filepath)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			count := in.Count
			if count == 0 {
				count = 1
			}
			msg, err := action(path, in.SheetName, in.StartCol, count)
			if err != nil {
				return deps.toolError(op, err), nil
			}
			return mcp.NewToolResultText(msg), nil
		}))
		reg.Register(tool)
	}

	registerRowTool("insert_rows", "Insert blank rows before a row", "inserting rows", excel.InsertRows)
	registerRowTool("delete_sheet_rows", "Delete rows starting at a row", "deleting rows", excel.DeleteRows)
	registerColTool("insert_columns", "Insert blank columns before a column", "inserting columns", excel.InsertColumns)
	registerColTool("delete_sheet_columns", "Delete columns starting at a column", "deleting columns", excel.DeleteColumns)
}
