package registry

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	"github.com/sheetbridge/excel-mcp-server/pkg/validation"
)

// ApplyFormulaInput defines parameters for apply_formula and
// validate_formula_syntax, which share a signature.
type ApplyFormulaInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	Cell      string `json:"cell" validate:"required,a1cell" jsonschema_description:"Target cell in A1 notation"`
	Formula   string `json:"formula" validate:"required" jsonschema_description:"Formula including the leading '='"`
}

// FormatRangeInput defines parameters for format_range.
type FormatRangeInput struct {
	Filepath          string                          `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName         string                          `json:"sheet_name" validate:"required" jsonschema_description:"Target worksheet"`
	StartCell         string                          `json:"start_cell" validate:"required,a1cell" jsonschema_description:"First cell of the range"`
	EndCell           string                          `json:"end_cell,omitempty" validate:"omitempty,a1cell" jsonschema_description:"Last cell; omitted means a single cell"`
	Bold              bool                            `json:"bold,omitempty"`
	Italic            bool                            `json:"italic,omitempty"`
	Underline         bool                            `json:"underline,omitempty"`
	FontSize          int                             `json:"font_size,omitempty" validate:"omitempty,min=1,max=409"`
	FontColor         string                          `json:"font_color,omitempty"`
	BgColor           string                          `json:"bg_color,omitempty"`
	BorderStyle       string                          `json:"border_style,omitempty"`
	BorderColor       string                          `json:"border_color,omitempty"`
	NumberFormat      string                          `json:"number_format,omitempty"`
	Alignment         string                          `json:"alignment,omitempty"`
	WrapText          bool                            `json:"wrap_text,omitempty"`
	MergeCells        bool                            `json:"merge_cells,omitempty"`
	Protection        *excel.ProtectionOptions        `json:"protection,omitempty"`
	ConditionalFormat *excel.ConditionalFormatOptions `json:"conditional_format,omitempty"`
}

// ValidateRangeInput defines parameters for validate_excel_range.
type ValidateRangeInput struct {
	Filepath  string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet to check against"`
	StartCell string `json:"start_cell" validate:"required,a1cell" jsonschema_description:"First cell of the range"`
	EndCell   string `json:"end_cell,omitempty" validate:"omitempty,a1cell" jsonschema_description:"Last cell; omitted means a single cell"`
}

func registerFormatTools(s *server.MCPServer, reg *Registry, deps *Deps) {
	applyFormula := mcp.NewTool(
		"apply_formula",
		mcp.WithDescription("Validate a formula and write it into a cell"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
		mcp.WithString("cell", mcp.Required(), mcp.Description("Target cell in A1 notation")),
		mcp.WithString("formula", mcp.Required(), mcp.Description("Formula including the leading '='")),
	)
	s.AddTool(applyFormula, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ApplyFormulaInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("applying formula", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("applying formula", err), nil
		}
		if _, err := excel.ValidateFormulaInCell(path, in.SheetName, in.Cell, in.Formula); err != nil {
			return deps.toolError("applying formula", err), nil
		}
		msg, err := excel.ApplyFormula(path, in.SheetName, in.Cell, in.Formula)
		if err != nil {
			return deps.toolError("applying formula", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(applyFormula)

	validateFormula := mcp.NewTool(
		"validate_formula_syntax",
		mcp.WithDescription("Check formula syntax against a cell without modifying the workbook"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
		mcp.WithString("cell", mcp.Required(), mcp.Description("Target cell in A1 notation")),
		mcp.WithString("formula", mcp.Required(), mcp.Description("Formula including the leading '='")),
	)
	s.AddTool(validateFormula, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ApplyFormulaInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("validating formula", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("validating formula", err), nil
		}
		msg, err := excel.ValidateFormulaInCell(path, in.SheetName, in.Cell, in.Formula)
		if err != nil {
			return deps.toolError("validating formula", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(validateFormula)

	formatRange := mcp.NewTool(
		"format_range",
		mcp.WithDescription("Apply fonts, fills, borders, number formats, alignment, protection, and conditional formatting to a range"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Target worksheet")),
		mcp.WithString("start_cell", mcp.Required(), mcp.Description("First cell of the range")),
		mcp.WithString("end_cell", mcp.Description("Last cell; omitted means a single cell")),
		mcp.WithBoolean("bold", mcp.Description("Bold text")),
		mcp.WithBoolean("italic", mcp.Description("Italic text")),
		mcp.WithBoolean("underline", mcp.Description("Underlined text")),
		mcp.WithNumber("font_size", mcp.Description("Font size in points")),
		mcp.WithString("font_color", mcp.Description("Font color as hex, e.g. FF0000")),
		mcp.WithString("bg_color", mcp.Description("Fill color as hex")),
		mcp.WithString("border_style", mcp.Description("Border style: thin, medium, dashed, dotted, thick, double")),
		mcp.WithString("border_color", mcp.Description("Border color as hex")),
		mcp.WithString("number_format", mcp.Description("Number format code, e.g. 0.00%")),
		mcp.WithString("alignment", mcp.Description("Horizontal alignment: left, center, right")),
		mcp.WithBoolean("wrap_text", mcp.Description("Wrap cell text")),
		mcp.WithBoolean("merge_cells", mcp.Description("Merge the range into one cell")),
		mcp.WithObject("protection", mcp.Description("Cell protection: locked, hidden")),
		mcp.WithObject("conditional_format", mcp.Description("Conditional rule: type, criteria, value, bg_color")),
	)
	s.AddTool(formatRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FormatRangeInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("formatting range", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("formatting range", err), nil
		}
		opts := excel.FormatOptions{
			Bold:              in.Bold,
			Italic:            in.Italic,
			Underline:         in.Underline,
			FontSize:          in.FontSize,
			FontColor:         in.FontColor,
			BgColor:           in.BgColor,
			BorderStyle:       in.BorderStyle,
			BorderColor:       in.BorderColor,
			NumberFormat:      in.NumberFormat,
			Alignment:         in.Alignment,
			WrapText:          in.WrapText,
			MergeCells:        in.MergeCells,
			Protection:        in.Protection,
			ConditionalFormat: in.ConditionalFormat,
		}
		msg, err := excel.FormatRange(path, in.SheetName, in.StartCell, in.EndCell, opts)
		if err != nil {
			return deps.toolError("formatting range", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(formatRange)

	validateRange := mcp.NewTool(
		"validate_excel_range",
		mcp.WithDescription("Check that a range is well formed and report how it relates to the sheet's used area"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet to check against")),
		mcp.WithString("start_cell", mcp.Required(), mcp.Description("First cell of the range")),
		mcp.WithString("end_cell", mcp.Description("Last cell; omitted means a single cell")),
	)
	s.AddTool(validateRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ValidateRangeInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("validating range", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("validating range", err), nil
		}
		msg, err := excel.ValidateRange(path, in.SheetName, in.StartCell, in.EndCell)
		if err != nil {
			return deps.toolError("validating range", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(validateRange)
}
