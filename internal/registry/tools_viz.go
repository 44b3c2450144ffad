package registry

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	"github.com/sheetbridge/excel-mcp-server/pkg/validation"
)

// CreateChartInput defines parameters for create_chart.
type CreateChartInput struct {
	Filepath   string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName  string `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet holding the data"`
	DataRange  string `json:"data_range" validate:"required,a1range" jsonschema_description:"Data range including a header row and a leading category column"`
	ChartType  string `json:"chart_type" validate:"required" jsonschema_description:"Chart type: line, bar, column, pie, scatter, area"`
	TargetCell string `json:"target_cell" validate:"required,a1cell" jsonschema_description:"Top-left anchor for the chart"`
	Title      string `json:"title,omitempty" jsonschema_description:"Chart title"`
	XAxis      string `json:"x_axis,omitempty" jsonschema_description:"X axis title"`
	YAxis      string `json:"y_axis,omitempty" jsonschema_description:"Y axis title"`
}

// CreatePivotTableInput defines parameters for create_pivot_table.
type CreatePivotTableInput struct {
	Filepath  string   `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName string   `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet holding the data"`
	DataRange string   `json:"data_range" validate:"required,a1range" jsonschema_description:"Data range including a header row"`
	Rows      []string `json:"rows" validate:"required,min=1" jsonschema_description:"Header names used as row fields"`
	Values    []string `json:"values" validate:"required,min=1" jsonschema_description:"Header names aggregated as values"`
	Columns   []string `json:"columns,omitempty" jsonschema_description:"Header names used as column fields"`
	AggFunc   string   `json:"agg_func,omitempty" jsonschema_description:"Aggregation: mean (default), sum, count, average, max, min"`
}

// CreateTableInput defines parameters for create_table.
type CreateTableInput struct {
	Filepath   string `json:"filepath" validate:"required,excel_path" jsonschema_description:"Path to the workbook"`
	SheetName  string `json:"sheet_name" validate:"required" jsonschema_description:"Worksheet holding the data"`
	DataRange  string `json:"data_range" validate:"required,a1range" jsonschema_description:"Range the table covers, including headers"`
	TableName  string `json:"table_name,omitempty" jsonschema_description:"Table name; generated when omitted"`
	TableStyle string `json:"table_style,omitempty" jsonschema_description:"Built-in style name, defaults to TableStyleMedium9"`
}

func registerVizTools(s *server.MCPServer, reg *Registry, deps *Deps) {
	createChart := mcp.NewTool(
		"create_chart",
		mcp.WithDescription("Create a chart from a data range; first column is categories, header row names the series"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet holding the data")),
		mcp.WithString("data_range", mcp.Required(), mcp.Description("Data range, e.g. A1:C10")),
		mcp.WithString("chart_type", mcp.Required(), mcp.Description("line, bar, column, pie, scatter, or area")),
		mcp.WithString("target_cell", mcp.Required(), mcp.Description("Top-left anchor for the chart")),
		mcp.WithString("title", mcp.Description("Chart title")),
		mcp.WithString("x_axis", mcp.Description("X axis title")),
		mcp.WithString("y_axis", mcp.Description("Y axis title")),
	)
	s.AddTool(createChart, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CreateChartInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("creating chart", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("creating chart", err), nil
		}
		msg, err := excel.CreateChart(path, in.SheetName, in.DataRange, in.ChartType, in.TargetCell, in.Title, in.XAxis, in.YAxis)
		if err != nil {
			return deps.toolError("creating chart", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(createChart)

	createPivot := mcp.NewTool(
		"create_pivot_table",
		mcp.WithDescription("Summarize a data range into a pivot table on a new worksheet"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet holding the data")),
		mcp.WithString("data_range", mcp.Required(), mcp.Description("Data range including a header row")),
		mcp.WithArray("rows", mcp.Required(), mcp.Description("Header names used as row fields")),
		mcp.WithArray("values", mcp.Required(), mcp.Description("Header names aggregated as values")),
		mcp.WithArray("columns", mcp.Description("Header names used as column fields")),
		mcp.WithString("agg_func", mcp.Description("mean (default), sum, count, average, max, or min")),
	)
	s.AddTool(createPivot, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CreatePivotTableInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("creating pivot table", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("creating pivot table", err), nil
		}
		aggFunc := in.AggFunc
		if aggFunc == "" {
			aggFunc = "mean"
		}
		msg, err := excel.CreatePivotTable(path, in.SheetName, in.DataRange, in.Rows, in.Values, in.Columns, aggFunc)
		if err != nil {
			return deps.toolError("creating pivot table", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(createPivot)

	createTable := mcp.NewTool(
		"create_table",
		mcp.WithDescription("Register a native Excel table over a data range"),
		mcp.WithString("filepath", mcp.Required(), mcp.Description("Path to the workbook")),
		mcp.WithString("sheet_name", mcp.Required(), mcp.Description("Worksheet holding the data")),
		mcp.WithString("data_range", mcp.Required(), mcp.Description("Range the table covers, including headers")),
		mcp.WithString("table_name", mcp.Description("Table name; generated when omitted")),
		mcp.WithString("table_style", mcp.Description("Built-in style name, defaults to TableStyleMedium9")),
	)
	s.AddTool(createTable, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CreateTableInput) (*mcp.CallToolResult, error) {
		if err := validation.ValidateStruct(in); err != nil {
			return deps.toolError("creating table", err), nil
		}
		path, err := deps.Resolver.Resolve(in.Filepath)
		if err != nil {
			return deps.toolError("creating table", err), nil
		}
		msg, err := excel.CreateTable(path, in.SheetName, in.DataRange, in.TableName, in.TableStyle)
		if err != nil {
			return deps.toolError("creating table", err), nil
		}
		return mcp.NewToolResultText(msg), nil
	}))
	reg.Register(createTable)
}
