package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

var chartTypes = map[string]excelize.ChartType{
	"line":    excelize.Line,
	"bar":     excelize.Bar,
	"column":  excelize.Col,
	"pie":     excelize.Pie,
	"scatter": excelize.Scatter,
	"area":    excelize.Area,
}

// CreateChart builds a chart from a data range. The first column of the
// range supplies category labels, the header row supplies series names,
// and each remaining column becomes one series.
func CreateChart(path, sheet, dataRange, chartType, targetCell, title, xAxis, yAxis string) (string, error) {
	kind, ok := chartTypes[strings.ToLower(chartType)]
	if !ok {
		names := make([]string, 0, len(chartTypes))
		for name := range chartTypes {
			names = append(names, name)
		}
		return "", xlerr.New(xlerr.Chart, "unknown chart type '%s' (supported: %s)", chartType, strings.Join(names, ", "))
	}
	c1, r1, c2, r2, err := parseRange(dataRange)
	if err != nil {
		return "", err
	}
	if _, _, err := parseCell(targetCell); err != nil {
		return "", err
	}
	if r2 <= r1 {
		return "", xlerr.New(xlerr.Chart, "data range %s has no data rows below the header", dataRange)
	}
	if c2 <= c1 {
		return "", xlerr.New(xlerr.Chart, "data range %s has no series columns", dataRange)
	}

	err = withWorkbook(path, xlerr.Chart, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}

		catRef := fmt.Sprintf("%s!%s:%s", sheet, absCellName(c1, r1+1), absCellName(c1, r2))
		series := make([]excelize.ChartSeries, 0, c2-c1)
		for col := c1 + 1; col <= c2; col++ {
			series = append(series, excelize.ChartSeries{
				Name:       fmt.Sprintf("%s!%s", sheet, absCellName(col, r1)),
				Categories: catRef,
				Values:     fmt.Sprintf("%s!%s:%s", sheet, absCellName(col, r1+1), absCellName(col, r2)),
			})
		}

		chart := &excelize.Chart{
			Type:   kind,
			Series: series,
		}
		if title != "" {
			chart.Title = []excelize.RichTextRun{{Text: title}}
		}
		if xAxis != "" {
			chart.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: xAxis}}}
		}
		if yAxis != "" {
			chart.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: yAxis}}}
		}
		if err := f.AddChart(sheet, targetCell, chart); err != nil {
			return xlerr.Wrap(xlerr.Chart, err, "failed to add chart at %s", targetCell)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created %s chart at %s", strings.ToLower(chartType), targetCell), nil
}
