package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

var pivotAggregations = map[string]string{
	"mean":    "Average",
	"average": "Average",
	"sum":     "Sum",
	"count":   "Count",
	"max":     "Max",
	"min":     "Min",
}

// CreatePivotTable summarizes a data range into a new worksheet named
// "<sheet>_pivot". Field names must match the header row of the range.
func CreatePivotTable(path, sheet, dataRange string, rows, values, columns []string, aggFunc string) (string, error) {
	subtotal, ok := pivotAggregations[strings.ToLower(aggFunc)]
	if !ok {
		return "", xlerr.New(xlerr.Pivot, "unknown aggregation function '%s' (supported: sum, count, average, max, min)", aggFunc)
	}
	if len(rows) == 0 {
		return "", xlerr.New(xlerr.Pivot, "at least one row field is required")
	}
	if len(values) == 0 {
		return "", xlerr.New(xlerr.Pivot, "at least one value field is required")
	}
	c1, r1, c2, r2, err := parseRange(dataRange)
	if err != nil {
		return "", err
	}
	if r2 <= r1 {
		return "", xlerr.New(xlerr.Pivot, "data range %s has no data rows below the header", dataRange)
	}

	pivotSheet := sheet + "_pivot"
	err = withWorkbook(path, xlerr.Pivot, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}

		headers := make(map[string]bool, c2-c1+1)
		for col := c1; col <= c2; col++ {
			name, err := f.GetCellValue(sheet, cellName(col, r1))
			if err != nil {
				return xlerr.Wrap(xlerr.Pivot, err, "failed to read header row")
			}
			headers[name] = true
		}
		for _, field := range append(append(append([]string{}, rows...), values...), columns...) {
			if !headers[field] {
				return xlerr.New(xlerr.Pivot, "field '%s' not found in data range header", field)
			}
		}

		if sheetExists(f, pivotSheet) {
			if err := f.DeleteSheet(pivotSheet); err != nil {
				return xlerr.Wrap(xlerr.Pivot, err, "failed to replace sheet '%s'", pivotSheet)
			}
		}
		if _, err := f.NewSheet(pivotSheet); err != nil {
			return xlerr.Wrap(xlerr.Pivot, err, "failed to create sheet '%s'", pivotSheet)
		}

		opts := &excelize.PivotTableOptions{
			DataRange:       fmt.Sprintf("%s!%s:%s", sheet, cellName(c1, r1), cellName(c2, r2)),
			PivotTableRange: fmt.Sprintf("%s!%s:%s", pivotSheet, "A3", cellName(c2-c1+3, r2-r1+10)),
			RowGrandTotals:  true,
			ColGrandTotals:  true,
		}
		for _, field := range rows {
			opts.Rows = append(opts.Rows, excelize.PivotTableField{Data: field})
		}
		for _, field := range columns {
			opts.Columns = append(opts.Columns, excelize.PivotTableField{Data: field})
		}
		for _, field := range values {
			opts.Data = append(opts.Data, excelize.PivotTableField{
				Data:     field,
				Name:     fmt.Sprintf("%s of %s", subtotal, field),
				Subtotal: subtotal,
			})
		}
		if err := f.AddPivotTable(opts); err != nil {
			return xlerr.Wrap(xlerr.Pivot, err, "failed to add pivot table")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created pivot table in sheet '%s'", pivotSheet), nil
}
