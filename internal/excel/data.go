package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// CellData describes one cell of a read range, including any data validation
// rule attached to it.
type CellData struct {
	Address    string          `json:"address"`
	Value      any             `json:"value"`
	Row        int             `json:"row"`
	Column     int             `json:"column"`
	Validation *ValidationRule `json:"validation,omitempty"`
}

// RangeData is the structured result of a range read.
type RangeData struct {
	Sheet string     `json:"sheet_name"`
	Range string     `json:"range"`
	Cells []CellData `json:"cells"`
}

// WriteData writes a row-major matrix of values starting at startCell.
// String values with a leading '=' are written as formulas, unverified.
func WriteData(path, sheet string, data [][]any, startCell string) (string, error) {
	if len(data) == 0 {
		return "", xlerr.New(xlerr.Data, "no data provided to write")
	}
	startCol, startRow, err := parseCell(startCell)
	if err != nil {
		return "", err
	}

	cols := 0
	err = withWorkbook(path, xlerr.Data, func(f *excelize.File) error {
		if !sheetExists(f, sheet) {
			return xlerr.New(xlerr.Data, "sheet '%s' not found", sheet)
		}
		for i, row := range data {
			if len(row) > cols {
				cols = len(row)
			}
			for j, val := range row {
				cell := cellName(startCol+j, startRow+i)
				if s, ok := val.(string); ok && strings.HasPrefix(s, "=") {
					if err := f.SetCellFormula(sheet, cell, strings.TrimPrefix(s, "=")); err != nil {
						return xlerr.Wrap(xlerr.Data, err, "failed to write formula to %s", cell)
					}
					continue
				}
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return xlerr.Wrap(xlerr.Data, err, "failed to write value to %s", cell)
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Data written to sheet '%s' starting at %s (%d rows x %d columns)",
		sheet, startCell, len(data), cols), nil
}

// ReadRange reads a cell range with per-cell metadata. With an empty endCell
// the range auto-expands to the sheet's used extent. Cells without content
// are omitted; an empty result means no data in the requested range.
func ReadRange(path, sheet, startCell, endCell string) (*RangeData, error) {
	startCol, startRow, err := parseCell(startCell)
	if err != nil {
		return nil, err
	}

	var out *RangeData
	err = readWorkbook(path, xlerr.Data, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}

		endCol, endRow := startCol, startRow
		if endCell != "" {
			endCol, endRow, err = parseCell(endCell)
			if err != nil {
				return err
			}
			if endCol < startCol || endRow < startRow {
				startCol, endCol = min(startCol, endCol), max(startCol, endCol)
				startRow, endRow = min(startRow, endRow), max(startRow, endRow)
			}
		} else {
			maxCol, maxRow, err := usedExtent(f, sheet)
			if err != nil {
				return err
			}
			if maxCol >= startCol {
				endCol = maxCol
			}
			if maxRow >= startRow {
				endRow = maxRow
			}
		}

		rules, err := sheetValidationRules(f, sheet)
		if err != nil {
			return err
		}

		out = &RangeData{
			Sheet: sheet,
			Range: cellName(startCol, startRow) + ":" + cellName(endCol, endRow),
		}
		for row := startRow; row <= endRow; row++ {
			for col := startCol; col <= endCol; col++ {
				cell := cellName(col, row)
				raw, err := f.GetCellValue(sheet, cell)
				if err != nil {
					return xlerr.Wrap(xlerr.Data, err, "failed to read cell %s", cell)
				}
				if raw == "" {
					continue
				}
				out.Cells = append(out.Cells, CellData{
					Address:    cell,
					Value:      typedValue(raw),
					Row:        row,
					Column:     col,
					Validation: matchValidation(rules, col, row),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// typedValue converts excelize's string cell values to JSON-friendly types.
func typedValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	switch raw {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return raw
}
