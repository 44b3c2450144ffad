package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// CopySheet duplicates a worksheet within the same workbook.
func CopySheet(path, source, target string) (string, error) {
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		srcIdx, err := f.GetSheetIndex(source)
		if err != nil || srcIdx == -1 {
			return xlerr.New(xlerr.Sheet, "source sheet '%s' not found", source)
		}
		if sheetExists(f, target) {
			return xlerr.New(xlerr.Sheet, "target sheet '%s' already exists", target)
		}
		dstIdx, err := f.NewSheet(target)
		if err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to create sheet '%s'", target)
		}
		if err := f.CopySheet(srcIdx, dstIdx); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to copy sheet '%s' to '%s'", source, target)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet '%s' copied to '%s'", source, target), nil
}

// DeleteSheet removes a worksheet. The last remaining sheet cannot be deleted.
func DeleteSheet(path, sheet string) (string, error) {
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if len(f.GetSheetList()) == 1 {
			return xlerr.New(xlerr.Sheet, "cannot delete the only sheet '%s'", sheet)
		}
		if err := f.DeleteSheet(sheet); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to delete sheet '%s'", sheet)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet '%s' deleted", sheet), nil
}

// RenameSheet renames a worksheet.
func RenameSheet(path, oldName, newName string) (string, error) {
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, oldName); err != nil {
			return err
		}
		if sheetExists(f, newName) {
			return xlerr.New(xlerr.Sheet, "sheet '%s' already exists", newName)
		}
		if err := f.SetSheetName(oldName, newName); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to rename sheet '%s'", oldName)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet renamed from '%s' to '%s'", oldName, newName), nil
}

// MergeRange merges the cells between startCell and endCell.
func MergeRange(path, sheet, startCell, endCell string) (string, error) {
	if _, _, _, _, err := parseRange(startCell + ":" + endCell); err != nil {
		return "", err
	}
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, startCell, endCell); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to merge %s:%s", startCell, endCell)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s:%s merged in sheet '%s'", startCell, endCell, sheet), nil
}

// UnmergeRange splits a previously merged range. The range must match an
// existing merged region exactly.
func UnmergeRange(path, sheet, startCell, endCell string) (string, error) {
	c1, r1, c2, r2, err := parseRange(startCell + ":" + endCell)
	if err != nil {
		return "", err
	}
	err = withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		merged, err := f.GetMergeCells(sheet)
		if err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to list merged cells")
		}
		found := false
		for _, m := range merged {
			mc1, mr1, mc2, mr2, err := parseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
			if err != nil {
				continue
			}
			if mc1 == c1 && mr1 == r1 && mc2 == c2 && mr2 == r2 {
				found = true
				break
			}
		}
		if !found {
			return xlerr.New(xlerr.Sheet, "range %s:%s is not merged in sheet '%s'", startCell, endCell, sheet)
		}
		if err := f.UnmergeCell(sheet, startCell, endCell); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to unmerge %s:%s", startCell, endCell)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s:%s unmerged in sheet '%s'", startCell, endCell, sheet), nil
}

// GetMergedRanges lists merged regions as A1-style range strings.
func GetMergedRanges(path, sheet string) ([]string, error) {
	var out []string
	err := readWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		merged, err := f.GetMergeCells(sheet)
		if err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to list merged cells")
		}
		out = make([]string, 0, len(merged))
		for _, m := range merged {
			out = append(out, m.GetStartAxis()+":"+m.GetEndAxis())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CopyRange copies values, formulas, and styles from a source range to a
// target anchor, optionally on another sheet.
func CopyRange(path, sheet, sourceStart, sourceEnd, targetStart, targetSheet string) (string, error) {
	if targetSheet == "" {
		targetSheet = sheet
	}
	c1, r1, c2, r2, err := parseRange(sourceStart + ":" + sourceEnd)
	if err != nil {
		return "", err
	}
	tc, tr, err := parseCell(targetStart)
	if err != nil {
		return "", err
	}

	err = withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := requireSheet(f, targetSheet); err != nil {
			return err
		}
		for row := r1; row <= r2; row++ {
			for col := c1; col <= c2; col++ {
				src := cellName(col, row)
				dst := cellName(tc+col-c1, tr+row-r1)
				if err := copyCell(f, sheet, targetSheet, src, dst); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s:%s copied to %s!%s", sourceStart, sourceEnd, targetSheet, targetStart), nil
}

func copyCell(f *excelize.File, srcSheet, dstSheet, src, dst string) error {
	formula, err := f.GetCellFormula(srcSheet, src)
	if err != nil {
		return xlerr.Wrap(xlerr.Sheet, err, "failed to read cell %s", src)
	}
	if formula != "" {
		if err := f.SetCellFormula(dstSheet, dst, formula); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to write cell %s", dst)
		}
	} else {
		val, err := f.GetCellValue(srcSheet, src)
		if err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to read cell %s", src)
		}
		if err := f.SetCellValue(dstSheet, dst, val); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to write cell %s", dst)
		}
	}
	if styleID, err := f.GetCellStyle(srcSheet, src); err == nil && styleID != 0 {
		_ = f.SetCellStyle(dstSheet, dst, dst, styleID)
	}
	return nil
}

func clearCell(f *excelize.File, sheet, cell string) error {
	if err := f.SetCellFormula(sheet, cell, ""); err != nil {
		return xlerr.Wrap(xlerr.Sheet, err, "failed to clear cell %s", cell)
	}
	if err := f.SetCellValue(sheet, cell, nil); err != nil {
		return xlerr.Wrap(xlerr.Sheet, err, "failed to clear cell %s", cell)
	}
	return nil
}

// DeleteRange clears a range and shifts the remaining cells up or left.
func DeleteRange(path, sheet, startCell, endCell, shiftDirection string) (string, error) {
	if shiftDirection == "" {
		shiftDirection = "up"
	}
	if shiftDirection != "up" && shiftDirection != "left" {
		return "", xlerr.New(xlerr.Validation, "shift_direction must be 'up' or 'left', got '%s'", shiftDirection)
	}
	c1, r1, c2, r2, err := parseRange(startCell + ":" + endCell)
	if err != nil {
		return "", err
	}

	err = withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		maxCol, maxRow, err := usedExtent(f, sheet)
		if err != nil {
			return err
		}

		switch shiftDirection {
		case "up":
			height := r2 - r1 + 1
			for col := c1; col <= c2; col++ {
				for row := r1; row+height <= maxRow; row++ {
					src := cellName(col, row+height)
					if err := copyCell(f, sheet, sheet, src, cellName(col, row)); err != nil {
						return err
					}
				}
				// Vacated tail below the shifted block.
				for row := max(r1, maxRow-height+1); row <= maxRow; row++ {
					if err := clearCell(f, sheet, cellName(col, row)); err != nil {
						return err
					}
				}
			}
		case "left":
			width := c2 - c1 + 1
			for row := r1; row <= r2; row++ {
				for col := c1; col+width <= maxCol; col++ {
					src := cellName(col+width, row)
					if err := copyCell(f, sheet, sheet, src, cellName(col, row)); err != nil {
						return err
					}
				}
				for col := max(c1, maxCol-width+1); col <= maxCol; col++ {
					if err := clearCell(f, sheet, cellName(col, row)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s:%s deleted in sheet '%s' (shifted %s)", startCell, endCell, sheet, shiftDirection), nil
}

// InsertRows inserts count blank rows before startRow.
func InsertRows(path, sheet string, startRow, count int) (string, error) {
	if startRow < 1 || count < 1 {
		return "", xlerr.New(xlerr.Validation, "start_row and count must be positive")
	}
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := f.InsertRows(sheet, startRow, count); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to insert rows")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Inserted %d row(s) at row %d in sheet '%s'", count, startRow, sheet), nil
}

// InsertColumns inserts count blank columns before startCol (1-indexed).
func InsertColumns(path, sheet string, startCol, count int) (string, error) {
	if startCol < 1 || count < 1 {
		return "", xlerr.New(xlerr.Validation, "start_col and count must be positive")
	}
	colName, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		return "", xlerr.New(xlerr.Validation, "invalid column number %d", startCol)
	}
	err = withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := f.InsertCols(sheet, colName, count); err != nil {
			return xlerr.Wrap(xlerr.Sheet, err, "failed to insert columns")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Inserted %d column(s) at column %s in sheet '%s'", count, colName, sheet), nil
}

// DeleteRows removes count rows starting at startRow.
func DeleteRows(path, sheet string, startRow, count int) (string, error) {
	if startRow < 1 || count < 1 {
		return "", xlerr.New(xlerr.Validation, "start_row and count must be positive")
	}
	err := withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := f.RemoveRow(sheet, startRow); err != nil {
				return xlerr.Wrap(xlerr.Sheet, err, "failed to delete row %d", startRow)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted %d row(s) starting at row %d in sheet '%s'", count, startRow, sheet), nil
}

// DeleteColumns removes count columns starting at startCol (1-indexed).
func DeleteColumns(path, sheet string, startCol, count int) (string, error) {
	if startCol < 1 || count < 1 {
		return "", xlerr.New(xlerr.Validation, "start_col and count must be positive")
	}
	colName, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		return "", xlerr.New(xlerr.Validation, "invalid column number %d", startCol)
	}
	err = withWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := f.RemoveCol(sheet, colName); err != nil {
				return xlerr.Wrap(xlerr.Sheet, err, "failed to delete column %s", colName)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted %d column(s) starting at column %s in sheet '%s'", count, colName, sheet), nil
}
