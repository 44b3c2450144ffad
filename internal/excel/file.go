// Package excel adapts excelize to the operations the tool layer exposes.
// Every operation opens the target file, mutates it, saves, and closes within
// the call; no workbook handle survives across requests, so two concurrent
// calls against the same file race at the filesystem level by design.
package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// openWorkbook opens path, tagging failures with the caller's domain kind.
func openWorkbook(path string, kind xlerr.Kind) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, xlerr.Wrap(kind, err, "failed to open workbook: %s", path)
	}
	return f, nil
}

// withWorkbook runs fn against the opened workbook and saves it in place when
// fn succeeds. The file is always closed.
func withWorkbook(path string, kind xlerr.Kind, fn func(*excelize.File) error) error {
	f, err := openWorkbook(path, kind)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := fn(f); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return xlerr.Wrap(kind, err, "failed to save workbook: %s", path)
	}
	return nil
}

// readWorkbook runs fn against the opened workbook without saving.
func readWorkbook(path string, kind xlerr.Kind, fn func(*excelize.File) error) error {
	f, err := openWorkbook(path, kind)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return fn(f)
}

// requireSheet fails with a Sheet error when the named sheet is absent.
func requireSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		return xlerr.New(xlerr.Sheet, "sheet '%s' not found", sheet)
	}
	return nil
}

func sheetExists(f *excelize.File, sheet string) bool {
	idx, err := f.GetSheetIndex(sheet)
	return err == nil && idx != -1
}

// parseCell converts an A1-style reference into 1-indexed coordinates.
func parseCell(cell string) (col, row int, err error) {
	col, row, err = excelize.CellNameToCoordinates(strings.TrimSpace(cell))
	if err != nil {
		return 0, 0, xlerr.New(xlerr.Validation, "invalid cell reference '%s'", cell)
	}
	return col, row, nil
}

// parseRange parses "A1:C3" (or a single cell) into normalized 1-indexed
// bounds with startCol<=endCol and startRow<=endRow.
func parseRange(rangeRef string) (c1, r1, c2, r2 int, err error) {
	s := strings.TrimSpace(rangeRef)
	if s == "" {
		return 0, 0, 0, 0, xlerr.New(xlerr.Validation, "empty range")
	}
	start, end, hasColon := strings.Cut(s, ":")
	if !hasColon {
		end = start
	}
	c1, r1, err = parseCell(start)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	c2, r2, err = parseCell(end)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2, nil
}

// cellName converts coordinates back to an A1 reference. Coordinates come
// from parseCell/parseRange, so failures are programmer errors; fall back to
// "A1" rather than panicking mid-operation.
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}

// absCellName returns an absolute reference ($B$2) for chart series.
func absCellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row, true)
	if err != nil {
		return "$A$1"
	}
	return name
}

// usedExtent reports the populated width and height of a sheet based on its
// cell content (not the stored dimension attribute, which may lag edits).
func usedExtent(f *excelize.File, sheet string) (maxCol, maxRow int, err error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, xlerr.Wrap(xlerr.Sheet, err, "failed to scan sheet '%s'", sheet)
	}
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol, maxRow, nil
}
