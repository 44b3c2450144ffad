package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// ApplyFormula validates and writes a formula into a single cell.
func ApplyFormula(path, sheet, cell, formula string) (string, error) {
	if _, _, err := parseCell(cell); err != nil {
		return "", err
	}
	if err := checkFormulaSyntax(formula); err != nil {
		return "", err
	}
	err := withWorkbook(path, xlerr.Calculation, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, cell, strings.TrimPrefix(formula, "=")); err != nil {
			return xlerr.Wrap(xlerr.Calculation, err, "failed to set formula in %s", cell)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Applied formula '%s' to cell %s", formula, cell), nil
}

// ValidateFormulaInCell checks formula syntax against a workbook without
// mutating it. The cell and sheet must exist.
func ValidateFormulaInCell(path, sheet, cell, formula string) (string, error) {
	if _, _, err := parseCell(cell); err != nil {
		return "", err
	}
	if err := checkFormulaSyntax(formula); err != nil {
		return "", err
	}
	err := readWorkbook(path, xlerr.Calculation, func(f *excelize.File) error {
		return requireSheet(f, sheet)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Formula is valid for cell %s", cell), nil
}

// ValidateFormulaSyntax checks a formula string without touching any
// workbook.
func ValidateFormulaSyntax(formula string) (string, error) {
	if err := checkFormulaSyntax(formula); err != nil {
		return "", err
	}
	return fmt.Sprintf("Formula '%s' is syntactically valid", formula), nil
}

// checkFormulaSyntax performs a structural check: leading '=', balanced
// parentheses outside of string literals, and closed string literals.
func checkFormulaSyntax(formula string) error {
	if !strings.HasPrefix(formula, "=") {
		return xlerr.New(xlerr.Validation, "formula must start with '='")
	}
	body := formula[1:]
	if strings.TrimSpace(body) == "" {
		return xlerr.New(xlerr.Validation, "formula is empty")
	}
	depth := 0
	inString := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if inString {
			if ch == '"' {
				// Doubled quote is an escaped quote inside the literal.
				if i+1 < len(body) && body[i+1] == '"' {
					i++
					continue
				}
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return xlerr.New(xlerr.Validation, "unbalanced parentheses in formula")
			}
		}
	}
	if inString {
		return xlerr.New(xlerr.Validation, "unterminated string literal in formula")
	}
	if depth != 0 {
		return xlerr.New(xlerr.Validation, "unbalanced parentheses in formula")
	}
	return nil
}

// ValidateRange checks that a range is well formed and reports how it
// relates to the sheet's used extent.
func ValidateRange(path, sheet, startCell, endCell string) (string, error) {
	if endCell == "" {
		endCell = startCell
	}
	_, _, c2, r2, err := parseRange(startCell + ":" + endCell)
	if err != nil {
		return "", err
	}
	var maxCol, maxRow int
	err = readWorkbook(path, xlerr.Data, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		maxCol, maxRow, err = usedExtent(f, sheet)
		return err
	})
	if err != nil {
		return "", err
	}
	rangeStr := startCell + ":" + endCell
	if c2 > maxCol || r2 > maxRow {
		return fmt.Sprintf(
			"Range %s is valid but extends beyond the used area (%s)",
			rangeStr, cellName(maxCol, maxRow),
		), nil
	}
	return fmt.Sprintf("Range %s is valid in sheet '%s'", rangeStr, sheet), nil
}
