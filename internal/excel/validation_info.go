package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// ValidationRule describes one data validation rule in a worksheet.
type ValidationRule struct {
	Ranges     string `json:"ranges"`
	Type       string `json:"type"`
	Operator   string `json:"operator,omitempty"`
	Formula1   string `json:"formula1,omitempty"`
	Formula2   string `json:"formula2,omitempty"`
	AllowBlank bool   `json:"allow_blank"`
	Prompt     string `json:"prompt,omitempty"`
}

// SheetValidations is the structured result of a validation-rule scan.
type SheetValidations struct {
	Sheet string           `json:"sheet_name"`
	Rules []ValidationRule `json:"validation_rules"`
}

// GetDataValidationInfo lists every data validation rule in a worksheet.
// An empty Rules slice means the sheet has none.
func GetDataValidationInfo(path, sheet string) (*SheetValidations, error) {
	var out *SheetValidations
	err := readWorkbook(path, xlerr.Sheet, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		rules, err := sheetValidationRules(f, sheet)
		if err != nil {
			return err
		}
		out = &SheetValidations{Sheet: sheet, Rules: rules}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sheetValidationRules(f *excelize.File, sheet string) ([]ValidationRule, error) {
	dvs, err := f.GetDataValidations(sheet)
	if err != nil {
		return nil, xlerr.Wrap(xlerr.Sheet, err, "failed to read data validations for sheet '%s'", sheet)
	}
	rules := make([]ValidationRule, 0, len(dvs))
	for _, dv := range dvs {
		if dv == nil {
			continue
		}
		rule := ValidationRule{
			Ranges:     dv.Sqref,
			Type:       dv.Type,
			Operator:   dv.Operator,
			Formula1:   trimFormulaXML(dv.Formula1),
			Formula2:   trimFormulaXML(dv.Formula2),
			AllowBlank: dv.AllowBlank,
		}
		if dv.Prompt != nil {
			rule.Prompt = *dv.Prompt
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// trimFormulaXML strips the inner-XML wrapper excelize keeps around stored
// validation formulas.
func trimFormulaXML(s string) string {
	s = strings.TrimPrefix(s, "<formula1>")
	s = strings.TrimPrefix(s, "<formula2>")
	s = strings.TrimSuffix(s, "</formula1>")
	s = strings.TrimSuffix(s, "</formula2>")
	return s
}

// matchValidation returns the first rule whose target ranges contain the
// given coordinates, or nil.
func matchValidation(rules []ValidationRule, col, row int) *ValidationRule {
	for i := range rules {
		for _, ref := range strings.Fields(rules[i].Ranges) {
			c1, r1, c2, r2, err := parseRange(ref)
			if err != nil {
				continue
			}
			if col >= c1 && col <= c2 && row >= r1 && row <= r2 {
				return &rules[i]
			}
		}
	}
	return nil
}
