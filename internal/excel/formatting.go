package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// ProtectionOptions controls cell protection attributes.
type ProtectionOptions struct {
	Locked bool `json:"locked"`
	Hidden bool `json:"hidden"`
}

// ConditionalFormatOptions describes a single conditional formatting rule
// applied alongside the static style.
type ConditionalFormatOptions struct {
	Type     string `json:"type"`
	Criteria string `json:"criteria"`
	Value    string `json:"value,omitempty"`
	BgColor  string `json:"bg_color,omitempty"`
}

// FormatOptions collects the styling knobs for a range. Zero values mean
// "leave unset"; colors accept hex with or without a leading '#'.
type FormatOptions struct {
	Bold              bool
	Italic            bool
	Underline         bool
	FontSize          int
	FontColor         string
	BgColor           string
	BorderStyle       string
	BorderColor       string
	NumberFormat      string
	Alignment         string
	WrapText          bool
	MergeCells        bool
	Protection        *ProtectionOptions
	ConditionalFormat *ConditionalFormatOptions
}

var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

func normColor(c string) string {
	return strings.TrimPrefix(c, "#")
}

// FormatRange applies the given options to startCell:endCell as a single
// style, optionally merging the cells and attaching a conditional format.
func FormatRange(path, sheet, startCell, endCell string, opts FormatOptions) (string, error) {
	if endCell == "" {
		endCell = startCell
	}
	if _, _, _, _, err := parseRange(startCell + ":" + endCell); err != nil {
		return "", err
	}

	err := withWorkbook(path, xlerr.Formatting, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}

		style := &excelize.Style{
			Font: &excelize.Font{
				Bold:   opts.Bold,
				Italic: opts.Italic,
			},
		}
		if opts.Underline {
			style.Font.Underline = "single"
		}
		if opts.FontSize > 0 {
			style.Font.Size = float64(opts.FontSize)
		}
		if opts.FontColor != "" {
			style.Font.Color = normColor(opts.FontColor)
		}
		if opts.BgColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{normColor(opts.BgColor)},
			}
		}
		if opts.BorderStyle != "" {
			bs, ok := borderStyles[strings.ToLower(opts.BorderStyle)]
			if !ok {
				return xlerr.New(xlerr.Validation, "unknown border style '%s'", opts.BorderStyle)
			}
			color := normColor(opts.BorderColor)
			if color == "" {
				color = "000000"
			}
			for _, side := range []string{"left", "right", "top", "bottom"} {
				style.Border = append(style.Border, excelize.Border{
					Type: side, Style: bs, Color: color,
				})
			}
		}
		if opts.NumberFormat != "" {
			nf := opts.NumberFormat
			style.CustomNumFmt = &nf
		}
		if opts.Alignment != "" || opts.WrapText {
			style.Alignment = &excelize.Alignment{
				Horizontal: opts.Alignment,
				WrapText:   opts.WrapText,
			}
		}
		if opts.Protection != nil {
			style.Protection = &excelize.Protection{
				Locked: opts.Protection.Locked,
				Hidden: opts.Protection.Hidden,
			}
		}

		styleID, err := f.NewStyle(style)
		if err != nil {
			return xlerr.Wrap(xlerr.Formatting, err, "failed to build style")
		}
		if err := f.SetCellStyle(sheet, startCell, endCell, styleID); err != nil {
			return xlerr.Wrap(xlerr.Formatting, err, "failed to apply style to %s:%s", startCell, endCell)
		}

		if opts.MergeCells {
			if err := f.MergeCell(sheet, startCell, endCell); err != nil {
				return xlerr.Wrap(xlerr.Formatting, err, "failed to merge %s:%s", startCell, endCell)
			}
		}

		if cf := opts.ConditionalFormat; cf != nil {
			cfStyle := &excelize.Style{}
			if cf.BgColor != "" {
				cfStyle.Fill = excelize.Fill{
					Type:    "pattern",
					Pattern: 1,
					Color:   []string{normColor(cf.BgColor)},
				}
			}
			formatID, err := f.NewConditionalStyle(cfStyle)
			if err != nil {
				return xlerr.Wrap(xlerr.Formatting, err, "failed to build conditional style")
			}
			rule := excelize.ConditionalFormatOptions{
				Type:     cf.Type,
				Criteria: cf.Criteria,
				Format:   &formatID,
			}
			if cf.Value != "" {
				rule.Value = cf.Value
			}
			area := startCell + ":" + endCell
			if err := f.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{rule}); err != nil {
				return xlerr.Wrap(xlerr.Formatting, err, "failed to set conditional format on %s", area)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return "Range formatted successfully", nil
}
