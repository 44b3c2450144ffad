package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// WorkbookInfo summarizes a workbook without loading cell data.
type WorkbookInfo struct {
	Filename   string            `json:"filename"`
	Sheets     []string          `json:"sheets"`
	SizeBytes  int64             `json:"size_bytes"`
	Modified   string            `json:"modified"`
	UsedRanges map[string]string `json:"used_ranges,omitempty"`
}

// CreateWorkbook writes a new empty workbook at path. The path is expected to
// come from the creation-variant resolver, so parent directories exist.
func CreateWorkbook(path string) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return "", xlerr.Wrap(xlerr.Workbook, err, "failed to create workbook: %s", path)
	}
	return fmt.Sprintf("Created workbook at %s", path), nil
}

// CreateSheet adds a new worksheet to an existing workbook.
func CreateSheet(path, sheet string) (string, error) {
	err := withWorkbook(path, xlerr.Workbook, func(f *excelize.File) error {
		if sheetExists(f, sheet) {
			return xlerr.New(xlerr.Sheet, "sheet '%s' already exists", sheet)
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return xlerr.Wrap(xlerr.Workbook, err, "failed to create sheet '%s'", sheet)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet '%s' created", sheet), nil
}

// GetWorkbookInfo reports sheet names and file metadata; with includeRanges it
// also reports each sheet's used range.
func GetWorkbookInfo(path string, includeRanges bool) (*WorkbookInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, xlerr.Wrap(xlerr.Workbook, err, "failed to stat workbook: %s", path)
	}

	info := &WorkbookInfo{
		Filename:  filepath.Base(path),
		SizeBytes: stat.Size(),
		Modified:  stat.ModTime().Format(time.RFC3339),
	}

	err = readWorkbook(path, xlerr.Workbook, func(f *excelize.File) error {
		info.Sheets = f.GetSheetList()
		if !includeRanges {
			return nil
		}
		info.UsedRanges = make(map[string]string, len(info.Sheets))
		for _, sheet := range info.Sheets {
			maxCol, maxRow, err := usedExtent(f, sheet)
			if err != nil {
				return err
			}
			if maxCol == 0 || maxRow == 0 {
				info.UsedRanges[sheet] = ""
				continue
			}
			info.UsedRanges[sheet] = "A1:" + cellName(maxCol, maxRow)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}
