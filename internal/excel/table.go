package excel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

const defaultTableStyle = "TableStyleMedium9"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CreateTable registers a native Excel table over a data range. When name
// is empty a unique one is generated.
func CreateTable(path, sheet, dataRange, name, style string) (string, error) {
	c1, r1, c2, r2, err := parseRange(dataRange)
	if err != nil {
		return "", err
	}
	if name == "" {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		name = "Table_" + id[:8]
	}
	if !tableNameRe.MatchString(name) {
		return "", xlerr.New(xlerr.Data, "invalid table name '%s': must start with a letter or underscore and contain only letters, digits, and underscores", name)
	}
	if style == "" {
		style = defaultTableStyle
	}

	err = withWorkbook(path, xlerr.Data, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		table := &excelize.Table{
			Range:     fmt.Sprintf("%s:%s", cellName(c1, r1), cellName(c2, r2)),
			Name:      name,
			StyleName: style,
		}
		if err := f.AddTable(sheet, table); err != nil {
			return xlerr.Wrap(xlerr.Data, err, "failed to create table '%s'", name)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created table '%s' over %s in sheet '%s'", name, dataRange, sheet), nil
}
