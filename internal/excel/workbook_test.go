package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	msg, err := CreateWorkbook(path)
	require.NoError(t, err)
	require.Contains(t, msg, "Created workbook at")
	return path
}

func TestCreateWorkbookAndMetadata(t *testing.T) {
	path := newTestWorkbook(t)

	info, err := GetWorkbookInfo(path, false)
	require.NoError(t, err)
	require.Equal(t, "book.xlsx", info.Filename)
	require.Equal(t, []string{"Sheet1"}, info.Sheets)
	require.Positive(t, info.SizeBytes)
	require.NotEmpty(t, info.Modified)
	require.Nil(t, info.UsedRanges)
}

func TestCreateSheet(t *testing.T) {
	path := newTestWorkbook(t)

	msg, err := CreateSheet(path, "Data")
	require.NoError(t, err)
	require.Contains(t, msg, "Data")

	_, err = CreateSheet(path, "Data")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	info, err := GetWorkbookInfo(path, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Sheet1", "Data"}, info.Sheets)
}

func TestGetWorkbookInfoUsedRanges(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"a", "b"}, {"c", "d"}}, "B2")
	require.NoError(t, err)

	info, err := GetWorkbookInfo(path, true)
	require.NoError(t, err)
	require.Equal(t, "A1:C3", info.UsedRanges["Sheet1"])
}
