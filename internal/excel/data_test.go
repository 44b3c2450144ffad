package excel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

func TestWriteAndReadRoundTrip(t *testing.T) {
	path := newTestWorkbook(t)

	msg, err := WriteData(path, "Sheet1", [][]any{
		{"name", "city"},
		{"ada", "london"},
	}, "B2")
	require.NoError(t, err)
	require.Contains(t, msg, "2 rows x 2 columns")

	data, err := ReadRange(path, "Sheet1", "B2", "C3")
	require.NoError(t, err)
	require.Equal(t, "Sheet1", data.Sheet)
	require.Len(t, data.Cells, 4)

	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "name", byAddr["B2"])
	require.Equal(t, "city", byAddr["C2"])
	require.Equal(t, "ada", byAddr["B3"])
	require.Equal(t, "london", byAddr["C3"])
}

func TestReadRangeAutoExpand(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"x", "y"}, {"p", "q"}}, "A1")
	require.NoError(t, err)

	data, err := ReadRange(path, "Sheet1", "A1", "")
	require.NoError(t, err)
	require.Len(t, data.Cells, 4)
	require.Equal(t, "A1:B2", data.Range)
}

func TestReadRangeNumericTyping(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{42, true}}, "A1")
	require.NoError(t, err)

	data, err := ReadRange(path, "Sheet1", "A1", "B1")
	require.NoError(t, err)
	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, float64(42), byAddr["A1"])
	require.Equal(t, true, byAddr["B1"])
}

func TestReadRangeEmpty(t *testing.T) {
	path := newTestWorkbook(t)

	data, err := ReadRange(path, "Sheet1", "A1", "B2")
	require.NoError(t, err)
	require.Empty(t, data.Cells)
}

func TestWriteFormulaPrefix(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{1, 2, "=SUM(A1:B1)"}}, "A1")
	require.NoError(t, err)

	f, err := openWorkbook(path, xlerr.Data)
	require.NoError(t, err)
	defer f.Close()
	formula, err := f.GetCellFormula("Sheet1", "C1")
	require.NoError(t, err)
	require.Equal(t, "SUM(A1:B1)", formula)
}

func TestWriteDataMissingSheet(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Nope", [][]any{{"a"}}, "A1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
