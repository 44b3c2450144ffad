package excel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyAndRenameSheet(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"hdr"}, {"val"}}, "A1")
	require.NoError(t, err)

	msg, err := CopySheet(path, "Sheet1", "Copy")
	require.NoError(t, err)
	require.Contains(t, msg, "copied")

	data, err := ReadRange(path, "Copy", "A1", "A2")
	require.NoError(t, err)
	require.Len(t, data.Cells, 2)

	_, err = CopySheet(path, "Missing", "Other")
	require.Error(t, err)

	_, err = RenameSheet(path, "Copy", "Renamed")
	require.NoError(t, err)
	info, err := GetWorkbookInfo(path, false)
	require.NoError(t, err)
	require.Contains(t, info.Sheets, "Renamed")
	require.NotContains(t, info.Sheets, "Copy")
}

func TestDeleteSheetGuardsLast(t *testing.T) {
	path := newTestWorkbook(t)

	_, err := DeleteSheet(path, "Sheet1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "only sheet")

	_, err = CreateSheet(path, "Extra")
	require.NoError(t, err)
	msg, err := DeleteSheet(path, "Extra")
	require.NoError(t, err)
	require.Contains(t, msg, "deleted")
}

func TestMergeUnmergeCycle(t *testing.T) {
	path := newTestWorkbook(t)

	_, err := MergeRange(path, "Sheet1", "A1", "B2")
	require.NoError(t, err)

	merged, err := GetMergedRanges(path, "Sheet1")
	require.NoError(t, err)
	require.Equal(t, []string{"A1:B2"}, merged)

	_, err = UnmergeRange(path, "Sheet1", "A1", "C3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not merged")

	_, err = UnmergeRange(path, "Sheet1", "A1", "B2")
	require.NoError(t, err)
	merged, err = GetMergedRanges(path, "Sheet1")
	require.NoError(t, err)
	require.Empty(t, merged)
}

func TestCopyRangeAcrossSheets(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"a", "b"}, {"c", "d"}}, "A1")
	require.NoError(t, err)
	_, err = CreateSheet(path, "Dst")
	require.NoError(t, err)

	_, err = CopyRange(path, "Sheet1", "A1", "B2", "C5", "Dst")
	require.NoError(t, err)

	data, err := ReadRange(path, "Dst", "C5", "D6")
	require.NoError(t, err)
	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "a", byAddr["C5"])
	require.Equal(t, "d", byAddr["D6"])
}

func TestDeleteRangeShiftUp(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"one"}, {"two"}, {"three"}}, "A1")
	require.NoError(t, err)

	_, err = DeleteRange(path, "Sheet1", "A1", "A1", "up")
	require.NoError(t, err)

	data, err := ReadRange(path, "Sheet1", "A1", "A3")
	require.NoError(t, err)
	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "two", byAddr["A1"])
	require.Equal(t, "three", byAddr["A2"])
	require.NotContains(t, byAddr, "A3")
}

func TestDeleteRangeBadDirection(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := DeleteRange(path, "Sheet1", "A1", "A1", "sideways")
	require.Error(t, err)
	require.Contains(t, err.Error(), "shift_direction")
}

func TestInsertAndDeleteRows(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"first"}, {"second"}}, "A1")
	require.NoError(t, err)

	_, err = InsertRows(path, "Sheet1", 2, 1)
	require.NoError(t, err)
	data, err := ReadRange(path, "Sheet1", "A1", "A3")
	require.NoError(t, err)
	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "first", byAddr["A1"])
	require.NotContains(t, byAddr, "A2")
	require.Equal(t, "second", byAddr["A3"])

	_, err = DeleteRows(path, "Sheet1", 2, 1)
	require.NoError(t, err)
	data, err = ReadRange(path, "Sheet1", "A1", "A2")
	require.NoError(t, err)
	byAddr = map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "second", byAddr["A2"])
}

func TestInsertAndDeleteColumns(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"left", "right"}}, "A1")
	require.NoError(t, err)

	_, err = InsertColumns(path, "Sheet1", 2, 2)
	require.NoError(t, err)
	data, err := ReadRange(path, "Sheet1", "A1", "D1")
	require.NoError(t, err)
	byAddr := map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "left", byAddr["A1"])
	require.Equal(t, "right", byAddr["D1"])

	_, err = DeleteColumns(path, "Sheet1", 2, 2)
	require.NoError(t, err)
	data, err = ReadRange(path, "Sheet1", "A1", "B1")
	require.NoError(t, err)
	byAddr = map[string]any{}
	for _, c := range data.Cells {
		byAddr[c.Address] = c.Value
	}
	require.Equal(t, "right", byAddr["B1"])
}

func TestInsertRowsValidatesArgs(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := InsertRows(path, "Sheet1", 0, 1)
	require.Error(t, err)
	_, err = InsertColumns(path, "Sheet1", 1, 0)
	require.Error(t, err)
}
