package excel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seedPivotData(t *testing.T) string {
	t.Helper()
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{
		{"region", "product", "amount"},
		{"north", "widget", 10},
		{"north", "gadget", 20},
		{"south", "widget", 15},
	}, "A1")
	require.NoError(t, err)
	return path
}

func TestCreatePivotTable(t *testing.T) {
	path := seedPivotData(t)

	msg, err := CreatePivotTable(path, "Sheet1", "A1:C4",
		[]string{"region"}, []string{"amount"}, []string{"product"}, "sum")
	require.NoError(t, err)
	require.Contains(t, msg, "Sheet1_pivot")

	info, err := GetWorkbookInfo(path, false)
	require.NoError(t, err)
	require.Contains(t, info.Sheets, "Sheet1_pivot")
}

func TestCreatePivotTableReplacesExisting(t *testing.T) {
	path := seedPivotData(t)

	_, err := CreatePivotTable(path, "Sheet1", "A1:C4",
		[]string{"region"}, []string{"amount"}, nil, "mean")
	require.NoError(t, err)
	_, err = CreatePivotTable(path, "Sheet1", "A1:C4",
		[]string{"product"}, []string{"amount"}, nil, "count")
	require.NoError(t, err)
}

func TestCreatePivotTableUnknownField(t *testing.T) {
	path := seedPivotData(t)
	_, err := CreatePivotTable(path, "Sheet1", "A1:C4",
		[]string{"country"}, []string{"amount"}, nil, "sum")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found in data range header")
}

func TestCreatePivotTableUnknownAggregation(t *testing.T) {
	path := seedPivotData(t)
	_, err := CreatePivotTable(path, "Sheet1", "A1:C4",
		[]string{"region"}, []string{"amount"}, nil, "median")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown aggregation")
}

func TestCreatePivotTableRequiresFields(t *testing.T) {
	path := seedPivotData(t)
	_, err := CreatePivotTable(path, "Sheet1", "A1:C4", nil, []string{"amount"}, nil, "sum")
	require.Error(t, err)
	_, err = CreatePivotTable(path, "Sheet1", "A1:C4", []string{"region"}, nil, nil, "sum")
	require.Error(t, err)
}
