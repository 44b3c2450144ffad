package excel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateTableGeneratedName(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{
		{"id", "name"},
		{1, "a"},
		{2, "b"},
	}, "A1")
	require.NoError(t, err)

	msg, err := CreateTable(path, "Sheet1", "A1:B3", "", "")
	require.NoError(t, err)
	require.Contains(t, msg, "Table_")
}

func TestCreateTableExplicitName(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := WriteData(path, "Sheet1", [][]any{{"id"}, {1}}, "A1")
	require.NoError(t, err)

	msg, err := CreateTable(path, "Sheet1", "A1:A2", "Orders", "TableStyleLight1")
	require.NoError(t, err)
	require.Contains(t, msg, "'Orders'")
}

func TestCreateTableInvalidName(t *testing.T) {
	path := newTestWorkbook(t)
	_, err := CreateTable(path, "Sheet1", "A1:B2", "1bad name", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid table name")
}

func TestValidationInfoEmpty(t *testing.T) {
	path := newTestWorkbook(t)
	out, err := GetDataValidationInfo(path, "Sheet1")
	require.NoError(t, err)
	require.Equal(t, "Sheet1", out.Sheet)
	require.Empty(t, out.Rules)
}
