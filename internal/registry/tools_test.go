package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sheetbridge/excel-mcp-server/internal/paths"
)

func newTestServer(t *testing.T, filesRoot string) *server.MCPServer {
	t.Helper()
	srv := server.NewMCPServer("excel-mcp-test", "0.0.0")
	deps := &Deps{
		Resolver: paths.NewResolver(filesRoot),
		Logger:   zerolog.Nop(),
	}
	RegisterAll(srv, New(), deps)
	return srv
}

func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":%q,"arguments":%s}}`, name, argsJSON)

	raw := srv.HandleMessage(context.Background(), json.RawMessage(msg))
	require.NotNil(t, raw)

	resp, ok := raw.(mcp.JSONRPCResponse)
	require.True(t, ok, "expected JSONRPCResponse, got %T", raw)
	res, ok := resp.Result.(mcp.CallToolResult)
	require.True(t, ok, "expected CallToolResult, got %T", resp.Result)
	return res
}

func resultText(t *testing.T, res mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestCreateWorkbookRelativePath(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	res := callTool(t, srv, "create_workbook", map[string]any{"filepath": "books/new.xlsx"})
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "Created workbook at")
	require.FileExists(t, filepath.Join(root, "books", "new.xlsx"))
}

func TestCreateWorkbookRelativePathWithoutRoot(t *testing.T) {
	srv := newTestServer(t, "")

	res := callTool(t, srv, "create_workbook", map[string]any{"filepath": "orphan.xlsx"})
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "must be an absolute path when not in SSE mode")
}

func TestWriteThenReadDispatch(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	res := callTool(t, srv, "create_workbook", map[string]any{"filepath": "book.xlsx"})
	require.False(t, res.IsError)

	res = callTool(t, srv, "write_data_to_excel", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
		"data":       [][]any{{"name"}, {"ada"}},
	})
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "Data written")

	res = callTool(t, srv, "read_data_from_excel", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
	})
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), `"ada"`)
}

func TestReadEmptyRangeMessage(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	callTool(t, srv, "create_workbook", map[string]any{"filepath": "book.xlsx"})
	res := callTool(t, srv, "read_data_from_excel", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
		"start_cell": "A1",
		"end_cell":   "C3",
	})
	require.False(t, res.IsError)
	require.Equal(t, "No data found in specified range", resultText(t, res))
}

func TestMissingWorkbookFlattenedError(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	res := callTool(t, srv, "get_workbook_metadata", map[string]any{"filepath": "ghost.xlsx"})
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "Error: ")
	require.Contains(t, resultText(t, res), "ghost.xlsx")
}

func TestRejectsNonExcelExtension(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	res := callTool(t, srv, "create_workbook", map[string]any{"filepath": "notes.txt"})
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "Error: ")
}

func TestApplyFormulaDispatch(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	callTool(t, srv, "create_workbook", map[string]any{"filepath": "book.xlsx"})
	res := callTool(t, srv, "apply_formula", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
		"cell":       "A1",
		"formula":    "=SUM(B1:B3)",
	})
	require.False(t, res.IsError)
	require.Equal(t, "Applied formula '=SUM(B1:B3)' to cell A1", resultText(t, res))

	res = callTool(t, srv, "apply_formula", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
		"cell":       "A1",
		"formula":    "SUM(B1:B3)",
	})
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "must start with '='")
}

func TestValidationRulesEmptyMessage(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	callTool(t, srv, "create_workbook", map[string]any{"filepath": "book.xlsx"})
	res := callTool(t, srv, "get_data_validation_info", map[string]any{
		"filepath":   "book.xlsx",
		"sheet_name": "Sheet1",
	})
	require.False(t, res.IsError)
	require.Equal(t, "No data validation rules found in this worksheet", resultText(t, res))
}

func TestAbsolutePathBypassesRoot(t *testing.T) {
	root := t.TempDir()
	srv := newTestServer(t, root)

	outside := filepath.Join(t.TempDir(), "outside.xlsx")
	res := callTool(t, srv, "create_workbook", map[string]any{"filepath": outside})
	require.False(t, res.IsError)
	_, err := os.Stat(outside)
	require.NoError(t, err)
}
