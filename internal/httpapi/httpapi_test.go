package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sheetbridge/excel-mcp-server/internal/paths"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	api := New(paths.NewResolver(root), zerolog.Nop())
	return api.Router(nil, "/mcp"), root
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router, root := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "excel-mcp-server", body["service"])
	require.Equal(t, "/mcp", body["mcp_endpoint"])
	require.Equal(t, root, body["excel_files_path"])
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/upload/u1", "notes.txt", []byte("hi")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeJSON(t, rec)["detail"], "unsupported file type")
}

func TestUploadListDeleteCycle(t *testing.T) {
	router, root := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/upload/u1", "report.xlsx", []byte("fake workbook bytes")))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	require.Equal(t, "File uploaded successfully", body["message"])
	require.Equal(t, "report.xlsx", body["filename"])
	require.Equal(t, "u1", body["user_id"])
	require.EqualValues(t, 19, body["size_bytes"])
	require.FileExists(t, filepath.Join(root, "u1", "report.xlsx"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/u1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeJSON(t, rec)
	require.EqualValues(t, 1, listing["count"])
	files := listing["files"].([]any)
	first := files[0].(map[string]any)
	require.Equal(t, "report.xlsx", first["filename"])
	require.Equal(t, filepath.Join("u1", "report.xlsx"), first["relative_path"])
	require.NotEmpty(t, first["modified"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/files/u1/report.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "File deleted successfully", decodeJSON(t, rec)["message"])

	_, err := os.Stat(filepath.Join(root, "u1", "report.xlsx"))
	require.True(t, os.IsNotExist(err))
}

func TestListFilesEmptyForUnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/nobody", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	require.EqualValues(t, 0, body["count"])
}

func TestDeleteMissingFileReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/files/u1/ghost.xlsx", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "File not found", decodeJSON(t, rec)["detail"])
}

func TestUploadStripsPathComponents(t *testing.T) {
	router, root := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/upload/u1", "../../escape.xlsx", []byte("x")))
	require.Equal(t, http.StatusOK, rec.Code)
	require.FileExists(t, filepath.Join(root, "u1", "escape.xlsx"))
}
