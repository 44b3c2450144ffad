package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolve_AbsoluteExistingReturnedUnchanged(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "book.xlsx")
	writeFile(t, fp)

	// Regardless of whether a files root is configured.
	for _, root := range []string{"", dir, t.TempDir()} {
		got, err := NewResolver(root).Resolve(fp)
		require.NoError(t, err)
		require.Equal(t, fp, got)
	}
}

func TestResolve_AbsoluteMissing(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := NewResolver("").Resolve(fp)
	require.Error(t, err)
	require.True(t, xlerr.Is(err, xlerr.FileNotFound))
}

func TestResolve_RelativeWithoutRoot(t *testing.T) {
	_, err := NewResolver("").Resolve("book.xlsx")
	require.Error(t, err)
	require.True(t, xlerr.Is(err, xlerr.InvalidPath))
	require.Contains(t, err.Error(), "must be an absolute path when not in SSE mode")
}

func TestResolve_RelativeWithRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "reports", "q1.xlsx"))

	r := NewResolver(root)

	got, err := r.Resolve(filepath.Join("reports", "q1.xlsx"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "reports", "q1.xlsx"), got)

	_, err = r.Resolve("absent.xlsx")
	require.True(t, xlerr.Is(err, xlerr.FileNotFound))
}

func TestResolve_EmptyFilename(t *testing.T) {
	_, err := NewResolver(t.TempDir()).Resolve("")
	require.True(t, xlerr.Is(err, xlerr.InvalidPath))
}

func TestResolveForCreate_MakesParentDirs(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)

	got, err := r.ResolveForCreate(filepath.Join("reports", "q1.xlsx"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "reports", "q1.xlsx"), got)

	info, err := os.Stat(filepath.Join(root, "reports"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestResolveForCreate_AbsoluteWithoutRoot(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "sub", "new.xlsx")
	got, err := NewResolver("").ResolveForCreate(fp)
	require.NoError(t, err)
	require.Equal(t, fp, got)

	_, err = os.Stat(filepath.Dir(fp))
	require.NoError(t, err)
}

func TestResolveForCreate_RelativeWithoutRoot(t *testing.T) {
	_, err := NewResolver("").ResolveForCreate("new.xlsx")
	require.True(t, xlerr.Is(err, xlerr.InvalidPath))
}
