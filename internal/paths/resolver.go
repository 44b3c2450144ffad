// Package paths resolves workbook filenames to validated filesystem paths.
// The resolver carries the files root explicitly; transport bootstrap builds
// one resolver per process and hands it to the dispatch layer, so handler
// logic never consults ambient process state.
package paths

import (
	"os"
	"path/filepath"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// Resolver maps requested filenames to absolute paths. With an empty files
// root (stdio mode) only absolute paths are accepted; with a files root set
// (SSE / streamable HTTP modes) relative paths resolve beneath it.
//
// An existing absolute path is returned unchanged without a containment check
// against the files root. In multi-user HTTP deployments that is a known
// containment gap; front the server with per-user roots when it matters.
type Resolver struct {
	filesRoot string
}

// NewResolver constructs a resolver. Pass an empty filesRoot for stdio mode.
func NewResolver(filesRoot string) *Resolver {
	return &Resolver{filesRoot: filesRoot}
}

// FilesRoot returns the configured files root ("" in stdio mode).
func (r *Resolver) FilesRoot() string { return r.filesRoot }

// Resolve validates filename and returns the absolute path of an existing
// workbook file.
func (r *Resolver) Resolve(filename string) (string, error) {
	if filename == "" {
		return "", xlerr.New(xlerr.InvalidPath, "empty filename")
	}

	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", xlerr.New(xlerr.FileNotFound, "file not found: %s", filename)
		}
		return filename, nil
	}

	if r.filesRoot == "" {
		return "", xlerr.New(xlerr.InvalidPath,
			"invalid filename: %s, must be an absolute path when not in SSE mode", filename)
	}

	full := filepath.Join(r.filesRoot, filename)
	if _, err := os.Stat(full); err != nil {
		return "", xlerr.New(xlerr.FileNotFound, "file not found: %s", full)
	}
	return full, nil
}

// ResolveForCreate resolves filename for a create-workbook operation. The
// file need not exist; intermediate directories are created as needed.
func (r *Resolver) ResolveForCreate(filename string) (string, error) {
	if filename == "" {
		return "", xlerr.New(xlerr.InvalidPath, "empty filename")
	}

	var full string
	if filepath.IsAbs(filename) {
		full = filename
	} else {
		if r.filesRoot == "" {
			return "", xlerr.New(xlerr.InvalidPath,
				"invalid filename: %s, must be an absolute path when not in SSE mode", filename)
		}
		full = filepath.Join(r.filesRoot, filename)
	}

	if dir := filepath.Dir(full); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", xlerr.Wrap(xlerr.InvalidPath, err, "cannot create directory for %s", full)
		}
	}
	return full, nil
}
