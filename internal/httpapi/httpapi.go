// Package httpapi serves the auxiliary HTTP surface that rides alongside
// the network transports: health, file upload, listing, and deletion for
// per-user workbook directories under the files root.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sheetbridge/excel-mcp-server/internal/paths"
	"github.com/sheetbridge/excel-mcp-server/pkg/version"
)

const serviceName = "excel-mcp-server"

var allowedUploadExts = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".xlsm": true,
}

// API bundles the handlers for the auxiliary file endpoints.
type API struct {
	resolver *paths.Resolver
	logger   zerolog.Logger
}

// New constructs the API around the shared path resolver.
func New(resolver *paths.Resolver, logger zerolog.Logger) *API {
	return &API{resolver: resolver, logger: logger}
}

// Router assembles the chi router. When mcpHandler is non-nil it is
// mounted at mcpPath so one listener serves both surfaces.
func (a *API) Router(mcpHandler http.Handler, mcpPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", a.handleRoot)
	r.Get("/health", a.handleHealth)
	r.Post("/upload/{userID}", a.handleUpload)
	r.Get("/files/{userID}", a.handleListFiles)
	r.Delete("/files/{userID}/{filename}", a.handleDeleteFile)

	if mcpHandler != nil {
		r.Mount(mcpPath, mcpHandler)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":      serviceName,
		"version":      version.Version(),
		"health":       "/health",
		"mcp_endpoint": "/mcp",
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":           "healthy",
		"service":          serviceName,
		"version":          version.Version(),
		"mcp_endpoint":     "/mcp",
		"excel_files_path": a.resolver.FilesRoot(),
	})
}

func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	// Base strips any path components a client smuggles into the name.
	filename := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		writeError(w, http.StatusBadRequest, "unsupported file type: only .xlsx, .xls, and .xlsm are accepted")
		return
	}

	userDir := filepath.Join(a.resolver.FilesRoot(), userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		a.logger.Error().Err(err).Str("dir", userDir).Msg("upload dir create failed")
		writeError(w, http.StatusInternalServerError, "could not create user directory")
		return
	}

	fullPath := filepath.Join(userDir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		a.logger.Error().Err(err).Str("path", fullPath).Msg("upload create failed")
		writeError(w, http.StatusInternalServerError, "could not store file")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		a.logger.Error().Err(err).Str("path", fullPath).Msg("upload write failed")
		writeError(w, http.StatusInternalServerError, "could not store file")
		return
	}

	a.logger.Info().Str("user_id", userID).Str("filename", filename).Int64("size_bytes", size).Msg("file uploaded")
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "File uploaded successfully",
		"filename":   filename,
		"user_id":    userID,
		"file_path":  filepath.Join(userID, filename),
		"full_path":  fullPath,
		"size_bytes": size,
	})
}

type fileEntry struct {
	Filename     string `json:"filename"`
	RelativePath string `json:"relative_path"`
	SizeBytes    int64  `json:"size_bytes"`
	Modified     string `json:"modified"`
}

func (a *API) handleListFiles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	userDir := filepath.Join(a.resolver.FilesRoot(), userID)

	files := []fileEntry{}
	entries, err := os.ReadDir(userDir)
	if err != nil && !os.IsNotExist(err) {
		a.logger.Error().Err(err).Str("dir", userDir).Msg("list files failed")
		writeError(w, http.StatusInternalServerError, "could not list files")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileEntry{
			Filename:     entry.Name(),
			RelativePath: filepath.Join(userID, entry.Name()),
			SizeBytes:    info.Size(),
			Modified:     info.ModTime().UTC().Format(time.RFC3339),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"files":   files,
		"count":   len(files),
	})
}

func (a *API) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	filename := filepath.Base(chi.URLParam(r, "filename"))

	fullPath := filepath.Join(a.resolver.FilesRoot(), userID, filename)
	if _, err := os.Stat(fullPath); err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	if err := os.Remove(fullPath); err != nil {
		a.logger.Error().Err(err).Str("path", fullPath).Msg("delete failed")
		writeError(w, http.StatusInternalServerError, "could not delete file")
		return
	}

	a.logger.Info().Str("user_id", userID).Str("filename", filename).Msg("file deleted")
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "File deleted successfully",
		"filename": filename,
		"user_id":  userID,
	})
}
