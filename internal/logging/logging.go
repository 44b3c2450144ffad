// Package logging configures the process-wide zerolog logger. All diagnostic
// output goes to a single append-mode log file: stdout carries MCP framing in
// stdio mode and must stay clean, so nothing is ever written there.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const defaultLogName = "excel-mcp.log"

// Open builds a file-backed logger at the given level. When path is empty the
// log file is placed next to the executable; relative paths would otherwise
// depend on the client's working directory and can fail under stdio clients.
// The returned closer must be called on shutdown.
func Open(path, level string) (zerolog.Logger, func(), error) {
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			exe = "."
		}
		path = filepath.Join(filepath.Dir(exe), defaultLogName)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// No log file means no logging at all rather than corrupting stdout.
		nop := zerolog.Nop()
		return nop, func() {}, err
	}

	logger := zerolog.New(f).Level(parseLevel(level)).With().
		Timestamp().
		Str("service", "excel-mcp-server").
		Logger()

	return logger, func() { _ = f.Close() }, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
