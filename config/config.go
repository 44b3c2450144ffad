package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server. It is loaded once
// at bootstrap and passed by value; handler logic never reads the environment
// directly.
type Config struct {
	// ExcelFilesPath is the files root used to resolve relative workbook
	// paths in SSE and streamable HTTP modes. Stdio mode ignores it.
	ExcelFilesPath string `env:"EXCEL_FILES_PATH" envDefault:"./excel_files"`
	// Port is the HTTP listen port for SSE and streamable HTTP modes.
	Port int `env:"FASTMCP_PORT" envDefault:"8000"`
	// LogLevel sets the logger level (debug, info, warn, error).
	LogLevel string `env:"EXCEL_MCP_LOG_LEVEL" envDefault:"info"`
	// LogFile overrides the log file location. Empty means excel-mcp.log
	// next to the executable.
	LogFile string `env:"EXCEL_MCP_LOG_FILE"`
	// MaxConcurrentRequests bounds in-flight tool calls.
	MaxConcurrentRequests int `env:"EXCEL_MCP_MAX_CONCURRENT" envDefault:"10"`
	// OperationTimeout bounds a single tool call.
	OperationTimeout time.Duration `env:"EXCEL_MCP_OPERATION_TIMEOUT" envDefault:"30s"`
	// ShutdownTimeout controls graceful HTTP shutdown duration.
	ShutdownTimeout time.Duration `env:"EXCEL_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
