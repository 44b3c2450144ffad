package config

import "time"

// Default guardrails for the Excel MCP server. Conservative values; all of
// them can be overridden through the environment (see Config).
const (
	// Concurrency
	DefaultMaxConcurrentRequests = 10

	// Transport
	DefaultPort           = 8000
	DefaultExcelFilesPath = "./excel_files"
)

const (
	// Timeouts
	DefaultOperationTimeout      = 30 * time.Second
	DefaultAcquireRequestTimeout = 2 * time.Second
	DefaultShutdownTimeout       = 10 * time.Second
)
