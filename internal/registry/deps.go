package registry

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/sheetbridge/excel-mcp-server/internal/paths"
	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

// Deps carries the shared collaborators every tool handler needs.
type Deps struct {
	Resolver *paths.Resolver
	Logger   zerolog.Logger
}

// toolError flattens an engine error into a tool-level result. Tagged
// errors surface their message directly; anything else is logged and
// wrapped with the operation name so the log line can be found.
func (d *Deps) toolError(op string, err error) *mcp.CallToolResult {
	if _, ok := xlerr.KindOf(err); ok {
		return mcp.NewToolResultError("Error: " + xlerr.MessageOf(err))
	}
	d.Logger.Error().Err(err).Str("op", op).Msg("unexpected tool failure")
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", op, err))
}

// RegisterAll wires every tool definition and handler onto the server and
// records the definitions in the registry for discovery.
func RegisterAll(s *server.MCPServer, reg *Registry, deps *Deps) {
	registerWorkbookTools(s, reg, deps)
	registerDataTools(s, reg, deps)
	registerFormatTools(s, reg, deps)
	registerSheetTools(s, reg, deps)
	registerVizTools(s, reg, deps)
}
