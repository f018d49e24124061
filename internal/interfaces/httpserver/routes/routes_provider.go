package routes

import (
	"github.com/google/wire"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/routes/mcp"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	mcp.NewSearchMCP,
	mcp.NewMCPRoute,
)
