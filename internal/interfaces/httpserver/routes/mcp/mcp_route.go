package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/responses"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

// MCPRoute owns the MCP server and serves it over the configured transport.
// The server and its tool set are built once at startup and reused for every
// request.
type MCPRoute struct {
	searchMCP   *SearchMCP
	mcpServer   *mcp.Server
	httpHandler http.Handler
}

// NewMCPRoute builds the MCP server, registers the tool set and prepares the
// stateless streamable HTTP handler.
func NewMCPRoute(cfg *config.Config, searchMCP *SearchMCP) *MCPRoute {
	impl := &mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}
	server := mcp.NewServer(impl, nil)

	searchMCP.RegisterTools(server)

	return &MCPRoute{
		searchMCP: searchMCP,
		mcpServer: server,
		httpHandler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}),
	}
}

// RegisterRouter mounts the MCP endpoint. Only POST carries protocol
// traffic; every other verb gets a fixed JSON-RPC "method not found" body.
func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead} {
		router.Handle(method, "/mcp", methodNotAllowed)
	}
}

// RunStdio serves the same tool set over stdin/stdout until ctx is
// cancelled or the peer disconnects.
func (route *MCPRoute) RunStdio(ctx context.Context) error {
	if err := route.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return platformerrors.NewError(platformerrors.LayerRoute, platformerrors.ErrorTypeTransport,
			"stdio transport failed", err)
	}
	return nil
}

func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for the streamable handler even if the
	// client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func methodNotAllowed(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusMethodNotAllowed, gin.H{
		"jsonrpc": "2.0",
		"error": gin.H{
			"code":    -32601,
			"message": "Method not allowed",
		},
		"id": nil,
	})
}

// MCPMethodGuard rejects JSON-RPC methods outside the supported set before
// they reach the protocol handler.
func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleError(reqCtx, err, "failed to read MCP request body")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method)
			return
		}

		reqCtx.Next()
	}
}
