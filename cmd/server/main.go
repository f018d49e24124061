package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/logger"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/routes/mcp"
)

// Application bundles the transports; exactly one is live per process.
type Application struct {
	httpServer *httpserver.HTTPServer
	mcpRoute   *mcp.MCPRoute
	config     *config.Config
}

func init() {
	// Initialize logger with default settings until the config is loaded
	logger.Init("info", "json")
}

// Start serves the configured transport until ctx is cancelled.
func (app *Application) Start(ctx context.Context) error {
	switch config.Transport(app.config.Transport) {
	case config.TransportStdio:
		log.Info().Msg("stdio transport ready")
		return app.mcpRoute.RunStdio(ctx)
	default:
		return app.httpServer.Run(ctx)
	}
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: server <config.json>")
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("name", cfg.Name).
		Str("version", cfg.Version).
		Str("transport", cfg.Transport).
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("api_key_configured", cfg.APIKeys.Jina != "").
		Msg("starting MCP search server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := CreateApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create application")
	}

	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}
