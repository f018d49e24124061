package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/middlewares"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/routes/mcp"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer wraps the gin engine with graceful shutdown helpers.
type HTTPServer struct {
	router   *gin.Engine
	config   *config.Config
	mcpRoute *mcp.MCPRoute
}

// NewHTTPServer constructs the HTTP transport with default middleware and
// routes.
func NewHTTPServer(
	cfg *config.Config,
	mcpRoute *mcp.MCPRoute,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	return &HTTPServer{
		router:   router,
		config:   cfg,
		mcpRoute: mcpRoute,
	}
}

func (s *HTTPServer) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": s.config.Name})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready", "service": s.config.Name})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.mcpRoute.RegisterRouter(s.router.Group(""))
}

// Run starts the HTTP listener and handles graceful shutdown via context
// cancellation. In-flight requests get shutdownTimeout to drain.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.setupRoutes()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP transport listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTransport,
				"HTTP transport failed", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("context cancelled, shutting down HTTP transport")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
