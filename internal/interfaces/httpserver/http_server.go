package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	opsagentdocs "opsagent/docs/swagger"
	"opsagent/internal/config"
	middleware "opsagent/internal/interfaces/httpserver/middlewares"
	v1 "opsagent/internal/interfaces/httpserver/routes/v1"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	auth    *middleware.APIKeyAuth
	quota   *middleware.QuotaLimiter
	config  *config.Config
	logger  zerolog.Logger
}

func NewHTTPServer(
	v1Route *v1.V1Route,
	auth *middleware.APIKeyAuth,
	quota *middleware.QuotaLimiter,
	cfg *config.Config,
	logger zerolog.Logger,
) *HTTPServer {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	opsagentdocs.SwaggerInfo.BasePath = "/"

	server := HTTPServer{
		gin.New(),
		v1Route,
		auth,
		quota,
		cfg,
		logger,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.OTELServiceName))
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes (API key + quota middleware applied)
	protected := server.engine.Group("/")
	protected.Use(
		server.auth.Middleware(),
		server.quota.Middleware(),
	)
	server.v1Route.RegisterRouter(protected)

	return &server
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (httpServer *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    httpServer.config.Addr(),
		Handler: httpServer.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		httpServer.logger.Info().Str("addr", httpServer.config.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpServer.logger.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		httpServer.logger.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
