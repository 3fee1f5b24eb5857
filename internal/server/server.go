package server

import (
	"context"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ScreenSense/internal/config"
	"github.com/GriffinCanCode/ScreenSense/internal/contextfile"
	"github.com/GriffinCanCode/ScreenSense/internal/google"
	"github.com/GriffinCanCode/ScreenSense/internal/http"
	"github.com/GriffinCanCode/ScreenSense/internal/logging"
	"github.com/GriffinCanCode/ScreenSense/internal/monitoring"
	"github.com/GriffinCanCode/ScreenSense/internal/ocr"
	"github.com/GriffinCanCode/ScreenSense/internal/pipeline"
	"github.com/GriffinCanCode/ScreenSense/internal/resolve"
	"github.com/GriffinCanCode/ScreenSense/internal/session"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	httpSrv  *stdhttp.Server
	pipeline *pipeline.Service
	log      *logging.Logger
}

// New creates a server instance from configuration
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}
	log := logger.Named("server")

	// Google clients are optional; absent credentials mean scrape-only mode
	services, err := google.Load(context.Background(), cfg.Google.CredentialsFile, cfg.Google.CredentialsJSON)
	if err != nil {
		log.Warn("google credentials unusable, running scrape-only", zap.Error(err))
		services = nil
	}
	if services != nil {
		log.Info("google api clients ready")
	} else {
		log.Info("no google credentials, scrape-only mode")
	}

	metrics := monitoring.NewMetrics()

	resolver := resolve.New(resolve.Options{
		Timeout:        time.Duration(cfg.Resolver.TimeoutSeconds) * time.Second,
		MaxConcurrent:  cfg.Resolver.MaxConcurrent,
		RequestsPerSec: cfg.Resolver.RequestsPerSec,
		UserAgent:      cfg.Resolver.UserAgent,
		Google:         services,
		Logger:         logger,
		Observer: func(kind string, success bool, duration time.Duration) {
			metrics.RecordResolution(kind, success, duration)
		},
	})

	svc := pipeline.New(pipeline.Options{
		Engine:    ocr.New(cfg.OCR.Language),
		Resolver:  resolver,
		Store:     session.NewStore(),
		Assembler: contextfile.New(cfg.ContextsDir()),
		Metrics:   metrics,
		Logger:    logger,
	})
	if err := svc.Initialize(); err != nil {
		log.Warn("starting without ocr", zap.Error(err))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	http.NewHandlers(svc, logger).Register(router)

	return &Server{
		cfg:      cfg,
		router:   router,
		pipeline: svc,
		log:      log,
	}, nil
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &stdhttp.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("listening", zap.String("addr", addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Close cleans up resources
func (s *Server) Close() error {
	if err := s.pipeline.Close(); err != nil {
		s.log.Warn("pipeline close", zap.Error(err))
	}
	return s.log.Sync()
}
