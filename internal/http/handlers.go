package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GriffinCanCode/ScreenSense/internal/logging"
	"github.com/GriffinCanCode/ScreenSense/internal/pipeline"
	"github.com/GriffinCanCode/ScreenSense/internal/session"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	pipeline *pipeline.Service
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(svc *pipeline.Service, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		pipeline: svc,
		log:      logger.Named("http"),
	}
}

// Register attaches all routes to the router
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/status", h.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/screenshots/process", h.ProcessScreenshot)
	router.POST("/sessions/:id/context", h.GenerateContext)
	router.DELETE("/sessions/:id", h.CleanupSession)
	router.DELETE("/sessions", h.CleanupAll)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "ScreenSense",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := h.pipeline.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"ocr_ready":     status.OCRReady,
		"resolver_mode": status.ResolverMode,
	})
}

// Status reports pipeline readiness and session counters
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.pipeline.Status())
}

type processRequest struct {
	ImagePath         string `json:"image_path" binding:"required"`
	SessionID         string `json:"session_id"`
	VisualDescription string `json:"visual_description"`
}

// ProcessScreenshot runs one full screenshot pass
func (h *Handlers) ProcessScreenshot(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.pipeline.ProcessScreenshot(c.Request.Context(), pipeline.ProcessRequest{
		ImagePath:         req.ImagePath,
		SessionID:         req.SessionID,
		VisualDescription: req.VisualDescription,
	})

	// degraded passes are still 200; the result carries its own status
	c.JSON(http.StatusOK, result)
}

// GenerateContext re-renders an existing session's context file
func (h *Handlers) GenerateContext(c *gin.Context) {
	sessionID := c.Param("id")

	path, err := h.pipeline.GenerateSessionContext(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"session_id":   sessionID,
		"context_file": path,
	})
}

// CleanupSession removes one session, optionally deleting its artifacts
func (h *Handlers) CleanupSession(c *gin.Context) {
	sessionID := c.Param("id")
	removeFiles := c.Query("remove_files") == "true"

	if err := h.pipeline.CleanupSession(sessionID, removeFiles); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_id":    sessionID,
		"files_removed": removeFiles,
	})
}

// CleanupAll removes every session
func (h *Handlers) CleanupAll(c *gin.Context) {
	removeFiles := c.Query("remove_files") == "true"
	count := h.pipeline.CleanupAll(removeFiles)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"removed":       count,
		"files_removed": removeFiles,
	})
}
