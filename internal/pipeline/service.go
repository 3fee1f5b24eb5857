package pipeline

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ScreenSense/internal/contextfile"
	"github.com/GriffinCanCode/ScreenSense/internal/logging"
	"github.com/GriffinCanCode/ScreenSense/internal/monitoring"
	"github.com/GriffinCanCode/ScreenSense/internal/session"
	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
	"github.com/GriffinCanCode/ScreenSense/internal/urls"
)

// TextExtractor is the OCR engine surface the pipeline needs.
type TextExtractor interface {
	Initialize() error
	ExtractText(imagePath string) (string, error)
	Available() bool
	Close() error
}

// URLResolver turns discovered URLs into resolved records.
type URLResolver interface {
	ResolveAll(ctx context.Context, discovered []urls.Discovered) []types.ResolvedURL
	Mode() string
}

// Options wires the pipeline's collaborators.
type Options struct {
	Engine    TextExtractor
	Resolver  URLResolver
	Store     *session.Store
	Assembler *contextfile.Assembler
	Metrics   *monitoring.Metrics
	Logger    *logging.Logger
}

// Service sequences the screenshot stages and owns the call-in contract.
type Service struct {
	engine    TextExtractor
	resolver  URLResolver
	store     *session.Store
	assembler *contextfile.Assembler
	metrics   *monitoring.Metrics
	log       *logging.Logger

	mu          sync.Mutex
	startedAt   time.Time
	lastProcess *time.Time
}

// New creates the pipeline service.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	return &Service{
		engine:    opts.Engine,
		resolver:  opts.Resolver,
		store:     opts.Store,
		assembler: opts.Assembler,
		metrics:   opts.Metrics,
		log:       opts.Logger.Named("pipeline"),
		startedAt: time.Now(),
	}
}

// Initialize acquires the OCR engine. An init failure is reported but the
// service stays usable: passes degrade to empty OCR text.
func (s *Service) Initialize() error {
	if err := s.engine.Initialize(); err != nil {
		s.log.Warn("ocr engine unavailable, passes will degrade", zap.Error(err))
		return err
	}
	s.log.Info("ocr engine ready")
	return nil
}

// ProcessRequest is one incoming screenshot.
type ProcessRequest struct {
	ImagePath string
	SessionID string

	// Optional passthrough from the vision collaborator.
	VisualDescription string
}

// ProcessScreenshot runs the full pass and returns a uniform result. The
// call succeeds even when OCR or every URL resolution degrades; only a
// missing source image or an unwritable context directory fail it.
func (s *Service) ProcessScreenshot(ctx context.Context, req ProcessRequest) *types.Result {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	if _, err := os.Stat(req.ImagePath); err != nil {
		s.metrics.RecordScreenshot("error")
		return types.Fail(fmt.Sprintf("source image unreadable: %v", err))
	}

	now := time.Now()
	shot := &types.Screenshot{
		ID:                screenshotID(now),
		ImagePath:         req.ImagePath,
		CapturedAt:        now,
		VisualDescription: req.VisualDescription,
	}

	// Stage 1: OCR, serialized through the single engine slot
	ocrStart := time.Now()
	text, err := s.engine.ExtractText(req.ImagePath)
	s.metrics.RecordOCR(time.Since(ocrStart), err != nil)
	if err != nil {
		shot.OCRFailed = true
		s.log.Warn("ocr degraded to empty text",
			zap.String("image", req.ImagePath),
			zap.Error(err))
	} else {
		shot.OCRText = text
		if text == "" {
			s.log.Info("ocr extracted no text", zap.String("image", req.ImagePath))
		}
	}

	// Stage 2: discovery is a pure function over the text
	discovered := urls.Discover(shot.OCRText)

	// Stage 3: resolution, failures contained per URL
	if len(discovered) > 0 {
		shot.URLs = s.resolver.ResolveAll(ctx, discovered)
	} else {
		s.log.Info("0 urls found", zap.String("session", req.SessionID))
	}

	// Stage 4+5: append and render under the session lock
	var contextPath string
	err = s.store.Update(req.SessionID, func(sess *types.Session) error {
		sess.Screenshots = append(sess.Screenshots, shot)
		path, renderErr := s.assembler.Render(sess)
		if renderErr != nil {
			// keep the in-memory list consistent with the file
			sess.Screenshots = sess.Screenshots[:len(sess.Screenshots)-1]
			return renderErr
		}
		sess.CurrentContextFile = path
		if !slices.Contains(sess.ContextFiles, path) {
			sess.ContextFiles = append(sess.ContextFiles, path)
		}
		contextPath = path
		return nil
	})
	if err != nil {
		s.metrics.RecordScreenshot("error")
		return types.Fail(fmt.Sprintf("context file: %v", err))
	}

	s.metrics.RecordScreenshot("success")
	s.metrics.SessionsActive.Set(float64(s.store.Stats().Sessions))

	s.mu.Lock()
	processed := time.Now()
	s.lastProcess = &processed
	s.mu.Unlock()

	s.log.Info("screenshot processed",
		zap.String("session", req.SessionID),
		zap.String("screenshot", shot.ID),
		zap.Int("urls", len(shot.URLs)),
		zap.Bool("ocr_failed", shot.OCRFailed))

	return types.Ok(contextPath, shot)
}

// GenerateSessionContext re-renders an existing session's context file and
// returns its path.
func (s *Service) GenerateSessionContext(sessionID string) (string, error) {
	var path string
	err := s.store.Modify(sessionID, func(sess *types.Session) error {
		p, renderErr := s.assembler.Render(sess)
		if renderErr != nil {
			return renderErr
		}
		sess.CurrentContextFile = p
		if !slices.Contains(sess.ContextFiles, p) {
			sess.ContextFiles = append(sess.ContextFiles, p)
		}
		path = p
		return nil
	})
	return path, err
}

// CleanupSession removes a session from the registry, optionally deleting
// its context artifacts. Sessions are never destroyed implicitly.
func (s *Service) CleanupSession(sessionID string, removeFiles bool) error {
	sess, ok := s.store.Remove(sessionID)
	if !ok {
		return session.ErrNotFound
	}
	if removeFiles {
		s.removeArtifacts(sess)
	}
	s.metrics.SessionsActive.Set(float64(s.store.Stats().Sessions))
	s.log.Info("session cleaned up",
		zap.String("session", sessionID),
		zap.Bool("files_removed", removeFiles))
	return nil
}

// CleanupAll removes every session and returns how many were dropped.
func (s *Service) CleanupAll(removeFiles bool) int {
	removed := s.store.RemoveAll()
	if removeFiles {
		for _, sess := range removed {
			s.removeArtifacts(sess)
		}
	}
	s.metrics.SessionsActive.Set(0)
	s.log.Info("all sessions cleaned up", zap.Int("count", len(removed)))
	return len(removed)
}

// Status reports readiness for the overlay layer.
func (s *Service) Status() types.Status {
	stats := s.store.Stats()

	s.mu.Lock()
	last := s.lastProcess
	s.mu.Unlock()

	return types.Status{
		OCRReady:     s.engine.Available(),
		ResolverMode: s.resolver.Mode(),
		Sessions:     stats.Sessions,
		Screenshots:  stats.Screenshots,
		StartedAt:    s.startedAt,
		LastProcess:  last,
	}
}

// Close releases the OCR engine.
func (s *Service) Close() error {
	return s.engine.Close()
}

func (s *Service) removeArtifacts(sess *types.Session) {
	for _, path := range sess.ContextFiles {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove context file",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// screenshotID derives an id from the capture time, with a short random
// suffix so two captures in the same millisecond stay distinct.
func screenshotID(t time.Time) string {
	return fmt.Sprintf("shot-%s-%s",
		t.Format("20060102-150405.000"),
		strings.Split(uuid.NewString(), "-")[0])
}
