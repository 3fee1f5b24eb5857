package ocr

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// ErrNotInitialized is returned when recognition is attempted before Initialize.
var ErrNotInitialized = errors.New("ocr: engine not initialized")

// Error wraps an engine init or recognition failure.
type Error struct {
	Stage string // "init" or "recognize"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Engine owns one process-wide Tesseract client. Recognition calls are
// serialized; the client is not safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	client   *gosseract.Client
	language string
}

// New creates an engine for the given language model (e.g. "eng").
func New(language string) *Engine {
	if language == "" {
		language = "eng"
	}
	return &Engine{language: language}
}

// Initialize acquires the Tesseract client. Idempotent.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return nil
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(e.language); err != nil {
		client.Close()
		return &Error{Stage: "init", Err: err}
	}
	e.client = client
	return nil
}

// Available reports whether the engine is ready for recognition.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client != nil
}

// ExtractText runs OCR over the image at path and returns plain text.
// The source image must exist; a missing file is the caller's failure,
// not a recognition failure.
func (e *Engine) ExtractText(imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("ocr: source image: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return "", ErrNotInitialized
	}

	if err := e.client.SetImage(imagePath); err != nil {
		return "", &Error{Stage: "recognize", Err: err}
	}
	text, err := e.client.Text()
	if err != nil {
		return "", &Error{Stage: "recognize", Err: err}
	}
	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract client. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
