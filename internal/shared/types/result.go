package types

import "time"

// Result is the uniform outcome of one pipeline pass
type Result struct {
	Success     bool        `json:"success"`
	ContextFile string      `json:"context_file,omitempty"`
	Data        *Screenshot `json:"data,omitempty"`
	Error       *string     `json:"error,omitempty"`
}

// Ok creates a successful result
func Ok(contextFile string, shot *Screenshot) *Result {
	return &Result{Success: true, ContextFile: contextFile, Data: shot}
}

// Fail creates a failed result
func Fail(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg}
}

// Status reports service readiness for the overlay layer
type Status struct {
	OCRReady     bool       `json:"ocr_ready"`
	ResolverMode string     `json:"resolver_mode"` // "api" or "scrape_only"
	Sessions     int        `json:"sessions"`
	Screenshots  int        `json:"screenshots"`
	StartedAt    time.Time  `json:"started_at"`
	LastProcess  *time.Time `json:"last_process,omitempty"`
}
