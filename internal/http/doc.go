// Package http provides HTTP handlers and routing for the screenshot REST API.
//
// This package implements all HTTP endpoints using the Gin framework, including
// health checks, screenshot processing, context generation, and session cleanup.
//
// Endpoints:
//   - Health: / and /health
//   - Screenshots: /screenshots/process
//   - Sessions: /sessions/:id/context, /sessions/:id, /sessions
//   - Status: /status
//   - Metrics: /metrics
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Error response formatting
//   - Request validation
//
// Example Usage:
//
//	handlers := http.NewHandlers(pipelineSvc, logger)
//	handlers.Register(router)
package http
