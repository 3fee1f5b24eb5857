// Package main is the entry point for the ScreenSense server.
//
// This application runs the screenshot context pipeline behind a REST API,
// turning screen captures into cumulative per-session context files.
//
// Architecture:
//
//	Capture client → Go server → Tesseract (OCR)
//	                           → Google Drive/Docs/Sheets/Slides APIs
//	                           → Public page scraping (fallback)
//
// The server provides:
//   - REST API for screenshot processing and session cleanup
//   - Per-session context file rendering
//   - URL discovery and multi-strategy resolution
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Scrape-only mode
//	./server -port 8600 -data /var/lib/screensense
//
//	# With Google API access
//	GOOGLE_CREDENTIALS_FILE=sa.json ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
