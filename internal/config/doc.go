// Package config provides 12-factor configuration management for the server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Data: filesystem layout for context artifacts
//   - OCR: Tesseract language model
//   - Google: Drive API service-account credentials
//   - Resolver: outbound HTTP limits and identity
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, DATA_DIR
//   - OCR_LANGUAGE
//   - GOOGLE_CREDENTIALS_FILE, GOOGLE_CREDENTIALS_JSON
//   - RESOLVER_TIMEOUT_SECONDS, RESOLVER_MAX_CONCURRENT, RESOLVER_RPS, RESOLVER_USER_AGENT
//   - LOG_LEVEL, LOG_DEV
package config
