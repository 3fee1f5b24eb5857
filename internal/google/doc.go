// Package google builds authenticated Drive, Docs, Sheets and Slides
// service clients from a service-account JSON key.
//
// All scopes are read-only; the resolver never mutates remote documents.
// When no credentials are configured the constructor returns nil services
// and the resolver runs in scrape-only mode.
package google
