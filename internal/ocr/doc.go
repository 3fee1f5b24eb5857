// Package ocr wraps a single Tesseract engine instance for screenshot text
// extraction.
//
// The underlying gosseract client is not safe for concurrent recognition, so
// the Engine serializes every call through one mutex-guarded slot. Callers
// that process screenshots concurrently still queue through it.
//
// Components:
//   - Engine: mutex-guarded gosseract client with explicit lifecycle
//     (Initialize, ExtractText, Close)
//
// Recognition failures degrade: the pipeline proceeds with empty text rather
// than aborting the pass.
package ocr
