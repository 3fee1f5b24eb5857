package types

import "time"

// URLKind classifies a discovered URL
type URLKind string

const (
	KindGoogleDocs   URLKind = "google_docs"
	KindGoogleSheets URLKind = "google_sheets"
	KindGoogleSlides URLKind = "google_slides"
	KindDriveFile    URLKind = "drive_file"
	KindWeb          URLKind = "web"
)

// ResolvedURL holds the outcome of resolving one discovered URL
type ResolvedURL struct {
	Original   string  `json:"original"`
	Normalized string  `json:"normalized"`
	Kind       URLKind `json:"kind"`
	Success    bool    `json:"success"`

	// Present on success
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Structure   []string `json:"structure,omitempty"` // heading styles in document order
	WordCount   int      `json:"word_count,omitempty"`
	MimeType    string   `json:"mime_type,omitempty"`
	DownloadURL string   `json:"download_url,omitempty"` // binary exports only
	IsPublic    bool     `json:"is_public,omitempty"`    // metadata came from public scrape

	// Present on failure
	Error      string `json:"error,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// Screenshot is one processed capture. Immutable once appended to a session.
type Screenshot struct {
	ID                string        `json:"id"` // timestamp-derived
	ImagePath         string        `json:"image_path"`
	CapturedAt        time.Time     `json:"captured_at"`
	OCRText           string        `json:"ocr_text"`
	OCRFailed         bool          `json:"ocr_failed,omitempty"`
	URLs              []ResolvedURL `json:"urls"`
	VisualDescription string        `json:"visual_description,omitempty"` // passed through from the vision collaborator
}

// Session groups the screenshots of one usage episode
type Session struct {
	ID                 string        `json:"id"`
	CreatedAt          time.Time     `json:"created_at"`
	Screenshots        []*Screenshot `json:"screenshots"`
	ContextFiles       []string      `json:"context_files"`
	CurrentContextFile string        `json:"current_context_file,omitempty"`
}

// StoreStats summarizes the session registry
type StoreStats struct {
	Sessions    int `json:"sessions"`
	Screenshots int `json:"screenshots"`
}
