package fetch

import "time"

// DownloadRecord is the outcome of one animation request. Immutable once
// produced.
type DownloadRecord struct {
	Keyword       string `json:"keyword"`
	Success       bool   `json:"success"`
	AnimationName string `json:"animation_name,omitempty"`
	FilePath      string `json:"file_path,omitempty"`
	Bytes         int64  `json:"bytes,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchSummary aggregates the outcomes of one batch run, one record per
// requested keyword in input order.
type BatchSummary struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Records    []DownloadRecord `json:"records"`
}

// Options tune a single-animation fetch.
type Options struct {
	// CharacterID is the target character UUID. The account's primary
	// character is used when empty.
	CharacterID string

	// Name overrides the exported animation name.
	Name string

	// FileName overrides the local file name. Derived from the resolved
	// animation name when empty; sanitized either way.
	FileName string

	// OutputDir is the download directory. Resolved via the configured
	// directory or Unity project detection when empty.
	OutputDir string
}

// BatchOptions tune a batch run.
type BatchOptions struct {
	CharacterID string
	OutputDir   string

	// Delay overrides the configured pacing delay between items when
	// positive.
	Delay time.Duration

	// Progress, when set, receives one event as each item starts and one
	// as it finishes.
	Progress ProgressFunc
}

// ProgressFunc observes batch progress. Called from the batch goroutine;
// implementations must not block for long.
type ProgressFunc func(ProgressEvent)

// ProgressEvent describes one batch item starting or finishing.
type ProgressEvent struct {
	Index   int // zero-based position in the keyword list
	Total   int
	Keyword string

	// Record is nil on start events and set on finish events.
	Record *DownloadRecord
}

func (o BatchOptions) emit(ev ProgressEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
