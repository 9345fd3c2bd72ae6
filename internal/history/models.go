package history

import "time"

// Status captures the terminal outcome of one conversion.
type Status string

const (
	// StatusCompleted marks a video whose assets were all written.
	StatusCompleted Status = "completed"
	// StatusFailed marks a video that failed partway through processing.
	StatusFailed Status = "failed"
	// StatusRejected marks a video that never started because validation
	// or a confirmation prompt stopped it.
	StatusRejected Status = "rejected"
)

// Conversion records one source video processed by a batch.
type Conversion struct {
	ID           int64
	BatchID      string
	ModName      string
	VideoName    string
	SourcePath   string
	FrameSize    int
	FrameRate    int
	FrameCount   int
	GridCount    int
	Truncated    bool
	HasAudio     bool
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
