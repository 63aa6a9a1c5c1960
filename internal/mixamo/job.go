package mixamo

// ExportStatus is the lifecycle state of an export job.
type ExportStatus string

const (
	StatusPending    ExportStatus = "pending"
	StatusProcessing ExportStatus = "processing"
	StatusCompleted  ExportStatus = "completed"
	StatusFailed     ExportStatus = "failed"
	StatusTimedOut   ExportStatus = "timed_out"
)

// Terminal reports whether the status ends the polling loop.
func (s ExportStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusTimedOut:
		return true
	}
	return false
}

// ExportJob tracks one export request from submission to terminal state.
// Only the polling loop mutates it; once Terminal() it never changes again.
type ExportJob struct {
	CharacterID   string
	AnimationName string
	Status        ExportStatus
	DownloadURL   string
	Message       string
}

// Downloadable reports whether the job finished with a usable artifact.
// Retrieval must refuse jobs that are not downloadable.
func (j *ExportJob) Downloadable() bool {
	return j != nil && j.Status == StatusCompleted && j.DownloadURL != ""
}
