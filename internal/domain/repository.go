package domain

// JobRepository records the jobs of a run
type JobRepository interface {
	// Create creates a new job
	Create(job *DownloadJob) error

	// Update updates an existing job
	Update(job *DownloadJob) error

	// FindByRun returns the jobs of a run ordered by index
	FindByRun(runID string) ([]*DownloadJob, error)

	// GetStats returns job statistics for a run
	GetStats(runID string) (*JobStats, error)
}

// JobStats represents job statistics of a run
type JobStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Acquiring int64 `json:"acquiring"`
	Merging   int64 `json:"merging"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}
