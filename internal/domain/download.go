package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the current status of a download job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusAcquiring JobStatus = "acquiring"
	StatusMerging   JobStatus = "merging"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// DownloadJob tracks one video of a run from stream acquisition to merged output
type DownloadJob struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	RunID        string     `json:"run_id" gorm:"not null;index"`
	Index        int        `json:"index" gorm:"column:position;not null"`
	Title        string     `json:"title" gorm:"not null"`
	URL          string     `json:"url" gorm:"not null"`
	Status       JobStatus  `json:"status" gorm:"not null;index"`
	VideoFile    string     `json:"video_file,omitempty"`
	AudioFile    string     `json:"audio_file,omitempty"`
	OutputFile   string     `json:"output_file,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewDownloadJob creates a pending job for the video at index in the run
func NewDownloadJob(runID string, index int, ref VideoReference) *DownloadJob {
	return &DownloadJob{
		ID:        uuid.New().String(),
		RunID:     runID,
		Index:     index,
		Title:     ref.Title,
		URL:       ref.URL,
		Status:    StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Reference returns the video reference the job was created from
func (j *DownloadJob) Reference() VideoReference {
	return VideoReference{Title: j.Title, URL: j.URL}
}

// MarkAcquiring marks the job as fetching its streams
func (j *DownloadJob) MarkAcquiring() {
	j.Status = StatusAcquiring
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkMerging records the intermediate files and marks the job as merging
func (j *DownloadJob) MarkMerging(videoFile, audioFile string) {
	j.Status = StatusMerging
	j.VideoFile = videoFile
	j.AudioFile = audioFile
	j.UpdatedAt = time.Now()
}

// MarkCompleted marks the job as completed
func (j *DownloadJob) MarkCompleted(outputFile string) {
	j.Status = StatusCompleted
	j.OutputFile = outputFile
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkFailed marks the job as failed
func (j *DownloadJob) MarkFailed(err error) {
	j.Status = StatusFailed
	j.ErrorMessage = err.Error()
	j.UpdatedAt = time.Now()
}

// IsTerminal checks if the job is in a terminal state
func (j *DownloadJob) IsTerminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
