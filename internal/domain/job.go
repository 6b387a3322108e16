package domain

import "time"

// JobStatus enumerates job lifecycle states shared by transcription and
// document translation jobs.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// Terminal reports whether a status can no longer transition.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// TranscriptionJob tracks the lifecycle of a caption fetch for a single
// video URL. Transcription is non-empty only when status is completed;
// ErrorMessage is non-empty only when status is error.
type TranscriptionJob struct {
	ID            string
	UserID        string
	SourceURL     string
	Transcription string
	Language      string
	Status        JobStatus
	Progress      int
	ErrorMessage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
