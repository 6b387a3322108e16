package domain

import "time"

// FileType enumerates supported document formats.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
)

// Document translation progress checkpoints. Progress is monotonic per
// job: a later checkpoint never reports a smaller value.
const (
	DocProgressStarted    = 10
	DocProgressExtracted  = 30
	DocProgressTranslated = 70
	DocProgressWritten    = 90
	DocProgressDone       = 100
)

// DocumentTranslationJob tracks a whole-document translation.
// TranslatedFileURL is set only when status is completed and is cleared
// whenever a new processing attempt starts, so a retry never exposes a
// stale artifact reference.
type DocumentTranslationJob struct {
	ID                string
	UserID            string
	FileName          string
	FileType          FileType
	SourceLanguage    string
	TargetLanguage    string
	Status            JobStatus
	Progress          int
	PageCount         int
	TranslatedFileURL string
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
