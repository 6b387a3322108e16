package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"translingo/internal/domain"
	"translingo/internal/providers/transcript"
)

func TestStartTranscriptionRejectsEmptyURL(t *testing.T) {
	svc := NewTranscriptionService(newMemTranscriptionJobs(), &fakeFetcher{}, zerolog.Nop(), time.Minute)
	if _, err := svc.StartTranscription(context.Background(), "  ", "u1"); !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestStartTranscriptionCreatesPendingJob(t *testing.T) {
	jobs := newMemTranscriptionJobs()
	// A fetcher error keeps the background goroutine from racing the
	// assertion on the created record.
	svc := NewTranscriptionService(jobs, &fakeFetcher{err: errors.New("no captions")}, zerolog.Nop(), time.Minute)

	jobID, err := svc.StartTranscription(context.Background(), "https://youtube.com/watch?v=abc", "u1")
	if err != nil {
		t.Fatalf("StartTranscription: %v", err)
	}
	if jobID == "" {
		t.Fatal("expected a job id")
	}
	job, err := jobs.GetByID(context.Background(), jobID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if job.UserID != "u1" || job.SourceURL != "https://youtube.com/watch?v=abc" {
		t.Fatalf("job fields: %+v", job)
	}
}

func TestProcessCompletesJob(t *testing.T) {
	jobs := newMemTranscriptionJobs()
	fetcher := &fakeFetcher{result: &transcript.Result{
		Language: "en",
		Segments: []transcript.Segment{
			{Text: "hello", Start: 0},
			{Text: "world", Start: 5 * time.Second},
		},
	}}
	svc := NewTranscriptionService(jobs, fetcher, zerolog.Nop(), time.Minute)

	_ = jobs.Create(context.Background(), &domain.TranscriptionJob{ID: "job-1", UserID: "u1", Status: domain.JobStatusPending})
	svc.Process(context.Background(), "job-1", "https://youtube.com/watch?v=abc")

	job, _ := jobs.GetByID(context.Background(), "job-1")
	if job.Status != domain.JobStatusCompleted {
		t.Fatalf("status: %s (%s)", job.Status, job.ErrorMessage)
	}
	if job.Progress != 100 {
		t.Fatalf("progress: %d", job.Progress)
	}
	if job.Transcription != "00:00:00 hello\n00:00:05 world" {
		t.Fatalf("transcription: %q", job.Transcription)
	}
	if job.Language != "en" {
		t.Fatalf("language: %q", job.Language)
	}
	if job.ErrorMessage != "" {
		t.Fatalf("error message should be empty: %q", job.ErrorMessage)
	}
}

func TestProcessCorrectsReportedLanguage(t *testing.T) {
	jobs := newMemTranscriptionJobs()
	fetcher := &fakeFetcher{result: &transcript.Result{
		Language: "en", // caption track lies about its language
		Segments: []transcript.Segment{
			{Text: "[संगीत]", Start: 0},
			{Text: "मैं तेरे कल में हूं।", Start: time.Second},
		},
	}}
	svc := NewTranscriptionService(jobs, fetcher, zerolog.Nop(), time.Minute)

	_ = jobs.Create(context.Background(), &domain.TranscriptionJob{ID: "job-1", Status: domain.JobStatusPending})
	svc.Process(context.Background(), "job-1", "url")

	job, _ := jobs.GetByID(context.Background(), "job-1")
	if job.Language != "hi" {
		t.Fatalf("expected content-detected hi, got %q", job.Language)
	}
}

func TestProcessRecordsFetchFailure(t *testing.T) {
	jobs := newMemTranscriptionJobs()
	svc := NewTranscriptionService(jobs, &fakeFetcher{err: errors.New("no captions available")}, zerolog.Nop(), time.Minute)

	_ = jobs.Create(context.Background(), &domain.TranscriptionJob{ID: "job-1", Status: domain.JobStatusPending})
	svc.Process(context.Background(), "job-1", "url")

	job, _ := jobs.GetByID(context.Background(), "job-1")
	if job.Status != domain.JobStatusError {
		t.Fatalf("status: %s", job.Status)
	}
	if job.ErrorMessage == "" {
		t.Fatal("expected an error message")
	}
	if job.Transcription != "" {
		t.Fatalf("transcription must stay empty on error, got %q", job.Transcription)
	}
}

func TestProcessDoesNotRevertTerminalState(t *testing.T) {
	jobs := newMemTranscriptionJobs()
	svc := NewTranscriptionService(jobs, &fakeFetcher{err: errors.New("boom")}, zerolog.Nop(), time.Minute)

	_ = jobs.Create(context.Background(), &domain.TranscriptionJob{ID: "job-1", Status: domain.JobStatusPending})
	_ = jobs.Complete(context.Background(), "job-1", "00:00:00 done", "en")

	// A late recovery run must not clobber the completed job.
	svc.Process(context.Background(), "job-1", "url")

	job, _ := jobs.GetByID(context.Background(), "job-1")
	if job.Status != domain.JobStatusCompleted {
		t.Fatalf("terminal state reverted to %s", job.Status)
	}
}
