package service

import (
	"context"
	"sync"

	"translingo/internal/domain"
	"translingo/internal/providers/transcript"
)

type memTranscriptionJobs struct {
	mu              sync.Mutex
	jobs            map[string]*domain.TranscriptionJob
	languageUpdates int
	failLanguage    bool
}

func newMemTranscriptionJobs() *memTranscriptionJobs {
	return &memTranscriptionJobs{jobs: make(map[string]*domain.TranscriptionJob)}
}

func (m *memTranscriptionJobs) Create(_ context.Context, job *domain.TranscriptionJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memTranscriptionJobs) GetByID(_ context.Context, jobID string) (*domain.TranscriptionJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memTranscriptionJobs) UpdateStatus(_ context.Context, jobID string, status domain.JobStatus, progress int, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return nil
	}
	job.Status = status
	job.Progress = progress
	job.ErrorMessage = errMsg
	return nil
}

func (m *memTranscriptionJobs) Complete(_ context.Context, jobID, transcription, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return nil
	}
	job.Status = domain.JobStatusCompleted
	job.Progress = 100
	job.Transcription = transcription
	job.Language = language
	job.ErrorMessage = ""
	return nil
}

func (m *memTranscriptionJobs) UpdateLanguage(_ context.Context, jobID, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languageUpdates++
	if m.failLanguage {
		return domain.ErrProviderFailure
	}
	if job, ok := m.jobs[jobID]; ok {
		job.Language = language
	}
	return nil
}

func (m *memTranscriptionJobs) ListStale(_ context.Context, _ int, _ int) ([]domain.TranscriptionJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TranscriptionJob
	for _, job := range m.jobs {
		if !job.Status.Terminal() {
			out = append(out, *job)
		}
	}
	return out, nil
}

type cacheKey struct{ jobID, language string }

type memCache struct {
	mu      sync.Mutex
	entries map[cacheKey]string
	puts    int
	deletes int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[cacheKey]string)}
}

func (m *memCache) Get(_ context.Context, jobID, language string) (*domain.TranslationCacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.entries[cacheKey{jobID, language}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.TranslationCacheEntry{JobID: jobID, Language: language, Text: text}, nil
}

func (m *memCache) Put(_ context.Context, jobID, language, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.entries[cacheKey{jobID, language}] = text
	return nil
}

func (m *memCache) Delete(_ context.Context, jobID, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.entries, cacheKey{jobID, language})
	return nil
}

func (m *memCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type memDocumentJobs struct {
	mu             sync.Mutex
	jobs           map[string]*domain.DocumentTranslationJob
	artifactClears int
}

func newMemDocumentJobs() *memDocumentJobs {
	return &memDocumentJobs{jobs: make(map[string]*domain.DocumentTranslationJob)}
}

func (m *memDocumentJobs) Create(_ context.Context, job *domain.DocumentTranslationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memDocumentJobs) GetByID(_ context.Context, jobID string) (*domain.DocumentTranslationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memDocumentJobs) UpdateStatus(_ context.Context, jobID string, status domain.JobStatus, progress int, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return nil
	}
	job.Status = status
	job.Progress = progress
	job.ErrorMessage = errMsg
	return nil
}

func (m *memDocumentJobs) SetProgress(_ context.Context, jobID string, progress int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok && !job.Status.Terminal() && progress > job.Progress {
		job.Progress = progress
	}
	return nil
}

func (m *memDocumentJobs) Complete(_ context.Context, jobID, artifactURL string, pageCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return nil
	}
	job.Status = domain.JobStatusCompleted
	job.Progress = 100
	job.TranslatedFileURL = artifactURL
	job.PageCount = pageCount
	job.ErrorMessage = ""
	return nil
}

func (m *memDocumentJobs) ClearArtifact(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifactClears++
	if job, ok := m.jobs[jobID]; ok {
		job.TranslatedFileURL = ""
	}
	return nil
}

func (m *memDocumentJobs) ListStale(_ context.Context, _ int, _ int) ([]domain.DocumentTranslationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DocumentTranslationJob
	for _, job := range m.jobs {
		if !job.Status.Terminal() {
			out = append(out, *job)
		}
	}
	return out, nil
}

type fakeFetcher struct {
	result *transcript.Result
	err    error
}

func (f *fakeFetcher) Fetch(context.Context, string) (*transcript.Result, error) {
	return f.result, f.err
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
	fn    func(text, source, target string) (string, error)
}

func (p *countingProvider) LocalizeText(_ context.Context, text, source, target string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.fn != nil {
		return p.fn(text, source, target)
	}
	return "[" + target + "] " + text, nil
}

func (p *countingProvider) RecognizeLocale(context.Context, string) (string, error) {
	return "en", nil
}

func (p *countingProvider) LocalizeObject(_ context.Context, obj map[string]any, _, _ string) (map[string]any, error) {
	return obj, nil
}

func (p *countingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
