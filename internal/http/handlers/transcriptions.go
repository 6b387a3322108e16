package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"translingo/internal/domain"
	"translingo/internal/middleware"
)

type createTranscriptionRequest struct {
	URL string `json:"url"`
}

type transcriptionJobResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	Language      string    `json:"language,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func transcriptionJobJSON(job *domain.TranscriptionJob) transcriptionJobResponse {
	resp := transcriptionJobResponse{
		ID:        job.ID,
		Status:    string(job.Status),
		Progress:  job.Progress,
		Language:  job.Language,
		CreatedAt: job.CreatedAt,
	}
	// Lifecycle invariants: transcript only on completed, error only on
	// error.
	switch job.Status {
	case domain.JobStatusCompleted:
		resp.Transcription = job.Transcription
	case domain.JobStatusError:
		resp.Error = job.ErrorMessage
	}
	return resp
}

// CreateTranscription accepts a video URL and starts a transcription
// job, returning its id for polling.
func (a *App) CreateTranscription(w http.ResponseWriter, r *http.Request) {
	var req createTranscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	jobID, err := a.Transcriptions.StartTranscription(r.Context(), req.URL, userID(r))
	if err != nil {
		a.error(w, err)
		return
	}
	a.json(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// GetTranscription reports the current state of a transcription job.
func (a *App) GetTranscription(w http.ResponseWriter, r *http.Request) {
	job, err := a.Transcriptions.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, err)
		return
	}
	a.json(w, http.StatusOK, transcriptionJobJSON(job))
}

// GetTranslation returns the job's transcript translated into the
// requested language. Without an explicit lang parameter the target
// defaults from the request locale.
func (a *App) GetTranslation(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("lang")
	if target == "" {
		target = middleware.LocaleFromContext(r.Context())
	}

	res, err := a.Translations.GetTranslation(r.Context(), chi.URLParam(r, "id"), target, userID(r))
	if err != nil {
		a.error(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"language": res.Language,
		"text":     res.Text,
	})
}
