package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"translingo/internal/domain"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

type documentJobResponse struct {
	ID                string    `json:"id"`
	FileName          string    `json:"file_name"`
	FileType          string    `json:"file_type"`
	SourceLanguage    string    `json:"source_language"`
	TargetLanguage    string    `json:"target_language"`
	Status            string    `json:"status"`
	Progress          int       `json:"progress"`
	PageCount         int       `json:"page_count,omitempty"`
	TranslatedFileURL string    `json:"translated_file_url,omitempty"`
	Error             string    `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func documentJobJSON(job *domain.DocumentTranslationJob) documentJobResponse {
	resp := documentJobResponse{
		ID:             job.ID,
		FileName:       job.FileName,
		FileType:       string(job.FileType),
		SourceLanguage: job.SourceLanguage,
		TargetLanguage: job.TargetLanguage,
		Status:         string(job.Status),
		Progress:       job.Progress,
		PageCount:      job.PageCount,
		CreatedAt:      job.CreatedAt,
	}
	switch job.Status {
	case domain.JobStatusCompleted:
		resp.TranslatedFileURL = job.TranslatedFileURL
	case domain.JobStatusError:
		resp.Error = job.ErrorMessage
	}
	return resp
}

// CreateDocument accepts a multipart upload and starts a document
// translation job.
func (a *App) CreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "file field is required"})
		return
	}
	defer file.Close()

	fileType, ok := fileTypeFromName(header.Filename)
	if !ok {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "unsupported file type, expected pdf or docx"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "failed to read upload"})
		return
	}

	jobID, err := a.Documents.TranslateDocument(
		r.Context(),
		data,
		header.Filename,
		fileType,
		r.FormValue("source_lang"),
		r.FormValue("target_lang"),
		userID(r),
	)
	if err != nil {
		a.error(w, err)
		return
	}
	a.json(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// GetDocument reports the current state of a document translation job.
func (a *App) GetDocument(w http.ResponseWriter, r *http.Request) {
	job, err := a.Documents.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, err)
		return
	}
	a.json(w, http.StatusOK, documentJobJSON(job))
}

// DownloadDocument serves the translated artifact of a completed job.
func (a *App) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	data, job, err := a.Documents.Artifact(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		a.error(w, err)
		return
	}

	name := strings.TrimSuffix(job.FileName, filepath.Ext(job.FileName)) + "_translated.txt"
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func fileTypeFromName(name string) (domain.FileType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return domain.FileTypePDF, true
	case ".docx":
		return domain.FileTypeDOCX, true
	}
	return "", false
}
