package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"translingo/internal/domain"
	"translingo/internal/infra"
	"translingo/internal/service"
	"translingo/internal/translate"
)

// anonymousUser stands in for a session identity while real auth lives
// upstream of this service.
const anonymousUser = "anonymous"

// App bundles the services the HTTP handlers dispatch to.
type App struct {
	Transcriptions *service.TranscriptionService
	Translations   *service.TranslationService
	Documents      *service.DocumentService
	Localizer      *translate.Adapter
	Logger         infra.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error maps domain errors onto HTTP status codes and writes a JSON
// error body.
func (a *App) error(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyInput):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrTranslationFailed), errors.Is(err, domain.ErrEmptyResult):
		code = http.StatusBadGateway
	}
	if code == http.StatusInternalServerError {
		a.Logger.Error().Err(err).Msg("handler: internal error")
	}
	a.json(w, code, map[string]string{"error": err.Error()})
}

// userID resolves the acting user. Session management is an external
// collaborator; requests carry the resolved identity in a header.
func userID(r *http.Request) string {
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	return anonymousUser
}
