package handlers

import (
	"encoding/json"
	"net/http"
)

type localizeChatRequest struct {
	SourceLang string         `json:"source_lang"`
	TargetLang string         `json:"target_lang"`
	Message    map[string]any `json:"message"`
}

// LocalizeChat translates the string fields of a chat message envelope.
// Provider failures degrade to the original envelope, so this endpoint
// never fails on upstream errors.
func (a *App) LocalizeChat(w http.ResponseWriter, r *http.Request) {
	var req localizeChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if len(req.Message) == 0 {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	localized := a.Localizer.LocalizeObject(r.Context(), req.Message, req.SourceLang, req.TargetLang)
	a.json(w, http.StatusOK, map[string]any{"message": localized})
}
