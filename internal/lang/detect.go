package lang

// Resolution is the outcome of reconciling a stored source language with
// the transcript content itself.
type Resolution struct {
	Language  string
	Corrected bool
}

// ResolveSourceLanguage decides the source language for a transcript.
// Upstream caption providers report an unreliable or missing language
// for some scripts; content-based script detection is the stronger
// signal and overrides the stored value when they disagree. When
// Corrected is true the caller persists the new value back to the job.
func ResolveSourceLanguage(storedLang, transcriptText string) Resolution {
	stored := Normalize(storedLang)

	if detected, ok := DetectLanguage(transcriptText); ok && detected != stored {
		return Resolution{Language: detected, Corrected: true}
	}
	return Resolution{Language: stored}
}
