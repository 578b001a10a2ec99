package assistant

import "errors"

var (
	ErrNotConfigured     = errors.New("model provider API key not configured")
	ErrModelsExhausted   = errors.New("all candidate models failed")
	ErrMissingQuery      = errors.New("query text is required")
	ErrMissingTranscript = errors.New("transcript text is required")
)

// UserFacingMessage flattens a runner error into the single French
// sentence shown in the normal response slot. Callers that need to
// distinguish failure from answer inspect the error, not the string.
func UserFacingMessage(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return "Désolé, l'assistant IA n'est pas configuré. Veuillez renseigner une clé API."
	}
	return "Désolé, une erreur est survenue lors de l'analyse : " + err.Error()
}
