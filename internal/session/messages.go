package session

import (
	"errors"
	"fmt"

	"brand-insights-go/internal/backend"
)

const (
	MsgGenericFailure = "Error al procesar la pregunta. Por favor, intenta de nuevo."
	MsgNoSimilar      = "No se encontraron preguntas similares en el historial. Intenta con una pregunta diferente o desactiva la búsqueda de preguntas similares."
)

func NotFoundMessage(brand string) string {
	return fmt.Sprintf("No se encontraron datos para la marca \"%s\" en los resultados actuales o históricos.", brand)
}

// errorMessage maps a backend failure to what the user sees. The 404 case
// only applies to similar-only submissions.
func errorMessage(err error, similarOnly bool) string {
	if similarOnly && errors.Is(err, backend.ErrNoSimilarQuestions) {
		return MsgNoSimilar
	}
	return MsgGenericFailure
}

// errorKind labels a failure for logs and API clients.
func errorKind(err error) string {
	var statusErr *backend.StatusError
	var malformed *backend.MalformedPayloadError
	switch {
	case errors.Is(err, backend.ErrNoSimilarQuestions):
		return "no_similar_questions"
	case errors.As(err, &malformed):
		return "malformed_payload"
	case errors.As(err, &statusErr):
		return "http_status"
	default:
		return "transport"
	}
}
