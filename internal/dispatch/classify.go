package dispatch

import (
	"fmt"
	"strings"
)

// Kind is the uniform outcome taxonomy for a dispatch.
type Kind string

const (
	KindSuccess        Kind = "success"
	KindSkipped        Kind = "skipped"
	KindAuthentication Kind = "authentication_error"
	KindAccessDenied   Kind = "access_denied"
	KindRateLimited    Kind = "rate_limited"
	KindProvider       Kind = "provider_error"
)

// Classify buckets a raw provider error message into a failure kind by
// substring inspection. Deliberately low-fidelity: the upstream SDKs and HTTP
// APIs expose no uniform error taxonomy, so the message text is the only
// signal available across all of them. Keep this a dumb string scan.
func Classify(message string) Kind {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(message, "401") || strings.Contains(lower, "authentication"):
		return KindAuthentication
	case strings.Contains(message, "403") || strings.Contains(lower, "forbidden"):
		return KindAccessDenied
	case strings.Contains(message, "429") || strings.Contains(lower, "rate limit"):
		return KindRateLimited
	default:
		return KindProvider
	}
}

// userMessage renders a classified failure as the user-facing string callers
// see instead of an exception.
func userMessage(kind Kind, providerName, raw string) string {
	switch kind {
	case KindAuthentication:
		return fmt.Sprintf("Authentication error with %s. Please check your API key configuration.", providerName)
	case KindAccessDenied:
		return fmt.Sprintf("Access denied by %s. You may need to upgrade your API plan.", providerName)
	case KindRateLimited:
		return fmt.Sprintf("Rate limit exceeded for %s. Please try again in a moment.", providerName)
	default:
		return fmt.Sprintf("Error with %s: %s. Please try a different model or check your configuration.", providerName, raw)
	}
}

// skipKeywords marks models that live in a registry table but are not shaped
// for generation calls: embeddings, rerankers, guard models, control nets.
var skipKeywords = []string{
	"embedding", "rerank", "guard", "moderation", "retrieval",
	"computer-use", "search-preview", "realtime", "live", "dialog",
	"canny", "depth", "redux", "lora",
}

// ShouldSkip reports whether a model's api_name or notes disqualify it from
// dispatch, and which keyword tripped.
func ShouldSkip(apiName, notes string) (string, bool) {
	apiLower := strings.ToLower(apiName)
	notesLower := strings.ToLower(notes)

	for _, keyword := range skipKeywords {
		if strings.Contains(apiLower, keyword) || strings.Contains(notesLower, keyword) {
			return keyword, true
		}
	}
	return "", false
}
