package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Kind
	}{
		{"401 status code", "upstream error: status 401 from https://api.openai.com/v1/chat/completions: invalid key", KindAuthentication},
		{"authentication word", "authentication_error: invalid x-api-key", KindAuthentication},
		{"403 status code", "upstream error: status 403 from https://api.together.xyz/v1/chat/completions: denied", KindAccessDenied},
		{"forbidden word", "request forbidden by administrative rules", KindAccessDenied},
		{"429 status code", "upstream error: status 429 from https://api.openai.com/v1/chat/completions: slow down", KindRateLimited},
		{"rate limit phrase", "Rate limit reached for requests", KindRateLimited},
		{"anything else", "upstream error: status 500 from x: internal", KindProvider},
		{"connection refused", "dial tcp: connection refused", KindProvider},
		// 401 outranks a rate-limit mention later in the same message
		{"auth beats rate limit", "status 401: rate limit key invalid", KindAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name        string
		apiName     string
		notes       string
		wantKeyword string
		wantSkip    bool
	}{
		{"embedding model", "text-embedding-3-small", "", "embedding", true},
		{"reranker", "mixedbread-ai/mxbai-rerank-large-v1", "", "rerank", true},
		{"guard model", "meta-llama/LlamaGuard-2-8b", "", "guard", true},
		{"control net in api name", "black-forest-labs/FLUX.1-canny", "", "canny", true},
		{"keyword only in notes", "BAAI/bge-large-en-v1.5", "embedding model, retrieval only", "embedding", true},
		{"case insensitive", "GPT-4o-REALTIME-preview", "", "realtime", true},
		{"plain chat model", "gpt-4o-mini", "", "", false},
		{"plain image model", "dall-e-3", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyword, skip := ShouldSkip(tt.apiName, tt.notes)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantKeyword, keyword)
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(KindAuthentication, "OpenAI", "raw"), "Authentication error with OpenAI")
	assert.Contains(t, userMessage(KindAccessDenied, "Anthropic", "raw"), "Access denied by Anthropic")
	assert.Contains(t, userMessage(KindRateLimited, "Google", "raw"), "Rate limit exceeded for Google")
	assert.Contains(t, userMessage(KindProvider, "Together", "boom"), "Error with Together: boom")
}
