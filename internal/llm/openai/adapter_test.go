package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-labs/switchboard/internal/llm"
	"github.com/veldt-labs/switchboard/internal/llm/openai"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-123",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Hello there!"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	adapter, err := openai.NewAdapter(llm.Config{
		Key:     "openai",
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)

	text, err := adapter.Chat(context.Background(), "gpt-4o-mini", "Hi", 0)
	assert.NoError(t, err)
	assert.Equal(t, "Hello there!", text)
	assert.Equal(t, "openai", adapter.Key())
}

func TestChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached for requests"}}`))
	}))
	defer server.Close()

	adapter, err := openai.NewAdapter(llm.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = adapter.Chat(context.Background(), "gpt-4o-mini", "Hi", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// defaults kick in when the caller passes zero values
		assert.Equal(t, float64(1), body["n"])
		assert.Equal(t, "1024x1024", body["size"])

		_, _ = w.Write([]byte(`{"data": [{"url": "https://img.example/cat.png"}]}`))
	}))
	defer server.Close()

	adapter, err := openai.NewAdapter(llm.Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	result, err := adapter.GenerateImage(context.Background(), "dall-e-3", "a cat", llm.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/cat.png"}, result.Images)
}

func TestGenerateImageBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"b64_json": "aGVsbG8="}]}`))
	}))
	defer server.Close()

	adapter, err := openai.NewAdapter(llm.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := adapter.GenerateImage(context.Background(), "dall-e-3", "a cat", llm.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"aGVsbG8="}, result.Images)
}

func TestSynthesizeSpeech(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alloy", body["voice"])

		_, _ = w.Write(mp3)
	}))
	defer server.Close()

	adapter, err := openai.NewAdapter(llm.Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	result, err := adapter.SynthesizeSpeech(context.Background(), "tts-1", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, mp3, result.Audio)
	assert.Equal(t, "mp3", result.Format)
}

func TestGenerateVideoUnsupported(t *testing.T) {
	adapter, err := openai.NewAdapter(llm.Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = adapter.GenerateVideo(context.Background(), "sora", "a cat")
	assert.ErrorIs(t, err, llm.ErrUnsupported)
}
