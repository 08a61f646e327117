package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/veldt-labs/switchboard/internal/httpclient"
	"github.com/veldt-labs/switchboard/internal/llm"
)

func init() {
	llm.Register("openai", NewAdapter)
}

// Adapter speaks the OpenAI REST surface: chat completions, image generations
// and speech synthesis. DeepSeek is served by this same adapter with a
// different base URL, since its API is OpenAI-compatible.
type Adapter struct {
	config llm.Config
	client *http.Client
}

func NewAdapter(config llm.Config) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *Adapter) Key() string { return a.config.Key }

func (a *Adapter) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
}

func (a *Adapter) url(path string) string {
	return strings.TrimRight(a.config.BaseURL, "/") + path
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *Adapter) Chat(ctx context.Context, apiName, message string, maxTokens int) (string, error) {
	req := chatRequest{
		Model:     apiName,
		Messages:  []chatMessage{{Role: "user", Content: message}},
		MaxTokens: maxTokens,
	}

	var resp chatResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", a.url("/chat/completions"), a.headers(), req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url,omitempty"`
		B64JSON string `json:"b64_json,omitempty"`
	} `json:"data"`
}

func (a *Adapter) GenerateImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	req := imageRequest{
		Model:   apiName,
		Prompt:  prompt,
		N:       opts.Count,
		Size:    opts.Size,
		Quality: opts.Quality,
	}
	if req.N == 0 {
		req.N = 1
	}
	if req.Size == "" {
		req.Size = "1024x1024"
	}

	var resp imageResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", a.url("/images/generations"), a.headers(), req, &resp); err != nil {
		return nil, err
	}

	result := &llm.ImageResult{}
	for _, d := range resp.Data {
		if d.URL != "" {
			result.Images = append(result.Images, d.URL)
		} else if d.B64JSON != "" {
			result.Images = append(result.Images, d.B64JSON)
		}
	}

	if len(result.Images) == 0 {
		return nil, fmt.Errorf("no image data in generation response")
	}
	return result, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

func (a *Adapter) SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*llm.AudioResult, error) {
	if voice == "" {
		voice = "alloy"
	}

	req := speechRequest{
		Model: apiName,
		Voice: voice,
		Input: text,
	}

	raw, err := httpclient.SendRequestRaw(ctx, a.client, "POST", a.url("/audio/speech"), a.headers(), req)
	if err != nil {
		return nil, err
	}

	return &llm.AudioResult{Audio: raw, Format: "mp3"}, nil
}

func (a *Adapter) GenerateVideo(ctx context.Context, apiName, prompt string) (*llm.VideoResult, error) {
	return nil, llm.ErrUnsupported
}
