package together

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
	llm.Register("together", NewAdapter)
}

// Adapter speaks the Together.ai API: OpenAI-compatible chat completions plus
// Together's own image generation shape (width/height/steps instead of size).
// Together is the aggregator behind the marketplace long tail, so this adapter
// ends up serving dozens of registry provider names.
type Adapter struct {
	config llm.Config
	client *http.Client
}

func NewAdapter(config llm.Config) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.together.xyz/v1"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 120 * time.Second},
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
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Steps  int    `json:"steps"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url,omitempty"`
		B64JSON string `json:"b64_json,omitempty"`
	} `json:"data"`
}

func (a *Adapter) GenerateImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	req := imageRequest{
		Model:  apiName,
		Prompt: prompt,
		Width:  1024,
		Height: 1024,
		Steps:  20,
		N:      opts.Count,
	}
	if req.N == 0 {
		req.N = 1
	}
	if w, h, ok := parseSize(opts.Size); ok {
		req.Width, req.Height = w, h
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

// parseSize splits an OpenAI-style "1024x768" size into width and height.
func parseSize(size string) (int, int, bool) {
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func (a *Adapter) SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*llm.AudioResult, error) {
	return nil, llm.ErrUnsupported
}

func (a *Adapter) GenerateVideo(ctx context.Context, apiName, prompt string) (*llm.VideoResult, error) {
	return nil, llm.ErrUnsupported
}
