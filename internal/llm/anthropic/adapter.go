package anthropic

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
	llm.Register("anthropic", NewAdapter)
}

const defaultMaxTokens = 1024

// Adapter speaks the Anthropic messages API. Chat only.
type Adapter struct {
	config llm.Config
	client *http.Client
}

func NewAdapter(config llm.Config) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.anthropic.com/v1"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *Adapter) Key() string { return a.config.Key }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (a *Adapter) Chat(ctx context.Context, apiName, messageText string, maxTokens int) (string, error) {
	if maxTokens == 0 {
		// max_tokens is mandatory on this API
		maxTokens = defaultMaxTokens
	}

	req := request{
		Model:     apiName,
		Messages:  []message{{Role: "user", Content: messageText}},
		MaxTokens: maxTokens,
	}

	version := a.config.Extra["version"]
	if version == "" {
		version = "2023-06-01"
	}
	headers := map[string]string{
		"x-api-key":         a.config.APIKey,
		"anthropic-version": version,
	}

	url := strings.TrimRight(a.config.BaseURL, "/") + "/messages"

	var resp response
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, headers, req, &resp); err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}

	return "", fmt.Errorf("no text content in message response")
}

func (a *Adapter) GenerateImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	return nil, llm.ErrUnsupported
}

func (a *Adapter) SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*llm.AudioResult, error) {
	return nil, llm.ErrUnsupported
}

func (a *Adapter) GenerateVideo(ctx context.Context, apiName, prompt string) (*llm.VideoResult, error) {
	return nil, llm.ErrUnsupported
}
