package cartesia

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/veldt-labs/switchboard/internal/httpclient"
	"github.com/veldt-labs/switchboard/internal/llm"
)

func init() {
	llm.Register("cartesia", NewAdapter)
}

// Adapter speaks the Cartesia text-to-speech API. TTS only.
type Adapter struct {
	config llm.Config
	client *http.Client
}

func NewAdapter(config llm.Config) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.cartesia.ai/v1"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *Adapter) Key() string { return a.config.Key }

type ttsRequest struct {
	ModelID      string `json:"model_id"`
	Transcript   string `json:"transcript"`
	OutputFormat string `json:"output_format"`
	Voice        string `json:"voice,omitempty"`
}

func (a *Adapter) SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*llm.AudioResult, error) {
	req := ttsRequest{
		ModelID:      apiName,
		Transcript:   text,
		OutputFormat: "mp3",
		Voice:        voice,
	}

	headers := map[string]string{
		"X-API-Key": a.config.APIKey,
	}

	url := strings.TrimRight(a.config.BaseURL, "/") + "/text-to-speech"

	raw, err := httpclient.SendRequestRaw(ctx, a.client, "POST", url, headers, req)
	if err != nil {
		return nil, err
	}

	return &llm.AudioResult{Audio: raw, Format: "mp3"}, nil
}

func (a *Adapter) Chat(ctx context.Context, apiName, message string, maxTokens int) (string, error) {
	return "", llm.ErrUnsupported
}

func (a *Adapter) GenerateImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	return nil, llm.ErrUnsupported
}

func (a *Adapter) GenerateVideo(ctx context.Context, apiName, prompt string) (*llm.VideoResult, error) {
	return nil, llm.ErrUnsupported
}
