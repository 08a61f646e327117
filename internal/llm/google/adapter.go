package google

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
	llm.Register("google", NewAdapter)
}

// Adapter speaks two Google API surfaces: the Gemini generative language API
// for chat, inline image generation and video, and the Vertex AI predict
// endpoint for Imagen models. Image requests route on the api_name: anything
// containing "imagen" goes to Vertex, everything else to Gemini.
type Adapter struct {
	config llm.Config
	client *http.Client
}

func NewAdapter(config llm.Config) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (a *Adapter) Key() string { return a.config.Key }

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens    int      `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

func (a *Adapter) generateContentURL(apiName string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(a.config.BaseURL, "/"), apiName, a.config.APIKey)
}

func (a *Adapter) generateContent(ctx context.Context, apiName string, req geminiRequest) (*geminiResponse, error) {
	var resp geminiResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", a.generateContentURL(apiName), nil, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in gemini response")
	}
	return &resp, nil
}

func (a *Adapter) Chat(ctx context.Context, apiName, message string, maxTokens int) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: message}},
		}},
	}
	if maxTokens > 0 {
		req.GenerationConfig = &generationConfig{MaxOutputTokens: maxTokens}
	}

	resp, err := a.generateContent(ctx, apiName, req)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String()), nil
}

func (a *Adapter) GenerateImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	if strings.Contains(apiName, "imagen") {
		return a.vertexImage(ctx, apiName, prompt, opts)
	}
	return a.geminiImage(ctx, apiName, prompt)
}

// geminiImage asks a Gemini model for inline image data.
func (a *Adapter) geminiImage(ctx context.Context, apiName, prompt string) (*llm.ImageResult, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := a.generateContent(ctx, apiName, req)
	if err != nil {
		return nil, err
	}

	result := &llm.ImageResult{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil {
			result.Images = append(result.Images, part.InlineData.Data)
		}
	}

	if len(result.Images) == 0 {
		return nil, fmt.Errorf("no image data in gemini response")
	}
	return result, nil
}

type vertexPredictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int `json:"sampleCount"`
	} `json:"parameters"`
}

type vertexPredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// vertexImage calls the Vertex AI predict endpoint for Imagen models. Requires
// project and location in the adapter config.
func (a *Adapter) vertexImage(ctx context.Context, apiName, prompt string, opts llm.ImageOptions) (*llm.ImageResult, error) {
	project := a.config.Extra["project"]
	location := a.config.Extra["location"]
	if project == "" || location == "" {
		return nil, fmt.Errorf("imagen models need GOOGLE_PROJECT_ID and GOOGLE_LOCATION configured")
	}

	url := fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		location, project, location, apiName)

	var req vertexPredictRequest
	req.Instances = append(req.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	req.Parameters.SampleCount = opts.Count
	if req.Parameters.SampleCount == 0 {
		req.Parameters.SampleCount = 1
	}

	token := a.config.Extra["access_token"]
	if token == "" {
		token = a.config.APIKey
	}
	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	var resp vertexPredictResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, headers, req, &resp); err != nil {
		return nil, err
	}

	result := &llm.ImageResult{}
	for _, p := range resp.Predictions {
		if p.BytesBase64Encoded != "" {
			result.Images = append(result.Images, p.BytesBase64Encoded)
		}
	}

	if len(result.Images) == 0 {
		return nil, fmt.Errorf("no predictions in vertex response")
	}
	return result, nil
}

func (a *Adapter) SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*llm.AudioResult, error) {
	return nil, llm.ErrUnsupported
}

func (a *Adapter) GenerateVideo(ctx context.Context, apiName, prompt string) (*llm.VideoResult, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
	}

	resp, err := a.generateContent(ctx, apiName, req)
	if err != nil {
		return nil, err
	}

	result := &llm.VideoResult{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil {
			result.Videos = append(result.Videos, part.InlineData.Data)
		} else if part.Text != "" {
			result.Videos = append(result.Videos, part.Text)
		}
	}

	if len(result.Videos) == 0 {
		return nil, fmt.Errorf("no video data in gemini response")
	}
	return result, nil
}
