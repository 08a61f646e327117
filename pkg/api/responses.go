package api

// ChatResponse carries the normalized text of a chat completion.
type ChatResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// ImageResponse is the uniform image payload regardless of provider. Images
// are hosted URLs or base64 data, whichever the upstream returned.
type ImageResponse struct {
	Type   string   `json:"type"`
	Images []string `json:"images"`
	Model  string   `json:"model"`
}

// AudioResponse carries synthesized speech. Audio is base64 on the wire.
type AudioResponse struct {
	Model  string `json:"model"`
	Format string `json:"format"`
	Audio  []byte `json:"audio"`
}

// VideoResponse is the uniform video payload.
type VideoResponse struct {
	Type   string   `json:"type"`
	Videos []string `json:"videos"`
	Model  string   `json:"model"`
}

// SkippedResponse signals a deliberate no-op for models unsuitable for the
// requested operation (embedding, rerank and friends).
type SkippedResponse struct {
	Model  string `json:"model"`
	Reason string `json:"reason"`
}

// FailureResponse is the value-level shape for classified provider failures.
// These are not transport errors: the request reached the provider and the
// provider said no.
type FailureResponse struct {
	Model   string `json:"model"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ModelInfo is the public listing shape for a registry row.
type ModelInfo struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	ProviderName string `json:"provider_name"`
	ModelName    string `json:"model_name"`
	APIName      string `json:"api_name"`

	SupportsImagesInput bool `json:"supports_images_input"`
	SupportsPDFsInput   bool `json:"supports_pdfs_input"`
	MultimodalInput     bool `json:"multimodal_input"`
	ReasoningEnabled    bool `json:"reasoning_enabled"`

	USDPerMillionInputTokens  *float64 `json:"usd_per_million_input_tokens,omitempty"`
	USDPerMillionOutputTokens *float64 `json:"usd_per_million_output_tokens,omitempty"`
	ContextWindowMaxTokens    *int64   `json:"context_window_max_tokens,omitempty"`

	IsActive bool   `json:"is_active"`
	Notes    string `json:"notes,omitempty"`

	// true when the owning provider has credentials configured
	Available bool `json:"available"`
}

// ErrorResponse is the minimal error shape used by middleware short-circuits.
type ErrorResponse struct {
	Message string `json:"message"`
}
