package api

// ChatRequest asks a chat-capable model for a single completion by display name.
type ChatRequest struct {
	// the display name of the model, as shown in the registry
	Model string `json:"model" binding:"required"`

	// the user message to send
	Message string `json:"message" binding:"required"`

	// cap on generated tokens, provider default when zero
	MaxTokens int `json:"max_tokens,omitempty"`
}

// ImageRequest asks an image model to generate one or more images.
type ImageRequest struct {
	Model  string `json:"model" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`

	// e.g. "1024x1024", provider default when empty
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
	Count   int    `json:"n,omitempty" binding:"omitempty,min=1,max=4"`
}

// AudioRequest asks a TTS model to synthesize speech.
type AudioRequest struct {
	Model string `json:"model" binding:"required"`
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice,omitempty"`
}

// VideoRequest asks a video model to generate a clip.
type VideoRequest struct {
	Model  string `json:"model" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

// ModelUpsertRequest is the admin payload for creating or editing a registry row.
type ModelUpsertRequest struct {
	ProviderName string `json:"provider_name" binding:"required"`
	ModelName    string `json:"model_name" binding:"required"`

	// the identifier the provider API expects; defaults to model_name
	APIName string `json:"api_name,omitempty"`

	SupportsImagesInput bool `json:"supports_images_input,omitempty"`
	SupportsPDFsInput   bool `json:"supports_pdfs_input,omitempty"`
	MultimodalInput     bool `json:"multimodal_input,omitempty"`
	ReasoningEnabled    bool `json:"reasoning_enabled,omitempty"`

	USDPerMillionInputTokens  *float64 `json:"usd_per_million_input_tokens,omitempty"`
	USDPerMillionOutputTokens *float64 `json:"usd_per_million_output_tokens,omitempty"`
	ContextWindowMaxTokens    *int64   `json:"context_window_max_tokens,omitempty"`

	IsActive bool   `json:"is_active"`
	Notes    string `json:"notes,omitempty"`
}
