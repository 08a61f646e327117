package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/veldt-labs/switchboard/internal/platform/logger"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"github.com/veldt-labs/switchboard/internal/store/sqlite"
)

func usd(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func ctxWindow(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

type seedRow struct {
	t model.ModelType
	m model.ModelRecord
}

var seedRows = []seedRow{
	// llm_models
	{model.TypeLLM, model.ModelRecord{ProviderName: "OpenAI", ModelName: "gpt-4o-mini", APIName: "gpt-4o-mini", MultimodalInput: true, SupportsImagesInput: true, USDPerMillionInputTokens: usd(0.15), USDPerMillionOutputTokens: usd(0.60), ContextWindowMaxTokens: ctxWindow(128000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "OpenAI", ModelName: "gpt-4o", APIName: "gpt-4o", MultimodalInput: true, SupportsImagesInput: true, USDPerMillionInputTokens: usd(2.50), USDPerMillionOutputTokens: usd(10.00), ContextWindowMaxTokens: ctxWindow(128000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "Anthropic", ModelName: "Claude 3.5 Sonnet", APIName: "claude-3-5-sonnet-latest", MultimodalInput: true, SupportsImagesInput: true, SupportsPDFsInput: true, USDPerMillionInputTokens: usd(3.00), USDPerMillionOutputTokens: usd(15.00), ContextWindowMaxTokens: ctxWindow(200000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "Anthropic", ModelName: "Claude 3.5 Haiku", APIName: "claude-3-5-haiku-latest", USDPerMillionInputTokens: usd(0.80), USDPerMillionOutputTokens: usd(4.00), ContextWindowMaxTokens: ctxWindow(200000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "Anthropic", ModelName: "Claude 3 Opus", APIName: "claude-3-opus-latest", MultimodalInput: true, SupportsImagesInput: true, USDPerMillionInputTokens: usd(15.00), USDPerMillionOutputTokens: usd(75.00), ContextWindowMaxTokens: ctxWindow(200000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "Google", ModelName: "Gemini 2.0 Flash", APIName: "gemini-2.0-flash", MultimodalInput: true, SupportsImagesInput: true, SupportsPDFsInput: true, ContextWindowMaxTokens: ctxWindow(1048576), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "DeepSeek", ModelName: "deepseek-chat", APIName: "deepseek-chat", USDPerMillionInputTokens: usd(0.14), USDPerMillionOutputTokens: usd(0.28), ContextWindowMaxTokens: ctxWindow(64000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "DeepSeek", ModelName: "deepseek-reasoner", APIName: "deepseek-reasoner", ReasoningEnabled: true, ContextWindowMaxTokens: ctxWindow(64000), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "Meta", ModelName: "Llama 3.3 70B", APIName: "meta-llama/Llama-3.3-70B-Instruct-Turbo", ContextWindowMaxTokens: ctxWindow(131072), IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "mistralai", ModelName: "Mixtral 8x7B", APIName: "mistralai/Mixtral-8x7B-Instruct-v0.1", IsActive: true}},
	{model.TypeLLM, model.ModelRecord{ProviderName: "BAAI", ModelName: "BGE Large", APIName: "BAAI/bge-large-en-v1.5", Notes: "embedding model, retrieval only", IsActive: true}},

	// image_models
	{model.TypeImage, model.ModelRecord{ProviderName: "OpenAI", ModelName: "DALL-E 3", APIName: "dall-e-3", IsActive: true}},
	{model.TypeImage, model.ModelRecord{ProviderName: "Google", ModelName: "Imagen 3", APIName: "imagen-3.0-generate-002", IsActive: true}},
	{model.TypeImage, model.ModelRecord{ProviderName: "Google", ModelName: "Gemini 2.0 Flash Image", APIName: "gemini-2.0-flash-exp-image-generation", IsActive: true}},
	{model.TypeImage, model.ModelRecord{ProviderName: "Black Forest Labs", ModelName: "FLUX.1 Schnell", APIName: "black-forest-labs/FLUX.1-schnell", IsActive: true}},
	{model.TypeImage, model.ModelRecord{ProviderName: "Black Forest Labs", ModelName: "FLUX.1 Canny", APIName: "black-forest-labs/FLUX.1-canny", Notes: "control-net variant", IsActive: true}},

	// audio_models
	{model.TypeAudio, model.ModelRecord{ProviderName: "OpenAI", ModelName: "TTS-1", APIName: "tts-1", IsActive: true}},
	{model.TypeAudio, model.ModelRecord{ProviderName: "Cartesia", ModelName: "Sonic English", APIName: "sonic-english", IsActive: true}},

	// video_models
	{model.TypeVideo, model.ModelRecord{ProviderName: "Google", ModelName: "Veo 2", APIName: "veo-2.0-generate-001", IsActive: true}},
}

func main() {
	dsn := flag.String("dsn", "file:switchboard.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000", "sqlite DSN")
	rawKey := flag.String("key", "sw-dev-1234567890", "API key to issue")
	flag.Parse()

	logger.Initialize(logger.DefaultConfig())

	repo, err := sqlite.NewSQLiteStorage(*dsn, logger.Get())
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	userID := uuid.New().String()
	user := &model.User{
		ID:        userID,
		Email:     "dev@veldt-labs.dev",
		Name:      "Dev User",
		Role:      "admin",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Users().Create(ctx, user); err != nil {
		log.Printf("User might already exist: %v", err)
	} else {
		fmt.Printf("Created user: %s\n", userID)
	}

	hash := sha256.Sum256([]byte(*rawKey))
	key := &model.APIKey{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      "Dev Key",
		KeyHash:   hex.EncodeToString(hash[:]),
		KeyPrefix: prefixOf(*rawKey),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.APIKeys().Create(ctx, key); err != nil {
		log.Fatal(err)
	}

	seeded := 0
	for i := range seedRows {
		row := seedRows[i]
		if err := repo.Models().Create(ctx, row.t, &row.m); err != nil {
			log.Printf("Skipping %s (%s): %v", row.m.ModelName, row.t, err)
			continue
		}
		seeded++
	}

	fmt.Printf("\nSeeded %d models across the registry tables.\n", seeded)
	fmt.Printf("API Key: %s\n", *rawKey)
	fmt.Printf("Use it as: Authorization: Bearer %s\n", *rawKey)
}

func prefixOf(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
