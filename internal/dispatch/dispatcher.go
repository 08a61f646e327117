package dispatch

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veldt-labs/switchboard/internal/analytics"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/llm"
	"github.com/veldt-labs/switchboard/internal/registry"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"go.uber.org/zap"
)

// Result is the value-level outcome of one dispatch. Classified provider
// failures and skips land here; only resolution and availability problems
// surface as Go errors.
type Result struct {
	Outcome Kind `json:"outcome"`

	// display name of the dispatched model
	Model string `json:"model"`

	// user-facing explanation for skips and failures
	Message string `json:"message,omitempty"`

	Text   string           `json:"text,omitempty"`
	Images *llm.ImageResult `json:"images,omitempty"`
	Audio  *llm.AudioResult `json:"audio,omitempty"`
	Videos *llm.VideoResult `json:"videos,omitempty"`
}

// OK reports a successful dispatch.
func (r *Result) OK() bool {
	return r.Outcome == KindSuccess
}

// Dispatcher runs the per-request pipeline: resolve the display name, select
// the provider client, invoke the adapter, normalize the outcome. Stateless
// across requests; everything it holds is read-only after construction.
type Dispatcher struct {
	resolver *registry.Resolver
	pool     *clientpool.Pool
	ingestor analytics.Ingestor
	logger   *zap.Logger
}

// New builds a dispatcher. ingestor may be nil to disable dispatch logging.
func New(resolver *registry.Resolver, pool *clientpool.Pool, ingestor analytics.Ingestor, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		pool:     pool,
		ingestor: ingestor,
		logger:   logger,
	}
}

// Chat resolves the display name across all registry tables and asks the
// provider for a single completion.
func (d *Dispatcher) Chat(ctx context.Context, displayName, message string, maxTokens int) (*Result, error) {
	res, err := d.resolver.Resolve(ctx, displayName)
	if err != nil {
		return nil, err
	}

	return d.invoke(ctx, "chat", res, len(message), func(client llm.Provider) (*Result, error) {
		text, err := client.Chat(ctx, res.Record.EffectiveAPIName(), message, maxTokens)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text}, nil
	})
}

// Image resolves against the image registry table and generates images.
func (d *Dispatcher) Image(ctx context.Context, displayName, prompt string, opts llm.ImageOptions) (*Result, error) {
	res, err := d.resolver.ResolveTyped(ctx, model.TypeImage, displayName)
	if err != nil {
		return nil, err
	}

	return d.invoke(ctx, "image", res, len(prompt), func(client llm.Provider) (*Result, error) {
		images, err := client.GenerateImage(ctx, res.Record.EffectiveAPIName(), prompt, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Images: images}, nil
	})
}

// Audio resolves against the audio registry table and synthesizes speech.
func (d *Dispatcher) Audio(ctx context.Context, displayName, text, voice string) (*Result, error) {
	res, err := d.resolver.ResolveTyped(ctx, model.TypeAudio, displayName)
	if err != nil {
		return nil, err
	}

	return d.invoke(ctx, "audio", res, len(text), func(client llm.Provider) (*Result, error) {
		audio, err := client.SynthesizeSpeech(ctx, res.Record.EffectiveAPIName(), text, voice)
		if err != nil {
			return nil, err
		}
		return &Result{Audio: audio}, nil
	})
}

// Video resolves against the video registry table and generates a clip.
func (d *Dispatcher) Video(ctx context.Context, displayName, prompt string) (*Result, error) {
	res, err := d.resolver.ResolveTyped(ctx, model.TypeVideo, displayName)
	if err != nil {
		return nil, err
	}

	return d.invoke(ctx, "video", res, len(prompt), func(client llm.Provider) (*Result, error) {
		videos, err := client.GenerateVideo(ctx, res.Record.EffectiveAPIName(), prompt)
		if err != nil {
			return nil, err
		}
		return &Result{Videos: videos}, nil
	})
}

// invoke runs the SELECT_CLIENT, INVOKE and NORMALIZE stages shared by every
// operation. The skip predicate runs first so disqualified models never touch
// a provider client, configured or not.
func (d *Dispatcher) invoke(ctx context.Context, operation string, res *registry.Resolution, inputChars int, call func(client llm.Provider) (*Result, error)) (*Result, error) {
	record := &res.Record
	providerKey := clientpool.CanonicalKey(record.ProviderName)

	if keyword, skip := ShouldSkip(record.EffectiveAPIName(), record.Notes); skip {
		d.logger.Info("dispatch skipped",
			zap.String("operation", operation),
			zap.String("model", record.ModelName),
			zap.String("keyword", keyword),
		)
		result := &Result{
			Outcome: KindSkipped,
			Model:   record.ModelName,
			Message: "Model is a " + keyword + " model and cannot serve " + operation + " requests.",
		}
		d.record(ctx, operation, record, providerKey, result.Outcome, 0, inputChars)
		return result, nil
	}

	client, err := d.pool.Get(providerKey)
	if err != nil {
		// no credential configured: this propagates, the web layer owns the 503
		return nil, err
	}

	start := time.Now()
	result, err := call(client)
	latency := time.Since(start)

	if err != nil {
		kind := Classify(err.Error())
		d.logger.Warn("provider call failed",
			zap.String("operation", operation),
			zap.String("model", record.ModelName),
			zap.String("provider", providerKey),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		result = &Result{
			Outcome: kind,
			Model:   record.ModelName,
			Message: userMessage(kind, record.ProviderName, err.Error()),
		}
		d.record(ctx, operation, record, providerKey, kind, latency, inputChars)
		return result, nil
	}

	result.Outcome = KindSuccess
	result.Model = record.ModelName

	d.logger.Info("dispatch complete",
		zap.String("operation", operation),
		zap.String("model", record.ModelName),
		zap.String("provider", providerKey),
		zap.Duration("latency", latency),
	)
	d.record(ctx, operation, record, providerKey, KindSuccess, latency, inputChars)

	return result, nil
}

func (d *Dispatcher) record(ctx context.Context, operation string, record *model.ModelRecord, providerKey string, outcome Kind, latency time.Duration, inputChars int) {
	if d.ingestor == nil {
		return
	}

	userID, apiKeyID := "system", "system"
	if key, ok := ctx.Value(store.ContextKeyAPIKey).(*model.APIKey); ok {
		userID = key.UserID
		apiKeyID = key.ID
	}

	d.ingestor.Log(&model.DispatchLog{
		ID:          uuid.New().String(),
		UserID:      userID,
		APIKeyID:    apiKeyID,
		Operation:   operation,
		ModelName:   record.ModelName,
		APIName:     record.EffectiveAPIName(),
		ProviderKey: providerKey,
		Outcome:     string(outcome),
		LatencyMS:   latency.Milliseconds(),
		InputChars:  sql.NullInt64{Int64: int64(inputChars), Valid: true},
		CreatedAt:   time.Now(),
	})
}
