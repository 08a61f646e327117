package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"github.com/veldt-labs/switchboard/pkg/api"
)

// ModelHandler serves the public registry listing.
type ModelHandler struct {
	repo store.Repository
	pool *clientpool.Pool
}

func NewModelHandler(repo store.Repository, pool *clientpool.Pool) *ModelHandler {
	return &ModelHandler{repo: repo, pool: pool}
}

// List returns active registry rows. With ?type= it lists one table, without
// it walks all four in resolution order. Availability reflects whether the
// owning provider has credentials configured right now.
func (h *ModelHandler) List(c *gin.Context) {
	types := model.ResolutionOrder
	if raw := c.Query("type"); raw != "" {
		t := model.ModelType(raw)
		if !t.Valid() {
			_ = c.Error(api.BadRequestError("Unknown model type '" + raw + "'. Expected llm, image, audio or video."))
			return
		}
		types = []model.ModelType{t}
	}

	out := make([]api.ModelInfo, 0, 64)
	for _, t := range types {
		records, err := h.repo.Models().ListActive(c.Request.Context(), t)
		if err != nil {
			_ = c.Error(api.InternalError("Failed to list models", err))
			return
		}
		for i := range records {
			out = append(out, toModelInfo(t, &records[i], h.pool))
		}
	}

	c.JSON(http.StatusOK, gin.H{"models": out, "count": len(out)})
}

func toModelInfo(t model.ModelType, m *model.ModelRecord, pool *clientpool.Pool) api.ModelInfo {
	info := api.ModelInfo{
		ID:           m.ID,
		Type:         string(t),
		ProviderName: m.ProviderName,
		ModelName:    m.ModelName,
		APIName:      m.EffectiveAPIName(),

		SupportsImagesInput: m.SupportsImagesInput,
		SupportsPDFsInput:   m.SupportsPDFsInput,
		MultimodalInput:     m.MultimodalInput,
		ReasoningEnabled:    m.ReasoningEnabled,

		IsActive:  m.IsActive,
		Notes:     m.Notes,
		Available: pool != nil && pool.Has(clientpool.CanonicalKey(m.ProviderName)),
	}

	if m.USDPerMillionInputTokens.Valid {
		v := m.USDPerMillionInputTokens.Float64
		info.USDPerMillionInputTokens = &v
	}
	if m.USDPerMillionOutputTokens.Valid {
		v := m.USDPerMillionOutputTokens.Float64
		info.USDPerMillionOutputTokens = &v
	}
	if m.ContextWindowMaxTokens.Valid {
		v := m.ContextWindowMaxTokens.Int64
		info.ContextWindowMaxTokens = &v
	}

	return info
}
