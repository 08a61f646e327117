package v1

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/registry"
	"github.com/veldt-labs/switchboard/internal/server/validator"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"github.com/veldt-labs/switchboard/pkg/api"
)

// AdminHandler owns registry CRUD and usage stats. Every mutation invalidates
// the resolver cache so reads never serve a stale row.
type AdminHandler struct {
	repo     store.Repository
	resolver *registry.Resolver
	pool     *clientpool.Pool
}

func NewAdminHandler(repo store.Repository, resolver *registry.Resolver, pool *clientpool.Pool) *AdminHandler {
	return &AdminHandler{repo: repo, resolver: resolver, pool: pool}
}

// ListModels returns every row of one table, inactive rows included.
func (h *AdminHandler) ListModels(c *gin.Context) {
	t, ok := h.modelType(c)
	if !ok {
		return
	}

	records, err := h.repo.Models().ListAll(c.Request.Context(), t)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to list models", err))
		return
	}

	out := make([]api.ModelInfo, 0, len(records))
	for i := range records {
		out = append(out, toModelInfo(t, &records[i], h.pool))
	}

	c.JSON(http.StatusOK, gin.H{"models": out, "count": len(out)})
}

// CreateModel inserts a registry row.
func (h *AdminHandler) CreateModel(c *gin.Context) {
	t, ok := h.modelType(c)
	if !ok {
		return
	}

	var req api.ModelUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	record := fromUpsertRequest(&req)
	if err := h.repo.Models().Create(c.Request.Context(), t, record); err != nil {
		_ = c.Error(api.InternalError("Failed to create model", err))
		return
	}

	h.resolver.Invalidate(c.Request.Context(), record.ModelName)

	c.JSON(http.StatusCreated, toModelInfo(t, record, h.pool))
}

// UpdateModel replaces a row by id.
func (h *AdminHandler) UpdateModel(c *gin.Context) {
	t, ok := h.modelType(c)
	if !ok {
		return
	}
	id, ok := h.modelID(c)
	if !ok {
		return
	}

	var req api.ModelUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	record := fromUpsertRequest(&req)
	record.ID = id
	if err := h.repo.Models().Update(c.Request.Context(), t, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(api.NotFoundError("No model with that id."))
			return
		}
		_ = c.Error(api.InternalError("Failed to update model", err))
		return
	}

	h.resolver.Invalidate(c.Request.Context(), record.ModelName)

	c.JSON(http.StatusOK, toModelInfo(t, record, h.pool))
}

// DeleteModel removes a row by id.
func (h *AdminHandler) DeleteModel(c *gin.Context) {
	t, ok := h.modelType(c)
	if !ok {
		return
	}
	id, ok := h.modelID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	// fetch first so the cache entry for the display name can be dropped
	records, err := h.repo.Models().ListAll(ctx, t)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to delete model", err))
		return
	}
	name := ""
	for i := range records {
		if records[i].ID == id {
			name = records[i].ModelName
			break
		}
	}

	if err := h.repo.Models().Delete(ctx, t, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(api.NotFoundError("No model with that id."))
			return
		}
		_ = c.Error(api.InternalError("Failed to delete model", err))
		return
	}

	if name != "" {
		h.resolver.Invalidate(ctx, name)
	}

	c.Status(http.StatusNoContent)
}

// Stats returns daily dispatch aggregates, default one week.
func (h *AdminHandler) Stats(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			_ = c.Error(api.BadRequestError("days must be an integer between 1 and 365"))
			return
		}
		days = parsed
	}

	stats, err := h.repo.Dispatches().GetDailyStats(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to load stats", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "stats": stats})
}

func (h *AdminHandler) modelType(c *gin.Context) (model.ModelType, bool) {
	t := model.ModelType(c.Param("type"))
	if !t.Valid() {
		_ = c.Error(api.BadRequestError("Unknown model type '" + c.Param("type") + "'. Expected llm, image, audio or video."))
		return "", false
	}
	return t, true
}

func (h *AdminHandler) modelID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(api.BadRequestError("Model id must be a positive integer."))
		return 0, false
	}
	return id, true
}

func fromUpsertRequest(req *api.ModelUpsertRequest) *model.ModelRecord {
	m := &model.ModelRecord{
		ProviderName: req.ProviderName,
		ModelName:    req.ModelName,
		APIName:      req.APIName,

		SupportsImagesInput: req.SupportsImagesInput,
		SupportsPDFsInput:   req.SupportsPDFsInput,
		MultimodalInput:     req.MultimodalInput,
		ReasoningEnabled:    req.ReasoningEnabled,

		IsActive: req.IsActive,
		Notes:    req.Notes,
	}

	if req.USDPerMillionInputTokens != nil {
		m.USDPerMillionInputTokens = sql.NullFloat64{Float64: *req.USDPerMillionInputTokens, Valid: true}
	}
	if req.USDPerMillionOutputTokens != nil {
		m.USDPerMillionOutputTokens = sql.NullFloat64{Float64: *req.USDPerMillionOutputTokens, Valid: true}
	}
	if req.ContextWindowMaxTokens != nil {
		m.ContextWindowMaxTokens = sql.NullInt64{Int64: *req.ContextWindowMaxTokens, Valid: true}
	}

	return m
}
