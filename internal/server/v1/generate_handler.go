package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/dispatch"
	"github.com/veldt-labs/switchboard/internal/llm"
	"github.com/veldt-labs/switchboard/internal/registry"
	"github.com/veldt-labs/switchboard/internal/server/validator"
	"github.com/veldt-labs/switchboard/pkg/api"
)

// GenerateHandler serves the four dispatch operations.
type GenerateHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewGenerateHandler(dispatcher *dispatch.Dispatcher) *GenerateHandler {
	return &GenerateHandler{dispatcher: dispatcher}
}

func (h *GenerateHandler) Chat(c *gin.Context) {
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.dispatcher.Chat(c.Request.Context(), req.Model, req.Message, req.MaxTokens)
	if err != nil {
		h.dispatchError(c, req.Model, err)
		return
	}

	h.respond(c, result, func() interface{} {
		return api.ChatResponse{Model: result.Model, Response: result.Text}
	})
}

func (h *GenerateHandler) Image(c *gin.Context) {
	var req api.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	opts := llm.ImageOptions{
		Size:    req.Size,
		Quality: req.Quality,
		Count:   req.Count,
	}

	result, err := h.dispatcher.Image(c.Request.Context(), req.Model, req.Prompt, opts)
	if err != nil {
		h.dispatchError(c, req.Model, err)
		return
	}

	h.respond(c, result, func() interface{} {
		return api.ImageResponse{Type: "image", Images: result.Images.Images, Model: result.Model}
	})
}

func (h *GenerateHandler) Audio(c *gin.Context) {
	var req api.AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.dispatcher.Audio(c.Request.Context(), req.Model, req.Text, req.Voice)
	if err != nil {
		h.dispatchError(c, req.Model, err)
		return
	}

	h.respond(c, result, func() interface{} {
		return api.AudioResponse{Model: result.Model, Format: result.Audio.Format, Audio: result.Audio.Audio}
	})
}

func (h *GenerateHandler) Video(c *gin.Context) {
	var req api.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.dispatcher.Video(c.Request.Context(), req.Model, req.Prompt)
	if err != nil {
		h.dispatchError(c, req.Model, err)
		return
	}

	h.respond(c, result, func() interface{} {
		return api.VideoResponse{Type: "video", Videos: result.Videos.Videos, Model: result.Model}
	})
}

// dispatchError maps the two propagating dispatcher errors onto HTTP problems.
func (h *GenerateHandler) dispatchError(c *gin.Context, model string, err error) {
	switch {
	case errors.Is(err, registry.ErrModelNotFound):
		_ = c.Error(api.BadRequestError("Model '" + model + "' was not found in the registry."))
	case errors.Is(err, clientpool.ErrProviderUnavailable):
		_ = c.Error(api.UnavailableError("No API client is configured for the provider serving '" + model + "'."))
	default:
		_ = c.Error(api.InternalError("Dispatch failed", err))
	}
}

// respond renders a dispatch result: skips and classified provider failures
// are value-level payloads, not HTTP errors.
func (h *GenerateHandler) respond(c *gin.Context, result *dispatch.Result, success func() interface{}) {
	switch result.Outcome {
	case dispatch.KindSuccess:
		c.JSON(http.StatusOK, success())
	case dispatch.KindSkipped:
		c.JSON(http.StatusOK, api.SkippedResponse{Model: result.Model, Reason: result.Message})
	default:
		c.JSON(http.StatusOK, api.FailureResponse{
			Model:   result.Model,
			Kind:    string(result.Outcome),
			Message: result.Message,
		})
	}
}
