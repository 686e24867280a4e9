package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paintlab/ai-image-studio/internal/config"
	"github.com/paintlab/ai-image-studio/internal/models"
	"github.com/paintlab/ai-image-studio/internal/services/processor"
	"github.com/paintlab/ai-image-studio/internal/services/stability"
)

const (
	imageParamKey = "image"
	maskParamKey  = "mask"
)

type ImageHandler struct {
	processor *processor.ImageProcessor
	client    *stability.Client
	logger    *zap.Logger
	config    *config.Config
}

func NewImageHandler(
	processor *processor.ImageProcessor,
	client *stability.Client,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		client:    client,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// Generate proxies a text-to-image request. The prompt is validated here
// so an empty request never reaches the provider.
func (h *ImageHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		h.respondError(c, http.StatusBadRequest, "Prompt is required")
		return
	}

	h.logger.Info("Generating images",
		zap.Int("samples", req.Samples),
		zap.Int("steps", req.Steps),
	)

	result, err := h.client.Generate(c.Request.Context(), stability.GenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Steps:          req.Steps,
		CfgScale:       req.CfgScale,
		Width:          req.Width,
		Height:         req.Height,
		Samples:        req.Samples,
	})
	if err != nil {
		h.respondProviderError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success: true,
		Images:  h.toDataURLImages(result),
	})
}

// Inpaint proxies an image-edit request: the uploaded image is stretched
// to the provider's fixed resolution, the painted mask is binarized, and
// both are re-encoded into the outbound multipart form.
func (h *ImageHandler) Inpaint(c *gin.Context) {
	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if prompt == "" {
		h.respondError(c, http.StatusBadRequest, "Prompt is required")
		return
	}

	sourceImage, maskImage, ok := h.readImageAndMask(c)
	if !ok {
		return
	}

	req := stability.GenerationRequest{
		Prompt:         prompt,
		NegativePrompt: c.PostForm("negative_prompt"),
		CfgScale:       h.parseOptionalFloat(c.PostForm("cfg_scale")),
		Steps:          h.parseOptionalInt(c.PostForm("steps")),
		Samples:        h.parseOptionalInt(c.PostForm("samples")),
		Seed:           h.parseOptionalInt64(c.PostForm("seed")),
		OutputFormat:   c.PostForm("output_format"),
		StylePreset:    c.PostForm("style_preset"),
	}

	h.logger.Info("Inpainting image",
		zap.Int("samples", req.Samples),
		zap.Int("image_bytes", len(sourceImage)),
	)

	result, err := h.client.Inpaint(c.Request.Context(), req, sourceImage, maskImage)
	if err != nil {
		h.respondProviderError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success: true,
		Images:  h.toDataURLImages(result),
	})
}

// Erase proxies a remove-object request. The provider streams the result
// back as raw image bytes, so the response carries a single image with a
// timestamp seed and no data-URL prefix.
func (h *ImageHandler) Erase(c *gin.Context) {
	sourceImage, maskImage, ok := h.readImageAndMask(c)
	if !ok {
		return
	}

	h.logger.Info("Erasing masked region", zap.Int("image_bytes", len(sourceImage)))

	result, err := h.client.Erase(c.Request.Context(), sourceImage, maskImage)
	if err != nil {
		h.respondProviderError(c, err)
		return
	}
	if len(result.Images) == 0 {
		h.logger.Error("Provider returned an empty result for erase")
		h.respondError(c, http.StatusInternalServerError, "Provider returned no image")
		return
	}

	c.JSON(http.StatusOK, models.EraseResponse{
		Success: true,
		Image: models.GeneratedImage{
			Base64: result.Images[0].Base64,
			Seed:   result.Images[0].Seed,
		},
	})
}

// HealthCheck responds 200 whether or not the credential is configured;
// the flag tells the front end which features to enable.
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthCheck{
		Status:           "OK",
		APIKeyConfigured: h.client.Configured(),
	})
}
