package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paintlab/ai-image-studio/internal/models"
	"github.com/paintlab/ai-image-studio/internal/services/processor"
	"github.com/paintlab/ai-image-studio/internal/services/stability"
	"github.com/paintlab/ai-image-studio/pkg/utils"
)

// === FILE OPERATIONS ===

// readUploadedFile pulls one multipart file into memory, enforcing the
// size cap from the header before reading a byte.
func (h *ImageHandler) readUploadedFile(c *gin.Context, paramKey string) ([]byte, error) {
	file, header, err := c.Request.FormFile(paramKey)
	if err != nil {
		return nil, fmt.Errorf("no %s file provided", paramKey)
	}
	defer file.Close()

	maxSize := h.config.Upload.MaxFileSize
	if header.Size > maxSize {
		return nil, fmt.Errorf("%s file size %d exceeds maximum allowed size %d", paramKey, header.Size, maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file", paramKey)
	}

	if err := h.processor.ValidateUpload(data, maxSize); err != nil {
		return nil, fmt.Errorf("invalid %s file: %v", paramKey, err)
	}

	return data, nil
}

// readImageAndMask loads both uploads, stretches the image to the
// provider's fixed resolution, binarizes the mask and rejects an empty
// selection. On failure the error response is already written.
func (h *ImageHandler) readImageAndMask(c *gin.Context) (sourceImage, maskImage []byte, ok bool) {
	rawImage, err := h.readUploadedFile(c, imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	rawMask, err := h.readUploadedFile(c, maskParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	sourceImage, err = h.processor.ResizeTo(rawImage, stability.EditTargetSize, stability.EditTargetSize)
	if err != nil {
		h.respondProcessingError(c, "image", err)
		return nil, nil, false
	}

	maskImage, err = h.processor.NormalizeMask(rawMask, stability.EditTargetSize, stability.EditTargetSize)
	if err != nil {
		h.respondProcessingError(c, "mask", err)
		return nil, nil, false
	}

	empty, err := h.processor.MaskIsEmpty(maskImage)
	if err != nil {
		h.respondProcessingError(c, "mask", err)
		return nil, nil, false
	}
	if empty {
		h.respondError(c, http.StatusBadRequest, "No region selected: paint the area to edit on the mask")
		return nil, nil, false
	}

	return sourceImage, maskImage, true
}

// === REQUEST PARSING ===

// Numeric form fields are optional; anything unparseable falls back to
// zero and lets the encoder apply provider defaults.

func (h *ImageHandler) parseOptionalInt(value string) int {
	if value == "" {
		return 0
	}
	num, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return num
}

func (h *ImageHandler) parseOptionalInt64(value string) int64 {
	if value == "" {
		return 0
	}
	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return num
}

func (h *ImageHandler) parseOptionalFloat(value string) float64 {
	if value == "" {
		return 0
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return num
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) toDataURLImages(result *stability.GenerationResult) []models.GeneratedImage {
	images := make([]models.GeneratedImage, len(result.Images))
	for i, img := range result.Images {
		images[i] = models.GeneratedImage{
			Base64: utils.DataURL(img.Base64),
			Seed:   img.Seed,
		}
	}
	return images
}

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ImageHandler) respondProcessingError(c *gin.Context, fileKind string, err error) {
	if errors.Is(err, processor.ErrDecode) {
		h.logger.Error("Failed to decode uploaded file", zap.String("file", fileKind), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to decode "+fileKind+" file")
		return
	}
	h.logger.Error("Processing failed", zap.String("file", fileKind), zap.Error(err))
	h.respondError(c, http.StatusInternalServerError, "Failed to process "+fileKind+" file")
}

// respondProviderError maps the error taxonomy onto HTTP statuses. An
// upstream failure keeps the provider's status code and body verbatim.
func (h *ImageHandler) respondProviderError(c *gin.Context, err error) {
	var validationErr *stability.ValidationError
	var upstreamErr *stability.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		h.respondError(c, http.StatusBadRequest, validationErr.Reason)

	case errors.Is(err, stability.ErrNoAPIKey):
		h.logger.Error("Generation requested without configured API key")
		h.respondError(c, http.StatusInternalServerError, "API key is not configured on the server")

	case errors.As(err, &upstreamErr):
		h.logger.Error("Upstream generation failed",
			zap.Int("status", upstreamErr.StatusCode),
		)
		c.JSON(upstreamErr.StatusCode, models.ErrorResponse{
			Success: false,
			Error:   "Image generation failed",
			Details: string(upstreamErr.Body),
		})

	case errors.Is(err, stability.ErrUnrecognizedResponse):
		h.logger.Error("Unrecognized provider response", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Unrecognized response from image provider")

	default:
		h.logger.Error("Generation failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to generate image")
	}
}
