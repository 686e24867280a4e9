package processor

import (
	"fmt"
	"net/http"

	"github.com/paintlab/ai-image-studio/pkg/utils"
)

// ValidateUpload checks an uploaded file's size and sniffed content type
// before any decoding happens. Oversized or non-image uploads never reach
// the pipeline.
func (p *ImageProcessor) ValidateUpload(data []byte, maxSize int64) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size %d", len(data), maxSize)
	}

	contentType := http.DetectContentType(data)
	if !utils.IsValidImageType(contentType) {
		return fmt.Errorf("unsupported content type: %s", contentType)
	}

	return nil
}
