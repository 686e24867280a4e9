package processor

import (
	"bytes"
	"image"
	"image/png"
)

// encodePNG renders the processed image back to bytes. PNG is the only
// outbound format: it is lossless, so binarized masks survive re-reading.
func (p *ImageProcessor) encodePNG(img image.Image) ([]byte, error) {
	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, img); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
