package processor

import (
	"github.com/disintegration/imaging"
)

// ResizeTo stretches the image to exactly width x height. The provider
// requires a fixed resolution, so aspect ratio is intentionally not
// preserved and nothing is cropped or letterboxed.
func (p *ImageProcessor) ResizeTo(data []byte, width, height int) ([]byte, error) {
	img, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)
	return p.encodePNG(resized)
}
