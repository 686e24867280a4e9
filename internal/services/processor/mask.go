package processor

import (
	"image"

	"github.com/disintegration/imaging"
)

// maskThreshold splits painted from unpainted pixels. The comparison is
// strict, so an intensity of exactly 128 resolves to black.
const maskThreshold = 128

// NormalizeMask converts an arbitrary-color, arbitrary-resolution mask into
// a strict binary mask at width x height: every pixel becomes either pure
// white or pure black, fully opaque, PNG encoded. An all-black mask (the
// user painted nothing) is preserved as-is; rejecting it is the caller's
// decision.
func (p *ImageProcessor) NormalizeMask(data []byte, width, height int) ([]byte, error) {
	img, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(imaging.Resize(img, width, height, imaging.Lanczos))

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if gray.NRGBAAt(x, y).R > maskThreshold {
				v = 255
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 255
		}
	}

	return p.encodePNG(out)
}

// MaskIsEmpty reports whether a normalized mask contains no white pixels,
// meaning no region was selected.
func (p *ImageProcessor) MaskIsEmpty(data []byte) (bool, error) {
	img, err := p.decode(data)
	if err != nil {
		return false, err
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r > 0 || g > 0 || b > 0 {
				return false, nil
			}
		}
	}
	return true, nil
}
