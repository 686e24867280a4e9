package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, png.Encode(buffer, img))
	return buffer.Bytes()
}

func uniformImage(t *testing.T, width, height int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return encodeTestPNG(t, img)
}

func decodeTestPNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestNormalizeMaskBinarizes(t *testing.T) {
	p := NewImageProcessor()

	// Horizontal gradient spanning every intensity.
	src := image.NewNRGBA(image.Rect(0, 0, 256, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 256; x++ {
			v := uint8(x)
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out, err := p.NormalizeMask(encodeTestPNG(t, src), 256, 64)
	require.NoError(t, err)

	img := decodeTestPNG(t, out)
	bounds := img.Bounds()
	assert.Equal(t, 256, bounds.Dx())
	assert.Equal(t, 64, bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			assert.Contains(t, []uint8{0, 255}, c.R)
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, c.R, c.B)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestNormalizeMaskThresholdIsStrict(t *testing.T) {
	p := NewImageProcessor()

	cases := []struct {
		name  string
		value uint8
		want  uint8
	}{
		{"exactly 128 resolves to black", 128, 0},
		{"129 resolves to white", 129, 255},
		{"127 resolves to black", 127, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := uniformImage(t, 8, 8, color.NRGBA{R: tc.value, G: tc.value, B: tc.value, A: 255})

			out, err := p.NormalizeMask(in, 8, 8)
			require.NoError(t, err)

			img := decodeTestPNG(t, out)
			c := color.NRGBAModel.Convert(img.At(4, 4)).(color.NRGBA)
			assert.Equal(t, tc.want, c.R)
		})
	}
}

func TestNormalizeMaskPreservesAllBlack(t *testing.T) {
	p := NewImageProcessor()

	in := uniformImage(t, 256, 256, color.NRGBA{A: 255})

	out, err := p.NormalizeMask(in, 1024, 1024)
	require.NoError(t, err)

	img := decodeTestPNG(t, out)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())

	empty, err := p.MaskIsEmpty(out)
	require.NoError(t, err)
	assert.True(t, empty, "all-black mask must stay all-black")
}

func TestNormalizeMaskIdempotent(t *testing.T) {
	p := NewImageProcessor()

	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(0)
			if x >= 32 {
				v = 255
			}
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	once, err := p.NormalizeMask(encodeTestPNG(t, src), 64, 64)
	require.NoError(t, err)
	twice, err := p.NormalizeMask(once, 64, 64)
	require.NoError(t, err)

	first := decodeTestPNG(t, once)
	second := decodeTestPNG(t, twice)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			assert.Equal(t, first.At(x, y), second.At(x, y))
		}
	}
}

func TestMaskIsEmptyDetectsPaintedRegion(t *testing.T) {
	p := NewImageProcessor()

	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	src.SetNRGBA(8, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	empty, err := p.MaskIsEmpty(encodeTestPNG(t, src))
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestNormalizeMaskRejectsGarbage(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.NormalizeMask([]byte("not an image"), 64, 64)
	assert.ErrorIs(t, err, ErrDecode)
}
