package stability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

// Variant selects which provider API generation a request is encoded for.
// The three endpoints used to carry three hand-rolled copies of this logic;
// they now share one encoder parameterized by tag.
type Variant string

const (
	VariantLegacy       Variant = "legacy"
	VariantModernEdit   Variant = "modern-edit"
	VariantModernRemove Variant = "modern-remove"
)

// Legacy endpoint defaults, applied when the client omits a parameter.
const (
	defaultSteps    = 30
	defaultCfgScale = 7
	defaultSize     = 1024
	defaultSamples  = 1
)

// GenerationRequest is the normalized inbound request. Zero values mean
// "not provided"; the encoder fills in defaults where the provider wants
// an explicit field.
type GenerationRequest struct {
	Prompt         string
	NegativePrompt string
	Steps          int
	CfgScale       float64
	Width          int
	Height         int
	Samples        int
	Seed           int64
	OutputFormat   string
	StylePreset    string
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type legacyPayload struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Steps       int          `json:"steps"`
	Samples     int          `json:"samples"`
}

// EncodedRequest is a wire-ready outbound payload.
type EncodedRequest struct {
	Body        []byte
	ContentType string
	Accept      string
}

// EncodeRequest builds the outbound payload for the given variant.
// sourceImage and maskImage are required for the modern variants and
// ignored by the legacy one.
func EncodeRequest(variant Variant, req GenerationRequest, sourceImage, maskImage []byte) (*EncodedRequest, error) {
	if variant != VariantModernRemove && strings.TrimSpace(req.Prompt) == "" {
		return nil, &ValidationError{Reason: "prompt is required"}
	}

	switch variant {
	case VariantLegacy:
		return encodeLegacy(req)
	case VariantModernEdit, VariantModernRemove:
		return encodeModern(variant, req, sourceImage, maskImage)
	default:
		return nil, fmt.Errorf("unknown request variant %q", variant)
	}
}

// encodeLegacy produces the v1 JSON body. The positive prompt is always
// weight +1 at index 0; a negative prompt is appended with weight -1.
func encodeLegacy(req GenerationRequest) (*EncodedRequest, error) {
	prompts := []textPrompt{{Text: req.Prompt, Weight: 1}}
	if strings.TrimSpace(req.NegativePrompt) != "" {
		prompts = append(prompts, textPrompt{Text: req.NegativePrompt, Weight: -1})
	}

	payload := legacyPayload{
		TextPrompts: prompts,
		CfgScale:    req.CfgScale,
		Width:       req.Width,
		Height:      req.Height,
		Steps:       req.Steps,
		Samples:     clampSamples(req.Samples),
	}
	if payload.CfgScale == 0 {
		payload.CfgScale = defaultCfgScale
	}
	if payload.Width == 0 {
		payload.Width = defaultSize
	}
	if payload.Height == 0 {
		payload.Height = defaultSize
	}
	if payload.Steps == 0 {
		payload.Steps = defaultSteps
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &EncodedRequest{
		Body:        body,
		ContentType: "application/json",
		Accept:      "application/json",
	}, nil
}

// encodeModern produces the flat multipart form used by the v2beta edit
// endpoints. Optional fields are written only when non-empty; there is no
// weight encoding.
func encodeModern(variant Variant, req GenerationRequest, sourceImage, maskImage []byte) (*EncodedRequest, error) {
	if len(sourceImage) == 0 || len(maskImage) == 0 {
		return nil, &ValidationError{Reason: "image and mask are required"}
	}

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	if err := writeFilePart(writer, "image", "image.png", sourceImage); err != nil {
		return nil, err
	}
	if err := writeFilePart(writer, "mask", "mask.png", maskImage); err != nil {
		return nil, err
	}

	outputFormat := req.OutputFormat
	if outputFormat == "" {
		outputFormat = "png"
	}
	fields := map[string]string{"output_format": outputFormat}

	if variant == VariantModernEdit {
		fields["prompt"] = req.Prompt
		if strings.TrimSpace(req.NegativePrompt) != "" {
			fields["negative_prompt"] = req.NegativePrompt
		}
		if req.CfgScale > 0 {
			fields["cfg_scale"] = strconv.FormatFloat(req.CfgScale, 'f', -1, 64)
		}
		if req.Steps > 0 {
			fields["steps"] = strconv.Itoa(req.Steps)
		}
		if req.Seed > 0 {
			fields["seed"] = strconv.FormatInt(req.Seed, 10)
		}
		if req.StylePreset != "" {
			fields["style_preset"] = req.StylePreset
		}
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	accept := "application/json"
	if variant == VariantModernRemove {
		// The remove-style endpoint streams the image back directly.
		accept = "image/*"
	}

	return &EncodedRequest{
		Body:        buffer.Bytes(),
		ContentType: writer.FormDataContentType(),
		Accept:      accept,
	}, nil
}

func writeFilePart(writer *multipart.Writer, field, filename string, data []byte) error {
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func clampSamples(samples int) int {
	if samples < 1 {
		return defaultSamples
	}
	if samples > 4 {
		return 4
	}
	return samples
}
