package stability

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMultipart(t *testing.T, encoded *EncodedRequest) map[string][]byte {
	t.Helper()

	_, params, err := mime.ParseMediaType(encoded.ContentType)
	require.NoError(t, err)

	fields := map[string][]byte{}
	reader := multipart.NewReader(bytes.NewReader(encoded.Body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		fields[part.FormName()] = data
	}
	return fields
}

func TestEncodeLegacyPromptWeights(t *testing.T) {
	encoded, err := EncodeRequest(VariantLegacy, GenerationRequest{
		Prompt:         "a red barn",
		NegativePrompt: "blurry",
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", encoded.ContentType)

	var payload legacyPayload
	require.NoError(t, json.Unmarshal(encoded.Body, &payload))

	require.Len(t, payload.TextPrompts, 2)
	assert.Equal(t, "a red barn", payload.TextPrompts[0].Text)
	assert.Equal(t, float64(1), payload.TextPrompts[0].Weight)
	assert.Equal(t, "blurry", payload.TextPrompts[1].Text)
	assert.Equal(t, float64(-1), payload.TextPrompts[1].Weight)
}

func TestEncodeLegacyDefaults(t *testing.T) {
	encoded, err := EncodeRequest(VariantLegacy, GenerationRequest{Prompt: "a red barn"}, nil, nil)
	require.NoError(t, err)

	var payload legacyPayload
	require.NoError(t, json.Unmarshal(encoded.Body, &payload))

	require.Len(t, payload.TextPrompts, 1, "no negative prompt means one entry")
	assert.Equal(t, 30, payload.Steps)
	assert.Equal(t, float64(7), payload.CfgScale)
	assert.Equal(t, 1024, payload.Width)
	assert.Equal(t, 1024, payload.Height)
	assert.Equal(t, 1, payload.Samples)
}

func TestEncodeLegacyPassesParametersUncapped(t *testing.T) {
	// Range enforcement is a UI concern; out-of-range values go upstream.
	encoded, err := EncodeRequest(VariantLegacy, GenerationRequest{
		Prompt:   "a red barn",
		Steps:    500,
		CfgScale: 99,
		Width:    4096,
		Height:   32,
	}, nil, nil)
	require.NoError(t, err)

	var payload legacyPayload
	require.NoError(t, json.Unmarshal(encoded.Body, &payload))
	assert.Equal(t, 500, payload.Steps)
	assert.Equal(t, float64(99), payload.CfgScale)
	assert.Equal(t, 4096, payload.Width)
	assert.Equal(t, 32, payload.Height)
}

func TestEncodeLegacyClampsSamples(t *testing.T) {
	for in, want := range map[int]int{0: 1, -3: 1, 2: 2, 4: 4, 9: 4} {
		encoded, err := EncodeRequest(VariantLegacy, GenerationRequest{Prompt: "x", Samples: in}, nil, nil)
		require.NoError(t, err)

		var payload legacyPayload
		require.NoError(t, json.Unmarshal(encoded.Body, &payload))
		assert.Equal(t, want, payload.Samples)
	}
}

func TestEncodeRejectsEmptyPrompt(t *testing.T) {
	for _, variant := range []Variant{VariantLegacy, VariantModernEdit} {
		for _, prompt := range []string{"", "   ", "\t\n"} {
			_, err := EncodeRequest(variant, GenerationRequest{Prompt: prompt}, []byte{1}, []byte{2})

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
	}
}

func TestEncodeModernEditFields(t *testing.T) {
	encoded, err := EncodeRequest(VariantModernEdit, GenerationRequest{
		Prompt:         "replace with flowers",
		NegativePrompt: "people",
		CfgScale:       8.5,
		Steps:          40,
		Seed:           123,
		StylePreset:    "photographic",
	}, []byte("img-bytes"), []byte("mask-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "application/json", encoded.Accept)

	fields := parseMultipart(t, encoded)
	assert.Equal(t, []byte("img-bytes"), fields["image"])
	assert.Equal(t, []byte("mask-bytes"), fields["mask"])
	assert.Equal(t, "replace with flowers", string(fields["prompt"]))
	assert.Equal(t, "people", string(fields["negative_prompt"]))
	assert.Equal(t, "8.5", string(fields["cfg_scale"]))
	assert.Equal(t, "40", string(fields["steps"]))
	assert.Equal(t, "123", string(fields["seed"]))
	assert.Equal(t, "photographic", string(fields["style_preset"]))
	assert.Equal(t, "png", string(fields["output_format"]), "output_format defaults to png")
}

func TestEncodeModernEditOmitsEmptyOptionals(t *testing.T) {
	encoded, err := EncodeRequest(VariantModernEdit, GenerationRequest{
		Prompt: "replace with flowers",
	}, []byte("img"), []byte("mask"))
	require.NoError(t, err)

	fields := parseMultipart(t, encoded)
	for _, absent := range []string{"negative_prompt", "cfg_scale", "steps", "seed", "style_preset"} {
		_, present := fields[absent]
		assert.False(t, present, "%s must be omitted when empty", absent)
	}
}

func TestEncodeModernRemove(t *testing.T) {
	encoded, err := EncodeRequest(VariantModernRemove, GenerationRequest{}, []byte("img"), []byte("mask"))
	require.NoError(t, err)
	assert.Equal(t, "image/*", encoded.Accept)

	fields := parseMultipart(t, encoded)
	assert.Equal(t, []byte("img"), fields["image"])
	assert.Equal(t, []byte("mask"), fields["mask"])
	assert.Equal(t, "png", string(fields["output_format"]))
	_, present := fields["prompt"]
	assert.False(t, present, "remove variant carries no prompt")
}

func TestEncodeModernRequiresFiles(t *testing.T) {
	_, err := EncodeRequest(VariantModernEdit, GenerationRequest{Prompt: "x"}, nil, nil)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
