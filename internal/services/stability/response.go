package stability

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// GeneratedImage is one provider result: raw base64 payload plus the seed
// the provider reports for it.
type GeneratedImage struct {
	Base64 string
	Seed   int64
}

// GenerationResult is the normalized provider response, order preserved.
type GenerationResult struct {
	Images []GeneratedImage
}

type legacyArtifact struct {
	Base64 string `json:"base64"`
	Seed   int64  `json:"seed"`
}

type modernImage struct {
	Image string `json:"image"`
	Seed  int64  `json:"seed"`
}

// responseProbe distinguishes the three JSON shapes the provider is known
// to return. RawMessage fields keep key presence visible, so an empty
// artifacts array is still recognized as the legacy shape.
type responseProbe struct {
	Artifacts json.RawMessage `json:"artifacts"`
	Images    json.RawMessage `json:"images"`
	Image     string          `json:"image"`
	Seed      int64           `json:"seed"`
}

// NormalizeResponse maps any recognized upstream body into one result
// shape. Recognized shapes:
//
//  1. {"artifacts": [{"base64": ..., "seed": ...}, ...]}  (legacy)
//  2. {"image": ..., "seed": ...}                         (modern, single)
//  3. {"images": [{"image": ..., "seed": ...}, ...]}      (modern, batch)
//  4. raw image bytes with an image/* content type        (remove-style)
//
// The raw-binary shape carries no seed, so a synthetic one is filled in:
// the Unix-millisecond timestamp at normalization time. Anything else
// fails with ErrUnrecognizedResponse.
func NormalizeResponse(body []byte, contentType string) (*GenerationResult, error) {
	if strings.HasPrefix(contentType, "image/") {
		return &GenerationResult{
			Images: []GeneratedImage{{
				Base64: base64.StdEncoding.EncodeToString(body),
				Seed:   time.Now().UnixMilli(),
			}},
		}, nil
	}

	var probe responseProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedResponse, err)
	}

	switch {
	case probe.Artifacts != nil:
		var artifacts []legacyArtifact
		if err := json.Unmarshal(probe.Artifacts, &artifacts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedResponse, err)
		}
		result := &GenerationResult{Images: make([]GeneratedImage, len(artifacts))}
		for i, artifact := range artifacts {
			result.Images[i] = GeneratedImage{Base64: artifact.Base64, Seed: artifact.Seed}
		}
		return result, nil

	case probe.Images != nil:
		var images []modernImage
		if err := json.Unmarshal(probe.Images, &images); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedResponse, err)
		}
		result := &GenerationResult{Images: make([]GeneratedImage, len(images))}
		for i, img := range images {
			result.Images[i] = GeneratedImage{Base64: img.Image, Seed: img.Seed}
		}
		return result, nil

	case probe.Image != "":
		return &GenerationResult{
			Images: []GeneratedImage{{Base64: probe.Image, Seed: probe.Seed}},
		}, nil
	}

	return nil, fmt.Errorf("%w: no artifacts, image or images field", ErrUnrecognizedResponse)
}
