package stability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/paintlab/ai-image-studio/internal/config"
)

// EditTargetSize is the resolution the provider's edit endpoints require.
// Source image and mask are both stretched to this box before encoding.
const EditTargetSize = 1024

const (
	legacyGeneratePath = "/v1/generation/%s/text-to-image"
	modernInpaintPath  = "/v2beta/stable-image/edit/inpaint"
	modernErasePath    = "/v2beta/stable-image/edit/erase"
)

// Client proxies requests to the hosted image-generation API. The
// credential is injected once at construction and never re-read.
type Client struct {
	apiKey     string
	baseURL    string
	engine     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.StabilityConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		engine:     cfg.Engine,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Configured reports whether a provider credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate runs a text-to-image call against the legacy endpoint.
func (c *Client) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	encoded, err := EncodeRequest(VariantLegacy, req, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, fmt.Sprintf(legacyGeneratePath, c.engine), encoded)
}

// Inpaint runs an edit call against the modern inpaint endpoint. The image
// and mask must already be resized and binarized by the caller.
func (c *Client) Inpaint(ctx context.Context, req GenerationRequest, sourceImage, maskImage []byte) (*GenerationResult, error) {
	encoded, err := EncodeRequest(VariantModernEdit, req, sourceImage, maskImage)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, modernInpaintPath, encoded)
}

// Erase removes the masked region via the modern erase endpoint, which
// streams the result image back directly.
func (c *Client) Erase(ctx context.Context, sourceImage, maskImage []byte) (*GenerationResult, error) {
	encoded, err := EncodeRequest(VariantModernRemove, GenerationRequest{}, sourceImage, maskImage)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, modernErasePath, encoded)
}

// do performs a single attempt: no retry, no backoff. A non-2xx response
// is propagated verbatim as an UpstreamError.
func (c *Client) do(ctx context.Context, path string, encoded *EncodedRequest) (*GenerationResult, error) {
	if !c.Configured() {
		return nil, ErrNoAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded.Body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", encoded.ContentType)
	req.Header.Set("Accept", encoded.Accept)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Provider returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	return NormalizeResponse(body, resp.Header.Get("Content-Type"))
}
