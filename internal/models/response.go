package models

// GeneratedImage is one client-facing result. Base64 carries a data-URL
// prefixed PNG for generate/inpaint and raw base64 for erase.
type GeneratedImage struct {
	Base64 string `json:"base64"`
	Seed   int64  `json:"seed"`
}

type GenerateResponse struct {
	Success bool             `json:"success"`
	Images  []GeneratedImage `json:"images"`
}

type EraseResponse struct {
	Success bool           `json:"success"`
	Image   GeneratedImage `json:"image"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
