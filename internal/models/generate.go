package models

// GenerateRequest is the JSON body accepted by POST /generate. Field names
// follow the browser client (camelCase). Numeric parameters are forwarded
// to the provider as given; only samples is clamped to the 1-4 range the
// response contract promises.
type GenerateRequest struct {
	Prompt         string  `json:"prompt" binding:"required"`
	NegativePrompt string  `json:"negativePrompt"`
	Steps          int     `json:"steps"`
	CfgScale       float64 `json:"cfgScale"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Samples        int     `json:"samples"`
}
