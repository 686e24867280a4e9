package utils

import "strings"

// pngDataURLPrefix is what the browser canvas expects in front of
// generated image payloads.
const pngDataURLPrefix = "data:image/png;base64,"

// DataURL wraps a raw base64 PNG payload in a data URL. Already-prefixed
// input is returned unchanged.
func DataURL(base64Data string) string {
	if strings.HasPrefix(base64Data, "data:image") {
		return base64Data
	}
	return pngDataURLPrefix + base64Data
}

// StripDataURL removes a data-URL prefix if present, leaving the raw
// base64 payload.
func StripDataURL(value string) string {
	if strings.HasPrefix(value, "data:image") {
		if idx := strings.Index(value, ","); idx >= 0 {
			return value[idx+1:]
		}
	}
	return value
}

// IsValidImageType checks if content type is a valid image type
func IsValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	ct := strings.ToLower(contentType)
	for _, validType := range validTypes {
		if strings.Contains(ct, validType) {
			return true
		}
	}
	return false
}
