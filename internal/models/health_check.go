package models

type HealthCheck struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
}
