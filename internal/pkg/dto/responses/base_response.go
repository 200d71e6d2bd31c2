package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type CareplanProviderStatus struct {
	Provider     string   `json:"provider"`
	Capabilities []string `json:"capabilities"`
	Version      string   `json:"version"`
	TokenValid   bool     `json:"token_valid"`
	ExpiresAt    string   `json:"token_expires_at,omitempty"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
