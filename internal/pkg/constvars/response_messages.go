package constvars

const (
	HealthStatusOK                     = "ok"
	HealthCheckSuccessMessage          = "service is healthy"
	GetCareplanProvidersSuccessMessage = "get care plan providers successfully"
)
