package config

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	AHA          AppAHA          `mapstructure:"aha"`
	REAN         AppREAN         `mapstructure:"rean"`
	ProviderHTTP AppProviderHTTP `mapstructure:"provider_http"`
	Sync         AppSync         `mapstructure:"sync"`
	Minio        AppMinio        `mapstructure:"minio"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
}

type App struct {
	Env                       string `mapstructure:"env"`
	Port                      string `mapstructure:"port"`
	Version                   string `mapstructure:"version"`
	Address                   string `mapstructure:"address"`
	Timezone                  string `mapstructure:"timezone"`
	EndpointPrefix            string `mapstructure:"endpoint_prefix"`
	MaxRequests               int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds  int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds int    `mapstructure:"max_time_requests_per_seconds"`
	OpsAPIKey                 string `mapstructure:"ops_api_key"`
	StorageDriver             string `mapstructure:"storage_driver"`
}

type AppAHA struct {
	BaseUrl                  string `mapstructure:"base_url"`
	ClientID                 string `mapstructure:"client_id"`
	ClientSecret             string `mapstructure:"client_secret"`
	PageSize                 int    `mapstructure:"page_size"`
	DefaultTokenTTLInSeconds int    `mapstructure:"default_token_ttl_in_seconds"`
}

type AppREAN struct {
	BaseUrl                  string `mapstructure:"base_url"`
	APIKey                   string `mapstructure:"api_key"`
	APIKeyTTLInSeconds       int    `mapstructure:"api_key_ttl_in_seconds"`
	EnrollmentDurationInDays int    `mapstructure:"enrollment_duration_in_days"`
}

type AppProviderHTTP struct {
	TimeoutInSeconds             int     `mapstructure:"timeout_in_seconds"`
	RateLimitPerSecond           float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst               int     `mapstructure:"rate_limit_burst"`
	TokenMirrorEnabled           bool    `mapstructure:"token_mirror_enabled"`
	RegistrationLockTTLInSeconds int     `mapstructure:"registration_lock_ttl_in_seconds"`
}

type AppSync struct {
	// CronSpec is the cron expression for the activity sync worker (e.g. "@every 30m")
	CronSpec string `mapstructure:"cron_spec"`
	// WindowDays is how many days ahead of today activities are fetched for
	WindowDays             int    `mapstructure:"window_days"`
	Providers              string `mapstructure:"providers"`
	LeaderLockTTLInSeconds int    `mapstructure:"leader_lock_ttl_in_seconds"`
}

type AppMinio struct {
	RawContentBucketName string `mapstructure:"raw_content_bucket_name"`
}

type AppRabbitMQ struct {
	ActivityEventQueue string `mapstructure:"activity_event_queue"`
}
