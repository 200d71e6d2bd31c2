package config

import (
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "careplan"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", "8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			OpsAPIKey:                 utils.GetEnvString("APP_OPS_API_KEY", ""),
			StorageDriver:             utils.GetEnvString("APP_STORAGE_DRIVER", constvars.StorageDriverMongo),
		},
		AHA: AppAHA{
			BaseUrl:                  utils.GetEnvString("AHA_API_BASE_URL", ""),
			ClientID:                 utils.GetEnvString("AHA_CONTINUITY_CLIENT_ID", ""),
			ClientSecret:             utils.GetEnvString("AHA_CONTINUITY_CLIENT_SECRET", ""),
			PageSize:                 utils.GetEnvInt("AHA_PAGE_SIZE", constvars.AHADefaultPageSize),
			DefaultTokenTTLInSeconds: utils.GetEnvInt("AHA_DEFAULT_TOKEN_TTL_IN_SECONDS", constvars.AHADefaultTokenTTLInSeconds),
		},
		REAN: AppREAN{
			BaseUrl:                  utils.GetEnvString("CAREPLAN_API_BASE_URL", ""),
			APIKey:                   utils.GetEnvString("CAREPLAN_API_KEY", ""),
			APIKeyTTLInSeconds:       utils.GetEnvInt("CAREPLAN_API_KEY_TTL_IN_SECONDS", constvars.REANDefaultAPIKeyTTLInSeconds),
			EnrollmentDurationInDays: utils.GetEnvInt("CAREPLAN_ENROLLMENT_DURATION_IN_DAYS", constvars.REANDefaultEnrollmentDurationInDays),
		},
		ProviderHTTP: AppProviderHTTP{
			TimeoutInSeconds:             utils.GetEnvInt("PROVIDER_HTTP_TIMEOUT_IN_SECONDS", 30),
			RateLimitPerSecond:           utils.GetEnvFloat("PROVIDER_RATE_LIMIT_PER_SECOND", 0),
			RateLimitBurst:               utils.GetEnvInt("PROVIDER_RATE_LIMIT_BURST", 1),
			TokenMirrorEnabled:           utils.GetEnvBool("PROVIDER_TOKEN_MIRROR_ENABLED", true),
			RegistrationLockTTLInSeconds: utils.GetEnvInt("PROVIDER_REGISTRATION_LOCK_TTL_IN_SECONDS", 30),
		},
		Sync: AppSync{
			CronSpec:               utils.GetEnvString("CAREPLAN_SYNC_CRON_SPEC", "@every 30m"),
			WindowDays:             utils.GetEnvInt("CAREPLAN_SYNC_WINDOW_DAYS", 7),
			Providers:              utils.GetEnvString("CAREPLAN_SYNC_PROVIDERS", "AHA,REAN"),
			LeaderLockTTLInSeconds: utils.GetEnvInt("CAREPLAN_SYNC_LEADER_LOCK_TTL_IN_SECONDS", 600),
		},
		Minio: AppMinio{
			RawContentBucketName: utils.GetEnvString("MINIO_RAW_CONTENT_BUCKET_NAME", "careplan-raw-content"),
		},
		RabbitMQ: AppRabbitMQ{
			ActivityEventQueue: utils.GetEnvString("RABBITMQ_ACTIVITY_EVENT_QUEUE", "careplan_activity_events"),
		},
	}
}
