package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"gtfield":  "must be after %s",
	"dial":     "must be formatted as <country code>-<number>",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"gt":      true,
	"gte":     true,
	"lte":     true,
	"oneof":   true,
	"gtfield": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientCareplanProviderUnavailable   = "care plan provider is currently unavailable"
	ErrClientCareplanProviderRejected      = "care plan provider rejected the request"
	ErrClientCareplanFeatureNotSupported   = "this care plan provider does not support the requested feature"
	ErrClientInvalidAPIKey                 = "invalid api key"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevReadHTTPResponse       = "failed to read HTTP response body"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevInvalidAPIKey          = "missing or invalid ops api key"

	// Care plan provider messages
	ErrDevCareplanProviderAuth             = "failed to authenticate against care plan provider %s"
	ErrDevCareplanProviderResponse         = "care plan provider %s responded with status %d on %s"
	ErrDevCareplanDecodeResponse           = "failed to decode %s response from care plan provider %s"
	ErrDevCareplanCapabilityNotSupported   = "care plan provider %s does not support capability %s"
	ErrDevCareplanUnknownProvider          = "care plan provider %s is not registered"
	ErrDevCareplanUnknownHealthPriority    = "no health priority code matches category %q"
	ErrDevCareplanPrecondition             = "care plan precondition failed"
	ErrDevCareplanEnrollmentNotFound       = "enrollment %s not found"
	ErrDevCareplanParticipantNotResolvable = "participant for patient user %s cannot be resolved"
	ErrDevCareplanMissingAssessmentDetails = "assessment completion requires scheduled date and answers"
	ErrDevCareplanMissingProviderID        = "care plan provider %s returned no id for %s"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"

	// Redis messages
	ErrDevRedisGetNoData      = "no data found in redis for key %s"
	ErrDevRedisGetData        = "failed to get data from redis"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisUnlock         = "failed to unlock redis lock"
	ErrDevRedisRefreshLockTTL = "failed to refresh redis lock expiration"

	// Messaging and storage messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"
	ErrDevMinioFailedToPutObject = "failed to put object into bucket %s"
)
