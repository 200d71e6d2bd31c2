package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingOperationKey      = "operation"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingStatusCodeKey     = "status_code"
	LoggingResponseBodyKey   = "response_body"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingQueueNameKey      = "queue_name"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"

	LoggingProviderKey            = "provider"
	LoggingPatientUserIDKey       = "patient_user_id"
	LoggingParticipantIDKey       = "participant_id"
	LoggingEnrollmentIDKey        = "enrollment_id"
	LoggingProviderActionIDKey    = "provider_action_id"
	LoggingPlanCodeKey            = "plan_code"
	LoggingCategoryKey            = "category"
	LoggingActivityCountKey       = "activity_count"
	LoggingActivityIndexKey       = "activity_index"
	LoggingGoalCountKey           = "goal_count"
	LoggingActionPlanCountKey     = "action_plan_count"
	LoggingTokenExpiresAtKey      = "token_expires_at"
	LoggingFromDateKey            = "from_date"
	LoggingToDateKey              = "to_date"
	LoggingAssessmentItemCountKey = "assessment_item_count"
	LoggingEnrollmentCountKey     = "enrollment_count"
	LoggingEventTypeKey           = "event_type"
)
