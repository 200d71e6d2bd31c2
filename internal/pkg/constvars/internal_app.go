package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CRPLN_SVC_"
)

const (
	ResourceParticipants = "participants"
	ResourceEnrollments  = "enrollments"
	ResourceActivities   = "activities"
	ResourceAssessments  = "assessments"
	ResourceGoals        = "goals"
	ResourceActionPlans  = "actionPlans"
	ResourceToken        = "token"
)

const (
	MongoCollectionParticipants = "careplan_participants"
	MongoCollectionEnrollments  = "careplan_enrollments"
	MongoCollectionActivities   = "careplan_activities"
)

const (
	RedisKeyProviderTokenFormat     = "careplan:token:%s"
	RedisKeyRegisterParticipantLock = "careplan:participant:%s:%s:lock"
	RedisKeyActivitySyncLeaderLock  = "careplan:sync:leader"
	MinioRawContentObjectNameFormat = "%s/%s/%s_%s.json"
	RabbitMQActivityEventTypePrefix = "careplan"
)

const (
	StorageDriverMongo  = "mongo"
	StorageDriverMemory = "memory"
)
