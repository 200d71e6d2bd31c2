package constvars

const (
	CareplanProviderAHA  = "AHA"
	CareplanProviderREAN = "REAN"
)

// Date-only layout every provider expects for date parameters.
const (
	ProviderDateLayout = "2006-01-02"
)

const (
	ExternalStatusPending   = "PENDING"
	ExternalStatusCompleted = "COMPLETED"
)

const (
	AHAGrantTypeClientCredentials = "client_credentials"
	AHAGoalActivityCode           = "9999"
	AHADefaultPageSize            = 500
	AHADefaultTokenTTLInSeconds   = 3600
)

const (
	REANDefaultEnrollmentDurationInDays = 240
	REANDefaultAPIKeyTTLInSeconds       = 3600
	REANRestrictedPlanCode              = "Cholesterol"
	REANMinimumEligibleAge              = 18
	REANIneligibleTooYoungReason        = "Sorry, you are too young to register."
	REANEnrollmentTasksSearchPath       = "/enrollment-tasks/search"
)

const (
	ActivityLanguageEnglish = "English"
	AssessmentOkValue       = "Ok"
)

const (
	ActivityEventSynced    = "activity.synced"
	ActivityEventCompleted = "activity.completed"
)
