package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type ActivityCategory string

const (
	ActivityCategoryAssessment   ActivityCategory = "Assessment"
	ActivityCategoryEducational  ActivityCategory = "Educational"
	ActivityCategoryMessage      ActivityCategory = "Message"
	ActivityCategoryGoal         ActivityCategory = "Goal"
	ActivityCategoryChallenge    ActivityCategory = "Challenge"
	ActivityCategoryConsultation ActivityCategory = "Consultation"
	ActivityCategoryCustom       ActivityCategory = "Custom"
)

type ProgressStatus string

const (
	ProgressStatusPending   ProgressStatus = "Pending"
	ProgressStatusCompleted ProgressStatus = "Completed"
	ProgressStatusUnknown   ProgressStatus = "Unknown"
)

type CareplanActivity struct {
	ID                     string           `json:"id,omitempty" bson:"_id,omitempty"`
	EnrollmentID           string           `json:"enrollmentId" bson:"enrollmentId"`
	Provider               string           `json:"provider" bson:"provider"`
	Type                   string           `json:"type" bson:"type"`
	Category               ActivityCategory `json:"category" bson:"category"`
	ProviderActionID       string           `json:"providerActionId" bson:"providerActionId"`
	Title                  string           `json:"title" bson:"title"`
	Description            string           `json:"description" bson:"description"`
	URL                    *string          `json:"url,omitempty" bson:"url,omitempty"`
	Language               string           `json:"language" bson:"language"`
	ScheduledAt            *time.Time       `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty"`
	Sequence               int              `json:"sequence" bson:"sequence"`
	Frequency              int              `json:"frequency" bson:"frequency"`
	Status                 ProgressStatus   `json:"status" bson:"status"`
	CompletedAt            *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Comments               *string          `json:"comments,omitempty" bson:"comments,omitempty"`
	RawContent             json.RawMessage  `json:"rawContent,omitempty" bson:"rawContent,omitempty"`
	PlanCode               *string          `json:"planCode,omitempty" bson:"planCode,omitempty"`
	ParticipantID          *string          `json:"participantId,omitempty" bson:"participantId,omitempty"`
	TimeSlot               *string          `json:"timeSlot,omitempty" bson:"timeSlot,omitempty"`
	IsRegistrationActivity bool             `json:"isRegistrationActivity" bson:"isRegistrationActivity"`
	TimeModel              `bson:",inline"`
}

// ActivityUpdates carries what a completion needs besides the activity identity.
type ActivityUpdates struct {
	ScheduledAt *time.Time
	Sequence    int
	CompletedAt *time.Time
	Answers     []AssessmentAnswer
}

type BiometricsActivityUpdate struct {
	CompletedAt time.Time `json:"completedAt" validate:"required"`
	Comments    string    `json:"comments"`
	Status      string    `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

// AssessmentActivityUpdate records answers for one scheduled occurrence of an
// assessment with a caller chosen status.
type AssessmentActivityUpdate struct {
	ScheduledAt time.Time          `json:"scheduledAt" validate:"required"`
	Sequence    int                `json:"sequence"`
	CompletedAt time.Time          `json:"completedAt" validate:"required"`
	Status      string             `json:"status" validate:"required,oneof=PENDING COMPLETED"`
	Answers     []AssessmentAnswer `json:"answers"`
}

type ActivityEvent struct {
	EventType        string           `json:"eventType"`
	Provider         string           `json:"provider"`
	EnrollmentID     string           `json:"enrollmentId"`
	ProviderActionID string           `json:"providerActionId"`
	Category         ActivityCategory `json:"category"`
	Status           ProgressStatus   `json:"status"`
	ScheduledAt      *time.Time       `json:"scheduledAt,omitempty"`
	OccurredAt       time.Time        `json:"occurredAt"`
	RequestID        string           `json:"requestId,omitempty"`
}

// Key identifies one scheduled occurrence of a provider activity.
func (a CareplanActivity) Key() string {
	scheduled := ""
	if a.ScheduledAt != nil {
		scheduled = a.ScheduledAt.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%s:%s:%s:%d", a.Provider, a.EnrollmentID, a.ProviderActionID, scheduled, a.Sequence)
}
