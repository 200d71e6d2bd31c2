package models

import "time"

type Enrollment struct {
	ID                   string       `json:"id" bson:"_id,omitempty"`
	PatientUserID        string       `json:"patientUserId" bson:"patientUserId" validate:"required"`
	ParticipantID        string       `json:"participantId" bson:"participantId"`
	Provider             string       `json:"provider" bson:"provider"`
	PlanCode             string       `json:"planCode" bson:"planCode" validate:"required"`
	PlanName             string       `json:"planName" bson:"planName"`
	StartDate            time.Time    `json:"startDate" bson:"startDate" validate:"required"`
	EndDate              time.Time    `json:"endDate" bson:"endDate"`
	ProviderEnrollmentID string       `json:"providerEnrollmentId" bson:"providerEnrollmentId"`
	WeekOffset           *int         `json:"weekOffset,omitempty" bson:"weekOffset,omitempty"`
	DayOffset            *int         `json:"dayOffset,omitempty" bson:"dayOffset,omitempty"`
	Gender               string       `json:"gender,omitempty" bson:"gender,omitempty"`
	Participant          *Participant `json:"participant,omitempty" bson:"-" validate:"-"`
	TimeModel            `bson:",inline"`
}

// IsActiveAt reports whether at falls inside the enrollment window.
// An enrollment without an end date stays active.
func (e Enrollment) IsActiveAt(at time.Time) bool {
	if at.Before(e.StartDate) {
		return false
	}
	return e.EndDate.IsZero() || !at.After(e.EndDate)
}
