package models

import "time"

// Participant is a patient as known by one care plan provider.
type Participant struct {
	ID                    string     `json:"id" bson:"_id,omitempty"`
	PatientUserID         string     `json:"patientUserId" bson:"patientUserId" validate:"required"`
	Provider              string     `json:"provider" bson:"provider"`
	ProviderParticipantID string     `json:"providerParticipantId" bson:"providerParticipantId"`
	Name                  string     `json:"name" bson:"name" validate:"required"`
	Gender                string     `json:"gender,omitempty" bson:"gender,omitempty"`
	Age                   int        `json:"age,omitempty" bson:"age,omitempty" validate:"gte=0"`
	Phone                 string     `json:"phone,omitempty" bson:"phone,omitempty"`
	DOB                   *time.Time `json:"dob,omitempty" bson:"dob,omitempty"`
	HeightInInches        *float64   `json:"heightInInches,omitempty" bson:"heightInInches,omitempty"`
	WeightInLbs           *float64   `json:"weightInLbs,omitempty" bson:"weightInLbs,omitempty"`
	MaritalStatus         *string    `json:"maritalStatus,omitempty" bson:"maritalStatus,omitempty"`
	ZipCode               *string    `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	TimeModel             `bson:",inline"`
}
