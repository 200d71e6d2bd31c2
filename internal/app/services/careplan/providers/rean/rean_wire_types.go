package rean

import (
	"careplan-service/internal/app/services/careplan/providers/providerclient"

	"github.com/goccy/go-json"
)

type participantRequest struct {
	ParticipantReferenceID string `json:"ParticipantReferenceId"`
	FirstName              string `json:"FirstName"`
	LastName               string `json:"LastName"`
	Gender                 string `json:"Gender,omitempty"`
	CountryCode            string `json:"CountryCode"`
	Phone                  string `json:"Phone"`
}

type enrollmentRequest struct {
	ParticipantID  string `json:"ParticipantId"`
	CareplanID     int    `json:"CareplanId"`
	StartDate      string `json:"StartDate"`
	EndDate        string `json:"EndDate"`
	EnrollmentDate string `json:"EnrollmentDate"`
	WeekOffset     *int   `json:"WeekOffset,omitempty"`
	DayOffset      *int   `json:"DayOffset,omitempty"`
}

type createdResponse struct {
	Data struct {
		ID providerclient.FlexibleID `json:"id"`
	} `json:"Data"`
}

type taskAsset struct {
	Name        *string `json:"Name"`
	AssetCode   *string `json:"AssetCode"`
	AssetType   *string `json:"AssetType"`
	Description *string `json:"Description"`
	URL         *string `json:"Url"`
}

type enrollmentTask struct {
	ID                     providerclient.FlexibleID `json:"id"`
	ParticipantID          providerclient.FlexibleID `json:"ParticipantId"`
	EnrollmentID           providerclient.FlexibleID `json:"EnrollmentId"`
	Asset                  *taskAsset                `json:"Asset"`
	ScheduledDate          *string                   `json:"ScheduledDate"`
	TimeSlot               *string                   `json:"TimeSlot"`
	Status                 *string                   `json:"Status"`
	IsRegistrationActivity bool                      `json:"IsRegistrationActivity"`
}

type enrollmentTasksResponse struct {
	Data struct {
		Items []json.RawMessage `json:"Items"`
	} `json:"Data"`
}
