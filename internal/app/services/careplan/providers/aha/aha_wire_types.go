package aha

import (
	"careplan-service/internal/app/services/careplan/providers/providerclient"

	"github.com/goccy/go-json"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   *int   `json:"expires_in"`
}

type participantRequest struct {
	IsActive int                    `json:"isActive"`
	Meta     map[string]interface{} `json:"meta"`
	UserID   string                 `json:"userId"`
	Name     string                 `json:"name,omitempty"`
}

type participantResponse struct {
	Data struct {
		Participant struct {
			ID providerclient.FlexibleID `json:"id"`
		} `json:"participant"`
	} `json:"data"`
}

type enrollmentMeta struct {
	Gender string `json:"gender,omitempty"`
}

type enrollmentRequest struct {
	UserID       string         `json:"userId"`
	CareplanCode string         `json:"careplanCode"`
	StartAt      string         `json:"startAt"`
	EndAt        string         `json:"endAt,omitempty"`
	Meta         enrollmentMeta `json:"meta"`
}

type enrollmentResponse struct {
	Data struct {
		Enrollment struct {
			ID providerclient.FlexibleID `json:"id"`
		} `json:"enrollment"`
	} `json:"data"`
}

type activityPayload struct {
	Code        providerclient.FlexibleID `json:"code"`
	Type        string                    `json:"type"`
	Name        *string                   `json:"name"`
	Title       *string                   `json:"title"`
	Text        *string                   `json:"text"`
	Description *string                   `json:"description"`
	URL         *string                   `json:"url"`
	ScheduledAt *string                   `json:"scheduledAt"`
	Sequence    *int                      `json:"sequence"`
	Frequency   *int                      `json:"frequency"`
	Status      *string                   `json:"status"`
	CompletedAt *string                   `json:"completedAt"`
	Comments    *string                   `json:"comments"`
}

// The provider spells the collection "activitites".
type activitiesResponse struct {
	Data struct {
		Activities []json.RawMessage `json:"activitites"`
	} `json:"data"`
}

type activityResponse struct {
	Data struct {
		Activity json.RawMessage `json:"activity"`
	} `json:"data"`
}

type assessmentResponse struct {
	Data struct {
		Assessment activityPayload `json:"assessment"`
	} `json:"data"`
}

type biometricsUpdateRequest struct {
	CompletedAt string `json:"completedAt"`
	Comments    string `json:"comments"`
	Status      string `json:"status"`
}

type goalPayload struct {
	Name     string                     `json:"name"`
	Code     *providerclient.FlexibleID `json:"code"`
	Sequence *int                       `json:"sequence"`
}

type goalsResponse struct {
	Data struct {
		Goals []goalPayload `json:"goals"`
	} `json:"data"`
}

type actionPlansResponse struct {
	Data struct {
		ActionPlans []goalPayload `json:"actionPlans"`
	} `json:"data"`
}
