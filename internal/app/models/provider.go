package models

import "time"

type ProviderIdentity struct {
	ProviderName string `json:"providerName"`
}

type AuthToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpiredAt reports whether the token is no longer usable at now.
func (t AuthToken) IsExpiredAt(now time.Time) bool {
	return t.Value == "" || !now.Before(t.ExpiresAt)
}

type Capability string

const (
	CapabilityInit                        Capability = "Init"
	CapabilityRegisterPatient             Capability = "RegisterPatient"
	CapabilityEnrollPatientToCarePlan     Capability = "EnrollPatientToCarePlan"
	CapabilityFetchActivities             Capability = "FetchActivities"
	CapabilityGetActivity                 Capability = "GetActivity"
	CapabilityCompleteActivity            Capability = "CompleteActivity"
	CapabilityUpdateBiometricsActivity    Capability = "UpdateBiometricsActivity"
	CapabilityUpdateAssessmentActivity    Capability = "UpdateAssessmentActivity"
	CapabilityGetGoals                    Capability = "GetGoals"
	CapabilityGetActionPlans              Capability = "GetActionPlans"
	CapabilityConvertToAssessmentTemplate Capability = "ConvertToAssessmentTemplate"
	CapabilityGetPatientEligibility       Capability = "GetPatientEligibility"
)

// Capabilities is the versioned set of operations an adapter implements.
type Capabilities struct {
	Version   string
	supported []Capability
}

func NewCapabilities(version string, supported ...Capability) Capabilities {
	return Capabilities{
		Version:   version,
		supported: supported,
	}
}

func (c Capabilities) Supports(capability Capability) bool {
	for _, supported := range c.supported {
		if supported == capability {
			return true
		}
	}
	return false
}

func (c Capabilities) List() []string {
	names := make([]string, 0, len(c.supported))
	for _, capability := range c.supported {
		names = append(names, string(capability))
	}
	return names
}
