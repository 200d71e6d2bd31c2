package models

type GoalRecord struct {
	Provider     string  `json:"provider"`
	Title        string  `json:"title"`
	ProviderCode *string `json:"providerCode,omitempty"`
	Sequence     *int    `json:"sequence,omitempty"`
}

type ActionPlanRecord struct {
	Provider     string  `json:"provider"`
	Title        string  `json:"title"`
	ProviderCode *string `json:"providerCode,omitempty"`
	Sequence     *int    `json:"sequence,omitempty"`
}

type EligibilityResult struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
