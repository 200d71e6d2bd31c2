package models

type QueryResponseType string

const (
	QueryResponseTypeSingleChoiceSelection QueryResponseType = "Single Choice Selection"
	QueryResponseTypeMultiChoiceSelection  QueryResponseType = "Multi Choice Selection"
	QueryResponseTypeText                  QueryResponseType = "Text"
	QueryResponseTypeInteger               QueryResponseType = "Integer"
	QueryResponseTypeFloat                 QueryResponseType = "Float"
	QueryResponseTypeBoolean               QueryResponseType = "Boolean"
	QueryResponseTypeOk                    QueryResponseType = "Ok"
	QueryResponseTypeBiometrics            QueryResponseType = "Biometrics"
)

type BiometricsType string

const (
	BiometricsTypeBloodGlucose          BiometricsType = "Blood glucose"
	BiometricsTypeBloodOxygenSaturation BiometricsType = "Blood oxygen saturation"
	BiometricsTypeBloodPressure         BiometricsType = "Blood pressure"
	BiometricsTypeBodyWeight            BiometricsType = "Body weight"
	BiometricsTypeBodyTemperature       BiometricsType = "Body temperature"
	BiometricsTypeBodyHeight            BiometricsType = "Body height"
	BiometricsTypePulse                 BiometricsType = "Pulse"
)

type AssessmentNode struct {
	ProviderGivenID string `json:"providerGivenId"`
	Title           string `json:"title,omitempty"`
}

type AssessmentOption struct {
	Text     string `json:"text"`
	Sequence int    `json:"sequence"`
}

// AssessmentAnswer is one recorded response. Only the value field that
// matches ResponseType is read.
type AssessmentAnswer struct {
	ResponseType QueryResponseType  `json:"responseType"`
	Node         AssessmentNode     `json:"node"`
	Option       *AssessmentOption  `json:"option,omitempty"`
	Options      []AssessmentOption `json:"options,omitempty"`
	TextValue    *string            `json:"textValue,omitempty"`
	IntegerValue *int64             `json:"integerValue,omitempty"`
	FloatValue   *float64           `json:"floatValue,omitempty"`
	BooleanValue *bool              `json:"booleanValue,omitempty"`
	Biometrics   []BiometricsEntry  `json:"biometrics,omitempty"`
}

type BiometricsEntry struct {
	BiometricsType        BiometricsType `json:"biometricsType"`
	BloodGlucose          *float64       `json:"bloodGlucose,omitempty"`
	BloodOxygenSaturation *float64       `json:"bloodOxygenSaturation,omitempty"`
	Systolic              *float64       `json:"systolic,omitempty"`
	Diastolic             *float64       `json:"diastolic,omitempty"`
	BodyWeight            *float64       `json:"bodyWeight,omitempty"`
	BodyTemperature       *float64       `json:"bodyTemperature,omitempty"`
	BodyHeight            *float64       `json:"bodyHeight,omitempty"`
	Pulse                 *float64       `json:"pulse,omitempty"`
}

type AssessmentSubmission struct {
	Items []AssessmentSubmissionItem `json:"items"`
}

type AssessmentSubmissionItem struct {
	ID     string                      `json:"id"`
	Values []AssessmentSubmissionValue `json:"values"`
}

type AssessmentSubmissionValue struct {
	Value string `json:"value"`
}

// ActivityCompletionUpdate is the body sent when marking an activity completed.
type ActivityCompletionUpdate struct {
	CompletedAt string                     `json:"completedAt"`
	Status      string                     `json:"status"`
	Items       []AssessmentSubmissionItem `json:"items,omitempty"`
}

type AssessmentTemplate struct {
	Title                  string                   `json:"title"`
	Description            string                   `json:"description"`
	Provider               string                   `json:"provider"`
	ProviderAssessmentCode string                   `json:"providerAssessmentCode"`
	Nodes                  []AssessmentTemplateNode `json:"nodes"`
}

type AssessmentTemplateNode struct {
	ProviderGivenID   string             `json:"providerGivenId"`
	NodeType          string             `json:"nodeType"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	QueryResponseType QueryResponseType  `json:"queryResponseType"`
	Options           []AssessmentOption `json:"options,omitempty"`
}

const (
	AssessmentNodeTypeQuestion = "Question"
	AssessmentNodeTypeMessage  = "Message"
)
