package aha

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/mapper"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/providerclient"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type assessmentContent struct {
	Code        providerclient.FlexibleID `json:"code"`
	Name        *string                   `json:"name"`
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Text        *string                   `json:"text"`
	Items       []assessmentItem          `json:"items"`
}

type assessmentItem struct {
	Code        providerclient.FlexibleID `json:"code"`
	ID          providerclient.FlexibleID `json:"id"`
	Type        string                    `json:"type"`
	Title       string                    `json:"title"`
	Description *string                   `json:"description"`
	Options     []assessmentItemOption    `json:"options"`
}

type assessmentItemOption struct {
	Text     *string `json:"text"`
	Display  *string `json:"display"`
	Sequence *int    `json:"sequence"`
}

// Item types the provider uses, keyed in lower case.
var queryResponseTypeByItemType = map[string]models.QueryResponseType{
	"choice":         models.QueryResponseTypeSingleChoiceSelection,
	"single choice":  models.QueryResponseTypeSingleChoiceSelection,
	"singlechoice":   models.QueryResponseTypeSingleChoiceSelection,
	"multi choice":   models.QueryResponseTypeMultiChoiceSelection,
	"multichoice":    models.QueryResponseTypeMultiChoiceSelection,
	"multiplechoice": models.QueryResponseTypeMultiChoiceSelection,
	"text":           models.QueryResponseTypeText,
	"string":         models.QueryResponseTypeText,
	"integer":        models.QueryResponseTypeInteger,
	"number":         models.QueryResponseTypeFloat,
	"float":          models.QueryResponseTypeFloat,
	"decimal":        models.QueryResponseTypeFloat,
	"boolean":        models.QueryResponseTypeBoolean,
	"ok":             models.QueryResponseTypeOk,
	"biometrics":     models.QueryResponseTypeBiometrics,
}

var messageItemTypes = map[string]struct{}{
	"message": {},
	"display": {},
	"info":    {},
}

func (s *CareplanService) ConvertToAssessmentTemplate(ctx context.Context, activity *models.CareplanActivity) (*models.AssessmentTemplate, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.ConvertToAssessmentTemplate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityConvertToAssessmentTemplate); err != nil {
		return nil, err
	}
	if activity == nil || len(activity.RawContent) == 0 {
		return nil, exceptions.ErrPrecondition(errors.New("activity raw content is required"))
	}

	var content assessmentContent
	if err := json.Unmarshal(activity.RawContent, &content); err != nil {
		return nil, exceptions.ErrCareplanDecodeResponse(err, constvars.ResourceAssessments, s.ProviderName())
	}
	template := convertAssessment(s.ProviderName(), activity, content)

	s.log.Info("ahaCareplanService.ConvertToAssessmentTemplate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderActionIDKey, template.ProviderAssessmentCode),
		zap.Int(constvars.LoggingAssessmentItemCountKey, len(template.Nodes)),
	)
	return template, nil
}

func convertAssessment(provider string, activity *models.CareplanActivity, content assessmentContent) *models.AssessmentTemplate {
	code := content.Code.String()
	if code == "" {
		code = activity.ProviderActionID
	}
	title := mapper.ActivityTitle(deref(content.Name), deref(content.Title))
	if title == "" {
		title = activity.Title
	}
	description := strings.TrimSuffix(mapper.ComposeDescription(deref(content.Text), deref(content.Description)), "\n")

	template := &models.AssessmentTemplate{
		Title:                  title,
		Description:            description,
		Provider:               provider,
		ProviderAssessmentCode: code,
		Nodes:                  make([]models.AssessmentTemplateNode, 0, len(content.Items)),
	}
	for _, item := range content.Items {
		template.Nodes = append(template.Nodes, convertItem(item))
	}
	return template
}

func convertItem(item assessmentItem) models.AssessmentTemplateNode {
	id := item.Code.String()
	if id == "" {
		id = item.ID.String()
	}
	node := models.AssessmentTemplateNode{
		ProviderGivenID: id,
		NodeType:        models.AssessmentNodeTypeQuestion,
		Title:           item.Title,
		Description:     deref(item.Description),
	}

	itemType := strings.ToLower(strings.TrimSpace(item.Type))
	if _, ok := messageItemTypes[itemType]; ok {
		node.NodeType = models.AssessmentNodeTypeMessage
		return node
	}

	responseType, ok := queryResponseTypeByItemType[itemType]
	if !ok {
		responseType = models.QueryResponseTypeText
		if len(item.Options) > 0 {
			responseType = models.QueryResponseTypeSingleChoiceSelection
		}
	}
	node.QueryResponseType = responseType

	for i, option := range item.Options {
		text := deref(option.Text)
		if text == "" {
			text = deref(option.Display)
		}
		sequence := i + 1
		if option.Sequence != nil {
			sequence = *option.Sequence
		}
		node.Options = append(node.Options, models.AssessmentOption{Text: text, Sequence: sequence})
	}
	return node
}
