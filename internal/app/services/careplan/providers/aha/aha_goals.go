package aha

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/mapper"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/providerclient"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

func (s *CareplanService) GetGoals(ctx context.Context, enrollmentID, category string) ([]models.GoalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.GetGoals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingCategoryKey, category),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityGetGoals); err != nil {
		return nil, err
	}
	request, err := s.healthPriorityRequest(enrollmentID, constvars.ResourceGoals, category)
	if err != nil {
		return nil, err
	}

	var response goalsResponse
	if err := s.do(ctx, request, &response); err != nil {
		return nil, err
	}

	goals := make([]models.GoalRecord, 0, len(response.Data.Goals))
	for _, goal := range response.Data.Goals {
		goals = append(goals, models.GoalRecord{
			Provider:     s.ProviderName(),
			Title:        goal.Name,
			ProviderCode: codeOf(goal.Code),
			Sequence:     goal.Sequence,
		})
	}

	s.log.Info("ahaCareplanService.GetGoals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingGoalCountKey, len(goals)),
	)
	return goals, nil
}

func (s *CareplanService) GetActionPlans(ctx context.Context, enrollmentID, category string) ([]models.ActionPlanRecord, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.GetActionPlans called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingCategoryKey, category),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityGetActionPlans); err != nil {
		return nil, err
	}
	request, err := s.healthPriorityRequest(enrollmentID, constvars.ResourceActionPlans, category)
	if err != nil {
		return nil, err
	}

	var response actionPlansResponse
	if err := s.do(ctx, request, &response); err != nil {
		return nil, err
	}

	actionPlans := make([]models.ActionPlanRecord, 0, len(response.Data.ActionPlans))
	for _, actionPlan := range response.Data.ActionPlans {
		actionPlans = append(actionPlans, models.ActionPlanRecord{
			Provider:     s.ProviderName(),
			Title:        actionPlan.Name,
			ProviderCode: codeOf(actionPlan.Code),
			Sequence:     actionPlan.Sequence,
		})
	}

	s.log.Info("ahaCareplanService.GetActionPlans succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingActionPlanCountKey, len(actionPlans)),
	)
	return actionPlans, nil
}

// healthPriorityRequest resolves category before anything is sent; an unknown
// category is an error rather than an empty filter.
func (s *CareplanService) healthPriorityRequest(enrollmentID, resource, category string) (providerclient.Request, error) {
	categoryCode, err := mapper.ResolveHealthPriorityCode(category)
	if err != nil {
		return providerclient.Request{}, err
	}

	query := url.Values{}
	query.Set("categories", categoryCode)
	query.Set("pageSize", strconv.Itoa(s.cfg.PageSize))

	return providerclient.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/%s/%s/%s/%s", constvars.ResourceEnrollments, url.PathEscape(enrollmentID), resource, constvars.AHAGoalActivityCode),
		Resource: resource,
		Query:    query,
	}, nil
}

func codeOf(code *providerclient.FlexibleID) *string {
	if code == nil || *code == "" {
		return nil
	}
	value := code.String()
	return &value
}
