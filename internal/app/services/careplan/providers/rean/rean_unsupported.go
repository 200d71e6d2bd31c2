package rean

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/providers"
	"context"
	"time"
)

func (s *CareplanService) unsupported(capability models.Capability) error {
	return providers.RequireCapability(s.ProviderName(), s.capabilities, capability)
}

func (s *CareplanService) GetActivity(ctx context.Context, enrollmentID, providerActionID string, scheduledAt *time.Time) (*models.CareplanActivity, error) {
	return nil, s.unsupported(models.CapabilityGetActivity)
}

func (s *CareplanService) CompleteActivity(ctx context.Context, category models.ActivityCategory, enrollmentID, providerActionID string, updates *models.ActivityUpdates) (*models.CareplanActivity, error) {
	return nil, s.unsupported(models.CapabilityCompleteActivity)
}

func (s *CareplanService) UpdateBiometricsActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.BiometricsActivityUpdate) (*models.CareplanActivity, error) {
	return nil, s.unsupported(models.CapabilityUpdateBiometricsActivity)
}

func (s *CareplanService) UpdateAssessmentActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.AssessmentActivityUpdate) (*models.CareplanActivity, error) {
	return nil, s.unsupported(models.CapabilityUpdateAssessmentActivity)
}

func (s *CareplanService) GetGoals(ctx context.Context, enrollmentID, category string) ([]models.GoalRecord, error) {
	return nil, s.unsupported(models.CapabilityGetGoals)
}

func (s *CareplanService) GetActionPlans(ctx context.Context, enrollmentID, category string) ([]models.ActionPlanRecord, error) {
	return nil, s.unsupported(models.CapabilityGetActionPlans)
}

func (s *CareplanService) ConvertToAssessmentTemplate(ctx context.Context, activity *models.CareplanActivity) (*models.AssessmentTemplate, error) {
	return nil, s.unsupported(models.CapabilityConvertToAssessmentTemplate)
}
