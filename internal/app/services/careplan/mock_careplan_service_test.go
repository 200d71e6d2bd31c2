package careplan

import (
	"careplan-service/internal/app/models"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCareplanService struct {
	mock.Mock
	name string
}

func (m *MockCareplanService) ProviderName() string {
	return m.name
}

func (m *MockCareplanService) Capabilities() models.Capabilities {
	return models.Capabilities{}
}

func (m *MockCareplanService) Init(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockCareplanService) RegisterPatient(ctx context.Context, details *models.Participant) (*models.Participant, error) {
	args := m.Called(ctx, details)
	participant, _ := args.Get(0).(*models.Participant)
	return participant, args.Error(1)
}

func (m *MockCareplanService) EnrollPatientToCarePlan(ctx context.Context, enrollment *models.Enrollment) (string, error) {
	args := m.Called(ctx, enrollment)
	return args.String(0), args.Error(1)
}

func (m *MockCareplanService) FetchActivities(ctx context.Context, enrollmentID string, fromDate, toDate time.Time) ([]models.CareplanActivity, error) {
	args := m.Called(ctx, enrollmentID, fromDate, toDate)
	activities, _ := args.Get(0).([]models.CareplanActivity)
	return activities, args.Error(1)
}

func (m *MockCareplanService) GetActivity(ctx context.Context, enrollmentID, providerActionID string, scheduledAt *time.Time) (*models.CareplanActivity, error) {
	args := m.Called(ctx, enrollmentID, providerActionID, scheduledAt)
	activity, _ := args.Get(0).(*models.CareplanActivity)
	return activity, args.Error(1)
}

func (m *MockCareplanService) CompleteActivity(ctx context.Context, category models.ActivityCategory, enrollmentID, providerActionID string, updates *models.ActivityUpdates) (*models.CareplanActivity, error) {
	args := m.Called(ctx, category, enrollmentID, providerActionID, updates)
	activity, _ := args.Get(0).(*models.CareplanActivity)
	return activity, args.Error(1)
}

func (m *MockCareplanService) UpdateBiometricsActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.BiometricsActivityUpdate) (*models.CareplanActivity, error) {
	args := m.Called(ctx, enrollmentID, providerActionID, update)
	activity, _ := args.Get(0).(*models.CareplanActivity)
	return activity, args.Error(1)
}

func (m *MockCareplanService) UpdateAssessmentActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.AssessmentActivityUpdate) (*models.CareplanActivity, error) {
	args := m.Called(ctx, enrollmentID, providerActionID, update)
	activity, _ := args.Get(0).(*models.CareplanActivity)
	return activity, args.Error(1)
}

func (m *MockCareplanService) GetGoals(ctx context.Context, enrollmentID, category string) ([]models.GoalRecord, error) {
	args := m.Called(ctx, enrollmentID, category)
	goals, _ := args.Get(0).([]models.GoalRecord)
	return goals, args.Error(1)
}

func (m *MockCareplanService) GetActionPlans(ctx context.Context, enrollmentID, category string) ([]models.ActionPlanRecord, error) {
	args := m.Called(ctx, enrollmentID, category)
	plans, _ := args.Get(0).([]models.ActionPlanRecord)
	return plans, args.Error(1)
}

func (m *MockCareplanService) ConvertToAssessmentTemplate(ctx context.Context, activity *models.CareplanActivity) (*models.AssessmentTemplate, error) {
	args := m.Called(ctx, activity)
	template, _ := args.Get(0).(*models.AssessmentTemplate)
	return template, args.Error(1)
}

func (m *MockCareplanService) GetPatientEligibility(ctx context.Context, birthDate time.Time, planCode string) (*models.EligibilityResult, error) {
	args := m.Called(ctx, birthDate, planCode)
	result, _ := args.Get(0).(*models.EligibilityResult)
	return result, args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ActivityEvent
	err    error
}

func (p *recordingPublisher) PublishActivityEvent(ctx context.Context, event *models.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return p.err
}

type recordingArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (a *recordingArchive) ArchiveRawContent(ctx context.Context, provider, enrollmentID, providerActionID string, capturedAt time.Time, content []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	if a.objects == nil {
		a.objects = make(map[string][]byte)
	}
	name := provider + "/" + enrollmentID + "/" + providerActionID
	a.objects[name] = content
	return name, nil
}
