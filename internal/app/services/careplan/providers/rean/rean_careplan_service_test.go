package rean

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/repository"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

type fakeREAN struct {
	t *testing.T

	requests int32

	mu                  sync.Mutex
	participantBody     participantRequest
	enrollmentBody      enrollmentRequest
	searchQuery         map[string]string
	tasks               string
	participantResponse string
	enrollmentResponse  string
}

func (f *fakeREAN) handler() http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&f.requests, 1)
			if r.Header.Get("x-api-key") != "api-key" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Message":"ok"}`))
	})

	router.Post("/participants", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		assert.NoError(f.t, json.Unmarshal(body, &f.participantBody))
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(f.participantResponse))
	})

	router.Post("/enrollments", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		assert.NoError(f.t, json.Unmarshal(body, &f.enrollmentBody))
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(f.enrollmentResponse))
	})

	router.Get("/enrollment-tasks/search", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.searchQuery = map[string]string{
			"careplanId":    r.URL.Query().Get("careplanId"),
			"participantId": r.URL.Query().Get("participantId"),
		}
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"Data":{"Items":` + f.tasks + `}}`))
	})

	return router
}

func newTestService(t *testing.T, apiKey string) (*CareplanService, *fakeREAN, *repository.MemoryStore) {
	t.Helper()
	fake := &fakeREAN{
		t:                   t,
		tasks:               `[]`,
		participantResponse: `{"Data":{"id":"rp-7"}}`,
		enrollmentResponse:  `{"Data":{"id":77}}`,
	}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	store := repository.NewMemoryStore()
	service := NewCareplanService(Config{
		BaseURL: server.URL,
		APIKey:  apiKey,
		Timeout: 5 * time.Second,
	}, providers.Dependencies{
		Participants: store.Participants(),
		Enrollments:  store.Enrollments(),
		Clock:        utils.FixedClock{Instant: testNow},
		Log:          zap.NewNop(),
	})
	return service, fake, store
}

func TestCareplanService_Init(t *testing.T) {
	service, _, _ := newTestService(t, "api-key")
	assert.True(t, service.Init(context.Background()))
	token, ok := service.TokenStatus()
	require.True(t, ok)
	assert.Equal(t, testNow.Add(time.Hour), token.ExpiresAt)

	rejected, _, _ := newTestService(t, "wrong-key")
	assert.False(t, rejected.Init(context.Background()))
}

func TestCareplanService_GetPatientEligibility(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		planCode  string
		eligible  bool
	}{
		{"adult on restricted plan", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "Cholesterol", true},
		{"minor on restricted plan", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), "Cholesterol", false},
		{"turns eighteen today", time.Date(2006, 5, 1, 8, 30, 0, 0, time.UTC), "Cholesterol", false},
		{"minor on other plan", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), "Stroke", true},
	}

	service, fake, _ := newTestService(t, "api-key")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.GetPatientEligibility(context.Background(), tt.birthDate, tt.planCode)

			require.NoError(t, err)
			assert.Equal(t, tt.eligible, result.Eligible)
			if !tt.eligible {
				assert.Equal(t, "Sorry, you are too young to register.", result.Reason)
			}
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.requests))
}

func TestCareplanService_UnsupportedCapabilities(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")
	ctx := context.Background()

	_, err := service.GetActivity(ctx, "77", "t1", nil)
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.CompleteActivity(ctx, models.ActivityCategoryMessage, "77", "t1", nil)
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.UpdateBiometricsActivity(ctx, "77", "t1", nil)
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.UpdateAssessmentActivity(ctx, "77", "t1", nil)
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.GetGoals(ctx, "77", "Nutrition")
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.GetActionPlans(ctx, "77", "Nutrition")
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
	_, err = service.ConvertToAssessmentTemplate(ctx, &models.CareplanActivity{})
	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.requests))
	assert.False(t, service.Capabilities().Supports(models.CapabilityGetGoals))
}

func TestCareplanService_RegisterPatientSplitsNameAndPhone(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")

	participant, err := service.RegisterPatient(context.Background(), &models.Participant{
		PatientUserID: "user-1",
		Name:          "John Smith",
		Gender:        "Male",
		Phone:         "+91-9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "rp-7", participant.ProviderParticipantID)
	assert.Equal(t, "user-1", fake.participantBody.ParticipantReferenceID)
	assert.Equal(t, "John", fake.participantBody.FirstName)
	assert.Equal(t, "Smith", fake.participantBody.LastName)
	assert.Equal(t, "+91", fake.participantBody.CountryCode)
	assert.Equal(t, "9876543210", fake.participantBody.Phone)
}

func TestCareplanService_EnrollAndFetch(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")
	ctx := context.Background()
	weekOffset := 2

	enrollmentID, err := service.EnrollPatientToCarePlan(ctx, &models.Enrollment{
		PatientUserID: "user-1",
		PlanCode:      "12",
		StartDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		WeekOffset:    &weekOffset,
		Participant:   &models.Participant{Name: "John Smith", Phone: "+1-5551234567"},
	})

	require.NoError(t, err)
	assert.Equal(t, "77", enrollmentID)
	assert.Equal(t, "rp-7", fake.enrollmentBody.ParticipantID)
	assert.Equal(t, 12, fake.enrollmentBody.CareplanID)
	assert.Equal(t, "2024-05-01", fake.enrollmentBody.StartDate)
	assert.Equal(t, "2024-12-27", fake.enrollmentBody.EndDate)
	assert.Equal(t, "2024-05-01", fake.enrollmentBody.EnrollmentDate)
	require.NotNil(t, fake.enrollmentBody.WeekOffset)
	assert.Equal(t, 2, *fake.enrollmentBody.WeekOffset)

	fake.tasks = `[
		{"id":"t1","ParticipantId":"rp-7","EnrollmentId":77,"Asset":{"Name":"Walk","AssetType":"Challenge","AssetCode":"W1"},"ScheduledDate":"2024-05-02T00:00:00Z","TimeSlot":"Morning"},
		{"id":"t2","Asset":{"Name":"Later"},"ScheduledDate":"2024-06-30"},
		{"id":"t3","Asset":{"Name":"Welcome"},"IsRegistrationActivity":true}
	]`

	activities, err := service.FetchActivities(ctx, enrollmentID, testNow, testNow.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.Equal(t, "12", fake.searchQuery["careplanId"])
	assert.Equal(t, "rp-7", fake.searchQuery["participantId"])
	require.Len(t, activities, 2)
	assert.Equal(t, "t1", activities[0].ProviderActionID)
	assert.Equal(t, models.ActivityCategoryChallenge, activities[0].Category)
	assert.Equal(t, "W1", *activities[0].PlanCode)
	assert.Equal(t, "Morning", *activities[0].TimeSlot)
	assert.Equal(t, "t3", activities[1].ProviderActionID)
	assert.True(t, activities[1].IsRegistrationActivity)
	assert.Nil(t, activities[1].ScheduledAt)
	assert.Equal(t, models.ActivityCategoryCustom, activities[1].Category)
}

func TestCareplanService_FetchUnknownEnrollment(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")

	_, err := service.FetchActivities(context.Background(), "missing", testNow, testNow)

	assert.True(t, exceptions.IsPreconditionError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.requests))
}

func TestCareplanService_EnrollRejectsNonNumericPlan(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")

	_, err := service.EnrollPatientToCarePlan(context.Background(), &models.Enrollment{
		PatientUserID: "user-1",
		PlanCode:      "Cholesterol",
		StartDate:     testNow,
	})

	assert.True(t, exceptions.IsPreconditionError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.requests))
}

func TestCareplanService_FetchSkipsUndecodableTask(t *testing.T) {
	service, fake, _ := newTestService(t, "api-key")
	ctx := context.Background()

	enrollmentID, err := service.EnrollPatientToCarePlan(ctx, &models.Enrollment{
		PatientUserID: "user-1",
		PlanCode:      "12",
		StartDate:     testNow,
		Participant:   &models.Participant{Name: "John Smith"},
	})
	require.NoError(t, err)

	fake.tasks = `[{"id":"t1","Asset":{"Name":"Walk"}},{"id":"t2","Asset":{"Name":42}}]`
	activities, err := service.FetchActivities(ctx, enrollmentID, testNow, testNow)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "t1", activities[0].ProviderActionID)
}

func TestCareplanService_MissingProviderIDs(t *testing.T) {
	t.Run("Participant", func(t *testing.T) {
		service, fake, store := newTestService(t, "api-key")
		fake.participantResponse = `{"Data":{}}`

		participant, err := service.RegisterPatient(context.Background(), &models.Participant{PatientUserID: "user-1", Name: "John Smith"})

		assert.Nil(t, participant)
		assert.ErrorIs(t, err, exceptions.ErrMissingProviderID)
		assert.Equal(t, 0, store.Inserts())
	})

	t.Run("Enrollment", func(t *testing.T) {
		service, fake, store := newTestService(t, "api-key")
		fake.enrollmentResponse = `{"Data":{"id":""}}`

		enrollmentID, err := service.EnrollPatientToCarePlan(context.Background(), &models.Enrollment{
			PatientUserID: "user-1",
			PlanCode:      "12",
			StartDate:     testNow,
			Participant:   &models.Participant{Name: "John Smith"},
		})

		assert.Empty(t, enrollmentID)
		assert.ErrorIs(t, err, exceptions.ErrMissingProviderID)
		assert.Equal(t, 1, store.Inserts())
	})
}
