package aha

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/repository"
	"careplan-service/internal/app/services/careplan/tokencache"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

type fakeAHA struct {
	t *testing.T

	mu                 sync.Mutex
	tokenCalls         int
	participantCalls   int
	goalCalls          int
	tokenStatus        int
	tokenBody          string
	participantBody    string
	enrollmentResponse string
	activities         string
	enrollmentBody     map[string]interface{}
	assessmentBody     models.ActivityCompletionUpdate
	assessmentQuery    url.Values
	activityQuery      url.Values
	activityPatchBody  map[string]interface{}
	activityPatchQuery url.Values
	rejectActivities   bool
}

func newFakeAHA(t *testing.T) *fakeAHA {
	return &fakeAHA{
		t:                  t,
		tokenStatus:        http.StatusOK,
		tokenBody:          `{"access_token":"tok-1","expires_in":3600}`,
		participantBody:    `{"data":{"participant":{"id":"part-1"}}}`,
		enrollmentResponse: `{"data":{"enrollment":{"id":9001}}}`,
		activities:         `[]`,
	}
}

func (f *fakeAHA) count(counter *int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *counter
}

func (f *fakeAHA) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer tok-1" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token"}}`))
		return false
	}
	return true
}

func (f *fakeAHA) handler() http.Handler {
	router := chi.NewRouter()

	router.Post("/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()
		assert.NoError(f.t, r.ParseForm())
		assert.Equal(f.t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(f.t, "client-id", r.PostForm.Get("client_id"))
		w.WriteHeader(f.tokenStatus)
		_, _ = w.Write([]byte(f.tokenBody))
	})

	router.Post("/participants", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.participantCalls++
		f.mu.Unlock()
		_, _ = w.Write([]byte(f.participantBody))
	})

	router.Post("/enrollments", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		assert.NoError(f.t, json.Unmarshal(body, &f.enrollmentBody))
		f.mu.Unlock()
		_, _ = w.Write([]byte(f.enrollmentResponse))
	})

	router.Get("/enrollments/{enrollmentID}/activities", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.activityQuery = r.URL.Query()
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":{"activitites":` + f.activities + `}}`))
	})

	router.Get("/enrollments/{enrollmentID}/activities/{code}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"data":{"activity":{"code":"` + chi.URLParam(r, "code") + `","type":"Questionnaire","title":"Mood check","status":"PENDING","items":[{"code":"q1","type":"Choice","title":"Feeling good?","options":[{"text":"Yes","sequence":1},{"text":"No","sequence":2}]}]}}}`))
	})

	router.Patch("/enrollments/{enrollmentID}/activities/{code}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		if f.rejectActivities {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"message":"activity already completed"}}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		var patch map[string]interface{}
		assert.NoError(f.t, json.Unmarshal(body, &patch))
		f.mu.Lock()
		f.activityPatchBody = patch
		f.activityPatchQuery = r.URL.Query()
		f.mu.Unlock()

		code := chi.URLParam(r, "code")
		if r.URL.Query().Get("sequence") != "" {
			_, _ = w.Write([]byte(`{"data":{"assessment":{"code":"` + code + `","type":"Questionnaire","title":"Mood check"}}}`))
			return
		}
		response, err := json.Marshal(map[string]interface{}{
			"data": map[string]interface{}{
				"activity": map[string]interface{}{
					"code":        code,
					"type":        "Video",
					"title":       "Watch",
					"status":      patch["status"],
					"completedAt": patch["completedAt"],
					"comments":    patch["comments"],
				},
			},
		})
		assert.NoError(f.t, err)
		_, _ = w.Write(response)
	})

	router.Patch("/enrollments/{enrollmentID}/assessments/{code}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.assessmentQuery = r.URL.Query()
		assert.NoError(f.t, json.Unmarshal(body, &f.assessmentBody))
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":{"assessment":{"code":"` + chi.URLParam(r, "code") + `","type":"Questionnaire","title":"Mood check"}}}`))
	})

	router.Get("/enrollments/{enrollmentID}/goals/9999", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.goalCalls++
		f.mu.Unlock()
		assert.Equal(f.t, "PhysicalActivity", r.URL.Query().Get("categories"))
		_, _ = w.Write([]byte(`{"data":{"goals":[{"name":"Walk daily","code":"G1","sequence":1}]}}`))
	})

	router.Get("/enrollments/{enrollmentID}/actionPlans/9999", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"data":{"actionPlans":[{"name":"Take the stairs"}]}}`))
	})

	return router
}

func newTestService(t *testing.T, fake *fakeAHA) (*CareplanService, *repository.MemoryStore) {
	t.Helper()
	return newTestServiceWithTokens(t, fake, nil)
}

func newTestServiceWithTokens(t *testing.T, fake *fakeAHA, tokens *tokencache.Cache) (*CareplanService, *repository.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	store := repository.NewMemoryStore()
	service := NewCareplanService(Config{
		BaseURL:      server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Timeout:      5 * time.Second,
	}, providers.Dependencies{
		Participants: store.Participants(),
		Enrollments:  store.Enrollments(),
		Tokens:       tokens,
		Clock:        utils.FixedClock{Instant: testNow},
		Log:          zap.NewNop(),
	})
	return service, store
}

func TestCareplanService_Init(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		assert.True(t, service.Init(context.Background()))

		token, ok := service.TokenStatus()
		require.True(t, ok)
		assert.Equal(t, "tok-1", token.Value)
		assert.Equal(t, testNow.Add(time.Hour), token.ExpiresAt)
	})

	t.Run("Rejected credentials", func(t *testing.T) {
		fake := newFakeAHA(t)
		fake.tokenStatus = http.StatusUnauthorized
		fake.tokenBody = `{"error":"invalid_client"}`
		service, _ := newTestService(t, fake)

		assert.False(t, service.Init(context.Background()))
		_, ok := service.TokenStatus()
		assert.False(t, ok)
	})

	t.Run("Expiry read from token claims", func(t *testing.T) {
		accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(testNow.Add(2 * time.Hour)),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		fake := newFakeAHA(t)
		fake.tokenBody = `{"access_token":"` + accessToken + `"}`
		service, _ := newTestService(t, fake)

		require.True(t, service.Init(context.Background()))
		token, _ := service.TokenStatus()
		assert.Equal(t, testNow.Add(2*time.Hour), token.ExpiresAt)
	})

	t.Run("Default expiry for opaque token", func(t *testing.T) {
		fake := newFakeAHA(t)
		fake.tokenBody = `{"access_token":"opaque"}`
		service, _ := newTestService(t, fake)

		require.True(t, service.Init(context.Background()))
		token, _ := service.TokenStatus()
		assert.Equal(t, testNow.Add(time.Hour), token.ExpiresAt)
	})
}

func TestCareplanService_ConcurrentCallsShareOneRefresh(t *testing.T) {
	fake := newFakeAHA(t)
	service, _ := newTestService(t, fake)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.FetchActivities(context.Background(), "enr-1", testNow, testNow.AddDate(0, 0, 7))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fake.count(&fake.tokenCalls))
}

func TestCareplanService_RegisterPatientIsIdempotent(t *testing.T) {
	fake := newFakeAHA(t)
	service, _ := newTestService(t, fake)
	details := &models.Participant{PatientUserID: "user-1", Name: "Jane Doe", Gender: "Female", Age: 41}

	first, err := service.RegisterPatient(context.Background(), details)
	require.NoError(t, err)
	second, err := service.RegisterPatient(context.Background(), details)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.count(&fake.participantCalls))
	assert.Equal(t, "part-1", first.ProviderParticipantID)
	assert.Equal(t, first, second)
}

func TestCareplanService_FetchActivitiesEmpty(t *testing.T) {
	fake := newFakeAHA(t)
	service, _ := newTestService(t, fake)

	activities, err := service.FetchActivities(context.Background(), "enr-1", testNow, testNow.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
	assert.Equal(t, "2024-05-01", fake.activityQuery.Get("fromDate"))
	assert.Equal(t, "2024-05-08", fake.activityQuery.Get("toDate"))
	assert.Equal(t, "500", fake.activityQuery.Get("pageSize"))
}

func TestCareplanService_EnrollFetchComplete(t *testing.T) {
	fake := newFakeAHA(t)
	fake.activities = `[{"code":"A1","type":"Questionnaire","name":"Mood check","text":"How do you feel?","scheduledAt":"2024-05-02","sequence":1,"frequency":1,"status":"PENDING"}]`
	service, store := newTestService(t, fake)
	ctx := context.Background()

	enrollmentID, err := service.EnrollPatientToCarePlan(ctx, &models.Enrollment{
		PatientUserID: "user-1",
		PlanCode:      "HFMotivator",
		StartDate:     time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC),
		EndDate:       time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
		Gender:        "Female",
		Participant:   &models.Participant{Name: "Jane Doe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9001", enrollmentID)
	assert.Equal(t, 1, fake.count(&fake.participantCalls))
	assert.Equal(t, "2024-05-01", fake.enrollmentBody["startAt"])
	assert.Equal(t, "2024-12-31", fake.enrollmentBody["endAt"])
	assert.Equal(t, "HFMotivator", fake.enrollmentBody["careplanCode"])

	stored, err := store.Enrollments().FindByProviderEnrollmentID(ctx, "AHA", enrollmentID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "part-1", stored.ParticipantID)

	activities, err := service.FetchActivities(ctx, enrollmentID, testNow, testNow.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, activities, 1)
	activity := activities[0]
	assert.Equal(t, models.ProgressStatusPending, activity.Status)
	assert.Equal(t, models.ActivityCategoryAssessment, activity.Category)
	assert.Equal(t, "Mood check", activity.Title)
	assert.Equal(t, "How do you feel?\n", activity.Description)

	completed, err := service.CompleteActivity(ctx, activity.Category, enrollmentID, activity.ProviderActionID, &models.ActivityUpdates{
		ScheduledAt: activity.ScheduledAt,
		Sequence:    activity.Sequence,
		Answers: []models.AssessmentAnswer{{
			ResponseType: models.QueryResponseTypeSingleChoiceSelection,
			Node:         models.AssessmentNode{ProviderGivenID: "q1"},
			Option:       &models.AssessmentOption{Text: "Yes", Sequence: 1},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProgressStatusCompleted, completed.Status)

	assert.Equal(t, "2024-05-02", fake.assessmentQuery.Get("scheduledAt"))
	assert.Equal(t, "1", fake.assessmentQuery.Get("sequence"))
	assert.Equal(t, "2024-05-01", fake.assessmentBody.CompletedAt)
	assert.Equal(t, "COMPLETED", fake.assessmentBody.Status)
	require.Len(t, fake.assessmentBody.Items, 1)
	require.Len(t, fake.assessmentBody.Items[0].Values, 1)
	assert.Equal(t, "Yes", fake.assessmentBody.Items[0].Values[0].Value)
}

func TestCareplanService_EnrollWithoutRegistrationDetails(t *testing.T) {
	fake := newFakeAHA(t)
	service, _ := newTestService(t, fake)

	_, err := service.EnrollPatientToCarePlan(context.Background(), &models.Enrollment{
		PatientUserID: "user-2",
		PlanCode:      "HFMotivator",
		StartDate:     testNow,
	})

	assert.True(t, exceptions.IsPreconditionError(err))
	assert.Nil(t, fake.enrollmentBody)
}

func TestCareplanService_CompleteNonAssessment(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		activity, err := service.CompleteActivity(context.Background(), models.ActivityCategoryEducational, "enr-1", "V1", nil)

		require.NoError(t, err)
		assert.Equal(t, models.ProgressStatusCompleted, activity.Status)
		assert.Equal(t, models.ActivityCategoryEducational, activity.Category)
	})

	t.Run("Rejected resubmission", func(t *testing.T) {
		fake := newFakeAHA(t)
		fake.rejectActivities = true
		service, _ := newTestService(t, fake)

		_, err := service.CompleteActivity(context.Background(), models.ActivityCategoryEducational, "enr-1", "V1", nil)

		providerErr, ok := exceptions.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, providerErr.StatusCode)
		assert.Equal(t, "activity already completed", providerErr.Message)
	})

	t.Run("Assessment without answers", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		_, err := service.CompleteActivity(context.Background(), models.ActivityCategoryAssessment, "enr-1", "A1", &models.ActivityUpdates{})

		assert.True(t, exceptions.IsPreconditionError(err))
	})
}

func TestCareplanService_Goals(t *testing.T) {
	t.Run("Known category", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		goals, err := service.GetGoals(context.Background(), "enr-1", "Physical activity")

		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Walk daily", goals[0].Title)
		require.NotNil(t, goals[0].ProviderCode)
		assert.Equal(t, "G1", *goals[0].ProviderCode)
	})

	t.Run("Unknown category", func(t *testing.T) {
		fake := newFakeAHA(t)
		service, _ := newTestService(t, fake)

		_, err := service.GetGoals(context.Background(), "enr-1", "Astrology")

		assert.ErrorIs(t, err, exceptions.ErrUnknownHealthPriority)
		assert.Equal(t, 0, fake.count(&fake.goalCalls))
	})

	t.Run("Action plans", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		actionPlans, err := service.GetActionPlans(context.Background(), "enr-1", "Weight management")

		require.NoError(t, err)
		require.Len(t, actionPlans, 1)
		assert.Equal(t, "Take the stairs", actionPlans[0].Title)
		assert.Nil(t, actionPlans[0].ProviderCode)
	})
}

func TestCareplanService_GetActivityAndConvertTemplate(t *testing.T) {
	service, _ := newTestService(t, newFakeAHA(t))
	scheduledAt := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	activity, err := service.GetActivity(context.Background(), "enr-1", "A1", &scheduledAt)
	require.NoError(t, err)
	assert.NotEmpty(t, activity.RawContent)

	template, err := service.ConvertToAssessmentTemplate(context.Background(), activity)
	require.NoError(t, err)
	assert.Equal(t, "A1", template.ProviderAssessmentCode)
	assert.Equal(t, "Mood check", template.Title)
	require.Len(t, template.Nodes, 1)
	node := template.Nodes[0]
	assert.Equal(t, "q1", node.ProviderGivenID)
	assert.Equal(t, models.QueryResponseTypeSingleChoiceSelection, node.QueryResponseType)
	assert.Equal(t, []models.AssessmentOption{{Text: "Yes", Sequence: 1}, {Text: "No", Sequence: 2}}, node.Options)
}

func TestCareplanService_RejectedTokenIsDropped(t *testing.T) {
	fake := newFakeAHA(t)
	service, _ := newTestService(t, fake)
	service.deps.Tokens.Set("AHA", "stale", 3600)

	_, err := service.FetchActivities(context.Background(), "enr-1", testNow, testNow)
	providerErr, ok := exceptions.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)

	_, ok = service.TokenStatus()
	assert.False(t, ok)

	_, err = service.FetchActivities(context.Background(), "enr-1", testNow, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count(&fake.tokenCalls))
}

func TestCareplanService_EligibilityNotSupported(t *testing.T) {
	service, _ := newTestService(t, newFakeAHA(t))

	_, err := service.GetPatientEligibility(context.Background(), testNow, "Cholesterol")

	assert.ErrorIs(t, err, exceptions.ErrCapabilityNotSupported)
}

type memoryTokenMirror struct {
	tokens map[string]models.AuthToken
}

func (m *memoryTokenMirror) Load(ctx context.Context, provider string) (*models.AuthToken, error) {
	token, ok := m.tokens[provider]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (m *memoryTokenMirror) Store(ctx context.Context, provider string, token models.AuthToken) error {
	m.tokens[provider] = token
	return nil
}

func (m *memoryTokenMirror) Delete(ctx context.Context, provider string) error {
	delete(m.tokens, provider)
	return nil
}

func TestCareplanService_RejectedMirroredTokenIsDropped(t *testing.T) {
	fake := newFakeAHA(t)
	mirror := &memoryTokenMirror{tokens: map[string]models.AuthToken{
		"AHA": {Value: "stale", ExpiresAt: testNow.Add(time.Hour)},
	}}
	tokens := tokencache.New(utils.FixedClock{Instant: testNow}, tokencache.WithMirror(mirror))
	service, _ := newTestServiceWithTokens(t, fake, tokens)
	ctx := context.Background()

	_, err := service.FetchActivities(ctx, "enr-1", testNow, testNow)
	providerErr, ok := exceptions.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Equal(t, 0, fake.count(&fake.tokenCalls))
	_, mirrored := mirror.tokens["AHA"]
	assert.False(t, mirrored)

	_, err = service.FetchActivities(ctx, "enr-1", testNow, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count(&fake.tokenCalls))
	assert.Equal(t, "tok-1", mirror.tokens["AHA"].Value)
}

func TestCareplanService_FetchActivitiesSkipsUndecodableEntry(t *testing.T) {
	fake := newFakeAHA(t)
	fake.activities = `[{"code":"A1","type":"Video","title":"Watch","sequence":1,"status":"PENDING"},{"code":"A2","type":"Video","title":"Broken","sequence":"2","status":"PENDING"}]`
	service, _ := newTestService(t, fake)

	activities, err := service.FetchActivities(context.Background(), "enr-1", testNow, testNow)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "A1", activities[0].ProviderActionID)
	assert.Equal(t, models.ActivityCategoryEducational, activities[0].Category)
}

func TestCareplanService_MissingProviderIDs(t *testing.T) {
	t.Run("Participant", func(t *testing.T) {
		fake := newFakeAHA(t)
		fake.participantBody = `{"data":{"participant":{}}}`
		service, store := newTestService(t, fake)

		participant, err := service.RegisterPatient(context.Background(), &models.Participant{PatientUserID: "user-1", Name: "Jane Doe"})

		assert.Nil(t, participant)
		assert.ErrorIs(t, err, exceptions.ErrMissingProviderID)
		assert.Equal(t, 0, store.Inserts())
	})

	t.Run("Enrollment", func(t *testing.T) {
		fake := newFakeAHA(t)
		fake.enrollmentResponse = `{"data":{"enrollment":{"id":null}}}`
		service, store := newTestService(t, fake)

		enrollmentID, err := service.EnrollPatientToCarePlan(context.Background(), &models.Enrollment{
			PatientUserID: "user-1",
			PlanCode:      "HFMotivator",
			StartDate:     testNow,
			Participant:   &models.Participant{Name: "Jane Doe"},
		})

		assert.Empty(t, enrollmentID)
		assert.ErrorIs(t, err, exceptions.ErrMissingProviderID)
		// only the participant registered on the way is stored
		assert.Equal(t, 1, store.Inserts())
		stored, err := store.Enrollments().FindByProviderEnrollmentID(context.Background(), "AHA", "")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestCareplanService_UpdateBiometricsActivity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fake := newFakeAHA(t)
		service, _ := newTestService(t, fake)

		activity, err := service.UpdateBiometricsActivity(context.Background(), "enr-1", "B1", &models.BiometricsActivityUpdate{
			CompletedAt: time.Date(2024, 5, 1, 19, 45, 0, 0, time.UTC),
			Comments:    "Weight 72kg",
			Status:      "COMPLETED",
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"completedAt": "2024-05-01",
			"comments":    "Weight 72kg",
			"status":      "COMPLETED",
		}, fake.activityPatchBody)
		assert.Empty(t, fake.activityPatchQuery)

		assert.Equal(t, "B1", activity.ProviderActionID)
		assert.Equal(t, "AHA", activity.Provider)
		assert.Equal(t, "enr-1", activity.EnrollmentID)
		assert.Equal(t, models.ProgressStatusCompleted, activity.Status)
		require.NotNil(t, activity.CompletedAt)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *activity.CompletedAt)
		require.NotNil(t, activity.Comments)
		assert.Equal(t, "Weight 72kg", *activity.Comments)
	})

	t.Run("Invalid status", func(t *testing.T) {
		fake := newFakeAHA(t)
		service, _ := newTestService(t, fake)

		_, err := service.UpdateBiometricsActivity(context.Background(), "enr-1", "B1", &models.BiometricsActivityUpdate{
			CompletedAt: testNow,
			Status:      "DONE",
		})

		assert.True(t, exceptions.IsPreconditionError(err))
		assert.Nil(t, fake.activityPatchBody)
	})
}

func TestCareplanService_UpdateAssessmentActivity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fake := newFakeAHA(t)
		service, _ := newTestService(t, fake)
		scheduledAt := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

		activity, err := service.UpdateAssessmentActivity(context.Background(), "enr-1", "A1", &models.AssessmentActivityUpdate{
			ScheduledAt: scheduledAt,
			Sequence:    2,
			CompletedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
			Status:      "COMPLETED",
			Answers: []models.AssessmentAnswer{{
				ResponseType: models.QueryResponseTypeSingleChoiceSelection,
				Node:         models.AssessmentNode{ProviderGivenID: "q1"},
				Option:       &models.AssessmentOption{Text: "No", Sequence: 2},
			}},
		})

		require.NoError(t, err)
		assert.Equal(t, "2024-05-02", fake.activityPatchQuery.Get("scheduledAt"))
		assert.Equal(t, "2", fake.activityPatchQuery.Get("sequence"))
		assert.Equal(t, map[string]interface{}{
			"completedAt": "2024-05-02",
			"status":      "COMPLETED",
			"items": []interface{}{map[string]interface{}{
				"id":     "q1",
				"values": []interface{}{map[string]interface{}{"value": "No"}},
			}},
		}, fake.activityPatchBody)

		assert.Equal(t, "A1", activity.ProviderActionID)
		assert.Equal(t, "Mood check", activity.Title)
		assert.Equal(t, models.ActivityCategoryAssessment, activity.Category)
		assert.Equal(t, models.ProgressStatusCompleted, activity.Status)
		assert.Equal(t, 2, activity.Sequence)
		require.NotNil(t, activity.ScheduledAt)
		assert.Equal(t, scheduledAt, *activity.ScheduledAt)
		require.NotNil(t, activity.CompletedAt)
	})

	t.Run("Pending keeps no completion time", func(t *testing.T) {
		service, _ := newTestService(t, newFakeAHA(t))

		activity, err := service.UpdateAssessmentActivity(context.Background(), "enr-1", "A1", &models.AssessmentActivityUpdate{
			ScheduledAt: testNow,
			Sequence:    1,
			CompletedAt: testNow,
			Status:      "PENDING",
		})

		require.NoError(t, err)
		assert.Equal(t, models.ProgressStatusPending, activity.Status)
		assert.Nil(t, activity.CompletedAt)
	})

	t.Run("Missing update", func(t *testing.T) {
		fake := newFakeAHA(t)
		service, _ := newTestService(t, fake)

		_, err := service.UpdateAssessmentActivity(context.Background(), "enr-1", "A1", nil)

		assert.True(t, exceptions.IsPreconditionError(err))
		assert.Nil(t, fake.activityPatchBody)
	})
}
