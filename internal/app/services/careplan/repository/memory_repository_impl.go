package repository

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps participants, enrollments and activities in process. It
// backs the service when no MongoDB is configured and serves as the test store.
type MemoryStore struct {
	mu           sync.RWMutex
	participants map[string]models.Participant
	enrollments  map[string]models.Enrollment
	activities   map[string]models.CareplanActivity
	inserts      int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		participants: make(map[string]models.Participant),
		enrollments:  make(map[string]models.Enrollment),
		activities:   make(map[string]models.CareplanActivity),
	}
}

type MemoryParticipantRepository struct{ store *MemoryStore }

type MemoryEnrollmentRepository struct{ store *MemoryStore }

type MemoryActivityRepository struct{ store *MemoryStore }

var (
	_ contracts.ParticipantRepository = MemoryParticipantRepository{}
	_ contracts.EnrollmentRepository  = MemoryEnrollmentRepository{}
	_ contracts.ActivityRepository    = MemoryActivityRepository{}
)

func (s *MemoryStore) Participants() MemoryParticipantRepository {
	return MemoryParticipantRepository{store: s}
}

func (s *MemoryStore) Enrollments() MemoryEnrollmentRepository {
	return MemoryEnrollmentRepository{store: s}
}

func (s *MemoryStore) Activities() MemoryActivityRepository {
	return MemoryActivityRepository{store: s}
}

// Inserts counts participant and enrollment inserts.
func (s *MemoryStore) Inserts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inserts
}

// Activity returns the stored activity for key, if any.
func (s *MemoryStore) Activity(key string) (models.CareplanActivity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activity, ok := s.activities[key]
	return activity, ok
}

func participantKey(patientUserID, provider string) string {
	return provider + ":" + patientUserID
}

func (r MemoryParticipantRepository) FindByPatientUserID(ctx context.Context, patientUserID, provider string) (*models.Participant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	participant, ok := r.store.participants[participantKey(patientUserID, provider)]
	if !ok {
		return nil, nil
	}
	return &participant, nil
}

func (r MemoryParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.participants[participantKey(participant.PatientUserID, participant.Provider)] = *participant
	r.store.inserts++
	return nil
}

func (r MemoryEnrollmentRepository) FindByProviderEnrollmentID(ctx context.Context, provider, providerEnrollmentID string) (*models.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	enrollment, ok := r.store.enrollments[provider+":"+providerEnrollmentID]
	if !ok {
		return nil, nil
	}
	return &enrollment, nil
}

func (r MemoryEnrollmentRepository) FindActive(ctx context.Context, provider string, at time.Time) ([]models.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	enrollments := make([]models.Enrollment, 0)
	for _, enrollment := range r.store.enrollments {
		if enrollment.Provider == provider && enrollment.IsActiveAt(at) {
			enrollments = append(enrollments, enrollment)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].ProviderEnrollmentID < enrollments[j].ProviderEnrollmentID
	})
	return enrollments, nil
}

func (r MemoryEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *enrollment
	stored.Participant = nil
	r.store.enrollments[enrollment.Provider+":"+enrollment.ProviderEnrollmentID] = stored
	r.store.inserts++
	return nil
}

func (r MemoryActivityRepository) Upsert(ctx context.Context, activity *models.CareplanActivity) error {
	activity.ID = activity.Key()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *activity
	if existing, ok := r.store.activities[activity.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
		if existing.Status == models.ProgressStatusCompleted {
			stored.Status = existing.Status
			stored.CompletedAt = existing.CompletedAt
		}
	}
	r.store.activities[activity.ID] = stored
	return nil
}
