package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// RequestStore is a mutex-guarded in-memory request store. Insertion
// order is preserved for ListAll.
type RequestStore struct {
	mu      sync.RWMutex
	records map[string]models.BloodRequest
	order   []string
	clock   time.Time
}

func NewRequestStore() *RequestStore {
	return &RequestStore{records: make(map[string]models.BloodRequest)}
}

// stamp returns a timestamp strictly after every previously issued one,
// so updatedAt stays strictly increasing even under back-to-back writes.
// Callers must hold the write lock.
func (s *RequestStore) stamp() time.Time {
	now := time.Now()
	if !now.After(s.clock) {
		now = s.clock.Add(time.Nanosecond)
	}
	s.clock = now
	return now
}

func (s *RequestStore) Create(ctx context.Context, req *models.BloodRequest) (*models.BloodRequest, error) {
	rec := *req
	if rec.Urgency == "" {
		rec.Urgency = models.UrgencyMedium
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.Status = models.RequestPending
	now := s.stamp()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return &rec, nil
}

func (s *RequestStore) SetStatus(ctx context.Context, id, status string) (*models.BloodRequest, error) {
	if !models.IsValidRequestStatus(status) {
		return nil, &models.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid request status", status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("request %q: %w", id, store.ErrNotFound)
	}
	rec.Status = status
	rec.UpdatedAt = s.stamp()
	s.records[id] = rec
	return &rec, nil
}

func (s *RequestStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("request %q: %w", id, store.ErrNotFound)
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *RequestStore) ListAll(ctx context.Context) ([]models.BloodRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.BloodRequest, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records, nil
}
