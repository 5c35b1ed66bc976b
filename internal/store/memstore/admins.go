package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// AdminStore is a mutex-guarded in-memory admin credential store.
type AdminStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.Admin
}

func NewAdminStore() *AdminStore {
	return &AdminStore{byEmail: make(map[string]models.Admin)}
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("admin %q: %w", email, store.ErrNotFound)
	}
	return &admin, nil
}

func (s *AdminStore) Create(ctx context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[admin.Email]; ok {
		return fmt.Errorf("admin %q already exists", admin.Email)
	}
	rec := *admin
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.byEmail[rec.Email] = rec
	return nil
}
