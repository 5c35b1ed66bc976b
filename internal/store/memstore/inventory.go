// Package memstore implements the store interfaces on in-process maps.
// It backs the test suite and lets the server run without MongoDB.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// InventoryStore is a mutex-guarded in-memory stock ledger. The write lock
// is held across a whole replace, so readers only ever see a record with
// both fields from the same Adjust call.
type InventoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Inventory
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{records: make(map[string]models.Inventory)}
}

func (s *InventoryStore) Get(ctx context.Context, bloodGroup string) (*models.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[bloodGroup]
	if !ok {
		return nil, fmt.Errorf("blood group %q: %w", bloodGroup, store.ErrNotFound)
	}
	rec.Status = models.StockStatusFor(rec.UnitsAvailable)
	return &rec, nil
}

func (s *InventoryStore) ListAll(ctx context.Context) ([]models.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Inventory, 0, len(s.records))
	for _, rec := range s.records {
		rec.Status = models.StockStatusFor(rec.UnitsAvailable)
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return models.BloodGroupRank(records[i].BloodGroup) < models.BloodGroupRank(records[j].BloodGroup)
	})
	return records, nil
}

func (s *InventoryStore) Adjust(ctx context.Context, bloodGroup string, unitsAvailable, pricePerUnit int) (*models.Inventory, error) {
	if unitsAvailable < 0 {
		return nil, &models.ValidationError{Field: "unitsAvailable", Message: "units available cannot be negative"}
	}
	if pricePerUnit < 0 {
		return nil, &models.ValidationError{Field: "pricePerUnit", Message: "price per unit cannot be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[bloodGroup]
	if !ok {
		return nil, fmt.Errorf("blood group %q: %w", bloodGroup, store.ErrNotFound)
	}
	rec.UnitsAvailable = unitsAvailable
	rec.PricePerUnit = pricePerUnit
	s.records[bloodGroup] = rec

	rec.Status = models.StockStatusFor(rec.UnitsAvailable)
	return &rec, nil
}

func (s *InventoryStore) SeedIfAbsent(ctx context.Context, bloodGroup string) error {
	if !models.IsValidBloodGroup(bloodGroup) {
		return &models.ValidationError{Field: "bloodGroup", Message: fmt.Sprintf("%q is not a valid blood group", bloodGroup)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[bloodGroup]; ok {
		return nil
	}
	s.records[bloodGroup] = models.Inventory{
		BloodGroup:     bloodGroup,
		UnitsAvailable: 0,
		PricePerUnit:   models.DefaultPricePerUnit,
	}
	return nil
}
