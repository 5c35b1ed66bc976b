// Package store defines the persistence capabilities the handlers depend
// on. mongostore backs production; memstore backs tests and local runs
// without a database.
package store

import (
	"context"
	"errors"

	"blood-bank-api-server/internal/models"
)

var (
	// ErrNotFound means the referenced blood group, request, or admin
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable wraps backing-store/transport failures. Callers may
	// retry with backoff.
	ErrUnavailable = errors.New("store unavailable")
)

// StockLedger holds the authoritative per-group unit count and price.
type StockLedger interface {
	// Get returns the record for a blood group, or ErrNotFound if the
	// group was never seeded.
	Get(ctx context.Context, bloodGroup string) (*models.Inventory, error)

	// ListAll returns all records in canonical blood-group order.
	ListAll(ctx context.Context) ([]models.Inventory, error)

	// Adjust atomically replaces both fields of a group's record and
	// returns the updated record with its status recomputed. The replace
	// is all-or-nothing; concurrent readers never observe a torn write.
	Adjust(ctx context.Context, bloodGroup string, unitsAvailable, pricePerUnit int) (*models.Inventory, error)

	// SeedIfAbsent creates a zero-balance record for the group unless one
	// already exists. Idempotent.
	SeedIfAbsent(ctx context.Context, bloodGroup string) error
}

// RequestStore holds blood-demand records.
type RequestStore interface {
	// Create validates the record, assigns an id, stamps timestamps, and
	// sets the initial Pending status.
	Create(ctx context.Context, req *models.BloodRequest) (*models.BloodRequest, error)

	// SetStatus overwrites the status of a request and refreshes its
	// updatedAt. Any of the three lifecycle statuses is accepted from any
	// current state.
	SetStatus(ctx context.Context, id, status string) (*models.BloodRequest, error)

	// Delete removes a request permanently. It never touches the ledger.
	Delete(ctx context.Context, id string) error

	// ListAll returns all requests in insertion order.
	ListAll(ctx context.Context) ([]models.BloodRequest, error)
}

// AdminStore holds administrator credentials.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}
