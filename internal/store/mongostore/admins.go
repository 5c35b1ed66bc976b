package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// AdminStore persists admin credentials in the "admins" collection.
type AdminStore struct {
	collection *mongo.Collection
}

func NewAdminStore(db *mongo.Database) *AdminStore {
	return &AdminStore{collection: db.Collection("admins")}
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("admin %q: %w", email, store.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetching admin: %v", store.ErrUnavailable, err)
	}
	return &admin, nil
}

func (s *AdminStore) Create(ctx context.Context, admin *models.Admin) error {
	rec := *admin
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: inserting admin: %v", store.ErrUnavailable, err)
	}
	return nil
}
