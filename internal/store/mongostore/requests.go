package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// RequestStore persists blood requests in the "blood_requests" collection.
// Ids are ObjectID hex strings assigned at insert time.
type RequestStore struct {
	collection *mongo.Collection
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{collection: db.Collection("blood_requests")}
}

func (s *RequestStore) Create(ctx context.Context, req *models.BloodRequest) (*models.BloodRequest, error) {
	rec := *req
	if rec.Urgency == "" {
		rec.Urgency = models.UrgencyMedium
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	rec.ID = primitive.NewObjectID().Hex()
	rec.Status = models.RequestPending
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: inserting blood request: %v", store.ErrUnavailable, err)
	}
	return &rec, nil
}

func (s *RequestStore) SetStatus(ctx context.Context, id, status string) (*models.BloodRequest, error) {
	if !models.IsValidRequestStatus(status) {
		return nil, &models.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid request status", status)}
	}

	var rec models.BloodRequest
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("request %q: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: updating request status: %v", store.ErrUnavailable, err)
	}
	return &rec, nil
}

func (s *RequestStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: deleting request: %v", store.ErrUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("request %q: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *RequestStore) ListAll(ctx context.Context) ([]models.BloodRequest, error) {
	cursor, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: querying requests: %v", store.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var records []models.BloodRequest
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding requests: %v", store.ErrUnavailable, err)
	}
	if records == nil {
		records = []models.BloodRequest{}
	}
	return records, nil
}
