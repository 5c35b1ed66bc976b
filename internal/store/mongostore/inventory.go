// Package mongostore implements the store interfaces on MongoDB. Every
// write is a single-document operation, which gives the per-record
// atomicity the ledger contract requires without transactions.
package mongostore

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// InventoryStore persists stock records in the "inventory" collection,
// keyed by the unique bloodGroup field.
type InventoryStore struct {
	collection *mongo.Collection
}

func NewInventoryStore(db *mongo.Database) *InventoryStore {
	return &InventoryStore{collection: db.Collection("inventory")}
}

// EnsureIndexes creates the unique bloodGroup index. The index also makes
// concurrent SeedIfAbsent calls collapse to a single record.
func (s *InventoryStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bloodGroup", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating inventory index: %w", err)
	}
	return nil
}

func (s *InventoryStore) Get(ctx context.Context, bloodGroup string) (*models.Inventory, error) {
	var rec models.Inventory
	err := s.collection.FindOne(ctx, bson.M{"bloodGroup": bloodGroup}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("blood group %q: %w", bloodGroup, store.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetching inventory: %v", store.ErrUnavailable, err)
	}
	rec.Status = models.StockStatusFor(rec.UnitsAvailable)
	return &rec, nil
}

func (s *InventoryStore) ListAll(ctx context.Context) ([]models.Inventory, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", store.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var records []models.Inventory
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding inventory: %v", store.ErrUnavailable, err)
	}
	if records == nil {
		records = []models.Inventory{}
	}

	// Canonical order is A+, A-, B+, B-, AB+, AB-, O+, O-, which a plain
	// mongo sort on the string key would not produce.
	sort.Slice(records, func(i, j int) bool {
		return models.BloodGroupRank(records[i].BloodGroup) < models.BloodGroupRank(records[j].BloodGroup)
	})
	for i := range records {
		records[i].Status = models.StockStatusFor(records[i].UnitsAvailable)
	}
	return records, nil
}

func (s *InventoryStore) Adjust(ctx context.Context, bloodGroup string, unitsAvailable, pricePerUnit int) (*models.Inventory, error) {
	if unitsAvailable < 0 {
		return nil, &models.ValidationError{Field: "unitsAvailable", Message: "units available cannot be negative"}
	}
	if pricePerUnit < 0 {
		return nil, &models.ValidationError{Field: "pricePerUnit", Message: "price per unit cannot be negative"}
	}

	var rec models.Inventory
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"bloodGroup": bloodGroup},
		bson.M{"$set": bson.M{
			"unitsAvailable": unitsAvailable,
			"pricePerUnit":   pricePerUnit,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("blood group %q: %w", bloodGroup, store.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: updating inventory: %v", store.ErrUnavailable, err)
	}
	rec.Status = models.StockStatusFor(rec.UnitsAvailable)
	return &rec, nil
}

func (s *InventoryStore) SeedIfAbsent(ctx context.Context, bloodGroup string) error {
	if !models.IsValidBloodGroup(bloodGroup) {
		return &models.ValidationError{Field: "bloodGroup", Message: fmt.Sprintf("%q is not a valid blood group", bloodGroup)}
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"bloodGroup": bloodGroup})
	if err != nil {
		return fmt.Errorf("%w: checking for blood group %q: %v", store.ErrUnavailable, bloodGroup, err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.collection.InsertOne(ctx, models.Inventory{
		BloodGroup:     bloodGroup,
		UnitsAvailable: 0,
		PricePerUnit:   models.DefaultPricePerUnit,
	})
	if err != nil {
		// A concurrent seeder won the race; the record exists either way.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("%w: seeding blood group %q: %v", store.ErrUnavailable, bloodGroup, err)
	}
	return nil
}
