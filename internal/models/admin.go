package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin matches the admin document in MongoDB. Password holds the bcrypt
// hash, never the plaintext, and is excluded from JSON responses.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
