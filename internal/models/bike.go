package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BikeStatus string

const (
	StatusAvailable BikeStatus = "available"
	StatusInUse     BikeStatus = "in_use"

	BikeEntity = "bike"
)

// Bike carries its active loan embedded. The loan field is present if and
// only if status is in_use.
type Bike struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Brand     string             `bson:"brand" json:"brand"`
	Model     string             `bson:"model" json:"model"`
	City      string             `bson:"city" json:"city"`
	Status    BikeStatus         `bson:"status" json:"status"`
	Loan      *Loan              `bson:"loan,omitempty" json:"loan,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

var bikeUpdatableFields = map[string]string{
	"brand":  "brand",
	"model":  "model",
	"city":   "city",
	"status": "status",
}

func BikeUpdateKey(field string) (string, bool) {
	key, ok := bikeUpdatableFields[field]
	return key, ok
}
