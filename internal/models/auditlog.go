package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Entity    string             `bson:"entity" json:"entity"`
	Action    string             `bson:"action" json:"action"`
	Data      any                `bson:"data" json:"data"`
	Exported  bool               `bson:"exported" json:"exported"`
}
