package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feijonts/aps-5-api/internal/models"
)

// Logger records entity mutations in the audit collection.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action string, data any) error {
	entry := models.AuditLog{
		Timestamp: time.Now(),
		Entity:    entity,
		Action:    action,
		Data:      data,
		Exported:  false,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
