package daemon

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feijonts/aps-5-api/internal/models"
	"github.com/feijonts/aps-5-api/internal/utils"
)

// LogExporter periodically drains unexported audit entries.
type LogExporter struct {
	Coll     *mongo.Collection
	Interval time.Duration
}

func (l *LogExporter) InitLogExporter() {
	interval := l.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}

	go func() {
		for {
			l.exportPending()
			time.Sleep(interval)
		}
	}()
}

func (l *LogExporter) exportPending() {
	res, err := l.Coll.Find(context.Background(), bson.M{"exported": false})
	if err != nil {
		return
	}

	var logs []models.AuditLog
	if err := res.All(context.Background(), &logs); err != nil || len(logs) == 0 {
		return
	}

	if err := utils.ExportAuditLogs(logs); err != nil {
		return
	}

	exportedIDs := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		exportedIDs = append(exportedIDs, entry.ID)
	}

	l.Coll.UpdateMany(context.Background(),
		bson.M{"_id": bson.M{"$in": exportedIDs}},
		bson.M{"$set": bson.M{"exported": true}},
	)
}
