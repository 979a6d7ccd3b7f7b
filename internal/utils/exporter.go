package utils

import (
	"fmt"

	"github.com/feijonts/aps-5-api/internal/models"
)

func ExportAuditLogs(logs []models.AuditLog) error {
	for _, entry := range logs {
		//change with actual calls
		fmt.Println(entry.Timestamp, entry.Entity, entry.Action, entry.Data)
	}
	return nil
}
