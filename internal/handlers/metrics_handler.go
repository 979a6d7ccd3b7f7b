package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feijonts/aps-5-api/internal/models"
)

type MetricsHandler struct {
	UserCol *mongo.Collection
	BikeCol *mongo.Collection
}

// GET /admin/metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, _ := h.UserCol.CountDocuments(ctx, bson.M{})
	totalBikes, _ := h.BikeCol.CountDocuments(ctx, bson.M{})
	bikesInUse, _ := h.BikeCol.CountDocuments(ctx, bson.M{"status": models.StatusInUse})
	availableBikes, _ := h.BikeCol.CountDocuments(ctx, bson.M{"status": models.StatusAvailable})

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_users":     totalUsers,
		"total_bikes":     totalBikes,
		"bikes_in_use":    bikesInUse,
		"available_bikes": availableBikes,
		"active_loans":    bikesInUse,
	})
}
