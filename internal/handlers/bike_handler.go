package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/feijonts/aps-5-api/internal/constants"
	"github.com/feijonts/aps-5-api/internal/models"
	"github.com/feijonts/aps-5-api/internal/repository"
	"github.com/feijonts/aps-5-api/internal/utils"
)

type BikeHandler struct {
	Repo        *repository.BikeRepository
	AuditLogger utils.Logger
}

func NewBikeHandler(repo *repository.BikeRepository, logger utils.Logger) *BikeHandler {
	return &BikeHandler{Repo: repo, AuditLogger: logger}
}

// GET /bikes
func (h *BikeHandler) ListBikes(w http.ResponseWriter, r *http.Request) {
	bikes, err := h.Repo.List(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(bikes)
}

// POST /bikes
func (h *BikeHandler) CreateBike(w http.ResponseWriter, r *http.Request) {
	var bike models.Bike
	if err := json.NewDecoder(r.Body).Decode(&bike); err != nil {
		utils.JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Repo.Create(r.Context(), bike)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BikeEntity, constants.Create, created)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /bikes/{id}
func (h *BikeHandler) GetBike(w http.ResponseWriter, r *http.Request) {
	bike, err := h.Repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(bike)
}

// PUT /bikes/{id}
func (h *BikeHandler) UpdateBike(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	bike, err := h.Repo.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BikeEntity, constants.Update, fields)

	json.NewEncoder(w).Encode(bike)
}

// DELETE /bikes/{id}
func (h *BikeHandler) DeleteBike(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BikeEntity, constants.Delete, id)

	w.WriteHeader(http.StatusNoContent)
}
