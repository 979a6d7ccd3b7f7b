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

type UserHandler struct {
	Repo        *repository.UserRepository
	AuditLogger utils.Logger
}

func NewUserHandler(repo *repository.UserRepository, logger utils.Logger) *UserHandler {
	return &UserHandler{Repo: repo, AuditLogger: logger}
}

// GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(users)
}

// POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Repo.Create(r.Context(), user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.UserEntity, constants.Create, created)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(user)
}

// PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.UserEntity, constants.Update, fields)

	json.NewEncoder(w).Encode(user)
}

// DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.UserEntity, constants.Delete, id)

	w.WriteHeader(http.StatusNoContent)
}
