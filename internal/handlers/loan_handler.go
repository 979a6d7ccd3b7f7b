package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/feijonts/aps-5-api/internal/constants"
	"github.com/feijonts/aps-5-api/internal/models"
	"github.com/feijonts/aps-5-api/internal/service"
	"github.com/feijonts/aps-5-api/internal/utils"
)

type LoanHandler struct {
	Service     *service.LoanService
	AuditLogger utils.Logger
}

func NewLoanHandler(svc *service.LoanService, logger utils.Logger) *LoanHandler {
	return &LoanHandler{Service: svc, AuditLogger: logger}
}

type StartLoanRequest struct {
	UserID    string `json:"userId"`
	BikeID    string `json:"bikeId"`
	StartDate string `json:"startDate"`
}

// POST /loans
func (h *LoanHandler) StartLoan(w http.ResponseWriter, r *http.Request) {
	var req StartLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.Service.Start(r.Context(), req.UserID, req.BikeID, req.StartDate)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.LoanEntity, constants.LoanStart, record)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// GET /loans
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListActive(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(records)
}

// GET /loans/{id}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	json.NewEncoder(w).Encode(record)
}

// DELETE /loans/{id}
func (h *LoanHandler) EndLoan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.End(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.LoanEntity, constants.LoanEnd, id)

	w.WriteHeader(http.StatusNoContent)
}
