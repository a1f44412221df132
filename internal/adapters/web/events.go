package web

import (
	"net/http"

	"agritrace/internal/app"
	"agritrace/internal/core"

	"github.com/go-chi/chi/v5"
)

// recordTransport handles POST /api/lots/{lotID}/transport. The conflict
// check runs before anything is persisted: a detected conflict returns 409
// with the report and the event is withheld.
func (h *Handler) recordTransport(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	var req app.RecordTransportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LotID = lotID
	if req.VehicleNumber == "" || req.WarehouseEntry == "" {
		writeError(w, r, "vehicle_number and warehouse_entry are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	switch req.Condition {
	case core.ConditionColdStorage, core.ConditionNormal:
	default:
		writeError(w, r, `condition must be "Cold Storage" or "Normal"`, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RecordTransport(r.Context(), req)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, "conflict check failed: "+err.Error(), "AI_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	if result.Conflict != nil {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// recordRetail handles POST /api/lots/{lotID}/retail.
func (h *Handler) recordRetail(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	var req app.RecordRetailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LotID = lotID
	if req.StoreID == "" {
		writeError(w, r, "store_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RecordRetail(r.Context(), req)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// createPacks handles POST /api/lots/{lotID}/packs.
func (h *Handler) createPacks(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	var req struct {
		Count int `json:"count"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.CreateRetailPacks(r.Context(), lotID, req.Count)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
