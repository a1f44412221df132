package web

import (
	"net/http"

	"agritrace/internal/app"
	"agritrace/internal/core"

	"github.com/go-chi/chi/v5"
)

// registerLot handles POST /api/lots/register — the farmer claims a staged
// certificate by lot ID. A repeated claim for the same ID comes back 404.
func (h *Handler) registerLot(w http.ResponseWriter, r *http.Request) {
	var req app.RegisterLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LotID == "" || req.FarmerID == "" {
		writeError(w, r, "lot_id and farmer_id are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RegisterLot(r.Context(), req)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "no graded certificate found for "+req.LotID, "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// listLots handles GET /api/lots.
func (h *Handler) listLots(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListLots(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getLot handles GET /api/lots/{lotID}.
func (h *Handler) getLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	result, err := h.svc.GetLot(r.Context(), lotID)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getLotHistory handles GET /api/lots/{lotID}/history; ?full=1 adds the
// immediate parent and direct children to the view.
func (h *Handler) getLotHistory(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	full := r.URL.Query().Get("full") == "1"

	result, err := h.svc.GetLotHistory(r.Context(), lotID, full)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// purchaseLot handles POST /api/lots/{lotID}/purchase.
func (h *Handler) purchaseLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	var req struct {
		BuyerID string `json:"buyer_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BuyerID == "" {
		writeError(w, r, "buyer_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.PurchaseLot(r.Context(), lotID, req.BuyerID)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "lot "+lotID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// splitLot handles POST /api/lots/{lotID}/split.
func (h *Handler) splitLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	var req struct {
		Parts         int    `json:"parts"`
		DistributorID string `json:"distributor_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DistributorID == "" {
		writeError(w, r, "parts and distributor_id are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SplitLot(r.Context(), lotID, req.Parts, req.DistributorID)
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

// getPack handles GET /api/packs/{packID}.
func (h *Handler) getPack(w http.ResponseWriter, r *http.Request) {
	packID := chi.URLParam(r, "packID")
	result, err := h.svc.GetPack(r.Context(), packID)
	if err != nil {
		if core.IsNotFound(err) {
			writeError(w, r, "pack "+packID+" not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
