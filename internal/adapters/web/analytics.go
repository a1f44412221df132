package web

import "net/http"

// cropAnalytics handles GET /api/analytics/crops.
func (h *Handler) cropAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CropAnalytics(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ownerAnalytics handles GET /api/analytics/owners.
func (h *Handler) ownerAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.OwnerAnalytics(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
