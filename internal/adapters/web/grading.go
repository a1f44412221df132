package web

import (
	"net/http"
	"strings"

	"agritrace/internal/app"
)

// gradeCrop handles POST /api/grading — the farmer submits crop details and a
// photo data URI; the AI grades it and the certificate is staged for
// registration. AI failures surface as 502 without retry.
func (h *Handler) gradeCrop(w http.ResponseWriter, r *http.Request) {
	var req app.GradeCropRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CropName == "" || req.FarmerName == "" {
		writeError(w, r, "crop_name and farmer_name are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(req.PhotoDataURI, "data:image/") {
		writeError(w, r, "photo_data_uri must be an image data URI", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GradeCrop(r.Context(), req)
	if err != nil {
		writeError(w, r, "crop grading failed: "+err.Error(), "AI_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
