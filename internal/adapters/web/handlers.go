package web

import (
	"net/http"

	"agritrace/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService behind the HTTP routes.
type Handler struct {
	svc app.ApplicationService
}

// maxRequestBody caps JSON request bodies. Grading requests carry a base64
// photo data URI inline, so the cap is sized for a phone camera image rather
// than the usual 1 MB.
const maxRequestBody = 8 << 20 // 8 MB

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxRequestBody))

	r.Get("/api/health", h.health)

	// ── Farmer flow ───────────────────────────────────────────────────────────
	r.Post("/api/grading", h.gradeCrop)
	r.Post("/api/lots/register", h.registerLot)

	// ── Lot queries ───────────────────────────────────────────────────────────
	r.Get("/api/lots", h.listLots)
	r.Get("/api/lots/{lotID}", h.getLot)
	r.Get("/api/lots/{lotID}/history", h.getLotHistory)

	// ── Distributor flow ──────────────────────────────────────────────────────
	r.Post("/api/lots/{lotID}/purchase", h.purchaseLot)
	r.Post("/api/lots/{lotID}/transport", h.recordTransport)
	r.Post("/api/lots/{lotID}/split", h.splitLot)

	// ── Retailer flow ─────────────────────────────────────────────────────────
	r.Post("/api/lots/{lotID}/retail", h.recordRetail)
	r.Post("/api/lots/{lotID}/packs", h.createPacks)
	r.Get("/api/packs/{packID}", h.getPack)

	// ── Analytics ─────────────────────────────────────────────────────────────
	r.Get("/api/analytics/crops", h.cropAnalytics)
	r.Get("/api/analytics/owners", h.ownerAnalytics)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
