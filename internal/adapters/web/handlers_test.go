package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	webAdapter "agritrace/internal/adapters/web"
	"agritrace/internal/ai"
	"agritrace/internal/app"
	"agritrace/internal/core"
	"agritrace/internal/db"

	"github.com/shopspring/decimal"
)

type stubAgent struct {
	grade    *core.GradeReport
	conflict *core.ConflictReport
}

func (s *stubAgent) GradeCrop(ctx context.Context, req ai.GradeRequest) (*core.GradeReport, error) {
	return s.grade, nil
}

func (s *stubAgent) DetectTransportConflict(ctx context.Context, req ai.ConflictRequest) (*core.ConflictReport, error) {
	return s.conflict, nil
}

func newTestHandler(t *testing.T, agent ai.AgentService) (http.Handler, *core.LotStore, *core.StagingStore) {
	t.Helper()
	repo := db.NewMemoryRepository()
	ctx := context.Background()
	lots, err := core.NewLotStore(ctx, repo)
	if err != nil {
		t.Fatalf("NewLotStore: %v", err)
	}
	staging, err := core.NewStagingStore(ctx, repo)
	if err != nil {
		t.Fatalf("NewStagingStore: %v", err)
	}
	svc := app.NewAppService(lots, staging, agent)
	return webAdapter.NewHandler(svc, ""), lots, staging
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t, &stubAgent{})
	rec := doJSON(t, h, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestGetLot_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t, &stubAgent{})
	rec := doJSON(t, h, http.MethodGet, "/api/lots/LOT-404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", resp.Code)
	}
}

func TestRegisterLot_ClaimOnce(t *testing.T) {
	h, _, staging := newTestHandler(t, &stubAgent{})
	ctx := context.Background()

	if err := staging.AddLot(ctx, core.GradedLot{
		LotID:          "LOT-20240101-001",
		FarmerName:     "farmer-x",
		CropName:       "Paddy",
		WeightQuintals: decimal.NewFromInt(10),
		HarvestDate:    "2024-01-01",
		Grade:          core.GradeStandard,
	}); err != nil {
		t.Fatalf("stage certificate: %v", err)
	}

	body := map[string]any{
		"lot_id":            "LOT-20240101-001",
		"farmer_id":         "farmer-x",
		"price_per_quintal": "2300",
	}
	rec := doJSON(t, h, http.MethodPost, "/api/lots/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/lots/register", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second register = %d, want 404", rec.Code)
	}
}

func TestRecordTransport_ConflictReturns409(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{
		conflict: &core.ConflictReport{ConflictDetected: true, ConflictDetails: "timing overlap"},
	})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{LotID: "LOT-1", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/transport", map[string]any{
		"vehicle_number":  "OD-01-AB-1234",
		"condition":       "Normal",
		"warehouse_entry": "2024-01-02T10:00",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	h2, err := lots.History("LOT-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h2.TransportEvents) != 0 {
		t.Error("conflicting transport event was persisted")
	}
}

func TestRecordTransport_InvalidCondition(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{conflict: &core.ConflictReport{}})
	if err := lots.AddLot(context.Background(), core.Lot{LotID: "LOT-1"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}
	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/transport", map[string]any{
		"vehicle_number":  "OD-01-AB-1234",
		"condition":       "Frozen",
		"warehouse_entry": "2024-01-02T10:00",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSplitAndHistoryFlow(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{
		LotID:           "LOT-1",
		WeightQuintals:  decimal.NewFromInt(10),
		PricePerQuintal: decimal.NewFromInt(100),
		HarvestDate:     "2024-01-01",
		OwnerID:         "farmer-x",
	}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/split", map[string]any{
		"parts":          3,
		"distributor_id": "dist-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("split = %d: %s", rec.Code, rec.Body.String())
	}
	var split struct {
		SubLots []core.Lot `json:"sub_lots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &split); err != nil {
		t.Fatalf("decode split result: %v", err)
	}
	if len(split.SubLots) != 3 {
		t.Fatalf("got %d sub-lots, want 3", len(split.SubLots))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/lots/LOT-1/history?full=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history = %d", rec.Code)
	}
	var hist struct {
		History core.LotHistory `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.History.Children) != 3 {
		t.Errorf("full trace children = %d, want 3", len(hist.History.Children))
	}
	if !hist.History.Lot.WeightQuintals.IsZero() {
		t.Errorf("parent weight after split = %s, want 0", hist.History.Lot.WeightQuintals)
	}
}

func TestPurchaseLot_HTTP(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{LotID: "LOT-1", OwnerID: "farmer-x", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/purchase", map[string]any{"buyer_id": "dist-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Lot core.Lot `json:"lot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode purchase result: %v", err)
	}
	if resp.Lot.OwnerID != "dist-1" {
		t.Errorf("owner after purchase = %q, want dist-1", resp.Lot.OwnerID)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/purchase", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing buyer_id = %d, want 400", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/lots/LOT-404/purchase", map[string]any{"buyer_id": "dist-1"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown lot = %d, want 404", rec.Code)
	}
}

func TestRecordRetail_HTTP(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{})
	if err := lots.AddLot(context.Background(), core.Lot{LotID: "LOT-1", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/retail", map[string]any{
		"store_id":   "store-7",
		"shelf_date": "2024-01-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("retail = %d: %s", rec.Code, rec.Body.String())
	}

	h2, err := lots.History("LOT-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h2.RetailEvents) != 1 || h2.RetailEvents[0].StoreID != "store-7" {
		t.Errorf("retail event not in history: %+v", h2.RetailEvents)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/retail", map[string]any{"shelf_date": "2024-01-05"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing store_id = %d, want 400", rec.Code)
	}
}

func TestGrading_BadPhotoRejected(t *testing.T) {
	h, _, _ := newTestHandler(t, &stubAgent{grade: &core.GradeReport{Grade: core.GradePremium}})
	rec := doJSON(t, h, http.MethodPost, "/api/grading", map[string]any{
		"crop_name":      "Paddy",
		"farmer_name":    "x",
		"photo_data_uri": "http://example.com/photo.jpg",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGrading_OversizedBodyRejected(t *testing.T) {
	h, _, staging := newTestHandler(t, &stubAgent{grade: &core.GradeReport{Grade: core.GradePremium}})

	// A 12 MB data URI pushes the body past the router-wide cap.
	body := `{"crop_name":"Paddy","farmer_name":"x","photo_data_uri":"data:image/jpeg;base64,` +
		strings.Repeat("A", 12<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/grading", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "REQUEST_TOO_LARGE" {
		t.Errorf("error code = %q", resp.Code)
	}
	if staging.Count() != 0 {
		t.Errorf("oversized request staged a certificate")
	}
}

func TestPacksFlow(t *testing.T) {
	h, lots, _ := newTestHandler(t, &stubAgent{})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{
		LotID:          "LOT-1",
		WeightQuintals: decimal.NewFromInt(2), // 200 kg
		HarvestDate:    "2024-01-01",
	}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/lots/LOT-1/packs", map[string]any{"count": 4})
	if rec.Code != http.StatusCreated {
		t.Fatalf("packs = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/packs/PACK-LOT-1-001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get pack = %d", rec.Code)
	}
	var pack struct {
		Pack core.RetailPack `json:"pack"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pack); err != nil {
		t.Fatalf("decode pack: %v", err)
	}
	if pack.Pack.WeightKg.String() != "50" {
		t.Errorf("pack weight = %s kg, want 50", pack.Pack.WeightKg)
	}
}
