package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agritrace/internal/ai"
	"agritrace/internal/app"
	"agritrace/internal/core"
	"agritrace/internal/db"

	"github.com/shopspring/decimal"
)

// fakeAgent satisfies ai.AgentService without touching the network.
type fakeAgent struct {
	gradeReport    *core.GradeReport
	gradeErr       error
	conflictReport *core.ConflictReport
	conflictErr    error
}

func (f *fakeAgent) GradeCrop(ctx context.Context, req ai.GradeRequest) (*core.GradeReport, error) {
	return f.gradeReport, f.gradeErr
}

func (f *fakeAgent) DetectTransportConflict(ctx context.Context, req ai.ConflictRequest) (*core.ConflictReport, error) {
	return f.conflictReport, f.conflictErr
}

func newTestService(t *testing.T, agent ai.AgentService) (app.ApplicationService, *core.LotStore) {
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
	return app.NewAppService(lots, staging, agent), lots
}

func okGrade() *core.GradeReport {
	return &core.GradeReport{
		Moisture:   "12.5%",
		Impurities: "1.2%",
		Size:       "Uniform, medium",
		Color:      "Golden",
		Grade:      core.GradePremium,
	}
}

func TestGradeThenRegisterFlow(t *testing.T) {
	svc, _ := newTestService(t, &fakeAgent{gradeReport: okGrade()})
	ctx := context.Background()

	graded, err := svc.GradeCrop(ctx, app.GradeCropRequest{
		CropName:       "Paddy",
		FarmerName:     "Ramesh Sahoo",
		Location:       "Cuttack",
		WeightQuintals: decimal.NewFromInt(12),
		HarvestDate:    "2026-08-10",
		PhotoDataURI:   "data:image/jpeg;base64,xxxx",
	})
	if err != nil {
		t.Fatalf("GradeCrop: %v", err)
	}
	cert := graded.Certificate
	if !strings.HasPrefix(cert.LotID, "LOT-") {
		t.Errorf("minted lot ID %q lacks LOT- prefix", cert.LotID)
	}
	if cert.Grade != core.GradePremium {
		t.Errorf("certificate grade = %q", cert.Grade)
	}

	reg, err := svc.RegisterLot(ctx, app.RegisterLotRequest{
		LotID:           cert.LotID,
		FarmerID:        "farmer-ramesh",
		PricePerQuintal: decimal.NewFromInt(2300),
	})
	if err != nil {
		t.Fatalf("RegisterLot: %v", err)
	}
	if reg.Lot.OwnerID != "farmer-ramesh" || !reg.Lot.PricePerQuintal.Equal(decimal.NewFromInt(2300)) {
		t.Errorf("registered lot = %+v", reg.Lot)
	}
	if reg.Lot.Grade != core.GradePremium || reg.Lot.CropName != "Paddy" {
		t.Errorf("certificate fields not carried over: %+v", reg.Lot)
	}

	// Certificate was claimed exactly once.
	if _, err := svc.RegisterLot(ctx, app.RegisterLotRequest{
		LotID:    cert.LotID,
		FarmerID: "farmer-ramesh",
	}); !core.IsNotFound(err) {
		t.Errorf("second registration must miss, got %v", err)
	}

	// The registered lot is queryable.
	got, err := svc.GetLot(ctx, cert.LotID)
	if err != nil {
		t.Fatalf("GetLot: %v", err)
	}
	if got.Lot.LotID != cert.LotID {
		t.Errorf("GetLot returned %q", got.Lot.LotID)
	}
}

func TestGradeCrop_AgentFailurePropagates(t *testing.T) {
	wantErr := errors.New("model unavailable")
	svc, _ := newTestService(t, &fakeAgent{gradeErr: wantErr})

	_, err := svc.GradeCrop(context.Background(), app.GradeCropRequest{
		CropName:   "Paddy",
		FarmerName: "x",
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("agent error not propagated unmodified: %v", err)
	}
}

func TestRecordTransport_ConflictWithholdsEvent(t *testing.T) {
	svc, lots := newTestService(t, &fakeAgent{
		conflictReport: &core.ConflictReport{
			ConflictDetected:  true,
			ConflictDetails:   "cold-chain crop proposed under Normal condition",
			ResolutionOptions: "use a refrigerated vehicle",
		},
	})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{LotID: "LOT-1", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	result, err := svc.RecordTransport(ctx, app.RecordTransportRequest{
		LotID:          "LOT-1",
		VehicleNumber:  "OD-01-AB-1234",
		Condition:      core.ConditionNormal,
		WarehouseEntry: "2024-01-02T10:00",
	})
	if err != nil {
		t.Fatalf("RecordTransport: %v", err)
	}
	if result.Conflict == nil || result.Event != nil {
		t.Fatalf("expected conflict-only result, got %+v", result)
	}

	h, err := lots.History("LOT-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h.TransportEvents) != 0 {
		t.Errorf("conflicting event was persisted: %+v", h.TransportEvents)
	}
}

func TestRecordTransport_NoConflictPersists(t *testing.T) {
	svc, lots := newTestService(t, &fakeAgent{conflictReport: &core.ConflictReport{}})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{LotID: "LOT-1", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	result, err := svc.RecordTransport(ctx, app.RecordTransportRequest{
		LotID:          "LOT-1",
		VehicleNumber:  "OD-01-AB-1234",
		Condition:      core.ConditionColdStorage,
		WarehouseEntry: "2024-01-02T10:00",
	})
	if err != nil {
		t.Fatalf("RecordTransport: %v", err)
	}
	if result.Event == nil || result.Conflict != nil {
		t.Fatalf("expected persisted event, got %+v", result)
	}

	h, _ := lots.History("LOT-1")
	if len(h.TransportEvents) != 1 || h.TransportEvents[0].VehicleNumber != "OD-01-AB-1234" {
		t.Errorf("event not in history: %+v", h.TransportEvents)
	}
}

func TestPurchaseLot_TransfersOwnership(t *testing.T) {
	svc, lots := newTestService(t, &fakeAgent{})
	ctx := context.Background()
	if err := lots.AddLot(ctx, core.Lot{LotID: "LOT-1", OwnerID: "farmer-x", HarvestDate: "2024-01-01"}); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	result, err := svc.PurchaseLot(ctx, "LOT-1", "dist-1")
	if err != nil {
		t.Fatalf("PurchaseLot: %v", err)
	}
	if result.Lot.OwnerID != "dist-1" {
		t.Errorf("owner = %q, want dist-1", result.Lot.OwnerID)
	}

	if _, err := svc.PurchaseLot(ctx, "LOT-404", "dist-1"); !core.IsNotFound(err) {
		t.Errorf("unknown lot: expected ErrNotFound, got %v", err)
	}
}

func TestGradeCrop_MintsDistinctLotIDs(t *testing.T) {
	svc, _ := newTestService(t, &fakeAgent{gradeReport: okGrade()})
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		graded, err := svc.GradeCrop(ctx, app.GradeCropRequest{
			CropName:     "Paddy",
			FarmerName:   "x",
			PhotoDataURI: "data:image/png;base64,yyyy",
		})
		if err != nil {
			t.Fatalf("GradeCrop %d: %v", i, err)
		}
		id := graded.Certificate.LotID
		if seen[id] {
			t.Fatalf("duplicate minted lot ID %q", id)
		}
		seen[id] = true
	}
}
