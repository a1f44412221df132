package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agritrace/internal/ai"
	"agritrace/internal/core"
)

type appService struct {
	lots    *core.LotStore
	staging *core.StagingStore
	agent   ai.AgentService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(lots *core.LotStore, staging *core.StagingStore, agent ai.AgentService) ApplicationService {
	return &appService{lots: lots, staging: staging, agent: agent}
}

// GradeCrop runs the grading collaborator and stages the certificate under a
// freshly minted lot ID.
func (s *appService) GradeCrop(ctx context.Context, req GradeCropRequest) (*CertificateResult, error) {
	report, err := s.agent.GradeCrop(ctx, ai.GradeRequest{
		CropName:     req.CropName,
		FarmerName:   req.FarmerName,
		Location:     req.Location,
		PhotoDataURI: req.PhotoDataURI,
	})
	if err != nil {
		return nil, err
	}

	harvestDate := req.HarvestDate
	if harvestDate == "" {
		harvestDate = time.Now().Format("2006-01-02")
	}

	cert := core.GradedLot{
		LotID:          s.nextLotID(time.Now()),
		FarmerName:     req.FarmerName,
		CropName:       req.CropName,
		WeightQuintals: req.WeightQuintals,
		HarvestDate:    harvestDate,
		Location:       req.Location,
		Moisture:       report.Moisture,
		Impurities:     report.Impurities,
		Size:           report.Size,
		Color:          report.Color,
		Grade:          report.Grade,
		GradedAt:       time.Now().UTC(),
	}
	if err := s.staging.AddLot(ctx, cert); err != nil {
		return nil, err
	}
	return &CertificateResult{Certificate: cert}, nil
}

// RegisterLot claims the staged certificate (exactly once) and turns it into
// a registered lot owned by the farmer.
func (s *appService) RegisterLot(ctx context.Context, req RegisterLotRequest) (*LotResult, error) {
	cert, err := s.staging.FindAndRemoveLot(ctx, req.LotID)
	if err != nil {
		return nil, err
	}

	lot := core.Lot{
		LotID:           cert.LotID,
		FarmerName:      cert.FarmerName,
		CropName:        cert.CropName,
		WeightQuintals:  cert.WeightQuintals,
		HarvestDate:     cert.HarvestDate,
		PricePerQuintal: req.PricePerQuintal,
		Grade:           cert.Grade,
		OwnerID:         req.FarmerID,
		Location:        cert.Location,
	}
	if err := s.lots.AddLot(ctx, lot); err != nil {
		return nil, err
	}
	return &LotResult{Lot: lot}, nil
}

// ListLots returns every lot, most recent harvest first.
func (s *appService) ListLots(ctx context.Context) (*LotListResult, error) {
	return &LotListResult{Lots: s.lots.AllLots()}, nil
}

// GetLot returns a single lot by ID.
func (s *appService) GetLot(ctx context.Context, lotID string) (*LotResult, error) {
	lot, ok := s.lots.FindLot(lotID)
	if !ok {
		return nil, core.ErrNotFound
	}
	return &LotResult{Lot: lot}, nil
}

// GetLotHistory returns the provenance view; full adds parent and children.
func (s *appService) GetLotHistory(ctx context.Context, lotID string, full bool) (*HistoryResult, error) {
	var (
		h   *core.LotHistory
		err error
	)
	if full {
		h, err = s.lots.FullTrace(lotID)
	} else {
		h, err = s.lots.History(lotID)
	}
	if err != nil {
		return nil, err
	}
	return &HistoryResult{History: h}, nil
}

// PurchaseLot transfers ownership of the lot to the buyer.
func (s *appService) PurchaseLot(ctx context.Context, lotID, buyerID string) (*LotResult, error) {
	if _, ok := s.lots.FindLot(lotID); !ok {
		return nil, core.ErrNotFound
	}
	if _, err := s.lots.UpdateLot(ctx, lotID, core.LotPatch{OwnerID: &buyerID}); err != nil {
		return nil, err
	}
	lot, _ := s.lots.FindLot(lotID)
	return &LotResult{Lot: lot}, nil
}

// RecordTransport runs the conflict check first; a detected conflict withholds
// the event and carries the report back to the caller instead.
func (s *appService) RecordTransport(ctx context.Context, req RecordTransportRequest) (*TransportResult, error) {
	lot, ok := s.lots.FindLot(req.LotID)
	if !ok {
		return nil, core.ErrNotFound
	}

	lotJSON, err := json.Marshal(lot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize lot for conflict check: %w", err)
	}

	report, err := s.agent.DetectTransportConflict(ctx, ai.ConflictRequest{
		LotJSON:        string(lotJSON),
		VehicleNumber:  req.VehicleNumber,
		Condition:      req.Condition,
		WarehouseEntry: req.WarehouseEntry,
	})
	if err != nil {
		return nil, err
	}
	if report.ConflictDetected {
		return &TransportResult{Conflict: report}, nil
	}

	ev := core.TransportEvent{
		VehicleNumber:  req.VehicleNumber,
		Condition:      req.Condition,
		WarehouseEntry: req.WarehouseEntry,
		RecordedAt:     time.Now().UTC(),
	}
	if err := s.lots.AddTransportEvent(ctx, req.LotID, ev); err != nil {
		return nil, err
	}
	return &TransportResult{Event: &ev}, nil
}

// RecordRetail appends a retail event to the lot's log.
func (s *appService) RecordRetail(ctx context.Context, req RecordRetailRequest) (*RetailResult, error) {
	if _, ok := s.lots.FindLot(req.LotID); !ok {
		return nil, core.ErrNotFound
	}
	ev := core.RetailEvent{
		StoreID:    req.StoreID,
		ShelfDate:  req.ShelfDate,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.lots.AddRetailEvent(ctx, req.LotID, ev); err != nil {
		return nil, err
	}
	return &RetailResult{Event: ev}, nil
}

// SplitLot divides a lot into sub-lots owned by the distributor.
func (s *appService) SplitLot(ctx context.Context, lotID string, parts int, distributorID string) (*SplitResult, error) {
	children, err := s.lots.SplitLot(ctx, lotID, parts, distributorID)
	if err != nil {
		return nil, err
	}
	return &SplitResult{SubLots: children}, nil
}

// CreateRetailPacks builds an even pack batch for the lot.
func (s *appService) CreateRetailPacks(ctx context.Context, lotID string, count int) (*PackBatchResult, error) {
	packs, err := s.lots.BuildRetailPacks(ctx, lotID, count)
	if err != nil {
		return nil, err
	}
	return &PackBatchResult{Packs: packs}, nil
}

// GetPack returns a single retail pack by ID.
func (s *appService) GetPack(ctx context.Context, packID string) (*PackResult, error) {
	pack, ok := s.lots.FindPack(packID)
	if !ok {
		return nil, core.ErrNotFound
	}
	return &PackResult{Pack: pack}, nil
}

// CropAnalytics returns per-crop aggregates.
func (s *appService) CropAnalytics(ctx context.Context) (*CropAnalyticsResult, error) {
	return &CropAnalyticsResult{Crops: s.lots.CropSummaries()}, nil
}

// OwnerAnalytics returns per-owner lot counts.
func (s *appService) OwnerAnalytics(ctx context.Context) (*OwnerAnalyticsResult, error) {
	return &OwnerAnalyticsResult{Owners: s.lots.OwnerSummaries()}, nil
}

// nextLotID mints the day's next free LOT-<yyyymmdd>-<seq> identifier,
// skipping sequences already taken by registered lots or staged certificates.
func (s *appService) nextLotID(day time.Time) string {
	prefix := fmt.Sprintf("LOT-%s-", day.Format("20060102"))
	seq := s.lots.CountLotsForDay(prefix)
	for {
		seq++
		id := core.NewLotID(day, seq)
		if s.staging.HasLot(id) {
			continue
		}
		if _, taken := s.lots.FindLot(id); taken {
			continue
		}
		return id
	}
}
