package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitLot divides a source lot into n sub-lots owned by ownerID. Each child
// gets weight/n and price/n, rounded to 2 decimals, a monotonic
// <parent>-SUB-NNN identifier, and ParentLotID set to the source. The source
// lot's weight drops to exactly zero (full transfer — no retained quantity).
// Children and the zeroed parent land in one snapshot save: both take effect
// or neither does.
func (s *LotStore) SplitLot(ctx context.Context, lotID string, n int, ownerID string) ([]Lot, error) {
	if n < 2 {
		return nil, fmt.Errorf("split count must be at least 2, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.lots[lotID]
	if !ok {
		return nil, ErrNotFound
	}
	if source.WeightQuintals.IsZero() {
		return nil, fmt.Errorf("lot %s has no remaining weight to split", lotID)
	}

	parts := decimal.NewFromInt(int64(n))
	childWeight := source.WeightQuintals.Div(parts).Round(2)
	childPrice := source.PricePerQuintal.Div(parts).Round(2)

	// Continue the child sequence past any earlier splits of this lot.
	seq := 0
	for id := range s.lots {
		if s.lots[id].ParentLotID == lotID {
			seq++
		}
	}

	children := make([]Lot, 0, n)
	for i := 0; i < n; i++ {
		child := Lot{
			LotID:           SubLotID(lotID, seq+i+1),
			FarmerName:      source.FarmerName,
			CropName:        source.CropName,
			WeightQuintals:  childWeight,
			HarvestDate:     source.HarvestDate,
			PricePerQuintal: childPrice,
			Grade:           source.Grade,
			OwnerID:         ownerID,
			Location:        source.Location,
			ParentLotID:     lotID,
		}
		children = append(children, child)
		s.lots[child.LotID] = child
	}

	source.WeightQuintals = decimal.Zero
	s.lots[lotID] = source

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return children, nil
}

// BuildRetailPacks splits a lot's weight evenly across n consumer packs.
// Pack weight is in kilograms (1 quintal = 100 kg), rounded to 2 decimals.
// Pack sequences continue past earlier batches for the same lot. The lot
// itself is not mutated; packs are tracked separately from sub-lots.
func (s *LotStore) BuildRetailPacks(ctx context.Context, lotID string, n int) ([]RetailPack, error) {
	if n < 1 {
		return nil, fmt.Errorf("pack count must be at least 1, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.lots[lotID]
	if !ok {
		return nil, ErrNotFound
	}
	if source.WeightQuintals.IsZero() {
		return nil, fmt.Errorf("lot %s has no remaining weight to pack", lotID)
	}

	weightKg := source.WeightQuintals.Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(n))).Round(2)

	seq := 0
	for _, p := range s.packs {
		if p.ParentLotID == lotID {
			seq++
		}
	}

	packs := make([]RetailPack, 0, n)
	for i := 0; i < n; i++ {
		pack := RetailPack{
			PackID:      PackID(lotID, seq+i+1),
			ParentLotID: lotID,
			WeightKg:    weightKg,
		}
		packs = append(packs, pack)
		s.packs[pack.PackID] = pack
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return packs, nil
}
