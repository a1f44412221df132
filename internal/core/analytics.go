package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CropSummary aggregates lots by crop for the dashboard charts.
type CropSummary struct {
	CropName     string          `json:"crop_name"`
	LotCount     int             `json:"lot_count"`
	TotalWeight  decimal.Decimal `json:"total_weight_quintals"`
	AveragePrice decimal.Decimal `json:"average_price_per_quintal"`
}

// OwnerSummary counts lots per current owner.
type OwnerSummary struct {
	OwnerID  string `json:"owner_id"`
	LotCount int    `json:"lot_count"`
}

// CropSummaries derives per-crop totals from the current lot set: lot count,
// total weight, and average price (2-decimal). Output is sorted by crop name.
func (s *LotStore) CropSummaries() []CropSummary {
	lots := s.AllLots()

	byCrop := make(map[string]*CropSummary)
	priceSums := make(map[string]decimal.Decimal)
	for _, lot := range lots {
		cs, ok := byCrop[lot.CropName]
		if !ok {
			cs = &CropSummary{CropName: lot.CropName}
			byCrop[lot.CropName] = cs
		}
		cs.LotCount++
		cs.TotalWeight = cs.TotalWeight.Add(lot.WeightQuintals)
		priceSums[lot.CropName] = priceSums[lot.CropName].Add(lot.PricePerQuintal)
	}

	out := make([]CropSummary, 0, len(byCrop))
	for crop, cs := range byCrop {
		cs.AveragePrice = priceSums[crop].Div(decimal.NewFromInt(int64(cs.LotCount))).Round(2)
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CropName < out[j].CropName })
	return out
}

// OwnerSummaries counts lots held by each current owner, sorted by owner ID.
func (s *LotStore) OwnerSummaries() []OwnerSummary {
	counts := make(map[string]int)
	for _, lot := range s.AllLots() {
		counts[lot.OwnerID]++
	}

	out := make([]OwnerSummary, 0, len(counts))
	for owner, n := range counts {
		out = append(out, OwnerSummary{OwnerID: owner, LotCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OwnerID < out[j].OwnerID })
	return out
}
