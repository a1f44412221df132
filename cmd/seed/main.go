// Command seed loads a small demo dataset into the snapshot store: three
// registered lots with transport history, one staged certificate, and a split
// lot with retail packs. Run it against a fresh database before demos.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"agritrace/internal/core"
	"agritrace/internal/db"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	repo, err := db.NewSQLiteRepository(os.Getenv("AGRITRACE_DB"))
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer repo.Close()

	lots, err := core.NewLotStore(ctx, repo)
	if err != nil {
		log.Fatalf("lot store: %v", err)
	}
	staging, err := core.NewStagingStore(ctx, repo)
	if err != nil {
		log.Fatalf("staging store: %v", err)
	}

	seedLots := []core.Lot{
		{
			LotID:           "LOT-20260810-001",
			FarmerName:      "Ramesh Sahoo",
			CropName:        "Paddy",
			WeightQuintals:  decimal.NewFromInt(24),
			HarvestDate:     "2026-08-10",
			PricePerQuintal: decimal.NewFromInt(2300),
			Grade:           core.GradePremium,
			OwnerID:         "farmer-ramesh",
			Location:        "Cuttack",
		},
		{
			LotID:           "LOT-20260812-001",
			FarmerName:      "Sita Behera",
			CropName:        "Turmeric",
			WeightQuintals:  decimal.NewFromInt(8),
			HarvestDate:     "2026-08-12",
			PricePerQuintal: decimal.NewFromInt(7400),
			Grade:           core.GradeStandard,
			OwnerID:         "dist-eastern",
			Location:        "Kandhamal",
		},
		{
			LotID:           "LOT-20260815-001",
			FarmerName:      "Prakash Nayak",
			CropName:        "Paddy",
			WeightQuintals:  decimal.NewFromInt(15),
			HarvestDate:     "2026-08-15",
			PricePerQuintal: decimal.NewFromInt(2250),
			Grade:           core.GradeBasic,
			OwnerID:         "farmer-prakash",
			Location:        "Balasore",
		},
	}
	for _, lot := range seedLots {
		if err := lots.AddLot(ctx, lot); err != nil {
			log.Fatalf("seed lot %s: %v", lot.LotID, err)
		}
	}

	if err := lots.AddTransportEvent(ctx, "LOT-20260812-001", core.TransportEvent{
		VehicleNumber:  "OD-05-CZ-7731",
		Condition:      core.ConditionNormal,
		WarehouseEntry: "2026-08-14T09:30",
		RecordedAt:     time.Now().UTC(),
	}); err != nil {
		log.Fatalf("seed transport event: %v", err)
	}

	if _, err := lots.SplitLot(ctx, "LOT-20260810-001", 2, "dist-eastern"); err != nil {
		log.Fatalf("seed split: %v", err)
	}
	if _, err := lots.BuildRetailPacks(ctx, "LOT-20260810-001-SUB-001", 5); err != nil {
		log.Fatalf("seed packs: %v", err)
	}

	if err := staging.AddLot(ctx, core.GradedLot{
		LotID:          "LOT-20260829-001",
		FarmerName:     "Sita Behera",
		CropName:       "Turmeric",
		WeightQuintals: decimal.NewFromInt(6),
		HarvestDate:    "2026-08-29",
		Location:       "Kandhamal",
		Moisture:       "11.8%",
		Impurities:     "0.9%",
		Size:           "Uniform, large rhizomes",
		Color:          "Deep yellow",
		Grade:          core.GradePremium,
		GradedAt:       time.Now().UTC(),
	}); err != nil {
		log.Fatalf("seed certificate: %v", err)
	}

	log.Printf("seeded %d lots, 1 staged certificate", len(seedLots)+2)
}
