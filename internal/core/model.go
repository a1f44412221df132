package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade is the quality grade assigned to a lot by the grading flow.
type Grade string

const (
	GradePremium  Grade = "Premium"
	GradeStandard Grade = "Standard"
	GradeBasic    Grade = "Basic"
)

// TransportCondition describes how a lot was carried.
type TransportCondition string

const (
	ConditionColdStorage TransportCondition = "Cold Storage"
	ConditionNormal      TransportCondition = "Normal"
)

// Lot is a traceable unit of harvested crop. A lot with a non-empty
// ParentLotID is a sub-lot produced by splitting; splitting transfers the
// parent's full weight, so the parent is left at weight zero.
type Lot struct {
	LotID           string          `json:"lot_id"`
	FarmerName      string          `json:"farmer_name"`
	CropName        string          `json:"crop_name"`
	WeightQuintals  decimal.Decimal `json:"weight_quintals"`
	HarvestDate     string          `json:"harvest_date"` // YYYY-MM-DD
	PricePerQuintal decimal.Decimal `json:"price_per_quintal"`
	Grade           Grade           `json:"grade"`
	OwnerID         string          `json:"owner_id"`
	Location        string          `json:"location,omitempty"`
	ParentLotID     string          `json:"parent_lot_id,omitempty"`
}

// LotPatch carries the fields UpdateLot may change. Nil pointers leave the
// existing value untouched.
type LotPatch struct {
	WeightQuintals  *decimal.Decimal `json:"weight_quintals,omitempty"`
	PricePerQuintal *decimal.Decimal `json:"price_per_quintal,omitempty"`
	OwnerID         *string          `json:"owner_id,omitempty"`
	Location        *string          `json:"location,omitempty"`
	Grade           *Grade           `json:"grade,omitempty"`
}

// GradedLot is an AI-graded certificate staged until the farmer claims it
// during registration. Claiming is at-most-once.
type GradedLot struct {
	LotID          string          `json:"lot_id"`
	FarmerName     string          `json:"farmer_name"`
	CropName       string          `json:"crop_name"`
	WeightQuintals decimal.Decimal `json:"weight_quintals"`
	HarvestDate    string          `json:"harvest_date"`
	Location       string          `json:"location,omitempty"`
	Moisture       string          `json:"moisture"`
	Impurities     string          `json:"impurities"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Grade          Grade           `json:"grade"`
	GradedAt       time.Time       `json:"graded_at"`
}

// TransportEvent is an append-only logistics record for a lot.
type TransportEvent struct {
	VehicleNumber  string             `json:"vehicle_number"`
	Condition      TransportCondition `json:"condition"`
	WarehouseEntry string             `json:"warehouse_entry"` // YYYY-MM-DDTHH:MM wall clock
	RecordedAt     time.Time          `json:"recorded_at"`
}

// RetailEvent records a lot reaching a store shelf.
type RetailEvent struct {
	StoreID    string    `json:"store_id"`
	ShelfDate  string    `json:"shelf_date"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RetailPack is a consumer-facing subdivision of a lot, tracked separately
// from sub-lots.
type RetailPack struct {
	PackID      string          `json:"pack_id"`
	ParentLotID string          `json:"parent_lot_id"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

// LotHistory is the derived provenance view for a lot. It is recomputed on
// every query and never cached. Parent and Children are populated only by the
// full-trace variant.
type LotHistory struct {
	Lot             Lot              `json:"lot"`
	TransportEvents []TransportEvent `json:"transport_events"`
	RetailEvents    []RetailEvent    `json:"retail_events"`
	Parent          *Lot             `json:"parent,omitempty"`
	Children        []Lot            `json:"children,omitempty"`
}
