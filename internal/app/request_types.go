package app

import (
	"github.com/shopspring/decimal"

	"agritrace/internal/core"
)

// GradeCropRequest carries a farmer's grading submission. PhotoDataURI is the
// captured crop photo as a data: URI for the vision model.
type GradeCropRequest struct {
	CropName       string          `json:"crop_name"`
	FarmerName     string          `json:"farmer_name"`
	Location       string          `json:"location"`
	WeightQuintals decimal.Decimal `json:"weight_quintals"`
	HarvestDate    string          `json:"harvest_date"`
	PhotoDataURI   string          `json:"photo_data_uri"`
}

// RegisterLotRequest claims a staged certificate and sets the asking price.
type RegisterLotRequest struct {
	LotID           string          `json:"lot_id"`
	FarmerID        string          `json:"farmer_id"`
	PricePerQuintal decimal.Decimal `json:"price_per_quintal"`
}

// RecordTransportRequest proposes a transport event for a lot.
type RecordTransportRequest struct {
	LotID          string                  `json:"lot_id"`
	VehicleNumber  string                  `json:"vehicle_number"`
	Condition      core.TransportCondition `json:"condition"`
	WarehouseEntry string                  `json:"warehouse_entry"`
}

// RecordRetailRequest records a lot reaching a store shelf.
type RecordRetailRequest struct {
	LotID     string `json:"lot_id"`
	StoreID   string `json:"store_id"`
	ShelfDate string `json:"shelf_date"`
}
