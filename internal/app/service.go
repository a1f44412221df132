package app

import "context"

// ApplicationService is the single interface every adapter calls. It
// decouples presentation from the stores and the AI collaborators;
// implementations contain no display logic of any kind.
type ApplicationService interface {
	// GradeCrop runs the AI grading collaborator over the submitted crop
	// photo, mints a lot identifier, and stages the resulting certificate
	// for registration.
	GradeCrop(ctx context.Context, req GradeCropRequest) (*CertificateResult, error)

	// RegisterLot claims a staged certificate (at-most-once) and registers
	// the lot under the farmer's ownership with the asking price.
	RegisterLot(ctx context.Context, req RegisterLotRequest) (*LotResult, error)

	// ListLots returns every lot, most recent harvest first.
	ListLots(ctx context.Context) (*LotListResult, error)

	// GetLot returns a single lot by ID.
	GetLot(ctx context.Context, lotID string) (*LotResult, error)

	// GetLotHistory returns the provenance view for a lot. With full set,
	// the view also carries the immediate parent and direct child lots.
	GetLotHistory(ctx context.Context, lotID string, full bool) (*HistoryResult, error)

	// PurchaseLot transfers current ownership of a lot to the buyer.
	PurchaseLot(ctx context.Context, lotID, buyerID string) (*LotResult, error)

	// RecordTransport runs the AI conflict check over the proposed event.
	// On conflict the event is withheld and the report returned; otherwise
	// the event is appended to the lot's transport log.
	RecordTransport(ctx context.Context, req RecordTransportRequest) (*TransportResult, error)

	// RecordRetail appends a retail event to the lot's retail log.
	RecordRetail(ctx context.Context, req RecordRetailRequest) (*RetailResult, error)

	// SplitLot divides a lot into n sub-lots owned by the distributor,
	// zeroing the source lot's weight in the same snapshot.
	SplitLot(ctx context.Context, lotID string, parts int, distributorID string) (*SplitResult, error)

	// CreateRetailPacks splits a lot's weight evenly across n consumer packs.
	CreateRetailPacks(ctx context.Context, lotID string, count int) (*PackBatchResult, error)

	// GetPack returns a single retail pack by ID.
	GetPack(ctx context.Context, packID string) (*PackResult, error)

	// CropAnalytics returns per-crop lot counts, total weight, and average price.
	CropAnalytics(ctx context.Context) (*CropAnalyticsResult, error)

	// OwnerAnalytics returns lot counts per current owner.
	OwnerAnalytics(ctx context.Context) (*OwnerAnalyticsResult, error)
}
