package app

import "agritrace/internal/core"

// CertificateResult is the staged outcome of a grading run.
type CertificateResult struct {
	Certificate core.GradedLot `json:"certificate"`
}

// LotResult wraps a single lot.
type LotResult struct {
	Lot core.Lot `json:"lot"`
}

// LotListResult wraps the full lot listing.
type LotListResult struct {
	Lots []core.Lot `json:"lots"`
}

// HistoryResult wraps a lot's provenance view.
type HistoryResult struct {
	History *core.LotHistory `json:"history"`
}

// TransportResult is either a persisted event or a withheld conflict; exactly
// one of Event/Conflict is set.
type TransportResult struct {
	Event    *core.TransportEvent `json:"event,omitempty"`
	Conflict *core.ConflictReport `json:"conflict,omitempty"`
}

// RetailResult wraps a persisted retail event.
type RetailResult struct {
	Event core.RetailEvent `json:"event"`
}

// SplitResult carries the sub-lots created by a split.
type SplitResult struct {
	SubLots []core.Lot `json:"sub_lots"`
}

// PackBatchResult carries the packs created in one batch.
type PackBatchResult struct {
	Packs []core.RetailPack `json:"packs"`
}

// PackResult wraps a single retail pack.
type PackResult struct {
	Pack core.RetailPack `json:"pack"`
}

// CropAnalyticsResult wraps the per-crop aggregates.
type CropAnalyticsResult struct {
	Crops []core.CropSummary `json:"crops"`
}

// OwnerAnalyticsResult wraps the per-owner lot counts.
type OwnerAnalyticsResult struct {
	Owners []core.OwnerSummary `json:"owners"`
}
