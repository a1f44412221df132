package core

import "context"

// Bucket names under which store snapshots are persisted. The lot store owns
// the first four; the staging store owns graded_lots. The two stores never
// touch each other's buckets, so their snapshots stay independently
// namespaced even when they share one repository.
const (
	BucketLots            = "lots"
	BucketTransportEvents = "transport_events"
	BucketRetailEvents    = "retail_events"
	BucketRetailPacks     = "retail_packs"
	BucketGradedLots      = "graded_lots"
)

// Repository persists whole-store snapshots as JSON bucket payloads.
// Save upserts exactly the buckets it is given, atomically: a snapshot that
// spans several buckets lands as one unit or not at all. Load returns every
// stored bucket; callers pick out the ones they own. Missing buckets are
// simply absent from the map.
type Repository interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, buckets map[string][]byte) error
}
