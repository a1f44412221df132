package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// LotStore holds every lot, its event logs, and retail packs. All access goes
// through its methods; every mutation persists the store's full snapshot to
// the injected repository before returning (last-writer-wins, no merge).
type LotStore struct {
	mu   sync.RWMutex
	repo Repository

	lots      map[string]Lot
	transport map[string][]TransportEvent
	retail    map[string][]RetailEvent
	packs     map[string]RetailPack
}

// NewLotStore restores a LotStore from the repository's current snapshot.
// Absent buckets start the store empty.
func NewLotStore(ctx context.Context, repo Repository) (*LotStore, error) {
	s := &LotStore{
		repo:      repo,
		lots:      make(map[string]Lot),
		transport: make(map[string][]TransportEvent),
		retail:    make(map[string][]RetailEvent),
		packs:     make(map[string]RetailPack),
	}

	buckets, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lot store snapshot: %w", err)
	}
	if err := decodeBucket(buckets, BucketLots, &s.lots); err != nil {
		return nil, err
	}
	if err := decodeBucket(buckets, BucketTransportEvents, &s.transport); err != nil {
		return nil, err
	}
	if err := decodeBucket(buckets, BucketRetailEvents, &s.retail); err != nil {
		return nil, err
	}
	if err := decodeBucket(buckets, BucketRetailPacks, &s.packs); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeBucket(buckets map[string][]byte, name string, into any) error {
	payload, ok := buckets[name]
	if !ok || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, into); err != nil {
		return fmt.Errorf("failed to decode bucket %s: %w", name, err)
	}
	return nil
}

// AddLot inserts the lot at its ID. A duplicate registration silently
// replaces the prior record (map-key overwrite semantics).
func (s *LotStore) AddLot(ctx context.Context, lot Lot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots[lot.LotID] = lot
	return s.persistLocked(ctx)
}

// UpdateLot merges the patch into the existing lot. An unknown lot ID is a
// silent no-op: the store is left unchanged and ok is false, with no error.
func (s *LotStore) UpdateLot(ctx context.Context, lotID string, patch LotPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return false, nil
	}
	if patch.WeightQuintals != nil {
		lot.WeightQuintals = *patch.WeightQuintals
	}
	if patch.PricePerQuintal != nil {
		lot.PricePerQuintal = *patch.PricePerQuintal
	}
	if patch.OwnerID != nil {
		lot.OwnerID = *patch.OwnerID
	}
	if patch.Location != nil {
		lot.Location = *patch.Location
	}
	if patch.Grade != nil {
		lot.Grade = *patch.Grade
	}
	s.lots[lotID] = lot
	return true, s.persistLocked(ctx)
}

// AddTransportEvent appends to the lot's transport log, creating the log if
// absent. Append order is the chronological order of calls; events are never
// reordered, mutated, or removed.
func (s *LotStore) AddTransportEvent(ctx context.Context, lotID string, ev TransportEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport[lotID] = append(s.transport[lotID], ev)
	return s.persistLocked(ctx)
}

// AddRetailEvent appends to the lot's retail log, creating the log if absent.
func (s *LotStore) AddRetailEvent(ctx context.Context, lotID string, ev RetailEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retail[lotID] = append(s.retail[lotID], ev)
	return s.persistLocked(ctx)
}

// AddRetailPacks bulk-merges a batch of packs into the pack map.
func (s *LotStore) AddRetailPacks(ctx context.Context, packs []RetailPack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range packs {
		s.packs[p.PackID] = p
	}
	return s.persistLocked(ctx)
}

// FindLot is a point lookup; ok is false when the lot is unknown.
func (s *LotStore) FindLot(lotID string) (Lot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lot, ok := s.lots[lotID]
	return lot, ok
}

// FindPack is a point lookup; ok is false when the pack is unknown.
func (s *LotStore) FindPack(packID string) (RetailPack, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packs[packID]
	return p, ok
}

// AllLots returns every lot sorted by harvest date descending (most recent
// first). The sort is a full re-sort on every call.
func (s *LotStore) AllLots() []Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allLotsLocked()
}

func (s *LotStore) allLotsLocked() []Lot {
	lots := make([]Lot, 0, len(s.lots))
	for _, lot := range s.lots {
		lots = append(lots, lot)
	}
	sort.Slice(lots, func(i, j int) bool {
		if lots[i].HarvestDate != lots[j].HarvestDate {
			return lots[i].HarvestDate > lots[j].HarvestDate
		}
		return lots[i].LotID > lots[j].LotID // stable order for equal dates
	})
	return lots
}

// CountLotsForDay returns how many primary lots carry the given LOT-<day>-
// prefix. Used when minting the next sequence number for a day's lot IDs.
func (s *LotStore) CountLotsForDay(prefix string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for id := range s.lots {
		if strings.HasPrefix(id, prefix) && !strings.Contains(id, "-SUB-") {
			n++
		}
	}
	return n
}

// persistLocked snapshots all four lot-store buckets through the repository.
// Callers must hold the write lock.
func (s *LotStore) persistLocked(ctx context.Context) error {
	buckets := make(map[string][]byte, 4)
	for name, v := range map[string]any{
		BucketLots:            s.lots,
		BucketTransportEvents: s.transport,
		BucketRetailEvents:    s.retail,
		BucketRetailPacks:     s.packs,
	} {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode bucket %s: %w", name, err)
		}
		buckets[name] = payload
	}
	if err := s.repo.Save(ctx, buckets); err != nil {
		return fmt.Errorf("failed to persist lot store snapshot: %w", err)
	}
	return nil
}
