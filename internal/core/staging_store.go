package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// StagingStore holds AI-graded certificates pending farmer registration,
// keyed by lot ID. Its snapshot lives in its own bucket, independent of the
// lot store's.
type StagingStore struct {
	mu   sync.Mutex
	repo Repository

	graded map[string]GradedLot
}

// NewStagingStore restores a StagingStore from the repository snapshot.
func NewStagingStore(ctx context.Context, repo Repository) (*StagingStore, error) {
	s := &StagingStore{repo: repo, graded: make(map[string]GradedLot)}
	buckets, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staging store snapshot: %w", err)
	}
	if err := decodeBucket(buckets, BucketGradedLots, &s.graded); err != nil {
		return nil, err
	}
	return s, nil
}

// AddLot stages a graded certificate, overwriting any prior record at the
// same lot ID.
func (s *StagingStore) AddLot(ctx context.Context, g GradedLot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graded[g.LotID] = g
	return s.persistLocked(ctx)
}

// FindAndRemoveLot atomically claims a staged certificate: the lookup and the
// delete happen under one lock acquisition, so a given lot ID is claimable by
// exactly one caller. A second call for the same ID returns ErrNotFound.
func (s *StagingStore) FindAndRemoveLot(ctx context.Context, lotID string) (GradedLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.graded[lotID]
	if !ok {
		return GradedLot{}, ErrNotFound
	}
	delete(s.graded, lotID)
	if err := s.persistLocked(ctx); err != nil {
		// Claim already took effect in memory; surface the persistence failure.
		return g, err
	}
	return g, nil
}

// HasLot reports whether a certificate is currently staged, without claiming it.
func (s *StagingStore) HasLot(lotID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.graded[lotID]
	return ok
}

// Count returns the number of certificates currently staged.
func (s *StagingStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.graded)
}

func (s *StagingStore) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.graded)
	if err != nil {
		return fmt.Errorf("failed to encode bucket %s: %w", BucketGradedLots, err)
	}
	if err := s.repo.Save(ctx, map[string][]byte{BucketGradedLots: payload}); err != nil {
		return fmt.Errorf("failed to persist staging store snapshot: %w", err)
	}
	return nil
}
