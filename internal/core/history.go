package core

// History composes the provenance view for a lot: the lot record plus its
// transport and retail logs in append order. Missing logs come back as empty
// slices, never nil. Unknown lot IDs return ErrNotFound.
func (s *LotStore) History(lotID string) (*LotHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyLocked(lotID)
}

// FullTrace is the extended variant: History plus the immediate parent lot
// (one level only, no recursive ancestor walk) and the direct children found
// by scanning every lot for a matching ParentLotID. The scan is O(total
// lots) per call, which is fine at the data volumes this store sees.
func (s *LotStore) FullTrace(lotID string) (*LotHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, err := s.historyLocked(lotID)
	if err != nil {
		return nil, err
	}
	if h.Lot.ParentLotID != "" {
		if parent, ok := s.lots[h.Lot.ParentLotID]; ok {
			h.Parent = &parent
		}
	}
	for _, lot := range s.allLotsLocked() {
		if lot.ParentLotID == lotID {
			h.Children = append(h.Children, lot)
		}
	}
	return h, nil
}

func (s *LotStore) historyLocked(lotID string) (*LotHistory, error) {
	lot, ok := s.lots[lotID]
	if !ok {
		return nil, ErrNotFound
	}

	transport := make([]TransportEvent, len(s.transport[lotID]))
	copy(transport, s.transport[lotID])
	retail := make([]RetailEvent, len(s.retail[lotID]))
	copy(retail, s.retail[lotID])

	return &LotHistory{
		Lot:             lot,
		TransportEvents: transport,
		RetailEvents:    retail,
	}, nil
}
