package core

import (
	"fmt"
	"time"
)

// NewLotID builds a primary lot identifier: LOT-<yyyymmdd>-<seq>.
func NewLotID(day time.Time, seq int) string {
	return fmt.Sprintf("LOT-%s-%03d", day.Format("20060102"), seq)
}

// SubLotID builds a sub-lot identifier: <parent>-SUB-<3-digit-padded seq>.
// Sequences are strictly monotonic per parent, so repeated splits of the same
// lot never collide.
func SubLotID(parentID string, seq int) string {
	return fmt.Sprintf("%s-SUB-%03d", parentID, seq)
}

// PackID builds a retail pack identifier: PACK-<parentLotID>-<3-digit-padded seq>.
func PackID(parentLotID string, seq int) string {
	return fmt.Sprintf("PACK-%s-%03d", parentLotID, seq)
}
