// file: internals/features/budget/service/availability.go
package service

import (
	"github.com/google/uuid"

	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
)

// Availability is the remaining-capacity verdict under one parent fund.
// Difference keeps the raw (possibly negative) value for display even
// though Available is clamped at zero.
type Availability struct {
	ParentTotal      float64 `json:"parent_total"`
	AlreadyAllocated float64 `json:"already_allocated"`
	Available        float64 `json:"available"`
	IsExceeded       bool    `json:"is_exceeded"`
	Difference       float64 `json:"difference"`
}

// ComputeAvailability sums the allocations of active siblings (the row
// being edited excluded from its own capacity check) and measures the
// candidate amount against what is left. Pure; O(n) over siblings.
func ComputeAvailability(parentTotal float64, siblings []breakdownmodel.BreakdownCore, excludeID uuid.UUID, candidate float64) Availability {
	var already float64
	for _, s := range siblings {
		if s.IsDeleted() {
			continue
		}
		if excludeID != uuid.Nil && s.FundBreakdownID == excludeID {
			continue
		}
		already += s.FundBreakdownAllocated
	}

	available := parentTotal - already
	if available < 0 {
		available = 0
	}

	return Availability{
		ParentTotal:      parentTotal,
		AlreadyAllocated: already,
		Available:        available,
		IsExceeded:       candidate > available,
		Difference:       candidate - available,
	}
}
