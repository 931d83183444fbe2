// file: internals/features/budget/service/violations.go
package service

/* =========================
   Violation detector
   ========================= */

const (
	ViolationAllocationExceedsAvailable = "allocation_exceeds_available"
	ViolationUtilizedExceedsAllocated   = "utilized_exceeds_allocated"
	ViolationObligatedExceedsParent     = "obligated_exceeds_parent_total"
	ViolationUtilizedExceedsParent      = "utilized_exceeds_parent_total"
)

type Violation struct {
	Check  string  `json:"check"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Limit  float64 `json:"limit"`
	Diff   float64 `json:"diff"`
}

type ViolationReport struct {
	HasViolations bool        `json:"has_violations"`
	Violations    []Violation `json:"violations"`
}

// Candidate is the edit-in-progress financial state of one breakdown.
type Candidate struct {
	Allocated float64
	Obligated float64
	Utilized  float64
}

// DetectViolations runs the four exceedance checks. All four are
// evaluated and reported together, never short-circuited. Violations are
// advisory: the caller decides whether to defer the commit or proceed on
// an explicit override.
func DetectViolations(avail Availability, cand Candidate) ViolationReport {
	var out []Violation

	if cand.Allocated > avail.Available {
		out = append(out, Violation{
			Check:  ViolationAllocationExceedsAvailable,
			Label:  "Allocated budget exceeds the fund's remaining available balance",
			Amount: cand.Allocated,
			Limit:  avail.Available,
			Diff:   cand.Allocated - avail.Available,
		})
	}

	if cand.Utilized > cand.Allocated {
		out = append(out, Violation{
			Check:  ViolationUtilizedExceedsAllocated,
			Label:  "Budget utilized exceeds this breakdown's own allocation",
			Amount: cand.Utilized,
			Limit:  cand.Allocated,
			Diff:   cand.Utilized - cand.Allocated,
		})
	}

	// the parent-total checks are only meaningful once the parent is loaded
	if avail.ParentTotal > 0 {
		if cand.Obligated > avail.ParentTotal {
			out = append(out, Violation{
				Check:  ViolationObligatedExceedsParent,
				Label:  "Obligated budget exceeds the fund's total",
				Amount: cand.Obligated,
				Limit:  avail.ParentTotal,
				Diff:   cand.Obligated - avail.ParentTotal,
			})
		}
		if cand.Utilized > avail.ParentTotal {
			out = append(out, Violation{
				Check:  ViolationUtilizedExceedsParent,
				Label:  "Budget utilized exceeds the fund's total",
				Amount: cand.Utilized,
				Limit:  avail.ParentTotal,
				Diff:   cand.Utilized - avail.ParentTotal,
			})
		}
	}

	return ViolationReport{HasViolations: len(out) > 0, Violations: out}
}

/* =========================
   Deferred-commit sentinel
   ========================= */

// ViolationWarning aborts a transaction when violations were detected
// and the caller did not override. Controllers turn it into a 409 with
// the itemized report.
type ViolationWarning struct {
	Report ViolationReport
}

func (w *ViolationWarning) Error() string {
	return "budget violations detected; confirmation required"
}
