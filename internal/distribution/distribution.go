package distribution

import (
	"fmt"
	"sync"
)

// The eight Qur'anic recipient categories (asnaf).
const (
	ThePoor           = "the_poor"            // al-fuqara
	TheNeedy          = "the_needy"           // al-masakin
	Administrators    = "zakat_administrators" // al-amilin
	HeartsReconciled  = "hearts_reconciled"    // al-muallaf
	FreeingCaptives   = "freeing_captives"     // ar-riqab
	Debtors           = "debtors"              // al-gharimin
	CauseOfAllah      = "cause_of_allah"       // fi sabilillah
	Wayfarers         = "wayfarers"            // ibn as-sabil
)

// CategoryIDs lists all asnaf in canonical order.
var CategoryIDs = []string{
	ThePoor, TheNeedy, Administrators, HeartsReconciled,
	FreeingCaptives, Debtors, CauseOfAllah, Wayfarers,
}

// Mode of the current allocation table.
type Mode string

const (
	ModeEqual   Mode = "equal"
	ModeScholar Mode = "scholar"
	ModeCustom  Mode = "custom"
)

// defaultScholarWeights emphasizes direct poverty relief. Treated as a
// policy table, replaceable via SetScholarWeights.
var defaultScholarWeights = map[string]float64{
	ThePoor:          30,
	TheNeedy:         25,
	Administrators:   10,
	HeartsReconciled: 5,
	FreeingCaptives:  5,
	Debtors:          10,
	CauseOfAllah:     10,
	Wayfarers:        5,
}

// Allocation is one recipient category's share of the zakat due.
type Allocation struct {
	CategoryID string  `json:"categoryId"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Snapshot is the externally visible allocation state.
type Snapshot struct {
	Mode        Mode         `json:"mode"`
	TotalDue    float64      `json:"totalDue"`
	Allocations []Allocation `json:"allocations"`
}

// Allocator maintains the eight-entry allocation table. Percentages
// always sum to 100 after any mutation; amounts are re-derived from
// percentages on every change. Each mutation computes all eight new
// values before publishing any of them, guarded by a mutex so partial
// updates are never observable.
type Allocator struct {
	mu             sync.Mutex
	mode           Mode
	totalDue       float64
	percentages    map[string]float64
	scholarWeights map[string]float64
}

// NewAllocator starts at an equal 12.5% split with zero total due.
func NewAllocator() *Allocator {
	a := &Allocator{
		mode:           ModeEqual,
		percentages:    make(map[string]float64, len(CategoryIDs)),
		scholarWeights: defaultScholarWeights,
	}
	for _, id := range CategoryIDs {
		a.percentages[id] = 100.0 / float64(len(CategoryIDs))
	}
	return a
}

// DistributeEqually resets all eight categories to exactly 12.5%.
func (a *Allocator) DistributeEqually() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range CategoryIDs {
		a.percentages[id] = 100.0 / float64(len(CategoryIDs))
	}
	a.mode = ModeEqual
	return a.snapshotLocked()
}

// DistributeByScholar applies the scholar weighting table.
func (a *Allocator) DistributeByScholar() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range CategoryIDs {
		a.percentages[id] = a.scholarWeights[id]
	}
	a.mode = ModeScholar
	return a.snapshotLocked()
}

// SetScholarWeights replaces the scholar policy table. Weights must
// cover exactly the eight categories, be non-negative, and sum to 100
// within tolerance. Does not change the current allocation until
// DistributeByScholar is called.
func (a *Allocator) SetScholarWeights(weights map[string]float64) error {
	var sum float64
	for _, id := range CategoryIDs {
		w, ok := weights[id]
		if !ok {
			return fmt.Errorf("scholar weights: missing category %q", id)
		}
		if w < 0 {
			return fmt.Errorf("scholar weights: negative weight for %q", id)
		}
		sum += w
	}
	if sum < 100-1e-6 || sum > 100+1e-6 {
		return fmt.Errorf("scholar weights: sum %.6f, want 100", sum)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := make(map[string]float64, len(CategoryIDs))
	for _, id := range CategoryIDs {
		copied[id] = weights[id]
	}
	a.scholarWeights = copied
	return nil
}

// SetPercentage pins one category to the clamped percentage and
// renormalizes the other seven proportionally so the total stays at
// exactly 100. Relative proportions among the untouched seven are
// preserved; when they are all zero the remainder is split equally
// among them.
func (a *Allocator) SetPercentage(categoryID string, pct float64) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.percentages[categoryID]; !ok {
		return Snapshot{}, fmt.Errorf("unknown distribution category %q", categoryID)
	}

	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	var othersSum float64
	for _, id := range CategoryIDs {
		if id != categoryID {
			othersSum += a.percentages[id]
		}
	}

	remainder := 100 - pct
	next := make(map[string]float64, len(CategoryIDs))
	next[categoryID] = pct
	if othersSum <= 0 {
		for _, id := range CategoryIDs {
			if id != categoryID {
				next[id] = remainder / float64(len(CategoryIDs)-1)
			}
		}
	} else {
		scale := remainder / othersSum
		for _, id := range CategoryIDs {
			if id != categoryID {
				next[id] = a.percentages[id] * scale
			}
		}
	}

	a.percentages = next
	a.mode = ModeCustom
	return a.snapshotLocked(), nil
}

// SetTotalDue recomputes amounts for a new zakat-due figure without
// touching percentages or mode.
func (a *Allocator) SetTotalDue(total float64) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	if total < 0 {
		total = 0
	}
	a.totalDue = total
	return a.snapshotLocked()
}

// Snapshot returns a copy of the current allocation state.
func (a *Allocator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Allocator) snapshotLocked() Snapshot {
	out := Snapshot{
		Mode:        a.mode,
		TotalDue:    a.totalDue,
		Allocations: make([]Allocation, 0, len(CategoryIDs)),
	}
	for _, id := range CategoryIDs {
		pct := a.percentages[id]
		out.Allocations = append(out.Allocations, Allocation{
			CategoryID: id,
			Percentage: pct,
			Amount:     pct / 100 * a.totalDue,
		})
	}
	return out
}
