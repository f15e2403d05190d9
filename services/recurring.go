package services

import "github.com/google/uuid"

// The recurring line is a single global adjustment line whose value tracks
// the running total of everything positioned before it: every chapter's
// final total plus every global addition/reduction line sitting strictly
// earlier in the global order. Its value is materialized back into the item
// so it persists as a concrete number, not a live formula. This is the only
// write the calculation cascade ever performs on the item set.

// FindRecurringLine returns the recurring adjustment line, if one exists.
func FindRecurringLine(items []Item) (Item, bool) {
	for _, it := range items {
		if it.Type == ItemAdjustment && it.IsRecurring {
			return it, true
		}
	}
	return Item{}, false
}

// NewRecurringLine builds the recurring line as a display-only global
// adjustment so it never feeds back into the totals it summarizes.
func NewRecurringLine() Item {
	return Item{
		ID:          uuid.NewString(),
		Type:        ItemAdjustment,
		Scope:       ScopeGlobal,
		Kind:        KindDisplay,
		ValueType:   ValueFixed,
		IsRecurring: true,
		Description: "Cumulative total",
	}
}

// ResolveRecurringValue recomputes the recurring line's value as the prefix
// sum of chapter finals and signed global adjustment amounts strictly before
// its own position, and writes it back into the returned slice. A document
// without a recurring line comes back unchanged (modulo cloning).
func ResolveRecurringValue(items []Item, catalog Catalog) []Item {
	recurring, ok := FindRecurringLine(items)
	if !ok {
		return cloneItems(items)
	}

	totals := ComputeTotals(items, catalog)

	var prefix float64
	for _, it := range SortByIndexGlobal(items) {
		if it.IndexGlobal >= recurring.IndexGlobal {
			break
		}
		switch {
		case it.Type == ItemChapter:
			prefix += totals.ChapterFinal[it.ID]
		case it.Type == ItemAdjustment && it.Scope == ScopeGlobal:
			prefix += SignedAmount(it, totals.Brute)
		}
	}

	out := cloneItems(items)
	if i := findItem(out, recurring.ID); i >= 0 {
		out[i].Value = prefix
	}
	return out
}
