package services

// ResolveUnitPrice returns the effective unit price of a detail line.
// Precedence: an explicit per-document override wins; otherwise, when the
// line carries labor or material costs, the price is built up from costs,
// fixed-rate overhead and margin (per-line overrides falling back to the
// catalog defaults); otherwise the catalog base price. Missing inputs count
// as zero, so a line pointing at an unknown catalog entry prices at 0.
func ResolveUnitPrice(line Item, catalog Catalog) float64 {
	if line.OverridePrice != nil {
		return *line.OverridePrice
	}

	cat := catalog[line.CatalogLineID]

	if line.LaborCost != 0 || line.MaterialCost != 0 {
		fixedRate := cat.FixedRatePercent
		if line.FixedRatePercent != nil {
			fixedRate = *line.FixedRatePercent
		}
		margin := cat.MarginPercent
		if line.MarginPercent != nil {
			margin = *line.MarginPercent
		}
		return (line.LaborCost + line.MaterialCost) * (1 + fixedRate/100) * (1 + margin/100)
	}

	return cat.BasePrice
}

// LineTotal is the brute contribution of one detail line.
func LineTotal(line Item, catalog Catalog) float64 {
	return ResolveUnitPrice(line, catalog) * line.Quantity
}

// BruteBases holds the pre-adjustment subtotals of every scope. These are
// what percentage adjustment lines reference; they are never touched by
// other adjustment lines.
type BruteBases struct {
	Global      float64
	Chapters    map[string]float64
	SubChapters map[string]float64
}

// BaseFor resolves a scope reference to its brute subtotal.
func (b BruteBases) BaseFor(scope AdjustmentScope, id string) float64 {
	switch scope {
	case ScopeGlobal:
		return b.Global
	case ScopeChapter:
		return b.Chapters[id]
	case ScopeSubChapter:
		return b.SubChapters[id]
	}
	return 0
}

// ComputeBruteBases sums unit price × quantity over every detail line,
// grouped by subchapter, by chapter and globally. Adjustment lines play no
// part here. Recomputed in full on every call; no caching.
func ComputeBruteBases(items []Item, catalog Catalog) BruteBases {
	bases := BruteBases{
		Chapters:    make(map[string]float64),
		SubChapters: make(map[string]float64),
	}

	h := BuildHierarchy(items)
	for _, it := range items {
		if it.Type != ItemDetailLine {
			continue
		}
		total := LineTotal(it, catalog)
		bases.SubChapters[it.ParentSubChapterID] += total
		if sub, ok := h.Item(it.ParentSubChapterID); ok {
			bases.Chapters[sub.ParentChapterID] += total
		}
		bases.Global += total
	}
	return bases
}
