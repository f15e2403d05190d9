package services

// AdjustmentAmount computes the monetary amount of one adjustment line.
// Fixed lines carry their value directly; percentage lines apply their value
// to the brute base of the referenced scope. Percentage lines always resolve
// against brute bases, never against another adjustment line's effect, so
// reordering percentage lines within a scope cannot change the result.
func AdjustmentAmount(line Item, bases BruteBases) float64 {
	if line.ValueType == ValuePercentage {
		return bases.BaseFor(line.BaseScope, line.BaseScopeID) * line.Value / 100
	}
	return line.Value
}

// SignedAmount is the adjustment's contribution to its scope total:
// positive for additions, negative for reductions, zero for display-only
// lines.
func SignedAmount(line Item, bases BruteBases) float64 {
	switch line.Kind {
	case KindAddition:
		return AdjustmentAmount(line, bases)
	case KindReduction:
		return -AdjustmentAmount(line, bases)
	}
	return 0
}

// applyAdjustments walks a scope's adjustment lines in ascending IndexGlobal
// order, starting from the scope's brute base. Lines matching excludeID are
// skipped.
func applyAdjustments(brute float64, lines []Item, bases BruteBases, excludeID string) float64 {
	total := brute
	for _, line := range SortByIndexGlobal(lines) {
		if line.ID == excludeID {
			continue
		}
		total += SignedAmount(line, bases)
	}
	return total
}

// Totals is the full calculation cascade over one document snapshot: brute
// bases, final totals per subchapter and chapter, and the global final.
type Totals struct {
	Brute           BruteBases
	SubChapterFinal map[string]float64
	ChapterFinal    map[string]float64
	GlobalFinal     float64
}

// ComputeTotals runs the whole cascade bottom-up: each subchapter's final is
// its brute base plus its scoped adjustment lines; a chapter's final is the
// sum of its subchapters' finals plus chapter-scoped lines; the global final
// is the sum of chapter finals plus global lines. Pure and deterministic:
// call it after every edit.
func ComputeTotals(items []Item, catalog Catalog) Totals {
	return computeTotals(items, catalog, "")
}

func computeTotals(items []Item, catalog Catalog, excludeID string) Totals {
	bases := ComputeBruteBases(items, catalog)

	adjustments := make(map[string][]Item) // scope id ("" for global) → lines
	for _, it := range items {
		if it.Type == ItemAdjustment {
			adjustments[it.ScopeID] = append(adjustments[it.ScopeID], it)
		}
	}

	t := Totals{
		Brute:           bases,
		SubChapterFinal: make(map[string]float64),
		ChapterFinal:    make(map[string]float64),
	}

	h := BuildHierarchy(items)
	for _, chapter := range h.ChildrenOf("") {
		if chapter.Type != ItemChapter {
			continue
		}
		var chapterBase float64
		for _, sub := range h.ChildrenOf(chapter.ID) {
			if sub.Type != ItemSubChapter {
				continue
			}
			final := applyAdjustments(bases.SubChapters[sub.ID], adjustments[sub.ID], bases, excludeID)
			t.SubChapterFinal[sub.ID] = final
			chapterBase += final
		}
		t.ChapterFinal[chapter.ID] = applyAdjustments(chapterBase, adjustments[chapter.ID], bases, excludeID)
	}

	var globalBase float64
	for _, final := range t.ChapterFinal {
		globalBase += final
	}
	t.GlobalFinal = applyAdjustments(globalBase, adjustments[""], bases, excludeID)
	return t
}

// GlobalTotal is the document's final total after the full cascade.
func GlobalTotal(items []Item, catalog Catalog) float64 {
	return ComputeTotals(items, catalog).GlobalFinal
}

// GlobalTotalExcluding computes the global final while skipping one named
// line everywhere it would contribute. The recurring line resolver uses it
// so a line never counts itself.
func GlobalTotalExcluding(items []Item, catalog Catalog, lineID string) float64 {
	return computeTotals(items, catalog, lineID).GlobalFinal
}

// ChapterTotal returns a chapter's final total (brute plus adjustments,
// bottom-up through its subchapters).
func ChapterTotal(items []Item, catalog Catalog, chapterID string) float64 {
	return ComputeTotals(items, catalog).ChapterFinal[chapterID]
}

// SubChapterTotal returns a subchapter's final total.
func SubChapterTotal(items []Item, catalog Catalog, subChapterID string) float64 {
	return ComputeTotals(items, catalog).SubChapterFinal[subChapterID]
}
