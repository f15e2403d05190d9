package services

// The persisted document shape predates the flat ordered model: chapters
// nest their subchapters, detail lines live in a flat lines[] array keyed by
// id, and adjustment lines are grouped by scope instead of sitting inline in
// order. Loading rebuilds the flat ordered list; saving flattens back and
// recomputes every stored amount from scratch — a stored amount is display
// data for external readers, never an input.

// PersistedChapter is a top-level grouping in the stored document.
type PersistedChapter struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Activity    ActivityKind          `json:"activity,omitempty"`
	Numero      string                `json:"numero,omitempty"`
	IndexGlobal float64               `json:"index_global,omitempty"`
	Total       float64               `json:"total,omitempty"`
	SubChapters []PersistedSubChapter `json:"subchapters"`
}

// PersistedSubChapter nests under its chapter and lists its detail lines by
// id; the line data itself lives in PersistedDocument.Lines.
type PersistedSubChapter struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	Numero        string   `json:"numero,omitempty"`
	IndexGlobal   float64  `json:"index_global,omitempty"`
	Total         float64  `json:"total,omitempty"`
	DetailLineIDs []string `json:"detailLineIds"`
}

// PersistedLine is one detail line in the flat lines[] array.
type PersistedLine struct {
	ID               string   `json:"id"`
	CatalogLineID    string   `json:"catalog_line_id,omitempty"`
	Designation      string   `json:"designation,omitempty"`
	Numero           string   `json:"numero,omitempty"`
	Quantity         float64  `json:"quantity"`
	Unit             string   `json:"unit,omitempty"`
	ResolvedPrice    float64  `json:"resolved_price"`
	IndexGlobal      float64  `json:"index_global,omitempty"`
	OverridePrice    *float64 `json:"override_price,omitempty"`
	LaborCost        float64  `json:"labor_cost,omitempty"`
	MaterialCost     float64  `json:"material_cost,omitempty"`
	FixedRatePercent *float64 `json:"fixed_rate_percent,omitempty"`
	MarginPercent    *float64 `json:"margin_percent,omitempty"`
}

// PersistedAdjustment is one adjustment line within its scope group.
type PersistedAdjustment struct {
	ID           string          `json:"id"`
	Description  string          `json:"description,omitempty"`
	Kind         AdjustmentKind  `json:"kind"`
	ValueType    ValueType       `json:"value_type"`
	Value        float64         `json:"value"`
	BaseScope    AdjustmentScope `json:"base_scope,omitempty"`
	BaseScopeID  string          `json:"base_scope_id,omitempty"`
	IndexGlobal  float64         `json:"index_global,omitempty"`
	IsRecurring  bool            `json:"is_recurring,omitempty"`
	Amount       float64         `json:"amount,omitempty"`
	Presentation map[string]any  `json:"presentation,omitempty"`
}

// PersistedAdjustments groups adjustment lines by the scope they apply to.
type PersistedAdjustments struct {
	Global      []PersistedAdjustment            `json:"global,omitempty"`
	Chapters    map[string][]PersistedAdjustment `json:"chapters,omitempty"`
	SubChapters map[string][]PersistedAdjustment `json:"subchapters,omitempty"`
}

// PersistedDocument is the stored shape of one quote document.
type PersistedDocument struct {
	Chapters    []PersistedChapter   `json:"chapters"`
	Lines       []PersistedLine      `json:"lines"`
	Adjustments PersistedAdjustments `json:"adjustments"`
	GlobalTotal float64              `json:"global_total,omitempty"`
}

// LoadDocument reconstructs the flat ordered item list from the persisted
// shape. Stored index_global hints always win; items without a usable hint
// (absent or duplicated) get synthetic keys derived from their
// nested-traversal rank. Structural reference violations (dangling parents,
// duplicate recurring lines) fail the load with a ValidationError.
func LoadDocument(doc PersistedDocument) ([]Item, error) {
	var items []Item

	lineByID := make(map[string]PersistedLine, len(doc.Lines))
	for _, l := range doc.Lines {
		lineByID[l.ID] = l
	}

	adj := func(p PersistedAdjustment, scope AdjustmentScope, scopeID string) Item {
		return Item{
			ID:           p.ID,
			Type:         ItemAdjustment,
			IndexGlobal:  p.IndexGlobal,
			Description:  p.Description,
			Scope:        scope,
			ScopeID:      scopeID,
			Kind:         p.Kind,
			ValueType:    p.ValueType,
			Value:        p.Value,
			BaseScope:    p.BaseScope,
			BaseScopeID:  p.BaseScopeID,
			IsRecurring:  p.IsRecurring,
			Presentation: p.Presentation,
		}
	}

	for _, ch := range doc.Chapters {
		items = append(items, Item{
			ID:          ch.ID,
			Type:        ItemChapter,
			IndexGlobal: ch.IndexGlobal,
			Numero:      ch.Numero,
			Title:       ch.Title,
			Activity:    ch.Activity,
		})
		for _, sub := range ch.SubChapters {
			items = append(items, Item{
				ID:              sub.ID,
				Type:            ItemSubChapter,
				IndexGlobal:     sub.IndexGlobal,
				Numero:          sub.Numero,
				Description:     sub.Description,
				ParentChapterID: ch.ID,
			})
			for _, lineID := range sub.DetailLineIDs {
				l, ok := lineByID[lineID]
				if !ok {
					// Leave a dangling marker so validation reports it.
					items = append(items, Item{ID: lineID, Type: ItemDetailLine, ParentSubChapterID: sub.ID})
					continue
				}
				items = append(items, Item{
					ID:                 l.ID,
					Type:               ItemDetailLine,
					IndexGlobal:        l.IndexGlobal,
					Numero:             l.Numero,
					Description:        l.Designation,
					ParentSubChapterID: sub.ID,
					CatalogLineID:      l.CatalogLineID,
					Quantity:           l.Quantity,
					Unit:               l.Unit,
					OverridePrice:      l.OverridePrice,
					LaborCost:          l.LaborCost,
					MaterialCost:       l.MaterialCost,
					FixedRatePercent:   l.FixedRatePercent,
					MarginPercent:      l.MarginPercent,
				})
			}
			for _, p := range doc.Adjustments.SubChapters[sub.ID] {
				items = append(items, adj(p, ScopeSubChapter, sub.ID))
			}
		}
		for _, p := range doc.Adjustments.Chapters[ch.ID] {
			items = append(items, adj(p, ScopeChapter, ch.ID))
		}
	}
	for _, p := range doc.Adjustments.Global {
		items = append(items, adj(p, ScopeGlobal, ""))
	}

	items = fillOrderKeys(items)

	if violations := validateReferences(items); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return items, nil
}

// fillOrderKeys synthesizes order keys for items whose stored hint is absent
// or duplicated. Every present unique hint is kept as-is: the persisted shape
// groups adjustment lines by scope, not by position, so a global line hinted
// into the middle of the document is legitimate and its hint is the only
// record of where it sits. Synthesized keys interpolate between the
// surrounding trusted hints at the item's nested-traversal rank.
func fillOrderKeys(items []Item) []Item {
	out := cloneItems(items)

	counts := make(map[float64]int)
	for _, it := range out {
		if it.IndexGlobal != 0 {
			counts[it.IndexGlobal]++
		}
	}
	trusted := func(it Item) bool {
		return it.IndexGlobal != 0 && counts[it.IndexGlobal] == 1
	}

	var prev *float64
	for i := range out {
		if trusted(out[i]) {
			k := out[i].IndexGlobal
			prev = &k
			continue
		}
		var next *float64
		for j := i + 1; j < len(out); j++ {
			if trusted(out[j]) && (prev == nil || out[j].IndexGlobal > *prev) {
				k := out[j].IndexGlobal
				next = &k
				break
			}
		}
		key, ok := keyBetween(prev, next)
		if !ok {
			// Doubles between the anchors are exhausted; step past prev
			// rather than fail the load.
			key = *prev + indexStep
		}
		out[i].IndexGlobal = key
		prev = &key
	}
	return out
}

// SaveDocument flattens the ordered item list back to the persisted shape.
// It validates every invariant first and fails with a single ValidationError
// listing all violations; it never fails fast on the first. Every stored
// monetary amount is recomputed through the aggregation cascade — previously
// stored amounts are never trusted.
func SaveDocument(items []Item, catalog Catalog) (PersistedDocument, error) {
	if err := ValidateDocument(items); err != nil {
		return PersistedDocument{}, err
	}

	totals := ComputeTotals(items, catalog)
	h := BuildHierarchy(items)

	doc := PersistedDocument{
		Adjustments: PersistedAdjustments{
			Chapters:    make(map[string][]PersistedAdjustment),
			SubChapters: make(map[string][]PersistedAdjustment),
		},
		GlobalTotal: totals.GlobalFinal,
	}

	persistAdj := func(it Item) PersistedAdjustment {
		return PersistedAdjustment{
			ID:           it.ID,
			Description:  it.Description,
			Kind:         it.Kind,
			ValueType:    it.ValueType,
			Value:        it.Value,
			BaseScope:    it.BaseScope,
			BaseScopeID:  it.BaseScopeID,
			IndexGlobal:  it.IndexGlobal,
			IsRecurring:  it.IsRecurring,
			Amount:       AdjustmentAmount(it, totals.Brute),
			Presentation: it.Presentation,
		}
	}

	for _, it := range SortByIndexGlobal(items) {
		switch it.Type {
		case ItemChapter:
			doc.Chapters = append(doc.Chapters, PersistedChapter{
				ID:          it.ID,
				Title:       it.Title,
				Activity:    it.Activity,
				Numero:      it.Numero,
				IndexGlobal: it.IndexGlobal,
				Total:       totals.ChapterFinal[it.ID],
			})
		case ItemSubChapter:
			for i := range doc.Chapters {
				if doc.Chapters[i].ID == it.ParentChapterID {
					doc.Chapters[i].SubChapters = append(doc.Chapters[i].SubChapters, PersistedSubChapter{
						ID:          it.ID,
						Description: it.Description,
						Numero:      it.Numero,
						IndexGlobal: it.IndexGlobal,
						Total:       totals.SubChapterFinal[it.ID],
					})
				}
			}
		case ItemDetailLine:
			doc.Lines = append(doc.Lines, PersistedLine{
				ID:               it.ID,
				CatalogLineID:    it.CatalogLineID,
				Designation:      it.Description,
				Numero:           it.Numero,
				Quantity:         it.Quantity,
				Unit:             it.Unit,
				ResolvedPrice:    ResolveUnitPrice(it, catalog),
				IndexGlobal:      it.IndexGlobal,
				OverridePrice:    it.OverridePrice,
				LaborCost:        it.LaborCost,
				MaterialCost:     it.MaterialCost,
				FixedRatePercent: it.FixedRatePercent,
				MarginPercent:    it.MarginPercent,
			})
			sub, _ := h.Item(it.ParentSubChapterID)
			for i := range doc.Chapters {
				if doc.Chapters[i].ID != sub.ParentChapterID {
					continue
				}
				for j := range doc.Chapters[i].SubChapters {
					if doc.Chapters[i].SubChapters[j].ID == it.ParentSubChapterID {
						doc.Chapters[i].SubChapters[j].DetailLineIDs = append(doc.Chapters[i].SubChapters[j].DetailLineIDs, it.ID)
					}
				}
			}
		case ItemAdjustment:
			p := persistAdj(it)
			switch it.Scope {
			case ScopeGlobal:
				doc.Adjustments.Global = append(doc.Adjustments.Global, p)
			case ScopeChapter:
				doc.Adjustments.Chapters[it.ScopeID] = append(doc.Adjustments.Chapters[it.ScopeID], p)
			case ScopeSubChapter:
				doc.Adjustments.SubChapters[it.ScopeID] = append(doc.Adjustments.SubChapters[it.ScopeID], p)
			}
		}
	}

	return doc, nil
}
