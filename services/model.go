// Package services holds the quote document model and all pure calculation
// logic: ordering, hierarchy projection, pricing aggregation, adjustment
// lines, numbering and the persisted-shape transformer. Nothing in this
// package touches PocketBase; handlers load a document, call into here and
// save the result back.
package services

// ItemType discriminates the variants of the flat quote item union.
type ItemType string

const (
	ItemChapter    ItemType = "chapter"
	ItemSubChapter ItemType = "subchapter"
	ItemDetailLine ItemType = "detail"
	ItemAdjustment ItemType = "adjustment"
)

// ActivityKind classifies a chapter by trade.
type ActivityKind string

const (
	ActivityGeneral    ActivityKind = "general"
	ActivityStructural ActivityKind = "structural"
	ActivityFinishing  ActivityKind = "finishing"
	ActivityElectrical ActivityKind = "electrical"
	ActivityPlumbing   ActivityKind = "plumbing"
	ActivityExterior   ActivityKind = "exterior"
)

// AdjustmentScope is the level an adjustment line applies to.
type AdjustmentScope string

const (
	ScopeGlobal     AdjustmentScope = "global"
	ScopeChapter    AdjustmentScope = "chapter"
	ScopeSubChapter AdjustmentScope = "subchapter"
)

// AdjustmentKind is the arithmetic effect of an adjustment line.
type AdjustmentKind string

const (
	KindAddition  AdjustmentKind = "addition"
	KindReduction AdjustmentKind = "reduction"
	KindDisplay   AdjustmentKind = "display"
)

// ValueType says whether an adjustment value is a fixed amount or a
// percentage of a referenced brute base.
type ValueType string

const (
	ValueFixed      ValueType = "fixed"
	ValuePercentage ValueType = "percentage"
)

// Item is one entry of the flat, totally ordered quote document. The Type
// field selects which group of fields is meaningful; the rest stay at their
// zero value. A single flat struct keeps the document trivially
// JSON-persistable and mirrors how records come back from storage.
type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	IndexGlobal float64  `json:"index_global"`
	Numero      string   `json:"numero,omitempty"`

	// Chapter fields.
	Title    string       `json:"title,omitempty"`
	Activity ActivityKind `json:"activity,omitempty"`

	// SubChapter fields.
	Description     string `json:"description,omitempty"`
	ParentChapterID string `json:"parent_chapter_id,omitempty"`

	// DetailLine fields. OverridePrice, FixedRatePercent and MarginPercent
	// are pointers so "not set" is distinguishable from an explicit zero.
	ParentSubChapterID string   `json:"parent_subchapter_id,omitempty"`
	CatalogLineID      string   `json:"catalog_line_id,omitempty"`
	Quantity           float64  `json:"quantity,omitempty"`
	Unit               string   `json:"unit,omitempty"`
	OverridePrice      *float64 `json:"override_price,omitempty"`
	LaborCost          float64  `json:"labor_cost,omitempty"`
	MaterialCost       float64  `json:"material_cost,omitempty"`
	FixedRatePercent   *float64 `json:"fixed_rate_percent,omitempty"`
	MarginPercent      *float64 `json:"margin_percent,omitempty"`

	// AdjustmentLine fields. Presentation is carried verbatim for the UI
	// and never interpreted by the calculation cascade.
	Scope        AdjustmentScope `json:"scope,omitempty"`
	ScopeID      string          `json:"scope_id,omitempty"`
	Kind         AdjustmentKind  `json:"kind,omitempty"`
	ValueType    ValueType       `json:"value_type,omitempty"`
	Value        float64         `json:"value,omitempty"`
	BaseScope    AdjustmentScope `json:"base_scope,omitempty"`
	BaseScopeID  string          `json:"base_scope_id,omitempty"`
	IsRecurring  bool            `json:"is_recurring,omitempty"`
	Presentation map[string]any  `json:"presentation,omitempty"`
}

// CatalogPricing carries the pricing attributes of one catalog line. The
// catalog itself is owned by an external CRUD surface; the engine only ever
// reads these three numbers.
type CatalogPricing struct {
	BasePrice        float64
	FixedRatePercent float64
	MarginPercent    float64
}

// Catalog maps catalog line ids to their pricing attributes. A nil map is a
// valid empty catalog.
type Catalog map[string]CatalogPricing

// parentID returns the containment parent of an item: the chapter of a
// subchapter, the subchapter of a detail line, the scope target of a scoped
// adjustment line. Chapters and global adjustment lines return "" (root).
func (it Item) parentID() string {
	switch it.Type {
	case ItemSubChapter:
		return it.ParentChapterID
	case ItemDetailLine:
		return it.ParentSubChapterID
	case ItemAdjustment:
		if it.Scope == ScopeGlobal {
			return ""
		}
		return it.ScopeID
	}
	return ""
}

// cloneItems returns a shallow copy of the slice so callers can append or
// reassign entries without aliasing the input. Item values are copied; the
// opaque Presentation map is shared, which is fine because the engine never
// writes into it.
func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// findItem returns the index of the item with the given id, or -1.
func findItem(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
