package services

import "sort"

// indexStep is the canonical spacing between order keys after a reindex and
// the increment used when appending past the current extremes. Powers of two
// halve cleanly, so midpoint insertion stays exact for a long time.
const indexStep = 1024

// PositionKind selects how an insertion position is anchored.
type PositionKind string

const (
	PositionBefore     PositionKind = "before"
	PositionAfter      PositionKind = "after"
	PositionScopeStart PositionKind = "scope_start"
	PositionScopeEnd   PositionKind = "scope_end"
	PositionDocEnd     PositionKind = "doc_end"
)

// Position anchors an insertion: before/after a concrete item, at the start
// or end of a container's subtree, or at the end of the document.
type Position struct {
	Kind  PositionKind
	RefID string
}

func Before(id string) Position     { return Position{Kind: PositionBefore, RefID: id} }
func After(id string) Position      { return Position{Kind: PositionAfter, RefID: id} }
func ScopeStart(id string) Position { return Position{Kind: PositionScopeStart, RefID: id} }
func ScopeEnd(id string) Position   { return Position{Kind: PositionScopeEnd, RefID: id} }
func DocumentEnd() Position         { return Position{Kind: PositionDocEnd} }

// SortByIndexGlobal returns the items in ascending IndexGlobal order.
// The sort is stable: equal keys (which uniqueness should rule out) keep
// their original slice position.
func SortByIndexGlobal(items []Item) []Item {
	out := cloneItems(items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IndexGlobal < out[j].IndexGlobal
	})
	return out
}

// ReindexAll renumbers every item to evenly spaced canonical keys while
// preserving the current relative order and every other field. Applying it
// twice yields the same sequence.
func ReindexAll(items []Item) []Item {
	out := SortByIndexGlobal(items)
	for i := range out {
		out[i].IndexGlobal = float64(i+1) * indexStep
	}
	return out
}

// keyBetween picks an order key strictly between the two optional neighbor
// keys. ok is false when the doubles between prev and next are exhausted and
// a reindex is needed before retrying.
func keyBetween(prev, next *float64) (float64, bool) {
	switch {
	case prev == nil && next == nil:
		return indexStep, true
	case next == nil:
		return *prev + indexStep, true
	case prev == nil:
		return *next - indexStep, true
	default:
		mid := *prev + (*next-*prev)/2
		if mid <= *prev || mid >= *next {
			return 0, false
		}
		return mid, true
	}
}

// neighborKeys resolves a Position to the pair of order keys the new item
// must land between. Scope positions treat the container's whole subtree as
// the scope extent.
func neighborKeys(items []Item, pos Position) (prev, next *float64) {
	sorted := SortByIndexGlobal(items)

	keyOf := func(id string) *float64 {
		if i := findItem(sorted, id); i >= 0 {
			k := sorted[i].IndexGlobal
			return &k
		}
		return nil
	}
	keyAfter := func(k float64) *float64 {
		for i := range sorted {
			if sorted[i].IndexGlobal > k {
				n := sorted[i].IndexGlobal
				return &n
			}
		}
		return nil
	}
	keyBefore := func(k float64) *float64 {
		for i := len(sorted) - 1; i >= 0; i-- {
			if sorted[i].IndexGlobal < k {
				p := sorted[i].IndexGlobal
				return &p
			}
		}
		return nil
	}

	switch pos.Kind {
	case PositionBefore:
		if n := keyOf(pos.RefID); n != nil {
			return keyBefore(*n), n
		}
	case PositionAfter:
		if p := keyOf(pos.RefID); p != nil {
			return p, keyAfter(*p)
		}
	case PositionScopeStart:
		if p := keyOf(pos.RefID); p != nil {
			return p, keyAfter(*p)
		}
	case PositionScopeEnd:
		if last := subtreeLastKey(items, pos.RefID); last != nil {
			return last, keyAfter(*last)
		}
	}

	// Document end, or an unknown anchor: append.
	if len(sorted) > 0 {
		p := sorted[len(sorted)-1].IndexGlobal
		return &p, nil
	}
	return nil, nil
}

// subtreeLastKey returns the highest order key within the container's
// subtree (the container itself when it has no descendants), or nil when the
// container does not exist.
func subtreeLastKey(items []Item, containerID string) *float64 {
	h := BuildHierarchy(items)
	container, ok := h.Item(containerID)
	if !ok {
		return nil
	}
	last := container.IndexGlobal
	for _, id := range h.DescendantsOf(containerID) {
		if d, ok := h.Item(id); ok && d.IndexGlobal > last {
			last = d.IndexGlobal
		}
	}
	return &last
}

// InsertAtPosition inserts the new item at the given position, computing its
// IndexGlobal as the midpoint of the position's ordering neighbors. When the
// key space between the neighbors is exhausted the whole document is
// reindexed first and the insert retried. Returns a new slice.
func InsertAtPosition(items []Item, newItem Item, pos Position) []Item {
	prev, next := neighborKeys(items, pos)
	key, ok := keyBetween(prev, next)
	if !ok {
		items = ReindexAll(items)
		prev, next = neighborKeys(items, pos)
		key, _ = keyBetween(prev, next)
	}

	newItem.IndexGlobal = key
	out := cloneItems(items)
	return append(out, newItem)
}

// ReorderAfterDrag gives the moved item a new IndexGlobal between the two
// drop neighbors (either id may be empty at the document edges). A container
// carries its whole descendant block: every member's key is shifted by the
// same offset, so relative order and containment inside the block survive
// untouched. Only when the block cannot fit between the neighbors is the
// document rebuilt in target order and reindexed.
//
// Moving a container into its own subtree must be rejected by the caller
// (via Hierarchy.IsDescendantOf) before calling this.
func ReorderAfterDrag(items []Item, movedID, prevID, nextID string) []Item {
	h := BuildHierarchy(items)
	if _, ok := h.Item(movedID); !ok {
		return cloneItems(items)
	}

	block := map[string]bool{movedID: true}
	for _, id := range h.DescendantsOf(movedID) {
		block[id] = true
	}

	var blockMin, blockMax float64
	first := true
	for id := range block {
		it, _ := h.Item(id)
		if first || it.IndexGlobal < blockMin {
			blockMin = it.IndexGlobal
		}
		if first || it.IndexGlobal > blockMax {
			blockMax = it.IndexGlobal
		}
		first = false
	}
	span := blockMax - blockMin

	var prev, next *float64
	if it, ok := h.Item(prevID); ok && !block[prevID] {
		k := it.IndexGlobal
		prev = &k
	}
	if it, ok := h.Item(nextID); ok && !block[nextID] {
		k := it.IndexGlobal
		next = &k
	}

	start, ok := blockStart(prev, next, span)
	if !ok {
		return reorderByRebuild(items, block, prevID)
	}

	offset := start - blockMin
	out := cloneItems(items)
	for i := range out {
		if block[out[i].ID] {
			out[i].IndexGlobal += offset
		}
	}
	return out
}

// blockStart picks the key for the first member of a moved block so the
// whole span lands strictly between prev and next. ok is false when the gap
// is too tight.
func blockStart(prev, next *float64, span float64) (float64, bool) {
	switch {
	case prev == nil && next == nil:
		return indexStep, true
	case next == nil:
		return *prev + indexStep, true
	case prev == nil:
		return *next - indexStep - span, true
	default:
		gap := *next - *prev
		if gap <= span {
			return 0, false
		}
		start := *prev + (gap-span)/2
		if start <= *prev || start+span >= *next {
			return 0, false
		}
		return start, true
	}
}

// reorderByRebuild is the recovery path when a dragged block cannot fit in
// the target gap: splice the block (in its own order) after the prev anchor
// and assign canonical keys in splice order. The keys must come from slice
// position here — re-sorting by the old keys would undo the splice.
func reorderByRebuild(items []Item, block map[string]bool, prevID string) []Item {
	sorted := SortByIndexGlobal(items)

	var blockItems, rest []Item
	for _, it := range sorted {
		if block[it.ID] {
			blockItems = append(blockItems, it)
		} else {
			rest = append(rest, it)
		}
	}

	out := make([]Item, 0, len(sorted))
	spliced := false
	if prevID == "" {
		out = append(out, blockItems...)
		spliced = true
	}
	for _, it := range rest {
		out = append(out, it)
		if it.ID == prevID {
			out = append(out, blockItems...)
			spliced = true
		}
	}
	if !spliced {
		out = append(out, blockItems...)
	}
	for i := range out {
		out[i].IndexGlobal = float64(i+1) * indexStep
	}
	return out
}
