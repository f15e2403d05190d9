package services

// Hierarchy is a read-only projection of the flat ordered item list into a
// parent→children tree. It is rebuilt from scratch after every mutation and
// backs cascade delete, block drag-move and cycle rejection.
type Hierarchy struct {
	byID     map[string]Item
	children map[string][]Item
}

// BuildHierarchy groups items under their containment parent. Children keep
// ascending IndexGlobal order. Items whose parent does not exist still show
// up in byID so validation can report the dangling reference.
func BuildHierarchy(items []Item) Hierarchy {
	sorted := SortByIndexGlobal(items)

	h := Hierarchy{
		byID:     make(map[string]Item, len(sorted)),
		children: make(map[string][]Item),
	}
	for _, it := range sorted {
		h.byID[it.ID] = it
		h.children[it.parentID()] = append(h.children[it.parentID()], it)
	}
	return h
}

// Item returns the item with the given id, if present.
func (h Hierarchy) Item(id string) (Item, bool) {
	it, ok := h.byID[id]
	return it, ok
}

// ChildrenOf returns the direct children of an item (or of the document root
// for id ""), in ascending IndexGlobal order.
func (h Hierarchy) ChildrenOf(id string) []Item {
	return h.children[id]
}

// DescendantsOf returns the ids of every transitive descendant of id, in
// ascending IndexGlobal order within each level (depth-first).
func (h Hierarchy) DescendantsOf(id string) []string {
	var out []string
	var walk func(string)
	walk = func(parent string) {
		for _, child := range h.children[parent] {
			out = append(out, child.ID)
			walk(child.ID)
		}
	}
	walk(id)
	return out
}

// IsDescendantOf reports whether candidate sits somewhere below ancestor.
// Used to reject dragging a container into its own subtree.
func (h Hierarchy) IsDescendantOf(candidate, ancestor string) bool {
	it, ok := h.byID[candidate]
	if !ok {
		return false
	}
	parent := it.parentID()
	for parent != "" {
		if parent == ancestor {
			return true
		}
		p, ok := h.byID[parent]
		if !ok {
			return false
		}
		parent = p.parentID()
	}
	return false
}

// CascadeDelete removes the item with the given id together with every
// descendant (subchapters, their detail lines, adjustment lines scoped to
// any of them). Returns a new slice; the input is untouched.
func CascadeDelete(items []Item, id string) []Item {
	h := BuildHierarchy(items)
	doomed := map[string]bool{id: true}
	for _, d := range h.DescendantsOf(id) {
		doomed[d] = true
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !doomed[it.ID] {
			out = append(out, it)
		}
	}
	return out
}
