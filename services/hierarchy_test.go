package services

import "testing"

func TestBuildHierarchy_Children(t *testing.T) {
	items, _ := testDocument()
	h := BuildHierarchy(items)

	roots := h.ChildrenOf("")
	if len(roots) != 2 || roots[0].ID != "ch1" || roots[1].ID != "ch2" {
		t.Fatalf("unexpected root children: %+v", roots)
	}

	subs := h.ChildrenOf("ch1")
	if len(subs) != 2 || subs[0].ID != "sub1" || subs[1].ID != "sub2" {
		t.Fatalf("unexpected ch1 children: %+v", subs)
	}
}

func TestDescendantsOf(t *testing.T) {
	items, _ := testDocument()
	h := BuildHierarchy(items)

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"chapter subtree", "ch1", []string{"sub1", "line1", "line2", "sub2", "line3"}},
		{"subchapter subtree", "sub2", []string{"line3"}},
		{"leaf has none", "line1", nil},
		{"unknown id", "nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.DescendantsOf(tt.id)
			if !sameOrder(got, tt.want) {
				t.Errorf("DescendantsOf(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDescendantsOf_IncludesScopedAdjustments(t *testing.T) {
	items, _ := testDocument()
	items = append(items, Item{
		ID: "adj-sub1", Type: ItemAdjustment, IndexGlobal: 4500,
		Scope: ScopeSubChapter, ScopeID: "sub1",
		Kind: KindReduction, ValueType: ValueFixed, Value: 5,
	})
	h := BuildHierarchy(items)

	got := h.DescendantsOf("ch1")
	found := false
	for _, id := range got {
		if id == "adj-sub1" {
			found = true
		}
	}
	if !found {
		t.Errorf("adjustment scoped to sub1 missing from ch1 descendants: %v", got)
	}
}

func TestIsDescendantOf(t *testing.T) {
	items, _ := testDocument()
	h := BuildHierarchy(items)

	tests := []struct {
		name               string
		candidate, ancestor string
		want               bool
	}{
		{"line under its chapter", "line1", "ch1", true},
		{"line under its subchapter", "line1", "sub1", true},
		{"sibling subtree", "line1", "sub2", false},
		{"other chapter", "line4", "ch1", false},
		{"self is not its own descendant", "ch1", "ch1", false},
		{"unknown candidate", "nope", "ch1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.IsDescendantOf(tt.candidate, tt.ancestor)
			if got != tt.want {
				t.Errorf("IsDescendantOf(%s, %s) = %v, want %v", tt.candidate, tt.ancestor, got, tt.want)
			}
		})
	}
}

func TestCascadeDelete_Chapter(t *testing.T) {
	// Deleting a chapter with 2 subchapters, 3 detail lines and a scoped
	// adjustment line removes all 6 descendants along with it.
	items, _ := testDocument()
	items = append(items, Item{
		ID: "adj-sub2", Type: ItemAdjustment, IndexGlobal: 6500,
		Scope: ScopeSubChapter, ScopeID: "sub2",
		Kind: KindAddition, ValueType: ValueFixed, Value: 20,
	})

	got := CascadeDelete(items, "ch1")

	want := []string{"ch2", "sub3", "line4"}
	if !sameOrder(orderOf(got), want) {
		t.Errorf("after cascade delete: %v, want %v", orderOf(got), want)
	}
}

func TestCascadeDelete_SubChapter(t *testing.T) {
	items, _ := testDocument()
	got := CascadeDelete(items, "sub1")

	want := []string{"ch1", "sub2", "line3", "ch2", "sub3", "line4"}
	if !sameOrder(orderOf(got), want) {
		t.Errorf("after cascade delete: %v, want %v", orderOf(got), want)
	}
}

func TestCascadeDelete_LeavesInputUntouched(t *testing.T) {
	items, _ := testDocument()
	n := len(items)
	CascadeDelete(items, "ch1")
	if len(items) != n {
		t.Error("CascadeDelete mutated its input")
	}
}
