package services

import "testing"

func numeroOf(items []Item, id string) string {
	return items[findItem(items, id)].Numero
}

func TestResolveNumbering_Defaults(t *testing.T) {
	items, _ := testDocument()
	got := ResolveNumbering(items)

	tests := []struct {
		id   string
		want string
	}{
		{"ch1", "1"},
		{"sub1", "1.1"},
		{"line1", "1.1.1"},
		{"line2", "1.1.2"},
		{"sub2", "1.2"},
		{"line3", "1.2.1"},
		{"ch2", "2"},
		{"sub3", "2.1"},
		{"line4", "2.1.1"},
	}
	for _, tt := range tests {
		if n := numeroOf(got, tt.id); n != tt.want {
			t.Errorf("numero of %s = %q, want %q", tt.id, n, tt.want)
		}
	}
}

func TestResolveNumbering_NonNumericOverridePersists(t *testing.T) {
	items, _ := testDocument()
	i := findItem(items, "ch1")
	items[i].Numero = "A" // user override, not derivable

	got := ResolveNumbering(items)

	if n := numeroOf(got, "ch1"); n != "A" {
		t.Errorf("override lost: numero of ch1 = %q, want \"A\"", n)
	}
	// ch2 is the only chapter left in the numeric ranking population.
	if n := numeroOf(got, "ch2"); n != "1" {
		t.Errorf("numero of ch2 = %q, want \"1\"", n)
	}
	// sub1's parent numero is the override, so its derived numero follows it.
	if n := numeroOf(got, "sub1"); n != "A.1" {
		t.Errorf("numero of sub1 = %q, want \"A.1\"", n)
	}
}

func TestResolveNumbering_SubChapterOverridePersists(t *testing.T) {
	items, _ := testDocument()
	i := findItem(items, "sub2")
	items[i].Numero = "annex" // does not match "1.N"

	got := ResolveNumbering(items)

	if n := numeroOf(got, "sub2"); n != "annex" {
		t.Errorf("override lost: numero of sub2 = %q", n)
	}
	if n := numeroOf(got, "sub1"); n != "1.1" {
		t.Errorf("numero of sub1 = %q, want \"1.1\"", n)
	}
	// Lines under the overridden subchapter derive from the override.
	if n := numeroOf(got, "line3"); n != "annex.1" {
		t.Errorf("numero of line3 = %q, want \"annex.1\"", n)
	}
}

func TestResolveNumbering_ReorderRenumbersSiblings(t *testing.T) {
	// Scenario: dragging sub2 before sub1 swaps their numeros but changes no
	// totals (the totals half is covered in the order tests).
	items, _ := testDocument()
	items = ResolveNumbering(items)

	moved := ReorderAfterDrag(items, "sub2", "ch1", "sub1")
	got := ResolveNumbering(moved)

	if n := numeroOf(got, "sub2"); n != "1.1" {
		t.Errorf("numero of sub2 after drag = %q, want \"1.1\"", n)
	}
	if n := numeroOf(got, "sub1"); n != "1.2" {
		t.Errorf("numero of sub1 after drag = %q, want \"1.2\"", n)
	}
	if n := numeroOf(got, "line3"); n != "1.1.1" {
		t.Errorf("numero of line3 after drag = %q, want \"1.1.1\"", n)
	}
}

func TestResolveNumbering_AdjustmentLinesCarryNoNumero(t *testing.T) {
	items, _ := testDocument()
	items = append(items, globalAdjustment("adj", 10240, KindReduction, ValueFixed, 10))

	got := ResolveNumbering(items)
	if n := numeroOf(got, "adj"); n != "" {
		t.Errorf("adjustment line got numero %q", n)
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"42", true},
		{"", false},
		{"1.2", false},
		{"A", false},
		{"1a", false},
	}
	for _, tt := range tests {
		if got := isNumeric(tt.in); got != tt.want {
			t.Errorf("isNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
