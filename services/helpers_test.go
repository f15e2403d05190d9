package services

import "math"

// Shared fixtures for the document model tests.

func floatPtr(v float64) *float64 { return &v }

func chapterItem(id string, key float64, title string) Item {
	return Item{ID: id, Type: ItemChapter, IndexGlobal: key, Title: title, Activity: ActivityGeneral}
}

func subChapterItem(id, parent string, key float64, description string) Item {
	return Item{ID: id, Type: ItemSubChapter, IndexGlobal: key, ParentChapterID: parent, Description: description}
}

func detailItem(id, parent string, key, qty float64) Item {
	return Item{ID: id, Type: ItemDetailLine, IndexGlobal: key, ParentSubChapterID: parent, Quantity: qty, Unit: "u"}
}

func globalAdjustment(id string, key float64, kind AdjustmentKind, vt ValueType, value float64) Item {
	return Item{
		ID: id, Type: ItemAdjustment, IndexGlobal: key,
		Scope: ScopeGlobal, Kind: kind, ValueType: vt, Value: value,
		BaseScope: ScopeGlobal,
	}
}

// testDocument builds a two-chapter document:
//
//	ch1
//	  sub1: line1 (qty 2 × override 50 = 100), line2 (labor 40 + material 60, +10% +20% = 132)
//	  sub2: line3 (qty 4 × catalog 25 = 100)
//	ch2
//	  sub3: line4 (qty 3 × override 200 = 600)
//
// Brute bases: sub1 = 232, sub2 = 100, ch1 = 332, sub3 = ch2 = 600, global = 932.
func testDocument() ([]Item, Catalog) {
	line2 := detailItem("line2", "sub1", 4096, 1)
	line2.LaborCost = 40
	line2.MaterialCost = 60
	line2.FixedRatePercent = floatPtr(10)
	line2.MarginPercent = floatPtr(20)

	line1 := detailItem("line1", "sub1", 3072, 2)
	line1.OverridePrice = floatPtr(50)

	line3 := detailItem("line3", "sub2", 6144, 4)
	line3.CatalogLineID = "cat-line-3"

	line4 := detailItem("line4", "sub3", 9216, 3)
	line4.OverridePrice = floatPtr(200)

	items := []Item{
		chapterItem("ch1", 1024, "Structural works"),
		subChapterItem("sub1", "ch1", 2048, "Foundations"),
		line1,
		line2,
		subChapterItem("sub2", "ch1", 5120, "Masonry"),
		line3,
		chapterItem("ch2", 7168, "Finishing"),
		subChapterItem("sub3", "ch2", 8192, "Painting"),
		line4,
	}
	catalog := Catalog{
		"cat-line-3": {BasePrice: 25, FixedRatePercent: 10, MarginPercent: 20},
	}
	return items, catalog
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// orderOf returns the ids of items in ascending IndexGlobal order.
func orderOf(items []Item) []string {
	sorted := SortByIndexGlobal(items)
	ids := make([]string, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ID
	}
	return ids
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
