package services

import (
	"fmt"
	"strings"
)

// ResolveNumbering derives display numeros from the current order. Chapters
// get their 1-based rank among numerically numbered chapters; subchapters
// get "{chapter numero}.{sibling rank}"; detail lines go one level deeper.
// A user-entered numero that does not match the derived pattern is an
// override and survives untouched — it also drops the item out of the
// ranking population, so the conforming siblings renumber around it.
// Numbering is cosmetic only and never feeds the calculation cascade.
func ResolveNumbering(items []Item) []Item {
	out := cloneItems(items)
	h := BuildHierarchy(out)

	numero := make(map[string]string) // item id → resolved numero

	rank := 0
	for _, chapter := range h.ChildrenOf("") {
		if chapter.Type != ItemChapter {
			continue
		}
		if chapter.Numero != "" && !isNumeric(chapter.Numero) {
			numero[chapter.ID] = chapter.Numero
			continue
		}
		rank++
		numero[chapter.ID] = fmt.Sprintf("%d", rank)
	}

	for _, chapter := range h.ChildrenOf("") {
		if chapter.Type != ItemChapter {
			continue
		}
		parent := numero[chapter.ID]
		subRank := 0
		for _, sub := range h.ChildrenOf(chapter.ID) {
			if sub.Type != ItemSubChapter {
				continue
			}
			if isOverride(sub.Numero, parent) {
				numero[sub.ID] = sub.Numero
				continue
			}
			subRank++
			numero[sub.ID] = fmt.Sprintf("%s.%d", parent, subRank)
		}
	}

	for _, it := range out {
		if it.Type != ItemSubChapter {
			continue
		}
		parent := numero[it.ID]
		lineRank := 0
		for _, line := range h.ChildrenOf(it.ID) {
			if line.Type != ItemDetailLine {
				continue
			}
			if isOverride(line.Numero, parent) {
				numero[line.ID] = line.Numero
				continue
			}
			lineRank++
			numero[line.ID] = fmt.Sprintf("%s.%d", parent, lineRank)
		}
	}

	for i := range out {
		if n, ok := numero[out[i].ID]; ok {
			out[i].Numero = n
		}
	}
	return out
}

// isOverride reports whether a numero is a genuine user override rather
// than a (possibly stale) derived value. Anything empty, matching the
// current parent pattern, or shaped like a dotted-numeric derivation from an
// earlier order is derivable and gets recomputed.
func isOverride(numero, parent string) bool {
	if numero == "" {
		return false
	}
	if matchesPattern(numero, parent) {
		return false
	}
	return !isDottedNumeric(numero)
}

// isDottedNumeric reports whether s is digits separated by dots ("1.2.1").
func isDottedNumeric(s string) bool {
	for _, seg := range strings.Split(s, ".") {
		if !isNumeric(seg) {
			return false
		}
	}
	return s != ""
}

// isNumeric reports whether s is a non-empty string of digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// matchesPattern reports whether numero looks derived from the given parent
// numero, i.e. "{parent}.{digits}".
func matchesPattern(numero, parent string) bool {
	rest, ok := strings.CutPrefix(numero, parent+".")
	if !ok {
		return false
	}
	return isNumeric(rest)
}
