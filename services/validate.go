package services

import (
	"fmt"
	"strings"
)

// ValidationError carries every violation found in one pass over the
// document. Validation never stops at the first problem; the caller gets
// the full list at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %s", strings.Join(e.Violations, "; "))
}

// validateReferences checks the structural invariants that must hold even on
// load: parent and scope references resolve to an existing item of the right
// type, order keys are unique, and at most one recurring line exists.
func validateReferences(items []Item) []string {
	var violations []string

	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	seenKeys := make(map[float64]string, len(items))
	recurringCount := 0

	for _, it := range items {
		if other, dup := seenKeys[it.IndexGlobal]; dup {
			violations = append(violations, fmt.Sprintf("items %s and %s share order key %v", other, it.ID, it.IndexGlobal))
		}
		seenKeys[it.IndexGlobal] = it.ID

		switch it.Type {
		case ItemSubChapter:
			if parent, ok := byID[it.ParentChapterID]; !ok || parent.Type != ItemChapter {
				violations = append(violations, fmt.Sprintf("subchapter %s references missing chapter %q", it.ID, it.ParentChapterID))
			}
		case ItemDetailLine:
			if parent, ok := byID[it.ParentSubChapterID]; !ok || parent.Type != ItemSubChapter {
				violations = append(violations, fmt.Sprintf("detail line %s references missing subchapter %q", it.ID, it.ParentSubChapterID))
			}
		case ItemAdjustment:
			if it.IsRecurring {
				recurringCount++
			}
			switch it.Scope {
			case ScopeGlobal:
				if it.ScopeID != "" {
					violations = append(violations, fmt.Sprintf("global adjustment %s must not carry a scope id", it.ID))
				}
			case ScopeChapter:
				if target, ok := byID[it.ScopeID]; !ok || target.Type != ItemChapter {
					violations = append(violations, fmt.Sprintf("adjustment %s references missing chapter %q", it.ID, it.ScopeID))
				}
			case ScopeSubChapter:
				if target, ok := byID[it.ScopeID]; !ok || target.Type != ItemSubChapter {
					violations = append(violations, fmt.Sprintf("adjustment %s references missing subchapter %q", it.ID, it.ScopeID))
				}
			default:
				violations = append(violations, fmt.Sprintf("adjustment %s has unknown scope %q", it.ID, it.Scope))
			}
			if it.ValueType == ValuePercentage {
				if it.BaseScope == "" {
					violations = append(violations, fmt.Sprintf("percentage adjustment %s is missing its base reference", it.ID))
				} else if it.BaseScope != ScopeGlobal {
					if _, ok := byID[it.BaseScopeID]; !ok {
						violations = append(violations, fmt.Sprintf("percentage adjustment %s references missing base %q", it.ID, it.BaseScopeID))
					}
				}
			}
		}
	}

	if recurringCount > 1 {
		violations = append(violations, fmt.Sprintf("document has %d recurring lines, at most one is allowed", recurringCount))
	}

	return violations
}

// ValidateDocument runs the full save-time validation: structural reference
// checks plus the completeness rules (required numeros, a non-empty
// document, non-negative quantities). Returns a single *ValidationError
// enumerating every violation, or nil.
func ValidateDocument(items []Item) error {
	violations := validateReferences(items)

	hasContent := false
	for _, it := range items {
		switch it.Type {
		case ItemChapter:
			if it.Numero == "" {
				violations = append(violations, fmt.Sprintf("chapter %s is missing its numero", it.ID))
			}
		case ItemSubChapter:
			if it.Numero == "" {
				violations = append(violations, fmt.Sprintf("subchapter %s is missing its numero", it.ID))
			}
		case ItemDetailLine:
			hasContent = true
			if it.Quantity < 0 {
				violations = append(violations, fmt.Sprintf("detail line %s has negative quantity %v", it.ID, it.Quantity))
			}
		case ItemAdjustment:
			hasContent = true
		}
	}
	if !hasContent {
		violations = append(violations, "document is empty: no detail lines and no adjustment lines")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
