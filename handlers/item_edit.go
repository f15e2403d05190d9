package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// HandleItemPatch applies field edits to one item of the quote document and
// recomputes everything. Only fields present in the form are touched; an
// empty override_price clears the override back to catalog pricing.
func HandleItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "item_edit", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			if err := e.Request.ParseForm(); err != nil {
				return nil, errors.New("invalid form data")
			}

			itemID := e.Request.PathValue("itemId")
			idx := -1
			for i := range items {
				if items[i].ID == itemID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, errors.New("item not found in this document")
			}

			out := make([]services.Item, len(items))
			copy(out, items)
			it := &out[idx]

			for field := range e.Request.PostForm {
				value := strings.TrimSpace(e.Request.PostForm.Get(field))
				if err := patchField(it, field, value); err != nil {
					return nil, err
				}
			}
			return out, nil
		})
	}
}

func patchField(it *services.Item, field, value string) error {
	parse := func() (float64, error) {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errBadNumber(field, value)
		}
		return v, nil
	}

	switch field {
	case "quantity":
		v, err := parse()
		if err != nil {
			return err
		}
		if v < 0 {
			return errBadNumber(field, value)
		}
		it.Quantity = v
	case "override_price":
		if value == "" {
			it.OverridePrice = nil
			return nil
		}
		v, err := parse()
		if err != nil {
			return err
		}
		it.OverridePrice = &v
	case "margin_percent":
		if value == "" {
			it.MarginPercent = nil
			return nil
		}
		v, err := parse()
		if err != nil {
			return err
		}
		it.MarginPercent = &v
	case "fixed_rate_percent":
		if value == "" {
			it.FixedRatePercent = nil
			return nil
		}
		v, err := parse()
		if err != nil {
			return err
		}
		it.FixedRatePercent = &v
	case "labor_cost":
		v, err := parse()
		if err != nil {
			return err
		}
		it.LaborCost = v
	case "material_cost":
		v, err := parse()
		if err != nil {
			return err
		}
		it.MaterialCost = v
	case "value":
		v, err := parse()
		if err != nil {
			return err
		}
		it.Value = v
	case "numero":
		it.Numero = value
	case "title":
		it.Title = value
	case "description", "designation":
		it.Description = value
	case "unit":
		it.Unit = value
	case "kind":
		it.Kind = services.AdjustmentKind(value)
	case "value_type":
		it.ValueType = services.ValueType(value)
	case "activity":
		it.Activity = services.ActivityKind(value)
	default:
		return errors.New("unknown field " + strconv.Quote(field))
	}
	return nil
}
