package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteRowView is one rendered row of the quote table: a chapter, a
// subchapter, a detail line or an adjustment line, in document order.
type QuoteRowView struct {
	ID           string
	Level        int
	Numero       string
	Description  string
	Qty          string // formatted, empty for containers/adjustments
	Unit         string
	UnitPrice    string // formatted EUR, empty for containers/adjustments
	Amount       string // formatted EUR
	IsContainer  bool
	IsAdjustment bool
	IsRecurring  bool
}

// QuoteViewData feeds the quote detail page.
type QuoteViewData struct {
	ID          string
	Title       string
	RefNumber   string
	Client      string
	Rows        []QuoteRowView
	GlobalBrute string // formatted EUR
	GlobalTotal string // formatted EUR
}

// QuoteViewPage renders the full quote page.
func QuoteViewPage(data QuoteViewData) templ.Component {
	return Layout(data.Title, QuoteViewContent(data))
}

// QuoteViewContent renders the quote header, toolbar and table.
func QuoteViewContent(data QuoteViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="quote-view" data-quote-id="%s">
<div class="page-header">
<div>
<h1>%s</h1>
<p class="meta">%s · %s</p>
</div>
<div class="actions">
<a href="/quotes/%s/export/pdf" class="button">PDF</a>
<a href="/quotes/%s/export/excel" class="button">Excel</a>
</div>
</div>
<div class="toolbar">
<button hx-post="/quotes/%s/items/chapter" hx-target="#quote-table" hx-swap="outerHTML">+ Chapitre</button>
<button hx-get="/quotes/%s/catalog-picker" hx-target="#modal" hx-swap="innerHTML">+ Depuis le catalogue</button>
</div>
`, esc(data.ID), esc(data.Title), esc(data.RefNumber), esc(data.Client),
			esc(data.ID), esc(data.ID), esc(data.ID), esc(data.ID)); err != nil {
			return err
		}
		if err := QuoteTable(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "<div id=\"modal\"></div>\n</div>\n")
		return err
	})
}

// QuoteTable renders the ordered item table plus the totals footer. It is
// the swap target of every document mutation.
func QuoteTable(data QuoteViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<table id="quote-table" class="quote-table" data-quote-id="%s">
<thead><tr><th>N°</th><th>Désignation</th><th class="num">Qté</th><th>Unité</th><th class="num">P.U. HT</th><th class="num">Montant HT</th><th></th></tr></thead>
<tbody>
`, esc(data.ID)); err != nil {
			return err
		}
		for _, r := range data.Rows {
			if err := renderRow(w, data.ID, r); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</tbody>
</table>
`); err != nil {
			return err
		}
		return TotalsPartial(data).Render(ctx, w)
	})
}

func renderRow(w io.Writer, quoteID string, r QuoteRowView) error {
	class := "row-line"
	switch {
	case r.IsAdjustment:
		class = "row-adjustment"
	case r.IsContainer && r.Level == 0:
		class = "row-chapter"
	case r.IsContainer:
		class = "row-subchapter"
	}
	if r.IsRecurring {
		class += " row-recurring"
	}

	if _, err := fmt.Fprintf(w, `<tr id="item-%s" class="%s level-%d" draggable="true">
<td>%s</td>
<td>%s</td>
`, esc(r.ID), class, r.Level, esc(r.Numero), esc(r.Description)); err != nil {
		return err
	}

	if !r.IsContainer && !r.IsAdjustment {
		if _, err := fmt.Fprintf(w, `<td class="num"><input class="cell-edit" name="quantity" value="%s" hx-patch="/quotes/%s/items/%s" hx-trigger="change" hx-target="#quote-table" hx-swap="outerHTML"></td>
<td>%s</td>
<td class="num"><input class="cell-edit" name="override_price" value="%s" hx-patch="/quotes/%s/items/%s" hx-trigger="change" hx-target="#quote-table" hx-swap="outerHTML"></td>
`, esc(r.Qty), esc(quoteID), esc(r.ID), esc(r.Unit), esc(r.UnitPrice), esc(quoteID), esc(r.ID)); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w, "<td></td>\n<td></td>\n<td></td>\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, `<td class="num">%s</td>
<td><button hx-delete="/quotes/%s/items/%s" hx-target="#quote-table" hx-swap="outerHTML">✕</button></td>
</tr>
`, esc(r.Amount), esc(quoteID), esc(r.ID))
	return err
}

// TotalsPartial renders the totals footer; it is also served alone by the
// totals endpoint for live refresh.
func TotalsPartial(data QuoteViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="quote-totals" class="totals">
<div><span>Sous-total HT</span><span class="num">%s</span></div>
<div class="grand"><span>Total HT</span><span class="num">%s</span></div>
</div>
`, esc(data.GlobalBrute), esc(data.GlobalTotal))
		return err
	})
}
