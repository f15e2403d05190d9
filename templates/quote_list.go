package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteListItem is one row of the quote list page.
type QuoteListItem struct {
	ID          string
	Title       string
	RefNumber   string
	Client      string
	CreatedDate string
	Total       string // formatted EUR
}

// QuoteListData feeds the quote list page.
type QuoteListData struct {
	Items       []QuoteListItem
	TotalQuotes int
	SumTotal    string // formatted EUR
}

// QuoteListPage renders the full quote list page.
func QuoteListPage(data QuoteListData) templ.Component {
	return Layout("Devis", QuoteListContent(data))
}

// QuoteListContent renders the list body only, for HTMX partial swaps.
func QuoteListContent(data QuoteListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="quote-list">
<div class="page-header">
<h1>Devis</h1>
<button hx-get="/quotes/new" hx-target="#modal" hx-swap="innerHTML">Nouveau devis</button>
</div>
<table class="list-table">
<thead><tr><th>Titre</th><th>Référence</th><th>Client</th><th>Date</th><th class="num">Total HT</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, it := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/quotes/%s">%s</a></td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td class="num">%s</td>
<td><button hx-delete="/quotes/%s" hx-confirm="Supprimer ce devis ?" hx-target="#quote-list" hx-swap="outerHTML">✕</button></td>
</tr>
`, esc(it.ID), esc(it.Title), esc(it.RefNumber), esc(it.Client), esc(it.CreatedDate), esc(it.Total), esc(it.ID)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><td colspan="4">%d devis</td><td class="num">%s</td><td></td></tr></tfoot>
</table>
<div id="modal"></div>
</div>
`, data.TotalQuotes, esc(data.SumTotal))
		return err
	})
}

// QuoteFormData feeds the create/edit quote form.
type QuoteFormData struct {
	ID        string // empty for create
	Title     string
	RefNumber string
	Client    string
}

// QuoteForm renders the quote metadata form (modal content).
func QuoteForm(data QuoteFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/quotes"
		heading := "Nouveau devis"
		if data.ID != "" {
			action = "/quotes/" + data.ID + "/edit"
			heading = "Modifier le devis"
		}
		_, err := fmt.Fprintf(w, `<div class="modal-box">
<h2>%s</h2>
<form hx-post="%s" hx-target="#quote-list" hx-swap="outerHTML">
<label>Titre <input name="title" value="%s" required></label>
<label>Référence <input name="reference_number" value="%s"></label>
<label>Client <input name="client" value="%s"></label>
<button type="submit">Enregistrer</button>
</form>
</div>
`, esc(heading), esc(action), esc(data.Title), esc(data.RefNumber), esc(data.Client))
		return err
	})
}
