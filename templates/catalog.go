package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// CatalogLineView is one catalog line in the picker or the catalog page.
type CatalogLineView struct {
	ID          string
	Designation string
	Unit        string
	Price       string // formatted EUR
}

// CatalogSubView groups the lines of one catalog subchapter.
type CatalogSubView struct {
	ID          string
	Description string
	Lines       []CatalogLineView
}

// CatalogChapterView groups the subchapters of one catalog chapter.
type CatalogChapterView struct {
	ID       string
	Title    string
	Activity string
	Subs     []CatalogSubView
}

// CatalogPickerData feeds the modal that inserts catalog content into a quote.
type CatalogPickerData struct {
	QuoteID  string
	Chapters []CatalogChapterView
}

// CatalogPicker renders the catalog picker modal. Picking a line posts it
// into the quote document; picking a chapter or subchapter inserts the whole
// group.
func CatalogPicker(data CatalogPickerData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="modal-box catalog-picker">
<h2>Catalogue</h2>
`); err != nil {
			return err
		}
		for _, ch := range data.Chapters {
			if _, err := fmt.Fprintf(w, `<details open>
<summary>%s <button hx-post="/quotes/%s/items/catalog-chapter/%s" hx-target="#quote-table" hx-swap="outerHTML">Insérer le chapitre</button></summary>
`, esc(ch.Title), esc(data.QuoteID), esc(ch.ID)); err != nil {
				return err
			}
			for _, sub := range ch.Subs {
				if _, err := fmt.Fprintf(w, `<details>
<summary>%s <button hx-post="/quotes/%s/items/catalog-subchapter/%s" hx-target="#quote-table" hx-swap="outerHTML">Insérer</button></summary>
<ul>
`, esc(sub.Description), esc(data.QuoteID), esc(sub.ID)); err != nil {
					return err
				}
				for _, l := range sub.Lines {
					if _, err := fmt.Fprintf(w, `<li>%s · %s · %s <button hx-post="/quotes/%s/items/catalog-line/%s" hx-target="#quote-table" hx-swap="outerHTML">+</button></li>
`, esc(l.Designation), esc(l.Unit), esc(l.Price), esc(data.QuoteID), esc(l.ID)); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, "</ul>\n</details>\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</details>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// CatalogPageData feeds the read-only catalog browsing page.
type CatalogPageData struct {
	Chapters []CatalogChapterView
}

// CatalogPage renders the catalog browsing page.
func CatalogPage(data CatalogPageData) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Catalogue</h1>\n"); err != nil {
			return err
		}
		for _, ch := range data.Chapters {
			if _, err := fmt.Fprintf(w, "<h2>%s <small>%s</small></h2>\n", esc(ch.Title), esc(ch.Activity)); err != nil {
				return err
			}
			for _, sub := range ch.Subs {
				if _, err := fmt.Fprintf(w, "<h3>%s</h3>\n<ul>\n", esc(sub.Description)); err != nil {
					return err
				}
				for _, l := range sub.Lines {
					if _, err := fmt.Fprintf(w, "<li>%s — %s — %s</li>\n", esc(l.Designation), esc(l.Unit), esc(l.Price)); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, "</ul>\n"); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return Layout("Catalogue", content)
}
