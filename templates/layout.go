// Package templates renders the server-side views. Components are plain
// templ.Component values built with templ.ComponentFunc over typed view-data
// structs; handlers fill the structs and call Render.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc is a shorthand for HTML-escaping dynamic text.
func esc(s string) string { return templ.EscapeString(s) }

// Layout wraps a page body with the shared HTML shell: htmx, the toast
// listener and the top navigation.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s — QuoteDesk</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<nav class="topnav">
<a href="/quotes" class="brand">QuoteDesk</a>
<a href="/quotes">Devis</a>
<a href="/catalog">Catalogue</a>
</nav>
<div id="toast" class="toast" hidden></div>
<script>
document.body.addEventListener("showToast", function (evt) {
  var t = document.getElementById("toast");
  t.textContent = evt.detail.message;
  t.className = "toast toast-" + evt.detail.type;
  t.hidden = false;
  setTimeout(function () { t.hidden = true; }, 4000);
});
</script>
<main class="container">
`, esc(title)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
