package render

import (
	"fmt"
	"html/template"
	"io"
)

// PageData contains the data needed to render a complete HTML page around a
// materialized fragment.
type PageData struct {
	// Body is rendered inside <body>.
	Body Native

	// Title is the page title.
	Title string

	// Lang is the language attribute of the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Scripts are paths of script tags appended to the body.
	Scripts []string

	// Styles contains inline CSS.
	Styles []string
}

// RenderPage renders a complete HTML document to w.
func RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	esc := template.HTMLEscapeString

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n<meta charset=\"utf-8\">\n", esc(lang)); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", esc(page.Title)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}
	if page.Body != nil {
		if err := Render(w, page.Body); err != nil {
			return err
		}
	}
	for _, src := range page.Scripts {
		if _, err := fmt.Fprintf(w, "\n<script src=\"%s\" defer></script>", esc(src)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}
