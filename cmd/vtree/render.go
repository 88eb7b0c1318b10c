package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func renderCmd(c *cli) *cobra.Command {
	var (
		noShadow bool
		idAttr   string
		page     bool
		title    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Materialize a tree and print its HTML",
		Long: `Parse FILE into a tree and render it back to HTML.

Nested trees become declarative shadow roots unless --no-shadow is
given. Use "-" to read standard input.

Examples:
  vtree render index.html
  vtree render --page --title Demo index.html
  cat part.html | vtree render --id-attr data-vid -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			opts := c.staticOptions()
			if noShadow {
				opts.ConvertShadow = false
			}
			opts.IDAttribute = idAttr

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeRendered(w, render.NewMaterializer(render.NewHTMLHost(), opts), t, page, title)
		},
	}

	cmd.Flags().BoolVar(&noShadow, "no-shadow", false, "Do not convert nested trees to shadow roots")
	cmd.Flags().StringVar(&idAttr, "id-attr", "", "Stamp each element's NodeID into this attribute")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a complete HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Page title (with --page)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of standard output")

	return cmd
}

// writeRendered writes the materialized tree as a fragment or as a page.
func writeRendered(w io.Writer, m *render.Materializer, t *vdom.Tree, page bool, title string) error {
	frag := m.ToDocumentFragment(t)
	if page {
		return render.RenderPage(w, render.PageData{Body: frag, Title: title})
	}
	if err := render.Render(w, frag); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
