package main

import (
	"io"
	"os"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// loadTree parses the HTML at path into a new tree. A path of "-" reads
// standard input.
func (c *cli) loadTree(path string) (*vdom.Tree, error) {
	var r io.Reader
	if path == "-" {
		r = c.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, vterrors.New(vterrors.CodeInputUnreadable).
				WithDetail(path).
				Wrap(err)
		}
		defer f.Close()
		r = f
	}

	t := vdom.NewTree()
	if err := render.Parse(r, t); err != nil {
		return nil, vterrors.New(vterrors.CodeInputInvalid).
			WithDetail(path).
			Wrap(err)
	}
	return t, nil
}

// staticOptions returns the configured materializer options for output
// that is not followed by a live session. NodeIDs are only stamped on
// request.
func (c *cli) staticOptions() render.Options {
	return render.Options{
		ConvertShadow:            c.cfg.Render.ConvertShadow,
		FlattenShadowDescendants: c.cfg.Render.FlattenShadowDescendants,
	}
}
