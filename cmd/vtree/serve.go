package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/logging"
	"github.com/vango-dev/vtree/internal/watch"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/server"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// toggleKey is the dataset key naming the class a click toggles.
const toggleKey = "toggleClass"

func serveCmd(c *cli) *cobra.Command {
	var (
		port      int
		host      string
		title     string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve a tree to live browsers",
		Long: `Parse FILE into a tree and serve it over HTTP.

Connected browsers follow every change to the tree over a WebSocket.
Clicking an element that carries data-toggle-class toggles that class
on the server, and the change is pushed to every browser.

With --watch, the tree is rebuilt whenever FILE changes and browsers
receive the new document.

Examples:
  vtree serve index.html
  vtree serve --port=8080 index.html
  vtree serve --watch index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			if port > 0 {
				c.cfg.Server.Port = port
			}
			if host != "" {
				c.cfg.Server.Host = host
			}
			scfg, err := server.ConfigFrom(c.cfg)
			if err != nil {
				return err
			}
			if title != "" {
				scfg.Title = title
			}

			logger := logging.Named("serve")
			n := installToggles(t, logger)
			logger.Debug("toggles installed", zap.Int("count", n))

			srv := server.New(t, scfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watchFile {
				go watchInput(ctx, srv, args[0], logger)
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			success(w, "Serving %s (%d nodes)", args[0], t.Len())
			info(w, "→ %s", c.cfg.ServerURL())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vtree.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vtree.json)")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Rebuild the tree when FILE changes")

	return cmd
}

// installToggles registers a click listener on every element carrying
// data-toggle-class. Elements inside nested trees are not reachable from
// the browser and are skipped. It returns the number of listeners added.
func installToggles(t *vdom.Tree, logger *zap.Logger) int {
	n := 0
	for _, e := range append(t.TopLevel(), t.Descendants()...) {
		class, ok := e.Dataset().Lookup(toggleKey)
		if !ok || class == "" {
			continue
		}
		e.On("click", func(ev *vdom.Event) {
			on, err := e.ClassList().Toggle(class)
			if err != nil {
				logger.Warn("toggle failed", zap.Stringer("element", e), zap.Error(err))
				return
			}
			logger.Debug("class toggled",
				zap.Uint64("node", uint64(e.NodeID())),
				zap.String("class", class),
				zap.Bool("on", on),
			)
		})
		n++
	}
	return n
}

// watchInput rebuilds the served tree whenever path changes.
func watchInput(ctx context.Context, srv *server.Server, path string, logger *zap.Logger) {
	w := watch.NewWatcher(watch.Config{Files: []string{path}})
	w.OnChange(func(c watch.Change) {
		if c.Removed {
			logger.Warn("input removed, keeping last tree", zap.String("path", c.Path))
			return
		}
		src, err := os.ReadFile(c.Path)
		if err != nil {
			logger.Warn("read input", zap.String("path", c.Path), zap.Error(err))
			return
		}
		if err := srv.Update(ctx, func(t *vdom.Tree) error {
			return reloadTree(t, src, logger)
		}); err != nil {
			logger.Warn("reload failed", zap.String("path", c.Path), zap.Error(err))
			return
		}
		logger.Info("reloaded", zap.String("path", c.Path))
	})
	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Error("watcher stopped", zap.Error(err))
	}
}

// reloadTree replaces the top-level elements of t with the elements parsed
// from src. The tree is left untouched when src cannot be parsed.
func reloadTree(t *vdom.Tree, src []byte, logger *zap.Logger) error {
	if err := render.Parse(bytes.NewReader(src), vdom.NewTree()); err != nil {
		return vterrors.New(vterrors.CodeInputInvalid).Wrap(err)
	}
	for _, e := range t.TopLevel() {
		if err := t.RemoveChild(e); err != nil {
			return err
		}
	}
	if err := render.Parse(bytes.NewReader(src), t); err != nil {
		return vterrors.New(vterrors.CodeInputInvalid).Wrap(err)
	}
	installToggles(t, logger)
	return nil
}
