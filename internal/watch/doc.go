// Package watch polls input files for changes.
//
// It backs "vtree serve --watch": when the served HTML file changes on
// disk, the tree is rebuilt and connected browsers receive a reset.
//
//	w := watch.NewWatcher(watch.Config{Files: []string{"index.html"}})
//	w.OnChange(func(c watch.Change) { reload(c.Path) })
//	go w.Start(ctx)
package watch
