// Package render materializes vdom trees into a host document.
//
// The host is abstracted by the Host and Native interfaces. HTMLHost is the
// built-in host backed by golang.org/x/net/html; its output can be written
// as HTML with Render, and shadow trees are emitted as declarative
// <template shadowrootmode> elements.
//
// # Basic Usage
//
//	host := render.NewHTMLHost()
//	m := render.NewMaterializer(host, render.Options{ConvertShadow: true})
//	frag := m.ToDocumentFragment(tree)
//	html, err := render.RenderString(frag)
//
// # Live Sync
//
// Materialization is one-shot. Sync subscribes to a tree and keeps a
// previously materialized fragment current by replacing the native node of
// each changed element.
//
// # Import
//
// Parse reads HTML into top-level elements of a tree, the inverse of
// materializing with HTMLHost.
package render
