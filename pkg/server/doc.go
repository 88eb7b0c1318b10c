// Package server serves a vdom tree to browsers and keeps them in sync.
//
// A Server owns one tree. GET / returns a full page with the materialized
// tree and a small client script; the script opens a websocket and applies
// the records the server broadcasts after every change.
//
// # Mutating the Tree
//
// All tree access goes through the server so that changes are serialized
// and broadcast:
//
//	err := srv.Update(ctx, func(t *vdom.Tree) error {
//	    return t.GetElementByID("count").SetTextContent("3")
//	})
//
// Each mutation delivered during Update becomes one or more protocol
// records. Changes to the top-level order, which the tree does not report,
// are detected and sent as a full reset. Refresh forces a reset.
//
// # Client Events
//
// The client forwards click, input, change and submit events for elements
// carrying the ID attribute. The server dispatches each as a trusted,
// bubbling host event on the element with that ID, then broadcasts the
// changes the listeners made. Listeners run with the server's tree lock
// held: they mutate the tree directly and must not call Update.
//
// # Observability
//
// Requests and connection lifecycle are logged with zap. Metrics are
// registered on a Prometheus registry and served at the metrics path.
// Update, page renders and client events are traced with OpenTelemetry.
package server
